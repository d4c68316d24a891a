// Package dispatch routes a verified webhook call to the handler registered
// for its request type or intent name. Each inbound call is a single
// synchronous pass: verify, classify, check the application id, select a
// handler, invoke it.
package dispatch

import (
	"context"
	"net/http"
	"sync"

	"clova-router/internal/common/logging"
	"clova-router/internal/request"
	"clova-router/internal/response"
)

// HandlerFunc handles one classified request. A nil response is valid for
// fire-and-forget handling (session end, platform events).
type HandlerFunc func(ctx context.Context, req *request.Request) (*response.Response, error)

// Verifier checks request authenticity before any handler runs
type Verifier interface {
	Verify(body []byte, header http.Header) error
}

// Config holds the fixed dispatcher settings
type Config struct {
	// ApplicationID is the id the extension was registered under; inbound
	// requests addressed elsewhere are rejected
	ApplicationID string
	// DebugMode skips signature and application-id verification. Local
	// testing only.
	DebugMode bool
	Verifier  Verifier
	Logger    logging.Logger
}

// Dispatcher maps classified requests onto registered handlers. Handlers
// are registered once at startup; the table is treated as read-only while
// requests are being served.
type Dispatcher struct {
	applicationID string
	debugMode     bool
	verifier      Verifier
	logger        logging.Logger

	mu             sync.RWMutex
	typeHandlers   map[request.Type]HandlerFunc
	intentHandlers map[string]HandlerFunc
	defaultHandler HandlerFunc
}

// New creates a dispatcher. Outside debug mode a verifier must be supplied.
func New(cfg Config) (*Dispatcher, error) {
	if !cfg.DebugMode && cfg.Verifier == nil {
		return nil, ErrVerifierRequired
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &Dispatcher{
		applicationID:  cfg.ApplicationID,
		debugMode:      cfg.DebugMode,
		verifier:       cfg.Verifier,
		logger:         logger,
		typeHandlers:   make(map[request.Type]HandlerFunc),
		intentHandlers: make(map[string]HandlerFunc),
	}, nil
}

// Register sets the handler for a request type (Launch, Event, SessionEnded)
func (d *Dispatcher) Register(t request.Type, fn HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.typeHandlers[t] = fn
}

// RegisterIntent sets the handler for a named intent
func (d *Dispatcher) RegisterIntent(name string, fn HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.intentHandlers[name] = fn
}

// RegisterDefault sets the fallback handler used when no specific handler
// matches
func (d *Dispatcher) RegisterDefault(fn HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.defaultHandler = fn
}

// Route runs the full pipeline for one inbound call and returns the handler
// result verbatim. Every failure aborts the call before a handler runs:
// verification errors, unsupported request types, application-id mismatches
// and missing handlers all propagate to the caller.
func (d *Dispatcher) Route(ctx context.Context, body []byte, header http.Header) (*response.Response, error) {
	if !d.debugMode {
		if err := d.verifier.Verify(body, header); err != nil {
			d.logger.Warn("request verification failed",
				logging.Field{Key: "error", Value: err.Error()},
			)
			return nil, err
		}
	}

	req, err := request.Parse(body)
	if err != nil {
		return nil, err
	}

	if !d.debugMode {
		if err := req.VerifyApplicationID(d.applicationID); err != nil {
			return nil, err
		}
	}

	handler, err := d.selectHandler(req)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("dispatching request",
		logging.Field{Key: "type", Value: string(req.Type)},
		logging.Field{Key: "intent", Value: req.IntentName()},
		logging.Field{Key: "session_id", Value: req.Session.ID},
	)

	return handler(ctx, req)
}

// selectHandler applies the precedence rule: an intent-name match wins over
// a type-level match, which wins over the default handler.
func (d *Dispatcher) selectHandler(req *request.Request) (HandlerFunc, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if req.Type == request.TypeIntent {
		if fn, ok := d.intentHandlers[req.IntentName()]; ok {
			return fn, nil
		}
	}

	if fn, ok := d.typeHandlers[req.Type]; ok {
		return fn, nil
	}

	if d.defaultHandler != nil {
		return d.defaultHandler, nil
	}

	return nil, ErrNoHandlerRegistered
}
