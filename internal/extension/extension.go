// Package extension implements the example home-control skill shipped with
// the server binary. It shows the full handler surface: launch greeting,
// intents with slots and reprompts, guide intent keyed off stored session
// attributes, audio player events and session cleanup.
package extension

import (
	"context"

	"clova-router/internal/common/logging"
	"clova-router/internal/dispatch"
	"clova-router/internal/request"
	"clova-router/internal/response"
	"clova-router/internal/sessions"
	"clova-router/internal/speech"
)

const explainedKey = "hasExplainedService"

// Extension bundles the demo skill handlers and their dependencies
type Extension struct {
	builder *response.Builder
	store   sessions.Store
	logger  logging.Logger
}

// New creates the demo extension
func New(builder *response.Builder, store sessions.Store, logger logging.Logger) *Extension {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &Extension{builder: builder, store: store, logger: logger}
}

// RegisterHandlers populates the dispatcher's handler table. Called once at
// startup, before the server accepts requests.
func (e *Extension) RegisterHandlers(d *dispatch.Dispatcher) {
	d.Register(request.TypeLaunch, e.HandleLaunch)
	d.Register(request.TypeSessionEnded, e.HandleSessionEnded)
	d.Register(request.TypeEvent, e.HandleEvent)
	d.RegisterIntent("TurnOn", e.HandleTurnOn)
	d.RegisterIntent("TurnOff", e.HandleTurnOff)
	d.RegisterIntent("Clova.GuideIntent", e.HandleGuide)
	d.RegisterIntent("Clova.YesIntent", e.HandleYes)
	d.RegisterIntent("Clova.CancelIntent", e.HandleCancel)
	d.RegisterDefault(e.HandleDefault)
}

// HandleLaunch greets the user and keeps the session open
func (e *Extension) HandleLaunch(ctx context.Context, req *request.Request) (*response.Response, error) {
	resp, err := e.builder.SimpleSpeechText("Hello! Welcome to my service!", false)
	if err != nil {
		return nil, err
	}
	return e.builder.AddRepromptMessage(resp, speech.Text("What would you like me to do?"))
}

// HandleTurnOn switches on the device named by the slot, remembers it in
// the session and reprompts
func (e *Extension) HandleTurnOn(ctx context.Context, req *request.Request) (*response.Response, error) {
	target, ok := req.SlotValue("Device")
	if !ok {
		target = "something"
	}

	resp, err := e.builder.SimpleSpeechText("Turned on "+target, false)
	if err != nil {
		return nil, err
	}
	if _, err := e.builder.AddRepromptMessage(resp, speech.Text("Anything else?")); err != nil {
		return nil, err
	}

	attrs := map[string]interface{}{"lastTurnedOn": target}
	resp.SetAttributes(attrs)
	if err := e.store.Put(ctx, req.Session.ID, attrs); err != nil {
		e.logger.Warn("failed to persist session attributes",
			logging.Field{Key: "session_id", Value: req.Session.ID},
			logging.Field{Key: "error", Value: err.Error()},
		)
	}

	return resp, nil
}

// HandleTurnOff switches off the last device and ends the session
func (e *Extension) HandleTurnOff(ctx context.Context, req *request.Request) (*response.Response, error) {
	target := "something"
	if last, ok := req.Session.Attributes["lastTurnedOn"].(string); ok && last != "" {
		target = last
	} else if attrs, err := e.store.Get(ctx, req.Session.ID); err == nil {
		if last, ok := attrs["lastTurnedOn"].(string); ok && last != "" {
			target = last
		}
	}

	return e.builder.SimpleSpeechText("Turned off "+target, true)
}

// HandleGuide explains the service once, then acknowledges repeat requests
func (e *Extension) HandleGuide(ctx context.Context, req *request.Request) (*response.Response, error) {
	message := "I can switch things off and on!"

	explained := false
	if v, ok := req.Session.Attributes[explainedKey].(bool); ok {
		explained = v
	} else if attrs, err := e.store.Get(ctx, req.Session.ID); err == nil {
		explained, _ = attrs[explainedKey].(bool)
	}
	if explained {
		message = "I just explained you what I can do!"
	}

	resp, err := e.builder.SimpleSpeechText(message, false)
	if err != nil {
		return nil, err
	}

	attrs := map[string]interface{}{explainedKey: true}
	resp.SetAttributes(attrs)
	if err := e.store.Put(ctx, req.Session.ID, attrs); err != nil {
		e.logger.Warn("failed to persist session attributes",
			logging.Field{Key: "session_id", Value: req.Session.ID},
			logging.Field{Key: "error", Value: err.Error()},
		)
	}

	return resp, nil
}

// HandleYes acknowledges a confirmation
func (e *Extension) HandleYes(ctx context.Context, req *request.Request) (*response.Response, error) {
	return e.builder.SimpleSpeechText("Yes, that's good!", false)
}

// HandleCancel ends the session on request
func (e *Extension) HandleCancel(ctx context.Context, req *request.Request) (*response.Response, error) {
	return e.builder.SimpleSpeechText("Action canceled!", true)
}

// HandleEvent logs platform events. Audio player events carry the playback
// position in the request context. No speech is returned.
func (e *Extension) HandleEvent(ctx context.Context, req *request.Request) (*response.Response, error) {
	fields := []logging.Field{
		{Key: "event_id", Value: req.ID},
		{Key: "namespace", Value: req.Event.Namespace},
		{Key: "name", Value: req.Event.Name},
		{Key: "timestamp", Value: req.Timestamp},
	}
	if player := req.Context.AudioPlayer; player != nil {
		fields = append(fields,
			logging.Field{Key: "offset_ms", Value: player.Offset},
			logging.Field{Key: "activity", Value: player.Activity},
		)
	}
	e.logger.Info("received platform event", fields...)
	return nil, nil
}

// HandleSessionEnded cleans up stored attributes and says goodbye
func (e *Extension) HandleSessionEnded(ctx context.Context, req *request.Request) (*response.Response, error) {
	if err := e.store.Delete(ctx, req.Session.ID); err != nil {
		e.logger.Warn("failed to delete session",
			logging.Field{Key: "session_id", Value: req.Session.ID},
			logging.Field{Key: "error", Value: err.Error()},
		)
	}
	return e.builder.SimpleSpeechText("Bye bye!", true)
}

// HandleDefault answers anything without a specific handler
func (e *Extension) HandleDefault(ctx context.Context, req *request.Request) (*response.Response, error) {
	return e.builder.SimpleSpeechText("Sorry, I don't understand!", false)
}
