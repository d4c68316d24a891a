// Package handlers exposes the extension webhook over HTTP. It reads the
// raw body, hands it to the dispatcher and translates error kinds into
// status codes; the core itself never sees HTTP statuses.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	apperrors "clova-router/internal/common/errors"
	"clova-router/internal/common/logging"
	"clova-router/internal/dispatch"
	"clova-router/internal/request"
	"clova-router/internal/speech"
	"clova-router/internal/verify"
)

const contentTypeJSON = "application/json;charset=UTF-8"

// Handlers holds the HTTP handler dependencies
type Handlers struct {
	dispatcher *dispatch.Dispatcher
	logger     logging.Logger
}

// New creates the handler set
func New(dispatcher *dispatch.Dispatcher, logger logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &Handlers{dispatcher: dispatcher, logger: logger}
}

// SetupRoutes registers all routes on the router
func (h *Handlers) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/extension", h.HandleExtension).Methods(http.MethodPost)
	r.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)
}

// HandleExtension processes one webhook call from the platform
func (h *Handlers) HandleExtension(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	resp, err := h.dispatcher.Route(r.Context(), body, r.Header)
	if err != nil {
		h.logger.Warn("dispatch failed",
			logging.Field{Key: "error", Value: err.Error()},
		)
		h.writeError(w, statusForError(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)

	// Fire-and-forget handlers (events, session end) may return nothing.
	if resp == nil {
		w.Write([]byte("{}"))
		return
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode response", err)
	}
}

// HandleHealth reports liveness
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// statusForError maps core error kinds onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, verify.ErrInvalidSignature),
		errors.Is(err, verify.ErrMissingSignature):
		return http.StatusUnauthorized
	case errors.Is(err, request.ErrApplicationIDMismatch):
		return http.StatusForbidden
	case errors.Is(err, request.ErrUnsupportedRequestType),
		errors.Is(err, request.ErrMalformedRequest),
		errors.Is(err, speech.ErrInvalidLanguage),
		errors.Is(err, speech.ErrTypeMismatch),
		errors.Is(err, speech.ErrUnsupportedSpeechInput):
		return http.StatusBadRequest
	}

	// Handlers may surface wrapped errors carrying an explicit kind.
	switch apperrors.GetType(err) {
	case apperrors.ErrTypeValidation:
		return http.StatusBadRequest
	case apperrors.ErrTypeVerification:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
