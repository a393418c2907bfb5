package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"voice-assistant/internal/config"
	"voice-assistant/internal/logger"
	"voice-assistant/internal/service/assistant"
	"voice-assistant/internal/service/email"
	"voice-assistant/internal/service/news"
	"voice-assistant/internal/service/reminder"
	"voice-assistant/internal/service/tts"
	"voice-assistant/internal/service/weather"
	"voice-assistant/internal/store"
	"voice-assistant/pkg/validation"
)

// ErrorResponse is the standardized JSON error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`

	// Set when audio was uploaded without a transcription, so the client
	// can switch to browser-side speech recognition.
	ClientTranscriptionRequired bool `json:"client_transcription_required,omitempty"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Handlers wires the HTTP surface to the service layer.
type Handlers struct {
	config       *config.Config
	store        store.Store
	assistant    *assistant.Service
	orchestrator *tts.Orchestrator
	weather      *weather.Client
	news         *news.Client
	reminders    *reminder.Service
	email        *email.Registry
	validator    *validation.VoiceRequestValidator
}

// New creates the handler set over explicitly constructed dependencies.
func New(
	cfg *config.Config,
	st store.Store,
	asst *assistant.Service,
	orchestrator *tts.Orchestrator,
	weatherClient *weather.Client,
	newsClient *news.Client,
	reminders *reminder.Service,
	emailRegistry *email.Registry,
) *Handlers {
	return &Handlers{
		config:       cfg,
		store:        st,
		assistant:    asst,
		orchestrator: orchestrator,
		weather:      weatherClient,
		news:         newsClient,
		reminders:    reminders,
		email:        emailRegistry,
		validator:    validation.NewVoiceRequestValidator(),
	}
}

// HealthHandler reports liveness.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// Helper methods

// sendJSON writes a JSON response body.
func (h *Handlers) sendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.WithError(err).Error("Error encoding response")
	}
}

// sendError sends a standardized JSON error response. Internal detail is
// logged, not leaked into 5xx payloads.
func (h *Handlers) sendError(w http.ResponseWriter, status int, message string, err error) {
	errResp := ErrorResponse{
		Code:    status,
		Message: message,
	}
	if err != nil {
		if status >= http.StatusInternalServerError {
			logger.Log.WithError(err).Error(message)
		} else {
			errResp.Error = err.Error()
		}
		if errors.Is(err, validation.ErrTranscriptionRequired) {
			errResp.ClientTranscriptionRequired = true
			errResp.Error = err.Error()
		}
	}
	h.sendJSON(w, status, errResp)
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
