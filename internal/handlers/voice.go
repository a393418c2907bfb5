package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"voice-assistant/internal/logger"
	"voice-assistant/internal/service/assistant"
	"voice-assistant/internal/service/llm"
	"voice-assistant/internal/service/tts"
)

type VoiceRequest struct {
	Transcription  string `json:"transcription,omitempty"`
	AudioBase64    string `json:"audio,omitempty"`
	ImageBase64    string `json:"image,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	TTS            bool   `json:"tts,omitempty"`
	TTSProvider    string `json:"tts_provider,omitempty"`
	Voice          string `json:"voice,omitempty"`
}

type VoiceResponse struct {
	Transcription  string         `json:"transcription"`
	Response       string         `json:"response"`
	Action         llm.Action     `json:"action"`
	Data           map[string]any `json:"data"`
	ConversationID string         `json:"conversation_id"`
	AudioURL       string         `json:"audio_url,omitempty"`
}

type TTSRequest struct {
	Text     string `json:"text"`
	Provider string `json:"provider,omitempty"`
	Voice    string `json:"voice,omitempty"`
}

type ImageAnalyzeRequest struct {
	ImageBase64 string `json:"image"`
	Prompt      string `json:"prompt,omitempty"`
}

type AnalysisResponse struct {
	Result string `json:"result"`
}

// VoiceProcessHandler runs one assistant turn: validate input, call the
// model, dispatch the action, optionally synthesize the spoken reply.
func (h *Handlers) VoiceProcessHandler(w http.ResponseWriter, r *http.Request) {
	var req VoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.validator.ValidateVoiceRequest(req.Transcription, req.AudioBase64 != ""); err != nil {
		h.sendError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"conversation_id": req.ConversationID,
		"tts":             req.TTS,
		"has_image":       req.ImageBase64 != "",
	}).Info("Voice request received")

	result, err := h.assistant.Process(r.Context(), assistant.ProcessRequest{
		Utterance:      req.Transcription,
		ConversationID: req.ConversationID,
		ImageBase64:    req.ImageBase64,
	})
	if err != nil {
		if errors.Is(err, llm.ErrAuthentication) {
			h.sendError(w, http.StatusInternalServerError, "Language model rejected the configured credential; check OPENROUTER_API_KEY", err)
			return
		}
		h.sendError(w, http.StatusInternalServerError, "Error processing message", err)
		return
	}

	resp := VoiceResponse{
		Transcription:  req.Transcription,
		Response:       result.Response,
		Action:         result.Action,
		Data:           result.Data,
		ConversationID: result.ConversationID,
	}

	if req.TTS {
		path, err := h.orchestrator.SynthesizeToFile(r.Context(), result.Response, req.TTSProvider, tts.Options{Voice: req.Voice})
		if err != nil {
			// The conversational reply still goes out without audio.
			logger.Log.WithError(err).Warn("Speech synthesis failed for voice response")
		} else {
			resp.AudioURL = "/api/audio/" + filepath.Base(path)
		}
	}

	h.sendJSON(w, http.StatusOK, resp)
}

// SynthesizeHandler synthesizes speech and streams the audio file, deleting
// it server-side immediately after.
func (h *Handlers) SynthesizeHandler(w http.ResponseWriter, r *http.Request) {
	var req TTSRequest
	if err := decodeJSON(r, &req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validator.ValidateTTSRequest(req.Text); err != nil {
		h.sendError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	path, err := h.orchestrator.SynthesizeToFile(r.Context(), req.Text, req.Provider, tts.Options{Voice: req.Voice})
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Speech synthesis failed", err)
		return
	}

	h.streamAndDelete(w, r, path)
}

// AudioHandler serves a previously synthesized artifact and deletes it after
// streaming.
func (h *Handlers) AudioHandler(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(r.PathValue("name"))
	path := filepath.Join(h.config.TTSTempDir, name)

	if _, err := os.Stat(path); err != nil {
		h.sendError(w, http.StatusNotFound, "Audio not found", nil)
		return
	}
	h.streamAndDelete(w, r, path)
}

// streamAndDelete serves an audio file then removes it regardless of the
// periodic sweep.
func (h *Handlers) streamAndDelete(w http.ResponseWriter, r *http.Request, path string) {
	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, path)

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Log.WithField("path", path).WithError(err).Warn("Failed to remove served audio file")
	}
	h.orchestrator.Forget(path)
}

// AnalyzeImageHandler answers a prompt about an uploaded image.
func (h *Handlers) AnalyzeImageHandler(w http.ResponseWriter, r *http.Request) {
	var req ImageAnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ImageBase64 == "" {
		h.sendError(w, http.StatusBadRequest, "Image is required", nil)
		return
	}

	result, err := h.assistant.AnalyzeImage(r.Context(), req.ImageBase64, req.Prompt)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Error analyzing image", err)
		return
	}
	h.sendJSON(w, http.StatusOK, AnalysisResponse{Result: result})
}
