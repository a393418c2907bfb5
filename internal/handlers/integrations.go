package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"voice-assistant/internal/logger"
	"voice-assistant/internal/service/email"
	"voice-assistant/internal/service/news"
	"voice-assistant/internal/service/reminder"
)

type NewsResponse struct {
	Articles []news.Article `json:"articles"`
}

type CreateReminderRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	DueAt       string `json:"due_at,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Category    string `json:"category,omitempty"`

	// Natural-language alternative to the explicit fields.
	Text string `json:"text,omitempty"`
}

type RemindersResponse struct {
	Reminders []reminder.Reminder `json:"reminders"`
}

type SendEmailRequest struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Provider string `json:"provider,omitempty"`
}

type DocumentRequest struct {
	Text     string `json:"text"`
	Question string `json:"question,omitempty"`
}

// WeatherHandler returns current conditions for a location.
func (h *Handlers) WeatherHandler(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		location = h.config.DefaultLocation
	}
	h.sendJSON(w, http.StatusOK, h.weather.GetWeather(r.Context(), location))
}

// NewsHandler returns headlines for a category, or search results when a
// query is given.
func (h *Handlers) NewsHandler(w http.ResponseWriter, r *http.Request) {
	var articles []news.Article
	var err error

	if q := r.URL.Query().Get("q"); q != "" {
		articles, err = h.news.Search(r.Context(), q)
	} else {
		category := r.URL.Query().Get("category")
		if category == "" {
			category = "general"
		}
		articles, err = h.news.TopHeadlines(r.Context(), category, h.config.NewsCountry)
	}
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Error retrieving news", err)
		return
	}
	h.sendJSON(w, http.StatusOK, NewsResponse{Articles: articles})
}

// CreateReminderHandler creates a reminder from explicit fields or from
// natural-language text.
func (h *Handlers) CreateReminderHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateReminderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validator.ValidateReminderRequest(req.Title, req.Text); err != nil {
		h.sendError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}
	if err := h.validator.ValidatePriority(req.Priority); err != nil {
		h.sendError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	if req.Title == "" {
		created := h.reminders.CreateFromText(req.Text)
		if created == nil {
			h.sendError(w, http.StatusBadRequest, "Could not extract a reminder from text", nil)
			return
		}
		h.sendJSON(w, http.StatusCreated, created)
		return
	}

	var dueAt time.Time
	if req.DueAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.DueAt)
		if err != nil {
			h.sendError(w, http.StatusBadRequest, "due_at must be RFC 3339", err)
			return
		}
		dueAt = parsed
	}

	created := h.reminders.Create(reminder.CreateRequest{
		Title:       req.Title,
		Description: req.Description,
		DueAt:       dueAt,
		Priority:    req.Priority,
		Category:    req.Category,
	})
	logger.Log.WithFields(logrus.Fields{"reminder_id": created.ID, "due_at": created.DueAt}).Info("Reminder created")
	h.sendJSON(w, http.StatusCreated, created)
}

// GetRemindersHandler returns all reminders.
func (h *Handlers) GetRemindersHandler(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, RemindersResponse{Reminders: h.reminders.List()})
}

// GetUpcomingRemindersHandler returns incomplete reminders due within 24h.
func (h *Handlers) GetUpcomingRemindersHandler(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, RemindersResponse{Reminders: h.reminders.Upcoming(24 * time.Hour)})
}

// CompleteReminderHandler marks a reminder done.
func (h *Handlers) CompleteReminderHandler(w http.ResponseWriter, r *http.Request) {
	completed, err := h.reminders.Complete(r.PathValue("id"))
	if err != nil {
		h.sendError(w, http.StatusNotFound, "Reminder not found", err)
		return
	}
	h.sendJSON(w, http.StatusOK, completed)
}

// SendEmailHandler sends an email through the named provider. An unknown
// provider name is a request error, not a trigger for fallback.
func (h *Handlers) SendEmailHandler(w http.ResponseWriter, r *http.Request) {
	var req SendEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validator.ValidateEmailRequest(req.To, req.Subject); err != nil {
		h.sendError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	result, err := h.email.Send(r.Context(), req.Provider, email.Message{
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		if errors.Is(err, email.ErrUnknownProvider) {
			h.sendError(w, http.StatusBadRequest, "Unknown email provider", err)
			return
		}
		h.sendError(w, http.StatusInternalServerError, "Error sending email", err)
		return
	}
	h.sendJSON(w, http.StatusOK, result)
}

// SummarizeDocumentHandler summarizes submitted document text.
func (h *Handlers) SummarizeDocumentHandler(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Text == "" {
		h.sendError(w, http.StatusBadRequest, "Document text is required", nil)
		return
	}

	result, err := h.assistant.Summarize(r.Context(), req.Text)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Error summarizing document", err)
		return
	}
	h.sendJSON(w, http.StatusOK, AnalysisResponse{Result: result})
}

// AnalyzeDocumentHandler answers a question about submitted document text.
func (h *Handlers) AnalyzeDocumentHandler(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Text == "" || req.Question == "" {
		h.sendError(w, http.StatusBadRequest, "Document text and question are required", nil)
		return
	}

	result, err := h.assistant.Analyze(r.Context(), req.Text, req.Question)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Error analyzing document", err)
		return
	}
	h.sendJSON(w, http.StatusOK, AnalysisResponse{Result: result})
}
