package assistant

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"voice-assistant/internal/logger"
	"voice-assistant/internal/metrics"
	"voice-assistant/internal/service/email"
	"voice-assistant/internal/service/llm"
	"voice-assistant/internal/service/music"
	"voice-assistant/internal/service/news"
	"voice-assistant/internal/service/reminder"
	"voice-assistant/internal/service/weather"
	"voice-assistant/pkg/extract"
)

// Collaborator interfaces, implemented by the integration clients and by
// test mocks.

type WeatherClient interface {
	GetWeather(ctx context.Context, location string) weather.Weather
}

type NewsClient interface {
	TopHeadlines(ctx context.Context, category, country string) ([]news.Article, error)
}

type MusicClient interface {
	LookupTrack(ctx context.Context, query string) (*music.Track, error)
}

type ReminderCreator interface {
	CreateFromText(text string) *reminder.Reminder
}

type EmailSender interface {
	Send(ctx context.Context, providerName string, msg email.Message) (*email.Result, error)
}

// Router dispatches a parsed action to its enrichment branch. Every branch
// calls at most one external collaborator and swallows its own failures:
// the conversational message survives even when enrichment does not.
type Router struct {
	weather         WeatherClient
	news            NewsClient
	music           MusicClient
	reminders       ReminderCreator
	email           EmailSender
	defaultLocation string
	newsCountry     string
}

// NewRouter creates a router over the given collaborators.
func NewRouter(w WeatherClient, n NewsClient, m MusicClient, r ReminderCreator, e EmailSender, defaultLocation, newsCountry string) *Router {
	return &Router{
		weather:         w,
		news:            n,
		music:           m,
		reminders:       r,
		email:           e,
		defaultLocation: defaultLocation,
		newsCountry:     newsCountry,
	}
}

// Dispatch runs the enrichment branch for the reply's action and returns the
// reply with its data payload replaced. For "none" the model-provided data
// is left untouched. Dispatch never fails.
func (rt *Router) Dispatch(ctx context.Context, reply llm.Reply, utterance string) llm.Reply {
	metrics.ActionCount.WithLabelValues(string(reply.Action)).Inc()

	switch reply.Action {
	case llm.ActionWeather:
		reply.Data = rt.handleWeather(ctx, reply.Data, utterance)
	case llm.ActionNews:
		reply.Data = rt.handleNews(ctx, reply.Data)
	case llm.ActionReminder:
		reply.Data = rt.handleReminder(reply.Data, utterance)
	case llm.ActionEmail:
		reply.Data = rt.handleEmail(ctx, reply.Data, utterance)
	case llm.ActionDocument:
		reply.Data = rt.handleDocument(reply.Data, utterance)
	case llm.ActionMusic:
		reply.Data = rt.handleMusic(ctx, reply.Data, utterance)
	}
	return reply
}

func (rt *Router) handleWeather(ctx context.Context, data map[string]any, utterance string) map[string]any {
	location := stringField(data, "location")
	if location == "" {
		location = extract.ExtractLocation(utterance, rt.defaultLocation)
	}

	w := rt.weather.GetWeather(ctx, location)
	return asMap(w)
}

func (rt *Router) handleNews(ctx context.Context, data map[string]any) map[string]any {
	category := stringField(data, "category")
	if category == "" {
		category = "general"
	}

	articles, err := rt.news.TopHeadlines(ctx, category, rt.newsCountry)
	if err != nil {
		logger.Log.WithField("category", category).WithError(err).Warn("News lookup failed")
		return data
	}
	return map[string]any{"category": category, "articles": articles}
}

func (rt *Router) handleReminder(data map[string]any, utterance string) map[string]any {
	text := stringField(data, "reminderText")
	if text == "" {
		text = utterance
	}

	created := rt.reminders.CreateFromText(text)
	if created == nil {
		logger.Log.Warn("Could not extract a reminder from text")
		return data
	}
	return asMap(created)
}

func (rt *Router) handleEmail(ctx context.Context, data map[string]any, utterance string) map[string]any {
	parsed := extract.ExtractEmail(utterance)
	if parsed == nil {
		logger.Log.Warn("Could not extract a recipient address, skipping email")
		return data
	}

	result, err := rt.email.Send(ctx, "", email.Message{
		To:      parsed.To,
		Subject: parsed.Subject,
		Body:    parsed.Body,
	})
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"to": parsed.To}).WithError(err).Warn("Email send failed")
		return data
	}
	return asMap(result)
}

func (rt *Router) handleDocument(data map[string]any, utterance string) map[string]any {
	query := stringField(data, "documentQuery")
	if query == "" {
		query = utterance
	}
	// Document ingestion happens through the dedicated endpoints; the chat
	// branch only acknowledges the request.
	return map[string]any{
		"query":   query,
		"message": "Upload a document to the documents endpoint to have it summarized or analyzed.",
	}
}

func (rt *Router) handleMusic(ctx context.Context, data map[string]any, utterance string) map[string]any {
	query := stringField(data, "query")
	if query == "" {
		query = utterance
	}

	track, err := rt.music.LookupTrack(ctx, query)
	if err != nil {
		logger.Log.WithField("query", query).WithError(err).Warn("Music lookup failed")
		return map[string]any{"available": false, "query": query}
	}
	return asMap(track)
}

// stringField reads an optional string out of a loosely-typed payload.
func stringField(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

// asMap converts a typed result into the loosely-typed data payload shape.
func asMap(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{}
	}
	return out
}
