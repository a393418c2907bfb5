package llm

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"voice-assistant/internal/logger"
)

// Action is the closed set of enrichment branches the model can select.
type Action string

const (
	ActionNone     Action = "none"
	ActionWeather  Action = "weather"
	ActionNews     Action = "news"
	ActionReminder Action = "reminder"
	ActionEmail    Action = "email"
	ActionDocument Action = "document"
	ActionMusic    Action = "music"
)

// Reply is the structured assistant reply recovered from model output.
type Reply struct {
	Message string         `json:"message"`
	Action  Action         `json:"action"`
	Data    map[string]any `json:"data"`
}

const fallbackMessage = "I'm sorry, I couldn't process that request."

var (
	codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// ParseReply recovers a {message, action, data} triple from raw model output.
// The model is asked, but not guaranteed, to produce valid JSON, so parsing
// walks a fallback ladder and never fails: the result is always well-formed,
// with action defaulting to "none" and data to an empty map.
func ParseReply(raw string) Reply {
	if reply, ok := tryParse(raw); ok {
		return reply
	}

	cleaned := stripCodeFences(raw)
	if reply, ok := tryParse(cleaned); ok {
		logger.Log.Debug("Parsed reply after stripping code fences")
		return reply
	}

	if block := jsonBlockRe.FindString(cleaned); block != "" {
		if reply, ok := tryParse(block); ok {
			logger.Log.Debug("Parsed reply from embedded JSON block")
			return reply
		}
	}

	logger.Log.WithField("raw_length", len(raw)).Warn("Could not parse structured reply, using raw text")
	return Reply{
		Message: truncate(strings.TrimSpace(raw), 200),
		Action:  ActionNone,
		Data:    map[string]any{},
	}
}

// tryParse attempts to read text as a structured reply object.
func tryParse(text string) (Reply, bool) {
	text = strings.TrimSpace(text)
	if text == "" || !gjson.Valid(text) {
		return Reply{}, false
	}

	parsed := gjson.Parse(text)
	if !parsed.IsObject() {
		return Reply{}, false
	}

	reply := Reply{
		Message: parsed.Get("message").String(),
		Action:  normalizeAction(parsed.Get("action").String()),
		Data:    map[string]any{},
	}
	if data := parsed.Get("data"); data.IsObject() {
		if m, ok := data.Value().(map[string]any); ok {
			reply.Data = m
		}
	}
	if reply.Message == "" {
		reply.Message = fallbackMessage
	}
	return reply, true
}

// normalizeAction maps unrecognized or absent tags to "none".
func normalizeAction(tag string) Action {
	switch Action(strings.ToLower(strings.TrimSpace(tag))) {
	case ActionWeather:
		return ActionWeather
	case ActionNews:
		return ActionNews
	case ActionReminder:
		return ActionReminder
	case ActionEmail:
		return ActionEmail
	case ActionDocument:
		return ActionDocument
	case ActionMusic:
		return ActionMusic
	default:
		return ActionNone
	}
}

func stripCodeFences(text string) string {
	if m := codeFenceRe.FindStringSubmatch(text); len(m) == 2 {
		return m[1]
	}
	return strings.TrimSpace(text)
}

func truncate(s string, n int) string {
	if s == "" {
		return fallbackMessage
	}
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
