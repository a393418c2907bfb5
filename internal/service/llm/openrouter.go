package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"voice-assistant/internal/config"
	"voice-assistant/internal/logger"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

const systemPrompt = `You are a helpful voice assistant. You can check the weather, fetch news headlines, create reminders, send emails, answer questions about documents, and look up music.

Always reply with a single JSON object of this exact shape:
{"message": "<your conversational reply>", "action": "<one of: none, weather, news, reminder, email, document, music>", "data": {}}

Set "action" to the capability the user is asking for, or "none" for plain conversation. Put any structured parameters you extracted (location, category, reminderText, documentQuery, query) into "data". Do not wrap the JSON in code fences or add any text outside it.`

// OpenRouterProvider implements Provider using direct OpenRouter API calls.
type OpenRouterProvider struct {
	config     *config.Config
	httpClient *http.Client
}

// NewOpenRouterProvider creates a new OpenRouter provider with config.
func NewOpenRouterProvider(cfg *config.Config) *OpenRouterProvider {
	return &OpenRouterProvider{
		config:     cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// chatMessage allows string content for plain turns and content-part arrays
// for multimodal turns.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// buildMessages assembles the system instruction, the trailing window of the
// conversation history, and the current turn.
func (p *OpenRouterProvider) buildMessages(utterance string, history []Message, imageBase64 string) []chatMessage {
	window := p.config.HistoryWindow
	if len(history) > window {
		history = history[len(history)-window:]
	}

	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	for _, m := range history {
		messages = append(messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	if imageBase64 != "" {
		messages = append(messages, chatMessage{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: utterance},
				{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + imageBase64}},
			},
		})
	} else {
		messages = append(messages, chatMessage{Role: "user", Content: utterance})
	}
	return messages
}

// Complete sends the utterance with history to OpenRouter and returns the raw
// reply text. Credential rejection maps to ErrAuthentication; everything else
// is a generic failure carrying the underlying cause.
func (p *OpenRouterProvider) Complete(ctx context.Context, utterance string, history []Message, imageBase64 string) (string, error) {
	apiKey := p.config.OpenRouterAPIKey
	if apiKey == "" {
		return "", fmt.Errorf("%w: OPENROUTER_API_KEY not configured", ErrAuthentication)
	}

	logger.Log.WithFields(logrus.Fields{
		"model":         p.config.Model,
		"history_count": len(history),
		"has_image":     imageBase64 != "",
	}).Info("Calling OpenRouter API")

	reqBody := chatRequest{
		Model:       p.config.Model,
		Messages:    p.buildMessages(utterance, history, imageBase64),
		Temperature: p.config.Temperature,
		MaxTokens:   p.config.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openRouterURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("%w: API returned status %d", ErrAuthentication, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("error decoding response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	content := chatResp.Choices[0].Message.Content
	logger.Log.WithField("content_length", len(content)).Debug("Extracted content from response")
	return content, nil
}
