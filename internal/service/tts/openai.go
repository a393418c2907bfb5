package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const openAISpeechURL = "https://api.openai.com/v1/audio/speech"

var openAIVoices = map[string]bool{
	"alloy": true, "echo": true, "fable": true,
	"onyx": true, "nova": true, "shimmer": true,
}

// OpenAI synthesizes speech via the OpenAI audio API.
type OpenAI struct {
	apiKey     string
	httpClient *http.Client
}

// NewOpenAI creates an OpenAI speech provider.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *OpenAI) Name() string { return "openai" }

type openAISpeechRequest struct {
	Model string  `json:"model"`
	Input string  `json:"input"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed,omitempty"`
}

// Synthesize converts text to MP3 audio. Unknown voices coerce to "alloy";
// out-of-range speeds are dropped in favor of the API default.
func (p *OpenAI) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY missing", ErrNotConfigured)
	}

	voice := opts.Voice
	if !openAIVoices[voice] {
		voice = "alloy"
	}
	speed := opts.Speed
	if speed < 0.25 || speed > 4.0 {
		speed = 0
	}

	jsonData, err := json.Marshal(openAISpeechRequest{
		Model: "tts-1",
		Input: text,
		Voice: voice,
		Speed: speed,
	})
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAISpeechURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading audio: %w", err)
	}
	return audio, nil
}
