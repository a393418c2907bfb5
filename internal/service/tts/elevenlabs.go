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

const elevenLabsBaseURL = "https://api.elevenlabs.io/v1/text-to-speech"

// Rachel, the service's stock voice.
const elevenLabsDefaultVoice = "21m00Tcm4TlvDq8ikWAM"

// ElevenLabs synthesizes speech via the ElevenLabs hosted API.
type ElevenLabs struct {
	apiKey     string
	httpClient *http.Client
}

// NewElevenLabs creates an ElevenLabs provider.
func NewElevenLabs(apiKey string) *ElevenLabs {
	return &ElevenLabs{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *ElevenLabs) Name() string { return "elevenlabs" }

type elevenLabsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize converts text to MP3 audio. Voice IDs the API would reject are
// not validated up front; an empty voice falls back to the stock voice.
func (p *ElevenLabs) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: ELEVENLABS_API_KEY missing", ErrNotConfigured)
	}

	voice := opts.Voice
	if voice == "" {
		voice = elevenLabsDefaultVoice
	}

	jsonData, err := json.Marshal(elevenLabsRequest{Text: text, ModelID: "eleven_monolingual_v1"})
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, elevenLabsBaseURL+"/"+voice, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", p.apiKey)
	req.Header.Set("Accept", "audio/mpeg")

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
