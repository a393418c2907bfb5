package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const voiceRSSURL = "https://api.voicerss.org/"

// VoiceRSS synthesizes speech via the VoiceRSS hosted API.
type VoiceRSS struct {
	apiKey     string
	httpClient *http.Client
}

// NewVoiceRSS creates a VoiceRSS provider.
func NewVoiceRSS(apiKey string) *VoiceRSS {
	return &VoiceRSS{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *VoiceRSS) Name() string { return "voicerss" }

// Synthesize converts text to MP3 audio. The voice option is ignored;
// VoiceRSS selects by language, fixed to en-us here.
func (p *VoiceRSS) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: VOICERSS_API_KEY missing", ErrNotConfigured)
	}

	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("src", text)
	params.Set("hl", "en-us")
	params.Set("c", "MP3")
	params.Set("f", "44khz_16bit_stereo")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, voiceRSSURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading audio: %w", err)
	}

	// VoiceRSS reports errors as a 200 with a text body.
	if bytes.HasPrefix(audio, []byte("ERROR")) {
		return nil, fmt.Errorf("API error: %s", string(audio))
	}
	return audio, nil
}
