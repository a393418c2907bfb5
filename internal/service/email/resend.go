package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const resendURL = "https://api.resend.com/emails"

// Resend sends email through the Resend hosted API.
type Resend struct {
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewResend creates a Resend provider sending from the given address.
func NewResend(apiKey, from string) *Resend {
	return &Resend{
		apiKey:     apiKey,
		from:       from,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *Resend) Name() string { return "resend" }

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// Send delivers the message via Resend.
func (p *Resend) Send(ctx context.Context, msg Message) (*Result, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: RESEND_API_KEY missing", ErrNotConfigured)
	}

	jsonData, err := json.Marshal(resendRequest{
		From:    p.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendURL, bytes.NewBuffer(jsonData))
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

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp resendResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	return &Result{
		Provider:  p.Name(),
		MessageID: apiResp.ID,
		To:        msg.To,
		Subject:   msg.Subject,
	}, nil
}
