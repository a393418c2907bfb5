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

const sendGridURL = "https://api.sendgrid.com/v3/mail/send"

// SendGrid sends email through the SendGrid v3 API.
type SendGrid struct {
	apiKey     string
	from       string
	fromName   string
	httpClient *http.Client
}

// NewSendGrid creates a SendGrid provider sending from the given address.
func NewSendGrid(apiKey, from, fromName string) *SendGrid {
	return &SendGrid{
		apiKey:     apiKey,
		from:       from,
		fromName:   fromName,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *SendGrid) Name() string { return "sendgrid" }

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridRequest struct {
	Personalizations []struct {
		To []sendGridAddress `json:"to"`
	} `json:"personalizations"`
	From    sendGridAddress `json:"from"`
	Subject string          `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

// Send delivers the message via SendGrid.
func (p *SendGrid) Send(ctx context.Context, msg Message) (*Result, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: SENDGRID_API_KEY missing", ErrNotConfigured)
	}

	reqBody := sendGridRequest{
		From:    sendGridAddress{Email: p.from, Name: p.fromName},
		Subject: msg.Subject,
	}
	reqBody.Personalizations = []struct {
		To []sendGridAddress `json:"to"`
	}{{To: []sendGridAddress{{Email: msg.To}}}}
	reqBody.Content = []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{{Type: "text/plain", Value: msg.Body}}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendGridURL, bytes.NewBuffer(jsonData))
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

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	return &Result{
		Provider:  p.Name(),
		MessageID: resp.Header.Get("X-Message-Id"),
		To:        msg.To,
		Subject:   msg.Subject,
	}, nil
}
