package llm

import (
	"context"
	"errors"
)

// ErrAuthentication indicates the remote model rejected the configured
// credential. Callers surface it differently from generic failures so the
// user can be told to fix configuration instead of retrying.
var ErrAuthentication = errors.New("llm: authentication failed")

// Message is a role-tagged turn forwarded to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider defines the interface for LLM backends.
type Provider interface {
	// Complete sends the current utterance plus recent history (and an
	// optional base64-encoded image) and returns the raw reply text.
	Complete(ctx context.Context, utterance string, history []Message, imageBase64 string) (string, error)
}
