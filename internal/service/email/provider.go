package email

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownProvider indicates the caller named a provider that is not
// registered. Unlike speech synthesis there is no fallback chain: an unknown
// name is a request-level error.
var ErrUnknownProvider = errors.New("email: unknown provider")

// ErrNotConfigured indicates a provider is missing its credential.
var ErrNotConfigured = errors.New("email: provider not configured")

// Message is an outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Result describes a completed send.
type Result struct {
	Provider  string `json:"provider"`
	MessageID string `json:"message_id,omitempty"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
}

// Provider is a single email-sending backend.
type Provider interface {
	Name() string
	Send(ctx context.Context, msg Message) (*Result, error)
}

// Registry maps provider names to backends with a configurable default.
type Registry struct {
	mu          sync.RWMutex
	providers   map[string]Provider
	defaultName string
}

// NewRegistry creates a registry holding the given providers; the first one
// becomes the default.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range providers {
		r.providers[p.Name()] = p
		if r.defaultName == "" {
			r.defaultName = p.Name()
		}
	}
	return r
}

// SetDefault changes the default provider.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	r.defaultName = name
	return nil
}

// Send delivers a message through the named provider, or the default when
// providerName is empty.
func (r *Registry) Send(ctx context.Context, providerName string, msg Message) (*Result, error) {
	r.mu.RLock()
	if providerName == "" {
		providerName = r.defaultName
	}
	p, ok := r.providers[providerName]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, providerName)
	}
	return p.Send(ctx, msg)
}
