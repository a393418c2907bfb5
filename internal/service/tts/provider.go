package tts

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotConfigured indicates a provider is missing its credential. In the
// orchestrated path it triggers fallback rather than aborting.
var ErrNotConfigured = errors.New("tts: provider not configured")

// Options are per-request synthesis knobs. Providers coerce values they do
// not support to their own documented defaults.
type Options struct {
	Voice string
	Speed float64
}

// Provider is a single speech-synthesis backend.
type Provider interface {
	// Name returns the registry key for this provider.
	Name() string

	// Synthesize converts text to audio bytes.
	Synthesize(ctx context.Context, text string, opts Options) ([]byte, error)
}

// Registry is a named collection of interchangeable providers with a
// mutable default. The fallback order lives in the orchestrator's
// configuration, not here.
type Registry struct {
	mu          sync.RWMutex
	providers   map[string]Provider
	defaultName string
}

// NewRegistry creates a registry holding the given providers; the first
// one becomes the default.
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

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown tts provider %q", name)
	}
	return p, nil
}

// DefaultName returns the current default provider name.
func (r *Registry) DefaultName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultName
}

// SetDefault changes the default provider.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("unknown tts provider %q", name)
	}
	r.defaultName = name
	return nil
}

// Names returns the registered provider names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
