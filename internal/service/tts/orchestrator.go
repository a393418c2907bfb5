package tts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"voice-assistant/internal/logger"
	"voice-assistant/internal/metrics"
)

// ErrAllProvidersFailed is the terminal error when the requested provider
// and every fallback provider failed.
var ErrAllProvidersFailed = errors.New("tts: all providers failed")

type trackedFile struct {
	path      string
	createdAt time.Time
}

// Orchestrator tries providers in order until one synthesizes, persists the
// audio to a managed temp directory, and evicts old artifacts on a schedule.
type Orchestrator struct {
	registry      *Registry
	fallbackOrder []string
	dir           string
	retention     time.Duration

	mu      sync.Mutex
	tracked []trackedFile

	cron *cron.Cron
}

// NewOrchestrator creates an orchestrator over the given registry. The
// fallback order is configuration data; names not present in the registry
// are skipped at attempt time.
func NewOrchestrator(registry *Registry, fallbackOrder []string, dir string, retention time.Duration) *Orchestrator {
	return &Orchestrator{
		registry:      registry,
		fallbackOrder: fallbackOrder,
		dir:           dir,
		retention:     retention,
	}
}

// SynthesizeToFile synthesizes text with the requested provider, walking the
// fallback order on failure, and writes the first successful result to a
// fresh temp file registered for later cleanup. An empty providerName means
// the registry default. Fallback providers are tried strictly sequentially.
func (o *Orchestrator) SynthesizeToFile(ctx context.Context, text, providerName string, opts Options) (string, error) {
	if providerName == "" {
		providerName = o.registry.DefaultName()
	}

	var lastErr error
	tried := map[string]bool{}

	for _, name := range append([]string{providerName}, o.fallbackOrder...) {
		if tried[name] {
			continue
		}
		tried[name] = true

		provider, err := o.registry.Get(name)
		if err != nil {
			lastErr = err
			continue
		}

		metrics.SynthesisAttempts.WithLabelValues(name).Inc()
		audio, err := provider.Synthesize(ctx, text, opts)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{"provider": name}).WithError(err).Warn("Synthesis attempt failed")
			metrics.SynthesisFailures.WithLabelValues(name).Inc()
			lastErr = err
			continue
		}

		path, err := o.persist(audio)
		if err != nil {
			return "", fmt.Errorf("failed to persist audio: %w", err)
		}
		logger.Log.WithFields(logrus.Fields{"provider": name, "path": path, "bytes": len(audio)}).Info("Synthesized audio")
		return path, nil
	}

	return "", fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
}

// persist writes audio bytes to a collision-resistant temp file and tracks
// it for eviction.
func (o *Orchestrator) persist(audio []byte) (string, error) {
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating audio directory: %w", err)
	}

	name := fmt.Sprintf("tts_%d_%s.mp3", time.Now().UnixNano(), uuid.New().String()[:8])
	path := filepath.Join(o.dir, name)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", fmt.Errorf("error writing audio file: %w", err)
	}

	o.mu.Lock()
	o.tracked = append(o.tracked, trackedFile{path: path, createdAt: time.Now()})
	o.mu.Unlock()
	return path, nil
}

// Forget stops tracking a path, typically after the caller has already
// deleted the file.
func (o *Orchestrator) Forget(path string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tracked = o.removeLocked(func(f trackedFile) bool { return f.path == path })
}

// Sweep removes tracked files older than the retention window. It is the
// body of the scheduled job and directly callable from tests.
func (o *Orchestrator) Sweep() int {
	cutoff := time.Now().Add(-o.retention)

	o.mu.Lock()
	defer o.mu.Unlock()

	removed := 0
	o.tracked = o.removeLocked(func(f trackedFile) bool {
		if !f.createdAt.Before(cutoff) {
			return false
		}
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			logger.Log.WithField("path", f.path).WithError(err).Warn("Failed to remove audio file")
		}
		removed++
		return true
	})

	if removed > 0 {
		logger.Log.WithField("removed", removed).Info("Swept expired audio files")
	}
	return removed
}

// Cleanup removes every tracked file immediately. Invoked on shutdown.
func (o *Orchestrator) Cleanup() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, f := range o.tracked {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			logger.Log.WithField("path", f.path).WithError(err).Warn("Failed to remove audio file")
		}
	}
	o.tracked = nil
}

// StartSweeper schedules the periodic sweep. schedule uses cron syntax,
// e.g. "@every 1h".
func (o *Orchestrator) StartSweeper(schedule string) error {
	if o.cron != nil {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { o.Sweep() }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	c.Start()
	o.cron = c
	return nil
}

// StopSweeper stops the scheduled sweep and waits for a running job.
func (o *Orchestrator) StopSweeper() {
	if o.cron == nil {
		return
	}
	<-o.cron.Stop().Done()
	o.cron = nil
}

// TrackedCount reports how many artifacts are currently registered.
func (o *Orchestrator) TrackedCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.tracked)
}

// removeLocked filters tracked files, dropping entries drop returns true for.
// Caller holds the mutex.
func (o *Orchestrator) removeLocked(drop func(trackedFile) bool) []trackedFile {
	kept := o.tracked[:0]
	for _, f := range o.tracked {
		if !drop(f) {
			kept = append(kept, f)
		}
	}
	return kept
}
