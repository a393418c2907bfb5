package tts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeProvider struct {
	name  string
	audio []byte
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatalf("ReadDir(%q) error = %v", dir, err)
	}
	return len(entries)
}

func TestOrchestrator_FallbackToSecondProvider(t *testing.T) {
	dir := t.TempDir()
	primary := &fakeProvider{name: "primary", err: errors.New("boom")}
	backup := &fakeProvider{name: "backup", audio: []byte("mp3-bytes")}

	registry := NewRegistry(primary, backup)
	o := NewOrchestrator(registry, []string{"primary", "backup"}, dir, time.Hour)

	path, err := o.SynthesizeToFile(context.Background(), "hello", "", Options{})
	if err != nil {
		t.Fatalf("SynthesizeToFile() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("audio written to %q, want inside %q", path, dir)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "mp3-bytes" {
		t.Errorf("file content = %q, want %q", data, "mp3-bytes")
	}
	if primary.calls != 1 || backup.calls != 1 {
		t.Errorf("calls = primary %d, backup %d; want 1 each", primary.calls, backup.calls)
	}
	if got := countFiles(t, dir); got != 1 {
		t.Errorf("temp files = %d, want exactly 1", got)
	}
	if got := o.TrackedCount(); got != 1 {
		t.Errorf("TrackedCount() = %d, want 1", got)
	}
}

func TestOrchestrator_SkipsAlreadyTriedProvider(t *testing.T) {
	dir := t.TempDir()
	primary := &fakeProvider{name: "primary", err: errors.New("boom")}
	backup := &fakeProvider{name: "backup", audio: []byte("ok")}

	registry := NewRegistry(primary, backup)
	o := NewOrchestrator(registry, []string{"primary", "backup"}, dir, time.Hour)

	// Explicitly request primary; the fallback order lists it again.
	if _, err := o.SynthesizeToFile(context.Background(), "hello", "primary", Options{}); err != nil {
		t.Fatalf("SynthesizeToFile() error = %v", err)
	}
	if primary.calls != 1 {
		t.Errorf("primary tried %d times, want 1", primary.calls)
	}
}

func TestOrchestrator_AllProvidersFail(t *testing.T) {
	dir := t.TempDir()
	primary := &fakeProvider{name: "primary", err: errors.New("boom")}
	backup := &fakeProvider{name: "backup", err: ErrNotConfigured}

	registry := NewRegistry(primary, backup)
	o := NewOrchestrator(registry, []string{"primary", "backup", "ghost"}, dir, time.Hour)

	_, err := o.SynthesizeToFile(context.Background(), "hello", "", Options{})
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("SynthesizeToFile() error = %v, want ErrAllProvidersFailed", err)
	}
	if got := countFiles(t, dir); got != 0 {
		t.Errorf("temp files = %d, want 0 after total failure", got)
	}
	if got := o.TrackedCount(); got != 0 {
		t.Errorf("TrackedCount() = %d, want 0", got)
	}
}

func TestOrchestrator_UnknownRequestedProviderStillFallsBack(t *testing.T) {
	dir := t.TempDir()
	backup := &fakeProvider{name: "backup", audio: []byte("ok")}

	registry := NewRegistry(backup)
	o := NewOrchestrator(registry, []string{"backup"}, dir, time.Hour)

	if _, err := o.SynthesizeToFile(context.Background(), "hello", "nonexistent", Options{}); err != nil {
		t.Fatalf("SynthesizeToFile() error = %v", err)
	}
	if backup.calls != 1 {
		t.Errorf("backup calls = %d, want 1", backup.calls)
	}
}

func TestOrchestrator_SweepRemovesOnlyExpired(t *testing.T) {
	dir := t.TempDir()
	provider := &fakeProvider{name: "p", audio: []byte("ok")}
	registry := NewRegistry(provider)
	o := NewOrchestrator(registry, nil, dir, time.Hour)

	oldPath, err := o.SynthesizeToFile(context.Background(), "old", "", Options{})
	if err != nil {
		t.Fatalf("SynthesizeToFile() error = %v", err)
	}
	// Backdate the first artifact past the retention window.
	o.mu.Lock()
	o.tracked[0].createdAt = time.Now().Add(-2 * time.Hour)
	o.mu.Unlock()

	freshPath, err := o.SynthesizeToFile(context.Background(), "fresh", "", Options{})
	if err != nil {
		t.Fatalf("SynthesizeToFile() error = %v", err)
	}

	if removed := o.Sweep(); removed != 1 {
		t.Errorf("Sweep() = %d, want 1", removed)
	}
	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Errorf("expired file still exists: %v", err)
	}
	if _, err := os.Stat(freshPath); err != nil {
		t.Errorf("fresh file should survive sweep: %v", err)
	}
	if got := o.TrackedCount(); got != 1 {
		t.Errorf("TrackedCount() = %d, want 1", got)
	}
}

func TestOrchestrator_CleanupRemovesEverything(t *testing.T) {
	dir := t.TempDir()
	provider := &fakeProvider{name: "p", audio: []byte("ok")}
	registry := NewRegistry(provider)
	o := NewOrchestrator(registry, nil, dir, time.Hour)

	for i := 0; i < 3; i++ {
		if _, err := o.SynthesizeToFile(context.Background(), "x", "", Options{}); err != nil {
			t.Fatalf("SynthesizeToFile() error = %v", err)
		}
	}

	o.Cleanup()
	if got := countFiles(t, dir); got != 0 {
		t.Errorf("temp files = %d, want 0 after Cleanup", got)
	}
	if got := o.TrackedCount(); got != 0 {
		t.Errorf("TrackedCount() = %d, want 0", got)
	}
}

func TestOrchestrator_ForgetStopsTracking(t *testing.T) {
	dir := t.TempDir()
	provider := &fakeProvider{name: "p", audio: []byte("ok")}
	registry := NewRegistry(provider)
	o := NewOrchestrator(registry, nil, dir, time.Hour)

	path, err := o.SynthesizeToFile(context.Background(), "x", "", Options{})
	if err != nil {
		t.Fatalf("SynthesizeToFile() error = %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	o.Forget(path)
	if got := o.TrackedCount(); got != 0 {
		t.Errorf("TrackedCount() = %d, want 0 after Forget", got)
	}
}

func TestRegistry_Defaults(t *testing.T) {
	a := &fakeProvider{name: "a"}
	b := &fakeProvider{name: "b"}
	r := NewRegistry(a, b)

	if got := r.DefaultName(); got != "a" {
		t.Errorf("DefaultName() = %q, want first registered %q", got, "a")
	}
	if err := r.SetDefault("b"); err != nil {
		t.Errorf("SetDefault(b) error = %v", err)
	}
	if got := r.DefaultName(); got != "b" {
		t.Errorf("DefaultName() = %q, want %q", got, "b")
	}
	if err := r.SetDefault("ghost"); err == nil {
		t.Error("SetDefault(ghost) expected error")
	}
	if _, err := r.Get("ghost"); err == nil {
		t.Error("Get(ghost) expected error")
	}
}
