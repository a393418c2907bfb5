package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Model != "openai/gpt-4o-mini" {
		t.Errorf("Model = %q, want openai/gpt-4o-mini", cfg.Model)
	}
	if cfg.HistoryWindow != 15 {
		t.Errorf("HistoryWindow = %d, want 15", cfg.HistoryWindow)
	}
	if cfg.TTSDefault != "elevenlabs" {
		t.Errorf("TTSDefault = %q, want elevenlabs", cfg.TTSDefault)
	}
	if len(cfg.TTSFallbackOrder) != 3 {
		t.Fatalf("TTSFallbackOrder = %v, want 3 entries", cfg.TTSFallbackOrder)
	}
	if cfg.TTSRetention != 24*time.Hour {
		t.Errorf("TTSRetention = %v, want 24h", cfg.TTSRetention)
	}
	if cfg.EmailDefault != "resend" {
		t.Errorf("EmailDefault = %q, want resend", cfg.EmailDefault)
	}
	if cfg.DefaultLocation != "London" {
		t.Errorf("DefaultLocation = %q, want London", cfg.DefaultLocation)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("TTS_FALLBACK_ORDER", "openai,voicerss")
	t.Setenv("TTS_RETENTION", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", cfg.Temperature)
	}
	if len(cfg.TTSFallbackOrder) != 2 || cfg.TTSFallbackOrder[0] != "openai" {
		t.Errorf("TTSFallbackOrder = %v, want [openai voicerss]", cfg.TTSFallbackOrder)
	}
	if cfg.TTSRetention != time.Hour {
		t.Errorf("TTSRetention = %v, want 1h", cfg.TTSRetention)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("TTS_RETENTION", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}
