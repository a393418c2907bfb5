package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration, loaded from environment variables.
type Config struct {
	// Server
	Port string `env:"PORT" envDefault:"8080"`

	// LLM
	OpenRouterAPIKey string  `env:"OPENROUTER_API_KEY"`
	Model            string  `env:"LLM_MODEL" envDefault:"openai/gpt-4o-mini"`
	Temperature      float64 `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	MaxTokens        int     `env:"LLM_MAX_TOKENS" envDefault:"1000"`
	HistoryWindow    int     `env:"LLM_HISTORY_WINDOW" envDefault:"15"`

	// Integrations
	OpenWeatherAPIKey string `env:"OPENWEATHER_API_KEY"`
	NewsAPIKey        string `env:"NEWS_API_KEY"`
	DefaultLocation   string `env:"DEFAULT_LOCATION" envDefault:"London"`
	NewsCountry       string `env:"NEWS_COUNTRY" envDefault:"us"`

	// Text-to-speech
	ElevenLabsAPIKey string        `env:"ELEVENLABS_API_KEY"`
	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	VoiceRSSAPIKey   string        `env:"VOICERSS_API_KEY"`
	TTSDefault       string        `env:"TTS_DEFAULT_PROVIDER" envDefault:"elevenlabs"`
	TTSFallbackOrder []string      `env:"TTS_FALLBACK_ORDER" envSeparator:"," envDefault:"elevenlabs,openai,voicerss"`
	TTSTempDir       string        `env:"TTS_TEMP_DIR" envDefault:"/tmp/voice-assistant/audio"`
	TTSRetention     time.Duration `env:"TTS_RETENTION" envDefault:"24h"`
	TTSSweepSchedule string        `env:"TTS_SWEEP_SCHEDULE" envDefault:"@every 1h"`

	// Email
	ResendAPIKey    string `env:"RESEND_API_KEY"`
	SendGridAPIKey  string `env:"SENDGRID_API_KEY"`
	EmailDefault    string `env:"EMAIL_DEFAULT_PROVIDER" envDefault:"resend"`
	EmailFromAddr   string `env:"EMAIL_FROM_ADDRESS" envDefault:"assistant@localhost"`
	EmailFromName   string `env:"EMAIL_FROM_NAME" envDefault:"Voice Assistant"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
