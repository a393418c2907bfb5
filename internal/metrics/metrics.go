package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_assistant_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	LLMLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "voice_assistant_llm_latency_seconds",
			Help: "LLM call latency in seconds",
		},
	)

	ActionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_assistant_actions_total",
			Help: "Total number of dispatched assistant actions",
		},
		[]string{"action"},
	)

	SynthesisAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_assistant_tts_attempts_total",
			Help: "Total number of speech synthesis attempts",
		},
		[]string{"provider"},
	)

	SynthesisFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voice_assistant_tts_failures_total",
			Help: "Total number of failed speech synthesis attempts",
		},
		[]string{"provider"},
	)
)
