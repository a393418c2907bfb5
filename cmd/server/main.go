package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"voice-assistant/internal/config"
	"voice-assistant/internal/handlers"
	"voice-assistant/internal/logger"
	"voice-assistant/internal/metrics"
	"voice-assistant/internal/service/assistant"
	"voice-assistant/internal/service/email"
	"voice-assistant/internal/service/llm"
	"voice-assistant/internal/service/music"
	"voice-assistant/internal/service/news"
	"voice-assistant/internal/service/reminder"
	"voice-assistant/internal/service/tts"
	"voice-assistant/internal/service/weather"
	"voice-assistant/internal/store"
)

// statusRecorder captures the response status for the metrics middleware.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.RequestCount.WithLabelValues(r.Method, endpoint, strconv.Itoa(rec.status)).Inc()
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load configuration")
	}

	// Shared state, constructed once and injected into the handlers.
	memStore := store.NewMemoryStore()
	reminders := reminder.NewService()

	weatherClient := weather.NewClient(cfg.OpenWeatherAPIKey)
	newsClient := news.NewClient(cfg.NewsAPIKey)
	musicClient := music.NewClient()

	emailRegistry := email.NewRegistry(
		email.NewResend(cfg.ResendAPIKey, cfg.EmailFromAddr),
		email.NewSendGrid(cfg.SendGridAPIKey, cfg.EmailFromAddr, cfg.EmailFromName),
	)
	if err := emailRegistry.SetDefault(cfg.EmailDefault); err != nil {
		logger.Log.WithError(err).Fatal("Invalid default email provider")
	}

	ttsRegistry := tts.NewRegistry(
		tts.NewElevenLabs(cfg.ElevenLabsAPIKey),
		tts.NewOpenAI(cfg.OpenAIAPIKey),
		tts.NewVoiceRSS(cfg.VoiceRSSAPIKey),
	)
	if err := ttsRegistry.SetDefault(cfg.TTSDefault); err != nil {
		logger.Log.WithError(err).Fatal("Invalid default TTS provider")
	}

	orchestrator := tts.NewOrchestrator(ttsRegistry, cfg.TTSFallbackOrder, cfg.TTSTempDir, cfg.TTSRetention)
	if err := orchestrator.StartSweeper(cfg.TTSSweepSchedule); err != nil {
		logger.Log.WithError(err).Fatal("Failed to start audio sweeper")
	}

	provider := llm.NewOpenRouterProvider(cfg)
	router := assistant.NewRouter(weatherClient, newsClient, musicClient, reminders, emailRegistry, cfg.DefaultLocation, cfg.NewsCountry)
	asst := assistant.NewService(memStore, provider, router)

	h := handlers.New(cfg, memStore, asst, orchestrator, weatherClient, newsClient, reminders, emailRegistry)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", instrument("/api/health", h.HealthHandler))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/conversations", instrument("/api/conversations", h.GetConversationsHandler))
	mux.HandleFunc("POST /api/conversations", instrument("/api/conversations", h.CreateConversationHandler))
	mux.HandleFunc("GET /api/conversations/{id}", instrument("/api/conversations/{id}", h.GetConversationHandler))
	mux.HandleFunc("DELETE /api/conversations/{id}", instrument("/api/conversations/{id}", h.DeleteConversationHandler))
	mux.HandleFunc("GET /api/conversations/{id}/messages", instrument("/api/conversations/{id}/messages", h.GetConversationMessagesHandler))
	mux.HandleFunc("DELETE /api/messages/{id}", instrument("/api/messages/{id}", h.DeleteMessageHandler))
	mux.HandleFunc("POST /api/messages/batch-delete", instrument("/api/messages/batch-delete", h.DeleteMessagesHandler))

	mux.HandleFunc("POST /api/voice/process", instrument("/api/voice/process", h.VoiceProcessHandler))
	mux.HandleFunc("POST /api/tts", instrument("/api/tts", h.SynthesizeHandler))
	mux.HandleFunc("GET /api/audio/{name}", instrument("/api/audio/{name}", h.AudioHandler))

	mux.HandleFunc("GET /api/weather", instrument("/api/weather", h.WeatherHandler))
	mux.HandleFunc("GET /api/news", instrument("/api/news", h.NewsHandler))
	mux.HandleFunc("POST /api/reminders", instrument("/api/reminders", h.CreateReminderHandler))
	mux.HandleFunc("GET /api/reminders", instrument("/api/reminders", h.GetRemindersHandler))
	mux.HandleFunc("GET /api/reminders/upcoming", instrument("/api/reminders/upcoming", h.GetUpcomingRemindersHandler))
	mux.HandleFunc("POST /api/reminders/{id}/complete", instrument("/api/reminders/{id}/complete", h.CompleteReminderHandler))
	mux.HandleFunc("POST /api/email/send", instrument("/api/email/send", h.SendEmailHandler))
	mux.HandleFunc("POST /api/documents/summarize", instrument("/api/documents/summarize", h.SummarizeDocumentHandler))
	mux.HandleFunc("POST /api/documents/analyze", instrument("/api/documents/analyze", h.AnalyzeDocumentHandler))
	mux.HandleFunc("POST /api/images/analyze", instrument("/api/images/analyze", h.AnalyzeImageHandler))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		logger.Log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("Server failed")
		}
	}()

	// Shut down on SIGINT/SIGTERM: stop the sweeper, remove tracked audio
	// artifacts, then drain the server.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down")
	orchestrator.StopSweeper()
	orchestrator.Cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Server shutdown error")
	}
}
