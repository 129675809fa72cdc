package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/publilab/munbot/internal/catalog"
	"github.com/publilab/munbot/internal/config"
	dbRedis "github.com/publilab/munbot/internal/db/redis"
	logpkg "github.com/publilab/munbot/internal/logger"
	"github.com/publilab/munbot/internal/metrics"
	"github.com/publilab/munbot/internal/normalizer"
	"github.com/publilab/munbot/internal/notify"
	"github.com/publilab/munbot/internal/reminder"
	appointmentrepo "github.com/publilab/munbot/internal/repository/appointment"
	complaintrepo "github.com/publilab/munbot/internal/repository/complaint"
	"github.com/publilab/munbot/internal/resolver"
	"github.com/publilab/munbot/internal/tfidf"
	chiTransport "github.com/publilab/munbot/internal/transport/chi"
	openaiChat "github.com/publilab/munbot/internal/transport/openai"
	answeruc "github.com/publilab/munbot/internal/usecase/answer"
	appointmentuc "github.com/publilab/munbot/internal/usecase/appointment"
	complaintuc "github.com/publilab/munbot/internal/usecase/complaint"
	"github.com/publilab/munbot/internal/usecase/conversation"
	healthuc "github.com/publilab/munbot/internal/usecase/health"
	"github.com/publilab/munbot/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting munbot API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Create database store
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register bot metrics explicitly (no init())
	metrics.RegisterBotMetrics()

	// Load the document catalog and resolution rules once; shared read-only.
	cat, err := catalog.Load(cfg.Data.CatalogPath)
	if err != nil {
		logger.Fatal("Failed to load document catalog", zap.Error(err))
	}
	rules, err := catalog.LoadRules(cfg.Data.RulesPath, cat)
	if err != nil {
		logger.Fatal("Failed to load resolution rules", zap.Error(err))
	}
	logger.Info("Catalog loaded", zap.Int("records", cat.Len()))

	convSvc := conversation.New(
		cat,
		resolver.New(rules),
		normalizer.New(rules),
		cfg.Data.EntityType,
	)

	// Question corpus + model fallback
	docs, err := answeruc.LoadCorpus(cfg.Data.CorpusDir)
	if err != nil {
		logger.Fatal("Failed to load question corpus", zap.Error(err))
	}
	index := tfidf.NewIndex(docs)
	logger.Info("Corpus indexed", zap.Int("documents", index.Len()))

	chat := buildChat(cfg.Model, logger)

	// Pass nil interface (not typed nil pointer!) if the model is not configured.
	// Go gotcha: (*openaiChat.Chat)(nil) wrapped in answeruc.Model != nil.
	var model answeruc.Model
	if chat != nil {
		model = chat
	}
	answerSvc := answeruc.New(index, model, cfg.Model.Threshold, logger)

	// Repositories + booking/complaint services
	apptSvc := appointmentuc.New(appointmentrepo.New(store))
	complaintSvc := complaintuc.New(complaintrepo.New(store))

	// Seed bookable slots; slots already stored (booked or not) are kept.
	if cfg.Data.SlotsPath != "" {
		slots, err := appointmentuc.LoadSlots(cfg.Data.SlotsPath)
		if err != nil {
			logger.Fatal("Failed to load appointment slots", zap.Error(err))
		}
		seeded, err := apptSvc.Seed(ctx, slots)
		if err != nil {
			logger.Fatal("Failed to seed appointment slots", zap.Error(err))
		}
		logger.Info("Appointment slots seeded",
			zap.Int("in_file", len(slots)),
			zap.Int("written", seeded),
		)
	}
	if err := apptSvc.RefreshActive(ctx); err != nil {
		logger.Warn("Failed to refresh active appointments gauge", zap.Error(err))
	}

	// Health service
	healthSvc := healthuc.New(store, newModelHealthChecker(chat))

	// Daily reminder sweep
	reminderCtx, stopReminders := context.WithCancel(ctx)
	defer stopReminders()
	if cfg.Reminder.Enabled {
		sched := reminder.New(apptSvc, buildNotifiers(cfg.Notify, logger), cfg.Reminder.Hour, logger)
		go sched.Run(reminderCtx)
	}

	// Create chi server
	server := chiTransport.NewServer(convSvc, answerSvc, apptSvc, complaintSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")
	stopReminders()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildChat creates the model fallback client, or nil when unconfigured.
func buildChat(cfg config.ModelConfig, logger *zap.Logger) *openaiChat.Chat {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		logger.Info("Model fallback disabled: no api_key or base_url configured")
		return nil
	}
	return openaiChat.NewChat(&openaiChat.Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		System:      cfg.System,
		Logger:      logger,
	})
}

// buildNotifiers assembles the reminder delivery channels.
func buildNotifiers(cfg config.NotifyConfig, logger *zap.Logger) []notify.Notifier {
	notifiers := []notify.Notifier{
		notify.NewEmailLogger(cfg.EmailFrom, logger),
	}
	if cfg.WhatsappPhoneID != "" {
		notifiers = append(notifiers, notify.NewWhatsApp(&notify.WhatsAppConfig{
			BaseURL: cfg.WhatsappBaseURL,
			PhoneID: cfg.WhatsappPhoneID,
			Token:   cfg.WhatsappToken,
			Timeout: time.Duration(cfg.WhatsappTimeout) * time.Second,
			Logger:  logger,
		}))
	}
	return notifiers
}

// modelHealthChecker adapts the chat client for the health service, treating
// an unconfigured model as absent rather than failing.
type modelHealthChecker struct {
	chat *openaiChat.Chat
}

func newModelHealthChecker(chat *openaiChat.Chat) healthuc.ModelChecker {
	if chat == nil {
		return nil
	}
	return &modelHealthChecker{chat: chat}
}

func (h *modelHealthChecker) HealthCheck(ctx context.Context) error {
	if err := h.chat.HealthCheck(ctx); err != nil {
		return fmt.Errorf("model health check: %w", err)
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
