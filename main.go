package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rentaid-waitlist/pkg/api"
	"rentaid-waitlist/pkg/clients/postgres"
	"rentaid-waitlist/pkg/clients/rabbitmq"
	"rentaid-waitlist/pkg/clients/supabase"
	"rentaid-waitlist/pkg/config"
	"rentaid-waitlist/pkg/datastore"
	"rentaid-waitlist/pkg/leadform"
	"rentaid-waitlist/pkg/logger"
	"rentaid-waitlist/pkg/metrics"
	"rentaid-waitlist/pkg/middleware"
	"rentaid-waitlist/pkg/preference"
	"rentaid-waitlist/pkg/services"
	"rentaid-waitlist/pkg/sessions"
	"rentaid-waitlist/pkg/stories"
)

func main() {
	envErr := godotenv.Load()

	// Initialize configuration
	cfg := config.LoadConfig()

	log, err := logger.New(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: "rentaid-waitlist",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Debug("No .env file loaded", zap.Error(envErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize API clients
	store, closeStore, err := newDatastore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Error initializing datastore", zap.String("driver", cfg.DatastoreDriver), zap.Error(err))
	}
	defer closeStore()

	prefs := newPreferenceStore(ctx, cfg, log)

	var publisher services.Publisher
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.Dial(cfg.RabbitMQURL, cfg.FollowupExchange, log)
		if err != nil {
			log.Warn("Follow-up publishing disabled", zap.Error(err))
		} else {
			defer func() { _ = p.Close() }()
			publisher = p
		}
	} else {
		log.Info("Follow-up publishing disabled, RABBITMQ_URL not set")
	}

	submissionMetrics := metrics.NewSubmissionMetrics(prometheus.DefaultRegisterer)
	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	// Initialize services
	writer := services.NewSubmissionWriter(store, cfg.SubmissionsTable, submissionMetrics, log)
	followups := services.NewFollowupService(publisher, cfg.FollowupRoutingKey, submissionMetrics, log)
	submitter := leadform.NewSubmitter(leadform.NewValidator(), writer, followups, log)
	registry := sessions.NewRegistry(submitter, prefs, cfg.ResetDelay, cfg.SessionTTL, log)
	go registry.Run(ctx, time.Minute)

	storyRepo := stories.Load(cfg.StoriesDir, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Metrics(httpMetrics))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	submitLimiter := middleware.NewRateLimiter(cfg.RateLimitSubmit, cfg.RateLimitWindow)
	go func() {
		ticker := time.NewTicker(cfg.RateLimitWindow)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				submitLimiter.Prune()
			}
		}
	}()

	// Initialize handlers
	handlers := api.NewHandlers(registry, submitter, storyRepo, submissionMetrics, log, cfg.CookieSecure)

	// Register routes
	handlers.Register(router, submitLimiter.Middleware())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port), zap.String("datastore", cfg.DatastoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Error starting server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Error during shutdown", zap.Error(err))
	}
	followups.Wait()
}

func newDatastore(ctx context.Context, cfg *config.Config, log *zap.Logger) (datastore.Client, func(), error) {
	switch cfg.DatastoreDriver {
	case "supabase":
		if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
			return nil, nil, errors.New("SUPABASE_URL and SUPABASE_ANON_KEY are required")
		}
		return supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SubmissionsTable, cfg.HTTPTimeout, log), func() {}, nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, errors.New("DATABASE_URL is required")
		}
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(pool, log), pool.Close, nil
	case "memory":
		log.Warn("Using in-memory datastore, submissions are not persisted")
		return datastore.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown DATASTORE_DRIVER %q", cfg.DatastoreDriver)
}

func newPreferenceStore(ctx context.Context, cfg *config.Config, log *zap.Logger) preference.Store {
	if cfg.RedisURL == "" {
		return preference.NewMemoryStore()
	}
	store, err := preference.NewRedisStoreFromURL(cfg.RedisURL, 0)
	if err != nil {
		log.Warn("Invalid REDIS_URL, keeping preferences in memory", zap.Error(err))
		return preference.NewMemoryStore()
	}
	if err := store.Ping(ctx); err != nil {
		log.Warn("Redis unreachable, keeping preferences in memory", zap.Error(err))
		return preference.NewMemoryStore()
	}
	log.Info("Redis connected for user type preferences")
	return store
}
