package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/optima-app/api-server-go/internal/audit"
	"github.com/optima-app/api-server-go/internal/config"
	"github.com/optima-app/api-server-go/internal/database"
	"github.com/optima-app/api-server-go/internal/handler"
	"github.com/optima-app/api-server-go/internal/jobs"
	"github.com/optima-app/api-server-go/internal/middleware"
	"github.com/optima-app/api-server-go/internal/redis"
	"github.com/optima-app/api-server-go/internal/repository"
	"github.com/optima-app/api-server-go/internal/service"
	"github.com/optima-app/api-server-go/internal/token"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()

	store, err := database.Connect(ctx, cfg.FirebaseCredentials, cfg.StorageBucket)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to firebase")
	}
	defer store.Close()

	pingCtx, cancel := context.WithTimeout(ctx, config.StorePingTimeout)
	if err := store.Ping(pingCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping firestore")
	}
	cancel()
	log.Info().Msg("firestore connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	adminRepo := repository.NewAdminRepository(store.Firestore)
	userRepo := repository.NewUserRepository(store.Firestore)
	taskRepo := repository.NewTaskRepository(store.Firestore)
	userTaskRepo := repository.NewUserTaskRepository(store.Firestore)
	postRepo := repository.NewPostRepository(store.Firestore)
	commentRepo := repository.NewCommentRepository(store.Firestore)
	screentimeRepo := repository.NewScreentimeRepository(store.Firestore)
	auditLogRepo := repository.NewAuditLogRepository(store.Firestore)

	recorder := audit.NewRecorder(auditLogRepo)
	issuer := token.NewIssuer(cfg.AdminSecretKey, cfg.TokenTTL())
	identity := database.NewIdentity(store.Auth)

	var blobs service.BlobStore
	if store.Bucket != nil {
		blobs = database.NewBlobs(store.Bucket, cfg.StorageBucket)
	}

	adminService := service.NewAdminService(adminRepo, auditLogRepo, recorder, issuer, cfg.AdminRegistrationKey)
	taskService := service.NewTaskService(taskRepo, recorder)
	userService := service.NewUserAdminService(userRepo, userTaskRepo, screentimeRepo, recorder)
	moderationService := service.NewModerationService(postRepo, commentRepo, recorder)
	analyticsService := service.NewAnalyticsService(userRepo, taskRepo, userTaskRepo, postRepo, screentimeRepo)
	accountService := service.NewAccountService(identity, userRepo)
	socialService := service.NewSocialService(postRepo, commentRepo, userRepo)
	storageService := service.NewStorageService(blobs, userRepo)

	authMiddleware := middleware.NewAuthMiddleware(issuer, adminRepo)
	loginRateLimiter := middleware.NewLoginRateLimiter(redisClient.Client)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)

	adminHandler := handler.NewAdminHandler(
		adminService, taskService, userService, moderationService, analyticsService,
		authMiddleware.Handler, loginRateLimiter.Handler,
	)
	accountHandler := handler.NewAccountHandler(accountService, socialService, storageService)
	socialHandler := handler.NewSocialHandler(socialService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)
	r.Use(securityHeadersMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/admin", adminHandler.Routes())
		r.Mount("/posts", socialHandler.Routes())
		r.Mount("/", accountHandler.Routes())
	})

	retentionJob := jobs.NewRetentionJob(auditLogRepo, cfg.AuditRetention(), config.RetentionJobInterval)
	retentionJob.Start()
	defer retentionJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
