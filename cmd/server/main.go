package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tteslee/fundamental/internal"
	"github.com/tteslee/fundamental/internal/api"
	"github.com/tteslee/fundamental/internal/auth"
	"github.com/tteslee/fundamental/internal/config"
	"github.com/tteslee/fundamental/internal/review"
	"github.com/tteslee/fundamental/internal/storage"
)

type app struct {
	logger     internal.Logger
	recordRepo storage.RecordRepository
	userRepo   storage.UserRepository
	generator  review.Generator
}

func (a *app) Logger() internal.Logger              { return a.logger }
func (a *app) RecordRepo() storage.RecordRepository { return a.recordRepo }
func (a *app) UserRepo() storage.UserRepository     { return a.userRepo }
func (a *app) ReviewGenerator() review.Generator    { return a.generator }

func main() {
	cfg := config.Load()

	logger, err := internal.NewZapLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	var recordRepo storage.RecordRepository
	var userRepo storage.UserRepository
	switch cfg.DBType {
	case "postgres":
		recordRepo, userRepo, err = storage.NewPostgresRepositories(cfg.DBDSN, logger)
		if err == nil {
			if migration, readErr := os.ReadFile("db/migrations/001_init.sql"); readErr != nil {
				logger.Warnf("migration file not found, skipping: %v", readErr)
			} else if execErr := recordRepo.(*storage.PostgresStorage).Exec(context.Background(), string(migration)); execErr != nil {
				logger.Warnf("migration warning: %v", execErr)
			} else {
				logger.Info("migration applied")
			}
		}
	default:
		if _, statErr := os.Stat("data"); os.IsNotExist(statErr) {
			_ = os.Mkdir("data", 0755)
		}
		recordRepo, userRepo, err = storage.NewFileRepositories(cfg.RecordsFile, cfg.UsersFile, logger)
	}
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.AuthStaticToken, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
	}

	generator := review.NewOpenAIClient(
		cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel,
		time.Duration(cfg.OpenAITimeout)*time.Second, logger,
	)

	a := &app{logger: logger, recordRepo: recordRepo, userRepo: userRepo, generator: generator}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestIDMiddleware())
	limiter := api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Stop()
	r.Use(api.RateLimitMiddleware(limiter))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := r.Group("/")
	protected.Use(auth.Middleware(provider, userRepo, cfg, logger))
	protected.GET("/records", api.GetRecords(a))
	protected.GET("/records/daily", api.GetDailyView(a))
	protected.GET("/records/weekly", api.GetWeeklyView(a))
	protected.POST("/records", api.PostRecord(a))
	protected.PUT("/records/:id", api.PutRecord(a))
	protected.DELETE("/records/:id", api.DeleteRecord(a))
	protected.POST("/ai-review", api.PostReview(a))
	protected.POST("/export", api.PostExport(a))

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if closer, ok := recordRepo.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Errorf("storage close: %v", err)
		}
	}
}
