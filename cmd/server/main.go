package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aliskhannn/deutsch-quiz/internal/config"
	"github.com/aliskhannn/deutsch-quiz/internal/delivery/web"
	"github.com/aliskhannn/deutsch-quiz/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/deutsch-quiz/internal/infra/postgres/repository"
	"github.com/aliskhannn/deutsch-quiz/internal/logger"
	"github.com/aliskhannn/deutsch-quiz/internal/metrics"
	"github.com/aliskhannn/deutsch-quiz/internal/repository"
	"github.com/aliskhannn/deutsch-quiz/internal/service"
	"github.com/aliskhannn/deutsch-quiz/internal/session"
	"github.com/aliskhannn/deutsch-quiz/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		lg.Fatal("database is not configured", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		lg.Fatal("failed to apply schema", zap.Error(err))
	}

	sessionStore, closeStore, err := newSessionStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to set up session store", zap.Error(err))
	}
	defer closeStore()

	// Initialize repositories and services.
	contentRepo := repository.NewContentRepository(cfg.Content.VocabularyPath, cfg.Content.GrammarPath)
	userRepo := pgrepo.NewUserRepository(pool)
	resultRepo := pgrepo.NewResultRepository(pool)

	contentService := service.NewContentService(contentRepo)
	quizService := service.NewQuizService(contentRepo, service.NewOptionGenerator(time.Now().UnixNano()))
	accountService := service.NewAccountService(userRepo, bcrypt.DefaultCost)
	resultService := service.NewResultService(resultRepo)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sessions := session.NewManager(sessionStore, []byte(cfg.Session.Secret), session.Options{
		CookieName:   cfg.Session.CookieName,
		TTL:          cfg.Session.TTL,
		SecureCookie: cfg.Session.SecureCookie,
	}, lg)

	handler := web.NewHandler(
		lg,
		sessions,
		metrics.New(reg),
		reg,
		pool,
		contentService,
		quizService,
		accountService,
		resultService,
	)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.HTTP.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	handler.Routes(engine)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		lg.Info("http server started", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("failed to shut down http server", zap.Error(err))
	}
	lg.Info("http server stopped")
}

// newSessionStore returns a Redis store when Redis is configured and an
// in-memory store otherwise.
func newSessionStore(ctx context.Context, cfg *config.Config, lg *zap.Logger) (session.Store, func(), error) {
	if cfg.Redis.Addr == "" {
		lg.Info("using in-memory session store")
		return storage.NewMemorySessionStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	lg.Info("using redis session store", zap.String("addr", cfg.Redis.Addr))
	return storage.NewRedisSessionStore(client), func() { _ = client.Close() }, nil
}
