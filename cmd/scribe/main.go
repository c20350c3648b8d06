package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avelichko/scribe/internal/api"
	"github.com/avelichko/scribe/internal/auth"
	"github.com/avelichko/scribe/internal/config"
	"github.com/avelichko/scribe/internal/database"
	redisclient "github.com/avelichko/scribe/internal/redis"
	"github.com/avelichko/scribe/internal/service"
	"github.com/avelichko/scribe/internal/snowflake"
	"github.com/avelichko/scribe/internal/storage"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	// --- Infrastructure ---

	pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	rdb, err := redisclient.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	images, err := storage.NewImageStore(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket)
	if err != nil {
		log.Fatalf("minio: %v", err)
	}

	sf, err := snowflake.NewGenerator(1)
	if err != nil {
		log.Fatalf("snowflake: %v", err)
	}
	tokenSvc := auth.NewTokenService(cfg.JWTSecret)

	// --- Repositories & services ---

	users := database.NewUserRepository(pool)
	posts := database.NewPostRepository(pool)

	authSvc := service.NewAuthService(users, tokenSvc, sf)
	postSvc := service.NewPostService(posts, rdb, sf)

	deps := &api.Dependencies{
		Auth:         api.NewAuthHandler(authSvc),
		Posts:        api.NewPostHandler(postSvc),
		Uploads:      api.NewUploadHandler(images),
		TokenService: tokenSvc,
	}

	// --- Echo ---

	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	// Credentialed CORS: only explicitly listed origins may see responses,
	// since cookies ride along on every cross-site request.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	api.SetupRouter(e, deps)

	// --- Start ---

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("scribe starting on %s", cfg.ServerAddr)
		if err := e.Start(cfg.ServerAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-sigCtx.Done()
	log.Println("shutting down...")
	if err := e.Shutdown(context.Background()); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
