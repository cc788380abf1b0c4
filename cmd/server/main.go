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

	"invoice-dashboard-backend/internal/cache"
	"invoice-dashboard-backend/internal/config"
	"invoice-dashboard-backend/internal/logger"
	"invoice-dashboard-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = zl.Sync() }()

	db, err := config.InitDB(cfg.Database, zl)
	if err != nil {
		zl.Fatal("Failed to initialize database", zap.Error(err))
	}

	views, closeViews := newListingCache(cfg, zl)
	defer closeViews()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logger.Recovery(zl), logger.GinMiddleware(zl))
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Location", logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, views, zl)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		zl.Info("Server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	zl.Info("Server exited")
}

// newListingCache picks the listing cache backend named in config.
func newListingCache(cfg *config.Config, zl *zap.Logger) (cache.ListingCache, func()) {
	if cfg.Cache.Driver != "redis" {
		return cache.NewInMemoryListingCache(), func() {}
	}

	client, err := config.InitRedis(cfg.Redis)
	if err != nil {
		zl.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	return cache.NewRedisListingCache(client, cfg.Cache.KeyPrefix, cfg.Cache.TTL, zl), func() { _ = client.Close() }
}
