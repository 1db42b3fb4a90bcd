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
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/imaging"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/routes"
	"github.com/BruksfildServices01/barbershop-booking/internal/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.JWTSecret == "changeme" && cfg.IsProduction() {
		zl.Fatal("JWT_SECRET must be set in production")
	}

	db, err := dbpkg.Open(cfg, zl)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}

	rdb, err := cache.NewRedis(cfg)
	if err != nil {
		zl.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		rdb = nil
	}

	loc := timezone.Location(cfg.ShopTimezone)
	catalog := cache.NewCatalog(infraRepo.NewServiceGormRepository(db), rdb, cfg.CatalogCacheTTL, zl)
	dispatcher := audit.NewDispatcher(audit.New(db), zl, 256)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, zl)

	var photos ucAppointment.PhotoStore
	if cfg.PhotoStorageEnabled() {
		photos = storage.NewPhotoStore(storage.NewS3Client(cfg), cfg.S3Bucket, cfg.S3Region, cfg.S3PublicURL)
	} else {
		zl.Info("S3_BUCKET not set, photo uploads disabled")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Config:      cfg,
		Log:         zl,
		Location:    loc,
		Catalog:     catalog,
		Audit:       dispatcher,
		RateLimiter: limiter,
		PhotoStore:  photos,
		Encoder:     imaging.NewWebPEncoder(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Sweep(30 * time.Minute)
			}
		}
	}()

	go func() {
		zl.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("env", cfg.Env),
			zap.String("shop_timezone", loc.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("http shutdown", zap.Error(err))
	}
	dispatcher.Close()
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			zl.Error("redis close", zap.Error(err))
		}
	}
	if err := dbpkg.Close(db); err != nil {
		zl.Error("database close", zap.Error(err))
	}
}
