package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nkust-web/campus/config"
	"github.com/nkust-web/campus/logger"
	"github.com/nkust-web/campus/middlewares"
	"github.com/nkust-web/campus/repository"
	"github.com/nkust-web/campus/router"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New("info", "json").Fatalf("Config load error: %v", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err := run(cfg, log); err != nil {
		log.Fatal(err)
	}
}

// run owns every resource it opens, so returning an error still closes them.
func run(cfg *config.Config, log *logrus.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	db, err := config.OpenDB(cfg, log)
	if err != nil {
		return fmt.Errorf("DB connection error: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Run database migrations
	if err := config.MigrateDB(db); err != nil {
		return err
	}
	log.Info("Database migration completed successfully")

	var repo repository.NewsRepository = repository.NewGormNewsRepository(db, log, cfg.Database.QueryTimeout)
	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := config.OpenRedis(ctx, cfg)
		cancel()
		if err != nil {
			return fmt.Errorf("redis connection error: %w", err)
		}
		defer rdb.Close()
		repo = repository.NewCachedNewsRepository(repo, rdb, cfg.Redis.CacheTTL, log)
		log.WithField("ttl", cfg.Redis.CacheTTL.String()).Info("News cache enabled")
	}

	stop := make(chan struct{})
	defer close(stop)
	var limiter *middlewares.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = middlewares.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go limiter.Run(time.Minute, stop)
	}

	r, err := router.InitRouter(router.Deps{
		Config:  cfg,
		Repo:    repo,
		Log:     log,
		Limiter: limiter,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: cfg.App.ReadTimeout,
		ReadTimeout:       cfg.App.ReadTimeout,
		WriteTimeout:      cfg.App.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.App.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server Shutdown: %v", err)
	}
	log.Info("Server exiting")
	return nil
}
