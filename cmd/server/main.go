package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"keyword-match-service/internal/config"
	"keyword-match-service/internal/domain"
	"keyword-match-service/internal/handler"
	"keyword-match-service/internal/matcher"
	"keyword-match-service/internal/middleware"
	"keyword-match-service/internal/repository"
	"keyword-match-service/internal/source"
	"keyword-match-service/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	addrFlag := pflag.String("addr", "", "listen address override (host:port)")
	logLevelFlag := pflag.String("log-level", "", "log level override")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *logLevelFlag != "" {
		cfg.Logger.Level = *logLevelFlag
	}

	initLogger(cfg)

	// Database pool (optional - based on config)
	var pool *pgxpool.Pool
	if cfg.Database.Enabled {
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
		if err != nil {
			log.Fatalf("parse db config: %v", err)
		}
		poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

		pool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
		if err != nil {
			log.Fatalf("create db pool: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			log.Fatalf("ping db: %v", err)
		}
		if err := repository.EnsureSchema(context.Background(), pool); err != nil {
			log.Fatalf("ensure db schema: %v", err)
		}
		log.Info("database connection established")
	} else {
		log.Info("database disabled, running without snapshots and audit")
	}

	// Keyword source: local file beats upstream API when configured
	var src domain.KeywordSource
	if cfg.Keywords.File != "" {
		src, err = source.NewFile(cfg.Keywords.File)
		if err != nil {
			log.Fatalf("load keywords file: %v", err)
		}
		log.WithField("path", cfg.Keywords.File).Info("serving keyword sets from local file")
	} else {
		url, err := cfg.Keywords.ResolveURL()
		if err != nil {
			log.Fatalf("resolve keywords url: %v", err)
		}
		src = upstream.NewClient(url, cfg.Keywords.Timeout, cfg.Keywords.DefaultTTL)
	}

	var snapshotRepo domain.SnapshotRepository
	var auditRepo domain.AuditRepository
	if pool != nil {
		snapshotRepo = repository.NewSnapshotRepository(pool)
		if cfg.Database.Audit {
			auditRepo = repository.NewAuditRepository(pool)
			log.Info("match auditing enabled")
		}
	}

	m := matcher.New(src, snapshotRepo, auditRepo)
	h := handler.New(m, auditRepo)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/keywords")
	h.RegisterRoutes(api)

	// Health check with DB ping when a pool is configured
	router.GET("/healthz", func(c *gin.Context) {
		if pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	if *addrFlag != "" {
		addr = *addrFlag
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
