package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/thinklet/thinklet/internal/config"
	"github.com/thinklet/thinklet/internal/db"
	"github.com/thinklet/thinklet/internal/events"
	"github.com/thinklet/thinklet/internal/httpserver"
	"github.com/thinklet/thinklet/internal/logging"
	mw "github.com/thinklet/thinklet/internal/middleware"
	"github.com/thinklet/thinklet/internal/repo"
	"github.com/thinklet/thinklet/internal/search"
	"github.com/thinklet/thinklet/internal/service"
	"github.com/thinklet/thinklet/internal/tokens"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.RefreshSecret, "REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	var index *search.Index
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		index = search.NewIndex(esClient, "articles")
	}

	codec := &tokens.Codec{
		AccessSecret:  cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}

	gormRepo := &repo.GormRepo{DB: database}

	deps := httpserver.Deps{
		Auth: &httpserver.AuthHTTP{
			Svc:          &service.AuthService{Repo: gormRepo, Codec: codec, Events: producer},
			CookieMaxAge: cfg.CookieMaxAge,
		},
		Articles: &httpserver.ArticleHTTP{
			Svc: &service.ArticleService{Repo: gormRepo, Index: index, Events: producer},
		},
		Category: &httpserver.CategoryHTTP{
			Svc: &service.CategoryService{Repo: gormRepo},
		},
		Profile: &httpserver.ProfileHTTP{
			Svc: &service.ProfileService{Repo: gormRepo},
		},
		Guard: mw.NewAccessGuard(codec),
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(mw.RequestLogger(logger))

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
