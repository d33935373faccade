package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/pricelist/internal/config"
	"github.com/Skotchmaster/pricelist/internal/es"
	"github.com/Skotchmaster/pricelist/internal/httpserver"
	"github.com/Skotchmaster/pricelist/internal/logging"
	loggingmw "github.com/Skotchmaster/pricelist/internal/middleware/logging"
	"github.com/Skotchmaster/pricelist/internal/mykafka"
	"github.com/Skotchmaster/pricelist/internal/repo"
	"github.com/Skotchmaster/pricelist/internal/service"
)

const itemsIndex = "items"

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")
	config.MustNonEmpty(cfg.AdminPassword, "ADMIN_PASSWORD")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	catalogRepo := &repo.GormRepo{DB: db}
	catalogSvc := &service.CatalogService{Repo: catalogRepo, MaxIconBytes: cfg.MaxIconBytes}

	sessionSvc, err := service.NewSessionService(
		catalogRepo,
		cfg.SessionSecret,
		time.Duration(cfg.SessionTTLMin)*time.Minute,
		cfg.AdminUsername,
		cfg.AdminPassword,
	)
	if err != nil {
		log.Fatalf("session service: %v", err)
	}

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := catalogRepo.DeleteExpiredSessions(context.Background()); err != nil {
				slog.Error("session cleanup failed", "error", err)
			}
		}
	}()

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
	}

	catalogHandler := &httpserver.CatalogHTTP{Svc: catalogSvc, Producer: producer, Index: itemsIndex}

	var searchHandler *httpserver.SearchHandler
	if cfg.ES_URL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		catalogHandler.ES = esClient
		searchHandler = &httpserver.SearchHandler{ES: esClient, Index: itemsIndex}
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler: catalogHandler,
		AuthHandler:    &httpserver.AuthHTTP{Sessions: sessionSvc},
		SearchHandler:  searchHandler,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("pricelist listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
