package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"attendweb/internal/auth"
	"attendweb/internal/backend"
	"attendweb/internal/config"
	"attendweb/internal/web"
)

func main() {
	cfg := config.Load()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("web server failed: %v", err)
	}
}

func run(cfg config.App) error {
	var store auth.Store
	if cfg.SessionBackend == "redis" {
		store = auth.NewRedisStore(cfg.RedisAddr, cfg.SessionTTL)
	} else {
		store = auth.NewMemoryStore(cfg.SessionTTL)
	}

	api := backend.New(cfg.APIBaseURL)
	authSvc := auth.NewService(api, store, cfg.DefaultRole)
	server := web.NewServer(cfg, api, authSvc, store)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      server.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting web client on :%s (backend %s)", cfg.HTTPPort, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}
