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

	"github.com/EzekielClervo/instagram/internal/auth"
	"github.com/EzekielClervo/instagram/internal/config"
	"github.com/EzekielClervo/instagram/internal/instagram"
	"github.com/EzekielClervo/instagram/internal/repository"
	"github.com/EzekielClervo/instagram/internal/repository/memory"
	"github.com/EzekielClervo/instagram/internal/repository/sqlite"
	"github.com/EzekielClervo/instagram/internal/server"
)

const (
	version = "0.1.0"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("igboostd v%s starting...", version)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var store repository.Store
	switch cfg.Backend {
	case "memory":
		store = memory.NewStore()
		log.Println("✓ In-memory store initialized")
	default:
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory %s: %v", cfg.DataDir, err)
		}
		store, err = sqlite.NewStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		log.Printf("✓ Database initialized (%s)", cfg.DataDir)
	}
	defer store.Close()

	ctx := context.Background()
	if err := auth.EnsureAdminUser(ctx, store, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	log.Println("✓ Admin user ready")

	srv := server.New(store, instagram.NewClient(""))
	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Router(cfg.SessionSecret),
	}

	go func() {
		log.Printf("✓ Listening on %s", cfg.Addr)
		log.Println("igboostd is ready")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Printf("Received signal: %v", sig)
	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
