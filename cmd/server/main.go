package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe45/internal/api"
	"cafe45/internal/auth"
	"cafe45/internal/cart"
	"cafe45/internal/config"
	"cafe45/internal/dashboard"
	"cafe45/internal/database"
	"cafe45/internal/feed"
	"cafe45/internal/storage"
	"cafe45/internal/submission"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.Seed(db, cfg.AdminUser); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	store := storage.NewStore(db)

	hub := feed.NewHub()
	go hub.Run(ctx)

	board := dashboard.NewBoard(store, dashboard.LogNotifier{}, hub)
	if err := board.Refresh(ctx); err != nil {
		log.Fatalf("Failed to load workflow board: %v", err)
	}
	events, unsubscribe := hub.Subscribe()
	defer unsubscribe()
	go board.Run(ctx, events)

	server := api.NewServer(api.Options{
		Carts:         cart.NewSessions(),
		Catalog:       store,
		Submissions:   submission.NewService(store, store, hub),
		Board:         board,
		Dashboard:     dashboard.NewService(store),
		Tokens:        auth.NewTokenService(cfg.SessionSecret),
		Profiles:      store,
		Hub:           hub,
		AdminUser:     cfg.AdminUser,
		AdminPassword: cfg.AdminPassword,
	})

	if cfg.Metrics.Enabled {
		mport := cfg.Metrics.Port
		if *metricsPort != 0 {
			mport = *metricsPort
		}
		go startMetricsServer(mport, cfg.Metrics.Path)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: server.Router,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}

		cancel()
	}()

	log.Printf("Starting API server on port %d", *port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func startMetricsServer(port int, path string) {
	metricsRouter := gin.Default()
	metricsRouter.GET(path, gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
