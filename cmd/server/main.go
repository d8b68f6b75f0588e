package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/api"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/config"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/database"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/repository"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/scheduler"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	productRepo := repository.NewProductRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	marketService := service.NewMarketService(productRepo, priceRepo)
	indexService := service.NewIndexService(productRepo, priceRepo, snapshotRepo)
	seriesService := service.NewSeriesService(productRepo, priceRepo)
	settingsService, err := service.NewSettingsService(settingRepo, cfg.Secrets.FernetKey)
	if err != nil {
		log.Fatalf("Failed to initialize settings service: %v", err)
	}

	// Start the daily index snapshot job
	if cfg.Scheduler.Enabled {
		sched := scheduler.New(indexService)
		if err := sched.Register(cfg.Scheduler.IndexSnapshotCron); err != nil {
			log.Fatalf("Failed to register scheduled tasks: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Create router
	router := api.NewRouter(systemService, marketService, indexService, seriesService, settingsService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
