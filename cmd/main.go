package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"hospital-meals/internal/catalog"
	"hospital-meals/internal/config"
	"hospital-meals/internal/logger"
	"hospital-meals/internal/services/order"
	"hospital-meals/internal/services/schedule"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to configuration file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Create logger
	log := logger.New("meal-delivery")
	requestID := logger.GenerateRequestID()

	log.Info("service_started", "Starting meal delivery service", requestID, map[string]interface{}{
		"port":      cfg.Server.Port,
		"menu_path": cfg.Catalog.MenuPath,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("service_failed", "Meal delivery service failed", requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// run wires the catalog, services and HTTP server together
func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	// Load the menu
	cat, err := catalog.Load(cfg.Catalog.MenuPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	log.Info("catalog_loaded", "Menu catalog loaded", requestID, map[string]interface{}{
		"items": cat.Len(),
	})

	// Initialize services and handlers
	orderService := order.NewService(cat, log)
	orderHandler := order.NewHandler(orderService, log)

	scheduleService := schedule.NewService(orderService, cat, log)
	scheduleHandler := schedule.NewHandler(scheduleService, log)

	router := chi.NewRouter()
	router.Mount("/", orderHandler.Routes())
	router.Mount("/account", scheduleHandler.Routes())

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	// Start HTTP server in goroutine
	go func() {
		log.Info("server_started", fmt.Sprintf("HTTP server listening on %s", cfg.Addr()), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}
