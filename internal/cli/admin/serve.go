package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gamepeek/gamepeek/internal/api/handlers"
	"github.com/gamepeek/gamepeek/internal/config"
	"github.com/gamepeek/gamepeek/internal/server"
	"github.com/gamepeek/gamepeek/internal/service"
	"github.com/gamepeek/gamepeek/internal/steam"
	"github.com/gamepeek/gamepeek/internal/store"
	"github.com/gamepeek/gamepeek/internal/telemetry"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the gamepeek API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	catalogStore := store.NewCatalogStore(cfg.CatalogCachePath())
	historyStore := store.NewHistoryStore(cfg.HistoryPath())

	steamClient := steam.NewClientWithConfig(steam.Config{
		APIBaseURL:   cfg.SteamAPIURL,
		StoreBaseURL: cfg.SteamStoreURL,
	})

	catalogSvc := service.NewCatalogService(catalogStore, steamClient)
	detailsSvc := service.NewDetailsService(steamClient)

	routerCfg := server.RouterConfig{
		SearchHandler:  handlers.NewSearchHandler(catalogSvc, historyStore),
		DetailsHandler: handlers.NewDetailsHandler(detailsSvc, historyStore),
		HistoryHandler: handlers.NewHistoryHandler(historyStore),
		CatalogHandler: handlers.NewCatalogHandler(catalogSvc),
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s (data dir: %s)", cfg.Port, cfg.DataDir)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
