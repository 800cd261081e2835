package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"voyage-tracker/internal/core/cache"
	"voyage-tracker/internal/core/config"
	"voyage-tracker/internal/core/logger"
	"voyage-tracker/internal/core/server"
	underwayadapters "voyage-tracker/internal/features/underway/adapters"
	underwayhandler "voyage-tracker/internal/features/underway/handler"
	underwayservice "voyage-tracker/internal/features/underway/service"
	voyageadapters "voyage-tracker/internal/features/voyages/adapters"
	voyagedomain "voyage-tracker/internal/features/voyages/domain"
	voyagehandler "voyage-tracker/internal/features/voyages/handler"
	voyageservice "voyage-tracker/internal/features/voyages/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configDir string

// @title Voyage Tracker API
// @version 1.0
// @description REST API for the RSV Nuyina underway snapshot and auto-detected voyage log.
// @host localhost:8080
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:   "tracker",
		Short: "Ship underway feed snapshot and voyage log detection",
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory holding the .env configuration file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(refreshCmd())
	rootCmd.AddCommand(detectCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and initializes the global logger.
func setup() (*config.AppConfig, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return cfg, nil
}

// openStore opens the snapshot database, creating its directory and
// schema when missing.
func openStore(ctx context.Context, cfg *config.AppConfig) (*underwayadapters.SQLiteStore, error) {
	if dir := filepath.Dir(cfg.Snapshot.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	store, err := underwayadapters.NewSQLiteStore(cfg.Snapshot.DBPath)
	if err != nil {
		return nil, err
	}
	if err := store.InitSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// loadCatalog returns the port catalog, from PORTS_FILE when configured.
func loadCatalog(cfg *config.AppConfig) (*voyagedomain.Catalog, error) {
	if cfg.Voyage.PortsFile != "" {
		return voyageadapters.LoadCatalogFile(cfg.Voyage.PortsFile)
	}
	return voyagedomain.DefaultCatalog(), nil
}

func detectionOptions(cfg *config.AppConfig) voyagedomain.Options {
	return voyagedomain.Options{
		MinDwellHours: cfg.Voyage.MinDwellHours,
		HomePort:      cfg.Voyage.HomePort,
	}
}

func parseCutoff(cfg *config.AppConfig) (time.Time, error) {
	cutoff, err := time.Parse("2006-01-02", cfg.Snapshot.Cutoff)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid OBSERVATION_CUTOFF %q: %w", cfg.Snapshot.Cutoff, err)
	}
	return cutoff, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API with scheduled snapshot refreshes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			l := logger.Get()
			l.Info("Application starting",
				zap.String("environment", cfg.Environment),
				zap.String("log_level", cfg.LogLevel),
			)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			cutoff, err := parseCutoff(cfg)
			if err != nil {
				return err
			}

			// Verify the upstream feed before accepting traffic.
			feed := underwayadapters.NewWFSAdapter(cfg.Feed)
			if err := feed.HealthCheck(ctx); err != nil {
				l.Fatal("Feed health check failed", zap.Error(err))
			}
			l.Info("Feed connection verified", zap.String("base_url", cfg.Feed.BaseURL))

			redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL)
			if err != nil {
				l.Fatal("Failed to connect to Redis", zap.Error(err))
			}
			defer redisCache.Close()
			if err := redisCache.Ping(ctx); err != nil {
				l.Fatal("Redis health check failed", zap.Error(err))
			}

			refreshSvc := underwayservice.NewRefreshService(feed, store)
			underwayHdl := underwayhandler.NewUnderwayHandler(refreshSvc)

			drafts := voyageadapters.NewRedisDraftRepository(redisCache, time.Duration(cfg.Cache.DraftTTLMinutes)*time.Minute)
			source := voyageadapters.NewSnapshotSource(store, cutoff)
			detectionSvc := voyageservice.NewDetectionService(source, drafts, catalog, detectionOptions(cfg))
			voyageHdl := voyagehandler.NewVoyageHandler(detectionSvc)

			srv := server.New(cfg)

			srv.App.Post("/underway/refresh", underwayHdl.Refresh)
			srv.App.Get("/underway/status", underwayHdl.Status)
			srv.App.Get("/voyages/draft", voyageHdl.GetDraft)

			go func() {
				if err := srv.Run(); err != nil {
					l.Error("Server stopped", zap.Error(err))
					stop()
				}
			}()

			if cfg.Feed.RefreshIntervalMinutes > 0 {
				go runScheduler(ctx, refreshSvc, detectionSvc, time.Duration(cfg.Feed.RefreshIntervalMinutes)*time.Minute)
			}

			<-ctx.Done()
			l.Info("Shutting down")
			return srv.App.ShutdownWithTimeout(10 * time.Second)
		},
	}
}

// runScheduler periodically refreshes the snapshot and recomputes the
// cached draft until the context is cancelled.
func runScheduler(ctx context.Context, refreshSvc *underwayservice.RefreshService, detectionSvc *voyageservice.DetectionService, interval time.Duration) {
	l := logger.Get()
	l.Info("Background refresh enabled", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}

		if _, err := refreshSvc.Refresh(ctx); err != nil {
			l.Error("Scheduled refresh failed", zap.Error(err))
			continue
		}
		if _, err := detectionSvc.Recompute(ctx); err != nil {
			l.Error("Scheduled draft recompute failed", zap.Error(err))
		}
	}
}

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch new observations and merge them into the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx := cmd.Context()
			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			feed := underwayadapters.NewWFSAdapter(cfg.Feed)
			svc := underwayservice.NewRefreshService(feed, store)

			result, err := svc.Refresh(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Fetched %d observations, %d new (snapshot total %d)\n",
				result.Fetched, result.Inserted, result.Total)
			return nil
		},
	}
}

func detectCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Write a draft voyage log detected from the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx := cmd.Context()
			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			cutoff, err := parseCutoff(cfg)
			if err != nil {
				return err
			}

			observations, err := voyageadapters.NewSnapshotSource(store, cutoff).Load(ctx)
			if err != nil {
				return err
			}

			draft, err := voyagedomain.Detect(catalog, observations, detectionOptions(cfg))
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(draft, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if outPath == "-" {
				_, err := os.Stdout.Write(data)
				return err
			}

			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write draft: %w", err)
			}

			fmt.Printf("Detected %d voyages from %d observations\n", len(draft.Voyages), len(observations))
			for _, voyage := range draft.Voyages {
				fmt.Printf("  %s: %d stops (%s to %s)\n", voyage.ID, len(voyage.Stops), voyage.Start, voyage.End)
			}
			fmt.Printf("Draft written to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "voyages_draft.json", "output file, or - for stdout")
	return cmd
}
