package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/citytransit-view/internal/common/db"
	"github.com/citytransit-view/internal/common/discord"
	"github.com/citytransit-view/internal/common/maintenance"
	"github.com/citytransit-view/internal/transitview"
	"github.com/citytransit-view/internal/transitview/alerts"
	"github.com/citytransit-view/internal/transitview/api"
	"github.com/citytransit-view/internal/transitview/feed"
	"github.com/citytransit-view/internal/transitview/recorder"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the simulated feed and the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "listen address, overrides HTTP_LISTEN_ADDR",
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr := c.String("listen"); addr != "" {
		cfg.HTTP.ListenAddr = addr
	}

	log := newLogger(cfg, true)
	log.Info("CityTransit view starting",
		"version", version,
		"log_level", cfg.Logging.Level,
		"update_interval", cfg.Simulation.UpdateInterval,
		"listen", cfg.HTTP.ListenAddr)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	doc, err := loadSeed(ctx, cfg, log)
	if err != nil {
		return err
	}

	seed := feed.ResolveSeed(cfg.Simulation.RandomSeed)
	log.Info("Random seed resolved", "seed", seed)
	opts := []feed.Option{feed.WithRandomSource(feed.NewRandomSource(seed))}

	if cfg.Logging.DiscordURL != "" {
		notifier := alerts.NewNotifier(discord.NewClient(cfg.Logging.DiscordURL), log.With("component", "alerts"))
		opts = append(opts, feed.WithHook(notifier.Hook()))
		log.Info("Discord delay alerts enabled")
	}

	if cfg.Database.Enabled {
		if err := cfg.Database.Validate(); err != nil {
			return fmt.Errorf("invalid database configuration: %w", err)
		}
		database, err := db.New(ctx, cfg.Database.ConnectionString(), log)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		snapshots := db.NewSnapshotStore(database)
		if err := snapshots.EnsureSchema(ctx); err != nil {
			return err
		}
		opts = append(opts, feed.WithHook(recorder.New(snapshots, log.With("component", "recorder")).Hook()))

		cleanupConfig := maintenance.DefaultSchedulerConfig()
		cleanupConfig.CleanupInterval = cfg.Snapshots.CleanupInterval
		cleanupConfig.Retention = cfg.Snapshots.Retention
		cleanup := maintenance.NewCleanupScheduler(snapshots, log.With("component", "maintenance"), cleanupConfig)
		if err := cleanup.Start(ctx); err != nil {
			return fmt.Errorf("starting snapshot cleanup: %w", err)
		}
		defer cleanup.Stop()
	}

	view, err := transitview.New(doc, feedConfig(cfg), log, opts...)
	if err != nil {
		return err
	}
	if err := view.Start(ctx); err != nil {
		return err
	}
	defer view.Stop()

	server := api.NewServer(view, log.With("component", "api"))
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Listen(cfg.HTTP.ListenAddr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	// Stop the feed before the API goes away
	view.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown failed", "error", err)
	}

	log.Info("CityTransit view stopped")
	return nil
}
