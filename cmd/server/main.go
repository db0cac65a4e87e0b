package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/projectpulse/project-system/internal/api"
	mongodb "github.com/projectpulse/project-system/internal/infrastructure/db/mongo"
	redisdb "github.com/projectpulse/project-system/internal/infrastructure/db/redis"
	"github.com/projectpulse/project-system/internal/infrastructure/queue"
	"github.com/projectpulse/project-system/internal/pkg/config"
	"github.com/projectpulse/project-system/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Project system API server",
	Long:  "HTTP API for the project task lifecycle: role-gated assignment, acceptance, progress tracking and realtime notifications.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create MongoDB indexes and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEnsureIndexes(cmd.Context())
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, ensureIndexesCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Service: "project-system",
		Pretty:  cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	publisher := queue.NewPublisher(cfg.PublishWorkers, redisdb.NewPublisher(rdb), log)
	publisher.Start(ctx)

	e := api.NewRouter(db, rdb, publisher, cfg, log)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func runEnsureIndexes(ctx context.Context) error {
	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Service: "project-system"})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.NewTaskRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("task indexes: %w", err)
	}
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := mongodb.NewNotificationRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("notification indexes: %w", err)
	}

	log.Info().Msg("indexes ensured")
	return nil
}
