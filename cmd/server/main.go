package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rfallows/campgrounds/internal/factory"
	redisstorage "github.com/rfallows/campgrounds/internal/storage/redis"
	"github.com/rfallows/campgrounds/internal/upload"
	"github.com/rfallows/campgrounds/internal/web"
	"github.com/rfallows/campgrounds/internal/web/templates"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "campgrounds",
		Short:         "Campground listing and review web server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(envFile)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "env file to load before reading configuration")
	return cmd
}

func run(envFile string) error {
	// A missing env file is fine; configuration then comes from the
	// process environment alone
	_ = godotenv.Load(envFile)

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Configure the image store; without a bucket, images stay in process
	// memory and do not survive a restart
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		cfg.S3Config = &upload.S3Config{
			Region:       os.Getenv("S3_REGION"),
			Bucket:       bucket,
			AccessKey:    os.Getenv("S3_ACCESS_KEY"),
			SecretKey:    os.Getenv("S3_SECRET_KEY"),
			BaseEndpoint: os.Getenv("S3_ENDPOINT"),
			PublicURL:    os.Getenv("S3_PUBLIC_URL"),
		}
	} else {
		logger.Warn("S3_BUCKET not set, storing uploaded images in memory")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create application factory
	app, err := factory.New(ctx, cfg)
	if err != nil {
		return err
	}

	renderer, err := templates.New()
	if err != nil {
		return err
	}

	router := web.NewRouter(web.RouterConfig{
		Logger:            logger,
		Renderer:          renderer,
		AuthService:       app.AuthService,
		CampgroundService: app.CampgroundService,
		ReviewService:     app.ReviewService,
		Uploads:           app.Uploads,
	})

	serverConfig := web.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return errors.New("PORT must be a number")
		}
		serverConfig.Port = p
	}
	server := web.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return server.Shutdown(context.Background())
	}
}
