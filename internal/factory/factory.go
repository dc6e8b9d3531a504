package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/rfallows/campgrounds/internal/dependencies/clock"
	"github.com/rfallows/campgrounds/internal/services/auth"
	"github.com/rfallows/campgrounds/internal/services/campground"
	"github.com/rfallows/campgrounds/internal/services/review"
	"github.com/rfallows/campgrounds/internal/storage"
	"github.com/rfallows/campgrounds/internal/storage/memory"
	redisstorage "github.com/rfallows/campgrounds/internal/storage/redis"
	"github.com/rfallows/campgrounds/internal/upload"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage     storage.Storage
	ObjectStore upload.ObjectStore

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService       *auth.Service
	CampgroundService *campground.Service
	ReviewService     *review.Service
	Uploads           *upload.Adapter
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// S3Config selects an S3-compatible object store for images (optional)
	// If nil, images are held in process memory
	S3Config *upload.S3Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create the object store for uploaded images
	var objects upload.ObjectStore
	if cfg.S3Config != nil {
		s3Store, err := upload.NewS3Store(ctx, *cfg.S3Config)
		if err != nil {
			return nil, err
		}
		objects = s3Store
	} else {
		objects = upload.NewMemoryStore()
	}

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, objects, clock.New(), authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, objects upload.ObjectStore, clk clock.Clock, authCfg auth.Config, logger *slog.Logger) *App {
	authService := auth.New(store, clk, authCfg)
	campgroundService := campground.New(store, clk)
	reviewService := review.New(store, clk)
	uploads := upload.NewAdapter(objects, clk, logger)

	return &App{
		Storage:           store,
		ObjectStore:       objects,
		Clock:             clk,
		AuthService:       authService,
		CampgroundService: campgroundService,
		ReviewService:     reviewService,
		Uploads:           uploads,
	}
}
