// Package app assembles the service graph: storage, snapshot cache,
// resolver, chatbot, and HTTP surface. Heavy initialization happens here so
// main stays focused on lifecycle.
package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/keerththansana/taxmate/internal/adapter"
	"github.com/keerththansana/taxmate/internal/config"
	"github.com/keerththansana/taxmate/internal/server"
	"github.com/keerththansana/taxmate/internal/service"
	"github.com/keerththansana/taxmate/internal/service/resolver"
	"github.com/keerththansana/taxmate/internal/store"
)

type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Chatbot *service.Chatbot
	Handler http.Handler

	closers []func()
}

// Close releases resources in reverse construction order.
func (c *Container) Close() {
	if c.Chatbot != nil {
		c.Chatbot.Close()
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles all services and returns a container with the ready
// HTTP handler.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	postgresSvc, err := store.NewPostgresService(store.PostgresConfig{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres service: %w", err)
	}
	closers = append(closers, func() {
		_ = postgresSvc.Close()
	})

	redisClient, err := store.NewRedisClient(store.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	closers = append(closers, func() {
		_ = redisClient.Close()
	})

	referenceRepo := store.NewReferenceRepository(postgresSvc, logger)
	snapshotCache, err := store.NewSnapshotCache(referenceRepo, redisClient, logger, store.SnapshotCacheConfig{
		FiscalYear: cfg.Reference.FiscalYear,
		TTL:        cfg.Reference.SnapshotTTL,
		WarmUp:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot cache: %w", err)
	}

	queryLog := store.NewQueryLogRepository(postgresSvc, logger)

	chatbot := service.NewChatbot(
		snapshotCache,
		queryLog,
		resolver.New(logger),
		adapter.NewResponseFormatter(),
		logger,
	)

	srv := server.NewServer(chatbot, logger)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Chatbot: chatbot,
		Handler: srv.Router(cfg.Server.RequestTimeout),
		closers: closers,
	}, nil
}
