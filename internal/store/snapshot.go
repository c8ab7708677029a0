package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/keerththansana/taxmate/internal/domain"
)

// SnapshotCache serves the read-only reference snapshot with tiered reads:
// in-memory first, Redis second, PostgreSQL as source of truth. Requests get
// an immutable pointer; refresh swaps the pointer atomically so concurrent
// readers never see a partial snapshot.
type SnapshotCache struct {
	repo   *ReferenceRepository
	redis  *redis.Client
	logger *zap.Logger

	fiscalYear int
	ttl        time.Duration

	current   atomic.Pointer[domain.ReferenceSnapshot]
	refreshMu sync.Mutex
}

type SnapshotCacheConfig struct {
	FiscalYear int
	TTL        time.Duration
	WarmUp     bool
}

func NewSnapshotCache(repo *ReferenceRepository, redisClient *redis.Client, logger *zap.Logger, cfg SnapshotCacheConfig) (*SnapshotCache, error) {
	if cfg.TTL == 0 {
		cfg.TTL = 30 * time.Minute
	}

	cache := &SnapshotCache{
		repo:       repo,
		redis:      redisClient,
		logger:     logger,
		fiscalYear: cfg.FiscalYear,
		ttl:        cfg.TTL,
	}

	if cfg.WarmUp {
		if _, err := cache.refresh(context.Background()); err != nil {
			logger.Warn("Failed to warm up reference snapshot", zap.Error(err))
		}
	}

	return cache, nil
}

// Snapshot returns the current reference snapshot, refreshing it when the
// in-memory copy has expired.
func (c *SnapshotCache) Snapshot(ctx context.Context) (*domain.ReferenceSnapshot, error) {
	if snapshot := c.current.Load(); snapshot != nil && time.Since(snapshot.LoadedAt) < c.ttl {
		return snapshot, nil
	}
	return c.refresh(ctx)
}

func (c *SnapshotCache) redisKey() string {
	return fmt.Sprintf("taxmate:reference:%d", c.fiscalYear)
}

// refresh reloads from Redis or PostgreSQL. Only one goroutine refreshes at
// a time; latecomers reuse whatever the winner installed.
func (c *SnapshotCache) refresh(ctx context.Context) (*domain.ReferenceSnapshot, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if snapshot := c.current.Load(); snapshot != nil && time.Since(snapshot.LoadedAt) < c.ttl {
		return snapshot, nil
	}

	if snapshot := c.fromRedis(ctx); snapshot != nil {
		c.current.Store(snapshot)
		return snapshot, nil
	}

	snapshot, err := c.repo.LoadSnapshot(ctx, c.fiscalYear)
	if err != nil {
		// Serve a stale snapshot over failing the request outright.
		if stale := c.current.Load(); stale != nil {
			c.logger.Warn("Serving stale reference snapshot", zap.Error(err))
			return stale, nil
		}
		return nil, err
	}

	c.current.Store(snapshot)
	c.toRedis(ctx, snapshot)

	c.logger.Info("Reference snapshot refreshed",
		zap.Int("fiscal_year", snapshot.FiscalYear),
		zap.Int("brackets", len(snapshot.Brackets)),
		zap.Int("deductions", len(snapshot.Deductions)),
		zap.Int("faqs", len(snapshot.FAQs)),
		zap.Int("payments", len(snapshot.QualifyingPayments)),
		zap.Int("events", len(snapshot.CalendarEvents)),
	)

	return snapshot, nil
}

func (c *SnapshotCache) fromRedis(ctx context.Context) *domain.ReferenceSnapshot {
	if c.redis == nil {
		return nil
	}

	data, err := c.redis.Get(ctx, c.redisKey()).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Redis snapshot read failed", zap.Error(err))
		}
		return nil
	}

	var snapshot domain.ReferenceSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		c.logger.Warn("Redis snapshot unmarshal failed", zap.Error(err))
		return nil
	}
	if time.Since(snapshot.LoadedAt) >= c.ttl {
		return nil
	}
	return &snapshot
}

func (c *SnapshotCache) toRedis(ctx context.Context, snapshot *domain.ReferenceSnapshot) {
	if c.redis == nil {
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		c.logger.Warn("Redis snapshot marshal failed", zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, c.redisKey(), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Redis snapshot write failed", zap.Error(err))
	}
}
