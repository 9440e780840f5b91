package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ravindra-p/stockpulse/internal/config"
	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	coverageKeyPrefix     = "coverage:assessment"
	coverageScanBatchSize = 100
)

type CoverageCache interface {
	GetAssessment(ctx context.Context, brandID int64, month string) (*domain.CoverageAssessment, bool, error)
	SetAssessment(ctx context.Context, brandID int64, month string, assessment *domain.CoverageAssessment) error
	InvalidateAll(ctx context.Context) error
}

type redisCoverageCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopCoverageCache struct{}

func NewCoverageCache(cfg config.CacheConfig) (CoverageCache, error) {
	if !cfg.Enabled {
		return &noopCoverageCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisCoverageCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopCoverageCache() CoverageCache {
	return &noopCoverageCache{}
}

func (c *redisCoverageCache) GetAssessment(ctx context.Context, brandID int64, month string) (*domain.CoverageAssessment, bool, error) {
	key := buildCoverageKey(brandID, month)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var assessment domain.CoverageAssessment
	if err := json.Unmarshal(payload, &assessment); err != nil {
		return nil, false, fmt.Errorf("decode coverage cache: %w", err)
	}

	return &assessment, true, nil
}

func (c *redisCoverageCache) SetAssessment(ctx context.Context, brandID int64, month string, assessment *domain.CoverageAssessment) error {
	key := buildCoverageKey(brandID, month)
	payload, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("encode coverage cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisCoverageCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, coverageKeyPrefix, coverageScanBatchSize)
}

func (n *noopCoverageCache) GetAssessment(ctx context.Context, brandID int64, month string) (*domain.CoverageAssessment, bool, error) {
	return nil, false, nil
}

func (n *noopCoverageCache) SetAssessment(ctx context.Context, brandID int64, month string, assessment *domain.CoverageAssessment) error {
	return nil
}

func (n *noopCoverageCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildCoverageKey(brandID int64, month string) string {
	return fmt.Sprintf("%s:%d:%s", coverageKeyPrefix, brandID, month)
}
