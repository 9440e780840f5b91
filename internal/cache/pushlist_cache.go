package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ravindra-p/stockpulse/internal/config"
	"github.com/ravindra-p/stockpulse/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	pushListKeyPrefix     = "push_list:result"
	pushListScanBatchSize = 100
)

type PushListCache interface {
	GetResult(ctx context.Context, month string, filter domain.PushListFilter) (*domain.PushListResult, bool, error)
	SetResult(ctx context.Context, month string, filter domain.PushListFilter, result *domain.PushListResult) error
	InvalidateAll(ctx context.Context) error
}

type redisPushListCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopPushListCache struct{}

func NewPushListCache(cfg config.CacheConfig) (PushListCache, error) {
	if !cfg.Enabled {
		return &noopPushListCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisPushListCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopPushListCache() PushListCache {
	return &noopPushListCache{}
}

func (c *redisPushListCache) GetResult(ctx context.Context, month string, filter domain.PushListFilter) (*domain.PushListResult, bool, error) {
	key := buildPushListKey(month, filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result domain.PushListResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode push list cache: %w", err)
	}

	return &result, true, nil
}

func (c *redisPushListCache) SetResult(ctx context.Context, month string, filter domain.PushListFilter, result *domain.PushListResult) error {
	key := buildPushListKey(month, filter)
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode push list cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisPushListCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, pushListKeyPrefix, pushListScanBatchSize)
}

func (n *noopPushListCache) GetResult(ctx context.Context, month string, filter domain.PushListFilter) (*domain.PushListResult, bool, error) {
	return nil, false, nil
}

func (n *noopPushListCache) SetResult(ctx context.Context, month string, filter domain.PushListFilter, result *domain.PushListResult) error {
	return nil
}

func (n *noopPushListCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildPushListKey(month string, filter domain.PushListFilter) string {
	return fmt.Sprintf("%s:%s", pushListKeyPrefix, pushListFilterHash(month, filter))
}

func pushListFilterHash(month string, filter domain.PushListFilter) string {
	parts := []string{}

	if month != "" {
		parts = append(parts, "month="+strings.TrimSpace(month))
	}
	if filter.AgeBucket != "" {
		parts = append(parts, "age_bucket="+strings.TrimSpace(filter.AgeBucket))
	}
	if filter.SlowMoversOnly {
		parts = append(parts, "slow_movers_only=1")
	}
	if filter.OverstockOnly {
		parts = append(parts, "overstock_only=1")
	}
	if filter.Search != "" {
		parts = append(parts, "search="+strings.ToLower(strings.TrimSpace(filter.Search)))
	}
	if filter.SortField != "" {
		parts = append(parts, "sort_field="+strings.ToLower(strings.TrimSpace(filter.SortField)))
	}
	if filter.SortDir != "" {
		parts = append(parts, "sort_dir="+strings.ToLower(strings.TrimSpace(filter.SortDir)))
	}

	if len(filter.BrandIDs) > 0 {
		parts = append(parts, "brand_ids="+joinInt64s(filter.BrandIDs))
	}

	if filter.TopN > 0 {
		parts = append(parts, fmt.Sprintf("top_n=%d", filter.TopN))
	} else {
		if filter.Page > 0 {
			parts = append(parts, fmt.Sprintf("page=%d", filter.Page))
		}
		if filter.PageSize > 0 {
			parts = append(parts, fmt.Sprintf("page_size=%d", filter.PageSize))
		}
	}

	if len(parts) == 0 {
		return "default"
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func joinInt64s(values []int64) string {
	c := append([]int64(nil), values...)
	sort.Slice(c, func(i, j int) bool { return c[i] < c[j] })
	strs := make([]string, len(c))
	for i, v := range c {
		strs[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(strs, ",")
}
