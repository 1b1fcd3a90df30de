package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"rps_game/internal/domain"
	"rps_game/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

const rankingsKey = "rps:rankings"

// RankingCache keeps the computed leaderboard in Redis.
// A nil client turns every call into a miss, so the service keeps working without Redis.
type RankingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRankingCache(client *redis.Client, ttl time.Duration) *RankingCache {
	return &RankingCache{client: client, ttl: ttl}
}

func (c *RankingCache) Get(ctx context.Context) ([]domain.Ranking, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, rankingsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("rankings cache get failed", "error", err)
		}
		return nil, false
	}

	var rankings []domain.Ranking
	if err := json.Unmarshal(raw, &rankings); err != nil {
		logger.Warn("rankings cache entry corrupt", "error", err)
		return nil, false
	}
	return rankings, true
}

func (c *RankingCache) Set(ctx context.Context, rankings []domain.Ranking) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(rankings)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, rankingsKey, raw, c.ttl).Err(); err != nil {
		logger.Warn("rankings cache set failed", "error", err)
	}
}

// Invalidate drops the cached leaderboard after a score is recorded
func (c *RankingCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, rankingsKey).Err(); err != nil {
		logger.Warn("rankings cache invalidate failed", "error", err)
	}
}
