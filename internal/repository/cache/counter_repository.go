package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/crashstats-service/internal/domain/repository"
)

type counterRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCounterRepository backs daily usage caps with Redis INCR counters that
// expire at UTC midnight.
func NewCounterRepository(redis *Redis) repository.CounterRepository {
	return &counterRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *counterRepository) IncrDailyCounter(ctx context.Context, name string) (int64, error) {
	key := fmt.Sprintf("counter:%s:%s", name, time.Now().UTC().Format("2006-01-02"))

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to increment daily counter", zap.String("key", key), zap.Error(err))
		return 0, fmt.Errorf("counter incr error: %w", err)
	}

	// First increment of the day owns setting the expiry.
	if count == 1 {
		if err := r.client.Expire(ctx, key, secondsUntilUTCMidnight()).Err(); err != nil {
			r.logger.Warn("Failed to set counter expiry", zap.String("key", key), zap.Error(err))
		}
	}

	return count, nil
}

func secondsUntilUTCMidnight() time.Duration {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	remaining := midnight.Sub(now)
	if remaining < time.Second {
		return time.Second
	}
	return remaining
}
