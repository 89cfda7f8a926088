package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tablekeeper/internal/domain/event"
	"tablekeeper/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Publisher is the part of *redis.Client the relay needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisRelay forwards every event to a Redis pub/sub channel read by the dashboard.
type RedisRelay struct {
	client  Publisher
	channel string
	logger  *slog.Logger
}

func NewRedisRelay(client Publisher, channel string, logger *slog.Logger) *RedisRelay {
	return &RedisRelay{client: client, channel: channel, logger: logger}
}

func (r *RedisRelay) Handle(ctx context.Context, e event.Event) error {
	payload, err := event.Encode(e)
	if err != nil {
		return fmt.Errorf("encode %s: %w", e.Kind(), err)
	}
	receivers, err := r.client.Publish(ctx, r.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", e.Kind(), r.channel, err)
	}
	r.logger.Debug("event relayed",
		slog.String("kind", string(e.Kind())),
		slog.Int64("receivers", receivers),
	)
	return nil
}

// NewRedisClient connects to Redis, retrying the initial ping.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				_ = client.Close()
				return nil, ctx.Err()
			case <-time.After(cfg.RetryInterval):
			}
		}
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
	}

	_ = client.Close()
	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", cfg.MaxRetries+1, lastErr)
}
