package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/nixpig/slideworker/internal/jobmanager"
	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Channel receives every Event.
	Channel string

	// KeyPrefix, when set, also stores the latest snapshot of each job under
	// KeyPrefix+id for KeyTTL.
	KeyPrefix string
	KeyTTL    time.Duration
}

// RedisSink publishes Events on a Redis channel.
type RedisSink struct {
	client *redis.Client
	cfg    RedisConfig
}

// NewRedisSink connects to Redis and checks the connection.
func NewRedisSink(ctx context.Context, cfg RedisConfig) (*RedisSink, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	if cfg.KeyTTL <= 0 {
		cfg.KeyTTL = time.Hour
	}

	return &RedisSink{client: client, cfg: cfg}, nil
}

func (s *RedisSink) Name() string {
	return "redis"
}

func (s *RedisSink) Send(ctx context.Context, e jobmanager.Event) error {
	payload, err := Encode(e)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Publish(ctx, s.cfg.Channel, payload)

	if s.cfg.KeyPrefix != "" {
		pipe.Set(ctx, s.cfg.KeyPrefix+e.ID, payload, s.cfg.KeyTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish to redis: %w", err)
	}

	return nil
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}
