package selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKey = "termslens:last_selection"

type Redis struct {
	client *redis.Client
}

func OpenRedis(ctx context.Context, url string) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	r := &Redis{client: redis.NewClient(opt)}
	if err := r.Ping(ctx); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return r, nil
}

func (r *Redis) Save(ctx context.Context, text string) error {
	return r.client.Set(ctx, redisKey, text, 0).Err()
}

func (r *Redis) Last(ctx context.Context) (string, error) {
	text, err := r.client.Get(ctx, redisKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSelection
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
