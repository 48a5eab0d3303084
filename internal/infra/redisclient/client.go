package redisclient

import (
	"context"
	"time"

	"eleva-booking/internal/pkg/config"
	"eleva-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errs.Wrap(err, "failed to connect to redis")
	}

	cleanup := func() { _ = client.Close() }
	return client, cleanup, nil
}
