package utils

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

type RedisConfig struct {
	RedisUrl string
}

// ProvideRedis returns a nil client when no url is configured.
func ProvideRedis(config *RedisConfig, lc fx.Lifecycle) (*redis.Client, error) {
	if config.RedisUrl == "" {
		log.Warn().Msg("REDIS_URL not set, reset tokens will not be tracked")
		return nil, nil
	}

	options, err := redis.ParseURL(config.RedisUrl)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)

	_, err = client.Ping(context.Background()).Result()
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
