package redis

import (
	"context"

	r "github.com/redis/go-redis/v9"
	"github.com/scienceol/labportal/pkg/middleware/logger"
)

var redisClient *r.Client

func InitRedis(ctx context.Context, conf *Redis) {
	var err error
	redisClient, err = initRedis(ctx, conf)
	if err != nil {
		logger.Fatalf(ctx, "init redis fail err: %+v", err)
	}
}

func CloseRedis(ctx context.Context) {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Errorf(ctx, "close redis err: %+v", err)
		}
	}
}

// GetClient returns the shared client, nil before InitRedis.
func GetClient() *r.Client {
	return redisClient
}
