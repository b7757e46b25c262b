package redis

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/redis/go-redis/extra/rediscmd/v9"
	"github.com/redis/go-redis/extra/redisotel/v9"
	r "github.com/redis/go-redis/v9"
	"github.com/scienceol/labportal/pkg/middleware/logger"
)

type Redis struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func initRedis(ctx context.Context, conf *Redis) (*r.Client, error) {
	client := r.NewClient(&r.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, err
	}
	client.AddHook(errLogHook{})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// errLogHook logs failed commands; a miss (redis.Nil) is not a failure.
type errLogHook struct{}

func (errLogHook) DialHook(next r.DialHook) r.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (errLogHook) ProcessHook(next r.ProcessHook) r.ProcessHook {
	return func(ctx context.Context, cmd r.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, r.Nil) {
			logger.Errorf(ctx, "redis cmd %s err: %+v", rediscmd.CmdString(cmd), err)
		}
		return err
	}
}

func (errLogHook) ProcessPipelineHook(next r.ProcessPipelineHook) r.ProcessPipelineHook {
	return func(ctx context.Context, cmds []r.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, r.Nil) {
			summary, _ := rediscmd.CmdsString(cmds)
			logger.Errorf(ctx, "redis pipeline %s err: %+v", summary, err)
		}
		return err
	}
}
