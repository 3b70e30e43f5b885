package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
)

type AdapterRedis struct {
	client *redis.Client
	cfg    *bootstrap.Config
	log    *zap.SugaredLogger
}

func NewAdapterRedis(cfg *bootstrap.Config, log *zap.SugaredLogger) *AdapterRedis {
	return &AdapterRedis{
		cfg: cfg,
		log: log,
	}
}

// Init accepts either a host:port address or a redis:// URL.
func (a *AdapterRedis) Init(ctx context.Context) error {
	opts := &redis.Options{Addr: a.cfg.RedisUrl}
	if parsed, err := redis.ParseURL(a.cfg.RedisUrl); err == nil {
		opts = parsed
	}
	a.client = redis.NewClient(opts)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := a.client.Ping(ctxPing).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	a.log.Infof("connected to redis at %s", opts.Addr)
	return nil
}

func (a *AdapterRedis) GetClient() *redis.Client {
	return a.client
}

func (a *AdapterRedis) Close(ctx context.Context) error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}
