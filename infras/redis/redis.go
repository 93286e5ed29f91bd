package redis

import (
	"context"
	"net"
	"time"

	"venuebook/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const defaultDialTimeout = 5 * time.Second

// Options maps the primary node settings onto go-redis options.
func Options(config *config.Config) *goRedis.Options {
	primary := config.Cache.Redis.Primary

	dialTimeout := defaultDialTimeout
	if seconds := config.Cache.Redis.DialTimeoutSeconds; seconds > 0 {
		dialTimeout = time.Duration(seconds) * time.Second
	}

	return &goRedis.Options{
		Addr:        net.JoinHostPort(primary.Host, primary.Port),
		Password:    primary.Password,
		DB:          primary.DB,
		PoolSize:    primary.PoolSize,
		DialTimeout: dialTimeout,
	}
}

// New fails fast when redis is unreachable at startup; later outages degrade to cache misses.
func New(config *config.Config) *goRedis.Client {
	opts := Options(config)
	client := goRedis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", opts.Addr).Msg("Failed to connect to Redis")
	}

	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("Connected to Redis")

	return client
}
