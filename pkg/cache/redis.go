package cache

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	uerrors "github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/observability"
)

const defaultRedisPrefix = "updatecenter:"

// RedisConfig holds the connection parameters for [NewRedis].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // key prefix, defaults to "updatecenter:"
}

// Redis stores entries on a Redis server so that several machines can share
// one cache. Keys never carry a Redis expiry; freshness is decided on read
// exactly as for [Store].
type Redis struct {
	client *redis.Client
	prefix string
	logger *log.Logger
	now    func() time.Time
}

// NewRedis connects to the server and verifies it with PING.
func NewRedis(ctx context.Context, cfg RedisConfig, logger *log.Logger) (*Redis, error) {
	if cfg.Addr == "" {
		return nil, uerrors.New(uerrors.ErrCodeConfiguration, "redis address is empty")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, uerrors.Wrap(uerrors.ErrCodeConfiguration, err, "connect to redis at %s", cfg.Addr)
	}
	return NewRedisWithClient(client, cfg.Prefix, logger), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, prefix string, logger *log.Logger) *Redis {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Redis{client: client, prefix: prefix, logger: logger, now: time.Now}
}

// Get implements [Cache].
func (r *Redis) Get(ctx context.Context, kind Kind, key string, v any) (bool, error) {
	data, err := r.client.Get(ctx, r.key(kind, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.Cache().OnCacheMiss(ctx, kind.Name)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return load(ctx, r.logger, kind, key, data, v, r.now()), nil
}

// Put implements [Cache]. SET replaces the value atomically.
func (r *Redis) Put(ctx context.Context, kind Kind, key string, v any) error {
	data, err := encodeEntry(kind, key, v, r.now())
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(kind, key), data, 0).Err(); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, kind.Name, len(data))
	return nil
}

// Invalidate implements [Cache].
func (r *Redis) Invalidate(ctx context.Context, kind Kind, key string) error {
	return r.client.Del(ctx, r.key(kind, key)).Err()
}

// Clear deletes every key under the prefix.
func (r *Redis) Clear(ctx context.Context) (int, error) {
	removed := 0
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, iter.Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) key(kind Kind, key string) string {
	return r.prefix + kind.Name + ":" + key
}

var _ Cache = (*Redis)(nil)
