package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "showfinder:"

	redisDialCheck = 5 * time.Second
	redisOpTimeout = 2 * time.Second
	redisScanBatch = 500
)

func init() {
	Register("redis", openRedis)
}

// redisStore keeps every entry as one string key under prefix, written with
// SET EX. Redis owns expiry, so Size is ignored and OnEvict never fires.
type redisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	log    Logger
}

func openRedis(cfg ProviderConfig) (Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisDialCheck)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Address, err)
	}

	return &redisStore{rdb: rdb, prefix: cfg.KeyPrefix, ttl: cfg.TTL, log: cfg.Logger}, nil
}

// op runs fn under the per-operation timeout and logs any failure other
// than a missing key.
func (s *redisStore) op(name string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	err := fn(ctx)
	if err != nil && !errors.Is(err, redis.Nil) && s.log != nil {
		s.log.Error("redis store "+name+" failed", err)
	}
	return err
}

func (s *redisStore) Get(key string) ([]byte, bool) {
	var value []byte
	err := s.op("Get", func(ctx context.Context) (err error) {
		value, err = s.rdb.Get(ctx, s.prefix+key).Bytes()
		return err
	})
	if err != nil {
		return nil, false
	}
	return value, true
}

func (s *redisStore) Set(key string, value []byte) {
	_ = s.op("Set", func(ctx context.Context) error {
		return s.rdb.Set(ctx, s.prefix+key, value, s.ttl).Err()
	})
}

func (s *redisStore) Delete(key string) {
	_ = s.op("Delete", func(ctx context.Context) error {
		return s.rdb.Del(ctx, s.prefix+key).Err()
	})
}

// Len counts the keys under prefix with SCAN. It reports 0 when the scan fails.
func (s *redisStore) Len() int {
	n := 0
	err := s.op("Len", func(ctx context.Context) error {
		iter := s.rdb.Scan(ctx, 0, s.prefix+"*", redisScanBatch).Iterator()
		for iter.Next(ctx) {
			n++
		}
		return iter.Err()
	})
	if err != nil {
		return 0
	}
	return n
}

func (s *redisStore) Close() error {
	return s.rdb.Close()
}
