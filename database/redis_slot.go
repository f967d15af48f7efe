package database

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the redis slot connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
	Prefix   string
}

// RedisSlot stores slot values as plain redis strings under Prefix+key.
type RedisSlot struct {
	Client *redis.Client
	Prefix string
}

// NewRedisSlot connects and pings the server with a short timeout.
func NewRedisSlot(ctx context.Context, opts RedisOptions) (*RedisSlot, error) {
	var tlsConf *tls.Config
	if opts.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      opts.Addr,
		Password:  opts.Password,
		DB:        opts.DB,
		TLSConfig: tlsConf,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}
	return &RedisSlot{Client: client, Prefix: opts.Prefix}, nil
}

func (s *RedisSlot) Read(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.Client.Get(ctx, s.Prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read slot %s from redis: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisSlot) Write(ctx context.Context, key string, value []byte) error {
	if err := s.Client.Set(ctx, s.Prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot %s to redis: %w", key, err)
	}
	return nil
}

func (s *RedisSlot) Close() error {
	return s.Client.Close()
}
