package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/avstrong/hostelscout/internal/logger"
)

type Config struct {
	L        *logger.Logger
	Addr     string
	Password string
	DB       int
}

// DB maps the three persistence slots onto plain Redis string keys. Used when
// the deployment wants state to survive the local filesystem.
type DB struct {
	l      *logger.Logger
	client *redis.Client
}

func New(ctx context.Context, conf Config) (*DB, error) {
	//nolint:exhaustruct
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("ping redis at %q: %w", conf.Addr, err)
	}

	return &DB{
		l:      conf.L,
		client: client,
	}, nil
}

func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := db.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("get slot %q: %w", key, err)
	}

	return val, true, nil
}

func (db *DB) Set(ctx context.Context, key, value string) error {
	if err := db.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set slot %q: %w", key, err)
	}

	return nil
}

func (db *DB) Close() error {
	if db.client != nil {
		return db.client.Close()
	}

	return nil
}
