// Package store persists the configuration string selected for each board,
// keyed by board key ("package:architecture:board").
//
// Implementations:
//   - FileStore: a JSON settings file, for CLI use
//   - RedisStore: shared storage for several hosts
//   - NullStore: keeps nothing
package store

import (
	"context"
	"fmt"

	"github.com/StinkyLord/boardcfg/internal/config"
)

// Store holds one configuration string per board key.
type Store interface {
	// Get returns the stored config. ok is false when nothing is stored for key.
	Get(ctx context.Context, key string) (config string, ok bool, err error)
	Set(ctx context.Context, key, config string) error
	Delete(ctx context.Context, key string) error
	// List returns every stored key with its config.
	List(ctx context.Context) (map[string]string, error)
	Close() error
}

// Open returns the store described by cfg.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Kind {
	case config.StoreFile, "":
		fs, err := NewFileStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case config.StoreRedis:
		rs, err := NewRedisStore(ctx, RedisConfig{Addr: cfg.RedisAddr, Prefix: cfg.RedisPrefix})
		if err != nil {
			return nil, err
		}
		return rs, nil
	case config.StoreNone:
		return NewNullStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store %q (supported: file, redis, none)", cfg.Kind)
	}
}
