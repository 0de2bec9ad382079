// Package session keeps the bearer token and the cached user snapshot.
package session

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by stores when a key is absent.
var ErrNotFound = errors.New("session key not found")

// Store is a small string key/value store.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(keys ...string) error
	Close() error
}

// Options configures concrete store implementations.
type Options struct {
	Path        string
	RedisAddr   string
	RedisDB     int
	RedisPrefix string
}

// Supported store types.
const (
	TypeBBolt  = "bbolt"
	TypeMemory = "memory"
	TypeRedis  = "redis"
)

// NewStore creates the configured storage backend.
func NewStore(typ string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", TypeBBolt:
		if strings.TrimSpace(opts.Path) == "" {
			return nil, fmt.Errorf("bbolt session store requires a path")
		}
		return openBolt(opts.Path)
	case TypeMemory:
		return NewMemoryStore(), nil
	case TypeRedis:
		if strings.TrimSpace(opts.RedisAddr) == "" {
			return nil, fmt.Errorf("redis session store requires an address")
		}
		return openRedis(opts)
	default:
		return nil, fmt.Errorf("unsupported session store type %q", typ)
	}
}
