package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alemhq/alem/pkg/triage"
)

var (
	ErrInvalidDriver = errors.New("store: unknown driver")
	ErrInvalidConfig = errors.New("store: missing driver configuration")
)

// Store persists per-conversation session state between turns. The triage
// layer never touches storage directly; transports load, run the turn, and
// save or clear depending on the outcome.
type Store interface {
	// Load returns the session for id, or (nil, nil) when none is stored.
	Load(ctx context.Context, id string) (*triage.Session, error)

	// Save persists the session for id, creating or replacing it.
	Save(ctx context.Context, id string, sess *triage.Session) error

	// Clear removes all stored state for id. Clearing an absent id is a no-op.
	Clear(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}

// Driver selects the storage backend.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverRedis    Driver = "redis"
	DriverPostgres Driver = "postgres"
)

// Option is a functional option for configuring a store.
type Option func(*config)

type config struct {
	redisClient *redis.Client
	db          *sql.DB
	ttl         time.Duration
}

// WithRedisClient sets the Redis client for the redis driver.
func WithRedisClient(client *redis.Client) Option {
	return func(c *config) {
		c.redisClient = client
	}
}

// WithDB sets the database handle for the postgres driver.
func WithDB(db *sql.DB) Option {
	return func(c *config) {
		c.db = db
	}
}

// WithTTL sets the session expiry for drivers that support it.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.ttl = ttl
	}
}

// NewStore creates a Store for the given driver. The redis driver requires
// WithRedisClient and the postgres driver requires WithDB.
func NewStore(driver Driver, opts ...Option) (Store, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverRedis:
		if cfg.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return NewRedisStore(cfg.redisClient, cfg.ttl), nil
	case DriverPostgres:
		if cfg.db == nil {
			return nil, ErrInvalidConfig
		}
		return NewPostgresStore(cfg.db), nil
	default:
		return nil, ErrInvalidDriver
	}
}
