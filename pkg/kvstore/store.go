package kvstore

import (
	"context"
	"fmt"

	"github.com/r70610363/swiftcart-backend/pkg/config"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
)

// Store is a durable key to JSON-string mapping. Implementations must be safe
// for concurrent use and must apply writes to the same key in order
// (last-writer-wins by key).
type Store interface {
	// Get returns the raw value and whether the key exists. A missing key is
	// not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores the value, overwriting any previous one.
	Set(ctx context.Context, key, value string) error
	// Remove deletes the key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases the backend connections.
	Close() error
}

// New selects the configured backend. The sqlite and postgres drivers share
// the GORM implementation; redis gets its own client.
func New(ctx context.Context, cfg config.StoreConfig, redisCfg config.RedisConfig, logg *logger.Logger) (Store, error) {
	switch cfg.Driver {
	case config.StoreDriverSQLite, config.StoreDriverPostgres:
		return newGormStore(ctx, cfg, logg)
	case config.StoreDriverRedis:
		return newRedisStore(ctx, redisCfg, logg)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
