package kvstore

import (
	"context"
	"encoding/json"

	"github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
)

// GetJSON reads and decodes the value under key into dest. Malformed or
// unreadable content is never fatal: the condition is logged and the caller
// proceeds with its zero/default value. The return reports whether dest was
// populated.
func GetJSON(ctx context.Context, store Store, logg *logger.Logger, key string, dest any) bool {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		if logg != nil {
			logg.Warn(logg.WithStoreKey(ctx, key), "kv read failed, using default")
		}
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		if logg != nil {
			logg.Warn(logg.WithStoreKey(ctx, key), "discarding malformed persisted value")
		}
		return false
	}
	return true
}

// SetJSON encodes v and writes it under key. Write failures surface as
// storage errors so callers can keep memory and disk consistent
// (write-first, commit on success).
func SetJSON(ctx context.Context, store Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encode value for "+key)
	}
	if err := store.Set(ctx, key, string(raw)); err != nil {
		return errors.Wrap(errors.CodeStorage, err, "persist "+key)
	}
	return nil
}
