package storage

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/wellnoosh/engine/internal/domain/leftover"
	"github.com/wellnoosh/engine/internal/ports/outbound"
)

// LeftoversKey is the store key for the leftover inventory.
const LeftoversKey = "wellnoosh_leftovers"

// LeftoverStore persists the leftover inventory through a KeyValueStore.
type LeftoverStore struct {
	store  outbound.KeyValueStore
	logger *zap.Logger
}

// NewLeftoverStore creates the repository.
func NewLeftoverStore(store outbound.KeyValueStore, logger *zap.Logger) *LeftoverStore {
	return &LeftoverStore{store: store, logger: logger.Named("leftover-store")}
}

// Load reads the inventory, degrading to empty on any read or decode failure.
func (r *LeftoverStore) Load(ctx context.Context) ([]leftover.Item, error) {
	raw, err := r.store.Get(ctx, LeftoversKey)
	if err != nil {
		r.logger.Warn("leftovers read failed, using empty inventory", zap.Error(err))
		return nil, nil
	}
	if raw == nil {
		return nil, nil
	}

	var items []leftover.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		r.logger.Warn("leftovers malformed, using empty inventory", zap.Error(err))
		return nil, nil
	}
	return items, nil
}

// Save writes the inventory back.
func (r *LeftoverStore) Save(ctx context.Context, items []leftover.Item) error {
	if items == nil {
		items = []leftover.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, LeftoversKey, raw)
}
