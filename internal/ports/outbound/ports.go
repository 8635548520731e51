// Package outbound defines the interfaces the engine uses to reach external
// systems: the key-value store backing persistence, the recipe catalog, the
// share publisher, and the metrics sink.
package outbound

import (
	"context"

	"github.com/wellnoosh/engine/internal/domain/grocery"
	"github.com/wellnoosh/engine/internal/domain/leftover"
	"github.com/wellnoosh/engine/internal/domain/quota"
	"github.com/wellnoosh/engine/internal/domain/recipe"
)

// KeyValueStore is the only persistence boundary the engine has. A missing
// key is (nil, nil), not an error. Writes are fire-and-forget from the
// engine's point of view; reads are best-effort and callers degrade to empty
// state on failure.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// CatalogRepository supplies the static, externally owned recipe catalog.
// The engine never mutates it.
type CatalogRepository interface {
	All(ctx context.Context) ([]recipe.Recipe, error)
	FindByID(ctx context.Context, id string) (*recipe.Recipe, error)
}

// UserData is the persisted per-user blob: the grocery list and the swipe
// quota fields live in it together, plus the session result carry-overs.
type UserData struct {
	GroceryList     grocery.List
	Quota           quota.State
	FavoriteRecipes []string
	SelectedRecipes []string
}

// UserDataRepository owns the user-data blob. Load degrades to defaults when
// the stored value is missing or malformed. Update is the only safe way to
// modify the blob: it serializes the read-modify-write so concurrent writers
// of different nested fields cannot clobber each other.
type UserDataRepository interface {
	Load(ctx context.Context) (UserData, error)
	Save(ctx context.Context, data UserData) error
	Update(ctx context.Context, mutate func(data *UserData) error) error
}

// LeftoverRepository owns the persisted leftover inventory. Load degrades to
// an empty list when the stored value is missing or malformed.
type LeftoverRepository interface {
	Load(ctx context.Context) ([]leftover.Item, error)
	Save(ctx context.Context, items []leftover.Item) error
}

// SharePublisher delivers a shared recipe to an external collaborator.
type SharePublisher interface {
	PublishRecipeShare(ctx context.Context, r recipe.Recipe) error
}

// EngineMetrics receives usage counters from the application services.
type EngineMetrics interface {
	SwipeRecorded(direction string, tier quota.Tier)
	QuotaRejected(tier quota.Tier)
	RecipeCooked()
	LeftoversConsumed(count int)
	GroceryMutationApplied(kind string)
}

// NopMetrics discards every observation. Default when no recorder is wired.
type NopMetrics struct{}

func (NopMetrics) SwipeRecorded(string, quota.Tier) {}
func (NopMetrics) QuotaRejected(quota.Tier)         {}
func (NopMetrics) RecipeCooked()                    {}
func (NopMetrics) LeftoversConsumed(int)            {}
func (NopMetrics) GroceryMutationApplied(string)    {}
