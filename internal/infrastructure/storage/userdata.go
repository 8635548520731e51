package storage

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/wellnoosh/engine/internal/domain/grocery"
	"github.com/wellnoosh/engine/internal/domain/quota"
	"github.com/wellnoosh/engine/internal/ports/outbound"
)

// UserDataKey is the store key for the per-user blob. The grocery list and
// the swipe-quota fields are nested in the same record, which is how the
// mobile client always stored them.
const UserDataKey = "wellnoosh_user_data"

// userDataRecord is the wire shape of the blob. Quota fields sit at the top
// level next to the grocery list rather than under a nested object.
type userDataRecord struct {
	GroceryList      grocery.List `json:"groceryList"`
	DailySwipesUsed  int          `json:"dailySwipesUsed"`
	LastSwipeDate    string       `json:"lastSwipeDate"`
	SubscriptionTier quota.Tier   `json:"subscriptionTier"`
	FavoriteRecipes  []string     `json:"favoriteRecipes"`
	SelectedRecipes  []string     `json:"selectedRecipes"`
}

// UserDataStore persists the user-data blob through a KeyValueStore. The
// mutex serializes Update so the grocery list and the quota fields, which
// share the record, never overwrite each other from concurrent requests.
type UserDataStore struct {
	mu     sync.Mutex
	store  outbound.KeyValueStore
	logger *zap.Logger
}

// NewUserDataStore creates the repository.
func NewUserDataStore(store outbound.KeyValueStore, logger *zap.Logger) *UserDataStore {
	return &UserDataStore{store: store, logger: logger.Named("userdata-store")}
}

// Load reads the blob. A missing key, a failed read, or malformed JSON all
// degrade to default state; persistence problems never reach the user.
func (r *UserDataStore) Load(ctx context.Context) (outbound.UserData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *UserDataStore) load(ctx context.Context) (outbound.UserData, error) {
	defaults := outbound.UserData{Quota: quota.State{Tier: quota.TierFree}}

	raw, err := r.store.Get(ctx, UserDataKey)
	if err != nil {
		r.logger.Warn("user data read failed, using defaults", zap.Error(err))
		return defaults, nil
	}
	if raw == nil {
		return defaults, nil
	}

	var record userDataRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		r.logger.Warn("user data malformed, using defaults", zap.Error(err))
		return defaults, nil
	}

	tier := record.SubscriptionTier
	if tier == "" {
		tier = quota.TierFree
	}
	return outbound.UserData{
		GroceryList: record.GroceryList,
		Quota: quota.State{
			DailySwipesUsed: record.DailySwipesUsed,
			LastSwipeDate:   record.LastSwipeDate,
			Tier:            tier,
		},
		FavoriteRecipes: record.FavoriteRecipes,
		SelectedRecipes: record.SelectedRecipes,
	}, nil
}

// Save writes the blob back.
func (r *UserDataStore) Save(ctx context.Context, data outbound.UserData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(ctx, data)
}

// Update runs a read-modify-write cycle as one critical section. The mutation
// callback sees the freshly loaded blob; returning an error aborts the write
// and leaves the stored value untouched.
func (r *UserDataStore) Update(ctx context.Context, mutate func(data *outbound.UserData) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load(ctx)
	if err != nil {
		return err
	}
	if err := mutate(&data); err != nil {
		return err
	}
	return r.save(ctx, data)
}

func (r *UserDataStore) save(ctx context.Context, data outbound.UserData) error {
	record := userDataRecord{
		GroceryList:      data.GroceryList,
		DailySwipesUsed:  data.Quota.DailySwipesUsed,
		LastSwipeDate:    data.Quota.LastSwipeDate,
		SubscriptionTier: data.Quota.Tier,
		FavoriteRecipes:  data.FavoriteRecipes,
		SelectedRecipes:  data.SelectedRecipes,
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, UserDataKey, raw)
}
