package grocery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	grocerydomain "github.com/wellnoosh/engine/internal/domain/grocery"
	"github.com/wellnoosh/engine/internal/domain/quota"
	"github.com/wellnoosh/engine/internal/infrastructure/storage"
	"github.com/wellnoosh/engine/internal/ports/inbound"
	"github.com/wellnoosh/engine/internal/ports/outbound"
	"github.com/wellnoosh/engine/pkg/errors"
)

// GroceryServiceTestSuite provides a test suite for the grocery service
type GroceryServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    outbound.UserDataRepository
	service inbound.GroceryService
}

// SetupTest wires the service over a fresh in-memory store
func (suite *GroceryServiceTestSuite) SetupTest() {
	logger := zap.NewNop()
	suite.ctx = context.Background()
	suite.repo = storage.NewUserDataStore(storage.NewMemoryStore(), logger)
	suite.service = NewService(suite.repo, nil, logger)
}

func (suite *GroceryServiceTestSuite) upsert(id, name, fromRecipe string) {
	err := suite.service.Apply(suite.ctx, grocerydomain.Mutation{
		Kind: grocerydomain.MutationUpsert,
		Item: &grocerydomain.Item{
			ID:         id,
			Name:       name,
			Amount:     "1 cup",
			AddedDate:  time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
			FromRecipe: fromRecipe,
		},
	})
	require.NoError(suite.T(), err)
}

// TestApply tests mutation persistence
func (suite *GroceryServiceTestSuite) TestApply() {
	suite.Run("Upsert_ShouldPersistItem", func() {
		// Act
		suite.upsert("g1", "rice", "Veggie Fried Rice")

		// Assert
		list, err := suite.service.List(suite.ctx)
		require.NoError(suite.T(), err)
		require.Len(suite.T(), list, 1)
		assert.Equal(suite.T(), "rice", list[0].Name)
	})

	suite.Run("UpsertSameKey_ShouldReplace", func() {
		suite.upsert("g2", "rice", "Veggie Fried Rice")

		list, err := suite.service.List(suite.ctx)
		require.NoError(suite.T(), err)
		require.Len(suite.T(), list, 1)
		assert.Equal(suite.T(), "g2", list[0].ID)
	})

	suite.Run("Remove_ShouldDropByKey", func() {
		err := suite.service.Apply(suite.ctx, grocerydomain.Mutation{
			Kind:       grocerydomain.MutationRemove,
			Name:       "RICE",
			FromRecipe: "Veggie Fried Rice",
		})

		require.NoError(suite.T(), err)
		list, err := suite.service.List(suite.ctx)
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), list)
	})

	suite.Run("Apply_ShouldNotTouchQuotaFields", func() {
		// The grocery list shares its blob with the swipe quota.
		data, err := suite.repo.Load(suite.ctx)
		require.NoError(suite.T(), err)
		data.Quota = quota.State{DailySwipesUsed: 4, LastSwipeDate: "2025-06-15", Tier: quota.TierFree}
		require.NoError(suite.T(), suite.repo.Save(suite.ctx, data))

		suite.upsert("g3", "milk", "")

		data, err = suite.repo.Load(suite.ctx)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 4, data.Quota.DailySwipesUsed)
		assert.Equal(suite.T(), "2025-06-15", data.Quota.LastSwipeDate)
	})
}

// TestSetCompleted tests checking items off
func (suite *GroceryServiceTestSuite) TestSetCompleted() {
	suite.Run("ExistingItem_ShouldToggle", func() {
		suite.upsert("g1", "rice", "Veggie Fried Rice")

		require.NoError(suite.T(), suite.service.SetCompleted(suite.ctx, "g1", true))

		list, err := suite.service.List(suite.ctx)
		require.NoError(suite.T(), err)
		assert.True(suite.T(), list[0].Completed)
	})

	suite.Run("UnknownID_ShouldReturnNotFound", func() {
		err := suite.service.SetCompleted(suite.ctx, "missing", true)

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeNotFound, errors.GetCode(err))
	})
}

// TestRemove tests deletion by identity
func (suite *GroceryServiceTestSuite) TestRemove() {
	suite.Run("ExistingItem_ShouldBeDeleted", func() {
		suite.upsert("g1", "rice", "Veggie Fried Rice")

		require.NoError(suite.T(), suite.service.Remove(suite.ctx, "g1"))

		list, err := suite.service.List(suite.ctx)
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), list)
	})

	suite.Run("UnknownID_ShouldReturnNotFound", func() {
		err := suite.service.Remove(suite.ctx, "missing")

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeNotFound, errors.GetCode(err))
	})
}

func TestGroceryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GroceryServiceTestSuite))
}
