package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/wellnoosh/engine/internal/infrastructure/storage"
	"github.com/wellnoosh/engine/internal/ports/inbound"
	"github.com/wellnoosh/engine/pkg/errors"
)

// InventoryServiceTestSuite provides a test suite for the inventory service
type InventoryServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	clock   time.Time
	service inbound.InventoryService
}

// SetupTest wires the service over a fresh in-memory store
func (suite *InventoryServiceTestSuite) SetupTest() {
	logger := zap.NewNop()
	suite.ctx = context.Background()
	suite.clock = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	repo := storage.NewLeftoverStore(storage.NewMemoryStore(), logger)
	suite.service = NewService(repo, nil, func() time.Time { return suite.clock }, logger)
}

// TestAddFromText tests free-text capture
func (suite *InventoryServiceTestSuite) TestAddFromText() {
	suite.Run("ParsableText_ShouldSplitIntoItems", func() {
		// Act
		added, err := suite.service.AddFromText(suite.ctx, "leftover chicken, rice and broccoli")

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), added, 3)
		assert.Equal(suite.T(), "chicken", added[0].Name)
		assert.Equal(suite.T(), "rice", added[1].Name)
		assert.Equal(suite.T(), "broccoli", added[2].Name)
		assert.Equal(suite.T(), suite.clock, added[0].AddedDate)
	})

	suite.Run("SingleItemText_ShouldStoreWholeName", func() {
		added, err := suite.service.AddFromText(suite.ctx, "Grandma's casserole")

		require.NoError(suite.T(), err)
		require.Len(suite.T(), added, 1)
		assert.Equal(suite.T(), "grandma's casserole", added[0].Name)
	})

	suite.Run("PurePunctuation_ShouldFallBackToWholeInput", func() {
		added, err := suite.service.AddFromText(suite.ctx, ",,,")

		require.NoError(suite.T(), err)
		require.Len(suite.T(), added, 1)
		assert.Equal(suite.T(), ",,,", added[0].Name)
	})

	suite.Run("EmptyText_ShouldReturnValidationError", func() {
		_, err := suite.service.AddFromText(suite.ctx, "   ")

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeValidationFailed, errors.GetCode(err))
	})

	suite.Run("AddedItems_ShouldPersistAcrossReads", func() {
		_, err := suite.service.AddFromText(suite.ctx, "soup")
		require.NoError(suite.T(), err)

		items, err := suite.service.List(suite.ctx)

		require.NoError(suite.T(), err)
		require.NotEmpty(suite.T(), items)
		assert.Equal(suite.T(), "soup", items[len(items)-1].Name)
	})
}

// TestAddItems tests pre-parsed capture results
func (suite *InventoryServiceTestSuite) TestAddItems() {
	suite.Run("Names_ShouldBeCanonicalized", func() {
		added, err := suite.service.AddItems(suite.ctx, []string{" Fried Rice "})

		require.NoError(suite.T(), err)
		require.Len(suite.T(), added, 1)
		assert.Equal(suite.T(), "fried rice", added[0].Name)
	})

	suite.Run("NoNames_ShouldReturnValidationError", func() {
		_, err := suite.service.AddItems(suite.ctx, nil)

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeValidationFailed, errors.GetCode(err))
	})
}

// TestRemove tests single-item deletion
func (suite *InventoryServiceTestSuite) TestRemove() {
	suite.Run("ExistingItem_ShouldBeDeleted", func() {
		added, err := suite.service.AddItems(suite.ctx, []string{"pasta"})
		require.NoError(suite.T(), err)

		require.NoError(suite.T(), suite.service.Remove(suite.ctx, added[0].ID))

		items, err := suite.service.List(suite.ctx)
		require.NoError(suite.T(), err)
		for _, item := range items {
			assert.NotEqual(suite.T(), added[0].ID, item.ID)
		}
	})

	suite.Run("UnknownID_ShouldReturnNotFound", func() {
		err := suite.service.Remove(suite.ctx, "missing")

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeNotFound, errors.GetCode(err))
	})
}

// TestConsume tests recipe-driven retirement
func (suite *InventoryServiceTestSuite) TestConsume() {
	suite.Run("MatchingTags_ShouldRetireAndPersist", func() {
		// Arrange
		_, err := suite.service.AddItems(suite.ctx, []string{"chicken breast", "white rice", "cake"})
		require.NoError(suite.T(), err)

		// Act
		consumed, err := suite.service.Consume(suite.ctx, []string{"chicken", "rice"})

		// Assert
		require.NoError(suite.T(), err)
		assert.Len(suite.T(), consumed, 2)

		items, err := suite.service.List(suite.ctx)
		require.NoError(suite.T(), err)
		require.Len(suite.T(), items, 1)
		assert.Equal(suite.T(), "cake", items[0].Name)
	})

	suite.Run("NoTags_ShouldBeNoOp", func() {
		consumed, err := suite.service.Consume(suite.ctx, nil)

		require.NoError(suite.T(), err)
		assert.Nil(suite.T(), consumed)
	})

	suite.Run("NoMatches_ShouldReturnNothing", func() {
		_, err := suite.service.AddItems(suite.ctx, []string{"bread"})
		require.NoError(suite.T(), err)

		consumed, err := suite.service.Consume(suite.ctx, []string{"sushi"})

		require.NoError(suite.T(), err)
		assert.Nil(suite.T(), consumed)
	})
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
