package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	groceryapp "github.com/wellnoosh/engine/internal/application/grocery"
	inventoryapp "github.com/wellnoosh/engine/internal/application/inventory"
	"github.com/wellnoosh/engine/internal/domain/quota"
	"github.com/wellnoosh/engine/internal/domain/recipe"
	"github.com/wellnoosh/engine/internal/domain/session"
	"github.com/wellnoosh/engine/internal/infrastructure/storage"
	"github.com/wellnoosh/engine/internal/ports/inbound"
	"github.com/wellnoosh/engine/internal/ports/outbound"
	apperrors "github.com/wellnoosh/engine/pkg/errors"
	"github.com/wellnoosh/engine/test/testutils"
)

// stubCatalog serves a fixed deck.
type stubCatalog struct {
	deck []recipe.Recipe
}

func (c *stubCatalog) All(ctx context.Context) ([]recipe.Recipe, error) {
	return c.deck, nil
}

func (c *stubCatalog) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	for i := range c.deck {
		if c.deck[i].ID == id {
			return &c.deck[i], nil
		}
	}
	return nil, nil
}

// recordingPublisher captures shared recipes.
type recordingPublisher struct {
	shared []string
	err    error
}

func (p *recordingPublisher) PublishRecipeShare(ctx context.Context, r recipe.Recipe) error {
	if p.err != nil {
		return p.err
	}
	p.shared = append(p.shared, r.ID)
	return nil
}

// SessionServiceTestSuite wires the session service against real in-memory
// storage and the real inventory and grocery services.
type SessionServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	clock     time.Time
	store     *storage.MemoryStore
	userData  outbound.UserDataRepository
	leftovers outbound.LeftoverRepository
	inventory inbound.InventoryService
	grocery   inbound.GroceryService
	publisher *recordingPublisher
	service   inbound.SessionService
}

// SetupTest rebuilds the whole stack with a pinned clock and a three-card deck
func (suite *SessionServiceTestSuite) SetupTest() {
	logger := zap.NewNop()
	suite.ctx = context.Background()
	suite.clock = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	now := func() time.Time { return suite.clock }

	suite.store = storage.NewMemoryStore()
	suite.userData = storage.NewUserDataStore(suite.store, logger)
	suite.leftovers = storage.NewLeftoverStore(suite.store, logger)
	suite.inventory = inventoryapp.NewService(suite.leftovers, nil, now, logger)
	suite.grocery = groceryapp.NewService(suite.userData, nil, logger)
	suite.publisher = &recordingPublisher{}

	deck := []recipe.Recipe{
		testutils.NewRecipeBuilder().
			WithID("recipe-1").
			WithName("Veggie Fried Rice").
			WithServings(2).
			WithIngredients(
				recipe.Ingredient{Name: "rice", Amount: "1 cup", Category: "grains"},
				recipe.Ingredient{Name: "soy sauce", Amount: "2 tbsp", Category: "condiments"},
			).
			WithUsesLeftovers("rice", "chicken").
			Build(),
		testutils.NewRecipeBuilder().WithID("recipe-2").Build(),
		testutils.NewRecipeBuilder().WithID("recipe-3").Build(),
	}

	suite.service = NewService(
		&stubCatalog{deck: deck},
		suite.userData,
		suite.inventory,
		suite.grocery,
		suite.publisher,
		nil,
		now,
		logger,
	)
}

// TestFullPass walks a free-tier user through a complete session
func (suite *SessionServiceTestSuite) TestFullPass() {
	// Arrange: two leftovers, one of which the first recipe consumes.
	_, err := suite.inventory.AddItems(suite.ctx, []string{"chicken breast", "broccoli"})
	require.NoError(suite.T(), err)

	// Act: start browsing.
	view, err := suite.service.Start(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), session.StatusBrowsing, view.Status)
	assert.Equal(suite.T(), 3, view.DeckSize)
	assert.Equal(suite.T(), quota.FreeDailySwipeLimit, view.RemainingSwipes)
	require.NotNil(suite.T(), view.Recipe)
	assert.Equal(suite.T(), "recipe-1", view.Recipe.ID)

	// Flip the first card; one swipe consumed, cursor unchanged.
	view, err = suite.service.SwipeRight(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), session.StatusFlipped, view.Status)
	assert.Equal(suite.T(), 0, view.Index)
	assert.Equal(suite.T(), quota.FreeDailySwipeLimit-1, view.RemainingSwipes)

	// Mark rice as missing; the grocery list gains the scaled item.
	view, err = suite.service.ToggleIngredient(suite.ctx, 0, false)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), view.Recipe.Ingredients[0].HasIt)
	assert.False(suite.T(), *view.Recipe.Ingredients[0].HasIt)

	list, err := suite.grocery.List(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 1)
	assert.Equal(suite.T(), "rice", list[0].Name)
	assert.Equal(suite.T(), "Veggie Fried Rice", list[0].FromRecipe)

	// Cook it: the matching leftover is retired and the cursor advances.
	result, err := suite.service.Cook(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), result.ConsumedLeftovers, 1)
	assert.Equal(suite.T(), "chicken breast", result.ConsumedLeftovers[0].Name)
	assert.Equal(suite.T(), session.StatusBrowsing, result.Session.Status)
	assert.Equal(suite.T(), 1, result.Session.Index)
	assert.Equal(suite.T(), []string{"recipe-1"}, result.Session.Results.Cooked)

	remaining, err := suite.inventory.List(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), remaining, 1)
	assert.Equal(suite.T(), "broccoli", remaining[0].Name)

	// Pass on the last two cards.
	view, err = suite.service.SwipeLeft(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, view.Index)

	view, err = suite.service.SwipeLeft(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), session.StatusCompleted, view.Status)
	assert.Nil(suite.T(), view.Recipe)

	// Completion persisted the results into user data.
	data, err := suite.userData.Load(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"recipe-1"}, data.SelectedRecipes)
	assert.Equal(suite.T(), 3, data.Quota.DailySwipesUsed)
}

// TestQuotaGate tests the free-tier daily cap at the service boundary
func (suite *SessionServiceTestSuite) TestQuotaGate() {
	suite.Run("SixthSwipe_ShouldBlockNotError", func() {
		// Arrange
		_, err := suite.service.Start(suite.ctx)
		require.NoError(suite.T(), err)

		// Act: burn the daily quota swiping left, restarting when the deck runs out.
		for swipes := 0; swipes < quota.FreeDailySwipeLimit; swipes++ {
			view, err := suite.service.SwipeLeft(suite.ctx)
			require.NoError(suite.T(), err)
			if view.Status == session.StatusCompleted {
				_, err = suite.service.Start(suite.ctx)
				require.NoError(suite.T(), err)
			}
		}

		view, err := suite.service.View(suite.ctx)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 0, view.RemainingSwipes)

		// Assert: the next swipe is a state transition, not an error.
		view, err = suite.service.SwipeRight(suite.ctx)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), session.StatusQuotaExceeded, view.Status)
	})

	suite.Run("DayRollover_ShouldResumeOnView", func() {
		// Arrange: block the session.
		data, err := suite.userData.Load(suite.ctx)
		require.NoError(suite.T(), err)
		data.Quota = quota.State{
			DailySwipesUsed: quota.FreeDailySwipeLimit,
			LastSwipeDate:   suite.clock.Format("2006-01-02"),
			Tier:            quota.TierFree,
		}
		require.NoError(suite.T(), suite.userData.Save(suite.ctx, data))

		_, err = suite.service.Start(suite.ctx)
		require.NoError(suite.T(), err)
		view, err := suite.service.SwipeRight(suite.ctx)
		require.NoError(suite.T(), err)
		require.Equal(suite.T(), session.StatusQuotaExceeded, view.Status)

		// Act: cross midnight and look again.
		suite.clock = suite.clock.Add(24 * time.Hour)
		view, err = suite.service.View(suite.ctx)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), session.StatusBrowsing, view.Status)
		assert.Equal(suite.T(), quota.FreeDailySwipeLimit, view.RemainingSwipes)
	})

	suite.Run("PremiumTier_ShouldReportUnlimited", func() {
		data, err := suite.userData.Load(suite.ctx)
		require.NoError(suite.T(), err)
		data.Quota.Tier = quota.TierPremium
		require.NoError(suite.T(), suite.userData.Save(suite.ctx, data))

		view, err := suite.service.Start(suite.ctx)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), quota.Unlimited, view.RemainingSwipes)

		for i := 0; i < 2; i++ {
			view, err = suite.service.SwipeRight(suite.ctx)
			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), session.StatusFlipped, view.Status)
			view, err = suite.service.ContinueBrowsing(suite.ctx)
			require.NoError(suite.T(), err)
		}
		assert.Equal(suite.T(), quota.Unlimited, view.RemainingSwipes)
	})

	suite.Run("Skip_ShouldNotConsumeQuota", func() {
		// Reset the quota record left behind by the earlier subtests.
		data, err := suite.userData.Load(suite.ctx)
		require.NoError(suite.T(), err)
		data.Quota = quota.State{Tier: quota.TierFree}
		require.NoError(suite.T(), suite.userData.Save(suite.ctx, data))

		_, err = suite.service.Start(suite.ctx)
		require.NoError(suite.T(), err)

		view, err := suite.service.Skip(suite.ctx)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1, view.Index)
		assert.Equal(suite.T(), quota.FreeDailySwipeLimit, view.RemainingSwipes)
	})
}

// TestRejectedSwipe verifies that a refused swipe transition never spends quota
func (suite *SessionServiceTestSuite) TestRejectedSwipe() {
	suite.Run("SwipeWhileFlipped_ShouldNotConsumeQuota", func() {
		// Arrange: flip the first card, spending one swipe.
		_, err := suite.service.Start(suite.ctx)
		require.NoError(suite.T(), err)
		_, err = suite.service.SwipeRight(suite.ctx)
		require.NoError(suite.T(), err)

		// Act: a second right swipe on the flipped card is refused.
		_, err = suite.service.SwipeRight(suite.ctx)

		// Assert: the rejection is an invalid-action error and the quota
		// record still shows only the accepted swipe.
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeInvalidAction, apperrors.GetCode(err))
		data, err := suite.userData.Load(suite.ctx)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1, data.Quota.DailySwipesUsed)
	})

	suite.Run("SwipeAfterCompletion_ShouldNotConsumeQuota", func() {
		// Arrange: skip through the whole deck, quota-free.
		_, err := suite.service.Start(suite.ctx)
		require.NoError(suite.T(), err)
		for i := 0; i < 3; i++ {
			_, err = suite.service.Skip(suite.ctx)
			require.NoError(suite.T(), err)
		}
		before, err := suite.userData.Load(suite.ctx)
		require.NoError(suite.T(), err)

		// Act
		_, err = suite.service.SwipeLeft(suite.ctx)

		// Assert
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeInvalidAction, apperrors.GetCode(err))
		after, err := suite.userData.Load(suite.ctx)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), before.Quota.DailySwipesUsed, after.Quota.DailySwipesUsed)
	})
}

// TestFlippedActions tests favorite, share, and servings at the service level
func (suite *SessionServiceTestSuite) TestFlippedActions() {
	suite.Run("NoActiveSession_ShouldReturnError", func() {
		_, err := suite.service.View(suite.ctx)

		assert.Error(suite.T(), err)
	})

	suite.Run("Favorite_ShouldAccumulateOnce", func() {
		_, err := suite.service.Start(suite.ctx)
		require.NoError(suite.T(), err)
		_, err = suite.service.SwipeRight(suite.ctx)
		require.NoError(suite.T(), err)

		view, err := suite.service.Favorite(suite.ctx)
		require.NoError(suite.T(), err)
		view, err = suite.service.Favorite(suite.ctx)
		require.NoError(suite.T(), err)

		assert.Equal(suite.T(), []string{"recipe-1"}, view.Results.Favorited)
	})

	suite.Run("Share_ShouldPublishAndKeepState", func() {
		_, err := suite.service.Start(suite.ctx)
		require.NoError(suite.T(), err)
		_, err = suite.service.SwipeRight(suite.ctx)
		require.NoError(suite.T(), err)

		view, err := suite.service.Share(suite.ctx)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), session.StatusFlipped, view.Status)
		assert.Equal(suite.T(), []string{"recipe-1"}, suite.publisher.shared)
	})

	suite.Run("ShareDeliveryFailure_ShouldNotFailTheCall", func() {
		suite.publisher.err = assert.AnError

		_, err := suite.service.Start(suite.ctx)
		require.NoError(suite.T(), err)
		_, err = suite.service.SwipeRight(suite.ctx)
		require.NoError(suite.T(), err)

		view, err := suite.service.Share(suite.ctx)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), session.StatusFlipped, view.Status)
	})

	suite.Run("SetServings_ShouldRescaleCard", func() {
		_, err := suite.service.Start(suite.ctx)
		require.NoError(suite.T(), err)

		view, err := suite.service.SetServings(suite.ctx, 4)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 4, view.Recipe.Servings)
		assert.Equal(suite.T(), 2, view.Recipe.BaseServings)
		assert.Equal(suite.T(), "2 cup", view.Recipe.Ingredients[0].Amount)
	})

	suite.Run("SetServingsOutOfRange_ShouldBeSilentlyIgnored", func() {
		_, err := suite.service.Start(suite.ctx)
		require.NoError(suite.T(), err)

		view, err := suite.service.SetServings(suite.ctx, 21)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 2, view.Recipe.Servings)
	})
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
