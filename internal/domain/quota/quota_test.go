package quota

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// QuotaTestSuite provides a test suite for the daily swipe quota
type QuotaTestSuite struct {
	suite.Suite
	clock   time.Time
	manager *Manager
}

// SetupTest pins the clock to a known day
func (suite *QuotaTestSuite) SetupTest() {
	suite.clock = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	suite.manager = NewManager(func() time.Time { return suite.clock })
}

// TestRecordSwipe tests the per-day cap
func (suite *QuotaTestSuite) TestRecordSwipe() {
	suite.Run("FreeTier_ShouldAllowFiveSwipesThenReject", func() {
		// Arrange
		state := State{Tier: TierFree}

		// Act
		var err error
		for i := 0; i < FreeDailySwipeLimit; i++ {
			state, err = suite.manager.RecordSwipe(state)
			require.NoError(suite.T(), err)
		}

		// Assert
		assert.Equal(suite.T(), FreeDailySwipeLimit, state.DailySwipesUsed)
		assert.False(suite.T(), suite.manager.CanSwipe(state))

		_, err = suite.manager.RecordSwipe(state)
		assert.ErrorIs(suite.T(), err, ErrQuotaExhausted)
	})

	suite.Run("PremiumTier_ShouldNeverBeCapped", func() {
		state := State{Tier: TierPremium}

		var err error
		for i := 0; i < 50; i++ {
			state, err = suite.manager.RecordSwipe(state)
			require.NoError(suite.T(), err)
		}

		assert.True(suite.T(), suite.manager.CanSwipe(state))
		assert.Equal(suite.T(), Unlimited, suite.manager.RemainingToday(state))
	})

	suite.Run("DayRollover_ShouldResetUsage", func() {
		// Arrange: exhaust the quota today.
		state := State{Tier: TierFree}
		var err error
		for i := 0; i < FreeDailySwipeLimit; i++ {
			state, err = suite.manager.RecordSwipe(state)
			require.NoError(suite.T(), err)
		}
		require.False(suite.T(), suite.manager.CanSwipe(state))

		// Act: advance the clock past midnight.
		suite.clock = suite.clock.Add(24 * time.Hour)

		// Assert
		assert.True(suite.T(), suite.manager.CanSwipe(state))
		assert.Equal(suite.T(), FreeDailySwipeLimit, suite.manager.RemainingToday(state))

		state, err = suite.manager.RecordSwipe(state)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1, state.DailySwipesUsed)
		assert.Equal(suite.T(), "2025-06-16", state.LastSwipeDate)
	})

	suite.Run("StaleDateFromStorage_ShouldResetOnRead", func() {
		state := State{DailySwipesUsed: 5, LastSwipeDate: "2025-06-01", Tier: TierFree}

		normalized := suite.manager.Normalize(state)

		assert.Equal(suite.T(), 0, normalized.DailySwipesUsed)
		assert.Equal(suite.T(), "2025-06-15", normalized.LastSwipeDate)
	})

	suite.Run("MissingTier_ShouldDefaultToFree", func() {
		normalized := suite.manager.Normalize(State{})

		assert.Equal(suite.T(), TierFree, normalized.Tier)
	})
}

// TestRemainingToday tests the remaining-swipe projection
func (suite *QuotaTestSuite) TestRemainingToday() {
	suite.Run("PartialUsage_ShouldReportRemainder", func() {
		state := State{DailySwipesUsed: 3, LastSwipeDate: "2025-06-15", Tier: TierFree}

		assert.Equal(suite.T(), 2, suite.manager.RemainingToday(state))
	})

	suite.Run("OverCap_ShouldClampToZero", func() {
		state := State{DailySwipesUsed: 9, LastSwipeDate: "2025-06-15", Tier: TierFree}

		assert.Equal(suite.T(), 0, suite.manager.RemainingToday(state))
	})
}

func TestQuotaTestSuite(t *testing.T) {
	suite.Run(t, new(QuotaTestSuite))
}
