package session

import (
	"time"

	"github.com/google/uuid"
)

// SessionStartedEvent is raised when a new pass begins.
type SessionStartedEvent struct {
	SessionID uuid.UUID
	DeckSize  int
	StartedAt time.Time
}

func (e SessionStartedEvent) EventName() string     { return "session.started" }
func (e SessionStartedEvent) OccurredAt() time.Time { return e.StartedAt }

// RecipeFavoritedEvent is raised the first time a recipe is favorited.
type RecipeFavoritedEvent struct {
	SessionID   uuid.UUID
	RecipeID    string
	FavoritedAt time.Time
}

func (e RecipeFavoritedEvent) EventName() string     { return "session.recipe_favorited" }
func (e RecipeFavoritedEvent) OccurredAt() time.Time { return e.FavoritedAt }

// RecipeCookedEvent is raised when the user confirms cooking a recipe.
type RecipeCookedEvent struct {
	SessionID uuid.UUID
	RecipeID  string
	CookedAt  time.Time
}

func (e RecipeCookedEvent) EventName() string     { return "session.recipe_cooked" }
func (e RecipeCookedEvent) OccurredAt() time.Time { return e.CookedAt }

// SwipeLimitReachedEvent is raised when a swipe is rejected by the daily cap.
type SwipeLimitReachedEvent struct {
	SessionID uuid.UUID
	ReachedAt time.Time
}

func (e SwipeLimitReachedEvent) EventName() string     { return "session.swipe_limit_reached" }
func (e SwipeLimitReachedEvent) OccurredAt() time.Time { return e.ReachedAt }

// SessionCompletedEvent is raised when the deck is exhausted.
type SessionCompletedEvent struct {
	SessionID   uuid.UUID
	Favorited   int
	Cooked      int
	CompletedAt time.Time
}

func (e SessionCompletedEvent) EventName() string     { return "session.completed" }
func (e SessionCompletedEvent) OccurredAt() time.Time { return e.CompletedAt }
