// Package inbound defines the use-case interfaces the engine exposes to its
// drivers (the HTTP adapter, tests) and the view types they exchange.
package inbound

import (
	"context"

	"github.com/wellnoosh/engine/internal/domain/grocery"
	"github.com/wellnoosh/engine/internal/domain/leftover"
	"github.com/wellnoosh/engine/internal/domain/recipe"
	"github.com/wellnoosh/engine/internal/domain/session"
)

// RecipeCard is the display projection of the current recipe: ingredient
// amounts and nutrition already scaled to the serving override, checklist
// marks merged in.
type RecipeCard struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Image         string           `json:"image,omitempty"`
	CookTime      string           `json:"cookTime,omitempty"`
	Difficulty    string           `json:"difficulty,omitempty"`
	Rating        float64          `json:"rating,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
	Description   string           `json:"description,omitempty"`
	BaseServings  int              `json:"baseServings"`
	Servings      int              `json:"servings"`
	Ingredients   []IngredientLine `json:"ingredients"`
	Instructions  []string         `json:"instructions,omitempty"`
	Nutrition     recipe.Nutrition `json:"nutrition"`
	UsesLeftovers []string         `json:"usesLeftovers,omitempty"`
}

// IngredientLine is one checklist row on the back of the card.
type IngredientLine struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	HasIt    *bool  `json:"hasIt,omitempty"`
}

// SessionView is the caller-facing snapshot of the recommendation pass.
type SessionView struct {
	Status          session.Status  `json:"status"`
	Index           int             `json:"index"`
	DeckSize        int             `json:"deckSize"`
	RemainingSwipes int             `json:"remainingSwipes"`
	Recipe          *RecipeCard     `json:"recipe,omitempty"`
	Results         session.Results `json:"results"`
}

// CookResult reports what cooking the flipped recipe changed.
type CookResult struct {
	Session           *SessionView    `json:"session"`
	ConsumedLeftovers []leftover.Item `json:"consumedLeftovers"`
}

// SessionService drives one recommendation pass at a time. A new Start
// discards the previous pass.
type SessionService interface {
	Start(ctx context.Context) (*SessionView, error)
	View(ctx context.Context) (*SessionView, error)
	SwipeRight(ctx context.Context) (*SessionView, error)
	SwipeLeft(ctx context.Context) (*SessionView, error)
	Skip(ctx context.Context) (*SessionView, error)
	Favorite(ctx context.Context) (*SessionView, error)
	Cook(ctx context.Context) (*CookResult, error)
	Share(ctx context.Context) (*SessionView, error)
	ContinueBrowsing(ctx context.Context) (*SessionView, error)
	SetServings(ctx context.Context, servings int) (*SessionView, error)
	ToggleIngredient(ctx context.Context, ingredientIndex int, hasIt bool) (*SessionView, error)
}

// InventoryService manages the leftover inventory.
type InventoryService interface {
	List(ctx context.Context) ([]leftover.Item, error)
	AddFromText(ctx context.Context, text string) ([]leftover.Item, error)
	AddItems(ctx context.Context, names []string) ([]leftover.Item, error)
	Remove(ctx context.Context, id string) error
	Consume(ctx context.Context, tags []string) ([]leftover.Item, error)
}

// GroceryService manages the persisted shopping list.
type GroceryService interface {
	List(ctx context.Context) (grocery.List, error)
	Apply(ctx context.Context, m grocery.Mutation) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Remove(ctx context.Context, id string) error
}
