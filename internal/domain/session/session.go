// Package session contains the state machine driving one pass through a
// recipe deck: Browsing, Flipped, QuotaExceeded, Completed, and the per-card
// checklist and serving-override bookkeeping that goes with it.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/wellnoosh/engine/internal/domain/recipe"
	"github.com/wellnoosh/engine/internal/domain/shared"
)

// Status is the session's current state.
type Status string

const (
	// StatusBrowsing shows the front of the current card.
	StatusBrowsing Status = "browsing"
	// StatusFlipped shows the back of the card with action buttons.
	StatusFlipped Status = "flipped"
	// StatusQuotaExceeded blocks swiping until upgrade or the next day.
	StatusQuotaExceeded Status = "quota_exceeded"
	// StatusCompleted means the deck is exhausted.
	StatusCompleted Status = "completed"
)

// Serving-override bounds. Requests outside the range are silent no-ops.
const (
	MinServings = 1
	MaxServings = 20
)

// Results are the aggregate outcomes surfaced when a session completes.
type Results struct {
	Favorited []string `json:"favoriteRecipes"`
	Cooked    []string `json:"selectedRecipes"`
}

// Session is the aggregate for one recommendation pass. It owns the deck
// cursor, the flip state, per-recipe checklists and serving overrides, and
// the favorited/cooked result sets.
type Session struct {
	shared.AggregateRoot

	id          uuid.UUID
	deck        []recipe.Recipe
	index       int
	status      Status
	favorites   []string
	favoriteSet map[string]struct{}
	cooked      []string
	checklist   map[string]map[int]bool
	servings    map[string]int
	startedAt   time.Time
}

// NewSession starts a pass over the given deck. An empty deck completes
// immediately.
func NewSession(deck []recipe.Recipe, now time.Time) *Session {
	s := &Session{
		id:          uuid.New(),
		deck:        deck,
		status:      StatusBrowsing,
		favoriteSet: make(map[string]struct{}),
		checklist:   make(map[string]map[int]bool),
		servings:    make(map[string]int),
		startedAt:   now,
	}
	if len(deck) == 0 {
		s.status = StatusCompleted
	}
	s.AddEvent(SessionStartedEvent{SessionID: s.id, DeckSize: len(deck), StartedAt: now})
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Status returns the current state.
func (s *Session) Status() Status { return s.status }

// Index returns the deck cursor.
func (s *Session) Index() int { return s.index }

// DeckSize returns the number of recipes in the deck.
func (s *Session) DeckSize() int { return len(s.deck) }

// Current returns the recipe under the cursor, reporting false once the deck
// is exhausted.
func (s *Session) Current() (recipe.Recipe, bool) {
	if s.index >= len(s.deck) {
		return recipe.Recipe{}, false
	}
	return s.deck[s.index], true
}

// Results returns the favorited and cooked recipe IDs collected so far.
func (s *Session) Results() Results {
	return Results{
		Favorited: append([]string(nil), s.favorites...),
		Cooked:    append([]string(nil), s.cooked...),
	}
}

// SwipeRight flips the current card to its action face. The cursor does not
// advance; the user chooses an action from the back of the card. Quota must
// already have been checked and recorded by the caller.
func (s *Session) SwipeRight() error {
	if s.status != StatusBrowsing {
		return ErrNotBrowsing
	}
	s.status = StatusFlipped
	return nil
}

// SwipeLeft passes on the current card and advances immediately, no flip.
func (s *Session) SwipeLeft() error {
	if s.status != StatusBrowsing {
		return ErrNotBrowsing
	}
	s.advance()
	return nil
}

// Skip advances without consuming quota. The quota-free escape hatch.
func (s *Session) Skip() error {
	if s.status != StatusBrowsing {
		return ErrNotBrowsing
	}
	s.advance()
	return nil
}

// ExhaustQuota moves the session into the blocked state instead of advancing.
func (s *Session) ExhaustQuota() {
	if s.status == StatusBrowsing {
		s.status = StatusQuotaExceeded
		s.AddEvent(SwipeLimitReachedEvent{SessionID: s.id, ReachedAt: time.Now()})
	}
}

// ResumeBrowsing unblocks a quota-exceeded session after an upgrade or a day
// rollover.
func (s *Session) ResumeBrowsing() error {
	if s.status != StatusQuotaExceeded {
		return ErrNotQuotaExceeded
	}
	s.status = StatusBrowsing
	return nil
}

// Favorite adds the flipped recipe to the favorites set. Idempotent; the
// cursor stays put.
func (s *Session) Favorite() error {
	current, err := s.flippedRecipe()
	if err != nil {
		return err
	}
	if _, exists := s.favoriteSet[current.ID]; exists {
		return nil
	}
	s.favoriteSet[current.ID] = struct{}{}
	s.favorites = append(s.favorites, current.ID)
	s.AddEvent(RecipeFavoritedEvent{SessionID: s.id, RecipeID: current.ID, FavoritedAt: time.Now()})
	return nil
}

// Cook marks the flipped recipe as chosen for cooking and advances. The
// returned recipe drives leftover consumption in the caller.
func (s *Session) Cook() (recipe.Recipe, error) {
	current, err := s.flippedRecipe()
	if err != nil {
		return recipe.Recipe{}, err
	}
	s.cooked = append(s.cooked, current.ID)
	s.AddEvent(RecipeCookedEvent{SessionID: s.id, RecipeID: current.ID, CookedAt: time.Now()})
	s.advance()
	return current, nil
}

// Share returns the flipped recipe for delegation to an external publisher.
// No state change.
func (s *Session) Share() (recipe.Recipe, error) {
	return s.flippedRecipe()
}

// ContinueBrowsing leaves the flipped card behind without side effects.
func (s *Session) ContinueBrowsing() error {
	if s.status != StatusFlipped {
		return ErrNotFlipped
	}
	s.advance()
	return nil
}

// ToggleIngredient records a has-it / needs-it mark for an ingredient of the
// flipped recipe, keyed by position within the recipe's ingredient list.
func (s *Session) ToggleIngredient(ingredientIndex int, hasIt bool) error {
	current, err := s.flippedRecipe()
	if err != nil {
		return err
	}
	if _, ok := current.Ingredient(ingredientIndex); !ok {
		return ErrIngredientIndexOutOfRange
	}
	marks, ok := s.checklist[current.ID]
	if !ok {
		marks = make(map[int]bool)
		s.checklist[current.ID] = marks
	}
	marks[ingredientIndex] = hasIt
	return nil
}

// Checklist returns the recorded marks for a recipe.
func (s *Session) Checklist(recipeID string) map[int]bool {
	marks := make(map[int]bool, len(s.checklist[recipeID]))
	for k, v := range s.checklist[recipeID] {
		marks[k] = v
	}
	return marks
}

// SetServings overrides the serving count for the current recipe. Values
// outside [MinServings, MaxServings] are ignored.
func (s *Session) SetServings(servings int) {
	current, ok := s.Current()
	if !ok {
		return
	}
	if servings < MinServings || servings > MaxServings {
		return
	}
	s.servings[current.ID] = servings
}

// ServingsFor returns the serving override for a recipe, falling back to the
// recipe's own serving count.
func (s *Session) ServingsFor(r recipe.Recipe) int {
	if override, ok := s.servings[r.ID]; ok {
		return override
	}
	return r.Servings
}

func (s *Session) flippedRecipe() (recipe.Recipe, error) {
	if s.status != StatusFlipped {
		return recipe.Recipe{}, ErrNotFlipped
	}
	current, ok := s.Current()
	if !ok {
		return recipe.Recipe{}, ErrDeckExhausted
	}
	return current, nil
}

func (s *Session) advance() {
	s.index++
	if s.index >= len(s.deck) {
		s.status = StatusCompleted
		s.AddEvent(SessionCompletedEvent{
			SessionID:   s.id,
			Favorited:   len(s.favorites),
			Cooked:      len(s.cooked),
			CompletedAt: time.Now(),
		})
		return
	}
	s.status = StatusBrowsing
}
