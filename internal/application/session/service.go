// Package session provides the application service driving a recommendation
// pass: it gates swipes with the daily quota, projects recipe cards scaled to
// the serving override, and fans cook/toggle actions out to the leftover
// inventory and the grocery list.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wellnoosh/engine/internal/domain/grocery"
	"github.com/wellnoosh/engine/internal/domain/quota"
	"github.com/wellnoosh/engine/internal/domain/recipe"
	"github.com/wellnoosh/engine/internal/domain/session"
	"github.com/wellnoosh/engine/internal/ports/inbound"
	"github.com/wellnoosh/engine/internal/ports/outbound"
	"github.com/wellnoosh/engine/pkg/errors"
)

// Service implements inbound.SessionService. One pass is active at a time;
// all operations run under a single mutex so the quota reset-and-increment
// never interleaves.
type Service struct {
	mu        sync.Mutex
	catalog   outbound.CatalogRepository
	userData  outbound.UserDataRepository
	inventory inbound.InventoryService
	grocery   inbound.GroceryService
	share     outbound.SharePublisher
	metrics   outbound.EngineMetrics
	quota     *quota.Manager
	now       func() time.Time
	logger    *zap.Logger

	current *session.Session
}

// NewService creates the session service. A nil clock defaults to time.Now;
// nil share and metrics default to no-ops.
func NewService(
	catalog outbound.CatalogRepository,
	userData outbound.UserDataRepository,
	inventoryService inbound.InventoryService,
	groceryService inbound.GroceryService,
	share outbound.SharePublisher,
	metrics outbound.EngineMetrics,
	now func() time.Time,
	logger *zap.Logger,
) inbound.SessionService {
	if now == nil {
		now = time.Now
	}
	if metrics == nil {
		metrics = outbound.NopMetrics{}
	}
	return &Service{
		catalog:   catalog,
		userData:  userData,
		inventory: inventoryService,
		grocery:   groceryService,
		share:     share,
		metrics:   metrics,
		quota:     quota.NewManager(now),
		now:       now,
		logger:    logger.Named("session-service"),
	}
}

// Start begins a new pass over the catalog deck, discarding any previous one.
func (s *Service) Start(ctx context.Context) (*inbound.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck, err := s.catalog.All(ctx)
	if err != nil {
		return nil, errors.NewStoreError("load catalog", err)
	}

	s.current = session.NewSession(deck, s.now())
	s.drainEvents()
	s.logger.Info("session started",
		zap.String("session_id", s.current.ID().String()),
		zap.Int("deck_size", len(deck)),
	)
	return s.view(ctx)
}

// View returns the current snapshot. A quota-blocked session resumes
// browsing automatically once the day has rolled over.
func (s *Service) View(ctx context.Context) (*inbound.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSession(); err != nil {
		return nil, err
	}
	s.unblockIfQuotaRecovered(ctx)
	return s.view(ctx)
}

// SwipeRight consumes a swipe and flips the current card. When the daily cap
// is hit the session moves to the quota-exceeded state instead; that is a
// session outcome, not an error.
func (s *Service) SwipeRight(ctx context.Context) (*inbound.SessionView, error) {
	return s.swipe(ctx, "right", func() error { return s.current.SwipeRight() })
}

// SwipeLeft consumes a swipe and advances immediately without flipping.
func (s *Service) SwipeLeft(ctx context.Context) (*inbound.SessionView, error) {
	return s.swipe(ctx, "left", func() error { return s.current.SwipeLeft() })
}

// Skip advances without consuming quota.
func (s *Service) Skip(ctx context.Context) (*inbound.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if err := s.current.Skip(); err != nil {
		return nil, errors.NewInvalidActionError(err.Error())
	}
	s.afterAdvance(ctx)
	return s.view(ctx)
}

// Favorite adds the flipped recipe to the favorites set. Idempotent.
func (s *Service) Favorite(ctx context.Context) (*inbound.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if err := s.current.Favorite(); err != nil {
		return nil, errors.NewInvalidActionError(err.Error())
	}
	s.drainEvents()
	return s.view(ctx)
}

// Cook confirms cooking the flipped recipe: tagged leftovers are retired
// from the inventory and the cursor advances.
func (s *Service) Cook(ctx context.Context) (*inbound.CookResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSession(); err != nil {
		return nil, err
	}
	cooked, err := s.current.Cook()
	if err != nil {
		return nil, errors.NewInvalidActionError(err.Error())
	}

	consumed, err := s.inventory.Consume(ctx, cooked.UsesLeftovers)
	if err != nil {
		// The cook already happened; a failed inventory write must not
		// unwind it. Log and carry on with nothing consumed.
		s.logger.Error("leftover consumption failed", zap.Error(err))
		consumed = nil
	}

	s.metrics.RecipeCooked()
	s.afterAdvance(ctx)
	s.logger.Info("recipe cooked",
		zap.String("recipe_id", cooked.ID),
		zap.Int("leftovers_consumed", len(consumed)),
	)

	view, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return &inbound.CookResult{Session: view, ConsumedLeftovers: consumed}, nil
}

// Share hands the flipped recipe to the external publisher. Delivery is
// best-effort and never changes session state.
func (s *Service) Share(ctx context.Context) (*inbound.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSession(); err != nil {
		return nil, err
	}
	shared, err := s.current.Share()
	if err != nil {
		return nil, errors.NewInvalidActionError(err.Error())
	}
	if s.share != nil {
		if err := s.share.PublishRecipeShare(ctx, shared); err != nil {
			s.logger.Warn("recipe share delivery failed",
				zap.String("recipe_id", shared.ID),
				zap.Error(err),
			)
		}
	}
	return s.view(ctx)
}

// ContinueBrowsing advances past the flipped card without side effects.
func (s *Service) ContinueBrowsing(ctx context.Context) (*inbound.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if err := s.current.ContinueBrowsing(); err != nil {
		return nil, errors.NewInvalidActionError(err.Error())
	}
	s.afterAdvance(ctx)
	return s.view(ctx)
}

// SetServings overrides the serving count for the current recipe. Values
// outside the allowed range are ignored, matching the stepper UX.
func (s *Service) SetServings(ctx context.Context, servings int) (*inbound.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSession(); err != nil {
		return nil, err
	}
	s.current.SetServings(servings)
	return s.view(ctx)
}

// ToggleIngredient records a has-it / needs-it mark and reconciles the
// grocery list: needs-it upserts a scaled item, has-it retracts it.
func (s *Service) ToggleIngredient(ctx context.Context, ingredientIndex int, hasIt bool) (*inbound.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if err := s.current.ToggleIngredient(ingredientIndex, hasIt); err != nil {
		return nil, errors.NewInvalidActionError(err.Error())
	}

	current, _ := s.current.Current()
	mutation, err := grocery.ToggleChecklist(current, ingredientIndex, hasIt, s.current.ServingsFor(current), s.now())
	if err != nil {
		return nil, errors.NewInvalidActionError(err.Error())
	}
	if err := s.grocery.Apply(ctx, mutation); err != nil {
		return nil, err
	}
	return s.view(ctx)
}

// swipe runs the shared quota gate around a swipe transition.
func (s *Service) swipe(ctx context.Context, direction string, transition func() error) (*inbound.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSession(); err != nil {
		return nil, err
	}
	s.unblockIfQuotaRecovered(ctx)

	data, err := s.userData.Load(ctx)
	if err != nil {
		return nil, errors.NewStoreError("load user data", err)
	}

	if !s.quota.CanSwipe(data.Quota) {
		s.current.ExhaustQuota()
		s.drainEvents()
		s.metrics.QuotaRejected(data.Quota.Tier)
		s.logger.Info("swipe rejected by daily quota",
			zap.String("tier", string(data.Quota.Tier)),
		)
		return s.view(ctx)
	}

	// The transition must be accepted before any quota is spent: a swipe
	// rejected here (card already flipped, pass completed) costs nothing.
	if err := transition(); err != nil {
		return nil, errors.NewInvalidActionError(err.Error())
	}

	err = s.userData.Update(ctx, func(d *outbound.UserData) error {
		updated, err := s.quota.RecordSwipe(d.Quota)
		if err != nil {
			return err
		}
		d.Quota = updated
		return nil
	})
	if err != nil {
		// Quota persistence is fire-and-forget; the swipe still happens.
		s.logger.Warn("quota persistence failed", zap.Error(err))
	}
	s.metrics.SwipeRecorded(direction, data.Quota.Tier)
	s.afterAdvance(ctx)
	return s.view(ctx)
}

// unblockIfQuotaRecovered resumes a quota-blocked session when the day has
// rolled over (or the user upgraded) since the block.
func (s *Service) unblockIfQuotaRecovered(ctx context.Context) {
	if s.current == nil || s.current.Status() != session.StatusQuotaExceeded {
		return
	}
	data, err := s.userData.Load(ctx)
	if err != nil {
		return
	}
	if s.quota.CanSwipe(data.Quota) {
		if err := s.current.ResumeBrowsing(); err == nil {
			s.logger.Info("session unblocked, quota available again")
		}
	}
}

// afterAdvance persists aggregate results once the deck is exhausted and
// drains pending domain events.
func (s *Service) afterAdvance(ctx context.Context) {
	s.drainEvents()
	if s.current.Status() != session.StatusCompleted {
		return
	}

	results := s.current.Results()
	err := s.userData.Update(ctx, func(data *outbound.UserData) error {
		data.FavoriteRecipes = results.Favorited
		data.SelectedRecipes = results.Cooked
		return nil
	})
	if err != nil {
		s.logger.Warn("persisting session results failed", zap.Error(err))
		return
	}
	s.logger.Info("session completed",
		zap.Int("favorited", len(results.Favorited)),
		zap.Int("cooked", len(results.Cooked)),
	)
}

func (s *Service) drainEvents() {
	for _, event := range s.current.Events() {
		s.logger.Debug("domain event", zap.String("event", event.EventName()))
	}
}

func (s *Service) requireSession() error {
	if s.current == nil {
		return errors.NewSessionInactiveError()
	}
	return nil
}

// view builds the caller-facing snapshot under the service mutex.
func (s *Service) view(ctx context.Context) (*inbound.SessionView, error) {
	data, err := s.userData.Load(ctx)
	if err != nil {
		return nil, errors.NewStoreError("load user data", err)
	}

	view := &inbound.SessionView{
		Status:          s.current.Status(),
		Index:           s.current.Index(),
		DeckSize:        s.current.DeckSize(),
		RemainingSwipes: s.quota.RemainingToday(data.Quota),
		Results:         s.current.Results(),
	}
	if current, ok := s.current.Current(); ok {
		view.Recipe = s.buildCard(current)
	}
	return view, nil
}

// buildCard projects a recipe onto the display card, scaling amounts and
// nutrition to the serving override and merging checklist marks.
func (s *Service) buildCard(r recipe.Recipe) *inbound.RecipeCard {
	servings := s.current.ServingsFor(r)
	marks := s.current.Checklist(r.ID)

	lines := make([]inbound.IngredientLine, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		line := inbound.IngredientLine{
			Index:    i,
			Name:     ing.Name,
			Amount:   recipe.ScaleAmount(ing.Amount, r.Servings, servings),
			Category: ing.Category,
		}
		if hasIt, marked := marks[i]; marked {
			v := hasIt
			line.HasIt = &v
		}
		lines[i] = line
	}

	return &inbound.RecipeCard{
		ID:            r.ID,
		Name:          r.Name,
		Image:         r.Image,
		CookTime:      r.CookTime,
		Difficulty:    r.Difficulty,
		Rating:        r.Rating,
		Tags:          r.Tags,
		Description:   r.Description,
		BaseServings:  r.Servings,
		Servings:      servings,
		Ingredients:   lines,
		Instructions:  r.Instructions,
		Nutrition:     recipe.ScaleNutrition(r.Nutrition, r.Servings, servings),
		UsesLeftovers: r.UsesLeftovers,
	}
}
