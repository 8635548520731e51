// Package grocery provides the application service that applies
// reconciliation mutations to the persisted shopping list and handles the
// user-facing complete/remove operations.
package grocery

import (
	"context"

	"go.uber.org/zap"

	"github.com/wellnoosh/engine/internal/domain/grocery"
	"github.com/wellnoosh/engine/internal/ports/inbound"
	"github.com/wellnoosh/engine/internal/ports/outbound"
	"github.com/wellnoosh/engine/pkg/errors"
)

// Service implements inbound.GroceryService against the user-data blob. All
// writes go through the repository's Update so they cannot interleave with
// the quota fields sharing the same record.
type Service struct {
	repo    outbound.UserDataRepository
	metrics outbound.EngineMetrics
	logger  *zap.Logger
}

// NewService creates the grocery service.
func NewService(
	repo outbound.UserDataRepository,
	metrics outbound.EngineMetrics,
	logger *zap.Logger,
) inbound.GroceryService {
	if metrics == nil {
		metrics = outbound.NopMetrics{}
	}
	return &Service{
		repo:    repo,
		metrics: metrics,
		logger:  logger.Named("grocery-service"),
	}
}

// List returns the persisted shopping list.
func (s *Service) List(ctx context.Context) (grocery.List, error) {
	data, err := s.repo.Load(ctx)
	if err != nil {
		return nil, errors.NewStoreError("load grocery list", err)
	}
	return data.GroceryList, nil
}

// Apply applies a reconciliation mutation. Uniqueness on (name, fromRecipe)
// is enforced here: upserts replace, removes drop every match.
func (s *Service) Apply(ctx context.Context, m grocery.Mutation) error {
	err := s.repo.Update(ctx, func(data *outbound.UserData) error {
		data.GroceryList = data.GroceryList.Apply(m)
		return nil
	})
	if err != nil {
		return errors.NewStoreError("apply grocery mutation", err)
	}

	s.metrics.GroceryMutationApplied(string(m.Kind))
	s.logger.Debug("grocery mutation applied", zap.String("kind", string(m.Kind)))
	return nil
}

// SetCompleted checks an entry off (or back on).
func (s *Service) SetCompleted(ctx context.Context, id string, completed bool) error {
	return s.mutateItem(ctx, "set grocery item completion", func(list grocery.List) (grocery.List, bool) {
		return list.SetCompleted(id, completed)
	})
}

// Remove deletes an entry by id.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.mutateItem(ctx, "remove grocery item", func(list grocery.List) (grocery.List, bool) {
		return list.Remove(id)
	})
}

// mutateItem runs a by-id list edit inside the repository's critical section.
// A not-found result aborts the write.
func (s *Service) mutateItem(ctx context.Context, op string, edit func(grocery.List) (grocery.List, bool)) error {
	notFound := errors.NewNotFoundError("grocery item")
	err := s.repo.Update(ctx, func(data *outbound.UserData) error {
		updated, found := edit(data.GroceryList)
		if !found {
			return notFound
		}
		data.GroceryList = updated
		return nil
	})
	if err == notFound {
		return notFound
	}
	if err != nil {
		return errors.NewStoreError(op, err)
	}
	return nil
}
