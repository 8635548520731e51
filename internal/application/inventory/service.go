// Package inventory provides the application service for the leftover
// inventory: parsing free-form descriptions, simulated capture results, and
// tag-based consumption, persisted through the leftover repository.
package inventory

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wellnoosh/engine/internal/domain/leftover"
	"github.com/wellnoosh/engine/internal/ports/inbound"
	"github.com/wellnoosh/engine/internal/ports/outbound"
	"github.com/wellnoosh/engine/pkg/errors"
)

// Service implements inbound.InventoryService.
type Service struct {
	mu      sync.Mutex
	repo    outbound.LeftoverRepository
	metrics outbound.EngineMetrics
	now     func() time.Time
	logger  *zap.Logger
}

// NewService creates the inventory service. A nil clock defaults to time.Now.
func NewService(
	repo outbound.LeftoverRepository,
	metrics outbound.EngineMetrics,
	now func() time.Time,
	logger *zap.Logger,
) inbound.InventoryService {
	if now == nil {
		now = time.Now
	}
	if metrics == nil {
		metrics = outbound.NopMetrics{}
	}
	return &Service{
		repo:    repo,
		metrics: metrics,
		now:     now,
		logger:  logger.Named("inventory-service"),
	}
}

// List returns the current inventory.
func (s *Service) List(ctx context.Context) ([]leftover.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.Load(ctx)
	if err != nil {
		return nil, errors.NewStoreError("load leftovers", err)
	}
	return items, nil
}

// AddFromText parses a free-form description into items and stores them.
// When parsing yields nothing (pure punctuation), the whole trimmed input
// becomes a single item rather than being discarded.
func (s *Service) AddFromText(ctx context.Context, text string) ([]leftover.Item, error) {
	names := leftover.ParseDescription(text)
	if len(names) == 0 {
		fallback := leftover.Canonicalize(text)
		if fallback == "" {
			return nil, errors.NewValidationError("leftover description is empty")
		}
		names = []string{fallback}
	}
	return s.AddItems(ctx, names)
}

// AddItems stores pre-parsed item names, e.g. simulated voice or scan
// capture results. Duplicates against existing entries are allowed.
func (s *Service) AddItems(ctx context.Context, names []string) ([]leftover.Item, error) {
	if len(names) == 0 {
		return nil, errors.NewValidationError("no leftover items given")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.loadInventory(ctx)
	if err != nil {
		return nil, err
	}
	added := inv.Add(names, s.now())
	if err := s.repo.Save(ctx, inv.Items()); err != nil {
		return nil, errors.NewStoreError("save leftovers", err)
	}

	s.logger.Info("leftovers added", zap.Int("count", len(added)))
	return added, nil
}

// Remove deletes a single entry by id.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.loadInventory(ctx)
	if err != nil {
		return err
	}
	if !inv.Remove(id) {
		return errors.NewNotFoundError("leftover")
	}
	if err := s.repo.Save(ctx, inv.Items()); err != nil {
		return errors.NewStoreError("save leftovers", err)
	}
	return nil
}

// Consume retires every entry matched by the given recipe leftover tags and
// returns the removed items.
func (s *Service) Consume(ctx context.Context, tags []string) ([]leftover.Item, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.loadInventory(ctx)
	if err != nil {
		return nil, err
	}
	consumed := inv.Consume(tags)
	if len(consumed) == 0 {
		return nil, nil
	}
	if err := s.repo.Save(ctx, inv.Items()); err != nil {
		return nil, errors.NewStoreError("save leftovers", err)
	}

	s.metrics.LeftoversConsumed(len(consumed))
	s.logger.Info("leftovers consumed",
		zap.Int("count", len(consumed)),
		zap.Strings("tags", tags),
	)
	return consumed, nil
}

func (s *Service) loadInventory(ctx context.Context) (*leftover.Inventory, error) {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return nil, errors.NewStoreError("load leftovers", err)
	}
	return leftover.NewInventory(items), nil
}
