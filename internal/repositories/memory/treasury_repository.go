package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
)

// TreasuryRepository implements the treasury ports over the in-memory store.
type TreasuryRepository struct {
	store *Store
}

// NewTreasuryRepository creates the in-memory treasury repository.
func NewTreasuryRepository(store *Store) *TreasuryRepository {
	return &TreasuryRepository{store: store}
}

func (r *TreasuryRepository) FindTreasuryByID(ctx context.Context, treasuryID string) (*domain.Treasury, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	treasury, ok := r.store.treasuries[treasuryID]
	if !ok {
		return nil, fmt.Errorf("%w: treasury %s", apperrors.ErrNotFound, treasuryID)
	}
	return &treasury, nil
}

func (r *TreasuryRepository) ListTreasuries(ctx context.Context) ([]domain.Treasury, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	treasuries := make([]domain.Treasury, 0, len(r.store.treasuries))
	for _, treasury := range r.store.treasuries {
		treasuries = append(treasuries, treasury)
	}
	sort.Slice(treasuries, func(i, j int) bool {
		return treasuries[i].Name < treasuries[j].Name
	})
	return treasuries, nil
}

func (r *TreasuryRepository) ListMovementsByTreasury(ctx context.Context, treasuryID string, limit int) ([]domain.TreasuryMovement, error) {
	r.store.mu.RLock()
	movements := make([]domain.TreasuryMovement, 0)
	for _, movement := range r.store.movements {
		if movement.TreasuryID == treasuryID {
			movements = append(movements, movement)
		}
	}
	r.store.mu.RUnlock()

	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].CreatedAt.After(movements[j].CreatedAt)
	})
	return window(movements, 0, limit), nil
}

func (r *TreasuryRepository) SaveTreasury(ctx context.Context, treasury domain.Treasury) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.treasuries[treasury.TreasuryID]; ok {
		return fmt.Errorf("%w: treasury %s", apperrors.ErrDuplicate, treasury.TreasuryID)
	}
	r.store.treasuries[treasury.TreasuryID] = treasury
	return nil
}
