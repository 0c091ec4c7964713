package services

import (
	"context"

	"github.com/saifipay/saifi-backend/internal/core/domain"
	"github.com/saifipay/saifi-backend/internal/dto"
)

// TreasurySvcFacade manages company treasuries and capital injections.
type TreasurySvcFacade interface {
	// CreateTreasury creates a treasury; a non-zero initial balance is
	// recorded as an opening movement.
	CreateTreasury(ctx context.Context, req dto.CreateTreasuryRequest, actorUserID string) (*domain.Treasury, error)

	// ListTreasuries returns all treasuries.
	ListTreasuries(ctx context.Context) ([]domain.Treasury, error)

	// AddCapital credits a treasury and logs the capital source in the
	// company movement log. No user-facing ledger entry is created.
	AddCapital(ctx context.Context, req dto.AddCapitalRequest, actorUserID string) (*domain.Treasury, error)

	// ListMovements returns the company movement log for one treasury,
	// newest first.
	ListMovements(ctx context.Context, treasuryID string, limit int) ([]domain.TreasuryMovement, error)
}
