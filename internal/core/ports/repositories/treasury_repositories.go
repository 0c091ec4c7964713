package repositories

import (
	"context"

	"github.com/saifipay/saifi-backend/internal/core/domain"
)

// TreasuryReader defines read operations for company treasuries.
type TreasuryReader interface {
	// FindTreasuryByID retrieves a treasury by its unique identifier.
	FindTreasuryByID(ctx context.Context, treasuryID string) (*domain.Treasury, error)

	// ListTreasuries retrieves all treasuries.
	ListTreasuries(ctx context.Context) ([]domain.Treasury, error)

	// ListMovementsByTreasury returns the company movement log for one
	// treasury, newest first.
	ListMovementsByTreasury(ctx context.Context, treasuryID string, limit int) ([]domain.TreasuryMovement, error)
}

// TreasuryWriter defines write operations for company treasuries. As with
// wallets, balance mutation happens only through ApplyTransfer.
type TreasuryWriter interface {
	// SaveTreasury persists a new treasury row.
	SaveTreasury(ctx context.Context, treasury domain.Treasury) error
}

// TreasuryRepositoryFacade combines treasury repository interfaces.
type TreasuryRepositoryFacade interface {
	TreasuryReader
	TreasuryWriter
}
