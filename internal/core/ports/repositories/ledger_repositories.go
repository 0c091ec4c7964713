package repositories

import (
	"context"
	"time"

	"github.com/saifipay/saifi-backend/internal/core/domain"
)

// EntryFilter narrows a ledger statement query. Zero values mean "no filter".
type EntryFilter struct {
	CurrencyCode string
	Kind         domain.EntryKind
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// LedgerWriter applies money movements.
type LedgerWriter interface {
	// ApplyTransfer atomically applies all legs of a transfer: wallet and
	// treasury locks are acquired in ascending identifier order, every
	// negative leg is checked against the locked balance, then all deltas are
	// applied and one LedgerEntry (wallet legs) or TreasuryMovement (treasury
	// legs) is appended per leg. If any negative leg would drive a balance
	// below zero the whole transfer aborts with apperrors.ErrInsufficientFunds
	// and nothing is written. A lock not acquired within the bounded wait
	// yields apperrors.ErrLockTimeout.
	ApplyTransfer(ctx context.Context, transfer domain.Transfer) ([]domain.LedgerEntry, error)
}

// LedgerReader defines read operations over recorded entries.
type LedgerReader interface {
	// ReferenceExists reports whether a reference number is already present in
	// the ledger's reference index (entries and conversions share the index).
	ReferenceExists(ctx context.Context, reference string) (bool, error)

	// ListEntriesByUser returns the user's entries ordered by creation time
	// descending. The filter's Limit/Offset bound the window; exchange legs
	// are excluded when filter.Kind is empty (the statement view represents
	// conversions through ConversionRecords instead).
	ListEntriesByUser(ctx context.Context, userID string, filter EntryFilter) ([]domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines ledger read and write interfaces.
type LedgerRepositoryFacade interface {
	LedgerWriter
	LedgerReader
}
