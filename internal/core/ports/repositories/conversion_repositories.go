package repositories

import (
	"context"

	"github.com/saifipay/saifi-backend/internal/core/domain"
)

// ConversionRepository persists currency conversion records. The store is
// append-only; concurrent writers need no cross-writer locking beyond the
// reference uniqueness constraint.
type ConversionRepository interface {
	// SaveConversion appends one conversion record.
	SaveConversion(ctx context.Context, record domain.ConversionRecord) error

	// ListConversionsByUser returns the user's conversions filtered and
	// windowed like a statement query, newest first.
	ListConversionsByUser(ctx context.Context, userID string, filter EntryFilter) ([]domain.ConversionRecord, error)
}
