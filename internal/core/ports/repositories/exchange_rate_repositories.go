package repositories

import (
	"context"

	"github.com/saifipay/saifi-backend/internal/core/domain"
)

// ExchangeRateRepository persists exchange rates. Upsert semantics: one row
// per ordered currency pair, replaced in place by administrative updates.
type ExchangeRateRepository interface {
	// UpsertExchangeRate inserts or replaces the rate row for the pair.
	UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// FindActiveRate returns the active rate for the ordered pair, or
	// apperrors.ErrNotFound when no active row exists.
	FindActiveRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)

	// ListRates returns all rate rows; activeOnly restricts to active ones.
	ListRates(ctx context.Context, activeOnly bool) ([]domain.ExchangeRate, error)
}
