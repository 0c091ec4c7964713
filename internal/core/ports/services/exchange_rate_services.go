package services

import (
	"context"

	"github.com/saifipay/saifi-backend/internal/core/domain"
	"github.com/saifipay/saifi-backend/internal/dto"
)

// ExchangeRateSvcFacade manages exchange rates. Upserts are the
// administrative rate-update interface; the conversion engine only reads.
type ExchangeRateSvcFacade interface {
	// UpsertRate creates or replaces the rate row for an ordered pair and
	// marks it active.
	UpsertRate(ctx context.Context, req dto.UpsertExchangeRateRequest, actorUserID string) (*domain.ExchangeRate, error)

	// GetActiveRate returns the active rate for the ordered pair, or
	// apperrors.ErrRateUnavailable when none is active.
	GetActiveRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)

	// ListRates lists rate rows, optionally restricted to active ones.
	ListRates(ctx context.Context, activeOnly bool) ([]domain.ExchangeRate, error)
}
