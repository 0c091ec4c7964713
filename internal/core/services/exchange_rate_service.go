package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/dto"
)

type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepository
}

// NewExchangeRateService creates the exchange rate management service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepository) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo}
}

func (s *exchangeRateService) UpsertRate(ctx context.Context, req dto.UpsertExchangeRateRequest, actorUserID string) (*domain.ExchangeRate, error) {
	if req.FromCurrencyCode == req.ToCurrencyCode {
		return nil, fmt.Errorf("%w: source and target currency are the same", apperrors.ErrValidation)
	}
	if !domain.IsSupportedCurrency(req.FromCurrencyCode) || !domain.IsSupportedCurrency(req.ToCurrencyCode) {
		return nil, fmt.Errorf("%w: unsupported currency pair %s/%s",
			apperrors.ErrValidation, req.FromCurrencyCode, req.ToCurrencyCode)
	}
	if !req.BuyRate.IsPositive() || !req.SellRate.IsPositive() {
		return nil, fmt.Errorf("%w: rates must be positive", apperrors.ErrValidation)
	}

	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   req.ToCurrencyCode,
		BuyRate:          req.BuyRate.Round(6),
		SellRate:         req.SellRate.Round(6),
		IsActive:         true,
		LastUpdatedAt:    time.Now(),
		LastUpdatedBy:    actorUserID,
	}
	if err := s.rateRepo.UpsertExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to upsert exchange rate",
			slog.String("from", req.FromCurrencyCode),
			slog.String("to", req.ToCurrencyCode))
		return nil, fmt.Errorf("upserting exchange rate: %w", err)
	}
	s.LogInfo(ctx, "Exchange rate updated",
		slog.String("from", rate.FromCurrencyCode),
		slog.String("to", rate.ToCurrencyCode),
		slog.String("buy_rate", rate.BuyRate.String()),
		slog.String("sell_rate", rate.SellRate.String()))
	return &rate, nil
}

func (s *exchangeRateService) GetActiveRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindActiveRate(ctx, fromCode, toCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s to %s", apperrors.ErrRateUnavailable, fromCode, toCode)
		}
		return nil, fmt.Errorf("finding exchange rate: %w", err)
	}
	return rate, nil
}

func (s *exchangeRateService) ListRates(ctx context.Context, activeOnly bool) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListRates(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("listing exchange rates: %w", err)
	}
	return rates, nil
}
