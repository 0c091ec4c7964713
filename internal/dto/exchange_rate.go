package dto

import (
	"time"

	"github.com/saifipay/saifi-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertExchangeRateRequest creates or replaces the rate row for an ordered
// currency pair. Administrative use only.
type UpsertExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrency" binding:"required,supported_currency"`
	ToCurrencyCode   string          `json:"toCurrency" binding:"required,supported_currency"`
	BuyRate          decimal.Decimal `json:"buyRate" binding:"required"`
	SellRate         decimal.Decimal `json:"sellRate" binding:"required"`
}

// ExchangeRateResponse is the API shape of one exchange rate row.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrency"`
	ToCurrencyCode   string          `json:"toCurrency"`
	BuyRate          decimal.Decimal `json:"buyRate"`
	SellRate         decimal.Decimal `json:"sellRate"`
	IsActive         bool            `json:"isActive"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its DTO.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		BuyRate:          rate.BuyRate,
		SellRate:         rate.SellRate,
		IsActive:         rate.IsActive,
		LastUpdatedAt:    rate.LastUpdatedAt,
	}
}

// ToExchangeRateResponses converts a slice of rates to DTOs.
func ToExchangeRateResponses(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
