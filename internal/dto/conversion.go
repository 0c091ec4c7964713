package dto

import (
	"time"

	"github.com/saifipay/saifi-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest exchanges an amount between two of the caller's wallets.
type ConvertRequest struct {
	FromCurrencyCode string          `json:"fromCurrency" binding:"required,supported_currency"`
	ToCurrencyCode   string          `json:"toCurrency" binding:"required,supported_currency"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
}

// ConvertResponse reports a completed conversion and the two new balances.
type ConvertResponse struct {
	ReferenceNumber string          `json:"referenceNumber"`
	AmountReceived  decimal.Decimal `json:"amountReceived"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	NewBalanceFrom  decimal.Decimal `json:"newBalanceFrom"`
	NewBalanceTo    decimal.Decimal `json:"newBalanceTo"`
}

// ConversionResponse is one row of the conversion history.
type ConversionResponse struct {
	ConversionID     string          `json:"conversionID"`
	ReferenceNumber  string          `json:"referenceNumber"`
	FromCurrencyCode string          `json:"fromCurrency"`
	ToCurrencyCode   string          `json:"toCurrency"`
	AmountSent       decimal.Decimal `json:"amountSent"`
	AmountReceived   decimal.Decimal `json:"amountReceived"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToConversionResponse converts a domain.ConversionRecord to its DTO.
func ToConversionResponse(c *domain.ConversionRecord) ConversionResponse {
	return ConversionResponse{
		ConversionID:     c.ConversionID,
		ReferenceNumber:  c.ReferenceNumber,
		FromCurrencyCode: c.FromCurrencyCode,
		ToCurrencyCode:   c.ToCurrencyCode,
		AmountSent:       c.AmountSent,
		AmountReceived:   c.AmountReceived,
		ExchangeRate:     c.ExchangeRate,
		Status:           string(c.Status),
		CreatedAt:        c.CreatedAt,
	}
}

// ToConversionResponses converts a slice of records to DTOs.
func ToConversionResponses(records []domain.ConversionRecord) []ConversionResponse {
	responses := make([]ConversionResponse, len(records))
	for i := range records {
		responses[i] = ToConversionResponse(&records[i])
	}
	return responses
}
