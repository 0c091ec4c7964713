package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate holds the conversion rates for one ordered currency pair.
// At most one active row exists per (from, to) pair; rows are written only by
// the administrative rate-update operation and read by the conversion engine.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"` // Primary key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	BuyRate          decimal.Decimal `json:"buyRate"`  // 6dp; applied to conversions
	SellRate         decimal.Decimal `json:"sellRate"` // 6dp
	IsActive         bool            `json:"isActive"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy    string          `json:"lastUpdatedBy"`
}
