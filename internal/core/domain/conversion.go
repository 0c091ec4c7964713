package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionStatus is the state of a currency conversion operation.
type ConversionStatus string

const (
	ConversionPending   ConversionStatus = "PENDING"
	ConversionCompleted ConversionStatus = "COMPLETED"
	ConversionFailed    ConversionStatus = "FAILED"
)

// ConversionRecord summarizes one currency conversion as a single
// user-facing operation. The two ledger entries it causes (source debit,
// target credit) are stored separately; the record links to neither but is
// merged with entries into the account statement by creation time.
type ConversionRecord struct {
	ConversionID     string           `json:"conversionID"` // Primary key (UUID)
	UserID           string           `json:"userID"`
	FromCurrencyCode string           `json:"fromCurrencyCode"`
	ToCurrencyCode   string           `json:"toCurrencyCode"`
	AmountSent       decimal.Decimal  `json:"amountSent"`   // 2dp
	ExchangeRate     decimal.Decimal  `json:"exchangeRate"` // 6dp, buy rate applied
	AmountReceived   decimal.Decimal  `json:"amountReceived"`
	Status           ConversionStatus `json:"status"`
	ReferenceNumber  string           `json:"referenceNumber"` // EXC- prefix
	CreatedAt        time.Time        `json:"createdAt"`
}
