package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TreasuryType distinguishes cash boxes from bank accounts.
type TreasuryType string

const (
	TreasuryCash TreasuryType = "CASH"
	TreasuryBank TreasuryType = "BANK"
)

// Treasury is a company-owned balance in a single currency. It participates
// in the same locked transfer primitive as user wallets (deposits debit a
// treasury) but is never a P2P counterparty.
type Treasury struct {
	TreasuryID   string          `json:"treasuryID"` // Primary key (UUID)
	Name         string          `json:"name"`
	Type         TreasuryType    `json:"type"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"` // 2dp, never negative
	AuditFields
}

// TreasuryMovement is one signed entry in the company movement log. It is the
// treasury-side record of a transfer leg (or a capital injection) and is not
// user-facing.
type TreasuryMovement struct {
	MovementID  string          `json:"movementID"` // Primary key (UUID)
	TreasuryID  string          `json:"treasuryID"`
	Amount      decimal.Decimal `json:"amount"` // signed: credit > 0, debit < 0
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}
