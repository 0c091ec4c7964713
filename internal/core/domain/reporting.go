package domain

import (
	"github.com/shopspring/decimal"
)

// SheetStatus labels a currency's net position on the balance sheet.
type SheetStatus string

const (
	StatusSurplus SheetStatus = "Surplus"
	StatusDeficit SheetStatus = "Deficit"
)

// BalanceSheetRow reconciles company assets against user liabilities for one
// currency: assets are the sum of treasury balances, liabilities the sum of
// user wallet balances.
type BalanceSheetRow struct {
	CurrencyCode string          `json:"currency"`
	Assets       decimal.Decimal `json:"assets"`
	Liabilities  decimal.Decimal `json:"liabilities"`
	NetPosition  decimal.Decimal `json:"netPosition"`
	Status       SheetStatus     `json:"status"`
}

// BalanceSheet is the full reconciliation report, one row per supported
// currency. It is an unlocked snapshot: rows may be read at slightly
// different instants during concurrent transfer activity.
type BalanceSheet struct {
	Rows       []BalanceSheetRow `json:"report"`
	Treasuries []Treasury        `json:"treasuries"`
}
