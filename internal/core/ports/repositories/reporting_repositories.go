package repositories

import (
	"context"

	"github.com/shopspring/decimal"
)

// ReportingRepository provides read-only aggregations for the balance sheet.
// Queries run without locks: the report is an eventually-consistent snapshot
// by design, acceptable for a reporting view but never for a mutation.
type ReportingRepository interface {
	// SumTreasuryBalances returns total treasury (company asset) balance per
	// currency code.
	SumTreasuryBalances(ctx context.Context) (map[string]decimal.Decimal, error)

	// SumWalletBalances returns total user wallet (company liability) balance
	// per currency code.
	SumWalletBalances(ctx context.Context) (map[string]decimal.Decimal, error)
}
