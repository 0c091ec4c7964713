package services

import (
	"context"

	"github.com/saifipay/saifi-backend/internal/core/domain"
)

// ReportingSvcFacade aggregates treasuries against wallets.
type ReportingSvcFacade interface {
	// BalanceSheet reports assets, liabilities and net position per supported
	// currency. Pure read, no locks.
	BalanceSheet(ctx context.Context) (*domain.BalanceSheet, error)
}
