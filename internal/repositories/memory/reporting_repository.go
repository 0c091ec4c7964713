package memory

import (
	"context"

	"github.com/shopspring/decimal"
)

// ReportingRepository implements the balance sheet aggregations over the
// in-memory store.
type ReportingRepository struct {
	store *Store
}

// NewReportingRepository creates the in-memory reporting repository.
func NewReportingRepository(store *Store) *ReportingRepository {
	return &ReportingRepository{store: store}
}

func (r *ReportingRepository) SumTreasuryBalances(ctx context.Context) (map[string]decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	sums := make(map[string]decimal.Decimal)
	for _, treasury := range r.store.treasuries {
		sums[treasury.CurrencyCode] = sums[treasury.CurrencyCode].Add(treasury.Balance)
	}
	return sums, nil
}

func (r *ReportingRepository) SumWalletBalances(ctx context.Context) (map[string]decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	sums := make(map[string]decimal.Decimal)
	for _, wallet := range r.store.wallets {
		sums[wallet.CurrencyCode] = sums[wallet.CurrencyCode].Add(wallet.Balance)
	}
	return sums, nil
}
