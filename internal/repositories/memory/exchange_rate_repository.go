package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
)

// ExchangeRateRepository implements the exchange rate port over the in-memory
// store.
type ExchangeRateRepository struct {
	store *Store
}

// NewExchangeRateRepository creates the in-memory exchange rate repository.
func NewExchangeRateRepository(store *Store) *ExchangeRateRepository {
	return &ExchangeRateRepository{store: store}
}

func (r *ExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.rates[rateKey(rate.FromCurrencyCode, rate.ToCurrencyCode)] = rate
	return nil
}

func (r *ExchangeRateRepository) FindActiveRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rate, ok := r.store.rates[rateKey(fromCode, toCode)]
	if !ok || !rate.IsActive {
		return nil, fmt.Errorf("%w: no active rate %s to %s", apperrors.ErrNotFound, fromCode, toCode)
	}
	return &rate, nil
}

func (r *ExchangeRateRepository) ListRates(ctx context.Context, activeOnly bool) ([]domain.ExchangeRate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rates := make([]domain.ExchangeRate, 0, len(r.store.rates))
	for _, rate := range r.store.rates {
		if activeOnly && !rate.IsActive {
			continue
		}
		rates = append(rates, rate)
	}
	sort.Slice(rates, func(i, j int) bool {
		if rates[i].FromCurrencyCode != rates[j].FromCurrencyCode {
			return rates[i].FromCurrencyCode < rates[j].FromCurrencyCode
		}
		return rates[i].ToCurrencyCode < rates[j].ToCurrencyCode
	})
	return rates, nil
}
