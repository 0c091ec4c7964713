package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
)

var errLockWait = errors.New("account lock wait expired")

// LedgerRepository implements the ledger ports over the in-memory store.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates the in-memory ledger repository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

func accountLockKey(ref domain.AccountRef) string {
	// Treasuries sort before wallets; within a kind, ascending by ID. Every
	// writer uses this same total order, which rules out lock cycles.
	if ref.Kind == domain.AccountTreasury {
		return "T|" + ref.ID
	}
	return "W|" + ref.ID
}

// ApplyTransfer takes the per-account locks in a fixed total order, checks
// that no leg drives a balance negative, then applies all deltas and appends
// the resulting records. On any failure nothing is written.
func (r *LedgerRepository) ApplyTransfer(ctx context.Context, transfer domain.Transfer) ([]domain.LedgerEntry, error) {
	keys := make([]string, 0, len(transfer.Legs))
	seen := make(map[string]struct{}, len(transfer.Legs))
	for _, leg := range transfer.Legs {
		key := accountLockKey(leg.Account)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	held := make([]string, 0, len(keys))
	defer func() {
		for i := len(held) - 1; i >= 0; i-- {
			r.store.arena.release(held[i])
		}
	}()
	for _, key := range keys {
		if err := r.store.arena.acquire(ctx, key); err != nil {
			if errors.Is(err, errLockWait) {
				return nil, apperrors.ErrLockTimeout
			}
			return nil, err
		}
		held = append(held, key)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// References are unique across the whole ledger, including within one
	// transfer.
	pending := make(map[string]struct{}, len(transfer.Legs))
	for _, leg := range transfer.Legs {
		if leg.ReferenceNumber == "" {
			continue
		}
		if _, exists := r.store.references[leg.ReferenceNumber]; exists {
			return nil, fmt.Errorf("%w: reference %s", apperrors.ErrDuplicate, leg.ReferenceNumber)
		}
		if _, exists := pending[leg.ReferenceNumber]; exists {
			return nil, fmt.Errorf("%w: reference %s", apperrors.ErrDuplicate, leg.ReferenceNumber)
		}
		pending[leg.ReferenceNumber] = struct{}{}
	}

	// Precheck every leg against a running balance so no write happens on a
	// transfer that would only partially fit.
	running := make(map[string]decimal.Decimal, len(keys))
	for _, leg := range transfer.Legs {
		key := accountLockKey(leg.Account)
		balance, ok := running[key]
		if !ok {
			switch leg.Account.Kind {
			case domain.AccountWallet:
				wallet, exists := r.store.wallets[leg.Account.ID]
				if !exists {
					return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, leg.Account.ID)
				}
				balance = wallet.Balance
			case domain.AccountTreasury:
				treasury, exists := r.store.treasuries[leg.Account.ID]
				if !exists {
					return nil, fmt.Errorf("%w: treasury %s", apperrors.ErrNotFound, leg.Account.ID)
				}
				balance = treasury.Balance
			}
		}
		balance = balance.Add(leg.Delta)
		if balance.IsNegative() {
			return nil, apperrors.ErrInsufficientFunds
		}
		running[key] = balance
	}

	createdAt := transfer.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	entries := make([]domain.LedgerEntry, 0, len(transfer.Legs))
	for _, leg := range transfer.Legs {
		key := accountLockKey(leg.Account)
		switch leg.Account.Kind {
		case domain.AccountWallet:
			wallet := r.store.wallets[leg.Account.ID]
			wallet.Balance = running[key]
			wallet.LastUpdatedAt = createdAt
			wallet.LastUpdatedBy = transfer.CreatedBy
			r.store.wallets[leg.Account.ID] = wallet

			entry := domain.LedgerEntry{
				EntryID:            uuid.NewString(),
				UserID:             leg.UserID,
				Amount:             leg.Delta.Abs(),
				CurrencyCode:       wallet.CurrencyCode,
				Kind:               leg.Kind,
				Direction:          leg.Direction,
				Description:        leg.Description,
				Status:             domain.StatusSuccess,
				ReferenceNumber:    leg.ReferenceNumber,
				CounterpartyUserID: leg.CounterpartyUserID,
				CreatedAt:          createdAt,
			}
			r.store.entries = append(r.store.entries, entry)
			entries = append(entries, entry)
		case domain.AccountTreasury:
			treasury := r.store.treasuries[leg.Account.ID]
			treasury.Balance = running[key]
			treasury.LastUpdatedAt = createdAt
			treasury.LastUpdatedBy = transfer.CreatedBy
			r.store.treasuries[leg.Account.ID] = treasury

			r.store.movements = append(r.store.movements, domain.TreasuryMovement{
				MovementID:  uuid.NewString(),
				TreasuryID:  leg.Account.ID,
				Amount:      leg.Delta,
				Description: leg.Description,
				CreatedAt:   createdAt,
				CreatedBy:   transfer.CreatedBy,
			})
		}
		if leg.ReferenceNumber != "" {
			r.store.references[leg.ReferenceNumber] = struct{}{}
		}
	}
	return entries, nil
}

func (r *LedgerRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.references[reference]
	return ok, nil
}

func (r *LedgerRepository) ListEntriesByUser(ctx context.Context, userID string, filter portsrepo.EntryFilter) ([]domain.LedgerEntry, error) {
	r.store.mu.RLock()
	matched := make([]domain.LedgerEntry, 0)
	for _, entry := range r.store.entries {
		if entry.UserID != userID {
			continue
		}
		if filter.Kind == "" && entry.Kind == domain.KindExchange {
			continue
		}
		if filter.Kind != "" && entry.Kind != filter.Kind {
			continue
		}
		if filter.CurrencyCode != "" && entry.CurrencyCode != filter.CurrencyCode {
			continue
		}
		if filter.From != nil && entry.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && entry.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, entry)
	}
	r.store.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return window(matched, filter.Offset, filter.Limit), nil
}

// window slices offset/limit out of items, tolerating out-of-range values.
func window[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
