package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
)

// WalletRepository implements the wallet ports over the in-memory store.
type WalletRepository struct {
	store *Store
}

// NewWalletRepository creates the in-memory wallet repository.
func NewWalletRepository(store *Store) *WalletRepository {
	return &WalletRepository{store: store}
}

func (r *WalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	wallet, ok := r.store.wallets[walletID]
	if !ok {
		return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
	}
	return &wallet, nil
}

func (r *WalletRepository) FindWalletByUserAndCurrency(ctx context.Context, userID, currencyCode string) (*domain.Wallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	walletID, ok := r.store.walletIDsByOwner[ownerKey(userID, currencyCode)]
	if !ok {
		return nil, fmt.Errorf("%w: no %s wallet for user %s", apperrors.ErrNotFound, currencyCode, userID)
	}
	wallet := r.store.wallets[walletID]
	return &wallet, nil
}

func (r *WalletRepository) ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	wallets := make([]domain.Wallet, 0)
	for _, wallet := range r.store.wallets {
		if wallet.UserID == userID {
			wallets = append(wallets, wallet)
		}
	}
	sort.Slice(wallets, func(i, j int) bool {
		return wallets[i].CurrencyCode < wallets[j].CurrencyCode
	})
	return wallets, nil
}

func (r *WalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := ownerKey(wallet.UserID, wallet.CurrencyCode)
	if _, ok := r.store.walletIDsByOwner[key]; ok {
		return fmt.Errorf("%w: wallet for %s/%s", apperrors.ErrDuplicate, wallet.UserID, wallet.CurrencyCode)
	}
	r.store.wallets[wallet.WalletID] = wallet
	r.store.walletIDsByOwner[key] = wallet.WalletID
	return nil
}

func (r *WalletRepository) SetWalletActive(ctx context.Context, walletID string, active bool, updatedBy string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	wallet, ok := r.store.wallets[walletID]
	if !ok {
		return fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
	}
	wallet.IsActive = active
	wallet.LastUpdatedAt = time.Now()
	wallet.LastUpdatedBy = updatedBy
	r.store.wallets[walletID] = wallet
	return nil
}
