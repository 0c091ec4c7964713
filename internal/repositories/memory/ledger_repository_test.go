package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
)

func seedWallet(store *Store, walletID, userID, currency string, balance int64) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.wallets[walletID] = domain.Wallet{
		WalletID:     walletID,
		UserID:       userID,
		CurrencyCode: currency,
		Balance:      decimal.NewFromInt(balance),
		IsActive:     true,
	}
	store.walletIDsByOwner[ownerKey(userID, currency)] = walletID
}

func seedTreasury(store *Store, treasuryID, currency string, balance int64) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.treasuries[treasuryID] = domain.Treasury{
		TreasuryID:   treasuryID,
		Name:         treasuryID,
		Type:         domain.TreasuryCash,
		CurrencyCode: currency,
		Balance:      decimal.NewFromInt(balance),
	}
}

func walletBalance(t *testing.T, store *Store, walletID string) decimal.Decimal {
	t.Helper()
	store.mu.RLock()
	defer store.mu.RUnlock()
	wallet, ok := store.wallets[walletID]
	require.True(t, ok)
	return wallet.Balance
}

func twoLegTransfer(fromWallet, toWallet, userA, userB, reference string, amount int64) domain.Transfer {
	value := decimal.NewFromInt(amount)
	return domain.Transfer{
		CreatedAt: time.Now(),
		CreatedBy: userA,
		Legs: []domain.Leg{
			{
				Account:         domain.AccountRef{Kind: domain.AccountWallet, ID: fromWallet},
				Delta:           value.Neg(),
				Kind:            domain.KindTransfer,
				Direction:       domain.DirectionOut,
				ReferenceNumber: reference + "-OUT",
				UserID:          userA,
			},
			{
				Account:         domain.AccountRef{Kind: domain.AccountWallet, ID: toWallet},
				Delta:           value,
				Kind:            domain.KindTransfer,
				Direction:       domain.DirectionIn,
				ReferenceNumber: reference + "-IN",
				UserID:          userB,
			},
		},
	}
}

func TestApplyTransfer_ConcurrentOpposingTransfers(t *testing.T) {
	store := NewStore()
	repo := NewLedgerRepository(store)
	seedWallet(store, "wallet-a", "user-a", domain.CurrencyYER, 1000)
	seedWallet(store, "wallet-b", "user-b", domain.CurrencyYER, 1000)

	const rounds = 100
	var wg sync.WaitGroup
	wg.Add(2 * rounds)
	for i := 0; i < rounds; i++ {
		go func(i int) {
			defer wg.Done()
			ref := fmt.Sprintf("TRX-AB-%06d", i)
			_, err := repo.ApplyTransfer(context.Background(), twoLegTransfer("wallet-a", "wallet-b", "user-a", "user-b", ref, 1))
			assert.NoError(t, err)
		}(i)
		go func(i int) {
			defer wg.Done()
			ref := fmt.Sprintf("TRX-BA-%06d", i)
			_, err := repo.ApplyTransfer(context.Background(), twoLegTransfer("wallet-b", "wallet-a", "user-b", "user-a", ref, 1))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Equal flows in both directions must cancel out exactly, and the total
	// must be conserved.
	a := walletBalance(t, store, "wallet-a")
	b := walletBalance(t, store, "wallet-b")
	assert.True(t, a.Equal(decimal.NewFromInt(1000)), "wallet-a balance: %s", a)
	assert.True(t, b.Equal(decimal.NewFromInt(1000)), "wallet-b balance: %s", b)
}

func TestApplyTransfer_NeverOverdrawsUnderContention(t *testing.T) {
	store := NewStore()
	repo := NewLedgerRepository(store)
	seedWallet(store, "wallet-a", "user-a", domain.CurrencyYER, 100)
	seedWallet(store, "wallet-b", "user-b", domain.CurrencyYER, 0)

	const attempts = 50
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			ref := fmt.Sprintf("TRX-OD-%06d", i)
			_, err := repo.ApplyTransfer(context.Background(), twoLegTransfer("wallet-a", "wallet-b", "user-a", "user-b", ref, 10))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 10, succeeded)
	assert.Equal(t, attempts-10, rejected)
	assert.True(t, walletBalance(t, store, "wallet-a").IsZero())
	assert.True(t, walletBalance(t, store, "wallet-b").Equal(decimal.NewFromInt(100)))
}

func TestApplyTransfer_AllOrNothing(t *testing.T) {
	store := NewStore()
	repo := NewLedgerRepository(store)
	seedTreasury(store, "treasury-1", domain.CurrencyYER, 50)
	seedWallet(store, "wallet-a", "user-a", domain.CurrencyYER, 1000)

	// The treasury leg overdraws, so the wallet leg must not land either.
	transfer := domain.Transfer{
		CreatedAt: time.Now(),
		Legs: []domain.Leg{
			{
				Account:         domain.AccountRef{Kind: domain.AccountWallet, ID: "wallet-a"},
				Delta:           decimal.NewFromInt(200),
				Kind:            domain.KindDeposit,
				Direction:       domain.DirectionIn,
				ReferenceNumber: "TRX-AON-000001",
				UserID:          "user-a",
			},
			{
				Account:   domain.AccountRef{Kind: domain.AccountTreasury, ID: "treasury-1"},
				Delta:     decimal.NewFromInt(-200),
				Kind:      domain.KindDeposit,
				Direction: domain.DirectionOut,
			},
		},
	}

	_, err := repo.ApplyTransfer(context.Background(), transfer)
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	assert.True(t, walletBalance(t, store, "wallet-a").Equal(decimal.NewFromInt(1000)))
	store.mu.RLock()
	defer store.mu.RUnlock()
	assert.True(t, store.treasuries["treasury-1"].Balance.Equal(decimal.NewFromInt(50)))
	assert.Empty(t, store.entries)
	assert.Empty(t, store.movements)
	assert.Empty(t, store.references)
}

func TestApplyTransfer_MissingAccount(t *testing.T) {
	store := NewStore()
	repo := NewLedgerRepository(store)
	seedWallet(store, "wallet-a", "user-a", domain.CurrencyYER, 100)

	_, err := repo.ApplyTransfer(context.Background(), twoLegTransfer("wallet-a", "wallet-missing", "user-a", "user-b", "TRX-MISS-000001", 10))
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.True(t, walletBalance(t, store, "wallet-a").Equal(decimal.NewFromInt(100)))
}

func TestApplyTransfer_LockTimeout(t *testing.T) {
	store := NewStoreWithLockWait(50 * time.Millisecond)
	repo := NewLedgerRepository(store)
	seedWallet(store, "wallet-a", "user-a", domain.CurrencyYER, 100)
	seedWallet(store, "wallet-b", "user-b", domain.CurrencyYER, 100)

	// Hold wallet-b's lock so the transfer cannot complete its acquisition.
	require.NoError(t, store.arena.acquire(context.Background(), accountLockKey(domain.AccountRef{Kind: domain.AccountWallet, ID: "wallet-b"})))
	defer store.arena.release(accountLockKey(domain.AccountRef{Kind: domain.AccountWallet, ID: "wallet-b"}))

	_, err := repo.ApplyTransfer(context.Background(), twoLegTransfer("wallet-a", "wallet-b", "user-a", "user-b", "TRX-LT-000001", 10))
	require.ErrorIs(t, err, apperrors.ErrLockTimeout)

	// The lock taken before the timeout must have been released.
	require.NoError(t, store.arena.acquire(context.Background(), accountLockKey(domain.AccountRef{Kind: domain.AccountWallet, ID: "wallet-a"})))
	store.arena.release(accountLockKey(domain.AccountRef{Kind: domain.AccountWallet, ID: "wallet-a"}))

	assert.True(t, walletBalance(t, store, "wallet-a").Equal(decimal.NewFromInt(100)))
}

func TestApplyTransfer_RecordsEntriesAndMovements(t *testing.T) {
	store := NewStore()
	repo := NewLedgerRepository(store)
	seedTreasury(store, "treasury-1", domain.CurrencyYER, 1000)
	seedWallet(store, "wallet-a", "user-a", domain.CurrencyYER, 0)

	transfer := domain.Transfer{
		CreatedAt: time.Now(),
		CreatedBy: "admin",
		Legs: []domain.Leg{
			{
				Account:     domain.AccountRef{Kind: domain.AccountTreasury, ID: "treasury-1"},
				Delta:       decimal.NewFromInt(-300),
				Kind:        domain.KindDeposit,
				Direction:   domain.DirectionOut,
				Description: "Deposit to user-a",
			},
			{
				Account:         domain.AccountRef{Kind: domain.AccountWallet, ID: "wallet-a"},
				Delta:           decimal.NewFromInt(300),
				Kind:            domain.KindDeposit,
				Direction:       domain.DirectionIn,
				Description:     "Deposit from treasury-1",
				ReferenceNumber: "TRX-REC-000001",
				UserID:          "user-a",
			},
		},
	}

	entries, err := repo.ApplyTransfer(context.Background(), transfer)
	require.NoError(t, err)

	// Only the wallet leg yields a user-facing entry; the treasury leg goes
	// into the company movement log.
	require.Len(t, entries, 1)
	assert.Equal(t, "user-a", entries[0].UserID)
	assert.Equal(t, domain.StatusSuccess, entries[0].Status)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(300)))

	store.mu.RLock()
	defer store.mu.RUnlock()
	require.Len(t, store.movements, 1)
	assert.True(t, store.movements[0].Amount.Equal(decimal.NewFromInt(-300)))
	assert.Equal(t, "treasury-1", store.movements[0].TreasuryID)

	_, ok := store.references["TRX-REC-000001"]
	assert.True(t, ok)
	// The treasury leg has no reference; nothing besides the wallet entry's
	// reference enters the index.
	assert.Len(t, store.references, 1)
}

func TestApplyTransfer_RejectsReusedReference(t *testing.T) {
	store := NewStore()
	repo := NewLedgerRepository(store)
	seedWallet(store, "wallet-a", "user-a", domain.CurrencyYER, 1000)
	seedWallet(store, "wallet-b", "user-b", domain.CurrencyYER, 1000)

	_, err := repo.ApplyTransfer(context.Background(), twoLegTransfer("wallet-a", "wallet-b", "user-a", "user-b", "TRX-DUP-000001", 10))
	require.NoError(t, err)

	_, err = repo.ApplyTransfer(context.Background(), twoLegTransfer("wallet-b", "wallet-a", "user-b", "user-a", "TRX-DUP-000001", 10))
	require.ErrorIs(t, err, apperrors.ErrDuplicate)

	// The rejected transfer must not have moved anything.
	assert.True(t, walletBalance(t, store, "wallet-a").Equal(decimal.NewFromInt(990)))
	assert.True(t, walletBalance(t, store, "wallet-b").Equal(decimal.NewFromInt(1010)))
}

func TestApplyTransfer_RejectsSharedReferenceWithinTransfer(t *testing.T) {
	store := NewStore()
	repo := NewLedgerRepository(store)
	seedWallet(store, "wallet-a", "user-a", domain.CurrencyYER, 1000)
	seedWallet(store, "wallet-b", "user-b", domain.CurrencyYER, 1000)

	transfer := twoLegTransfer("wallet-a", "wallet-b", "user-a", "user-b", "TRX-SHARE-000001", 10)
	transfer.Legs[1].ReferenceNumber = transfer.Legs[0].ReferenceNumber

	_, err := repo.ApplyTransfer(context.Background(), transfer)
	require.ErrorIs(t, err, apperrors.ErrDuplicate)

	store.mu.RLock()
	defer store.mu.RUnlock()
	assert.Empty(t, store.entries)
	assert.Empty(t, store.references)
}
