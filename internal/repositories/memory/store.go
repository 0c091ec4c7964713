// Package memory provides an in-process implementation of the repository
// ports. It backs local development mode and the concurrency tests; the
// locking discipline mirrors the row locks the pgsql implementation takes.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/saifipay/saifi-backend/internal/core/domain"
)

// defaultLockWait bounds how long a transfer waits for one account lock
// before giving up.
const defaultLockWait = 3 * time.Second

// Store holds all in-memory state shared by the repository implementations.
type Store struct {
	mu sync.RWMutex

	wallets          map[string]domain.Wallet // by wallet ID
	walletIDsByOwner map[string]string        // user|currency -> wallet ID
	treasuries       map[string]domain.Treasury
	users            map[string]domain.User // by user ID
	userIDsByPhone   map[string]string
	entries          []domain.LedgerEntry
	movements        []domain.TreasuryMovement
	conversions      []domain.ConversionRecord
	rates            map[string]domain.ExchangeRate // from|to -> rate
	references       map[string]struct{}

	arena *lockArena
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return NewStoreWithLockWait(defaultLockWait)
}

// NewStoreWithLockWait creates an empty store with a custom bound on how
// long transfers wait for account locks.
func NewStoreWithLockWait(wait time.Duration) *Store {
	return &Store{
		wallets:          make(map[string]domain.Wallet),
		walletIDsByOwner: make(map[string]string),
		treasuries:       make(map[string]domain.Treasury),
		users:            make(map[string]domain.User),
		userIDsByPhone:   make(map[string]string),
		rates:            make(map[string]domain.ExchangeRate),
		references:       make(map[string]struct{}),
		arena:            newLockArena(wait),
	}
}

func ownerKey(userID, currencyCode string) string {
	return userID + "|" + currencyCode
}

func rateKey(fromCode, toCode string) string {
	return fromCode + "|" + toCode
}

// lockArena hands out one channel-based mutex per account identifier, with a
// bounded wait on acquisition.
type lockArena struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
	wait  time.Duration
}

func newLockArena(wait time.Duration) *lockArena {
	return &lockArena{
		locks: make(map[string]chan struct{}),
		wait:  wait,
	}
}

func (a *lockArena) lockFor(key string) chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.locks[key]
	if !ok {
		l = make(chan struct{}, 1)
		a.locks[key] = l
	}
	return l
}

// acquire takes the lock for key, failing after the arena's wait bound or
// when ctx is cancelled.
func (a *lockArena) acquire(ctx context.Context, key string) error {
	l := a.lockFor(key)
	timer := time.NewTimer(a.wait)
	defer timer.Stop()
	select {
	case l <- struct{}{}:
		return nil
	case <-timer.C:
		return errLockWait
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *lockArena) release(key string) {
	<-a.lockFor(key)
}
