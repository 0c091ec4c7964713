package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
)

// lockTimeout bounds how long one transfer waits on a row lock before the
// whole transaction aborts.
const lockTimeout = "3s"

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

type lockTarget struct {
	kind domain.AccountKind
	id   string
}

// lockOrderKey gives every account a position in the global lock order:
// treasuries before wallets, ascending by identifier within each kind.
func lockOrderKey(t lockTarget) string {
	if t.kind == domain.AccountTreasury {
		return "T|" + t.id
	}
	return "W|" + t.id
}

// ApplyTransfer applies all legs of a transfer inside one database
// transaction. Rows are locked with SELECT ... FOR UPDATE in the global lock
// order, every leg is checked against the locked balance, then balances are
// updated and the per-leg records inserted. Any failure rolls the whole
// transaction back.
func (r *PgxLedgerRepository) ApplyTransfer(ctx context.Context, transfer domain.Transfer) ([]domain.LedgerEntry, error) {
	targets := make([]lockTarget, 0, len(transfer.Legs))
	seen := make(map[string]struct{}, len(transfer.Legs))
	for _, leg := range transfer.Legs {
		t := lockTarget{kind: leg.Account.Kind, id: leg.Account.ID}
		key := lockOrderKey(t)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			targets = append(targets, t)
		}
	}
	sort.Slice(targets, func(i, j int) bool {
		return lockOrderKey(targets[i]) < lockOrderKey(targets[j])
	})

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
		return nil, fmt.Errorf("failed to set lock timeout: %w", err)
	}

	// Lock each account row and capture its current balance plus the wallet
	// currency for entry rows.
	balances := make(map[string]decimal.Decimal, len(targets))
	currencies := make(map[string]string, len(targets))
	for _, target := range targets {
		var balance decimal.Decimal
		var currency string
		switch target.kind {
		case domain.AccountWallet:
			err = tx.QueryRow(ctx,
				`SELECT balance, currency_code FROM wallets WHERE wallet_id = $1 FOR UPDATE`,
				target.id,
			).Scan(&balance, &currency)
		case domain.AccountTreasury:
			err = tx.QueryRow(ctx,
				`SELECT balance, currency_code FROM treasuries WHERE treasury_id = $1 FOR UPDATE`,
				target.id,
			).Scan(&balance, &currency)
		}
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, target.id)
			}
			if isLockNotAvailable(err) {
				return nil, apperrors.ErrLockTimeout
			}
			return nil, fmt.Errorf("failed to lock account %s: %w", target.id, err)
		}
		key := lockOrderKey(target)
		balances[key] = balance
		currencies[key] = currency
	}

	// Check every leg against a running balance before writing anything.
	for _, leg := range transfer.Legs {
		key := lockOrderKey(lockTarget{kind: leg.Account.Kind, id: leg.Account.ID})
		next := balances[key].Add(leg.Delta)
		if next.IsNegative() {
			return nil, apperrors.ErrInsufficientFunds
		}
		balances[key] = next
	}

	createdAt := transfer.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	for _, target := range targets {
		key := lockOrderKey(target)
		switch target.kind {
		case domain.AccountWallet:
			_, err = tx.Exec(ctx,
				`UPDATE wallets SET balance = $1, last_updated_at = $2, last_updated_by = $3 WHERE wallet_id = $4`,
				balances[key], createdAt, transfer.CreatedBy, target.id,
			)
		case domain.AccountTreasury:
			_, err = tx.Exec(ctx,
				`UPDATE treasuries SET balance = $1, last_updated_at = $2, last_updated_by = $3 WHERE treasury_id = $4`,
				balances[key], createdAt, transfer.CreatedBy, target.id,
			)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to update balance for account %s: %w", target.id, err)
		}
	}

	batch := &pgx.Batch{}
	entries := make([]domain.LedgerEntry, 0, len(transfer.Legs))
	for _, leg := range transfer.Legs {
		key := lockOrderKey(lockTarget{kind: leg.Account.Kind, id: leg.Account.ID})
		switch leg.Account.Kind {
		case domain.AccountWallet:
			entry := domain.LedgerEntry{
				EntryID:            uuid.NewString(),
				UserID:             leg.UserID,
				Amount:             leg.Delta.Abs(),
				CurrencyCode:       currencies[key],
				Kind:               leg.Kind,
				Direction:          leg.Direction,
				Description:        leg.Description,
				Status:             domain.StatusSuccess,
				ReferenceNumber:    leg.ReferenceNumber,
				CounterpartyUserID: leg.CounterpartyUserID,
				CreatedAt:          createdAt,
			}
			batch.Queue(
				`INSERT INTO transactions (entry_id, user_id, amount, currency_code, kind, direction, description, status, reference_number, counterparty_user_id, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11)`,
				entry.EntryID, entry.UserID, entry.Amount, entry.CurrencyCode, entry.Kind,
				entry.Direction, entry.Description, entry.Status, entry.ReferenceNumber,
				entry.CounterpartyUserID, entry.CreatedAt,
			)
			entries = append(entries, entry)
		case domain.AccountTreasury:
			batch.Queue(
				`INSERT INTO treasury_movements (movement_id, treasury_id, amount, description, created_at, created_by)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				uuid.NewString(), leg.Account.ID, leg.Delta, leg.Description, createdAt, transfer.CreatedBy,
			)
		}
	}
	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("%w: duplicate reference number", apperrors.ErrDuplicate)
			}
			return nil, fmt.Errorf("failed to insert transfer record: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("failed to close batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReferenceExists checks the shared reference index: transactions and
// conversions both count.
func (r *PgxLedgerRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE reference_number = $1)
		     OR EXISTS (SELECT 1 FROM conversions WHERE reference_number = $1)`,
		reference,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check reference: %w", err)
	}
	return exists, nil
}

func (r *PgxLedgerRepository) ListEntriesByUser(ctx context.Context, userID string, filter portsrepo.EntryFilter) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, user_id, amount, currency_code, kind, direction, description, status,
		       reference_number, COALESCE(counterparty_user_id, ''), created_at
		FROM transactions
		WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	} else {
		// Exchange legs are represented through conversion records in the
		// statement view.
		args = append(args, domain.KindExchange)
		query += fmt.Sprintf(" AND kind <> $%d", len(args))
	}
	if filter.CurrencyCode != "" {
		args = append(args, filter.CurrencyCode)
		query += fmt.Sprintf(" AND currency_code = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += " ORDER BY created_at DESC, entry_id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := rows.Scan(
			&entry.EntryID, &entry.UserID, &entry.Amount, &entry.CurrencyCode,
			&entry.Kind, &entry.Direction, &entry.Description, &entry.Status,
			&entry.ReferenceNumber, &entry.CounterpartyUserID, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}
