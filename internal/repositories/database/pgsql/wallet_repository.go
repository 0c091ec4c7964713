package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
)

type PgxWalletRepository struct {
	db *pgxpool.Pool
}

func newPgxWalletRepository(db *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{db: db}
}

var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

const walletColumns = `wallet_id, user_id, currency_code, balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	err := row.Scan(
		&w.WalletID, &w.UserID, &w.CurrencyCode, &w.Balance, &w.IsActive,
		&w.CreatedAt, &w.CreatedBy, &w.LastUpdatedAt, &w.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	wallet, err := scanWallet(r.db.QueryRow(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE wallet_id = $1`, walletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
		}
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}
	return wallet, nil
}

func (r *PgxWalletRepository) FindWalletByUserAndCurrency(ctx context.Context, userID, currencyCode string) (*domain.Wallet, error) {
	wallet, err := scanWallet(r.db.QueryRow(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 AND currency_code = $2`,
		userID, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no %s wallet for user %s", apperrors.ErrNotFound, currencyCode, userID)
		}
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}
	return wallet, nil
}

func (r *PgxWalletRepository) ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 ORDER BY currency_code`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	wallets := make([]domain.Wallet, 0)
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, *wallet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wallets: %w", err)
	}
	return wallets, nil
}

func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO wallets (`+walletColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		wallet.WalletID, wallet.UserID, wallet.CurrencyCode, wallet.Balance, wallet.IsActive,
		wallet.CreatedAt, wallet.CreatedBy, wallet.LastUpdatedAt, wallet.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: wallet for %s/%s", apperrors.ErrDuplicate, wallet.UserID, wallet.CurrencyCode)
		}
		return fmt.Errorf("failed to save wallet: %w", err)
	}
	return nil
}

func (r *PgxWalletRepository) SetWalletActive(ctx context.Context, walletID string, active bool, updatedBy string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE wallets SET is_active = $1, last_updated_at = $2, last_updated_by = $3 WHERE wallet_id = $4`,
		active, time.Now(), updatedBy, walletID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
	}
	return nil
}
