package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
)

type PgxExchangeRateRepository struct {
	db *pgxpool.Pool
}

func newPgxExchangeRateRepository(db *pgxpool.Pool) portsrepo.ExchangeRateRepository {
	return &PgxExchangeRateRepository{db: db}
}

var _ portsrepo.ExchangeRateRepository = (*PgxExchangeRateRepository)(nil)

const rateColumns = `exchange_rate_id, from_currency_code, to_currency_code, buy_rate, sell_rate, is_active, last_updated_at, last_updated_by`

func scanRate(row pgx.Row) (*domain.ExchangeRate, error) {
	var rate domain.ExchangeRate
	err := row.Scan(
		&rate.ExchangeRateID, &rate.FromCurrencyCode, &rate.ToCurrencyCode,
		&rate.BuyRate, &rate.SellRate, &rate.IsActive, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *PgxExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO exchange_rates (`+rateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (from_currency_code, to_currency_code) DO UPDATE SET
			buy_rate = EXCLUDED.buy_rate,
			sell_rate = EXCLUDED.sell_rate,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by`,
		rate.ExchangeRateID, rate.FromCurrencyCode, rate.ToCurrencyCode,
		rate.BuyRate, rate.SellRate, rate.IsActive, rate.LastUpdatedAt, rate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate: %w", err)
	}
	return nil
}

func (r *PgxExchangeRateRepository) FindActiveRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	rate, err := scanRate(r.db.QueryRow(ctx,
		`SELECT `+rateColumns+` FROM exchange_rates
		 WHERE from_currency_code = $1 AND to_currency_code = $2 AND is_active`,
		fromCode, toCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no active rate %s to %s", apperrors.ErrNotFound, fromCode, toCode)
		}
		return nil, fmt.Errorf("failed to find exchange rate: %w", err)
	}
	return rate, nil
}

func (r *PgxExchangeRateRepository) ListRates(ctx context.Context, activeOnly bool) ([]domain.ExchangeRate, error) {
	query := `SELECT ` + rateColumns + ` FROM exchange_rates`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY from_currency_code, to_currency_code`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	defer rows.Close()

	rates := make([]domain.ExchangeRate, 0)
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		rates = append(rates, *rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exchange rates: %w", err)
	}
	return rates, nil
}
