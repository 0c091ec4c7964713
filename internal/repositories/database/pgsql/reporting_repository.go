package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	db *pgxpool.Pool
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{db: db}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) sumByCurrency(ctx context.Context, query string) (map[string]decimal.Decimal, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance sums: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var currency string
		var total decimal.Decimal
		if err := rows.Scan(&currency, &total); err != nil {
			return nil, fmt.Errorf("failed to scan balance sum: %w", err)
		}
		sums[currency] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balance sums: %w", err)
	}
	return sums, nil
}

func (r *PgxReportingRepository) SumTreasuryBalances(ctx context.Context) (map[string]decimal.Decimal, error) {
	return r.sumByCurrency(ctx,
		`SELECT currency_code, COALESCE(SUM(balance), 0) FROM treasuries GROUP BY currency_code`)
}

func (r *PgxReportingRepository) SumWalletBalances(ctx context.Context) (map[string]decimal.Decimal, error) {
	return r.sumByCurrency(ctx,
		`SELECT currency_code, COALESCE(SUM(balance), 0) FROM wallets GROUP BY currency_code`)
}
