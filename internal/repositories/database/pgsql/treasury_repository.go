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

type PgxTreasuryRepository struct {
	db *pgxpool.Pool
}

func newPgxTreasuryRepository(db *pgxpool.Pool) portsrepo.TreasuryRepositoryFacade {
	return &PgxTreasuryRepository{db: db}
}

var _ portsrepo.TreasuryRepositoryFacade = (*PgxTreasuryRepository)(nil)

const treasuryColumns = `treasury_id, name, type, currency_code, balance, created_at, created_by, last_updated_at, last_updated_by`

func scanTreasury(row pgx.Row) (*domain.Treasury, error) {
	var t domain.Treasury
	err := row.Scan(
		&t.TreasuryID, &t.Name, &t.Type, &t.CurrencyCode, &t.Balance,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgxTreasuryRepository) FindTreasuryByID(ctx context.Context, treasuryID string) (*domain.Treasury, error) {
	treasury, err := scanTreasury(r.db.QueryRow(ctx,
		`SELECT `+treasuryColumns+` FROM treasuries WHERE treasury_id = $1`, treasuryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: treasury %s", apperrors.ErrNotFound, treasuryID)
		}
		return nil, fmt.Errorf("failed to find treasury: %w", err)
	}
	return treasury, nil
}

func (r *PgxTreasuryRepository) ListTreasuries(ctx context.Context) ([]domain.Treasury, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+treasuryColumns+` FROM treasuries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list treasuries: %w", err)
	}
	defer rows.Close()

	treasuries := make([]domain.Treasury, 0)
	for rows.Next() {
		treasury, err := scanTreasury(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan treasury: %w", err)
		}
		treasuries = append(treasuries, *treasury)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate treasuries: %w", err)
	}
	return treasuries, nil
}

func (r *PgxTreasuryRepository) ListMovementsByTreasury(ctx context.Context, treasuryID string, limit int) ([]domain.TreasuryMovement, error) {
	query := `
		SELECT movement_id, treasury_id, amount, description, created_at, created_by
		FROM treasury_movements
		WHERE treasury_id = $1
		ORDER BY created_at DESC, movement_id DESC`
	args := []interface{}{treasuryID}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	defer rows.Close()

	movements := make([]domain.TreasuryMovement, 0)
	for rows.Next() {
		var m domain.TreasuryMovement
		if err := rows.Scan(&m.MovementID, &m.TreasuryID, &m.Amount, &m.Description, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movements: %w", err)
	}
	return movements, nil
}

func (r *PgxTreasuryRepository) SaveTreasury(ctx context.Context, treasury domain.Treasury) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO treasuries (`+treasuryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		treasury.TreasuryID, treasury.Name, treasury.Type, treasury.CurrencyCode, treasury.Balance,
		treasury.CreatedAt, treasury.CreatedBy, treasury.LastUpdatedAt, treasury.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: treasury %s", apperrors.ErrDuplicate, treasury.TreasuryID)
		}
		return fmt.Errorf("failed to save treasury: %w", err)
	}
	return nil
}
