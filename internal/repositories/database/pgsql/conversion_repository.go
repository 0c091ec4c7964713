package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
)

type PgxConversionRepository struct {
	db *pgxpool.Pool
}

func newPgxConversionRepository(db *pgxpool.Pool) portsrepo.ConversionRepository {
	return &PgxConversionRepository{db: db}
}

var _ portsrepo.ConversionRepository = (*PgxConversionRepository)(nil)

func (r *PgxConversionRepository) SaveConversion(ctx context.Context, record domain.ConversionRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO conversions (conversion_id, user_id, from_currency_code, to_currency_code,
		                         amount_sent, exchange_rate, amount_received, status, reference_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		record.ConversionID, record.UserID, record.FromCurrencyCode, record.ToCurrencyCode,
		record.AmountSent, record.ExchangeRate, record.AmountReceived, record.Status,
		record.ReferenceNumber, record.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: conversion %s", apperrors.ErrDuplicate, record.ReferenceNumber)
		}
		return fmt.Errorf("failed to save conversion: %w", err)
	}
	return nil
}

func (r *PgxConversionRepository) ListConversionsByUser(ctx context.Context, userID string, filter portsrepo.EntryFilter) ([]domain.ConversionRecord, error) {
	query := `
		SELECT conversion_id, user_id, from_currency_code, to_currency_code,
		       amount_sent, exchange_rate, amount_received, status, reference_number, created_at
		FROM conversions
		WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.CurrencyCode != "" {
		args = append(args, filter.CurrencyCode)
		query += fmt.Sprintf(" AND (from_currency_code = $%d OR to_currency_code = $%d)", len(args), len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += " ORDER BY created_at DESC, conversion_id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ConversionRecord, 0)
	for rows.Next() {
		var record domain.ConversionRecord
		if err := rows.Scan(
			&record.ConversionID, &record.UserID, &record.FromCurrencyCode, &record.ToCurrencyCode,
			&record.AmountSent, &record.ExchangeRate, &record.AmountReceived, &record.Status,
			&record.ReferenceNumber, &record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversions: %w", err)
	}
	return records, nil
}
