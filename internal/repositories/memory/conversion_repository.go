package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
)

// ConversionRepository implements the conversion port over the in-memory
// store.
type ConversionRepository struct {
	store *Store
}

// NewConversionRepository creates the in-memory conversion repository.
func NewConversionRepository(store *Store) *ConversionRepository {
	return &ConversionRepository{store: store}
}

func (r *ConversionRepository) SaveConversion(ctx context.Context, record domain.ConversionRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.conversions {
		if existing.ConversionID == record.ConversionID {
			return fmt.Errorf("%w: conversion %s", apperrors.ErrDuplicate, record.ConversionID)
		}
	}
	r.store.conversions = append(r.store.conversions, record)
	r.store.references[record.ReferenceNumber] = struct{}{}
	return nil
}

func (r *ConversionRepository) ListConversionsByUser(ctx context.Context, userID string, filter portsrepo.EntryFilter) ([]domain.ConversionRecord, error) {
	r.store.mu.RLock()
	matched := make([]domain.ConversionRecord, 0)
	for _, record := range r.store.conversions {
		if record.UserID != userID {
			continue
		}
		if filter.CurrencyCode != "" &&
			record.FromCurrencyCode != filter.CurrencyCode &&
			record.ToCurrencyCode != filter.CurrencyCode {
			continue
		}
		if filter.From != nil && record.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && record.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, record)
	}
	r.store.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return window(matched, filter.Offset, filter.Limit), nil
}
