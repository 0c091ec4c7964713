package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/dto"
)

const (
	defaultStatementLimit = 20
	maxStatementLimit     = 100
)

type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
	convRepo   portsrepo.ConversionRepository
	userRepo   portsrepo.UserReader
}

// NewLedgerService creates the statement read service.
func NewLedgerService(
	ledgerRepo portsrepo.LedgerReader,
	convRepo portsrepo.ConversionRepository,
	userRepo portsrepo.UserReader,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		convRepo:   convRepo,
		userRepo:   userRepo,
	}
}

// ListStatement merges ledger entries and conversion records into one feed
// ordered by creation time descending. Each source is over-fetched to
// offset+limit rows so the merged window is exact, then the page is sliced
// out of the merge.
func (s *ledgerService) ListStatement(ctx context.Context, userID string, params dto.ListStatementParams) (*dto.StatementResponse, error) {
	if params.Limit <= 0 {
		params.Limit = defaultStatementLimit
	}
	if params.Limit > maxStatementLimit {
		params.Limit = maxStatementLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	window := params.Offset + params.Limit

	filter := portsrepo.EntryFilter{
		CurrencyCode: params.CurrencyCode,
		Kind:         domain.EntryKind(params.Kind),
		From:         params.From,
		To:           params.To,
		Limit:        window,
	}

	wantEntries := params.Kind != string(domain.KindExchange)
	wantConversions := params.Kind == "" || params.Kind == string(domain.KindExchange)

	items := make([]dto.StatementItem, 0, window)

	if wantEntries {
		entries, err := s.ledgerRepo.ListEntriesByUser(ctx, userID, filter)
		if err != nil {
			return nil, fmt.Errorf("listing ledger entries: %w", err)
		}
		for i := range entries {
			items = append(items, s.entryItem(ctx, &entries[i]))
		}
	}
	if wantConversions {
		conversions, err := s.convRepo.ListConversionsByUser(ctx, userID, filter)
		if err != nil {
			return nil, fmt.Errorf("listing conversions: %w", err)
		}
		for i := range conversions {
			items = append(items, dto.ToStatementItemFromConversion(&conversions[i]))
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	if params.Offset >= len(items) {
		items = items[:0]
	} else {
		end := params.Offset + params.Limit
		if end > len(items) {
			end = len(items)
		}
		items = items[params.Offset:end]
	}

	return &dto.StatementResponse{
		Items:  items,
		Limit:  params.Limit,
		Offset: params.Offset,
	}, nil
}

// entryItem builds a statement row, resolving the counterparty's display
// name and phone for transfer rows. Resolution failures degrade to an
// anonymous row rather than failing the statement.
func (s *ledgerService) entryItem(ctx context.Context, entry *domain.LedgerEntry) dto.StatementItem {
	var name, phone string
	if entry.Kind == domain.KindTransfer && entry.CounterpartyUserID != "" {
		if other, err := s.userRepo.FindUserByID(ctx, entry.CounterpartyUserID); err == nil {
			name = other.Name
			phone = other.PhoneNumber
		}
	}
	return dto.ToStatementItemFromEntry(entry, name, phone)
}
