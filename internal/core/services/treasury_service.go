package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/dto"
)

type treasuryService struct {
	BaseService
	treasuryRepo portsrepo.TreasuryRepositoryFacade
	ledgerRepo   portsrepo.LedgerWriter
}

// NewTreasuryService creates the treasury management service. Balance changes
// go through the same atomic transfer primitive as wallets.
func NewTreasuryService(
	treasuryRepo portsrepo.TreasuryRepositoryFacade,
	ledgerRepo portsrepo.LedgerWriter,
) portssvc.TreasurySvcFacade {
	return &treasuryService{
		treasuryRepo: treasuryRepo,
		ledgerRepo:   ledgerRepo,
	}
}

func (s *treasuryService) CreateTreasury(ctx context.Context, req dto.CreateTreasuryRequest, actorUserID string) (*domain.Treasury, error) {
	if !domain.IsSupportedCurrency(req.CurrencyCode) {
		return nil, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, req.CurrencyCode)
	}
	if req.InitialBalance.IsNegative() {
		return nil, apperrors.ErrInvalidAmount
	}

	now := time.Now()
	treasury := domain.Treasury{
		TreasuryID:   uuid.NewString(),
		Name:         req.Name,
		Type:         domain.TreasuryType(req.Type),
		CurrencyCode: req.CurrencyCode,
		Balance:      decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.treasuryRepo.SaveTreasury(ctx, treasury); err != nil {
		s.LogError(ctx, err, "Failed to create treasury", slog.String("name", req.Name))
		return nil, fmt.Errorf("saving treasury: %w", err)
	}

	if req.InitialBalance.IsPositive() {
		if err := s.credit(ctx, &treasury, req.InitialBalance, "Opening balance", actorUserID); err != nil {
			return nil, err
		}
	}
	s.LogInfo(ctx, "Treasury created",
		slog.String("treasury_id", treasury.TreasuryID),
		slog.String("name", treasury.Name),
		slog.String("currency", treasury.CurrencyCode))
	return &treasury, nil
}

func (s *treasuryService) ListTreasuries(ctx context.Context) ([]domain.Treasury, error) {
	treasuries, err := s.treasuryRepo.ListTreasuries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing treasuries: %w", err)
	}
	return treasuries, nil
}

func (s *treasuryService) AddCapital(ctx context.Context, req dto.AddCapitalRequest, actorUserID string) (*domain.Treasury, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	treasury, err := s.treasuryRepo.FindTreasuryByID(ctx, req.TreasuryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrTreasuryNotFound
		}
		return nil, fmt.Errorf("finding treasury: %w", err)
	}

	description := req.Description
	if description == "" {
		description = "Capital injection"
	}
	if err := s.credit(ctx, treasury, req.Amount, description, actorUserID); err != nil {
		return nil, err
	}
	return treasury, nil
}

const defaultMovementLimit = 50

func (s *treasuryService) ListMovements(ctx context.Context, treasuryID string, limit int) ([]domain.TreasuryMovement, error) {
	if limit <= 0 {
		limit = defaultMovementLimit
	}

	if _, err := s.treasuryRepo.FindTreasuryByID(ctx, treasuryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrTreasuryNotFound
		}
		return nil, fmt.Errorf("finding treasury: %w", err)
	}

	movements, err := s.treasuryRepo.ListMovementsByTreasury(ctx, treasuryID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing treasury movements: %w", err)
	}
	return movements, nil
}

// credit applies a single positive treasury leg and refreshes the caller's
// copy of the treasury. Treasury-only movements carry no reference number;
// references belong to customer-facing entries.
func (s *treasuryService) credit(ctx context.Context, treasury *domain.Treasury, amount decimal.Decimal, description, actorUserID string) error {
	transfer := domain.Transfer{
		CreatedAt: time.Now(),
		CreatedBy: actorUserID,
		Legs: []domain.Leg{
			{
				Account:     domain.AccountRef{Kind: domain.AccountTreasury, ID: treasury.TreasuryID},
				Delta:       amount.Round(2),
				Kind:        domain.KindDeposit,
				Direction:   domain.DirectionIn,
				Description: description,
			},
		},
	}
	if _, err := s.ledgerRepo.ApplyTransfer(ctx, transfer); err != nil {
		s.LogError(ctx, err, "Treasury credit failed",
			slog.String("treasury_id", treasury.TreasuryID))
		return err
	}
	s.LogInfo(ctx, "Treasury credited",
		slog.String("treasury_id", treasury.TreasuryID),
		slog.String("amount", amount.String()))

	updated, err := s.treasuryRepo.FindTreasuryByID(ctx, treasury.TreasuryID)
	if err != nil {
		return fmt.Errorf("reading treasury balance: %w", err)
	}
	*treasury = *updated
	return nil
}
