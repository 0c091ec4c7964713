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

const referencePrefixExchange = "EXC"

type conversionService struct {
	BaseService
	walletSvc  portssvc.WalletSvcFacade
	rateSvc    portssvc.ExchangeRateSvcFacade
	refSvc     portssvc.ReferenceSvc
	walletRepo portsrepo.WalletReader
	ledgerRepo portsrepo.LedgerRepositoryFacade
	convRepo   portsrepo.ConversionRepository
}

// NewConversionService wires the currency conversion engine.
func NewConversionService(
	walletSvc portssvc.WalletSvcFacade,
	rateSvc portssvc.ExchangeRateSvcFacade,
	refSvc portssvc.ReferenceSvc,
	walletRepo portsrepo.WalletReader,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	convRepo portsrepo.ConversionRepository,
) portssvc.ConversionSvcFacade {
	return &conversionService{
		walletSvc:  walletSvc,
		rateSvc:    rateSvc,
		refSvc:     refSvc,
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		convRepo:   convRepo,
	}
}

func (s *conversionService) Convert(ctx context.Context, userID string, req dto.ConvertRequest) (*dto.ConvertResponse, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if req.FromCurrencyCode == req.ToCurrencyCode {
		return nil, fmt.Errorf("%w: source and target currency are the same", apperrors.ErrValidation)
	}
	if !domain.IsSupportedCurrency(req.FromCurrencyCode) || !domain.IsSupportedCurrency(req.ToCurrencyCode) {
		return nil, fmt.Errorf("%w: unsupported currency pair %s/%s",
			apperrors.ErrValidation, req.FromCurrencyCode, req.ToCurrencyCode)
	}

	rate, err := s.rateSvc.GetActiveRate(ctx, req.FromCurrencyCode, req.ToCurrencyCode)
	if err != nil {
		return nil, err
	}

	sourceWallet, err := s.walletRepo.FindWalletByUserAndCurrency(ctx, userID, req.FromCurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("finding source wallet: %w", err)
	}

	amountSent := req.Amount.Round(2)
	if sourceWallet.Balance.LessThan(amountSent) {
		return nil, apperrors.ErrInsufficientFunds
	}
	amountReceived := amountSent.Mul(rate.BuyRate).Round(2)
	if amountReceived.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount too small to convert", apperrors.ErrInvalidAmount)
	}

	targetWallet, err := s.walletSvc.GetOrCreateWallet(ctx, userID, req.ToCurrencyCode)
	if err != nil {
		return nil, err
	}

	// One reference per entry; the conversion record carries the debit side's.
	debitRef, err := s.refSvc.Next(ctx, referencePrefixExchange)
	if err != nil {
		return nil, err
	}
	creditRef, err := s.refSvc.Next(ctx, referencePrefixExchange)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	transfer := domain.Transfer{
		CreatedAt: now,
		CreatedBy: userID,
		Legs: []domain.Leg{
			{
				Account:         domain.AccountRef{Kind: domain.AccountWallet, ID: sourceWallet.WalletID},
				Delta:           amountSent.Neg(),
				Kind:            domain.KindExchange,
				Direction:       domain.DirectionOut,
				Description:     "Exchange " + req.FromCurrencyCode + " to " + req.ToCurrencyCode,
				ReferenceNumber: debitRef,
				UserID:          userID,
			},
			{
				Account:         domain.AccountRef{Kind: domain.AccountWallet, ID: targetWallet.WalletID},
				Delta:           amountReceived,
				Kind:            domain.KindExchange,
				Direction:       domain.DirectionIn,
				Description:     "Exchange " + req.FromCurrencyCode + " to " + req.ToCurrencyCode,
				ReferenceNumber: creditRef,
				UserID:          userID,
			},
		},
	}

	if _, err := s.ledgerRepo.ApplyTransfer(ctx, transfer); err != nil {
		s.LogError(ctx, err, "Conversion transfer failed",
			slog.String("user_id", userID),
			slog.String("reference", debitRef))
		return nil, err
	}

	record := domain.ConversionRecord{
		ConversionID:     uuid.NewString(),
		UserID:           userID,
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   req.ToCurrencyCode,
		AmountSent:       amountSent,
		ExchangeRate:     rate.BuyRate,
		AmountReceived:   amountReceived,
		Status:           domain.ConversionCompleted,
		ReferenceNumber:  debitRef,
		CreatedAt:        now,
	}
	if err := s.convRepo.SaveConversion(ctx, record); err != nil {
		// The money moved; only the summary row is missing. The two ledger
		// entries still carry the full story.
		s.LogError(ctx, err, "Failed to save conversion record",
			slog.String("user_id", userID),
			slog.String("reference", debitRef))
	}
	s.LogInfo(ctx, "Conversion applied",
		slog.String("user_id", userID),
		slog.String("reference", debitRef),
		slog.String("sent", amountSent.String()+" "+req.FromCurrencyCode),
		slog.String("received", amountReceived.String()+" "+req.ToCurrencyCode))

	newSource, err := s.walletRepo.FindWalletByID(ctx, sourceWallet.WalletID)
	if err != nil {
		return nil, fmt.Errorf("reading source balance: %w", err)
	}
	newTarget, err := s.walletRepo.FindWalletByID(ctx, targetWallet.WalletID)
	if err != nil {
		return nil, fmt.Errorf("reading target balance: %w", err)
	}
	return &dto.ConvertResponse{
		ReferenceNumber: debitRef,
		AmountReceived:  amountReceived,
		ExchangeRate:    rate.BuyRate,
		NewBalanceFrom:  newSource.Balance,
		NewBalanceTo:    newTarget.Balance,
	}, nil
}

func (s *conversionService) ListConversions(ctx context.Context, userID string, limit int) ([]domain.ConversionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	records, err := s.convRepo.ListConversionsByUser(ctx, userID, portsrepo.EntryFilter{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("listing conversions: %w", err)
	}
	return records, nil
}
