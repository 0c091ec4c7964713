package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/dto"
)

const referencePrefixTransaction = "TRX"

type transferService struct {
	BaseService
	walletSvc    portssvc.WalletSvcFacade
	userSvc      portssvc.UserSvcFacade
	refSvc       portssvc.ReferenceSvc
	gateway      portssvc.PaymentGateway
	alerter      portssvc.OperatorAlerter
	walletRepo   portsrepo.WalletReader
	treasuryRepo portsrepo.TreasuryReader
	ledgerRepo   portsrepo.LedgerRepositoryFacade
}

// NewTransferService wires the transfer engine. Every public operation builds
// one domain.Transfer and hands it to the ledger repository; the engine never
// mutates a balance directly.
func NewTransferService(
	walletSvc portssvc.WalletSvcFacade,
	userSvc portssvc.UserSvcFacade,
	refSvc portssvc.ReferenceSvc,
	gateway portssvc.PaymentGateway,
	alerter portssvc.OperatorAlerter,
	walletRepo portsrepo.WalletReader,
	treasuryRepo portsrepo.TreasuryReader,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
) portssvc.TransferSvcFacade {
	return &transferService{
		walletSvc:    walletSvc,
		userSvc:      userSvc,
		refSvc:       refSvc,
		gateway:      gateway,
		alerter:      alerter,
		walletRepo:   walletRepo,
		treasuryRepo: treasuryRepo,
		ledgerRepo:   ledgerRepo,
	}
}

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return apperrors.ErrInvalidAmount
	}
	return nil
}

func (s *transferService) TransferP2P(ctx context.Context, senderUserID string, req dto.P2PTransferRequest) (*dto.TransferResponse, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if !domain.IsSupportedCurrency(req.CurrencyCode) {
		return nil, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, req.CurrencyCode)
	}

	recipient, err := s.userSvc.ResolveRecipient(ctx, req.RecipientID, req.Phone, senderUserID)
	if err != nil {
		return nil, err
	}
	if recipient.UserID == senderUserID {
		return nil, apperrors.ErrSelfTransfer
	}

	senderWallet, err := s.walletRepo.FindWalletByUserAndCurrency(ctx, senderUserID, req.CurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("finding sender wallet: %w", err)
	}
	if senderWallet.Balance.LessThan(req.Amount) {
		return nil, apperrors.ErrInsufficientFunds
	}

	recipientWallet, err := s.walletSvc.GetOrCreateWallet(ctx, recipient.UserID, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	// Each entry gets its own reference; the pair stays linked through the
	// counterparty fields.
	senderRef, err := s.refSvc.Next(ctx, referencePrefixTransaction)
	if err != nil {
		return nil, err
	}
	recipientRef, err := s.refSvc.Next(ctx, referencePrefixTransaction)
	if err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = "Transfer to " + recipient.Name
	}

	amount := req.Amount.Round(2)
	transfer := domain.Transfer{
		CreatedAt: time.Now(),
		CreatedBy: senderUserID,
		Legs: []domain.Leg{
			{
				Account:            domain.AccountRef{Kind: domain.AccountWallet, ID: senderWallet.WalletID},
				Delta:              amount.Neg(),
				Kind:               domain.KindTransfer,
				Direction:          domain.DirectionOut,
				Description:        description,
				ReferenceNumber:    senderRef,
				UserID:             senderUserID,
				CounterpartyUserID: recipient.UserID,
			},
			{
				Account:            domain.AccountRef{Kind: domain.AccountWallet, ID: recipientWallet.WalletID},
				Delta:              amount,
				Kind:               domain.KindTransfer,
				Direction:          domain.DirectionIn,
				Description:        "Transfer from " + senderUserID,
				ReferenceNumber:    recipientRef,
				UserID:             recipient.UserID,
				CounterpartyUserID: senderUserID,
			},
		},
	}

	if _, err := s.ledgerRepo.ApplyTransfer(ctx, transfer); err != nil {
		s.LogError(ctx, err, "P2P transfer failed",
			slog.String("sender_id", senderUserID),
			slog.String("recipient_id", recipient.UserID),
			slog.String("reference", senderRef))
		return nil, err
	}
	s.LogInfo(ctx, "P2P transfer applied",
		slog.String("sender_id", senderUserID),
		slog.String("recipient_id", recipient.UserID),
		slog.String("reference", senderRef),
		slog.String("amount", amount.String()),
		slog.String("currency", req.CurrencyCode))

	updated, err := s.walletRepo.FindWalletByID(ctx, senderWallet.WalletID)
	if err != nil {
		return nil, fmt.Errorf("reading sender balance: %w", err)
	}
	return &dto.TransferResponse{
		ReferenceNumber: senderRef,
		NewBalance:      updated.Balance,
		CurrencyCode:    req.CurrencyCode,
	}, nil
}

func (s *transferService) Deposit(ctx context.Context, req dto.DepositRequest, actorUserID string) (*dto.DepositResponse, error) {
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

	recipient, err := s.userSvc.GetUserByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrRecipientNotFound
		}
		return nil, err
	}

	wallet, err := s.walletSvc.GetOrCreateWallet(ctx, recipient.UserID, treasury.CurrencyCode)
	if err != nil {
		return nil, err
	}

	reference, err := s.refSvc.Next(ctx, referencePrefixTransaction)
	if err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = "Deposit from " + treasury.Name
	}

	amount := req.Amount.Round(2)
	transfer := domain.Transfer{
		CreatedAt: time.Now(),
		CreatedBy: actorUserID,
		Legs: []domain.Leg{
			{
				// Treasury movements are identified by their own row, not by a
				// reference number.
				Account:     domain.AccountRef{Kind: domain.AccountTreasury, ID: treasury.TreasuryID},
				Delta:       amount.Neg(),
				Kind:        domain.KindDeposit,
				Direction:   domain.DirectionOut,
				Description: "Deposit to " + recipient.Name,
			},
			{
				Account:         domain.AccountRef{Kind: domain.AccountWallet, ID: wallet.WalletID},
				Delta:           amount,
				Kind:            domain.KindDeposit,
				Direction:       domain.DirectionIn,
				Description:     description,
				ReferenceNumber: reference,
				UserID:          recipient.UserID,
			},
		},
	}

	if _, err := s.ledgerRepo.ApplyTransfer(ctx, transfer); err != nil {
		s.LogError(ctx, err, "Deposit failed",
			slog.String("treasury_id", treasury.TreasuryID),
			slog.String("user_id", recipient.UserID),
			slog.String("reference", reference))
		return nil, err
	}
	s.LogInfo(ctx, "Deposit applied",
		slog.String("treasury_id", treasury.TreasuryID),
		slog.String("user_id", recipient.UserID),
		slog.String("reference", reference),
		slog.String("amount", amount.String()))

	updatedTreasury, err := s.treasuryRepo.FindTreasuryByID(ctx, treasury.TreasuryID)
	if err != nil {
		return nil, fmt.Errorf("reading treasury balance: %w", err)
	}
	updatedWallet, err := s.walletRepo.FindWalletByID(ctx, wallet.WalletID)
	if err != nil {
		return nil, fmt.Errorf("reading wallet balance: %w", err)
	}
	return &dto.DepositResponse{
		TreasuryBalance: updatedTreasury.Balance,
		WalletBalance:   updatedWallet.Balance,
		ReferenceNumber: reference,
		RecipientName:   recipient.Name,
	}, nil
}

func (s *transferService) Withdraw(ctx context.Context, userID string, req dto.WithdrawRequest) (*dto.TransferResponse, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	wallet, err := s.walletRepo.FindWalletByUserAndCurrency(ctx, userID, domain.CurrencyYER)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("finding wallet: %w", err)
	}

	amount := req.Amount.Round(2)
	// Precheck before any provider call: the gateway must never be invoked
	// when the debit is certain to fail.
	if wallet.Balance.LessThan(amount) {
		return nil, apperrors.ErrInsufficientFunds
	}

	result, err := s.gateway.Pay(ctx, portssvc.PaymentRequest{
		Amount:       amount,
		ServiceCode:  req.ServiceCode,
		SubscriberNo: req.SubscriberNo,
		ActionCode:   req.ActionCode,
		OfferID:      req.OfferID,
	})
	if err != nil {
		s.LogError(ctx, err, "Gateway payment failed",
			slog.String("user_id", userID),
			slog.String("service_code", req.ServiceCode))
		return nil, fmt.Errorf("%w: payment gateway unreachable", apperrors.ErrInternal)
	}
	if !result.Success {
		s.LogWarn(ctx, "Gateway declined payment",
			slog.String("user_id", userID),
			slog.String("service_code", req.ServiceCode),
			slog.Int("code", result.Code),
			slog.String("message", result.Message))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, result.Message)
	}

	reference := result.Reference
	if reference == "" {
		reference, err = s.refSvc.Next(ctx, referencePrefixTransaction)
		if err != nil {
			return nil, err
		}
	}

	transfer := domain.Transfer{
		CreatedAt: time.Now(),
		CreatedBy: userID,
		Legs: []domain.Leg{
			{
				Account:         domain.AccountRef{Kind: domain.AccountWallet, ID: wallet.WalletID},
				Delta:           amount.Neg(),
				Kind:            domain.KindWithdraw,
				Direction:       domain.DirectionOut,
				Description:     "Payment " + req.ServiceCode + " " + req.SubscriberNo,
				ReferenceNumber: reference,
				UserID:          userID,
			},
		},
	}

	if _, err := s.ledgerRepo.ApplyTransfer(ctx, transfer); err != nil {
		// The provider has already moved the money; the local debit did not
		// land. This must reach an operator, not just a log file.
		s.alerter.ReconciliationGap(ctx, portssvc.ReconciliationAlert{
			UserID:           userID,
			GatewayReference: reference,
			Amount:           amount,
			CurrencyCode:     domain.CurrencyYER,
			Detail:           err.Error(),
		})
		s.LogError(ctx, err, "Reconciliation gap: gateway succeeded but local debit failed",
			slog.String("user_id", userID),
			slog.String("gateway_reference", reference),
			slog.String("amount", amount.String()))
		return nil, apperrors.ErrReconciliationGap
	}
	s.LogInfo(ctx, "Withdrawal applied",
		slog.String("user_id", userID),
		slog.String("reference", reference),
		slog.String("amount", amount.String()))

	updated, err := s.walletRepo.FindWalletByID(ctx, wallet.WalletID)
	if err != nil {
		return nil, fmt.Errorf("reading wallet balance: %w", err)
	}
	return &dto.TransferResponse{
		ReferenceNumber: reference,
		NewBalance:      updated.Balance,
		CurrencyCode:    domain.CurrencyYER,
	}, nil
}
