package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
)

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	treasuryRepo  portsrepo.TreasuryReader
}

// NewReportingService creates the balance sheet reporting service.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	treasuryRepo portsrepo.TreasuryReader,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		treasuryRepo:  treasuryRepo,
	}
}

// BalanceSheet reconciles company assets (treasury balances) against user
// liabilities (wallet balances) per supported currency. Every currency gets a
// row even when both sides are zero.
func (s *reportingService) BalanceSheet(ctx context.Context) (*domain.BalanceSheet, error) {
	assets, err := s.reportingRepo.SumTreasuryBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("summing treasury balances: %w", err)
	}
	liabilities, err := s.reportingRepo.SumWalletBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("summing wallet balances: %w", err)
	}
	treasuries, err := s.treasuryRepo.ListTreasuries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing treasuries: %w", err)
	}

	rows := make([]domain.BalanceSheetRow, 0, len(domain.SupportedCurrencies))
	for _, code := range domain.SupportedCurrencies {
		asset := assets[code]
		liability := liabilities[code]
		net := asset.Sub(liability)

		status := domain.StatusSurplus
		if net.LessThan(decimal.Zero) {
			status = domain.StatusDeficit
		}
		rows = append(rows, domain.BalanceSheetRow{
			CurrencyCode: code,
			Assets:       asset,
			Liabilities:  liability,
			NetPosition:  net,
			Status:       status,
		})
	}
	return &domain.BalanceSheet{Rows: rows, Treasuries: treasuries}, nil
}
