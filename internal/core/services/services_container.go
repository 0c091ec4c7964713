package services

import (
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The gateway and alerter are environment-specific
// collaborators and are injected by the caller.
func NewServiceContainer(
	repos portsrepo.RepositoryProvider,
	gateway portssvc.PaymentGateway,
	alerter portssvc.OperatorAlerter,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{Gateway: gateway}

	refSvc := NewReferenceService(repos.LedgerRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Wallet = NewWalletService(repos.WalletRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)
	container.Treasury = NewTreasuryService(repos.TreasuryRepo, repos.LedgerRepo)
	container.Transfer = NewTransferService(
		container.Wallet,
		container.User,
		refSvc,
		gateway,
		alerter,
		repos.WalletRepo,
		repos.TreasuryRepo,
		repos.LedgerRepo,
	)
	container.Conversion = NewConversionService(
		container.Wallet,
		container.ExchangeRate,
		refSvc,
		repos.WalletRepo,
		repos.LedgerRepo,
		repos.ConversionRepo,
	)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.ConversionRepo, repos.UserRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.TreasuryRepo)

	return container
}

// Compile-time interface implementation checks.
var (
	_ portssvc.UserSvcFacade         = (*userService)(nil)
	_ portssvc.WalletSvcFacade       = (*walletService)(nil)
	_ portssvc.TransferSvcFacade     = (*transferService)(nil)
	_ portssvc.ConversionSvcFacade   = (*conversionService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)
	_ portssvc.TreasurySvcFacade     = (*treasuryService)(nil)
	_ portssvc.LedgerSvcFacade       = (*ledgerService)(nil)
	_ portssvc.ReportingSvcFacade    = (*reportingService)(nil)
	_ portssvc.ReferenceSvc          = (*referenceService)(nil)
)
