package memory

import (
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider builds a full repository provider over one shared
// in-memory store. Used by local development mode and tests.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	store := NewStore()
	return portsrepo.RepositoryProvider{
		WalletRepo:       NewWalletRepository(store),
		LedgerRepo:       NewLedgerRepository(store),
		TreasuryRepo:     NewTreasuryRepository(store),
		ExchangeRateRepo: NewExchangeRateRepository(store),
		ConversionRepo:   NewConversionRepository(store),
		UserRepo:         NewUserRepository(store),
		ReportingRepo:    NewReportingRepository(store),
	}
}

// Compile-time interface implementation checks.
var (
	_ portsrepo.WalletRepositoryFacade   = (*WalletRepository)(nil)
	_ portsrepo.LedgerRepositoryFacade   = (*LedgerRepository)(nil)
	_ portsrepo.TreasuryRepositoryFacade = (*TreasuryRepository)(nil)
	_ portsrepo.ExchangeRateRepository   = (*ExchangeRateRepository)(nil)
	_ portsrepo.ConversionRepository     = (*ConversionRepository)(nil)
	_ portsrepo.UserRepositoryFacade     = (*UserRepository)(nil)
	_ portsrepo.ReportingRepository      = (*ReportingRepository)(nil)
)
