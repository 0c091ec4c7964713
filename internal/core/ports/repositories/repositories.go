package repositories

// RepositoryProvider bundles all repository implementations for dependency
// injection into the service container.
type RepositoryProvider struct {
	WalletRepo       WalletRepositoryFacade
	LedgerRepo       LedgerRepositoryFacade
	TreasuryRepo     TreasuryRepositoryFacade
	ExchangeRateRepo ExchangeRateRepository
	ConversionRepo   ConversionRepository
	UserRepo         UserRepositoryFacade
	ReportingRepo    ReportingRepository
}
