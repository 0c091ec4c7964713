package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is what the
// handlers receive.
type ServiceContainer struct {
	User         UserSvcFacade
	Wallet       WalletSvcFacade
	Transfer     TransferSvcFacade
	Conversion   ConversionSvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Treasury     TreasurySvcFacade
	Ledger       LedgerSvcFacade
	Reporting    ReportingSvcFacade
	Gateway      PaymentGateway
}
