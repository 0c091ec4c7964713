package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the PostgreSQL-backed repository provider.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		WalletRepo:       newPgxWalletRepository(dbPool),
		LedgerRepo:       newPgxLedgerRepository(dbPool),
		TreasuryRepo:     newPgxTreasuryRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		ConversionRepo:   newPgxConversionRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		ReportingRepo:    newPgxReportingRepository(dbPool),
	}
}
