package services_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
)

// --- Mock WalletRepository ---

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	var wallet *domain.Wallet
	if args.Get(0) != nil {
		wallet = args.Get(0).(*domain.Wallet)
	}
	return wallet, args.Error(1)
}

func (m *MockWalletRepository) FindWalletByUserAndCurrency(ctx context.Context, userID, currencyCode string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, currencyCode)
	var wallet *domain.Wallet
	if args.Get(0) != nil {
		wallet = args.Get(0).(*domain.Wallet)
	}
	return wallet, args.Error(1)
}

func (m *MockWalletRepository) ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID)
	var wallets []domain.Wallet
	if args.Get(0) != nil {
		wallets = args.Get(0).([]domain.Wallet)
	}
	return wallets, args.Error(1)
}

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) SetWalletActive(ctx context.Context, walletID string, active bool, updatedBy string) error {
	args := m.Called(ctx, walletID, active, updatedBy)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ApplyTransfer(ctx context.Context, transfer domain.Transfer) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, transfer)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByUser(ctx context.Context, userID string, filter portsrepo.EntryFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, filter)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

// --- Mock TreasuryRepository ---

type MockTreasuryRepository struct {
	mock.Mock
}

func (m *MockTreasuryRepository) FindTreasuryByID(ctx context.Context, treasuryID string) (*domain.Treasury, error) {
	args := m.Called(ctx, treasuryID)
	var treasury *domain.Treasury
	if args.Get(0) != nil {
		treasury = args.Get(0).(*domain.Treasury)
	}
	return treasury, args.Error(1)
}

func (m *MockTreasuryRepository) ListTreasuries(ctx context.Context) ([]domain.Treasury, error) {
	args := m.Called(ctx)
	var treasuries []domain.Treasury
	if args.Get(0) != nil {
		treasuries = args.Get(0).([]domain.Treasury)
	}
	return treasuries, args.Error(1)
}

func (m *MockTreasuryRepository) ListMovementsByTreasury(ctx context.Context, treasuryID string, limit int) ([]domain.TreasuryMovement, error) {
	args := m.Called(ctx, treasuryID, limit)
	var movements []domain.TreasuryMovement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.TreasuryMovement)
	}
	return movements, args.Error(1)
}

func (m *MockTreasuryRepository) SaveTreasury(ctx context.Context, treasury domain.Treasury) error {
	args := m.Called(ctx, treasury)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByPhoneSuffix(ctx context.Context, suffix string, excludeUserID string) (*domain.User, error) {
	args := m.Called(ctx, suffix, excludeUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock ConversionRepository ---

type MockConversionRepository struct {
	mock.Mock
}

func (m *MockConversionRepository) SaveConversion(ctx context.Context, record domain.ConversionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockConversionRepository) ListConversionsByUser(ctx context.Context, userID string, filter portsrepo.EntryFilter) ([]domain.ConversionRecord, error) {
	args := m.Called(ctx, userID, filter)
	var records []domain.ConversionRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.ConversionRecord)
	}
	return records, args.Error(1)
}

// --- Mock ExchangeRateRepository ---

type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindActiveRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	var rate *domain.ExchangeRate
	if args.Get(0) != nil {
		rate = args.Get(0).(*domain.ExchangeRate)
	}
	return rate, args.Error(1)
}

func (m *MockExchangeRateRepository) ListRates(ctx context.Context, activeOnly bool) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, activeOnly)
	var rates []domain.ExchangeRate
	if args.Get(0) != nil {
		rates = args.Get(0).([]domain.ExchangeRate)
	}
	return rates, args.Error(1)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) SumTreasuryBalances(ctx context.Context) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx)
	var sums map[string]decimal.Decimal
	if args.Get(0) != nil {
		sums = args.Get(0).(map[string]decimal.Decimal)
	}
	return sums, args.Error(1)
}

func (m *MockReportingRepository) SumWalletBalances(ctx context.Context) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx)
	var sums map[string]decimal.Decimal
	if args.Get(0) != nil {
		sums = args.Get(0).(map[string]decimal.Decimal)
	}
	return sums, args.Error(1)
}

// --- Mock PaymentGateway ---

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Pay(ctx context.Context, req portssvc.PaymentRequest) (*portssvc.PaymentResult, error) {
	args := m.Called(ctx, req)
	var result *portssvc.PaymentResult
	if args.Get(0) != nil {
		result = args.Get(0).(*portssvc.PaymentResult)
	}
	return result, args.Error(1)
}

func (m *MockPaymentGateway) AgentBalance(ctx context.Context) (*portssvc.PaymentResult, error) {
	args := m.Called(ctx)
	var result *portssvc.PaymentResult
	if args.Get(0) != nil {
		result = args.Get(0).(*portssvc.PaymentResult)
	}
	return result, args.Error(1)
}

func (m *MockPaymentGateway) TransactionStatus(ctx context.Context, reference string) (*portssvc.PaymentResult, error) {
	args := m.Called(ctx, reference)
	var result *portssvc.PaymentResult
	if args.Get(0) != nil {
		result = args.Get(0).(*portssvc.PaymentResult)
	}
	return result, args.Error(1)
}

// --- Mock OperatorAlerter ---

type MockOperatorAlerter struct {
	mock.Mock
}

func (m *MockOperatorAlerter) ReconciliationGap(ctx context.Context, alert portssvc.ReconciliationAlert) {
	m.Called(ctx, alert)
}
