package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/saifipay/saifi-backend/internal/core/domain"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/core/services"
	"github.com/saifipay/saifi-backend/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockConvRepo   *MockConversionRepository
	mockUserRepo   *MockUserRepository
	service        portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockConvRepo = new(MockConversionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockConvRepo, suite.mockUserRepo)
}

func (suite *LedgerServiceTestSuite) TestListStatement_MergesByCreatedAtDescending() {
	ctx := context.Background()
	userID := uuid.NewString()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []domain.LedgerEntry{
		{
			EntryID:         "e-newest",
			UserID:          userID,
			Amount:          decimal.NewFromInt(50),
			CurrencyCode:    domain.CurrencyYER,
			Kind:            domain.KindDeposit,
			Direction:       domain.DirectionIn,
			Status:          domain.StatusSuccess,
			ReferenceNumber: "TRX-20260301-000003",
			CreatedAt:       base.Add(2 * time.Hour),
		},
		{
			EntryID:         "e-oldest",
			UserID:          userID,
			Amount:          decimal.NewFromInt(20),
			CurrencyCode:    domain.CurrencyYER,
			Kind:            domain.KindWithdraw,
			Direction:       domain.DirectionOut,
			Status:          domain.StatusSuccess,
			ReferenceNumber: "TRX-20260301-000001",
			CreatedAt:       base,
		},
	}
	conversions := []domain.ConversionRecord{
		{
			ConversionID:     "c-middle",
			UserID:           userID,
			FromCurrencyCode: domain.CurrencyYER,
			ToCurrencyCode:   domain.CurrencyUSD,
			AmountSent:       decimal.NewFromInt(1000),
			ExchangeRate:     decimal.RequireFromString("0.0018"),
			AmountReceived:   decimal.RequireFromString("1.80"),
			Status:           domain.ConversionCompleted,
			ReferenceNumber:  "EXC-20260301-000002",
			CreatedAt:        base.Add(time.Hour),
		},
	}

	suite.mockLedgerRepo.On("ListEntriesByUser", ctx, userID, mock.AnythingOfType("repositories.EntryFilter")).Return(entries, nil).Once()
	suite.mockConvRepo.On("ListConversionsByUser", ctx, userID, mock.AnythingOfType("repositories.EntryFilter")).Return(conversions, nil).Once()

	resp, err := suite.service.ListStatement(ctx, userID, dto.ListStatementParams{Limit: 10})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Items, 3)
	suite.Equal("e-newest", resp.Items[0].ID)
	suite.Equal("c-middle", resp.Items[1].ID)
	suite.Equal("e-oldest", resp.Items[2].ID)

	// Conversion rows report completed as SUCCESS and carry the target side.
	suite.Equal(string(domain.StatusSuccess), resp.Items[1].Status)
	suite.Require().NotNil(resp.Items[1].TargetAmount)
	suite.Equal("1.8", resp.Items[1].TargetAmount.String())
	suite.Equal(domain.CurrencyUSD, resp.Items[1].TargetCurrencyCode)
}

func (suite *LedgerServiceTestSuite) TestListStatement_Pagination() {
	ctx := context.Background()
	userID := uuid.NewString()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := make([]domain.LedgerEntry, 5)
	for i := range entries {
		entries[i] = domain.LedgerEntry{
			EntryID:   "e" + string(rune('0'+i)),
			UserID:    userID,
			Amount:    decimal.NewFromInt(int64(i + 1)),
			Kind:      domain.KindDeposit,
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		}
	}

	// Each source is asked for offset+limit rows.
	suite.mockLedgerRepo.On("ListEntriesByUser", ctx, userID, mock.MatchedBy(func(f portsrepo.EntryFilter) bool {
		return f.Limit == 4
	})).Return(entries[:4], nil).Once()
	suite.mockConvRepo.On("ListConversionsByUser", ctx, userID, mock.AnythingOfType("repositories.EntryFilter")).Return(nil, nil).Once()

	resp, err := suite.service.ListStatement(ctx, userID, dto.ListStatementParams{Limit: 2, Offset: 2})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Items, 2)
	suite.Equal("e2", resp.Items[0].ID)
	suite.Equal("e3", resp.Items[1].ID)
	suite.Equal(2, resp.Offset)
	suite.Equal(2, resp.Limit)
}

func (suite *LedgerServiceTestSuite) TestListStatement_ExchangeFilterSkipsEntries() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockConvRepo.On("ListConversionsByUser", ctx, userID, mock.AnythingOfType("repositories.EntryFilter")).Return(nil, nil).Once()

	resp, err := suite.service.ListStatement(ctx, userID, dto.ListStatementParams{
		Kind:  string(domain.KindExchange),
		Limit: 10,
	})

	suite.Require().NoError(err)
	suite.Empty(resp.Items)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListEntriesByUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestListStatement_ResolvesTransferCounterparty() {
	ctx := context.Background()
	userID := uuid.NewString()
	otherID := uuid.NewString()

	entries := []domain.LedgerEntry{
		{
			EntryID:            "e-transfer",
			UserID:             userID,
			Amount:             decimal.NewFromInt(30),
			Kind:               domain.KindTransfer,
			Direction:          domain.DirectionOut,
			CounterpartyUserID: otherID,
			CreatedAt:          time.Now(),
		},
	}

	suite.mockLedgerRepo.On("ListEntriesByUser", ctx, userID, mock.AnythingOfType("repositories.EntryFilter")).Return(entries, nil).Once()
	suite.mockConvRepo.On("ListConversionsByUser", ctx, userID, mock.AnythingOfType("repositories.EntryFilter")).Return(nil, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, otherID).Return(&domain.User{
		UserID:      otherID,
		Name:        "Other Party",
		PhoneNumber: "777123456",
	}, nil).Once()

	resp, err := suite.service.ListStatement(ctx, userID, dto.ListStatementParams{Limit: 10})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Items, 1)
	suite.Equal("Other Party", resp.Items[0].CounterpartyName)
	suite.Equal("777123456", resp.Items[0].CounterpartyPhone)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
