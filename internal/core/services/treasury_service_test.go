package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/core/services"
	"github.com/saifipay/saifi-backend/internal/dto"
)

type TreasuryServiceTestSuite struct {
	suite.Suite
	mockTreasuryRepo *MockTreasuryRepository
	mockLedgerRepo   *MockLedgerRepository
	service          portssvc.TreasurySvcFacade
	ctx              context.Context
}

func (s *TreasuryServiceTestSuite) SetupTest() {
	s.mockTreasuryRepo = new(MockTreasuryRepository)
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.service = services.NewTreasuryService(s.mockTreasuryRepo, s.mockLedgerRepo)
	s.ctx = context.Background()
}

func (s *TreasuryServiceTestSuite) TestCreateTreasury_WithOpeningBalance() {
	actorID := "admin-1"

	s.mockTreasuryRepo.On("SaveTreasury", s.ctx, mock.MatchedBy(func(t domain.Treasury) bool {
		return t.Name == "Main Cash Box" && t.Type == domain.TreasuryCash &&
			t.CurrencyCode == domain.CurrencyYER && t.Balance.IsZero()
	})).Return(nil).Once()
	s.mockLedgerRepo.On("ApplyTransfer", s.ctx, mock.MatchedBy(func(tr domain.Transfer) bool {
		return len(tr.Legs) == 1 &&
			tr.Legs[0].Account.Kind == domain.AccountTreasury &&
			tr.Legs[0].Delta.Equal(decimal.NewFromInt(5000)) &&
			tr.Legs[0].Description == "Opening balance" &&
			tr.Legs[0].ReferenceNumber == ""
	})).Return([]domain.LedgerEntry{}, nil).Once()
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, mock.AnythingOfType("string")).
		Return(&domain.Treasury{Balance: decimal.NewFromInt(5000)}, nil).Once()

	treasury, err := s.service.CreateTreasury(s.ctx, dto.CreateTreasuryRequest{
		Name:           "Main Cash Box",
		Type:           "CASH",
		CurrencyCode:   domain.CurrencyYER,
		InitialBalance: decimal.NewFromInt(5000),
	}, actorID)

	s.Require().NoError(err)
	s.True(treasury.Balance.Equal(decimal.NewFromInt(5000)))
	s.mockTreasuryRepo.AssertExpectations(s.T())
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *TreasuryServiceTestSuite) TestCreateTreasury_ZeroBalanceSkipsLedger() {
	s.mockTreasuryRepo.On("SaveTreasury", s.ctx, mock.Anything).Return(nil).Once()

	treasury, err := s.service.CreateTreasury(s.ctx, dto.CreateTreasuryRequest{
		Name:         "USD Bank",
		Type:         "BANK",
		CurrencyCode: domain.CurrencyUSD,
	}, "admin-1")

	s.Require().NoError(err)
	s.True(treasury.Balance.IsZero())
	s.mockLedgerRepo.AssertNotCalled(s.T(), "ApplyTransfer")
}

func (s *TreasuryServiceTestSuite) TestCreateTreasury_NegativeInitialBalance() {
	_, err := s.service.CreateTreasury(s.ctx, dto.CreateTreasuryRequest{
		Name:           "Bad",
		Type:           "CASH",
		CurrencyCode:   domain.CurrencyYER,
		InitialBalance: decimal.NewFromInt(-1),
	}, "admin-1")

	s.Require().ErrorIs(err, apperrors.ErrInvalidAmount)
	s.mockTreasuryRepo.AssertNotCalled(s.T(), "SaveTreasury")
}

func (s *TreasuryServiceTestSuite) TestAddCapital_TreasuryNotFound() {
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.AddCapital(s.ctx, dto.AddCapitalRequest{
		TreasuryID: "missing",
		Amount:     decimal.NewFromInt(100),
	}, "admin-1")

	s.Require().ErrorIs(err, apperrors.ErrTreasuryNotFound)
}

func (s *TreasuryServiceTestSuite) TestAddCapital_DefaultDescription() {
	treasury := &domain.Treasury{TreasuryID: "t-1", CurrencyCode: domain.CurrencyYER}

	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, "t-1").Return(treasury, nil).Twice()
	s.mockLedgerRepo.On("ApplyTransfer", s.ctx, mock.MatchedBy(func(tr domain.Transfer) bool {
		return len(tr.Legs) == 1 && tr.Legs[0].Description == "Capital injection" &&
			tr.Legs[0].ReferenceNumber == ""
	})).Return([]domain.LedgerEntry{}, nil).Once()

	_, err := s.service.AddCapital(s.ctx, dto.AddCapitalRequest{
		TreasuryID: "t-1",
		Amount:     decimal.NewFromInt(250),
	}, "admin-1")

	s.Require().NoError(err)
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *TreasuryServiceTestSuite) TestListMovements_DefaultLimit() {
	treasury := &domain.Treasury{TreasuryID: "t-1"}
	movements := []domain.TreasuryMovement{
		{MovementID: "m-2", TreasuryID: "t-1", Amount: decimal.NewFromInt(-200), CreatedAt: time.Now()},
		{MovementID: "m-1", TreasuryID: "t-1", Amount: decimal.NewFromInt(500), CreatedAt: time.Now().Add(-time.Hour)},
	}

	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, "t-1").Return(treasury, nil).Once()
	s.mockTreasuryRepo.On("ListMovementsByTreasury", s.ctx, "t-1", 50).Return(movements, nil).Once()

	got, err := s.service.ListMovements(s.ctx, "t-1", 0)

	s.Require().NoError(err)
	s.Len(got, 2)
	s.Equal("m-2", got[0].MovementID)
}

func (s *TreasuryServiceTestSuite) TestListMovements_TreasuryNotFound() {
	s.mockTreasuryRepo.On("FindTreasuryByID", s.ctx, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ListMovements(s.ctx, "missing", 10)

	s.Require().ErrorIs(err, apperrors.ErrTreasuryNotFound)
	s.mockTreasuryRepo.AssertNotCalled(s.T(), "ListMovementsByTreasury")
}

func TestTreasuryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TreasuryServiceTestSuite))
}
