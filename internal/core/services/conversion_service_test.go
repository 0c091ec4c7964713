package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	"github.com/saifipay/saifi-backend/internal/core/domain"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/core/services"
	"github.com/saifipay/saifi-backend/internal/dto"
)

type ConversionServiceTestSuite struct {
	suite.Suite
	mockWalletRepo *MockWalletRepository
	mockLedgerRepo *MockLedgerRepository
	mockConvRepo   *MockConversionRepository
	mockRateRepo   *MockExchangeRateRepository
	service        portssvc.ConversionSvcFacade
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockConvRepo = new(MockConversionRepository)
	suite.mockRateRepo = new(MockExchangeRateRepository)

	walletSvc := services.NewWalletService(suite.mockWalletRepo)
	rateSvc := services.NewExchangeRateService(suite.mockRateRepo)
	refSvc := services.NewReferenceService(suite.mockLedgerRepo)

	suite.service = services.NewConversionService(
		walletSvc,
		rateSvc,
		refSvc,
		suite.mockWalletRepo,
		suite.mockLedgerRepo,
		suite.mockConvRepo,
	)
}

func (suite *ConversionServiceTestSuite) TestConvert_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	rate := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: domain.CurrencyYER,
		ToCurrencyCode:   domain.CurrencyUSD,
		BuyRate:          decimal.RequireFromString("0.0018"),
		SellRate:         decimal.RequireFromString("0.0019"),
		IsActive:         true,
	}
	sourceWallet := &domain.Wallet{
		WalletID:     uuid.NewString(),
		UserID:       userID,
		CurrencyCode: domain.CurrencyYER,
		Balance:      decimal.NewFromInt(5000),
	}
	targetWallet := &domain.Wallet{
		WalletID:     uuid.NewString(),
		UserID:       userID,
		CurrencyCode: domain.CurrencyUSD,
		Balance:      decimal.Zero,
	}

	suite.mockRateRepo.On("FindActiveRate", ctx, domain.CurrencyYER, domain.CurrencyUSD).Return(rate, nil).Once()
	suite.mockWalletRepo.On("FindWalletByUserAndCurrency", ctx, userID, domain.CurrencyYER).Return(sourceWallet, nil).Once()
	suite.mockWalletRepo.On("FindWalletByUserAndCurrency", ctx, userID, domain.CurrencyUSD).Return(targetWallet, nil).Once()
	suite.mockLedgerRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Twice()
	// 1000 YER at 0.0018 converts to exactly 1.80 USD.
	suite.mockLedgerRepo.On("ApplyTransfer", ctx, mock.MatchedBy(func(transfer domain.Transfer) bool {
		if len(transfer.Legs) != 2 {
			return false
		}
		out, in := transfer.Legs[0], transfer.Legs[1]
		return out.Delta.Equal(decimal.NewFromInt(-1000)) &&
			in.Delta.Equal(decimal.RequireFromString("1.80")) &&
			out.Kind == domain.KindExchange &&
			in.Kind == domain.KindExchange &&
			out.ReferenceNumber != in.ReferenceNumber
	})).Return([]domain.LedgerEntry{}, nil).Once()
	suite.mockConvRepo.On("SaveConversion", ctx, mock.MatchedBy(func(record domain.ConversionRecord) bool {
		return record.UserID == userID &&
			record.AmountSent.Equal(decimal.NewFromInt(1000)) &&
			record.AmountReceived.Equal(decimal.RequireFromString("1.80")) &&
			record.Status == domain.ConversionCompleted
	})).Return(nil).Once()

	updatedSource := *sourceWallet
	updatedSource.Balance = decimal.NewFromInt(4000)
	suite.mockWalletRepo.On("FindWalletByID", ctx, sourceWallet.WalletID).Return(&updatedSource, nil).Once()
	updatedTarget := *targetWallet
	updatedTarget.Balance = decimal.RequireFromString("1.80")
	suite.mockWalletRepo.On("FindWalletByID", ctx, targetWallet.WalletID).Return(&updatedTarget, nil).Once()

	resp, err := suite.service.Convert(ctx, userID, dto.ConvertRequest{
		FromCurrencyCode: domain.CurrencyYER,
		ToCurrencyCode:   domain.CurrencyUSD,
		Amount:           decimal.NewFromInt(1000),
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal("1.8", resp.AmountReceived.String())
	suite.Regexp(`^EXC-\d{8}-\d{6}$`, resp.ReferenceNumber)
	suite.mockConvRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_RateUnavailable() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRateRepo.On("FindActiveRate", ctx, domain.CurrencySAR, domain.CurrencyUSD).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Convert(ctx, userID, dto.ConvertRequest{
		FromCurrencyCode: domain.CurrencySAR,
		ToCurrencyCode:   domain.CurrencyUSD,
		Amount:           decimal.NewFromInt(100),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.Nil(resp)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ApplyTransfer", mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvert_SameCurrency() {
	ctx := context.Background()

	resp, err := suite.service.Convert(ctx, uuid.NewString(), dto.ConvertRequest{
		FromCurrencyCode: domain.CurrencyUSD,
		ToCurrencyCode:   domain.CurrencyUSD,
		Amount:           decimal.NewFromInt(100),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
}

func (suite *ConversionServiceTestSuite) TestConvert_InsufficientFunds() {
	ctx := context.Background()
	userID := uuid.NewString()
	rate := &domain.ExchangeRate{
		FromCurrencyCode: domain.CurrencyYER,
		ToCurrencyCode:   domain.CurrencyUSD,
		BuyRate:          decimal.RequireFromString("0.0018"),
		IsActive:         true,
	}
	sourceWallet := &domain.Wallet{
		WalletID:     uuid.NewString(),
		UserID:       userID,
		CurrencyCode: domain.CurrencyYER,
		Balance:      decimal.NewFromInt(500),
	}

	suite.mockRateRepo.On("FindActiveRate", ctx, domain.CurrencyYER, domain.CurrencyUSD).Return(rate, nil).Once()
	suite.mockWalletRepo.On("FindWalletByUserAndCurrency", ctx, userID, domain.CurrencyYER).Return(sourceWallet, nil).Once()

	resp, err := suite.service.Convert(ctx, userID, dto.ConvertRequest{
		FromCurrencyCode: domain.CurrencyYER,
		ToCurrencyCode:   domain.CurrencyUSD,
		Amount:           decimal.NewFromInt(1000),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Nil(resp)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ApplyTransfer", mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvert_TransferFailurePropagates() {
	ctx := context.Background()
	userID := uuid.NewString()
	rate := &domain.ExchangeRate{
		FromCurrencyCode: domain.CurrencyYER,
		ToCurrencyCode:   domain.CurrencyUSD,
		BuyRate:          decimal.RequireFromString("0.0018"),
		IsActive:         true,
	}
	sourceWallet := &domain.Wallet{
		WalletID:     uuid.NewString(),
		UserID:       userID,
		CurrencyCode: domain.CurrencyYER,
		Balance:      decimal.NewFromInt(5000),
	}
	targetWallet := &domain.Wallet{
		WalletID:     uuid.NewString(),
		UserID:       userID,
		CurrencyCode: domain.CurrencyUSD,
	}

	suite.mockRateRepo.On("FindActiveRate", ctx, domain.CurrencyYER, domain.CurrencyUSD).Return(rate, nil).Once()
	suite.mockWalletRepo.On("FindWalletByUserAndCurrency", ctx, userID, domain.CurrencyYER).Return(sourceWallet, nil).Once()
	suite.mockWalletRepo.On("FindWalletByUserAndCurrency", ctx, userID, domain.CurrencyUSD).Return(targetWallet, nil).Once()
	suite.mockLedgerRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Twice()
	suite.mockLedgerRepo.On("ApplyTransfer", ctx, mock.AnythingOfType("domain.Transfer")).Return(nil, assert.AnError).Once()

	resp, err := suite.service.Convert(ctx, userID, dto.ConvertRequest{
		FromCurrencyCode: domain.CurrencyYER,
		ToCurrencyCode:   domain.CurrencyUSD,
		Amount:           decimal.NewFromInt(1000),
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	// No summary row is written when the transfer aborts.
	suite.mockConvRepo.AssertNotCalled(suite.T(), "SaveConversion", mock.Anything, mock.Anything)
}

func TestConversionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}
