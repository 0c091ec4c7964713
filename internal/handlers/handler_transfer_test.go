package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/dto"
	"github.com/saifipay/saifi-backend/internal/handlers"
	"github.com/saifipay/saifi-backend/pkg/config"
)

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) TransferP2P(ctx context.Context, senderUserID string, req dto.P2PTransferRequest) (*dto.TransferResponse, error) {
	args := m.Called(ctx, senderUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransferResponse), args.Error(1)
}

func (m *MockTransferService) Deposit(ctx context.Context, req dto.DepositRequest, actorUserID string) (*dto.DepositResponse, error) {
	args := m.Called(ctx, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DepositResponse), args.Error(1)
}

func (m *MockTransferService) Withdraw(ctx context.Context, userID string, req dto.WithdrawRequest) (*dto.TransferResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransferResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

// --- Test Suite ---
type TransferHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockTransferService *MockTransferService
	jwtSecret           string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TransferHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "saifi-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *TransferHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockTransferService = new(MockTransferService)

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "saifi-test",
		TransferRateLimit: "1000-M",
	}

	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Transfer: suite.mockTransferService,
	})
}

func (suite *TransferHandlerTestSuite) doPost(path string, body any, userID string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransferHandlerTestSuite) TestTransferP2P_Success() {
	senderID := uuid.NewString()
	recipientID := uuid.NewString()

	expected := &dto.TransferResponse{
		ReferenceNumber: "TRX-20250101-123456",
		NewBalance:      decimal.NewFromInt(60),
		CurrencyCode:    "YER",
	}

	suite.mockTransferService.On("TransferP2P",
		mock.Anything,
		senderID,
		mock.MatchedBy(func(req dto.P2PTransferRequest) bool {
			return req.RecipientID == recipientID && req.Amount.Equal(decimal.NewFromInt(40))
		}),
	).Return(expected, nil).Once()

	w := suite.doPost("/api/v1/transfers/p2p", dto.P2PTransferRequest{
		RecipientID:  recipientID,
		Amount:       decimal.NewFromInt(40),
		CurrencyCode: "YER",
	}, senderID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("TRX-20250101-123456", resp.ReferenceNumber)
	suite.True(resp.NewBalance.Equal(decimal.NewFromInt(60)))
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestTransferP2P_InsufficientFunds() {
	senderID := uuid.NewString()

	suite.mockTransferService.On("TransferP2P", mock.Anything, senderID, mock.Anything).
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	w := suite.doPost("/api/v1/transfers/p2p", dto.P2PTransferRequest{
		RecipientID:  uuid.NewString(),
		Amount:       decimal.NewFromInt(9999),
		CurrencyCode: "YER",
	}, senderID)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *TransferHandlerTestSuite) TestTransferP2P_SelfTransfer() {
	senderID := uuid.NewString()

	suite.mockTransferService.On("TransferP2P", mock.Anything, senderID, mock.Anything).
		Return(nil, apperrors.ErrSelfTransfer).Once()

	w := suite.doPost("/api/v1/transfers/p2p", dto.P2PTransferRequest{
		RecipientID:  senderID,
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "YER",
	}, senderID)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransferHandlerTestSuite) TestTransferP2P_RecipientNotFound() {
	senderID := uuid.NewString()

	suite.mockTransferService.On("TransferP2P", mock.Anything, senderID, mock.Anything).
		Return(nil, apperrors.ErrRecipientNotFound).Once()

	w := suite.doPost("/api/v1/transfers/p2p", dto.P2PTransferRequest{
		Phone:        "777000000",
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "YER",
	}, senderID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransferHandlerTestSuite) TestTransferP2P_Unauthorized() {
	w := suite.doPost("/api/v1/transfers/p2p", dto.P2PTransferRequest{
		RecipientID:  uuid.NewString(),
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "YER",
	}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransferService.AssertNotCalled(suite.T(), "TransferP2P")
}

func (suite *TransferHandlerTestSuite) TestWithdraw_ReconciliationGap() {
	userID := uuid.NewString()

	suite.mockTransferService.On("Withdraw", mock.Anything, userID, mock.Anything).
		Return(nil, apperrors.ErrReconciliationGap).Once()

	w := suite.doPost("/api/v1/transfers/withdraw", dto.WithdrawRequest{
		Amount:       decimal.NewFromInt(100),
		ServiceCode:  "YM",
		SubscriberNo: "777123456",
	}, userID)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "support has been notified")
}

func (suite *TransferHandlerTestSuite) TestDeposit_TreasuryNotFound() {
	actorID := uuid.NewString()

	suite.mockTransferService.On("Deposit", mock.Anything, mock.Anything, actorID).
		Return(nil, apperrors.ErrTreasuryNotFound).Once()

	w := suite.doPost("/api/v1/transfers/deposit", dto.DepositRequest{
		TreasuryID: uuid.NewString(),
		UserID:     uuid.NewString(),
		Amount:     decimal.NewFromInt(100),
	}, actorID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransferHandlerTestSuite) TestTransferP2P_MalformedRateLimitFallsBack() {
	// A broken TRANSFER_RATE_LIMIT must not wedge the transfer routes; the
	// group falls back to the default rate and keeps serving.
	router := gin.New()
	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "saifi-test",
		TransferRateLimit: "not-a-rate",
	}
	handlers.RegisterRoutes(router, cfg, &portssvc.ServiceContainer{
		Transfer: suite.mockTransferService,
	})

	senderID := uuid.NewString()
	suite.mockTransferService.On("TransferP2P", mock.Anything, senderID, mock.Anything).
		Return(&dto.TransferResponse{
			ReferenceNumber: "TRX-20250101-654321",
			NewBalance:      decimal.NewFromInt(10),
			CurrencyCode:    "YER",
		}, nil).Once()

	payload, err := json.Marshal(dto.P2PTransferRequest{
		RecipientID:  uuid.NewString(),
		Amount:       decimal.NewFromInt(5),
		CurrencyCode: "YER",
	})
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transfers/p2p", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(senderID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

func TestTransferHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransferHandlerTestSuite))
}
