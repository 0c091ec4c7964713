package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/core/services"
)

type ReferenceServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.ReferenceSvc
}

func (suite *ReferenceServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewReferenceService(suite.mockLedgerRepo)
}

func (suite *ReferenceServiceTestSuite) TestNext_Format() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

	reference, err := suite.service.Next(ctx, "TRX")

	suite.Require().NoError(err)
	suite.Regexp(`^TRX-\d{8}-\d{6}$`, reference)
}

func (suite *ReferenceServiceTestSuite) TestNext_RetriesOnCollision() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(true, nil).Twice()
	suite.mockLedgerRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

	reference, err := suite.service.Next(ctx, "EXC")

	suite.Require().NoError(err)
	suite.Regexp(`^EXC-\d{8}-\d{6}$`, reference)
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "ReferenceExists", 3)
}

func (suite *ReferenceServiceTestSuite) TestNext_Exhaustion() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("ReferenceExists", ctx, mock.AnythingOfType("string")).Return(true, nil)

	reference, err := suite.service.Next(ctx, "TRX")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrReferenceExhausted)
	suite.Empty(reference)
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "ReferenceExists", 10)
}

func TestReferenceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReferenceServiceTestSuite))
}
