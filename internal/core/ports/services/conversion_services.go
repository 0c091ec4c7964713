package services

import (
	"context"

	"github.com/saifipay/saifi-backend/internal/core/domain"
	"github.com/saifipay/saifi-backend/internal/dto"
)

// ConversionSvcFacade exchanges value between two of one user's wallets at
// the active buy rate.
type ConversionSvcFacade interface {
	// Convert debits the source wallet and credits the target wallet
	// atomically, then records one ConversionRecord. If the transfer aborts,
	// no record is written and the failure propagates unchanged.
	Convert(ctx context.Context, userID string, req dto.ConvertRequest) (*dto.ConvertResponse, error)

	// ListConversions returns the user's conversion history, newest first.
	ListConversions(ctx context.Context, userID string, limit int) ([]domain.ConversionRecord, error)
}
