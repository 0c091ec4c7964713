package services

import (
	"context"

	"github.com/saifipay/saifi-backend/internal/dto"
)

// LedgerSvcFacade exposes the read side of the transaction ledger.
type LedgerSvcFacade interface {
	// ListStatement returns the user's unified feed of ledger entries and
	// conversion records, ordered by creation time descending across both
	// kinds, with currency/type/date filters and offset+limit pagination.
	ListStatement(ctx context.Context, userID string, params dto.ListStatementParams) (*dto.StatementResponse, error)
}

// ReferenceSvc produces collision-free external reference numbers.
type ReferenceSvc interface {
	// Next returns PREFIX-YYYYMMDD-NNNNNN, retrying until the candidate is
	// absent from the ledger's reference index. Bounded retries; exhaustion
	// yields apperrors.ErrReferenceExhausted.
	Next(ctx context.Context, prefix string) (string, error)
}
