package services

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/saifipay/saifi-backend/internal/apperrors"
	portsrepo "github.com/saifipay/saifi-backend/internal/core/ports/repositories"
	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/utils"
)

const (
	referenceDigits     = 6
	referenceMaxRetries = 10
)

// referenceService generates external reference numbers of the form
// PREFIX-YYYYMMDD-NNNNNN, checking each candidate against the ledger's
// reference index before handing it out.
type referenceService struct {
	BaseService
	ledgerReader portsrepo.LedgerReader
	now          func() time.Time
}

// NewReferenceService creates a reference number generator backed by the
// ledger's reference index.
func NewReferenceService(ledgerReader portsrepo.LedgerReader) portssvc.ReferenceSvc {
	return &referenceService{
		ledgerReader: ledgerReader,
		now:          time.Now,
	}
}

func (s *referenceService) Next(ctx context.Context, prefix string) (string, error) {
	datePart := s.now().UTC().Format("20060102")
	for attempt := 0; attempt < referenceMaxRetries; attempt++ {
		digits, err := utils.RandomDigits(referenceDigits)
		if err != nil {
			return "", fmt.Errorf("generating reference digits: %w", err)
		}
		candidate := fmt.Sprintf("%s-%s-%s", prefix, datePart, digits)

		exists, err := s.ledgerReader.ReferenceExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking reference uniqueness: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		s.LogDebug(ctx, "Reference collision, retrying",
			slog.String("candidate", candidate),
			slog.Int("attempt", attempt+1))
	}
	s.LogError(ctx, apperrors.ErrReferenceExhausted, "Failed to generate a unique reference",
		slog.String("prefix", prefix))
	return "", apperrors.ErrReferenceExhausted
}
