package dto

import (
	"time"

	"github.com/saifipay/saifi-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTreasuryRequest creates a company treasury, optionally with an
// opening balance recorded as the first movement.
type CreateTreasuryRequest struct {
	Name           string          `json:"name" binding:"required"`
	Type           string          `json:"type" binding:"required,oneof=CASH BANK"`
	CurrencyCode   string          `json:"currency" binding:"required,supported_currency"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// AddCapitalRequest injects capital into a treasury.
type AddCapitalRequest struct {
	TreasuryID  string          `json:"treasuryID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// TreasuryResponse is the API shape of one treasury.
type TreasuryResponse struct {
	TreasuryID   string          `json:"treasuryID"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	CurrencyCode string          `json:"currency"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// AddCapitalResponse reports the treasury balance after a capital injection.
type AddCapitalResponse struct {
	TreasuryID string          `json:"treasuryID"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// TreasuryMovementResponse is one row of a treasury's movement log. Amount
// keeps its sign: positive for capital in, negative for disbursements.
type TreasuryMovementResponse struct {
	MovementID  string          `json:"movementID"`
	TreasuryID  string          `json:"treasuryID"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ToTreasuryMovementResponses converts a slice of movements to DTOs.
func ToTreasuryMovementResponses(movements []domain.TreasuryMovement) []TreasuryMovementResponse {
	responses := make([]TreasuryMovementResponse, len(movements))
	for i, m := range movements {
		responses[i] = TreasuryMovementResponse{
			MovementID:  m.MovementID,
			TreasuryID:  m.TreasuryID,
			Amount:      m.Amount,
			Description: m.Description,
			CreatedAt:   m.CreatedAt,
			CreatedBy:   m.CreatedBy,
		}
	}
	return responses
}

// ToTreasuryResponse converts a domain.Treasury to its DTO.
func ToTreasuryResponse(t *domain.Treasury) TreasuryResponse {
	return TreasuryResponse{
		TreasuryID:   t.TreasuryID,
		Name:         t.Name,
		Type:         string(t.Type),
		CurrencyCode: t.CurrencyCode,
		Balance:      t.Balance,
		CreatedAt:    t.CreatedAt,
	}
}

// ToTreasuryResponses converts a slice of treasuries to DTOs.
func ToTreasuryResponses(treasuries []domain.Treasury) []TreasuryResponse {
	responses := make([]TreasuryResponse, len(treasuries))
	for i := range treasuries {
		responses[i] = ToTreasuryResponse(&treasuries[i])
	}
	return responses
}
