package dto

import (
	"time"

	"github.com/saifipay/saifi-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListStatementParams narrows and paginates the unified statement feed.
type ListStatementParams struct {
	CurrencyCode string
	Kind         string // DEPOSIT, WITHDRAW, TRANSFER or EXCHANGE; empty for all
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// StatementItem is one row of the unified account statement: either a ledger
// entry or a conversion, normalized to a single shape and globally ordered by
// creation time descending.
type StatementItem struct {
	ID              string          `json:"id"`
	ReferenceNumber string          `json:"referenceNumber"`
	Kind            string          `json:"type"`
	Direction       string          `json:"direction"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currency"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`

	// Set on TRANSFER rows.
	CounterpartyName  string `json:"otherPartyName,omitempty"`
	CounterpartyPhone string `json:"otherPartyPhone,omitempty"`

	// Set on EXCHANGE rows.
	TargetAmount       *decimal.Decimal `json:"targetAmount,omitempty"`
	TargetCurrencyCode string           `json:"targetCurrency,omitempty"`
	ExchangeRate       *decimal.Decimal `json:"exchangeRate,omitempty"`
}

// StatementResponse is the paginated statement feed.
type StatementResponse struct {
	Items  []StatementItem `json:"items"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// ToStatementItemFromEntry normalizes a ledger entry into a statement row.
func ToStatementItemFromEntry(e *domain.LedgerEntry, counterpartyName, counterpartyPhone string) StatementItem {
	return StatementItem{
		ID:                e.EntryID,
		ReferenceNumber:   e.ReferenceNumber,
		Kind:              string(e.Kind),
		Direction:         string(e.Direction),
		Amount:            e.Amount,
		CurrencyCode:      e.CurrencyCode,
		Description:       e.Description,
		Status:            string(e.Status),
		CreatedAt:         e.CreatedAt,
		CounterpartyName:  counterpartyName,
		CounterpartyPhone: counterpartyPhone,
	}
}

// ToStatementItemFromConversion normalizes a conversion record into a
// statement row. The row is reported in the source currency; the received
// side is carried in the target fields.
func ToStatementItemFromConversion(c *domain.ConversionRecord) StatementItem {
	received := c.AmountReceived
	rate := c.ExchangeRate
	status := string(c.Status)
	if c.Status == domain.ConversionCompleted {
		status = string(domain.StatusSuccess)
	}
	return StatementItem{
		ID:                 c.ConversionID,
		ReferenceNumber:    c.ReferenceNumber,
		Kind:               string(domain.KindExchange),
		Direction:          string(domain.KindExchange),
		Amount:             c.AmountSent,
		CurrencyCode:       c.FromCurrencyCode,
		Description:        "Exchange " + c.FromCurrencyCode + " to " + c.ToCurrencyCode,
		Status:             status,
		CreatedAt:          c.CreatedAt,
		TargetAmount:       &received,
		TargetCurrencyCode: c.ToCurrencyCode,
		ExchangeRate:       &rate,
	}
}
