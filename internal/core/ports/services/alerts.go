package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// ReconciliationAlert describes a divergence between external and local
// state: the gateway confirmed a payment but the local debit failed.
type ReconciliationAlert struct {
	UserID           string
	GatewayReference string
	Amount           decimal.Decimal
	CurrencyCode     string
	Detail           string
}

// OperatorAlerter is the operator-visible escalation channel. Implementations
// must not drop alerts silently; a reconciliation gap left unreported means
// lost money.
type OperatorAlerter interface {
	ReconciliationGap(ctx context.Context, alert ReconciliationAlert)
}
