package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentRequest is one utility payment sent to the external gateway.
type PaymentRequest struct {
	Amount       decimal.Decimal
	ServiceCode  string
	SubscriberNo string
	ActionCode   int    // 7100 payment, 7200 offer purchase, 7600 bulk, 7700 entertainment
	OfferID      string // only for offer purchases
}

// PaymentResult is the gateway's normalized response.
type PaymentResult struct {
	Success   bool
	Code      int    // provider RC; 0 means success
	Message   string // provider MSG
	Reference string // provider REF; stored as the ledger entry reference
}

// PaymentGateway is the external payment-provider collaborator. It is always
// called outside wallet locks: before the local debit on withdrawals, never
// inside the locked section.
type PaymentGateway interface {
	// Pay executes a utility payment.
	Pay(ctx context.Context, req PaymentRequest) (*PaymentResult, error)

	// AgentBalance queries the provider-side agent balance.
	AgentBalance(ctx context.Context) (*PaymentResult, error)

	// TransactionStatus checks the state of a previous payment by reference.
	TransactionStatus(ctx context.Context, reference string) (*PaymentResult, error)
}
