package dto

import (
	"github.com/shopspring/decimal"
)

// P2PTransferRequest moves money between two user wallets in one currency.
// Exactly one of RecipientID or Phone must identify the recipient.
type P2PTransferRequest struct {
	RecipientID  string          `json:"recipientID"`
	Phone        string          `json:"phone"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currency" binding:"required,supported_currency"`
	Description  string          `json:"description"`
}

// DepositRequest moves money from a company treasury into a user wallet, in
// the treasury's currency.
type DepositRequest struct {
	TreasuryID  string          `json:"treasuryID" binding:"required"`
	UserID      string          `json:"userID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// WithdrawRequest pays an external service from the user's YER wallet through
// the payment gateway.
type WithdrawRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	ServiceCode  string          `json:"serviceCode" binding:"required"`
	SubscriberNo string          `json:"subscriberNo" binding:"required"`
	ActionCode   int             `json:"actionCode"`
	OfferID      string          `json:"offerID"`
}

// TransferResponse reports the outcome of a money movement for the caller's
// own wallet.
type TransferResponse struct {
	ReferenceNumber string          `json:"referenceNumber"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	CurrencyCode    string          `json:"currency"`
}

// DepositResponse reports the outcome of a treasury-to-wallet deposit.
type DepositResponse struct {
	TreasuryBalance decimal.Decimal `json:"treasuryBalance"`
	WalletBalance   decimal.Decimal `json:"walletBalance"`
	ReferenceNumber string          `json:"referenceNumber"`
	RecipientName   string          `json:"recipientName"`
}
