package domain

import (
	"github.com/shopspring/decimal"
)

// Wallet is a user's balance in a single currency. At most one wallet exists
// per (user, currency) pair; wallets are created lazily on first credit and
// deactivated rather than deleted.
//
// Invariant: Balance >= 0 at all times, including mid-transfer. All balance
// mutations go through the ledger repository's locked transfer primitive; no
// other component writes Balance.
type Wallet struct {
	WalletID     string          `json:"walletID"` // Primary key (UUID)
	UserID       string          `json:"userID"`
	CurrencyCode string          `json:"currencyCode"` // YER, USD or SAR
	Balance      decimal.Decimal `json:"balance"`      // 2dp, never negative
	IsActive     bool            `json:"isActive"`
	AuditFields
}
