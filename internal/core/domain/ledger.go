package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies a ledger entry by the operation that produced it.
type EntryKind string

const (
	KindDeposit  EntryKind = "DEPOSIT"
	KindWithdraw EntryKind = "WITHDRAW"
	KindTransfer EntryKind = "TRANSFER"
	KindExchange EntryKind = "EXCHANGE"
)

// Direction is the explicit movement direction of an entry relative to its
// owner. It is stored on the entry itself rather than inferred from the
// description text.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// EntryStatus is the completion state of a ledger entry.
type EntryStatus string

const (
	StatusSuccess EntryStatus = "SUCCESS"
	StatusFailed  EntryStatus = "FAILED"
	StatusPending EntryStatus = "PENDING"
)

// LedgerEntry is one immutable leg of a completed money movement. A
// two-wallet transfer produces two entries, each independently referencable
// and linked to the other through CounterpartyUserID.
//
// Invariant: ReferenceNumber is unique across the whole ledger and immutable
// once assigned.
type LedgerEntry struct {
	EntryID            string          `json:"entryID"` // Primary key (UUID)
	UserID             string          `json:"userID"`  // Owning wallet's user
	Amount             decimal.Decimal `json:"amount"`  // Positive; direction carried separately
	CurrencyCode       string          `json:"currencyCode"`
	Kind               EntryKind       `json:"kind"`
	Direction          Direction       `json:"direction"`
	Description        string          `json:"description"`
	Status             EntryStatus     `json:"status"`
	ReferenceNumber    string          `json:"referenceNumber"`
	CounterpartyUserID string          `json:"counterpartyUserID,omitempty"` // Other party of a P2P transfer
	CreatedAt          time.Time       `json:"createdAt"`
}

// AccountKind selects which balance table a transfer leg targets.
type AccountKind string

const (
	AccountWallet   AccountKind = "WALLET"
	AccountTreasury AccountKind = "TREASURY"
)

// AccountRef addresses one lockable balance row.
type AccountRef struct {
	Kind AccountKind
	ID   string // wallet_id or treasury_id
}

// Leg is one signed balance delta within an atomic transfer. Wallet legs
// yield a user-facing LedgerEntry; treasury legs yield a TreasuryMovement in
// the company log instead.
type Leg struct {
	Account            AccountRef
	Delta              decimal.Decimal // signed; negative legs are prechecked against the balance
	Kind               EntryKind
	Direction          Direction
	Description        string
	ReferenceNumber    string // pre-generated; for withdrawals, the gateway reference
	UserID             string // owner of the wallet leg; empty for treasury legs
	CounterpartyUserID string
}

// Transfer is the unit of work applied atomically by the ledger repository:
// all legs visible together or none at all. Locks are acquired in a fixed
// total order over account identifiers regardless of leg order.
type Transfer struct {
	Legs      []Leg
	CreatedAt time.Time
	CreatedBy string
}
