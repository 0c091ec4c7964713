package services

import (
	"context"

	"github.com/saifipay/saifi-backend/internal/dto"
)

// TransferSvcFacade is the transfer engine's public surface. Every
// composition bottoms out in the ledger repository's single atomic transfer
// primitive; no partial application is ever observable.
type TransferSvcFacade interface {
	// TransferP2P moves money from the sender's wallet to another user's
	// wallet in the same currency. The recipient is resolved by ID or by
	// phone number (exact digits first, then last-9-digit suffix).
	TransferP2P(ctx context.Context, senderUserID string, req dto.P2PTransferRequest) (*dto.TransferResponse, error)

	// Deposit moves money from a company treasury into a user wallet, in the
	// treasury's currency.
	Deposit(ctx context.Context, req dto.DepositRequest, actorUserID string) (*dto.DepositResponse, error)

	// Withdraw pays an external service through the payment gateway and, only
	// after the gateway reports success, applies the local debit. The gateway
	// is never invoked when the local balance is insufficient.
	Withdraw(ctx context.Context, userID string, req dto.WithdrawRequest) (*dto.TransferResponse, error)
}
