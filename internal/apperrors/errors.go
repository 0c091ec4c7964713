package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected internal failure that should not be
// exposed verbatim to callers.
var ErrInternal = errors.New("internal error")

// Ledger error taxonomy. Every money-moving operation returns one of these
// (possibly wrapped with identifiers/amounts via fmt.Errorf) so handlers can
// map failures to precise responses with errors.Is.

// ErrInvalidAmount indicates a non-positive or unparseable monetary amount.
var ErrInvalidAmount = errors.New("amount must be a positive decimal")

// ErrWalletNotFound indicates the referenced user wallet does not exist.
var ErrWalletNotFound = errors.New("wallet not found")

// ErrTreasuryNotFound indicates the referenced company treasury does not exist.
var ErrTreasuryNotFound = errors.New("treasury not found")

// ErrInsufficientFunds indicates a debit leg would drive a balance below zero.
// The whole transfer is aborted; no leg is applied.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrSelfTransfer indicates the P2P recipient resolved to the sender.
var ErrSelfTransfer = errors.New("cannot transfer to yourself")

// ErrRecipientNotFound indicates no user matched the recipient identifier or
// phone number.
var ErrRecipientNotFound = errors.New("recipient not found")

// ErrRateUnavailable indicates no active exchange rate exists for the
// requested ordered currency pair.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrReferenceExhausted indicates the reference generator could not find a
// free reference number within its bounded retry budget. Fatal; the caller
// must not proceed as if a reference had been issued.
var ErrReferenceExhausted = errors.New("reference number generation exhausted retries")

// ErrReconciliationGap indicates the external payment provider reported
// success but the local debit could not be applied. It must be escalated to
// an operator channel, never swallowed.
var ErrReconciliationGap = errors.New("external payment succeeded but local ledger update failed")

// ErrLockTimeout indicates a wallet lock was not acquired within the bounded
// wait. The caller should retry the whole operation; nothing was applied.
var ErrLockTimeout = errors.New("timed out waiting for wallet lock")
