package dto

import (
	"github.com/saifipay/saifi-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest opens the caller's wallet in one supported currency.
// Creation is idempotent; an existing wallet is returned unchanged.
type CreateWalletRequest struct {
	CurrencyCode string `json:"currency" binding:"required,supported_currency"`
}

// WalletBalance is one currency's balance in the balances response. Exists
// distinguishes "wallet not yet created" (reported with a zero balance for
// display) from "wallet exists with zero balance".
type WalletBalance struct {
	CurrencyCode string          `json:"currency"`
	Balance      decimal.Decimal `json:"balance"`
	Exists       bool            `json:"exists"`
	IsActive     bool            `json:"isActive"`
}

// BalancesResponse lists the user's balance in every supported currency.
type BalancesResponse struct {
	Balances []WalletBalance `json:"balances"`
}

// ToBalancesResponse builds the response from existing wallets, zero-filling
// the supported currencies that have no wallet yet.
func ToBalancesResponse(wallets []domain.Wallet) BalancesResponse {
	byCurrency := make(map[string]domain.Wallet, len(wallets))
	for _, w := range wallets {
		byCurrency[w.CurrencyCode] = w
	}

	resp := BalancesResponse{Balances: make([]WalletBalance, 0, len(domain.SupportedCurrencies))}
	for _, code := range domain.SupportedCurrencies {
		if w, ok := byCurrency[code]; ok {
			resp.Balances = append(resp.Balances, WalletBalance{
				CurrencyCode: code,
				Balance:      w.Balance,
				Exists:       true,
				IsActive:     w.IsActive,
			})
			continue
		}
		resp.Balances = append(resp.Balances, WalletBalance{
			CurrencyCode: code,
			Balance:      decimal.Zero,
		})
	}
	return resp
}
