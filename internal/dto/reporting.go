package dto

import (
	"github.com/saifipay/saifi-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSheetRowResponse is one currency's reconciliation row.
type BalanceSheetRowResponse struct {
	CurrencyCode string          `json:"currency"`
	Assets       decimal.Decimal `json:"assets"`
	Liabilities  decimal.Decimal `json:"liabilities"`
	NetPosition  decimal.Decimal `json:"netPosition"`
	Status       string          `json:"status"`
}

// BalanceSheetResponse is the full balance sheet report.
type BalanceSheetResponse struct {
	Report     []BalanceSheetRowResponse `json:"report"`
	Treasuries []TreasuryResponse        `json:"treasuries"`
}

// ToBalanceSheetResponse converts the domain report to its DTO.
func ToBalanceSheetResponse(sheet *domain.BalanceSheet) BalanceSheetResponse {
	rows := make([]BalanceSheetRowResponse, len(sheet.Rows))
	for i, row := range sheet.Rows {
		rows[i] = BalanceSheetRowResponse{
			CurrencyCode: row.CurrencyCode,
			Assets:       row.Assets,
			Liabilities:  row.Liabilities,
			NetPosition:  row.NetPosition,
			Status:       string(row.Status),
		}
	}
	return BalanceSheetResponse{
		Report:     rows,
		Treasuries: ToTreasuryResponses(sheet.Treasuries),
	}
}
