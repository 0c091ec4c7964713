package domain

// Currency codes supported by the wallet platform. The set is fixed; wallets,
// treasuries, ledger entries and exchange rates all reference one of these.
const (
	CurrencyYER = "YER"
	CurrencyUSD = "USD"
	CurrencySAR = "SAR"
)

// SupportedCurrencies lists all currency codes in reporting order.
var SupportedCurrencies = []string{CurrencyYER, CurrencyUSD, CurrencySAR}

// IsSupportedCurrency reports whether code is one of the platform currencies.
func IsSupportedCurrency(code string) bool {
	switch code {
	case CurrencyYER, CurrencyUSD, CurrencySAR:
		return true
	}
	return false
}
