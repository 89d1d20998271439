package view

import "fmt"

// MoneyFromCents converts cents to a human-readable currency string.
// E.g., 1000 EUR -> "€10.00"
func MoneyFromCents(cents int64, currency string) string {
	major := float64(cents) / 100.0
	return fmt.Sprintf("%s%.2f", currencySymbol(currency), major)
}

func currencySymbol(code string) string {
	switch code {
	case "EUR":
		return "€"
	case "USD":
		return "$"
	case "GBP":
		return "£"
	case "KES":
		return "KSh "
	default:
		return code + " "
	}
}
