package util

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatMarketCapINR renders a market cap for the dashboard in rupee
// notation. Values are bucketed into trillions, billions and millions;
// anything below a million (including missing data) reads as N/A.
func FormatMarketCapINR(marketCap float64) string {
	if marketCap < 1e6 {
		return "N/A"
	}

	value := decimal.NewFromFloat(marketCap)
	switch {
	case marketCap >= 1e12:
		return fmt.Sprintf("₹%sT", value.Div(decimal.NewFromInt(1e12)).StringFixed(2))
	case marketCap >= 1e9:
		return fmt.Sprintf("₹%sB", value.Div(decimal.NewFromInt(1e9)).StringFixed(2))
	default:
		return fmt.Sprintf("₹%sM", value.Div(decimal.NewFromInt(1e6)).StringFixed(2))
	}
}
