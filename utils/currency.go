package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as a euro string with thousands
// separators, e.g. 1234.5 -> "€ 1.234,50".
func FormatCurrency(amount decimal.Decimal) string {
	formatted := amount.StringFixed(2)

	negative := strings.HasPrefix(formatted, "-")
	formatted = strings.TrimPrefix(formatted, "-")

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("€ %s%s,%s", sign, strings.Join(groups, "."), decimalPart)
}
