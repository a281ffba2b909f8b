// Package moneyutils provides locale-tolerant parsing of statement amounts.
package moneyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonAmountChars = regexp.MustCompile(`[^0-9.,\-]`)

// ParseAmount parses an amount string into a decimal. It accepts both the
// dot-decimal form used by OFX ("-150.00") and the Brazilian comma-decimal
// form found in exported statements ("1.234,56", "-150,00"). Currency
// symbols and whitespace are stripped before parsing.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount string")
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount converts statement amount formats to a form accepted by
// decimal.NewFromString. When a comma is present it is the decimal separator
// and any dots are thousands separators ("1.234,56" -> "1234.56"); otherwise
// the string is taken as dot-decimal.
func StandardizeAmount(amountStr string) string {
	cleaned := nonAmountChars.ReplaceAllString(strings.TrimSpace(amountStr), "")

	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	return cleaned
}

// IsNegativePrefix reports whether the raw amount string, before any
// normalization, carries an explicit leading minus sign. CSV sign resolution
// consults this independently of the parsed magnitude.
func IsNegativePrefix(amountStr string) bool {
	return strings.HasPrefix(strings.TrimSpace(amountStr), "-")
}
