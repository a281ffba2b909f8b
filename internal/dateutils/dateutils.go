// Package dateutils provides the date normalization used by the statement parsers.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayoutISO is the canonical date form used everywhere downstream.
const DateLayoutISO = "2006-01-02"

// statementLayouts are the accepted CSV date layouts, tried in order.
// Anything else is an unparsable date and the row is dropped by the caller.
var statementLayouts = []string{
	DateLayoutISO, // YYYY-MM-DD
	"02/01/2006",  // DD/MM/YYYY
	"02-01-2006",  // DD-MM-YYYY
}

// NormalizeStatementDate parses a CSV date in one of the three accepted
// layouts and returns it in ISO form. Returns an error for any other layout.
func NormalizeStatementDate(dateStr string) (string, error) {
	clean := strings.TrimSpace(dateStr)
	if clean == "" {
		return "", fmt.Errorf("empty date")
	}

	for _, layout := range statementLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return t.Format(DateLayoutISO), nil
		}
	}

	return "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// NormalizeOFXDate converts an OFX DTPOSTED value to ISO form. Only the
// leading 8 digits (YYYYMMDD) are significant; timezone suffixes like
// "20240105120000[-3:BRT]" are ignored.
func NormalizeOFXDate(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	if len(clean) < 8 {
		return "", fmt.Errorf("OFX date too short: %q", raw)
	}

	t, err := time.Parse("20060102", clean[:8])
	if err != nil {
		return "", fmt.Errorf("unable to parse OFX date %q: %w", raw, err)
	}
	return t.Format(DateLayoutISO), nil
}
