package models

import (
	"fmt"
	"strconv"
	"strings"
)

// PeriodKey identifies the accounting bucket that owns income/expense rows.
// Periods themselves live in the external store; the importer only resolves
// them, keyed by (user, month, year).
type PeriodKey struct {
	Year  int
	Month int
}

// PeriodKeyFromDate extracts the period key from an ISO YYYY-MM-DD date.
func PeriodKeyFromDate(date string) (PeriodKey, error) {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return PeriodKey{}, fmt.Errorf("invalid ISO date: %q", date)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return PeriodKey{}, fmt.Errorf("invalid year in date %q: %w", date, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return PeriodKey{}, fmt.Errorf("invalid month in date %q: %w", date, err)
	}
	if month < 1 || month > 12 {
		return PeriodKey{}, fmt.Errorf("month out of range in date %q", date)
	}
	return PeriodKey{Year: year, Month: month}, nil
}

func (k PeriodKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
}
