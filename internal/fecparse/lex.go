package fecparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts in order of precedence. YYYYMMDD is the normative FEC layout.
var dateLayouts = []string{
	"20060102",
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse date: %q", s)
}

// parseAmount accepts dot-decimal, comma-decimal, and French
// thousands-separated notations ("1 234,56", "1.234,56"). Empty cells are
// zero, which is how FEC exports encode the unused side of a debit/credit
// pair.
func parseAmount(s, column string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return decimal.Zero, nil
	}
	original := cleaned

	switch {
	case strings.Contains(cleaned, ",") && !strings.Contains(cleaned, "."):
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case strings.Contains(cleaned, ",") && strings.Contains(cleaned, "."):
		// 1.234,56 style: dot is the thousands separator
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "\u00a0", "")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %q", column, original)
	}
	return d, nil
}
