package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WarningKind distinguishes the recoverable issue families of the engine.
type WarningKind string

const (
	// WarnImbalance flags a trial-balance or balance-sheet equality check
	// outside tolerance. Amount carries the discrepancy.
	WarnImbalance WarningKind = "IMBALANCE"
	// WarnClassification flags account codes unmatched by any rule.
	WarnClassification WarningKind = "CLASSIFICATION"
	// WarnNotApplicable flags a calculation that was skipped rather than
	// fabricated (e.g. cash flow with a single year of data).
	WarnNotApplicable WarningKind = "NOT_APPLICABLE"
	// WarnMissingAccounts flags a builder that found none of the account
	// families it aggregates (the statement is zero-valued, not an error).
	WarnMissingAccounts WarningKind = "MISSING_ACCOUNTS"
	// WarnEncoding flags a low-confidence encoding fallback (Latin-1).
	WarnEncoding WarningKind = "ENCODING"
	// WarnHeader flags a tolerated single missing header field.
	WarnHeader WarningKind = "HEADER"
)

// Warning is a recoverable, recorded issue returned alongside successful
// output. Nothing is silently discarded without one.
type Warning struct {
	Kind    WarningKind     `json:"kind"`
	Message string          `json:"message"`
	Year    int             `json:"year,omitempty"`   // 0 when not year-scoped
	Amount  decimal.Decimal `json:"amount,omitempty"` // discrepancy for imbalance warnings
}

func (w Warning) String() string {
	if w.Year != 0 {
		return fmt.Sprintf("[%s] FY%d: %s", w.Kind, w.Year, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}

// RowError records a single malformed row. Recoverable: parsing continues,
// and the aggregate rate is checked against the threshold.
type RowError struct {
	Filename string `json:"filename"`
	Row      int    `json:"row"`
	Raw      string `json:"raw"`
	Reason   string `json:"reason"`
}

func (e RowError) String() string {
	return fmt.Sprintf("%s row %d: %s (content: %q)", e.Filename, e.Row, e.Reason, e.Raw)
}

// ParseResult is the outcome of parsing one FEC file.
type ParseResult struct {
	Filename   string
	Entries    []JournalEntry
	RowErrors  []RowError
	Warnings   []Warning
	TotalRows  int
	Encoding   string
	Delimiter  rune
	SourceYear int
}

// SuccessRate is the percentage of data rows successfully parsed.
func (r ParseResult) SuccessRate() float64 {
	if r.TotalRows == 0 {
		return 0
	}
	return float64(r.TotalRows-len(r.RowErrors)) / float64(r.TotalRows) * 100
}

// HasErrors reports whether any row failed to parse.
func (r ParseResult) HasErrors() bool {
	return len(r.RowErrors) > 0
}

// SourceFile is one raw input handed to the analyzer: file bytes plus the
// original filename, which is used for fiscal-year inference.
type SourceFile struct {
	Name    string
	Content []byte
}
