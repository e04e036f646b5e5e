package domain

import "time"

// StatementBundle is the complete output of one analysis run: parsed and
// classified entries, every per-year statement, the trace index, and the
// accumulated warnings and row errors. Consumers read it; any recomputation
// (changed VAT rate, changed rule table) produces a new bundle.
type StatementBundle struct {
	BundleID    string    `json:"bundleID"`
	GeneratedAt time.Time `json:"generatedAt"`
	SourceFiles []string  `json:"sourceFiles"`

	Entries    []JournalEntry    `json:"entries"`
	Classified []ClassifiedEntry `json:"classified"`
	Years      []int             `json:"years"` // ascending

	ProfitLosses []ProfitLoss       `json:"profitLosses"`
	Balances     []BalanceSheet     `json:"balances"`
	CashFlows    []CashFlow         `json:"cashFlows"`
	KPIs         []KPISet           `json:"kpis"`
	Monthly      []MonthlyBreakdown `json:"monthly"`
	Variations   []PLVariation      `json:"variations"`
	Variances    []VarianceReport   `json:"variances"`
	BFREvolution []BFRSnapshot      `json:"bfrEvolution"`

	Trace     *TraceIndex `json:"-"`
	RowErrors []RowError  `json:"rowErrors,omitempty"`
	Warnings  []Warning   `json:"warnings,omitempty"`
}

// PLFor returns the P&L for a year.
func (b *StatementBundle) PLFor(year int) (ProfitLoss, bool) {
	for _, pl := range b.ProfitLosses {
		if pl.Year == year {
			return pl, true
		}
	}
	return ProfitLoss{}, false
}

// BalanceFor returns the balance sheet for a year.
func (b *StatementBundle) BalanceFor(year int) (BalanceSheet, bool) {
	for _, bs := range b.Balances {
		if bs.Year == year {
			return bs, true
		}
	}
	return BalanceSheet{}, false
}

// CashFlowFor returns the cash flow statement for a year.
func (b *StatementBundle) CashFlowFor(year int) (CashFlow, bool) {
	for _, cf := range b.CashFlows {
		if cf.Year == year {
			return cf, true
		}
	}
	return CashFlow{}, false
}

// KPIFor returns the KPI set for a year.
func (b *StatementBundle) KPIFor(year int) (KPISet, bool) {
	for _, k := range b.KPIs {
		if k.Year == year {
			return k, true
		}
	}
	return KPISet{}, false
}
