package domain

import "github.com/shopspring/decimal"

// BridgeDelta is one named step of an EBITDA bridge. Cost deltas are signed
// by profit impact: a cost increase appears as a negative delta.
type BridgeDelta struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// VarianceReport is the EBITDA bridge between two consecutive fiscal years.
// Invariant: the bridge deltas sum exactly to EBITDADelta.
type VarianceReport struct {
	FromYear    int             `json:"fromYear"`
	ToYear      int             `json:"toYear"`
	EBITDAStart decimal.Decimal `json:"ebitdaStart"`
	EBITDAEnd   decimal.Decimal `json:"ebitdaEnd"`
	Bridge      []BridgeDelta   `json:"bridge"`
}

// EBITDADelta is the total movement the bridge must reconcile to.
func (v VarianceReport) EBITDADelta() decimal.Decimal {
	return v.EBITDAEnd.Sub(v.EBITDAStart)
}

// BridgeTotal sums the bridge deltas.
func (v VarianceReport) BridgeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, d := range v.Bridge {
		total = total.Add(d.Value)
	}
	return total
}

// AccountDetail is one account's aggregated movements for a year.
type AccountDetail struct {
	Account  string          `json:"account"`
	Label    string          `json:"label"`
	Category string          `json:"category"`
	Debit    decimal.Decimal `json:"debit"`
	Credit   decimal.Decimal `json:"credit"`
	Balance  decimal.Decimal `json:"balance"`
}

// CategoryTotal aggregates a classification category for a year.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	Accounts []string        `json:"accounts"`
}
