package domain

import "github.com/shopspring/decimal"

// QoEAdjustment is one quality-of-earnings adjustment to EBITDA. Detection
// heuristics only ever produce suggestions; an adjustment affects reported
// figures solely once the caller has accepted it.
type QoEAdjustment struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason,omitempty"`
}

// KPISet carries the per-year due-diligence indicators. Day-count metrics
// are undefined when their denominator is zero (no revenue, no purchases).
type KPISet struct {
	Year int `json:"year"`

	Revenue        decimal.Decimal `json:"revenue"`
	EBITDA         decimal.Decimal `json:"ebitda"`
	EBITDAMargin   Measure         `json:"ebitdaMargin"`
	NetIncome      decimal.Decimal `json:"netIncome"`
	WorkingCapital decimal.Decimal `json:"workingCapital"`
	NetDebt        decimal.Decimal `json:"netDebt"`

	DSO Measure `json:"dso"` // Days Sales Outstanding
	DPO Measure `json:"dpo"` // Days Payable Outstanding
	DIO Measure `json:"dio"` // Days Inventory Outstanding

	Accepted  []QoEAdjustment `json:"accepted,omitempty"`
	Suggested []QoEAdjustment `json:"suggested,omitempty"`
}

// CashConversionCycle = DSO + DIO - DPO; undefined if any component is.
func (k KPISet) CashConversionCycle() Measure {
	if !k.DSO.Defined || !k.DIO.Defined || !k.DPO.Defined {
		return UndefinedMeasure()
	}
	return DefinedMeasure(k.DSO.Value.Add(k.DIO.Value).Sub(k.DPO.Value))
}

// AdjustedEBITDA is EBITDA plus accepted adjustments only. Suggestions are
// deliberately excluded.
func (k KPISet) AdjustedEBITDA() decimal.Decimal {
	total := k.EBITDA
	for _, adj := range k.Accepted {
		total = total.Add(adj.Amount)
	}
	return total
}
