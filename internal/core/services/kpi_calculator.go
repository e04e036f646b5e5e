package services

import (
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	portssvc "github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// DefaultVATRate is the French standard rate as a multiplier. DSO and DPO
// compare tax-inclusive balance sheet positions against tax-exclusive P&L
// flows, so the flows must be grossed up.
var DefaultVATRate = decimal.RequireFromString("1.20")

// daysInYear is the day basis for the liquidity-cycle metrics.
var daysInYear = decimal.NewFromInt(365)

// kpiCalculator derives the due-diligence indicator set from completed
// statements. The VAT rate and accepted QoE adjustments are injected
// configuration, never hardcoded into the formulas.
type kpiCalculator struct {
	vatRate  decimal.Decimal
	accepted map[int][]domain.QoEAdjustment
	detector *qoeDetector
}

// KPIOption configures the calculator.
type KPIOption func(*kpiCalculator)

// WithVATRate overrides the VAT multiplier used for DSO/DPO.
func WithVATRate(rate decimal.Decimal) KPIOption {
	return func(c *kpiCalculator) {
		c.vatRate = rate
	}
}

// WithAcceptedAdjustments injects the caller-approved QoE adjustments per
// year. Only these ever reach AdjustedEBITDA.
func WithAcceptedAdjustments(accepted map[int][]domain.QoEAdjustment) KPIOption {
	return func(c *kpiCalculator) {
		c.accepted = accepted
	}
}

// NewKPICalculator creates a calculator with the default VAT rate and no
// accepted adjustments.
func NewKPICalculator(options ...KPIOption) portssvc.KPICalculatorSvc {
	c := &kpiCalculator{
		vatRate:  DefaultVATRate,
		accepted: map[int][]domain.QoEAdjustment{},
		detector: newQoEDetector(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

var _ portssvc.KPICalculatorSvc = (*kpiCalculator)(nil)

// Calculate derives the KPI set for one year from its P&L and balance sheet.
func (c *kpiCalculator) Calculate(pl domain.ProfitLoss, balance domain.BalanceSheet) domain.KPISet {
	kpis := domain.KPISet{
		Year:           pl.Year,
		Revenue:        pl.Revenue,
		EBITDA:         pl.EBITDA(),
		EBITDAMargin:   pl.EBITDAMargin(),
		NetIncome:      pl.NetIncome(),
		WorkingCapital: balance.WorkingCapital(),
		NetDebt:        balance.NetDebt(),
		Accepted:       c.accepted[pl.Year],
	}

	// DSO = receivables over VAT-inclusive revenue, times 365.
	if pl.Revenue.IsPositive() {
		revenueTTC := pl.Revenue.Mul(c.vatRate)
		kpis.DSO = domain.DefinedMeasure(balance.Receivables.Div(revenueTTC).Mul(daysInYear))
	}

	// DPO = payables over VAT-inclusive purchases, times 365.
	if pl.Purchases.IsPositive() {
		purchasesTTC := pl.Purchases.Mul(c.vatRate)
		kpis.DPO = domain.DefinedMeasure(balance.Payables.Div(purchasesTTC).Mul(daysInYear))
	}

	// DIO = inventory over COGS, times 365.
	if pl.Purchases.IsPositive() {
		kpis.DIO = domain.DefinedMeasure(balance.Inventory.Div(pl.Purchases).Mul(daysInYear))
	}

	return kpis
}

// CalculateMultiYear matches statements by year and derives KPI sets for
// every year present in both collections.
func (c *kpiCalculator) CalculateMultiYear(pls []domain.ProfitLoss, balances []domain.BalanceSheet) []domain.KPISet {
	balanceByYear := make(map[int]domain.BalanceSheet, len(balances))
	for _, bs := range balances {
		balanceByYear[bs.Year] = bs
	}

	var out []domain.KPISet
	for _, pl := range pls {
		balance, ok := balanceByYear[pl.Year]
		if !ok {
			continue
		}
		out = append(out, c.Calculate(pl, balance))
	}
	return out
}

// SuggestAdjustments runs the QoE heuristics over one year's entries.
// Suggestions are advisory only.
func (c *kpiCalculator) SuggestAdjustments(entries []domain.ClassifiedEntry, year int) []domain.QoEAdjustment {
	return c.detector.suggest(entries, year)
}
