package domain

import "github.com/shopspring/decimal"

// CashFlow is an indirect-method cash flow statement for one fiscal year.
// It requires the prior year's balance sheet; with a single year of data
// Applicable is false and every figure stays zero rather than being guessed.
type CashFlow struct {
	Year       int  `json:"year"`
	Applicable bool `json:"applicable"`

	NetIncome    decimal.Decimal `json:"netIncome"`
	Depreciation decimal.Decimal `json:"depreciation"`

	// Working-capital variations, signed as cash impact: an increase in
	// receivables consumes cash and is therefore negative here.
	VarReceivables decimal.Decimal `json:"varReceivables"`
	VarInventory   decimal.Decimal `json:"varInventory"`
	VarPayables    decimal.Decimal `json:"varPayables"`
	VarOtherWC     decimal.Decimal `json:"varOtherWC"`

	// Investing
	Capex decimal.Decimal `json:"capex"`

	// Financing
	VarDebt   decimal.Decimal `json:"varDebt"`
	VarEquity decimal.Decimal `json:"varEquity"`

	CashStart decimal.Decimal `json:"cashStart"`
	CashEnd   decimal.Decimal `json:"cashEnd"`
}

// VarBFR is the total working-capital cash impact.
func (c CashFlow) VarBFR() decimal.Decimal {
	return c.VarReceivables.Add(c.VarInventory).Add(c.VarPayables).Add(c.VarOtherWC)
}

// OperatingCF = net income + depreciation - working-capital increase.
func (c CashFlow) OperatingCF() decimal.Decimal {
	return c.NetIncome.Add(c.Depreciation).Add(c.VarBFR())
}

// InvestingCF currently equals capex (simplified indirect method).
func (c CashFlow) InvestingCF() decimal.Decimal {
	return c.Capex
}

// FinancingCF = debt variation + external equity variation.
func (c CashFlow) FinancingCF() decimal.Decimal {
	return c.VarDebt.Add(c.VarEquity)
}

// NetCashChange = operating + investing + financing.
func (c CashFlow) NetCashChange() decimal.Decimal {
	return c.OperatingCF().Add(c.InvestingCF()).Add(c.FinancingCF())
}
