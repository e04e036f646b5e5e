package domain

import "github.com/shopspring/decimal"

// ProfitLoss is the P&L statement for one fiscal year. Only base category
// totals are stored; every aggregate (EBITDA, EBIT, net income, margins) is
// recomputed from them, so a stored value can never drift from its formula.
type ProfitLoss struct {
	Year int `json:"year"`

	// Revenue
	Revenue      decimal.Decimal `json:"revenue"`      // Chiffre d'affaires (70)
	OtherRevenue decimal.Decimal `json:"otherRevenue"` // Autres produits (74, 75, 78, 79)

	// Operating charges
	Purchases       decimal.Decimal `json:"purchases"`       // Achats (60)
	ExternalCharges decimal.Decimal `json:"externalCharges"` // Services extérieurs (61, 62)
	Taxes           decimal.Decimal `json:"taxes"`           // Impôts et taxes (63)
	Personnel       decimal.Decimal `json:"personnel"`       // Charges de personnel (64)
	OtherCharges    decimal.Decimal `json:"otherCharges"`    // Autres charges (65)
	Depreciation    decimal.Decimal `json:"depreciation"`    // Dotations aux amortissements (68)

	// Financial
	FinancialIncome  decimal.Decimal `json:"financialIncome"`  // Produits financiers (76)
	FinancialExpense decimal.Decimal `json:"financialExpense"` // Charges financières (66)

	// Exceptional
	ExceptionalIncome  decimal.Decimal `json:"exceptionalIncome"`  // Produits exceptionnels (77)
	ExceptionalExpense decimal.Decimal `json:"exceptionalExpense"` // Charges exceptionnelles (67)

	// Tax
	IncomeTax decimal.Decimal `json:"incomeTax"` // Impôt sur les sociétés (69)
}

// Production is total output: revenue plus other operating income.
func (p ProfitLoss) Production() decimal.Decimal {
	return p.Revenue.Add(p.OtherRevenue)
}

// TotalCharges is operating charges before depreciation.
func (p ProfitLoss) TotalCharges() decimal.Decimal {
	return p.Purchases.Add(p.ExternalCharges).Add(p.Taxes).Add(p.Personnel).Add(p.OtherCharges)
}

// EBITDA = Production - TotalCharges.
func (p ProfitLoss) EBITDA() decimal.Decimal {
	return p.Production().Sub(p.TotalCharges())
}

// EBIT = EBITDA - Depreciation.
func (p ProfitLoss) EBIT() decimal.Decimal {
	return p.EBITDA().Sub(p.Depreciation)
}

// FinancialResult = financial income - financial expense.
func (p ProfitLoss) FinancialResult() decimal.Decimal {
	return p.FinancialIncome.Sub(p.FinancialExpense)
}

// ExceptionalResult = exceptional income - exceptional expense.
func (p ProfitLoss) ExceptionalResult() decimal.Decimal {
	return p.ExceptionalIncome.Sub(p.ExceptionalExpense)
}

// NetIncome = EBIT + financial result + exceptional result - income tax.
func (p ProfitLoss) NetIncome() decimal.Decimal {
	return p.EBIT().Add(p.FinancialResult()).Add(p.ExceptionalResult()).Sub(p.IncomeTax)
}

// EBITDAMargin is EBITDA over production, in percent. Undefined when
// production is zero.
func (p ProfitLoss) EBITDAMargin() Measure {
	return PercentOf(p.EBITDA(), p.Production())
}

// PLVariation is the year-over-year movement between two consecutive P&Ls.
// Percentage fields are undefined when the base-year value is zero.
type PLVariation struct {
	FromYear int `json:"fromYear"`
	ToYear   int `json:"toYear"`

	RevenueDelta   decimal.Decimal `json:"revenueDelta"`
	RevenuePct     Measure         `json:"revenuePct"`
	EBITDADelta    decimal.Decimal `json:"ebitdaDelta"`
	EBITDAPct      Measure         `json:"ebitdaPct"`
	NetIncomeDelta decimal.Decimal `json:"netIncomeDelta"`
	NetIncomePct   Measure         `json:"netIncomePct"`
}
