package domain

import "github.com/shopspring/decimal"

// BalanceSheet holds cumulative closing balances at fiscal year end.
// Totals and derived figures are methods over the stored category balances.
type BalanceSheet struct {
	Year int `json:"year"`

	// Actif
	FixedAssets      decimal.Decimal `json:"fixedAssets"`      // Immobilisations (classe 2)
	Inventory        decimal.Decimal `json:"inventory"`        // Stocks (classe 3)
	Receivables      decimal.Decimal `json:"receivables"`      // Créances clients (41)
	OtherReceivables decimal.Decimal `json:"otherReceivables"` // Autres créances
	Cash             decimal.Decimal `json:"cash"`             // Trésorerie (classe 5)

	// Passif
	Equity        decimal.Decimal `json:"equity"`        // Capitaux propres (classe 1)
	Provisions    decimal.Decimal `json:"provisions"`    // Provisions (15)
	FinancialDebt decimal.Decimal `json:"financialDebt"` // Dettes financières (16, 17)
	Payables      decimal.Decimal `json:"payables"`      // Dettes fournisseurs (40)
	OtherPayables decimal.Decimal `json:"otherPayables"` // Autres dettes
}

// TotalAssets is the actif total.
func (b BalanceSheet) TotalAssets() decimal.Decimal {
	return b.FixedAssets.Add(b.Inventory).Add(b.Receivables).Add(b.OtherReceivables).Add(b.Cash)
}

// TotalLiabilities is the passif total, equity included.
func (b BalanceSheet) TotalLiabilities() decimal.Decimal {
	return b.Equity.Add(b.Provisions).Add(b.FinancialDebt).Add(b.Payables).Add(b.OtherPayables)
}

// WorkingCapital (BFR) = inventory + trade receivables - trade payables.
func (b BalanceSheet) WorkingCapital() decimal.Decimal {
	return b.Inventory.Add(b.Receivables).Sub(b.Payables)
}

// NetDebt = financial debt - cash.
func (b BalanceSheet) NetDebt() decimal.Decimal {
	return b.FinancialDebt.Sub(b.Cash)
}

// Imbalance is TotalAssets - TotalLiabilities. A well-formed ledger keeps
// this within tolerance; a violation surfaces as a warning with the amount.
func (b BalanceSheet) Imbalance() decimal.Decimal {
	return b.TotalAssets().Sub(b.TotalLiabilities())
}

// BFRSnapshot is one row of the working-capital evolution table.
type BFRSnapshot struct {
	Year           int             `json:"year"`
	Inventory      decimal.Decimal `json:"inventory"`
	Receivables    decimal.Decimal `json:"receivables"`
	Payables       decimal.Decimal `json:"payables"`
	WorkingCapital decimal.Decimal `json:"workingCapital"`
	Delta          decimal.Decimal `json:"delta"` // vs prior year; zero for the first year
}
