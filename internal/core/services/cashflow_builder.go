package services

import (
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	portssvc "github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/ports/services"
)

// cashFlowBuilder derives indirect-method cash flow statements from
// completed P&L and balance sheet outputs of two consecutive years.
type cashFlowBuilder struct{}

// NewCashFlowBuilder creates a cash flow builder.
func NewCashFlowBuilder() portssvc.CashFlowBuilderSvc {
	return &cashFlowBuilder{}
}

var _ portssvc.CashFlowBuilderSvc = (*cashFlowBuilder)(nil)

// Build derives the cash flow for the current year. Without a prior-year
// balance sheet the statement is marked not applicable: a single year cannot
// support working-capital variations and no figure is fabricated.
func (b *cashFlowBuilder) Build(pl domain.ProfitLoss, prev *domain.BalanceSheet, curr domain.BalanceSheet) (domain.CashFlow, []domain.Warning) {
	if prev == nil {
		return domain.CashFlow{Year: curr.Year, CashEnd: curr.Cash}, []domain.Warning{{
			Kind:    domain.WarnNotApplicable,
			Message: "cash flow needs two consecutive years of data",
			Year:    curr.Year,
		}}
	}

	cf := domain.CashFlow{
		Year:         curr.Year,
		Applicable:   true,
		NetIncome:    pl.NetIncome(),
		Depreciation: pl.Depreciation,

		// Cash impact signs: growth in receivables or inventory consumes
		// cash, growth in payables releases it.
		VarReceivables: curr.Receivables.Sub(prev.Receivables).Neg(),
		VarInventory:   curr.Inventory.Sub(prev.Inventory).Neg(),
		VarPayables:    curr.Payables.Sub(prev.Payables),
		VarOtherWC: curr.OtherReceivables.Sub(prev.OtherReceivables).Neg().
			Add(curr.OtherPayables.Sub(prev.OtherPayables)),

		Capex: curr.FixedAssets.Sub(prev.FixedAssets).Add(pl.Depreciation).Neg(),

		VarDebt:   curr.FinancialDebt.Sub(prev.FinancialDebt),
		VarEquity: curr.Equity.Sub(prev.Equity).Sub(pl.NetIncome()),

		CashStart: prev.Cash,
		CashEnd:   curr.Cash,
	}
	return cf, nil
}

// BuildMultiYear derives cash flows for every year with a matching P&L and
// balance sheet. The first year is always not applicable.
func (b *cashFlowBuilder) BuildMultiYear(pls []domain.ProfitLoss, balances []domain.BalanceSheet) ([]domain.CashFlow, []domain.Warning) {
	balanceByYear := make(map[int]domain.BalanceSheet, len(balances))
	for _, bs := range balances {
		balanceByYear[bs.Year] = bs
	}

	var cashflows []domain.CashFlow
	var warnings []domain.Warning
	var prevYear int
	for i, pl := range pls {
		curr, ok := balanceByYear[pl.Year]
		if !ok {
			continue
		}
		var prev *domain.BalanceSheet
		if i > 0 {
			if bs, ok := balanceByYear[prevYear]; ok {
				prev = &bs
			}
		}
		cf, w := b.Build(pl, prev, curr)
		cashflows = append(cashflows, cf)
		warnings = append(warnings, w...)
		prevYear = pl.Year
	}
	return cashflows, warnings
}
