package services

import (
	"fmt"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	portssvc "github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/ports/services"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/mapper"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// balanceTolerance bounds the accepted balance-sheet equality discrepancy.
var balanceTolerance = decimal.RequireFromString("0.01")

// balanceBuilder computes cumulative closing balances. Balances sum every
// movement up to and including each fiscal year-end, grouped by effective
// year so multi-year FEC sets cumulate correctly.
type balanceBuilder struct {
	mapper *mapper.AccountMapper
}

// NewBalanceBuilder creates a balance sheet builder bound to a mapper.
func NewBalanceBuilder(m *mapper.AccountMapper) portssvc.BalanceBuilderSvc {
	return &balanceBuilder{mapper: m}
}

var _ portssvc.BalanceBuilderSvc = (*balanceBuilder)(nil)

// Build computes the balance sheet at the given year end.
func (b *balanceBuilder) Build(entries []domain.ClassifiedEntry, year int, trace *domain.TraceIndex) (domain.BalanceSheet, []domain.Warning) {
	aggs := make(map[string]*lineAgg)
	agg := func(cat string) *lineAgg {
		a, ok := aggs[cat]
		if !ok {
			a = &lineAgg{}
			aggs[cat] = a
		}
		return a
	}

	matched := 0
	for _, ce := range entries {
		if ce.Entry.EffectiveYear() > year {
			continue
		}
		cat, ok := ce.Category(domain.TaxonomyBalance)
		if !ok {
			continue
		}
		amount := accounting.BalanceAmount(ce.Entry, b.mapper.IsDebitPositive(ce.Entry.AccountNum))
		agg(cat).add(ce.Index, amount)
		matched++
	}

	bs := domain.BalanceSheet{
		Year:             year,
		FixedAssets:      agg(mapper.CategoryFixedAssets).total,
		Inventory:        agg(mapper.CategoryInventory).total,
		Receivables:      agg(mapper.CategoryReceivables).total,
		OtherReceivables: agg(mapper.CategoryOtherReceivables).total,
		Cash:             agg(mapper.CategoryCash).total,
		Equity:           agg(mapper.CategoryEquity).total,
		Provisions:       agg(mapper.CategoryProvisions).total,
		FinancialDebt:    agg(mapper.CategoryFinancialDebt).total,
		Payables:         agg(mapper.CategoryPayables).total,
		OtherPayables:    agg(mapper.CategoryOtherPayables).total,
	}

	var warnings []domain.Warning
	if matched == 0 {
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarnMissingAccounts,
			Message: "no balance sheet accounts present; statement is zero-valued",
			Year:    year,
		})
	}
	if imbalance := bs.Imbalance(); imbalance.Abs().GreaterThan(balanceTolerance) {
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarnImbalance,
			Message: fmt.Sprintf("balance sheet equality off by %s for %s", imbalance.String(), yearLabel(year)),
			Year:    year,
			Amount:  imbalance,
		})
	}

	if trace != nil {
		for cat, a := range aggs {
			a.record("balance", cat, "cumulative_sum("+cat+")", year, trace)
		}
		assets := combine(
			[]*lineAgg{
				aggs[mapper.CategoryFixedAssets], aggs[mapper.CategoryInventory],
				aggs[mapper.CategoryReceivables], aggs[mapper.CategoryOtherReceivables],
				aggs[mapper.CategoryCash],
			},
			[]bool{false, false, false, false, false},
		)
		assets.record("balance", "total_assets", "fixed_assets + inventory + receivables + other_receivables + cash", year, trace)

		liabilities := combine(
			[]*lineAgg{
				aggs[mapper.CategoryEquity], aggs[mapper.CategoryProvisions],
				aggs[mapper.CategoryFinancialDebt], aggs[mapper.CategoryPayables],
				aggs[mapper.CategoryOtherPayables],
			},
			[]bool{false, false, false, false, false},
		)
		liabilities.record("balance", "total_liabilities", "equity + provisions + financial_debt + payables + other_payables", year, trace)

		wc := combine(
			[]*lineAgg{
				aggs[mapper.CategoryInventory], aggs[mapper.CategoryReceivables],
				aggs[mapper.CategoryPayables],
			},
			[]bool{false, false, true},
		)
		wc.record("balance", "working_capital", "inventory + receivables - payables", year, trace)

		netDebt := combine(
			[]*lineAgg{aggs[mapper.CategoryFinancialDebt], aggs[mapper.CategoryCash]},
			[]bool{false, true},
		)
		netDebt.record("balance", "net_debt", "financial_debt - cash", year, trace)
	}

	return bs, warnings
}

// BuildMultiYear builds a balance sheet per distinct effective year, ascending.
func (b *balanceBuilder) BuildMultiYear(entries []domain.ClassifiedEntry, trace *domain.TraceIndex) ([]domain.BalanceSheet, []domain.Warning) {
	years := effectiveYears(entries)
	balances := make([]domain.BalanceSheet, 0, len(years))
	var warnings []domain.Warning
	for _, year := range years {
		bs, w := b.Build(entries, year, trace)
		balances = append(balances, bs)
		warnings = append(warnings, w...)
	}
	return balances, warnings
}

// ComputeBFREvolution derives the working-capital evolution across years.
func (b *balanceBuilder) ComputeBFREvolution(balances []domain.BalanceSheet) []domain.BFRSnapshot {
	snapshots := make([]domain.BFRSnapshot, 0, len(balances))
	for i, bs := range balances {
		snap := domain.BFRSnapshot{
			Year:           bs.Year,
			Inventory:      bs.Inventory,
			Receivables:    bs.Receivables,
			Payables:       bs.Payables,
			WorkingCapital: bs.WorkingCapital(),
		}
		if i > 0 {
			snap.Delta = bs.WorkingCapital().Sub(balances[i-1].WorkingCapital())
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots
}
