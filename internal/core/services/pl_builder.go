package services

import (
	"fmt"
	"sort"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	portssvc "github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/ports/services"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/mapper"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/utils/accounting"
)

// plBuilder aggregates classified entries into P&L statements. Builders are
// pure over their inputs: the same entry set and rule table always produce
// the same statement.
type plBuilder struct {
	mapper *mapper.AccountMapper
}

// NewPLBuilder creates a P&L builder bound to a classification mapper.
func NewPLBuilder(m *mapper.AccountMapper) portssvc.PLBuilderSvc {
	return &plBuilder{mapper: m}
}

var _ portssvc.PLBuilderSvc = (*plBuilder)(nil)

// Build aggregates one effective year's entries by P&L category and records
// lineage for base and derived lines.
func (b *plBuilder) Build(entries []domain.ClassifiedEntry, year int, trace *domain.TraceIndex) (domain.ProfitLoss, []domain.Warning) {
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
		if ce.Entry.EffectiveYear() != year {
			continue
		}
		cat, ok := ce.Category(domain.TaxonomyPL)
		if !ok {
			continue
		}
		agg(cat).add(ce.Index, accounting.PLAmount(ce.Entry))
		matched++
	}

	pl := domain.ProfitLoss{
		Year:               year,
		Revenue:            agg(mapper.CategoryRevenue).total,
		OtherRevenue:       agg(mapper.CategoryOtherRevenue).total,
		Purchases:          agg(mapper.CategoryPurchases).total,
		ExternalCharges:    agg(mapper.CategoryExternalCharges).total,
		Taxes:              agg(mapper.CategoryTaxes).total,
		Personnel:          agg(mapper.CategoryPersonnel).total,
		OtherCharges:       agg(mapper.CategoryOtherCharges).total,
		Depreciation:       agg(mapper.CategoryDepreciation).total,
		FinancialIncome:    agg(mapper.CategoryFinancialIncome).total,
		FinancialExpense:   agg(mapper.CategoryFinancialExpense).total,
		ExceptionalIncome:  agg(mapper.CategoryExceptionalIncome).total,
		ExceptionalExpense: agg(mapper.CategoryExceptionalExpense).total,
		IncomeTax:          agg(mapper.CategoryIncomeTax).total,
	}

	var warnings []domain.Warning
	if matched == 0 {
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarnMissingAccounts,
			Message: "no P&L accounts present; statement is zero-valued",
			Year:    year,
		})
	} else if len(agg(mapper.CategoryRevenue).ids) == 0 {
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarnMissingAccounts,
			Message: "no revenue accounts present",
			Year:    year,
		})
	}

	b.recordTraces(aggs, pl, trace)
	return pl, warnings
}

func (b *plBuilder) recordTraces(aggs map[string]*lineAgg, pl domain.ProfitLoss, trace *domain.TraceIndex) {
	if trace == nil {
		return
	}
	for cat, a := range aggs {
		a.record("pl", cat, "sum("+cat+")", pl.Year, trace)
	}

	revenueParts := []*lineAgg{
		aggs[mapper.CategoryRevenue], aggs[mapper.CategoryOtherRevenue],
	}
	chargeParts := []*lineAgg{
		aggs[mapper.CategoryPurchases], aggs[mapper.CategoryExternalCharges],
		aggs[mapper.CategoryTaxes], aggs[mapper.CategoryPersonnel],
		aggs[mapper.CategoryOtherCharges],
	}

	ebitda := combine(
		append(append([]*lineAgg{}, revenueParts...), chargeParts...),
		[]bool{false, false, true, true, true, true, true},
	)
	ebitda.record("pl", "ebitda", "production - total_charges", pl.Year, trace)

	ebit := combine(
		[]*lineAgg{ebitda, aggs[mapper.CategoryDepreciation]},
		[]bool{false, true},
	)
	ebit.record("pl", "ebit", "ebitda - depreciation", pl.Year, trace)

	netIncome := combine(
		[]*lineAgg{
			ebit,
			aggs[mapper.CategoryFinancialIncome], aggs[mapper.CategoryFinancialExpense],
			aggs[mapper.CategoryExceptionalIncome], aggs[mapper.CategoryExceptionalExpense],
			aggs[mapper.CategoryIncomeTax],
		},
		[]bool{false, false, true, false, true, true},
	)
	netIncome.record("pl", "net_income", "ebit + financial_result + exceptional_result - income_tax", pl.Year, trace)
}

// BuildMultiYear builds one statement per distinct effective year, ascending.
func (b *plBuilder) BuildMultiYear(entries []domain.ClassifiedEntry, trace *domain.TraceIndex) ([]domain.ProfitLoss, []domain.Warning) {
	years := effectiveYears(entries)
	pls := make([]domain.ProfitLoss, 0, len(years))
	var warnings []domain.Warning
	for _, year := range years {
		pl, w := b.Build(entries, year, trace)
		pls = append(pls, pl)
		warnings = append(warnings, w...)
	}
	return pls, warnings
}

// ComputeVariations derives the year-over-year movement between consecutive
// statements. A zero base year makes the percentage undefined, never 0%.
func (b *plBuilder) ComputeVariations(pls []domain.ProfitLoss) []domain.PLVariation {
	if len(pls) < 2 {
		return nil
	}
	variations := make([]domain.PLVariation, 0, len(pls)-1)
	for i := 1; i < len(pls); i++ {
		prev, curr := pls[i-1], pls[i]
		variations = append(variations, domain.PLVariation{
			FromYear:       prev.Year,
			ToYear:         curr.Year,
			RevenueDelta:   curr.Revenue.Sub(prev.Revenue),
			RevenuePct:     domain.PercentChange(prev.Revenue, curr.Revenue),
			EBITDADelta:    curr.EBITDA().Sub(prev.EBITDA()),
			EBITDAPct:      domain.PercentChange(prev.EBITDA(), curr.EBITDA()),
			NetIncomeDelta: curr.NetIncome().Sub(prev.NetIncome()),
			NetIncomePct:   domain.PercentChange(prev.NetIncome(), curr.NetIncome()),
		})
	}
	return variations
}

// effectiveYears lists the distinct effective years, ascending.
func effectiveYears(entries []domain.ClassifiedEntry) []int {
	seen := make(map[int]bool)
	for _, ce := range entries {
		seen[ce.Entry.EffectiveYear()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// yearLabel formats a fiscal year for messages.
func yearLabel(year int) string {
	return fmt.Sprintf("FY%d", year)
}
