package services

import (
	"fmt"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	portssvc "github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/ports/services"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/mapper"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/utils/accounting"
)

// monthlyCostCategories are the operating charge categories bucketed into the
// monthly cost series. Depreciation and below-EBITDA lines stay out so the
// monthly EBITDA matches the annual definition.
var monthlyCostCategories = map[string]bool{
	mapper.CategoryPurchases:       true,
	mapper.CategoryExternalCharges: true,
	mapper.CategoryTaxes:           true,
	mapper.CategoryPersonnel:       true,
	mapper.CategoryOtherCharges:    true,
}

var monthlyRevenueCategories = map[string]bool{
	mapper.CategoryRevenue:      true,
	mapper.CategoryOtherRevenue: true,
}

// monthlyBuilder buckets a fiscal year's postings by the calendar month of
// their entry date.
type monthlyBuilder struct{}

// NewMonthlyBuilder creates a monthly breakdown builder.
func NewMonthlyBuilder() portssvc.MonthlyBuilderSvc {
	return &monthlyBuilder{}
}

var _ portssvc.MonthlyBuilderSvc = (*monthlyBuilder)(nil)

// Build buckets one effective year's operating postings by month. Postings
// whose entry date falls outside the effective year keep their real calendar
// month; only the year grouping follows the effective year.
func (b *monthlyBuilder) Build(entries []domain.ClassifiedEntry, year int) (domain.MonthlyBreakdown, []domain.Warning) {
	mb := domain.MonthlyBreakdown{Year: year}
	matched := 0
	for _, ce := range entries {
		if ce.Entry.EffectiveYear() != year {
			continue
		}
		cat, ok := ce.Category(domain.TaxonomyPL)
		if !ok {
			continue
		}
		month := int(ce.Entry.EntryDate.Month()) - 1
		switch {
		case monthlyRevenueCategories[cat]:
			mb.Revenue[month] = mb.Revenue[month].Add(accounting.PLAmount(ce.Entry))
			matched++
		case monthlyCostCategories[cat]:
			mb.Costs[month] = mb.Costs[month].Add(accounting.PLAmount(ce.Entry))
			matched++
		}
	}

	var warnings []domain.Warning
	if matched == 0 {
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarnMissingAccounts,
			Message: fmt.Sprintf("no operating postings for %s; monthly breakdown is zero-valued", yearLabel(year)),
			Year:    year,
		})
	}
	return mb, warnings
}

// BuildMultiYear builds one breakdown per distinct effective year, ascending.
func (b *monthlyBuilder) BuildMultiYear(entries []domain.ClassifiedEntry) []domain.MonthlyBreakdown {
	years := effectiveYears(entries)
	breakdowns := make([]domain.MonthlyBreakdown, 0, len(years))
	for _, year := range years {
		mb, _ := b.Build(entries, year)
		breakdowns = append(breakdowns, mb)
	}
	return breakdowns
}
