package services

import (
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	portssvc "github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/ports/services"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/mapper"
)

// varianceBuilder decomposes the EBITDA movement between two years into a
// bridge of category deltas. The bridge is exhaustive over the EBITDA
// components, so its deltas always sum to the EBITDA delta exactly.
type varianceBuilder struct{}

// NewVarianceBuilder creates an EBITDA bridge builder.
func NewVarianceBuilder() portssvc.VarianceBuilderSvc {
	return &varianceBuilder{}
}

var _ portssvc.VarianceBuilderSvc = (*varianceBuilder)(nil)

// Build decomposes the movement from prev to curr. Charge categories enter
// with their sign flipped: a cost increase is a negative bridge step.
func (b *varianceBuilder) Build(prev, curr domain.ProfitLoss) domain.VarianceReport {
	return domain.VarianceReport{
		FromYear:    prev.Year,
		ToYear:      curr.Year,
		EBITDAStart: prev.EBITDA(),
		EBITDAEnd:   curr.EBITDA(),
		Bridge: []domain.BridgeDelta{
			{Label: mapper.CategoryRevenue, Value: curr.Revenue.Sub(prev.Revenue)},
			{Label: mapper.CategoryOtherRevenue, Value: curr.OtherRevenue.Sub(prev.OtherRevenue)},
			{Label: mapper.CategoryPurchases, Value: curr.Purchases.Sub(prev.Purchases).Neg()},
			{Label: mapper.CategoryExternalCharges, Value: curr.ExternalCharges.Sub(prev.ExternalCharges).Neg()},
			{Label: mapper.CategoryTaxes, Value: curr.Taxes.Sub(prev.Taxes).Neg()},
			{Label: mapper.CategoryPersonnel, Value: curr.Personnel.Sub(prev.Personnel).Neg()},
			{Label: mapper.CategoryOtherCharges, Value: curr.OtherCharges.Sub(prev.OtherCharges).Neg()},
		},
	}
}

// BuildMultiYear builds one bridge per consecutive year pair.
func (b *varianceBuilder) BuildMultiYear(pls []domain.ProfitLoss) []domain.VarianceReport {
	if len(pls) < 2 {
		return nil
	}
	reports := make([]domain.VarianceReport, 0, len(pls)-1)
	for i := 1; i < len(pls); i++ {
		reports = append(reports, b.Build(pls[i-1], pls[i]))
	}
	return reports
}
