package dto

import (
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SynthesisRowResponse represents one fiscal year in the synthesis table.
// Measures that cannot be computed (zero base, missing data) are null rather
// than zero.
type SynthesisRowResponse struct {
	Year           int              `json:"year"`
	Revenue        decimal.Decimal  `json:"revenue"`
	RevenueGrowth  *decimal.Decimal `json:"revenueGrowthPct,omitempty"`
	EBITDA         decimal.Decimal  `json:"ebitda"`
	EBITDAMargin   *decimal.Decimal `json:"ebitdaMarginPct,omitempty"`
	AdjustedEBITDA decimal.Decimal  `json:"adjustedEBITDA"`
	NetIncome      decimal.Decimal  `json:"netIncome"`
	WorkingCapital decimal.Decimal  `json:"workingCapital"`
	NetDebt        decimal.Decimal  `json:"netDebt"`
	DSO            *decimal.Decimal `json:"dsoDays,omitempty"`
	DPO            *decimal.Decimal `json:"dpoDays,omitempty"`
	DIO            *decimal.Decimal `json:"dioDays,omitempty"`
	CCC            *decimal.Decimal `json:"cccDays,omitempty"`
	OperatingCF    *decimal.Decimal `json:"operatingCF,omitempty"`
}

// SynthesisResponse represents the multi-year synthesis report.
type SynthesisResponse struct {
	BundleID string                 `json:"bundleID"`
	Rows     []SynthesisRowResponse `json:"rows"`
}

// measurePtr converts a measure to a nullable value.
func measurePtr(m domain.Measure) *decimal.Decimal {
	if !m.Defined {
		return nil
	}
	v := m.Value
	return &v
}

// ToSynthesisResponse converts a statement bundle to the synthesis report.
func ToSynthesisResponse(bundle *domain.StatementBundle) SynthesisResponse {
	response := SynthesisResponse{
		BundleID: bundle.BundleID,
		Rows:     make([]SynthesisRowResponse, 0, len(bundle.Years)),
	}

	growthByYear := make(map[int]domain.Measure, len(bundle.Variations))
	for _, v := range bundle.Variations {
		growthByYear[v.ToYear] = v.RevenuePct
	}

	for _, year := range bundle.Years {
		kpi, ok := bundle.KPIFor(year)
		if !ok {
			continue
		}
		row := SynthesisRowResponse{
			Year:           year,
			Revenue:        kpi.Revenue,
			EBITDA:         kpi.EBITDA,
			EBITDAMargin:   measurePtr(kpi.EBITDAMargin),
			AdjustedEBITDA: kpi.AdjustedEBITDA(),
			NetIncome:      kpi.NetIncome,
			WorkingCapital: kpi.WorkingCapital,
			NetDebt:        kpi.NetDebt,
			DSO:            measurePtr(kpi.DSO),
			DPO:            measurePtr(kpi.DPO),
			DIO:            measurePtr(kpi.DIO),
			CCC:            measurePtr(kpi.CashConversionCycle()),
		}
		if growth, ok := growthByYear[year]; ok {
			row.RevenueGrowth = measurePtr(growth)
		}
		if cf, ok := bundle.CashFlowFor(year); ok && cf.Applicable {
			op := cf.OperatingCF()
			row.OperatingCF = &op
		}
		response.Rows = append(response.Rows, row)
	}
	return response
}
