package domain_test

import (
	"testing"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestKPISet_CashConversionCycle(t *testing.T) {
	k := domain.KPISet{
		DSO: domain.DefinedMeasure(dec("45")),
		DIO: domain.DefinedMeasure(dec("30")),
		DPO: domain.DefinedMeasure(dec("60")),
	}
	ccc := k.CashConversionCycle()
	assert.True(t, ccc.Defined)
	assert.True(t, ccc.Value.Equal(dec("15")))

	k.DIO = domain.UndefinedMeasure()
	assert.False(t, k.CashConversionCycle().Defined,
		"any undefined component makes the cycle undefined")
}

func TestKPISet_AdjustedEBITDA(t *testing.T) {
	k := domain.KPISet{
		EBITDA: dec("300000"),
		Accepted: []domain.QoEAdjustment{
			{Label: "owner salary normalization", Amount: dec("25000")},
		},
		Suggested: []domain.QoEAdjustment{
			{Label: "exceptional result normalization", Amount: dec("-90000")},
		},
	}

	// Suggestions never move the figure; only accepted adjustments do.
	assert.True(t, k.AdjustedEBITDA().Equal(dec("325000")))

	k.Accepted = nil
	assert.True(t, k.AdjustedEBITDA().Equal(dec("300000")))
}
