package services_test

import (
	"testing"
	"time"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKPICalculator_DayCountMetrics(t *testing.T) {
	calc := services.NewKPICalculator()
	pl := domain.ProfitLoss{
		Year:      2023,
		Revenue:   dec("1200000"),
		Purchases: dec("600000"),
	}
	balance := domain.BalanceSheet{
		Year:        2023,
		Receivables: dec("240000"),
		Payables:    dec("120000"),
		Inventory:   dec("60000"),
	}

	kpis := calc.Calculate(pl, balance)

	// DSO = 240000 / (1200000 * 1.20) * 365 = 60.83...
	require.True(t, kpis.DSO.Defined)
	assert.True(t, kpis.DSO.Value.Round(2).Equal(dec("60.83")), "got %s", kpis.DSO.Value)

	// DPO = 120000 / (600000 * 1.20) * 365 = 60.83...
	require.True(t, kpis.DPO.Defined)
	assert.True(t, kpis.DPO.Value.Round(2).Equal(dec("60.83")))

	// DIO = 60000 / 600000 * 365 = 36.5 (COGS based, no VAT gross-up)
	require.True(t, kpis.DIO.Defined)
	assert.True(t, kpis.DIO.Value.Equal(dec("36.5")))

	ccc := kpis.CashConversionCycle()
	require.True(t, ccc.Defined)
	assert.True(t, ccc.Value.Equal(kpis.DSO.Value.Add(kpis.DIO.Value).Sub(kpis.DPO.Value)))
}

func TestKPICalculator_UndefinedOnZeroDenominators(t *testing.T) {
	calc := services.NewKPICalculator()

	kpis := calc.Calculate(domain.ProfitLoss{Year: 2023}, domain.BalanceSheet{Year: 2023, Receivables: dec("100")})

	assert.False(t, kpis.DSO.Defined, "no revenue means DSO is undefined, not zero")
	assert.False(t, kpis.DPO.Defined)
	assert.False(t, kpis.DIO.Defined)
	assert.False(t, kpis.CashConversionCycle().Defined)
	assert.False(t, kpis.EBITDAMargin.Defined)
}

func TestKPICalculator_CustomVATRate(t *testing.T) {
	calc := services.NewKPICalculator(services.WithVATRate(decimal.RequireFromString("1.10")))
	pl := domain.ProfitLoss{Year: 2023, Revenue: dec("1100000")}
	balance := domain.BalanceSheet{Year: 2023, Receivables: dec("121000")}

	kpis := calc.Calculate(pl, balance)

	// 121000 / (1100000 * 1.10) * 365 = 36.5
	require.True(t, kpis.DSO.Defined)
	assert.True(t, kpis.DSO.Value.Equal(dec("36.5")), "got %s", kpis.DSO.Value)
}

func TestKPICalculator_AcceptedAdjustments(t *testing.T) {
	accepted := map[int][]domain.QoEAdjustment{
		2023: {{Label: "owner salary normalization", Amount: dec("25000")}},
	}
	calc := services.NewKPICalculator(services.WithAcceptedAdjustments(accepted))
	pl := domain.ProfitLoss{Year: 2023, Revenue: dec("500000"), Purchases: dec("200000")}

	kpis := calc.Calculate(pl, domain.BalanceSheet{Year: 2023})

	require.Len(t, kpis.Accepted, 1)
	assert.True(t, kpis.AdjustedEBITDA().Equal(dec("325000")))

	// Another year gets no adjustments.
	other := calc.Calculate(domain.ProfitLoss{Year: 2022, Revenue: dec("100")}, domain.BalanceSheet{Year: 2022})
	assert.Empty(t, other.Accepted)
}

func TestKPICalculator_CalculateMultiYear(t *testing.T) {
	calc := services.NewKPICalculator()
	pls := []domain.ProfitLoss{
		{Year: 2022, Revenue: dec("1000")},
		{Year: 2023, Revenue: dec("1200")},
		{Year: 2024, Revenue: dec("1400")}, // no matching balance sheet
	}
	balances := []domain.BalanceSheet{
		{Year: 2022},
		{Year: 2023},
	}

	kpis := calc.CalculateMultiYear(pls, balances)

	require.Len(t, kpis, 2)
	assert.Equal(t, 2022, kpis[0].Year)
	assert.Equal(t, 2023, kpis[1].Year)
}

func TestKPICalculator_SuggestExceptionalItems(t *testing.T) {
	calc := services.NewKPICalculator()
	entries := []domain.JournalEntry{
		entry(2023, time.March, "701000", "0", "1000"),
		entry(2023, time.June, "671000", "90000", "0"), // exceptional expense
	}

	suggestions := calc.SuggestAdjustments(classify(entries), 2023)

	require.NotEmpty(t, suggestions)
	exceptional := suggestions[0]
	assert.Contains(t, exceptional.Label, "exceptional")
	// Net exceptional result is -90000; the suggestion reverses it.
	assert.True(t, exceptional.Amount.Equal(dec("90000")))
}

func TestKPICalculator_SuggestRoundNumbers(t *testing.T) {
	calc := services.NewKPICalculator()
	entries := []domain.JournalEntry{
		entry(2023, time.March, "701000", "0", "500"),
		entry(2023, time.June, "622000", "50000", "0"), // round management fee
	}

	suggestions := calc.SuggestAdjustments(classify(entries), 2023)

	found := false
	for _, s := range suggestions {
		if s.Label == "622000 test posting" {
			found = true
			// Reversing a 50000 charge raises EBITDA by 50000.
			assert.True(t, s.Amount.Equal(dec("50000")))
			assert.Contains(t, s.Reason, "round-number")
		}
	}
	assert.True(t, found, "expected a round-number suggestion")
}

func TestKPICalculator_SuggestionsNeverApplied(t *testing.T) {
	calc := services.NewKPICalculator()
	entries := []domain.JournalEntry{
		entry(2023, time.March, "701000", "0", "1000"),
		entry(2023, time.June, "671000", "90000", "0"),
	}
	classified := classify(entries)

	suggestions := calc.SuggestAdjustments(classified, 2023)
	require.NotEmpty(t, suggestions)

	kpis := calc.Calculate(domain.ProfitLoss{Year: 2023, Revenue: dec("1000")}, domain.BalanceSheet{Year: 2023})
	assert.True(t, kpis.AdjustedEBITDA().Equal(kpis.EBITDA),
		"suggestions must not move adjusted EBITDA until accepted")
}
