package domain

import "github.com/shopspring/decimal"

// MonthlyBreakdown buckets revenue and operating costs by calendar month
// within one fiscal year. Index 0 is January.
type MonthlyBreakdown struct {
	Year    int                 `json:"year"`
	Revenue [12]decimal.Decimal `json:"revenue"`
	Costs   [12]decimal.Decimal `json:"costs"`
}

// EBITDAByMonth is monthly revenue minus monthly operating costs.
func (m MonthlyBreakdown) EBITDAByMonth() [12]decimal.Decimal {
	var out [12]decimal.Decimal
	for i := range m.Revenue {
		out[i] = m.Revenue[i].Sub(m.Costs[i])
	}
	return out
}

// TotalRevenue is the sum over the twelve months.
func (m MonthlyBreakdown) TotalRevenue() decimal.Decimal {
	total := decimal.Zero
	for _, v := range m.Revenue {
		total = total.Add(v)
	}
	return total
}

// Seasonality is monthly revenue divided by the year's average monthly
// revenue. Undefined for every month when the year has no revenue.
func (m MonthlyBreakdown) Seasonality() [12]Measure {
	var out [12]Measure
	avg := m.TotalRevenue().Div(decimal.NewFromInt(12))
	for i, v := range m.Revenue {
		out[i] = Ratio(v, avg)
	}
	return out
}

// CumulativeRevenue is the YTD running total per month.
func (m MonthlyBreakdown) CumulativeRevenue() [12]decimal.Decimal {
	var out [12]decimal.Decimal
	running := decimal.Zero
	for i, v := range m.Revenue {
		running = running.Add(v)
		out[i] = running
	}
	return out
}

// QuarterlyRevenue sums revenue per calendar quarter.
func (m MonthlyBreakdown) QuarterlyRevenue() [4]decimal.Decimal {
	var out [4]decimal.Decimal
	for i, v := range m.Revenue {
		out[i/3] = out[i/3].Add(v)
	}
	return out
}
