package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/mapper"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// QoE heuristic thresholds. Tuned against typical SME ledgers: low enough to
// surface genuine one-offs, high enough to keep the suggestion list short.
var (
	roundAmountFloor = decimal.NewFromInt(10000)
	roundAmountStep  = decimal.NewFromInt(1000)
	outlierZScore    = 3.0
	maxSuggestions   = 20
)

// operatingCategories are the P&L categories inside EBITDA. Only postings in
// these can carry an EBITDA adjustment.
var operatingCategories = map[string]bool{
	mapper.CategoryRevenue:         true,
	mapper.CategoryOtherRevenue:    true,
	mapper.CategoryPurchases:       true,
	mapper.CategoryExternalCharges: true,
	mapper.CategoryTaxes:           true,
	mapper.CategoryPersonnel:       true,
	mapper.CategoryOtherCharges:    true,
}

// ebitdaContribution is the posting's signed effect on EBITDA: revenue adds,
// operating charges subtract. The suggested adjustment reverses it.
func ebitdaContribution(ce domain.ClassifiedEntry, cat string) decimal.Decimal {
	amount := accounting.PLAmount(ce.Entry)
	switch cat {
	case mapper.CategoryRevenue, mapper.CategoryOtherRevenue:
		return amount
	default:
		return amount.Neg()
	}
}

// qoeDetector screens a year's postings for quality-of-earnings candidates:
// exceptional account families, suspiciously round amounts, and statistical
// outliers against the year's posting distribution.
type qoeDetector struct{}

func newQoEDetector() *qoeDetector {
	return &qoeDetector{}
}

// suggest runs all heuristics over one year and returns the candidates,
// largest magnitude first, capped at maxSuggestions.
func (d *qoeDetector) suggest(entries []domain.ClassifiedEntry, year int) []domain.QoEAdjustment {
	var yearEntries []domain.ClassifiedEntry
	for _, ce := range entries {
		if ce.Entry.EffectiveYear() == year {
			yearEntries = append(yearEntries, ce)
		}
	}

	var suggestions []domain.QoEAdjustment
	suggestions = append(suggestions, d.exceptionalItems(yearEntries)...)
	flagged := make(map[int]bool)
	suggestions = append(suggestions, d.roundAmounts(yearEntries, flagged)...)
	suggestions = append(suggestions, d.outliers(yearEntries, flagged)...)

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Amount.Abs().GreaterThan(suggestions[j].Amount.Abs())
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// exceptionalItems proposes reversing the net exceptional result. Exceptional
// income and expense sit outside EBITDA but signal non-recurring activity the
// reviewer should weigh.
func (d *qoeDetector) exceptionalItems(entries []domain.ClassifiedEntry) []domain.QoEAdjustment {
	net := decimal.Zero
	count := 0
	for _, ce := range entries {
		cat, ok := ce.Category(domain.TaxonomyPL)
		if !ok {
			continue
		}
		switch cat {
		case mapper.CategoryExceptionalIncome:
			net = net.Add(accounting.PLAmount(ce.Entry))
			count++
		case mapper.CategoryExceptionalExpense:
			net = net.Sub(accounting.PLAmount(ce.Entry))
			count++
		}
	}
	if count == 0 || net.IsZero() {
		return nil
	}
	return []domain.QoEAdjustment{{
		Label:  "exceptional result normalization",
		Amount: net.Neg(),
		Reason: fmt.Sprintf("%d exceptional postings net to %s; non-recurring by account family", count, net.String()),
	}}
}

// roundAmounts flags large operating postings at an exact thousand. Round
// figures at this size are often estimates, provisions or management fees
// rather than arm's-length transactions.
func (d *qoeDetector) roundAmounts(entries []domain.ClassifiedEntry, flagged map[int]bool) []domain.QoEAdjustment {
	var out []domain.QoEAdjustment
	for _, ce := range entries {
		cat, ok := ce.Category(domain.TaxonomyPL)
		if !ok || !operatingCategories[cat] {
			continue
		}
		amount := ce.Entry.Amount().Abs()
		if amount.LessThan(roundAmountFloor) || !amount.Mod(roundAmountStep).IsZero() {
			continue
		}
		flagged[ce.Index] = true
		out = append(out, domain.QoEAdjustment{
			Label:  fmt.Sprintf("%s %s", ce.Entry.AccountNum, truncate(ce.Entry.Label, 60)),
			Amount: ebitdaContribution(ce, cat).Neg(),
			Reason: fmt.Sprintf("round-number posting of %s on %s", amount.String(), ce.Entry.AccountNum),
		})
	}
	return out
}

// truncate shortens a label for suggestion display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// outliers flags operating postings whose magnitude deviates from the year's
// distribution by more than outlierZScore standard deviations. Statistics run
// on float64: the z-score is a screen, not an accounting figure.
func (d *qoeDetector) outliers(entries []domain.ClassifiedEntry, flagged map[int]bool) []domain.QoEAdjustment {
	type candidate struct {
		ce    domain.ClassifiedEntry
		cat   string
		value float64
	}
	var pool []candidate
	for _, ce := range entries {
		cat, ok := ce.Category(domain.TaxonomyPL)
		if !ok || !operatingCategories[cat] {
			continue
		}
		v, _ := ce.Entry.Amount().Abs().Float64()
		pool = append(pool, candidate{ce: ce, cat: cat, value: v})
	}
	if len(pool) < 10 {
		return nil
	}

	var sum float64
	for _, c := range pool {
		sum += c.value
	}
	mean := sum / float64(len(pool))
	var variance float64
	for _, c := range pool {
		variance += (c.value - mean) * (c.value - mean)
	}
	stddev := math.Sqrt(variance / float64(len(pool)))
	if stddev == 0 {
		return nil
	}

	var out []domain.QoEAdjustment
	for _, c := range pool {
		if flagged[c.ce.Index] {
			continue
		}
		z := (c.value - mean) / stddev
		if math.Abs(z) <= outlierZScore {
			continue
		}
		out = append(out, domain.QoEAdjustment{
			Label:  fmt.Sprintf("%s %s", c.ce.Entry.AccountNum, truncate(c.ce.Entry.Label, 60)),
			Amount: ebitdaContribution(c.ce, c.cat).Neg(),
			Reason: fmt.Sprintf("posting magnitude %.2f standard deviations from the yearly mean", math.Abs(z)),
		})
	}
	return out
}
