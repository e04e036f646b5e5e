package services

import (
	"sort"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// lineAgg accumulates one statement line: running total plus the signed
// contribution of every participating entry, keyed by arena index.
type lineAgg struct {
	ids     []int
	amounts []decimal.Decimal
	total   decimal.Decimal
}

func (a *lineAgg) add(id int, amount decimal.Decimal) {
	a.ids = append(a.ids, id)
	a.amounts = append(a.amounts, amount)
	a.total = a.total.Add(amount)
}

// record emits the aggregate as a trace record.
func (a *lineAgg) record(statement, line, formula string, year int, trace *domain.TraceIndex) {
	if trace == nil {
		return
	}
	trace.Put(domain.TraceRecord{
		Statement: statement,
		Line:      line,
		Year:      year,
		Formula:   formula,
		EntryIDs:  a.ids,
		Amounts:   a.amounts,
		Value:     a.total,
	})
}

// combine merges category aggregates into a derived line, flipping the
// contribution sign where the formula subtracts the category. Entry order is
// normalized to arena order so rebuilds stay bit-identical.
func combine(parts []*lineAgg, negate []bool) *lineAgg {
	type contribution struct {
		id     int
		amount decimal.Decimal
	}
	var all []contribution
	for i, part := range parts {
		for j, id := range part.ids {
			amount := part.amounts[j]
			if negate[i] {
				amount = amount.Neg()
			}
			all = append(all, contribution{id: id, amount: amount})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].id < all[j].id })

	out := &lineAgg{}
	for _, c := range all {
		out.add(c.id, c.amount)
	}
	return out
}
