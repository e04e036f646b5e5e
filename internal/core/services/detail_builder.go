package services

import (
	"sort"
	"strings"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	portssvc "github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/ports/services"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/mapper"
	"github.com/shopspring/decimal"
)

// detailBuilder aggregates postings per account and per category for export
// consumers that need to drill below the statement lines.
type detailBuilder struct {
	mapper *mapper.AccountMapper
}

// NewDetailBuilder creates a detail builder bound to a mapper.
func NewDetailBuilder(m *mapper.AccountMapper) portssvc.DetailBuilderSvc {
	return &detailBuilder{mapper: m}
}

var _ portssvc.DetailBuilderSvc = (*detailBuilder)(nil)

// AccountSummary aggregates one effective year's movements per account,
// sorted by account number. The balance is signed by the account's natural
// direction so asset and expense accounts read positive.
func (b *detailBuilder) AccountSummary(entries []domain.ClassifiedEntry, year int) []domain.AccountDetail {
	type acc struct {
		label  string
		cat    string
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	byAccount := make(map[string]*acc)
	for _, ce := range entries {
		if ce.Entry.EffectiveYear() != year {
			continue
		}
		a, ok := byAccount[ce.Entry.AccountNum]
		if !ok {
			a = &acc{label: ce.Entry.AccountLib, cat: b.categoryFor(ce)}
			byAccount[ce.Entry.AccountNum] = a
		}
		a.debit = a.debit.Add(ce.Entry.Debit)
		a.credit = a.credit.Add(ce.Entry.Credit)
	}

	details := make([]domain.AccountDetail, 0, len(byAccount))
	for account, a := range byAccount {
		balance := a.credit.Sub(a.debit)
		if b.mapper.IsDebitPositive(account) {
			balance = a.debit.Sub(a.credit)
		}
		details = append(details, domain.AccountDetail{
			Account:  account,
			Label:    a.label,
			Category: a.cat,
			Debit:    a.debit,
			Credit:   a.credit,
			Balance:  balance,
		})
	}
	sort.Slice(details, func(i, j int) bool { return details[i].Account < details[j].Account })
	return details
}

// TopAccounts returns the n largest accounts of a class by absolute balance.
// An empty class matches every account.
func (b *detailBuilder) TopAccounts(entries []domain.ClassifiedEntry, year int, accountClass string, n int) []domain.AccountDetail {
	all := b.AccountSummary(entries, year)
	var filtered []domain.AccountDetail
	for _, d := range all {
		if accountClass != "" && !strings.HasPrefix(d.Account, accountClass) {
			continue
		}
		filtered = append(filtered, d)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Balance.Abs().GreaterThan(filtered[j].Balance.Abs())
	})
	if n > 0 && len(filtered) > n {
		filtered = filtered[:n]
	}
	return filtered
}

// CategoryBreakdown totals one effective year per classification category,
// listing the contributing accounts.
func (b *detailBuilder) CategoryBreakdown(entries []domain.ClassifiedEntry, year int) []domain.CategoryTotal {
	type cat struct {
		total    decimal.Decimal
		count    int
		accounts map[string]bool
	}
	byCategory := make(map[string]*cat)
	for _, ce := range entries {
		if ce.Entry.EffectiveYear() != year {
			continue
		}
		name := b.categoryFor(ce)
		c, ok := byCategory[name]
		if !ok {
			c = &cat{accounts: make(map[string]bool)}
			byCategory[name] = c
		}
		c.total = c.total.Add(ce.Entry.Amount())
		c.count++
		c.accounts[ce.Entry.AccountNum] = true
	}

	totals := make([]domain.CategoryTotal, 0, len(byCategory))
	for name, c := range byCategory {
		accounts := make([]string, 0, len(c.accounts))
		for a := range c.accounts {
			accounts = append(accounts, a)
		}
		sort.Strings(accounts)
		totals = append(totals, domain.CategoryTotal{
			Category: name,
			Total:    c.total,
			Count:    c.count,
			Accounts: accounts,
		})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Category < totals[j].Category })
	return totals
}

// categoryFor picks the posting's category: P&L first, then balance, then
// unclassified.
func (b *detailBuilder) categoryFor(ce domain.ClassifiedEntry) string {
	if cat, ok := ce.Category(domain.TaxonomyPL); ok {
		return cat
	}
	if cat, ok := ce.Category(domain.TaxonomyBalance); ok {
		return cat
	}
	return domain.CategoryUnclassified
}
