// Package mapper classifies PCG account numbers into financial statement
// categories via an ordered, longest-prefix-match rule table.
package mapper

import (
	"sort"
	"strings"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/utils/accounting"
)

// AccountMapper resolves account numbers to statement categories. It is
// constructed once per build and read-only afterwards, so builders can share
// one instance across goroutines without locking.
type AccountMapper struct {
	rules []Rule
}

// New builds a mapper from an ordered rule table. A nil or empty table
// falls back to the default PCG mapping.
func New(rules []Rule) *AccountMapper {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return &AccountMapper{rules: owned}
}

// Rules returns the active rule table.
func (m *AccountMapper) Rules() []Rule {
	return m.rules
}

// match finds the rule with the longest prefix matching the account within
// one taxonomy. A rule for "61" beats a rule for "6".
func (m *AccountMapper) match(account string, section domain.Taxonomy) (Rule, bool) {
	account = strings.TrimSpace(account)
	var best Rule
	bestLen := 0
	for _, r := range m.rules {
		if r.Section != section {
			continue
		}
		if strings.HasPrefix(account, r.Prefix) && len(r.Prefix) > bestLen {
			best = r
			bestLen = len(r.Prefix)
		}
	}
	return best, bestLen > 0
}

// PLCategory returns the P&L category for an account, if any.
func (m *AccountMapper) PLCategory(account string) (string, bool) {
	r, ok := m.match(account, domain.TaxonomyPL)
	if !ok {
		return "", false
	}
	return r.Category, true
}

// BalanceCategory returns the balance sheet category for an account, if any.
func (m *AccountMapper) BalanceCategory(account string) (string, bool) {
	r, ok := m.match(account, domain.TaxonomyBalance)
	if !ok {
		return "", false
	}
	return r.Category, true
}

// Tags returns every (taxonomy, category) pair for an account. Unmatched
// accounts get the explicit unclassified tag rather than an empty set.
func (m *AccountMapper) Tags(account string) []domain.Tag {
	var tags []domain.Tag
	if cat, ok := m.PLCategory(account); ok {
		tags = append(tags, domain.Tag{Taxonomy: domain.TaxonomyPL, Category: cat})
	}
	if cat, ok := m.BalanceCategory(account); ok {
		tags = append(tags, domain.Tag{Taxonomy: domain.TaxonomyBalance, Category: cat})
	}
	if len(tags) == 0 {
		tags = append(tags, domain.Tag{Taxonomy: domain.TaxonomyBalance, Category: domain.CategoryUnclassified})
	}
	return tags
}

// IsDebitPositive reports whether a debit increases the account's value.
// A category match decides first; otherwise the PCG class convention applies.
func (m *AccountMapper) IsDebitPositive(account string) bool {
	account = strings.TrimSpace(account)
	if account == "" {
		return true
	}
	if cat, ok := m.BalanceCategory(account); ok {
		if assetCategories[cat] {
			return true
		}
		if liabilityCategories[cat] {
			return false
		}
	}
	return accounting.DebitPositiveClass(account[:1])
}

// Classify annotates every entry with its tags. Invariant: the output has
// exactly one classified entry per input entry, unmatched codes included.
func (m *AccountMapper) Classify(entries []domain.JournalEntry) ([]domain.ClassifiedEntry, []domain.Warning) {
	classified := make([]domain.ClassifiedEntry, 0, len(entries))
	unmatched := make(map[string]bool)
	for i, e := range entries {
		ce := domain.ClassifiedEntry{
			Entry: e,
			Index: i,
			Tags:  m.Tags(e.AccountNum),
		}
		if ce.IsUnclassified() {
			unmatched[e.AccountNum] = true
		}
		classified = append(classified, ce)
	}

	var warnings []domain.Warning
	if len(unmatched) > 0 {
		codes := make([]string, 0, len(unmatched))
		for code := range unmatched {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarnClassification,
			Message: "accounts unmatched by any classification rule: " + strings.Join(codes, ", "),
		})
	}
	return classified, warnings
}
