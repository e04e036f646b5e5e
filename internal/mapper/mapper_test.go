package mapper_test

import (
	"testing"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountMapper_PLCategory(t *testing.T) {
	m := mapper.New(nil)

	tests := []struct {
		account string
		want    string
		matched bool
	}{
		{account: "701000", want: mapper.CategoryRevenue, matched: true},
		{account: "758000", want: mapper.CategoryOtherRevenue, matched: true},
		{account: "601000", want: mapper.CategoryPurchases, matched: true},
		{account: "613000", want: mapper.CategoryExternalCharges, matched: true},
		{account: "641000", want: mapper.CategoryPersonnel, matched: true},
		{account: "681000", want: mapper.CategoryDepreciation, matched: true},
		{account: "695000", want: mapper.CategoryIncomeTax, matched: true},
		{account: "411000", matched: false}, // balance sheet only
		{account: "", matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.account, func(t *testing.T) {
			got, ok := m.PLCategory(tt.account)
			assert.Equal(t, tt.matched, ok)
			if tt.matched {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAccountMapper_LongestPrefixWins(t *testing.T) {
	m := mapper.New(nil)

	// "15" beats "1", "16" beats "1".
	cat, ok := m.BalanceCategory("151000")
	require.True(t, ok)
	assert.Equal(t, mapper.CategoryProvisions, cat)

	cat, ok = m.BalanceCategory("164000")
	require.True(t, ok)
	assert.Equal(t, mapper.CategoryFinancialDebt, cat)

	// Plain class 1 falls back to equity.
	cat, ok = m.BalanceCategory("101000")
	require.True(t, ok)
	assert.Equal(t, mapper.CategoryEquity, cat)
}

func TestAccountMapper_CustomRuleOverride(t *testing.T) {
	rules := append(mapper.DefaultRules(),
		mapper.Rule{Prefix: "706", Category: mapper.CategoryOtherRevenue, Section: domain.TaxonomyPL},
	)
	m := mapper.New(rules)

	cat, ok := m.PLCategory("706000")
	require.True(t, ok)
	assert.Equal(t, mapper.CategoryOtherRevenue, cat, "three-digit rule must beat the 70 default")

	cat, ok = m.PLCategory("701000")
	require.True(t, ok)
	assert.Equal(t, mapper.CategoryRevenue, cat)
}

func TestAccountMapper_TagsUnclassifiedFallback(t *testing.T) {
	m := mapper.New(nil)

	tags := m.Tags("890000") // class 8, no rule
	require.Len(t, tags, 1)
	assert.Equal(t, domain.CategoryUnclassified, tags[0].Category)
}

func TestAccountMapper_IsDebitPositive(t *testing.T) {
	m := mapper.New(nil)

	assert.True(t, m.IsDebitPositive("411000"), "receivables grow with debits")
	assert.True(t, m.IsDebitPositive("215000"), "fixed assets grow with debits")
	assert.False(t, m.IsDebitPositive("401000"), "payables grow with credits")
	assert.False(t, m.IsDebitPositive("101000"), "equity grows with credits")
	assert.False(t, m.IsDebitPositive("164000"), "financial debt grows with credits")
	assert.True(t, m.IsDebitPositive("512000"), "cash grows with debits")
}

func TestAccountMapper_Classify(t *testing.T) {
	m := mapper.New(nil)
	entries := []domain.JournalEntry{
		{AccountNum: "701000"},
		{AccountNum: "411000"},
		{AccountNum: "890000"},
		{AccountNum: "890000"},
	}

	classified, warnings := m.Classify(entries)

	// Conservation: exactly one classified entry per input entry.
	require.Len(t, classified, len(entries))
	for i, ce := range classified {
		assert.Equal(t, i, ce.Index)
	}

	assert.False(t, classified[0].IsUnclassified())
	assert.False(t, classified[1].IsUnclassified())
	assert.True(t, classified[2].IsUnclassified())

	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnClassification, warnings[0].Kind)
	assert.Contains(t, warnings[0].Message, "890000")
}

func TestAccountMapper_ClassifyNoWarningsWhenAllMatch(t *testing.T) {
	m := mapper.New(nil)
	classified, warnings := m.Classify([]domain.JournalEntry{{AccountNum: "701000"}})
	assert.Len(t, classified, 1)
	assert.Empty(t, warnings)
}
