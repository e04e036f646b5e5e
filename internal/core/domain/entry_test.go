package domain_test

import (
	"testing"
	"time"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalEntry_EffectiveYear(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.JournalEntry
		want  int
	}{
		{
			name: "filename year wins over entry date",
			entry: domain.JournalEntry{
				EntryDate:  time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC),
				SourceYear: 2023,
			},
			want: 2023,
		},
		{
			name: "entry date year when no filename year",
			entry: domain.JournalEntry{
				EntryDate: time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC),
			},
			want: 2022,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.EffectiveYear())
		})
	}
}

func TestJournalEntry_AccountClass(t *testing.T) {
	assert.Equal(t, "7", domain.JournalEntry{AccountNum: "701000"}.AccountClass())
	assert.Equal(t, "", domain.JournalEntry{}.AccountClass())
}

func TestJournalEntry_Amount(t *testing.T) {
	e := domain.JournalEntry{
		Debit:  decimal.RequireFromString("150.25"),
		Credit: decimal.RequireFromString("50.25"),
	}
	assert.True(t, e.Amount().Equal(decimal.NewFromInt(100)))
}

func TestClassifiedEntry_Category(t *testing.T) {
	ce := domain.ClassifiedEntry{
		Entry: domain.JournalEntry{AccountNum: "701000"},
		Tags: []domain.Tag{
			{Taxonomy: domain.TaxonomyPL, Category: "revenue"},
		},
	}

	cat, ok := ce.Category(domain.TaxonomyPL)
	assert.True(t, ok)
	assert.Equal(t, "revenue", cat)

	_, ok = ce.Category(domain.TaxonomyBalance)
	assert.False(t, ok)
	assert.False(t, ce.IsUnclassified())

	unclassified := domain.ClassifiedEntry{
		Tags: []domain.Tag{{Taxonomy: domain.TaxonomyBalance, Category: domain.CategoryUnclassified}},
	}
	assert.True(t, unclassified.IsUnclassified())
	_, ok = unclassified.Category(domain.TaxonomyBalance)
	assert.False(t, ok, "unclassified tag must not surface as a category")
}
