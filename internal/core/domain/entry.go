package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a single FEC journal line. Entries are created once
// at parse time and never mutated afterwards.
type JournalEntry struct {
	EntryDate   time.Time       `json:"entryDate"`
	JournalCode string          `json:"journalCode"`
	EntryNum    string          `json:"entryNum"`
	AccountNum  string          `json:"accountNum"`
	AccountLib  string          `json:"accountLib"`
	Label       string          `json:"label"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	SourceYear  int             `json:"sourceYear"` // Year from the FEC filename; 0 when absent
}

// Amount returns the net movement (debit - credit).
func (e JournalEntry) Amount() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// AccountClass returns the first digit of the account number (PCG class).
func (e JournalEntry) AccountClass() string {
	if e.AccountNum == "" {
		return ""
	}
	return e.AccountNum[:1]
}

// FiscalYear is the year taken from the entry date.
func (e JournalEntry) FiscalYear() int {
	return e.EntryDate.Year()
}

// EffectiveYear is the year used for statement grouping. The filename-derived
// year takes precedence over the entry-date year: multi-year exports routinely
// contain cross-year audit postings, and cumulative balance sheets are only
// correct when every entry of a file lands in that file's fiscal year.
func (e JournalEntry) EffectiveYear() int {
	if e.SourceYear != 0 {
		return e.SourceYear
	}
	return e.EntryDate.Year()
}

// Taxonomy identifies which statement family a classification tag belongs to.
// One account code can resolve to different categories per taxonomy.
type Taxonomy string

const (
	TaxonomyPL      Taxonomy = "pl"
	TaxonomyBalance Taxonomy = "balance"
)

// CategoryUnclassified tags entries whose account code matched no rule.
// Such entries are kept, never dropped.
const CategoryUnclassified = "unclassified"

// Tag is one (taxonomy, category) classification of an account code.
type Tag struct {
	Taxonomy Taxonomy `json:"taxonomy"`
	Category string   `json:"category"`
}

// ClassifiedEntry annotates a JournalEntry with its classification tags.
// Index is the entry's position in the parsed-entry arena, which trace
// records refer back to.
type ClassifiedEntry struct {
	Entry JournalEntry `json:"entry"`
	Index int          `json:"index"`
	Tags  []Tag        `json:"tags"`
}

// Category returns the category assigned under the given taxonomy.
func (c ClassifiedEntry) Category(t Taxonomy) (string, bool) {
	for _, tag := range c.Tags {
		if tag.Taxonomy == t && tag.Category != CategoryUnclassified {
			return tag.Category, true
		}
	}
	return "", false
}

// IsUnclassified reports whether no rule matched the entry's account code.
func (c ClassifiedEntry) IsUnclassified() bool {
	for _, tag := range c.Tags {
		if tag.Category != CategoryUnclassified {
			return false
		}
	}
	return true
}
