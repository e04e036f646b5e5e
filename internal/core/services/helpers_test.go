package services_test

import (
	"time"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/mapper"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// entry builds a journal entry dated within the given year/month.
func entry(year int, month time.Month, account, debit, credit string) domain.JournalEntry {
	return domain.JournalEntry{
		EntryDate:   time.Date(year, month, 15, 0, 0, 0, 0, time.UTC),
		JournalCode: "OD",
		EntryNum:    "1",
		AccountNum:  account,
		AccountLib:  account,
		Label:       "test posting",
		Debit:       dec(debit),
		Credit:      dec(credit),
	}
}

// classify runs the default mapper over the entries.
func classify(entries []domain.JournalEntry) []domain.ClassifiedEntry {
	classified, _ := mapper.New(nil).Classify(entries)
	return classified
}

// saleOf1000 is the canonical balanced sale: debit the customer account,
// credit the revenue account.
func saleOf1000(year int) []domain.JournalEntry {
	return []domain.JournalEntry{
		entry(year, time.March, "411000", "1000", "0"),
		entry(year, time.March, "701000", "0", "1000"),
	}
}
