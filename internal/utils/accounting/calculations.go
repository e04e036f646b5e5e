package accounting

import (
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DebitPositiveClass reports whether a debit increases the value of an
// account in the given PCG class.
//
// Classes 2, 3, 4, 5, 6 (assets and expenses): debit positive.
// Classes 1, 7 (equity/liabilities and income): credit positive.
func DebitPositiveClass(class string) bool {
	switch class {
	case "2", "3", "4", "5", "6":
		return true
	default:
		return false
	}
}

// PLAmount applies the P&L sign convention to an entry: income accounts
// (class 7) grow with credits, expense accounts (class 6) grow with debits.
func PLAmount(e domain.JournalEntry) decimal.Decimal {
	if e.AccountClass() == "7" {
		return e.Credit.Sub(e.Debit)
	}
	return e.Debit.Sub(e.Credit)
}

// BalanceAmount applies the balance-sheet sign convention given the
// account's nature.
func BalanceAmount(e domain.JournalEntry, debitPositive bool) decimal.Decimal {
	if debitPositive {
		return e.Debit.Sub(e.Credit)
	}
	return e.Credit.Sub(e.Debit)
}

// SignedSum folds entries through a sign convention. Used to verify that a
// trace record's referenced entries reproduce its line value exactly.
func SignedSum(entries []domain.JournalEntry, sign func(domain.JournalEntry) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(sign(e))
	}
	return total
}

// TrialBalance sums debits and credits over a file's entries and returns the
// difference. A well-formed FEC export balances to zero.
func TrialBalance(entries []domain.JournalEntry) (debit, credit, diff decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	return debit, credit, debit.Sub(credit)
}
