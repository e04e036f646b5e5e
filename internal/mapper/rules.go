package mapper

import "github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"

// Rule maps an account-number prefix to a category within one statement
// taxonomy. Rule tables are ordered, loaded once per build, and immutable
// thereafter.
type Rule struct {
	Prefix   string          `yaml:"prefix" validate:"required,numeric"`
	Category string          `yaml:"category" validate:"required"`
	Section  domain.Taxonomy `yaml:"section" validate:"required,oneof=pl balance"`
}

// P&L categories (classe 6 and 7).
const (
	CategoryRevenue            = "revenue"
	CategoryOtherRevenue       = "other_revenue"
	CategoryPurchases          = "purchases"
	CategoryExternalCharges    = "external_charges"
	CategoryTaxes              = "taxes"
	CategoryPersonnel          = "personnel"
	CategoryOtherCharges       = "other_charges"
	CategoryDepreciation       = "depreciation"
	CategoryFinancialExpense   = "financial_expense"
	CategoryFinancialIncome    = "financial_income"
	CategoryExceptionalExpense = "exceptional_expense"
	CategoryExceptionalIncome  = "exceptional_income"
	CategoryIncomeTax          = "income_tax"
)

// Balance sheet categories (classe 1 to 5).
const (
	CategoryFixedAssets      = "fixed_assets"
	CategoryInventory        = "inventory"
	CategoryReceivables      = "receivables"
	CategoryOtherReceivables = "other_receivables"
	CategoryCash             = "cash"
	CategoryEquity           = "equity"
	CategoryProvisions       = "provisions"
	CategoryFinancialDebt    = "financial_debt"
	CategoryPayables         = "payables"
	CategoryOtherPayables    = "other_payables"
)

// DefaultRules is the standard PCG mapping. Two-digit prefixes take
// precedence over single-digit ones through longest-prefix matching
// (15 "provisions" beats 1 "equity").
func DefaultRules() []Rule {
	return []Rule{
		// Compte de résultat
		{Prefix: "70", Category: CategoryRevenue, Section: domain.TaxonomyPL},
		{Prefix: "74", Category: CategoryOtherRevenue, Section: domain.TaxonomyPL},
		{Prefix: "75", Category: CategoryOtherRevenue, Section: domain.TaxonomyPL},
		{Prefix: "78", Category: CategoryOtherRevenue, Section: domain.TaxonomyPL},
		{Prefix: "79", Category: CategoryOtherRevenue, Section: domain.TaxonomyPL},
		{Prefix: "76", Category: CategoryFinancialIncome, Section: domain.TaxonomyPL},
		{Prefix: "77", Category: CategoryExceptionalIncome, Section: domain.TaxonomyPL},
		{Prefix: "60", Category: CategoryPurchases, Section: domain.TaxonomyPL},
		{Prefix: "61", Category: CategoryExternalCharges, Section: domain.TaxonomyPL},
		{Prefix: "62", Category: CategoryExternalCharges, Section: domain.TaxonomyPL},
		{Prefix: "63", Category: CategoryTaxes, Section: domain.TaxonomyPL},
		{Prefix: "64", Category: CategoryPersonnel, Section: domain.TaxonomyPL},
		{Prefix: "65", Category: CategoryOtherCharges, Section: domain.TaxonomyPL},
		{Prefix: "66", Category: CategoryFinancialExpense, Section: domain.TaxonomyPL},
		{Prefix: "67", Category: CategoryExceptionalExpense, Section: domain.TaxonomyPL},
		{Prefix: "68", Category: CategoryDepreciation, Section: domain.TaxonomyPL},
		{Prefix: "69", Category: CategoryIncomeTax, Section: domain.TaxonomyPL},

		// Bilan
		{Prefix: "1", Category: CategoryEquity, Section: domain.TaxonomyBalance},
		{Prefix: "15", Category: CategoryProvisions, Section: domain.TaxonomyBalance},
		{Prefix: "16", Category: CategoryFinancialDebt, Section: domain.TaxonomyBalance},
		{Prefix: "17", Category: CategoryFinancialDebt, Section: domain.TaxonomyBalance},
		{Prefix: "2", Category: CategoryFixedAssets, Section: domain.TaxonomyBalance},
		{Prefix: "3", Category: CategoryInventory, Section: domain.TaxonomyBalance},
		{Prefix: "40", Category: CategoryPayables, Section: domain.TaxonomyBalance},
		{Prefix: "41", Category: CategoryReceivables, Section: domain.TaxonomyBalance},
		{Prefix: "42", Category: CategoryOtherPayables, Section: domain.TaxonomyBalance},
		{Prefix: "43", Category: CategoryOtherPayables, Section: domain.TaxonomyBalance},
		{Prefix: "44", Category: CategoryOtherReceivables, Section: domain.TaxonomyBalance},
		{Prefix: "45", Category: CategoryOtherReceivables, Section: domain.TaxonomyBalance},
		{Prefix: "46", Category: CategoryOtherReceivables, Section: domain.TaxonomyBalance},
		{Prefix: "47", Category: CategoryOtherReceivables, Section: domain.TaxonomyBalance},
		{Prefix: "48", Category: CategoryOtherReceivables, Section: domain.TaxonomyBalance},
		{Prefix: "49", Category: CategoryOtherReceivables, Section: domain.TaxonomyBalance},
		{Prefix: "5", Category: CategoryCash, Section: domain.TaxonomyBalance},
	}
}

// assetCategories holds balance categories whose accounts grow with debits.
var assetCategories = map[string]bool{
	CategoryFixedAssets:      true,
	CategoryInventory:        true,
	CategoryReceivables:      true,
	CategoryOtherReceivables: true,
	CategoryCash:             true,
}

// liabilityCategories holds balance categories whose accounts grow with credits.
var liabilityCategories = map[string]bool{
	CategoryEquity:        true,
	CategoryProvisions:    true,
	CategoryFinancialDebt: true,
	CategoryPayables:      true,
	CategoryOtherPayables: true,
}
