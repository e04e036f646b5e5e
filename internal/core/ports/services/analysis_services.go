package services

import (
	"context"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
)

// PLBuilderSvc builds profit & loss statements from classified entries.
type PLBuilderSvc interface {
	// Build aggregates one fiscal year. A nil trace index disables lineage.
	Build(entries []domain.ClassifiedEntry, year int, trace *domain.TraceIndex) (domain.ProfitLoss, []domain.Warning)

	// BuildMultiYear builds one P&L per distinct effective year, ascending.
	BuildMultiYear(entries []domain.ClassifiedEntry, trace *domain.TraceIndex) ([]domain.ProfitLoss, []domain.Warning)

	// ComputeVariations derives year-over-year movements between consecutive
	// statements. Percentage changes against a zero base are undefined.
	ComputeVariations(pls []domain.ProfitLoss) []domain.PLVariation
}

// BalanceBuilderSvc builds cumulative balance sheets.
type BalanceBuilderSvc interface {
	Build(entries []domain.ClassifiedEntry, year int, trace *domain.TraceIndex) (domain.BalanceSheet, []domain.Warning)
	BuildMultiYear(entries []domain.ClassifiedEntry, trace *domain.TraceIndex) ([]domain.BalanceSheet, []domain.Warning)

	// ComputeBFREvolution returns the year-over-year working-capital rows.
	ComputeBFREvolution(balances []domain.BalanceSheet) []domain.BFRSnapshot
}

// CashFlowBuilderSvc derives indirect-method cash flow statements. It needs
// two consecutive years of completed P&L/balance outputs; with a single year
// it returns a not-applicable result.
type CashFlowBuilderSvc interface {
	Build(pl domain.ProfitLoss, prev *domain.BalanceSheet, curr domain.BalanceSheet) (domain.CashFlow, []domain.Warning)
	BuildMultiYear(pls []domain.ProfitLoss, balances []domain.BalanceSheet) ([]domain.CashFlow, []domain.Warning)
}

// KPICalculatorSvc derives due-diligence indicators from completed statements.
type KPICalculatorSvc interface {
	Calculate(pl domain.ProfitLoss, balance domain.BalanceSheet) domain.KPISet
	CalculateMultiYear(pls []domain.ProfitLoss, balances []domain.BalanceSheet) []domain.KPISet

	// SuggestAdjustments runs the QoE detection heuristics. Output is
	// advisory; nothing is applied until the caller accepts it.
	SuggestAdjustments(entries []domain.ClassifiedEntry, year int) []domain.QoEAdjustment
}

// MonthlyBuilderSvc buckets entries by calendar month within a fiscal year.
type MonthlyBuilderSvc interface {
	Build(entries []domain.ClassifiedEntry, year int) (domain.MonthlyBreakdown, []domain.Warning)
	BuildMultiYear(entries []domain.ClassifiedEntry) []domain.MonthlyBreakdown
}

// VarianceBuilderSvc builds EBITDA bridges between consecutive years.
type VarianceBuilderSvc interface {
	Build(prev, curr domain.ProfitLoss) domain.VarianceReport
	BuildMultiYear(pls []domain.ProfitLoss) []domain.VarianceReport
}

// DetailBuilderSvc provides account-level breakdowns for export consumers.
type DetailBuilderSvc interface {
	AccountSummary(entries []domain.ClassifiedEntry, year int) []domain.AccountDetail
	TopAccounts(entries []domain.ClassifiedEntry, year int, accountClass string, n int) []domain.AccountDetail
	CategoryBreakdown(entries []domain.ClassifiedEntry, year int) []domain.CategoryTotal
}

// AnalyzerSvc runs the full pipeline: parse, classify, build every statement
// family, and assemble the bundle handed to export/API/assistant consumers.
type AnalyzerSvc interface {
	Analyze(ctx context.Context, files []domain.SourceFile) (*domain.StatementBundle, error)
}
