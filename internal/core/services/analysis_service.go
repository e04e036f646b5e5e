package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	portssvc "github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/ports/services"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/fecparse"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/mapper"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// analysisService runs the full pipeline over a set of FEC files. Every
// downstream builder is injected so recomputations (changed VAT rate, changed
// rule table) reuse the same wiring with different options.
type analysisService struct {
	parser   *fecparse.Parser
	mapper   *mapper.AccountMapper
	pl       portssvc.PLBuilderSvc
	balance  portssvc.BalanceBuilderSvc
	cashflow portssvc.CashFlowBuilderSvc
	kpi      portssvc.KPICalculatorSvc
	monthly  portssvc.MonthlyBuilderSvc
	variance portssvc.VarianceBuilderSvc
	logger   *slog.Logger
}

// AnalysisOption configures the analysis service.
type AnalysisOption func(*analysisService)

// WithParser overrides the FEC parser.
func WithParser(p *fecparse.Parser) AnalysisOption {
	return func(s *analysisService) {
		s.parser = p
	}
}

// WithMapper overrides the classification mapper. The P&L and balance
// builders are rebound to it.
func WithMapper(m *mapper.AccountMapper) AnalysisOption {
	return func(s *analysisService) {
		s.mapper = m
		s.pl = NewPLBuilder(m)
		s.balance = NewBalanceBuilder(m)
	}
}

// WithKPICalculator overrides the KPI calculator, typically to inject a VAT
// rate or accepted adjustments.
func WithKPICalculator(k portssvc.KPICalculatorSvc) AnalysisOption {
	return func(s *analysisService) {
		s.kpi = k
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) AnalysisOption {
	return func(s *analysisService) {
		s.logger = l
	}
}

// NewAnalysisService wires the default pipeline.
func NewAnalysisService(options ...AnalysisOption) portssvc.AnalyzerSvc {
	m := mapper.New(nil)
	s := &analysisService{
		parser:   fecparse.NewParser(),
		mapper:   m,
		pl:       NewPLBuilder(m),
		balance:  NewBalanceBuilder(m),
		cashflow: NewCashFlowBuilder(),
		kpi:      NewKPICalculator(),
		monthly:  NewMonthlyBuilder(),
		variance: NewVarianceBuilder(),
		logger:   slog.Default(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.AnalyzerSvc = (*analysisService)(nil)

// Analyze parses, classifies, and derives every statement family. Parse
// failures on any file abort the run; ledger anomalies downstream degrade to
// warnings instead.
func (s *analysisService) Analyze(ctx context.Context, files []domain.SourceFile) (*domain.StatementBundle, error) {
	started := time.Now()
	results, err := s.parseAll(ctx, files)
	if err != nil {
		return nil, err
	}

	bundle := &domain.StatementBundle{
		BundleID:    uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	// Merge in input order so the arena layout is deterministic.
	for _, res := range results {
		bundle.SourceFiles = append(bundle.SourceFiles, res.Filename)
		bundle.Entries = append(bundle.Entries, res.Entries...)
		bundle.RowErrors = append(bundle.RowErrors, res.RowErrors...)
		bundle.Warnings = append(bundle.Warnings, res.Warnings...)
	}

	classified, classWarnings := s.mapper.Classify(bundle.Entries)
	bundle.Classified = classified
	bundle.Warnings = append(bundle.Warnings, classWarnings...)
	bundle.Years = effectiveYears(classified)
	bundle.Trace = domain.NewTraceIndex(bundle.Entries)

	// P&L and balance builds are independent and share only the mutex-guarded
	// trace index.
	var (
		pls             []domain.ProfitLoss
		plWarnings      []domain.Warning
		balances        []domain.BalanceSheet
		balanceWarnings []domain.Warning
		statementBuilds errgroup.Group
	)
	statementBuilds.Go(func() error {
		pls, plWarnings = s.pl.BuildMultiYear(classified, bundle.Trace)
		return nil
	})
	statementBuilds.Go(func() error {
		balances, balanceWarnings = s.balance.BuildMultiYear(classified, bundle.Trace)
		return nil
	})
	if err := statementBuilds.Wait(); err != nil {
		return nil, err
	}
	bundle.ProfitLosses = pls
	bundle.Balances = balances
	bundle.Warnings = append(bundle.Warnings, plWarnings...)
	bundle.Warnings = append(bundle.Warnings, balanceWarnings...)

	cashflows, cfWarnings := s.cashflow.BuildMultiYear(pls, balances)
	bundle.CashFlows = cashflows
	bundle.Warnings = append(bundle.Warnings, cfWarnings...)

	bundle.KPIs = s.kpi.CalculateMultiYear(pls, balances)
	for i := range bundle.KPIs {
		bundle.KPIs[i].Suggested = s.kpi.SuggestAdjustments(classified, bundle.KPIs[i].Year)
	}

	bundle.Monthly = s.monthly.BuildMultiYear(classified)
	bundle.Variations = s.pl.ComputeVariations(pls)
	bundle.Variances = s.variance.BuildMultiYear(pls)
	bundle.BFREvolution = s.balance.ComputeBFREvolution(balances)

	s.logger.InfoContext(ctx, "analysis complete",
		slog.String("bundleID", bundle.BundleID),
		slog.Int("files", len(files)),
		slog.Int("entries", len(bundle.Entries)),
		slog.Int("years", len(bundle.Years)),
		slog.Int("rowErrors", len(bundle.RowErrors)),
		slog.Int("warnings", len(bundle.Warnings)),
		slog.Duration("elapsed", time.Since(started)),
	)
	return bundle, nil
}

// parseAll parses every file concurrently, preserving input order in the
// result slice.
func (s *analysisService) parseAll(ctx context.Context, files []domain.SourceFile) ([]*domain.ParseResult, error) {
	results := make([]*domain.ParseResult, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, file := range files {
		group.Go(func() error {
			res, err := s.parser.Parse(groupCtx, file.Content, file.Name)
			if err != nil {
				s.logger.ErrorContext(groupCtx, "parse failed",
					slog.String("file", file.Name), slog.Any("error", err))
				return err
			}
			s.logger.InfoContext(groupCtx, "parsed file",
				slog.String("file", file.Name),
				slog.String("encoding", res.Encoding),
				slog.Int("entries", len(res.Entries)),
				slog.Int("rowErrors", len(res.RowErrors)),
			)
			results[i] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
