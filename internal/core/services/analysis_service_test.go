package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/apperrors"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	portssvc "github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/ports/services"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/services"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const analysisHeader = "JournalCode\tJournalLib\tEcritureNum\tEcritureDate\tCompteNum\tCompteLib\tEcritureLib\tDebit\tCredit"

func fecContent(rows ...string) []byte {
	return []byte(analysisHeader + "\n" + strings.Join(rows, "\n") + "\n")
}

// twoYearFiles is a minimal two-year ledger: a capital contribution in 2022,
// sales and purchases in both years, every file balanced.
func twoYearFiles() []domain.SourceFile {
	fy2022 := fecContent(
		"OD\tDivers\t1\t20220101\t512000\tBanque\tApport en capital\t5000,00\t",
		"OD\tDivers\t1\t20220101\t101000\tCapital\tApport en capital\t\t5000,00",
		"VT\tVentes\t2\t20220315\t411000\tClients\tFacture 2022-01\t1000,00\t",
		"VT\tVentes\t2\t20220315\t701000\tVentes\tFacture 2022-01\t\t1000,00",
		"AC\tAchats\t3\t20220402\t601000\tAchats\tFournisseur A\t400,00\t",
		"AC\tAchats\t3\t20220402\t401000\tFournisseurs\tFournisseur A\t\t400,00",
	)
	fy2023 := fecContent(
		"VT\tVentes\t1\t20230310\t411000\tClients\tFacture 2023-01\t1500,00\t",
		"VT\tVentes\t1\t20230310\t701000\tVentes\tFacture 2023-01\t\t1500,00",
		"AC\tAchats\t2\t20230405\t601000\tAchats\tFournisseur A\t500,00\t",
		"AC\tAchats\t2\t20230405\t401000\tFournisseurs\tFournisseur A\t\t500,00",
	)
	return []domain.SourceFile{
		{Name: "844118190FEC20221231.txt", Content: fy2022},
		{Name: "844118190FEC20231231.txt", Content: fy2023},
	}
}

type AnalysisServiceSuite struct {
	suite.Suite
	analyzer portssvc.AnalyzerSvc
	bundle   *domain.StatementBundle
}

func (s *AnalysisServiceSuite) SetupTest() {
	s.analyzer = services.NewAnalysisService()
	bundle, err := s.analyzer.Analyze(context.Background(), twoYearFiles())
	s.Require().NoError(err)
	s.bundle = bundle
}

func (s *AnalysisServiceSuite) TestBundleShape() {
	s.NotEmpty(s.bundle.BundleID)
	s.Equal([]int{2022, 2023}, s.bundle.Years)
	s.Len(s.bundle.SourceFiles, 2)
	s.Len(s.bundle.Entries, 10)
	s.Len(s.bundle.ProfitLosses, 2)
	s.Len(s.bundle.Balances, 2)
	s.Len(s.bundle.CashFlows, 2)
	s.Len(s.bundle.KPIs, 2)
	s.Len(s.bundle.Monthly, 2)
	s.Len(s.bundle.Variations, 1)
	s.Len(s.bundle.Variances, 1)
	s.Len(s.bundle.BFREvolution, 2)
	s.Empty(s.bundle.RowErrors)
}

func (s *AnalysisServiceSuite) TestConservation() {
	// Every parsed entry survives classification, unmatched codes included.
	s.Len(s.bundle.Classified, len(s.bundle.Entries))
	for i, ce := range s.bundle.Classified {
		s.Equal(i, ce.Index)
	}
}

func (s *AnalysisServiceSuite) TestStatements() {
	pl2022, ok := s.bundle.PLFor(2022)
	s.Require().True(ok)
	s.True(pl2022.Revenue.Equal(dec("1000")))
	s.True(pl2022.EBITDA().Equal(dec("600")))

	pl2023, ok := s.bundle.PLFor(2023)
	s.Require().True(ok)
	s.True(pl2023.Revenue.Equal(dec("1500")))

	bs2023, ok := s.bundle.BalanceFor(2023)
	s.Require().True(ok)
	s.True(bs2023.Cash.Equal(dec("5000")), "prior-year cash cumulates")
	s.True(bs2023.Receivables.Equal(dec("2500")))

	cf2022, ok := s.bundle.CashFlowFor(2022)
	s.Require().True(ok)
	s.False(cf2022.Applicable, "the first year has no prior balance sheet")

	cf2023, ok := s.bundle.CashFlowFor(2023)
	s.Require().True(ok)
	s.True(cf2023.Applicable)
}

func (s *AnalysisServiceSuite) TestTraceLineage() {
	rec, ok := s.bundle.Trace.Lookup("pl", mapper.CategoryRevenue, 2023)
	s.Require().True(ok)
	s.True(rec.Value.Equal(dec("1500")))
	s.True(rec.Sum().Equal(rec.Value))

	entries := s.bundle.Trace.Entries(rec)
	s.Require().Len(entries, 1)
	s.Equal("701000", entries[0].AccountNum)

	ebitda, ok := s.bundle.Trace.Lookup("pl", "ebitda", 2022)
	s.Require().True(ok)
	s.True(ebitda.Sum().Equal(ebitda.Value))
}

func (s *AnalysisServiceSuite) TestDeterminism() {
	again, err := s.analyzer.Analyze(context.Background(), twoYearFiles())
	s.Require().NoError(err)

	s.NotEqual(s.bundle.BundleID, again.BundleID, "each run gets a fresh bundle ID")
	s.Equal(s.bundle.Years, again.Years)
	s.Equal(s.bundle.ProfitLosses, again.ProfitLosses)
	s.Equal(s.bundle.Balances, again.Balances)
	s.Equal(s.bundle.CashFlows, again.CashFlows)
	s.Equal(s.bundle.Variances, again.Variances)

	rec1, _ := s.bundle.Trace.Lookup("pl", "ebitda", 2023)
	rec2, _ := again.Trace.Lookup("pl", "ebitda", 2023)
	s.Equal(rec1.EntryIDs, rec2.EntryIDs, "trace order must be stable across runs")
}

func TestAnalysisServiceSuite(t *testing.T) {
	suite.Run(t, new(AnalysisServiceSuite))
}

func TestAnalysisService_ParseFailureAborts(t *testing.T) {
	analyzer := services.NewAnalysisService()
	files := []domain.SourceFile{
		{Name: "FEC2023.txt", Content: []byte("")},
	}

	_, err := analyzer.Analyze(context.Background(), files)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrFormat)
}

func TestAnalysisService_UnclassifiedWarning(t *testing.T) {
	analyzer := services.NewAnalysisService()
	content := fecContent(
		"VT\tVentes\t1\t20230310\t701000\tVentes\tFacture\t\t1000,00",
		"VT\tVentes\t1\t20230310\t411000\tClients\tFacture\t1000,00\t",
		"OD\tDivers\t2\t20230601\t890000\tCompte special\tSolde\t0,00\t0,00",
	)

	bundle, err := analyzer.Analyze(context.Background(), []domain.SourceFile{
		{Name: "FEC2023.txt", Content: content},
	})
	require.NoError(t, err)

	found := false
	for _, w := range bundle.Warnings {
		if w.Kind == domain.WarnClassification {
			found = true
			assert.Contains(t, w.Message, "890000")
		}
	}
	assert.True(t, found, "expected an unclassified-accounts warning")
	assert.Len(t, bundle.Classified, 3, "unmatched entries are kept")
}
