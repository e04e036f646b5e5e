package fecparse

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/apperrors"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/core/domain"
	"github.com/corentinsannie-b/wincap-saas-codex-sub000/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// DefaultErrorThreshold is the maximum row-error rate (percent) tolerated
// before the whole parse fails. Noise is tolerated; systemic corruption is not.
const DefaultErrorThreshold = 5.0

// DefaultTolerance is the trial-balance tolerance in currency units.
var DefaultTolerance = decimal.RequireFromString("0.01")

// minRowsBeforeAbort defers the early-abort check until the error rate is
// meaningful, so one bad row at the top of a file cannot kill the parse.
const minRowsBeforeAbort = 50

// fecYearPattern extracts the fiscal year from FEC filenames such as
// 844118190FEC20241231.txt.
var fecYearPattern = regexp.MustCompile(`FEC(\d{4})`)

// SourceYearFromFilename returns the filename-derived year hint, 0 if none.
func SourceYearFromFilename(name string) int {
	m := fecYearPattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return 0
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return year
}

// Header synonyms, case-insensitive. FEC column naming drifts across
// accounting packages, so each field accepts the common variants.
var (
	journalCodeColumns  = set("journalcode", "codejournal", "journal")
	journalLabelColumns = set("journallib", "libellejournal")
	entryNumColumns     = set("ecriturenum", "numero", "entrynum", "num")
	dateColumns         = set("ecrituredate", "dateecriture", "date")
	accountColumns      = set("comptenum", "compte", "accountnum", "account")
	accountLabelColumns = set("comptelib", "complib", "accountlabel")
	labelColumns        = set("ecriturelib", "libelle", "label", "description")
	debitColumns        = set("debit", "montantdebit")
	creditColumns       = set("credit", "montantcredit")
	amountColumns       = set("montant", "amount")
	senseColumns        = set("sens", "direction")
)

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// columnMap holds header-resolved field positions; -1 means absent.
type columnMap struct {
	journalCode  int
	journalLabel int
	entryNum     int
	date         int
	account      int
	accountLabel int
	label        int
	debit        int
	credit       int
	amount       int
	sense        int
}

// hasAmounts reports whether either the two-column or the signed single-column
// amount layout is available.
func (c columnMap) hasAmounts() bool {
	return (c.debit >= 0 && c.credit >= 0) || c.amount >= 0
}

// Parser converts FEC file content into journal entries. It holds only
// configuration and is safe to reuse across files.
type Parser struct {
	errorThreshold float64
	tolerance      decimal.Decimal
}

// Option configures a Parser.
type Option func(*Parser)

// WithErrorThreshold overrides the maximum tolerated row-error rate (percent).
func WithErrorThreshold(pct float64) Option {
	return func(p *Parser) {
		p.errorThreshold = pct
	}
}

// WithTolerance overrides the trial-balance tolerance.
func WithTolerance(t decimal.Decimal) Option {
	return func(p *Parser) {
		p.tolerance = t
	}
}

// NewParser builds a parser with the default thresholds.
func NewParser(options ...Option) *Parser {
	p := &Parser{
		errorThreshold: DefaultErrorThreshold,
		tolerance:      DefaultTolerance,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Parse decodes and parses one FEC file. Row-level failures are recorded and
// skipped; the parse aborts early once the error rate exceeds the threshold,
// so a corrupt file does not get read to the end. The context cancels long
// parses.
func (p *Parser) Parse(ctx context.Context, raw []byte, filename string) (*domain.ParseResult, error) {
	if len(raw) == 0 {
		return nil, &apperrors.FormatError{Filename: filename, Reason: "empty file"}
	}

	content, encoding, lowConfidence, err := Decode(raw)
	if err != nil {
		return nil, &apperrors.FormatError{Filename: filename, Reason: err.Error()}
	}

	result := &domain.ParseResult{
		Filename:   filename,
		Encoding:   encoding,
		SourceYear: SourceYearFromFilename(filename),
	}
	if lowConfidence {
		result.Warnings = append(result.Warnings, domain.Warning{
			Kind:    domain.WarnEncoding,
			Message: fmt.Sprintf("encoding fell back to %s (low confidence)", encoding),
		})
	}

	headerLine, _, _ := strings.Cut(content, "\n")
	result.Delimiter = DetectDelimiter(headerLine)

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = result.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, &apperrors.FormatError{Filename: filename, Reason: "unreadable header: " + err.Error()}
	}

	cols, headerWarning, err := mapHeader(header, filename)
	if err != nil {
		return nil, err
	}
	if headerWarning != nil {
		result.Warnings = append(result.Warnings, *headerWarning)
	}

	rowNum := 1
	for {
		if rowNum%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("parse of %s cancelled: %w", filename, err)
			}
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.TotalRows++
			result.RowErrors = append(result.RowErrors, domain.RowError{
				Filename: filename,
				Row:      rowNum,
				Raw:      truncate(err.Error(), 100),
				Reason:   "malformed CSV row",
			})
			if abort := p.checkEarlyAbort(result, filename); abort != nil {
				return nil, abort
			}
			continue
		}
		if blankRow(row) {
			continue
		}
		result.TotalRows++

		entry, perr := parseRow(row, cols, result.SourceYear)
		if perr != nil {
			result.RowErrors = append(result.RowErrors, domain.RowError{
				Filename: filename,
				Row:      rowNum,
				Raw:      truncate(strings.Join(row, string(result.Delimiter)), 100),
				Reason:   perr.Error(),
			})
			if abort := p.checkEarlyAbort(result, filename); abort != nil {
				return nil, abort
			}
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	if result.TotalRows == 0 {
		return nil, &apperrors.FormatError{Filename: filename, Reason: "no data rows"}
	}
	if len(result.Entries) == 0 {
		return nil, &apperrors.FormatError{
			Filename:      filename,
			Reason:        "no valid rows",
			RowsProcessed: result.TotalRows,
		}
	}
	if rate := 100 - result.SuccessRate(); rate > p.errorThreshold {
		return nil, p.thresholdError(result, filename)
	}

	p.checkTrialBalance(result)
	return result, nil
}

func (p *Parser) checkEarlyAbort(result *domain.ParseResult, filename string) error {
	if result.TotalRows < minRowsBeforeAbort {
		return nil
	}
	if rate := 100 - result.SuccessRate(); rate > p.errorThreshold {
		return p.thresholdError(result, filename)
	}
	return nil
}

func (p *Parser) thresholdError(result *domain.ParseResult, filename string) error {
	first := ""
	if len(result.RowErrors) > 0 {
		first = result.RowErrors[0].String()
	}
	return &apperrors.ThresholdError{
		Filename:   filename,
		Failed:     len(result.RowErrors),
		Total:      result.TotalRows,
		Threshold:  p.errorThreshold,
		FirstError: first,
	}
}

// checkTrialBalance attaches a non-fatal warning when the file's debits and
// credits diverge beyond tolerance.
func (p *Parser) checkTrialBalance(result *domain.ParseResult) {
	_, _, diff := accounting.TrialBalance(result.Entries)
	if diff.Abs().GreaterThan(p.tolerance) {
		result.Warnings = append(result.Warnings, domain.Warning{
			Kind:    domain.WarnImbalance,
			Message: fmt.Sprintf("trial balance off by %s in %s", diff.String(), result.Filename),
			Amount:  diff,
		})
	}
}

// mapHeader resolves column positions. Missing more than one required field
// is fatal; exactly one missing field is tolerated with a warning, since the
// surviving columns may still carry a usable ledger.
func mapHeader(header []string, filename string) (columnMap, *domain.Warning, error) {
	cols := columnMap{
		journalCode: -1, journalLabel: -1, entryNum: -1, date: -1,
		account: -1, accountLabel: -1, label: -1,
		debit: -1, credit: -1, amount: -1, sense: -1,
	}
	for idx, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch {
		case journalCodeColumns[name]:
			cols.journalCode = idx
		case journalLabelColumns[name]:
			cols.journalLabel = idx
		case entryNumColumns[name]:
			cols.entryNum = idx
		case dateColumns[name]:
			cols.date = idx
		case accountColumns[name]:
			cols.account = idx
		case accountLabelColumns[name]:
			cols.accountLabel = idx
		case labelColumns[name]:
			cols.label = idx
		case debitColumns[name]:
			cols.debit = idx
		case creditColumns[name]:
			cols.credit = idx
		case amountColumns[name]:
			cols.amount = idx
		case senseColumns[name]:
			cols.sense = idx
		}
	}

	var missing []string
	for _, req := range []struct {
		name    string
		present bool
	}{
		{"journal code", cols.journalCode >= 0},
		{"journal label", cols.journalLabel >= 0},
		{"entry number", cols.entryNum >= 0},
		{"entry date", cols.date >= 0},
		{"account number", cols.account >= 0},
		{"account label", cols.accountLabel >= 0},
		{"debit/credit or amount", cols.hasAmounts()},
	} {
		if !req.present {
			missing = append(missing, req.name)
		}
	}

	if len(missing) > 1 {
		return cols, nil, &apperrors.FormatError{
			Filename: filename,
			Reason:   "missing required header fields: " + strings.Join(missing, ", "),
		}
	}
	if len(missing) == 1 {
		w := domain.Warning{
			Kind:    domain.WarnHeader,
			Message: fmt.Sprintf("header field missing in %s: %s", filename, missing[0]),
		}
		return cols, &w, nil
	}
	return cols, nil, nil
}

func parseRow(row []string, cols columnMap, sourceYear int) (domain.JournalEntry, error) {
	get := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	dateStr := get(cols.date)
	if cols.date < 0 {
		return domain.JournalEntry{}, fmt.Errorf("no entry date column")
	}
	entryDate, err := parseDate(dateStr)
	if err != nil {
		return domain.JournalEntry{}, err
	}

	account := get(cols.account)
	if account == "" {
		return domain.JournalEntry{}, fmt.Errorf("empty account number")
	}

	var debit, credit decimal.Decimal
	if cols.debit >= 0 && cols.credit >= 0 {
		if debit, err = parseAmount(get(cols.debit), "debit"); err != nil {
			return domain.JournalEntry{}, err
		}
		if credit, err = parseAmount(get(cols.credit), "credit"); err != nil {
			return domain.JournalEntry{}, err
		}
	} else if cols.amount >= 0 {
		amount, err := parseAmount(get(cols.amount), "amount")
		if err != nil {
			return domain.JournalEntry{}, err
		}
		debit, credit = splitSignedAmount(amount, get(cols.sense))
	} else {
		return domain.JournalEntry{}, fmt.Errorf("no amount columns")
	}

	return domain.JournalEntry{
		EntryDate:   entryDate,
		JournalCode: get(cols.journalCode),
		EntryNum:    get(cols.entryNum),
		AccountNum:  account,
		AccountLib:  get(cols.accountLabel),
		Label:       get(cols.label),
		Debit:       debit,
		Credit:      credit,
		SourceYear:  sourceYear,
	}, nil
}

// splitSignedAmount maps the single signed-amount layout onto debit/credit.
// With a sense column, D/C decides; without one, the sign does.
func splitSignedAmount(amount decimal.Decimal, sense string) (debit, credit decimal.Decimal) {
	switch strings.ToUpper(sense) {
	case "C":
		return decimal.Zero, amount.Abs()
	case "D":
		return amount.Abs(), decimal.Zero
	}
	if amount.IsNegative() {
		return decimal.Zero, amount.Abs()
	}
	return amount, decimal.Zero
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
