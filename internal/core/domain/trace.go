package domain

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// TraceRecord maps one statement line to the exact set of source entries
// whose signed amounts sum to the line's value. Entries are referenced by
// arena index, never by pointer, so trace data stays cycle-free and cheap
// to serialize. Amounts holds each entry's signed contribution to the line,
// parallel to EntryIDs; their sum equals Value exactly.
type TraceRecord struct {
	Statement string            `json:"statement"` // "pl" | "balance"
	Line      string            `json:"line"`
	Year      int               `json:"year"`
	Formula   string            `json:"formula"`
	EntryIDs  []int             `json:"entryIDs"`
	Amounts   []decimal.Decimal `json:"amounts"`
	Value     decimal.Decimal   `json:"value"`
}

// Sum adds up the signed contributions. It must reproduce Value exactly.
func (r TraceRecord) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Amounts {
		total = total.Add(a)
	}
	return total
}

// TraceIndex is the lineage structure for a build. The entry arena is
// append-only and owned by the index; records store integer offsets into it.
// Put is safe for concurrent builders.
type TraceIndex struct {
	mu      sync.RWMutex
	entries []JournalEntry
	records map[string]TraceRecord
}

// NewTraceIndex builds an index over the parsed-entry arena.
func NewTraceIndex(entries []JournalEntry) *TraceIndex {
	return &TraceIndex{
		entries: entries,
		records: make(map[string]TraceRecord),
	}
}

func traceKey(statement, line string, year int) string {
	return fmt.Sprintf("%s:%d:%s", statement, year, line)
}

// Put registers a record, replacing any previous record for the same line.
func (t *TraceIndex) Put(rec TraceRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records[traceKey(rec.Statement, rec.Line, rec.Year)] = rec
}

// Lookup finds the record for a statement line by metric name and year.
func (t *TraceIndex) Lookup(statement, line string, year int) (TraceRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.records[traceKey(statement, line, year)]
	return rec, ok
}

// Entries resolves a record's indices back to the source entries.
func (t *TraceIndex) Entries(rec TraceRecord) []JournalEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]JournalEntry, 0, len(rec.EntryIDs))
	for _, id := range rec.EntryIDs {
		if id >= 0 && id < len(t.entries) {
			out = append(out, t.entries[id])
		}
	}
	return out
}

// Len reports the number of records held.
func (t *TraceIndex) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}

// Records returns a copy of all records, for consumers that serialize the
// full lineage.
func (t *TraceIndex) Records() []TraceRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]TraceRecord, 0, len(t.records))
	for _, rec := range t.records {
		out = append(out, rec)
	}
	return out
}
