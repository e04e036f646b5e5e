package fecparse

import "strings"

// delimiterCandidates are tried in priority order: tab is the normative FEC
// separator, semicolon the common spreadsheet re-export, then pipe and comma.
// Ties in occurrence count resolve to the earlier candidate.
var delimiterCandidates = [...]rune{'\t', ';', '|', ','}

// DetectDelimiter picks the candidate occurring most often in the header
// line. With no candidate present at all, tab is assumed.
func DetectDelimiter(header string) rune {
	best := delimiterCandidates[0]
	bestCount := 0
	for _, cand := range delimiterCandidates {
		if n := strings.Count(header, string(cand)); n > bestCount {
			best = cand
			bestCount = n
		}
	}
	return best
}
