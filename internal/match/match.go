package match

import (
	"resonate/internal/library"
	"resonate/internal/remote"
)

// Result annotates a remote row with its resolution outcome. ResolvedPath
// is empty when the row found no qualifying local file.
type Result struct {
	Row             remote.Row
	ResolvedPath    string
	LocalDurationMS int64
}

// Resolved reports whether the row matched a local file.
func (r Result) Resolved() bool {
	return r.ResolvedPath != ""
}

// Match resolves every remote row against the index. Candidates share the
// row's canonical key; when both durations are known the candidate must be
// within toleranceMS, and a candidate with unknown duration always
// qualifies. Among qualifying candidates the lexicographically smallest
// RelPath wins, which the index ordering already guarantees. A key match
// whose candidates all fail the duration gate stays unresolved: a
// wrong-duration file is a false positive, not a partial success.
func Match(rows []remote.Row, idx *library.Index, toleranceMS int64) []Result {
	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, matchRow(row, idx, toleranceMS))
	}
	return results
}

func matchRow(row remote.Row, idx *library.Index, toleranceMS int64) Result {
	result := Result{Row: row}
	for _, candidate := range idx.Lookup(row.Key) {
		if !durationCompatible(row, candidate, toleranceMS) {
			continue
		}
		result.ResolvedPath = candidate.RelPath
		result.LocalDurationMS = candidate.DurationMS
		break
	}
	return result
}

func durationCompatible(row remote.Row, candidate library.Record, toleranceMS int64) bool {
	if !row.HasDuration() || !candidate.HasDuration() {
		return true
	}
	delta := row.DurationMS - candidate.DurationMS
	if delta < 0 {
		delta = -delta
	}
	return delta <= toleranceMS
}
