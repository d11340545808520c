package schema

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"tabularium/internal/core/apperror"
)

// MatchTier orders match confidence from strongest to weakest.
type MatchTier string

const (
	TierExact       MatchTier = "exact"
	TierAlternative MatchTier = "alternative"
	TierFuzzy       MatchTier = "fuzzy"
	TierUnmatched   MatchTier = "unmatched"
)

// Match is the outcome of resolving one header against a table schema.
type Match struct {
	// Input is the raw header the caller asked about, preserved so
	// unmatched headers can be reported back verbatim.
	Input string `json:"input"`

	// Column is the resolved column, nil when unmatched.
	Column *ColumnDefinition `json:"column,omitempty"`

	Tier MatchTier `json:"tier"`

	// Score is 1.0 for exact and alternative matches and the similarity
	// ratio for fuzzy ones.
	Score float64 `json:"score,omitempty"`
}

// Matched reports whether the header resolved to a column.
func (m Match) Matched() bool {
	return m.Column != nil && m.Tier != TierUnmatched
}

// DefaultFuzzyThreshold is the minimum similarity the fuzzy tier accepts.
const DefaultFuzzyThreshold = 0.8

// ResolverOptions tunes header resolution.
type ResolverOptions struct {
	// FuzzyThreshold overrides DefaultFuzzyThreshold when positive.
	FuzzyThreshold float64
}

// Resolver maps raw spreadsheet headers onto table columns. It holds no
// mutable state and may be shared across goroutines.
type Resolver struct {
	threshold float64
}

// NewResolver creates a resolver with the given options.
func NewResolver(opts ResolverOptions) *Resolver {
	threshold := opts.FuzzyThreshold
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	return &Resolver{threshold: threshold}
}

// Resolve matches one raw header against the table's columns.
//
// Tiers are tried strictly in order and the first hit wins:
//
//  1. exact: normalized header equals a normalized column ID or label
//  2. alternative: normalized header equals a normalized alternative
//  3. fuzzy: best similarity across IDs, labels and alternatives at or
//     above the threshold
//
// Anything else is unmatched. A header that equals alternatives of more
// than one column is an authoring defect and returns an ambiguous-match
// error instead of silently picking a side. Ties within a tier prefer the
// required column, then the shorter column ID, then the lexicographically
// smaller one.
func (r *Resolver) Resolve(table *TableSchema, header string) (Match, error) {
	m := Match{Input: header, Tier: TierUnmatched}
	n := Normalize(header)
	if n == "" {
		return m, nil
	}

	var exact *ColumnDefinition
	for i := range table.Columns {
		col := &table.Columns[i]
		if Normalize(col.ID) != n && Normalize(col.Label) != n {
			continue
		}
		if exact == nil || preferColumn(col, exact) {
			exact = col
		}
	}
	if exact != nil {
		m.Column, m.Tier, m.Score = exact, TierExact, 1
		return m, nil
	}

	var viaAlternative []*ColumnDefinition
	for i := range table.Columns {
		col := &table.Columns[i]
		for _, alt := range col.Alternatives {
			if Normalize(alt) == n {
				viaAlternative = append(viaAlternative, col)
				break
			}
		}
	}
	if len(viaAlternative) > 1 {
		ids := make([]string, len(viaAlternative))
		for i, col := range viaAlternative {
			ids[i] = col.ID
		}
		return m, apperror.NewAmbiguousMatch(header, ids)
	}
	if len(viaAlternative) == 1 {
		m.Column, m.Tier, m.Score = viaAlternative[0], TierAlternative, 1
		return m, nil
	}

	var best *ColumnDefinition
	bestScore := 0.0
	for i := range table.Columns {
		col := &table.Columns[i]
		score := 0.0
		for _, cand := range col.matchCandidates() {
			cn := Normalize(cand)
			if cn == "" {
				continue
			}
			if s := similarity(n, cn); s > score {
				score = s
			}
		}
		switch {
		case best == nil || score > bestScore:
			best, bestScore = col, score
		case score == bestScore && preferColumn(col, best):
			best = col
		}
	}
	if best != nil && bestScore >= r.threshold {
		m.Column, m.Tier, m.Score = best, TierFuzzy, bestScore
	}
	return m, nil
}

// preferColumn reports whether a wins a same-tier tie against b.
func preferColumn(a, b *ColumnDefinition) bool {
	if a.Required != b.Required {
		return a.Required
	}
	if len(a.ID) != len(b.ID) {
		return len(a.ID) < len(b.ID)
	}
	return a.ID < b.ID
}

// similarity converts Levenshtein distance into a 0..1 ratio over the
// longer input's rune length.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
