package lexis

import (
	"log/slog"
	"sort"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SEARCH DRIVER
// ═══════════════════════════════════════════════════════════════════════════════
// Orchestrates the full query pipeline: parse → correlation expansion →
// trie prefix expansion → candidate-set gathering → per-doc Dirichlet+
// scoring → phrase filtering → optional HITS re-ranking → cap at
// MaxMatches.
// ═══════════════════════════════════════════════════════════════════════════════

// Match is the ephemeral per-query record for one document: its
// accumulated relevance, the terms that actually matched it (held as both a
// set for membership checks and an ordered slice for stable output, per the
// simplification the original design explicitly sanctions rather than
// type-punning one field between the two), its final composite score, and
// its HITS authority/hub scores. Matches never outlive the Search call that
// created them.
type Match struct {
	DocID          int
	RelevancyScore float64
	MatchedTermSet map[string]struct{}
	MatchedTerms   []string
	Score          float64
	Authority      float64
	Hub            float64
}

// Search runs query against idx, optionally re-ranking the result with HITS
// link analysis. Matches satisfy query.Filter and are capped at
// MaxMatches, sorted descending by score (or by relevancy score alone when
// useHits is false). rawQuery is parsed with ParseQuery, so query.Filter is
// always the accept-all default; Search takes no caller-supplied Query or
// filter.
func Search(idx *InvertedIndex, rawQuery string, useHits bool) ([]*Match, error) {
	query, err := ParseQuery(rawQuery)
	if err != nil {
		return nil, err
	}
	if len(query.Terms) == 0 {
		return nil, nil
	}

	slog.Info("search", slog.String("query", rawQuery), slog.Bool("hits", useHits))

	expandedWeights := idx.Correlations.CollectCorrelations(query.StemmedTerms())
	matchedWeights := expandViaTrie(idx, expandedWeights)

	matchedTerms := make([]string, 0, len(matchedWeights))
	for t := range matchedWeights {
		matchedTerms = append(matchedTerms, t)
	}

	candidates := candidateDocs(idx, matchedTerms)
	docIDs := filterDocs(candidates, query.Filter)

	matches := make([]*Match, 0, len(docIDs))
	for _, docID := range docIDs {
		score, terms := ScoreDocument(idx, docID, query, matchedTerms, matchedWeights)
		if !PhraseMatches(idx, docID, query) {
			continue
		}

		termSet := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			termSet[t] = struct{}{}
		}

		matches = append(matches, &Match{
			DocID:          docID,
			RelevancyScore: score,
			MatchedTermSet: termSet,
			MatchedTerms:   terms,
			Authority:      1.0,
			Hub:            1.0,
		})
	}

	if useHits {
		return RunHITS(idx, matches), nil
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].RelevancyScore > matches[j].RelevancyScore
	})
	return capMatches(matches), nil
}

// expandViaTrie resolves every correlation-expanded term through the trie's
// prefix search, folding the correlation weight onto every concrete indexed
// spelling it expands to (max weight on conflict).
func expandViaTrie(idx *InvertedIndex, expandedWeights map[string]float64) map[string]float64 {
	matched := make(map[string]float64)
	for term, weight := range expandedWeights {
		hits := idx.Trie.Search(term, true)
		for _, terms := range hits {
			for t := range terms {
				if existing, ok := matched[t]; !ok || weight > existing {
					matched[t] = weight
				}
			}
		}
	}
	return matched
}
