package lexis

import "math"

// ═══════════════════════════════════════════════════════════════════════════════
// SCORER: Dirichlet+ Relevance and Phrase Validation
// ═══════════════════════════════════════════════════════════════════════════════
// Dirichlet+ is a lower-bounded Dirichlet-smoothed language-model score: a
// document's relevance for a term is how much more likely that term is to
// appear in this document than in the corpus at large, with a δ floor so
// rare terms never collapse to exactly zero. Unlike BM25's k1/b saturation
// parameters, Dirichlet smoothing ties its normalization directly to the
// language model's term probability, which is why the scorer below threads
// per-field term-probability bookkeeping straight out of the index rather
// than a standalone IDF table.
// ═══════════════════════════════════════════════════════════════════════════════

const (
	dirichletMu       = 2000.0
	dirichletDelta    = 0.05
	defaultTermWeight = 0.1
	mandatoryBoost    = 1.5
)

// correlationWeightFor looks up term's expansion weight, falling back to the
// default weight of an unweighted (non-seed, non-correlated) term.
func correlationWeightFor(weights map[string]float64, term string) float64 {
	if w, ok := weights[term]; ok {
		return w
	}
	return defaultTermWeight
}

// ScoreDocument accumulates docID's relevancyScore across every expanded
// term and every field, per §4.7. It returns the accumulated score together
// with the distinct expanded terms that actually occurred in docID (the
// Match's matched-term set).
func ScoreDocument(idx *InvertedIndex, docID int, query *Query, expandedTerms []string, expandedWeights map[string]float64) (score float64, matchedTerms []string) {
	mandatoryStems := query.mandatoryStems()
	queryLen := float64(query.QueryLen())
	docWeight := idx.DocWeights[docID]
	if docWeight == 0 {
		docWeight = 1.0
	}

	seen := make(map[string]struct{})

	for _, term := range expandedTerms {
		termEntry, ok := idx.Terms[term]
		if !ok {
			continue
		}

		termWeight := correlationWeightFor(expandedWeights, term)
		if _, mandatory := mandatoryStems[term]; mandatory {
			termWeight *= mandatoryBoost
		}

		var matchedInDoc bool
		for _, field := range idx.Fields() {
			entry, ok := field.docs[docID]
			if !ok {
				continue
			}
			tfInDoc := float64(entry.TermFrequencies[term])

			occurrences := termEntry.timesAppeared[termKey{PropertyName: entry.PropertyName, FieldName: field.Name}]
			termProb := float64(occurrences) / math.Max(float64(field.totalTokensSeen), 500)
			if termProb == 0 {
				continue
			}

			docLen := float64(entry.Len)
			termScore := termWeight * (log2(1+tfInDoc/(dirichletMu*termProb)) +
				log2(1+dirichletDelta/(dirichletMu*termProb)) +
				queryLen*log2(dirichletMu/(docLen+dirichletMu)))

			score += termScore * field.Weight * field.LengthWeight() * docWeight
			if tfInDoc > 0 {
				matchedInDoc = true
			}
		}

		if matchedInDoc {
			if _, dup := seen[term]; !dup {
				seen[term] = struct{}{}
				matchedTerms = append(matchedTerms, term)
			}
		}
	}

	return score, matchedTerms
}

func log2(x float64) float64 {
	return math.Log2(x)
}

// ═══════════════════════════════════════════════════════════════════════════════
// PHRASE CHECK
// ═══════════════════════════════════════════════════════════════════════════════

// PhraseMatches reports whether docID satisfies every phrase in the query
// (§4.8). A query with no phrases trivially matches.
func PhraseMatches(idx *InvertedIndex, docID int, query *Query) bool {
	for _, phrase := range query.Phrases {
		if !phraseSatisfied(idx, docID, phrase) {
			return false
		}
	}
	return true
}

// phraseSatisfied checks whether some starting position lets every term of
// phrase land on strictly consecutive positions within docID.
func phraseSatisfied(idx *InvertedIndex, docID int, phrase []string) bool {
	positions := make([][]int, len(phrase))
	for i, term := range phrase {
		entry, ok := idx.Terms[term]
		if !ok {
			return false
		}
		pos := entry.positionsInDoc(docID)
		if len(pos) == 0 {
			return false
		}
		positions[i] = pos
	}

	for _, start := range positions[0] {
		consecutive := true
		for i := 1; i < len(phrase); i++ {
			if !containsPosition(positions[i], start+i) {
				consecutive = false
				break
			}
		}
		if consecutive {
			return true
		}
	}
	return false
}

func containsPosition(positions []int, target int) bool {
	for _, p := range positions {
		if p == target {
			return true
		}
	}
	return false
}
