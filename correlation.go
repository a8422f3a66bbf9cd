package lexis

import "strings"

// ═══════════════════════════════════════════════════════════════════════════════
// CORRELATION STORE: Synonym Expansion
// ═══════════════════════════════════════════════════════════════════════════════
// The correlation store maps a token, or a token-bigram, to a weighted list of
// synonym tokens. Two sources populate it: explicit caller calls to
// CorrelateWord (e.g. "k8s" → "kubernetes"), and the correlation-prefix rule
// discovered during ingest (§4.1) — a token spelled "%%kubernetes" implies
// CorrelateWord("kubernetes", "%%kubernetes", 0.9).
//
// At query time, CollectCorrelations walks the parsed term list, probing both
// single-token and adjacent-bigram keys, then folds in one more transitive
// hop so a two-step chain (a→b, b→c) contributes c at the weight of the b→c
// entry itself (not multiplied by a→b's weight), without chasing bigram hops
// recursively.
// ═══════════════════════════════════════════════════════════════════════════════

// correlation is one (synonym, weight) entry under a key.
type correlation struct {
	synonym string
	weight  float64
}

// CorrelationStore holds weighted synonym correlations keyed by a
// (possibly multi-token, stemmed, space-joined) word.
type CorrelationStore struct {
	entries map[string][]correlation
}

// NewCorrelationStore creates an empty store.
func NewCorrelationStore() *CorrelationStore {
	return &CorrelationStore{entries: make(map[string][]correlation)}
}

// CorrelateWord registers a synonym correlation from word to synonym at the
// given closeness weight. word may be multi-token; it is tokenized with
// prefix retention, each token's correlation prefix stripped and the rest
// stemmed, and rejoined with single spaces to form the lookup key. synonym is stemmed. Conflicting entries under the same
// key are appended, never deduplicated or overwritten (§4.5).
func (c *CorrelationStore) CorrelateWord(word, synonym string, closeness float64) {
	key := correlationKey(word)
	if key == "" {
		return
	}
	c.entries[key] = append(c.entries[key], correlation{
		synonym: stem(strings.ToLower(synonym)),
		weight:  closeness,
	})
}

// correlationKey tokenizes word (prefix-sensitive), strips each piece's
// correlation prefix, stems what remains, and rejoins with single spaces.
func correlationKey(word string) string {
	raw := tokenizeKeepPrefixes(strings.ToLower(word))
	if len(raw) == 0 {
		return ""
	}
	stemmed := make([]string, len(raw))
	for i, tok := range raw {
		_, base := splitCorrelationPrefix(tok)
		stemmed[i] = stem(base)
	}
	return strings.Join(stemmed, " ")
}

// CollectCorrelations expands a parsed query's stemmed term list into a
// weighted map of every term (original plus correlated) per §4.5: seed at
// weight 1.0, probe unigram and bigram keys for each position, fold max
// weight on conflict, then perform one additional transitive single-hop pass
// over the expanded set (bigram hops are not chased recursively).
func (c *CorrelationStore) CollectCorrelations(queryTerms []string) map[string]float64 {
	weights := make(map[string]float64, len(queryTerms))
	for _, t := range queryTerms {
		weights[stem(t)] = 1.0
	}

	apply := func(key string) {
		for _, corr := range c.entries[key] {
			if existing, ok := weights[corr.synonym]; !ok || corr.weight > existing {
				weights[corr.synonym] = corr.weight
			}
		}
	}

	n := len(queryTerms)
	for i := 0; i < n; i++ {
		apply(stem(queryTerms[i]))
		if i < n-1 {
			apply(stem(queryTerms[i]) + " " + stem(queryTerms[i+1]))
		}
	}

	// One more transitive single-hop pass over everything collected so far.
	expanded := make([]string, 0, len(weights))
	for term := range weights {
		expanded = append(expanded, term)
	}
	for _, term := range expanded {
		apply(term)
	}

	return weights
}
