package lexis

import (
	"errors"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// QUERY PARSER
// ═══════════════════════════════════════════════════════════════════════════════
// A raw query string is split into a term set and a list of phrases (straight
// double-quoted runs). Every phrase's tokens are also folded into the term
// set, since a phrase match still contributes to relevance accumulation.
//
// The boolean mini-language this package's teacher exposed publicly
// (And/Or/Not/Group chains over roaring bitmaps) is not part of this query
// language — the only syntax recognized here is quoting. What survives from
// that design is its bitmap plumbing: candidateDocs/allDocIDs/filterDocs
// below do the same cheap intersect-before-score pass, just driven by the
// parsed Query instead of a fluent builder.
// ═══════════════════════════════════════════════════════════════════════════════

// ErrQueryTooLong is returned when a query's distinct-term count exceeds
// maxQueryTerms (§4.2). An empty query is not an error — it is represented
// by a Query with no terms and resolves to zero matches.
var ErrQueryTooLong = errors.New("query has too many distinct terms")

const maxQueryTerms = 10

// queryTerm pairs a term's original-case spelling (for mandatory-term
// membership checks) with its analyzed, index-form spelling.
type queryTerm struct {
	Raw     string
	Stemmed string
}

// Query is a parsed search request: the distinct terms to match (original
// query length, before correlation expansion, drives §4.7's length
// normalization), any quoted phrases, and an optional caller filter.
type Query struct {
	Terms   []queryTerm
	Phrases [][]string // each phrase is a sequence of stemmed terms

	// Mandatory holds caller-supplied operator-like raw tokens. IsMandatory
	// checks a raw spelling against it; the scorer stems each entry and boosts
	// termWeight 1.5x for every expanded term equal to one of those stems.
	Mandatory map[string]struct{}

	// Filter restricts matches to doc ids satisfying the predicate. Default
	// accepts every doc id.
	Filter func(docID int) bool
}

// QueryLen is the number of original query terms before correlation
// expansion — the queryLen factor of §4.7.
func (q *Query) QueryLen() int {
	return len(q.Terms)
}

// StemmedTerms returns the distinct stemmed/analyzed forms of the query's
// terms, in order.
func (q *Query) StemmedTerms() []string {
	out := make([]string, len(q.Terms))
	for i, t := range q.Terms {
		out[i] = t.Stemmed
	}
	return out
}

// IsMandatory reports whether a term (matched by its original, unstemmed
// spelling) was flagged mandatory by the caller.
func (q *Query) IsMandatory(raw string) bool {
	if q.Mandatory == nil {
		return false
	}
	_, ok := q.Mandatory[raw]
	return ok
}

func acceptAll(int) bool { return true }

// mandatoryStems stems every caller-supplied mandatory raw token, producing
// the lookup-key set the scorer checks expanded terms against (§4.7).
func (q *Query) mandatoryStems() map[string]struct{} {
	stems := make(map[string]struct{}, len(q.Mandatory))
	for raw := range q.Mandatory {
		stems[stem(strings.ToLower(raw))] = struct{}{}
	}
	return stems
}

// ParseQuery parses a raw query string into terms and phrases per §4.2.
// Straight double quotes delimit a phrase; a phrase's tokens are folded
// into the term set in addition to forming an ordered phrase entry. Fails
// with ErrQueryTooLong when the distinct-term count exceeds 10. An empty (or
// all-stopword) query is not an error — it is represented by a Query with no
// terms and no phrases, and the search driver returns zero matches for it.
func ParseQuery(raw string) (*Query, error) {
	plainParts, phraseParts := splitQuotedPhrases(raw)

	q := &Query{Filter: acceptAll}
	seen := make(map[string]struct{})

	addTerm := func(tok analyzedToken) {
		if _, ok := seen[tok.Stored]; ok {
			return
		}
		seen[tok.Stored] = struct{}{}
		q.Terms = append(q.Terms, queryTerm{Raw: tok.Raw, Stemmed: tok.Stored})
	}

	for _, part := range plainParts {
		for _, tok := range analyzeTokens(part) {
			addTerm(tok)
		}
	}

	for _, phrase := range phraseParts {
		tokens := analyzeTokens(phrase)
		if len(tokens) == 0 {
			continue
		}
		stemmed := make([]string, len(tokens))
		for i, tok := range tokens {
			addTerm(tok)
			stemmed[i] = tok.Stored
		}
		q.Phrases = append(q.Phrases, stemmed)
	}

	if len(q.Terms) > maxQueryTerms {
		return nil, ErrQueryTooLong
	}

	return q, nil
}

// splitQuotedPhrases separates a raw query into the plain-text segments
// (outside quotes) and the phrase segments (inside a matching pair of
// straight double quotes). An unterminated trailing quote is treated as
// plain text for the remainder of the string.
func splitQuotedPhrases(raw string) (plain []string, phrases []string) {
	for {
		start := strings.IndexByte(raw, '"')
		if start == -1 {
			plain = append(plain, raw)
			return
		}
		plain = append(plain, raw[:start])

		rest := raw[start+1:]
		end := strings.IndexByte(rest, '"')
		if end == -1 {
			plain = append(plain, rest)
			return
		}
		phrases = append(phrases, rest[:end])
		raw = rest[end+1:]
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// CANDIDATE-SET BITMAP ALGEBRA
// ═══════════════════════════════════════════════════════════════════════════════
// Internal helpers only — not a public query DSL. Used by the search driver
// to cheaply intersect a caller's filter against the expanded-term candidate
// set before the per-field Dirichlet+ accumulation runs.
// ═══════════════════════════════════════════════════════════════════════════════

// candidateDocs unions, across every expanded term, the doc ids listed in
// that term's TermEntry (exact match only — prefix expansion happens
// earlier, at the point the caller builds expandedTerms).
func candidateDocs(idx *InvertedIndex, expandedTerms []string) *roaring.Bitmap {
	result := roaring.NewBitmap()
	for _, term := range expandedTerms {
		entry, ok := idx.Terms[term]
		if !ok {
			continue
		}
		for _, docID := range entry.docs {
			result.Add(uint32(docID))
		}
	}
	return result
}

// allDocIDs returns the universe of every doc id the index has assigned a
// weight to. Search does not call it; its candidate set always comes from
// candidateDocs.
func allDocIDs(idx *InvertedIndex) *roaring.Bitmap {
	result := roaring.NewBitmap()
	for docID := range idx.DocWeights {
		result.Add(uint32(docID))
	}
	return result
}

// filterDocs intersects candidates with every doc id satisfying filter,
// returning the surviving doc ids as a plain slice for downstream iteration.
func filterDocs(candidates *roaring.Bitmap, filter func(int) bool) []int {
	if filter == nil {
		filter = acceptAll
	}
	var out []int
	iter := candidates.Iterator()
	for iter.HasNext() {
		docID := int(iter.Next())
		if filter(docID) {
			out = append(out, docID)
		}
	}
	return out
}
