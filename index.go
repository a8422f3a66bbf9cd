// Package lexis implements an in-memory full-text search engine for
// documentation corpora: an inverted index with positional postings, a trie
// for prefix expansion, a correlation store for synonym expansion, a link
// graph, and a Dirichlet+ relevance scorer with optional HITS re-ranking.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHAT IS AN INVERTED INDEX?
// ═══════════════════════════════════════════════════════════════════════════════
// An inverted index is like the index at the back of a book, but for search
// engines: instead of pages, we track documents; instead of a flat list, each
// term maps to the exact positions it occurred at, so we can do more than
// just "does this doc contain the word" — we can check adjacency for
// phrases and weigh terms by how rare they are in the corpus.
// ═══════════════════════════════════════════════════════════════════════════════

package lexis

import (
	"log/slog"
	"sync"
)

// termKey is the (property-name, field-name) pair a TermEntry's
// timesAppeared counter is keyed by (§3, and the Open Question resolved in
// SPEC_FULL.md: the stored and read key agree).
type termKey struct {
	PropertyName string
	FieldName    FieldName
}

// TermEntry is the per-token posting: which documents contain it, where
// (doc-id → ordered list of global token positions, per spec.md §3 — the
// list is already sorted on read because ingest only ever appends the
// current, monotonically increasing globalPosition), and how many distinct
// (doc, field) registrations back the term-in-language probability used by
// the scorer (§4.7).
type TermEntry struct {
	docs          []int // append-only; one entry per (doc,field) first occurrence
	positions     map[int][]int
	timesAppeared map[termKey]int
}

func newTermEntry() *TermEntry {
	return &TermEntry{
		positions:     make(map[int][]int),
		timesAppeared: make(map[termKey]int),
	}
}

// positionsInDoc returns every global position recorded for this term
// within docID, in increasing order (ingest only ever appends, and
// globalPosition only ever increases — see indexField below).
func (te *TermEntry) positionsInDoc(docID int) []int {
	return te.positions[docID]
}

// InvertedIndex is the engine-wide search index: fields, postings, trie,
// correlation store, link graph, and per-document weights, all scoped to a
// single corpus. There is deliberately no Delete — see the engine's
// Non-goals.
type InvertedIndex struct {
	mu sync.Mutex

	fieldOrder []FieldName
	fields     map[FieldName]*Field

	Terms        map[string]*TermEntry
	Trie         *Trie
	Correlations *CorrelationStore
	Links        *LinkGraph

	DocWeights map[int]float64

	nextDocID      int
	globalPosition int
}

// NewIndex builds an empty index over the given ordered field specs.
func NewIndex(specs []FieldSpec) *InvertedIndex {
	idx := &InvertedIndex{
		fields:       make(map[FieldName]*Field),
		Terms:        make(map[string]*TermEntry),
		Trie:         NewTrie(),
		Correlations: NewCorrelationStore(),
		Links:        NewLinkGraph(),
		DocWeights:   make(map[int]float64),
	}
	for _, spec := range specs {
		idx.fieldOrder = append(idx.fieldOrder, spec.Name)
		idx.fields[spec.Name] = newField(spec)
	}
	return idx
}

// Field returns the field by name, or nil if the index was not constructed
// with it.
func (idx *InvertedIndex) Field(name FieldName) *Field {
	return idx.fields[name]
}

// Fields returns the index's fields in construction order.
func (idx *InvertedIndex) Fields() []*Field {
	out := make([]*Field, len(idx.fieldOrder))
	for i, name := range idx.fieldOrder {
		out[i] = idx.fields[name]
	}
	return out
}

// Add ingests a document under propertyName, assigning it the next
// document id. It implements the 5-step ingest contract: link-graph update,
// then per field — invalidate the length cache, tokenize with correlation
// prefixes preserved, register each surviving token, and bump the global
// position counter between fields. sink, if non-nil, is invoked once per
// newly observed distinct token — the seam an external spelling-dictionary
// builder plugs into.
func (idx *InvertedIndex) Add(propertyName string, doc Document, sink func(string)) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	docID := idx.nextDocID
	idx.nextDocID++

	weight := doc.Weight
	if weight == 0 {
		weight = 1.0
	}
	idx.DocWeights[docID] = weight

	if doc.URL != "" && doc.Links != nil {
		idx.Links.Add(docID, doc.URL, doc.Links)
	}

	slog.Info("indexing document", slog.Int("docID", docID), slog.String("property", propertyName))

	for _, name := range idx.fieldOrder {
		field := idx.fields[name]
		field.invalidateLengthWeight()

		text, ok := doc.fieldText(name)
		if !ok {
			continue
		}

		idx.indexField(field, propertyName, docID, text, sink)
		idx.globalPosition++ // inter-field bump, prevents cross-field adjacency
	}

	return docID
}

func (idx *InvertedIndex) indexField(field *Field, propertyName string, docID int, text string, sink func(string)) {
	tokens := analyzeTokens(text)
	entry := field.entry(docID, propertyName)

	for _, tok := range tokens {
		stored := tok.Stored
		if tok.Prefix != noPrefix {
			idx.Correlations.CorrelateWord(tok.Base, stored, 0.9)
		}

		position := idx.globalPosition
		idx.globalPosition++

		field.totalTokensSeen++
		entry.Len++

		_, seenInDocField := entry.TermFrequencies[stored]
		entry.TermFrequencies[stored]++

		term, exists := idx.Terms[stored]
		isNewTerm := !exists
		if isNewTerm {
			term = newTermEntry()
			idx.Terms[stored] = term
		}
		if isNewTerm && sink != nil {
			sink(stored)
		}

		if !seenInDocField {
			idx.Trie.Insert(stored, docID)
			term.docs = append(term.docs, docID)
			term.timesAppeared[termKey{PropertyName: propertyName, FieldName: field.Name}]++
		}

		term.positions[docID] = append(term.positions[docID], position)
	}
}
