package lexis

import (
	"testing"
)

// ═══════════════════════════════════════════════════════════════════════════════
// BASIC SEARCH TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestSearch_SingleDocumentTitleMatch(t *testing.T) {
	idx := NewIndex(DefaultFields())
	idx.Add("doc", Document{Title: "Quick Start Guide", Text: "getting started is easy"}, nil)

	results, err := Search(idx, "quick start", false)
	if err != nil {
		t.Fatalf("Search() error = %v, want nil", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search() returned %d matches, want 1", len(results))
	}
	if results[0].RelevancyScore <= 0 {
		t.Errorf("RelevancyScore = %f, want > 0", results[0].RelevancyScore)
	}
}

func TestSearch_NoMatches(t *testing.T) {
	idx := NewIndex(DefaultFields())
	idx.Add("doc", Document{Text: "quick brown fox"}, nil)

	results, err := Search(idx, "elephant", false)
	if err != nil {
		t.Fatalf("Search() error = %v, want nil", err)
	}
	if len(results) != 0 {
		t.Errorf("Search() returned %d matches, want 0", len(results))
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	idx := NewIndex(DefaultFields())
	idx.Add("doc", Document{Text: "quick brown fox"}, nil)

	results, err := Search(idx, "", false)
	if err != nil {
		t.Fatalf("Search() error = %v, want nil", err)
	}
	if results != nil {
		t.Errorf("Search() returned %v, want nil for empty query", results)
	}
}

func TestSearch_AllStopwordQuery(t *testing.T) {
	idx := NewIndex(DefaultFields())
	idx.Add("doc", Document{Text: "quick brown fox"}, nil)

	results, err := Search(idx, "the a an", false)
	if err != nil {
		t.Fatalf("Search() error = %v, want nil", err)
	}
	if results != nil {
		t.Errorf("Search() returned %v, want nil for all-stopword query", results)
	}
}

func TestSearch_TooManyTerms(t *testing.T) {
	idx := NewIndex(DefaultFields())
	idx.Add("doc", Document{Text: "quick brown fox"}, nil)

	_, err := Search(idx, "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo", false)
	if err != ErrQueryTooLong {
		t.Errorf("Search() error = %v, want %v", err, ErrQueryTooLong)
	}
}

func TestSearch_ResultsSortedDescending(t *testing.T) {
	idx := NewIndex(DefaultFields())
	idx.Add("a", Document{Text: "fox"}, nil)
	idx.Add("b", Document{Title: "Fox", Text: "fox fox fox fox fox"}, nil)

	results, err := Search(idx, "fox", false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for i := 1; i < len(results); i++ {
		if results[i].RelevancyScore > results[i-1].RelevancyScore {
			t.Errorf("results not sorted descending: %v", results)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// PHRASE QUERY TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestSearch_PhraseMatchPositive(t *testing.T) {
	idx := NewIndex(DefaultFields())
	idx.Add("doc", Document{Text: "the quick brown fox jumps"}, nil)

	results, err := Search(idx, `"quick brown"`, false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search() returned %d matches, want 1 for contiguous phrase", len(results))
	}
}

func TestSearch_PhraseMatchNegative(t *testing.T) {
	idx := NewIndex(DefaultFields())
	idx.Add("doc", Document{Text: "quick jumps brown fox"}, nil)

	results, err := Search(idx, `"quick brown"`, false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search() returned %d matches, want 0 for non-contiguous phrase", len(results))
	}
}

func TestSearch_PhraseAcrossFieldsDoesNotMatch(t *testing.T) {
	idx := NewIndex(DefaultFields())
	// "quick" ends up in title, "brown" in text — the inter-field position
	// bump must prevent this from satisfying the phrase.
	idx.Add("doc", Document{Title: "quick", Text: "brown fox"}, nil)

	results, err := Search(idx, `"quick brown"`, false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search() returned %d matches, want 0 (phrase must not span fields)", len(results))
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// CORRELATION EXPANSION TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestSearch_CorrelationExpansionMatchesSynonym(t *testing.T) {
	idx := NewIndex(DefaultFields())
	idx.Correlations.CorrelateWord("k8s", "kubernetes", 0.9)
	idx.Add("doc", Document{Text: "kubernetes orchestrates containers"}, nil)

	results, err := Search(idx, "k8s", false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search() returned %d matches, want 1 via correlation expansion", len(results))
	}
	if results[0].RelevancyScore <= 0 {
		t.Errorf("RelevancyScore = %f, want > 0", results[0].RelevancyScore)
	}
}

func TestSearch_TriePrefixExpansion(t *testing.T) {
	idx := NewIndex(DefaultFields())
	idx.Add("doc", Document{Text: "documentation describes docker"}, nil)

	results, err := Search(idx, "doc", false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search() returned %d matches, want 1 via prefix expansion", len(results))
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// HITS RE-RANKING TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestSearch_HITS_AuthorityFromIncomingLink(t *testing.T) {
	idx := NewIndex(DefaultFields())

	// A links to B. Both match the query; B should accrue more authority
	// than A since A is the one linking out.
	idx.Add("a", Document{URL: "/a/", Links: []string{"/b/"}, Text: "guide guide"}, nil)
	idx.Add("b", Document{URL: "/b/", Links: []string{}, Text: "guide guide"}, nil)

	results, err := Search(idx, "guide", true)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) < 2 {
		t.Fatalf("Search() returned %d matches, want 2", len(results))
	}

	var authorityA, authorityB float64
	for _, m := range results {
		switch m.DocID {
		case 0:
			authorityA = m.Authority
		case 1:
			authorityB = m.Authority
		}
	}
	if authorityB < authorityA {
		t.Errorf("authorityB=%f should be >= authorityA=%f (B is linked to by A)", authorityB, authorityA)
	}
}

func TestSearch_HITS_CapsAtMaxMatches(t *testing.T) {
	idx := NewIndex(DefaultFields())
	for i := 0; i < MaxMatches+20; i++ {
		idx.Add("doc", Document{Text: "guide"}, nil)
	}

	results, err := Search(idx, "guide", true)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) > MaxMatches {
		t.Errorf("Search() returned %d matches, want at most %d", len(results), MaxMatches)
	}
}

func TestSearch_NoHITS_CapsAtMaxMatches(t *testing.T) {
	idx := NewIndex(DefaultFields())
	for i := 0; i < MaxMatches+20; i++ {
		idx.Add("doc", Document{Text: "guide"}, nil)
	}

	results, err := Search(idx, "guide", false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) > MaxMatches {
		t.Errorf("Search() returned %d matches, want at most %d", len(results), MaxMatches)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// URL NORMALIZATION / LINK GRAPH INTEGRATION TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestSearch_URLNormalizationCollapsesIndexHTML(t *testing.T) {
	idx := NewIndex(DefaultFields())
	idx.Add("a", Document{URL: "/guide/index.html", Links: []string{"/other/"}, Text: "guide"}, nil)
	idx.Add("b", Document{URL: "/guide/", Links: []string{}, Text: "other"}, nil)

	// Both docIDs collapse to the same normalized URL node, so the second
	// Add's URL registration overwrites the first's in the urlToID map.
	if idx.Links.urlToID["/guide/"] != 1 {
		t.Errorf("urlToID[/guide/] = %d, want 1 (normalized collapse)", idx.Links.urlToID["/guide/"])
	}
}

func TestSearch_SelfLoopDropped(t *testing.T) {
	idx := NewIndex(DefaultFields())
	docID := idx.Add("a", Document{URL: "/a/", Links: []string{"/a/"}, Text: "guide"}, nil)

	incoming, outgoing := idx.Links.Neighbors(docID)
	if len(incoming) != 0 || len(outgoing) != 0 {
		t.Errorf("Neighbors() = (%v, %v), want empty (self-loop must be dropped)", incoming, outgoing)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// expandViaTrie TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestExpandViaTrie_ResolvesPrefix(t *testing.T) {
	idx := NewIndex(DefaultFields())
	idx.Add("doc", Document{Text: "document documentation"}, nil)

	weights := map[string]float64{"doc": 1.0}
	matched := expandViaTrie(idx, weights)

	if len(matched) == 0 {
		t.Fatal("expandViaTrie returned no matches for prefix 'doc'")
	}
}

func TestExpandViaTrie_CarriesWeightToPrefixMatch(t *testing.T) {
	idx := NewIndex(DefaultFields())
	idx.Add("doc", Document{Text: "docker"}, nil)

	weights := map[string]float64{"doc": 0.3}
	matched := expandViaTrie(idx, weights)

	if w, ok := matched[stem("docker")]; !ok || w != 0.3 {
		t.Errorf("expandViaTrie weight = %v, ok=%v, want 0.3", w, ok)
	}
}
