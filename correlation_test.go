package lexis

import "testing"

func TestCorrelationStore_CorrelateWordAndCollect(t *testing.T) {
	store := NewCorrelationStore()
	store.CorrelateWord("k8s", "kubernetes", 0.9)

	weights := store.CollectCorrelations([]string{stem("k8s")})
	if w, ok := weights[stem("kubernetes")]; !ok || w != 0.9 {
		t.Errorf("weights[kubernetes] = %v, ok=%v, want 0.9", w, ok)
	}
}

func TestCorrelationStore_SeedTermsWeightOne(t *testing.T) {
	store := NewCorrelationStore()

	weights := store.CollectCorrelations([]string{stem("fox")})
	if weights[stem("fox")] != 1.0 {
		t.Errorf("weights[fox] = %v, want 1.0", weights[stem("fox")])
	}
}

func TestCorrelationStore_MaxWeightOnConflict(t *testing.T) {
	store := NewCorrelationStore()
	store.CorrelateWord("k8s", "kubernetes", 0.5)
	store.CorrelateWord("k8s", "kubernetes", 0.9)

	weights := store.CollectCorrelations([]string{stem("k8s")})
	if weights[stem("kubernetes")] != 0.9 {
		t.Errorf("weights[kubernetes] = %v, want 0.9 (max of conflicting entries)", weights[stem("kubernetes")])
	}
}

func TestCorrelationStore_BigramKey(t *testing.T) {
	store := NewCorrelationStore()
	store.CorrelateWord("machine learning", "ml", 0.8)

	weights := store.CollectCorrelations([]string{stem("machine"), stem("learning")})
	if w, ok := weights[stem("ml")]; !ok || w != 0.8 {
		t.Errorf("weights[ml] = %v, ok=%v, want 0.8 (bigram key)", w, ok)
	}
}

func TestCorrelationStore_TransitiveSingleHop(t *testing.T) {
	store := NewCorrelationStore()
	store.CorrelateWord("a", "b", 0.9)
	store.CorrelateWord("b", "c", 0.7)

	weights := store.CollectCorrelations([]string{"a"})

	if _, ok := weights["b"]; !ok {
		t.Fatal("expected direct correlation a->b")
	}
	if _, ok := weights["c"]; !ok {
		t.Error("expected transitive single-hop correlation b->c to be folded in")
	}
}

func TestCorrelationStore_NoCorrelationReturnsOnlySeed(t *testing.T) {
	store := NewCorrelationStore()

	weights := store.CollectCorrelations([]string{stem("fox")})
	if len(weights) != 1 {
		t.Errorf("weights has %d entries, want 1 (seed only)", len(weights))
	}
}

func TestCorrelationKey_MultiToken(t *testing.T) {
	key := correlationKey("Machine Learning")
	want := stem("machine") + " " + stem("learning")
	if key != want {
		t.Errorf("correlationKey() = %q, want %q", key, want)
	}
}

func TestCorrelationKey_Empty(t *testing.T) {
	if key := correlationKey(""); key != "" {
		t.Errorf("correlationKey(\"\") = %q, want empty", key)
	}
}

func TestCorrelateWord_DoesNotDeduplicate(t *testing.T) {
	store := NewCorrelationStore()
	store.CorrelateWord("k8s", "kubernetes", 0.5)
	store.CorrelateWord("k8s", "kubernetes", 0.9)

	key := correlationKey("k8s")
	if len(store.entries[key]) != 2 {
		t.Errorf("entries[%q] has %d entries, want 2 (no dedup)", key, len(store.entries[key]))
	}
}
