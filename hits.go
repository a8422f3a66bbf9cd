package lexis

import (
	"math"
	"sort"
)

// ═══════════════════════════════════════════════════════════════════════════════
// HITS: Hyperlink-Induced Topic Search
// ═══════════════════════════════════════════════════════════════════════════════
// HITS re-ranks a relevance-matched "root set" by link structure: a good
// "authority" page is linked to by good "hub" pages, and a good hub links to
// good authorities. The two scores are computed by mutual iteration until
// they stabilize.
//
// The base set is the root set plus every root match's one-hop link
// neighbors (placeholders with relevance 0 if not already present). Edges
// are collected only from root docs — neighbors-of-neighbors are never
// walked, matching the single-hop base-set expansion of §4.9.
// ═══════════════════════════════════════════════════════════════════════════════

const (
	maxHITSIterations = 200
	hitsConvergence   = 1e-5
	nanFloor          = 1e-10
)

// MaxMatches caps the final ranked result list (§5).
const MaxMatches = 150

type hitsEdge struct {
	from, to int
}

// buildBaseSet expands root into the HITS base set and its directed edges.
func buildBaseSet(idx *InvertedIndex, root []*Match) (map[int]*Match, []hitsEdge) {
	matches := make(map[int]*Match, len(root))
	for _, m := range root {
		matches[m.DocID] = m
	}

	ensure := func(docID int) {
		if _, ok := matches[docID]; !ok {
			matches[docID] = &Match{DocID: docID, Authority: 1.0, Hub: 1.0}
		}
	}

	var edges []hitsEdge
	for _, m := range root {
		incoming, outgoing := idx.Links.Neighbors(m.DocID)
		for _, in := range incoming {
			ensure(in)
			edges = append(edges, hitsEdge{from: in, to: m.DocID})
		}
		for _, out := range outgoing {
			ensure(out)
			edges = append(edges, hitsEdge{from: m.DocID, to: out})
		}
	}
	return matches, edges
}

// RunHITS re-ranks root by link analysis and returns the final, capped,
// descending-by-score result list (§4.9).
func RunHITS(idx *InvertedIndex, root []*Match) []*Match {
	matches, edges := buildBaseSet(idx, root)

	var prevAuthNorm, prevHubNorm float64
	for iter := 0; iter < maxHITSIterations; iter++ {
		for _, m := range matches {
			m.Authority = 0
		}
		for _, e := range edges {
			matches[e.to].Authority += matches[e.from].Hub
		}
		authNorm := l2Norm(matches, authorityOf)
		normalize(matches, authNorm, authorityOf, setAuthority)

		for _, m := range matches {
			m.Hub = 0
		}
		for _, e := range edges {
			matches[e.from].Hub += matches[e.to].Authority
		}
		hubNorm := l2Norm(matches, hubOf)
		normalize(matches, hubNorm, hubOf, setHub)

		if iter > 0 &&
			math.Abs(authNorm-prevAuthNorm) < hitsConvergence &&
			math.Abs(hubNorm-prevHubNorm) < hitsConvergence {
			break
		}
		prevAuthNorm, prevHubNorm = authNorm, hubNorm
	}

	for _, m := range matches {
		if math.IsNaN(m.Authority) {
			m.Authority = nanFloor
		}
	}

	return finalizeHITS(matches)
}

func authorityOf(m *Match) float64 { return m.Authority }
func hubOf(m *Match) float64       { return m.Hub }
func setAuthority(m *Match, v float64) { m.Authority = v }
func setHub(m *Match, v float64)       { m.Hub = v }

func l2Norm(matches map[int]*Match, get func(*Match) float64) float64 {
	var sumSquares float64
	for _, m := range matches {
		v := get(m)
		sumSquares += v * v
	}
	return math.Sqrt(sumSquares)
}

func normalize(matches map[int]*Match, norm float64, get func(*Match) float64, set func(*Match, float64)) {
	if norm == 0 {
		return
	}
	for _, m := range matches {
		set(m, get(m)/norm)
	}
}

// finalizeHITS applies the post-convergence filtering, τ-penalty, and
// combined score described in §4.9, then sorts and caps the result.
func finalizeHITS(matches map[int]*Match) []*Match {
	var survivors []*Match
	for _, m := range matches {
		if m.RelevancyScore > 0 {
			survivors = append(survivors, m)
		}
	}
	if len(survivors) == 0 {
		return nil
	}

	relevancies := make([]float64, len(survivors))
	for i, m := range survivors {
		relevancies[i] = m.RelevancyScore
	}
	tau := sampleStdDev(relevancies)

	var maxRel, maxAuth float64
	for _, m := range survivors {
		if m.RelevancyScore >= tau {
			maxRel = math.Max(maxRel, m.RelevancyScore)
			maxAuth = math.Max(maxAuth, m.Authority)
		}
	}
	maxRel = math.Max(maxRel, nanFloor)
	maxAuth = math.Max(maxAuth, nanFloor)

	const authorityScale = 1 / 2.0 // 1/log2(4)
	for _, m := range survivors {
		m.Score = log2(m.RelevancyScore/maxRel+1) + log2(m.Authority/maxAuth+1)*authorityScale
		if m.RelevancyScore < 2.5*tau {
			m.Score -= tau / m.RelevancyScore
		}
	}

	sort.Slice(survivors, func(i, j int) bool { return survivors[i].Score > survivors[j].Score })
	return capMatches(survivors)
}

// sampleStdDev computes the sample standard deviation (divisor n-1) of xs,
// returning 0 for fewer than two samples.
func sampleStdDev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}

	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(n)

	var sumSquaredDiffs float64
	for _, x := range xs {
		d := x - mean
		sumSquaredDiffs += d * d
	}
	return math.Sqrt(sumSquaredDiffs / float64(n-1))
}

func capMatches(matches []*Match) []*Match {
	if len(matches) > MaxMatches {
		return matches[:MaxMatches]
	}
	return matches
}
