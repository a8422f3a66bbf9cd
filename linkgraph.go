package lexis

import "strings"

// ═══════════════════════════════════════════════════════════════════════════════
// LINK GRAPH: URL Adjacency and Neighbor Resolution
// ═══════════════════════════════════════════════════════════════════════════════
// The link graph tracks, by normalized URL, each document's outbound links
// (forward) and the derived inbound links (inverse). It exists purely to feed
// HITS (§4.9): root-set matches get expanded into a base set via one-hop
// neighbor lookup.
//
// URL normalization strips a trailing "/index.html", replacing it with "/",
// so "/guide/index.html" and "/guide/" collapse to the same node.
//
// Neighbor resolution deliberately preserves a quirk carried over from the
// system this engine's scoring was ported from: doc-id 0 is treated as
// falsy and silently dropped out of neighbor sets (§4.6, §9). This is wrong,
// but changing it would shift HITS ranking parity, so it stays.
// ═══════════════════════════════════════════════════════════════════════════════

// LinkGraph holds the forward/inverse URL adjacency and the URL↔doc-id
// mappings needed to resolve a Match's neighbors during HITS.
type LinkGraph struct {
	forward map[string][]string // url -> outbound urls
	inverse map[string][]string // url -> inbound urls

	urlToID map[string]int
	idToURL map[int]string

	// neighbors caches resolved (incoming, outgoing) doc-id lists per doc-id.
	// Never evicted: an entry is dropped only when Add re-registers that same
	// doc-id; adding other docs leaves it in place.
	neighbors map[int]*neighborSet
}

type neighborSet struct {
	incoming []int
	outgoing []int
}

// NewLinkGraph creates an empty link graph.
func NewLinkGraph() *LinkGraph {
	return &LinkGraph{
		forward:   make(map[string][]string),
		inverse:   make(map[string][]string),
		urlToID:   make(map[string]int),
		idToURL:   make(map[int]string),
		neighbors: make(map[int]*neighborSet),
	}
}

// normalizeURL strips a trailing "/index.html" in favor of "/".
func normalizeURL(url string) string {
	const suffix = "/index.html"
	if strings.HasSuffix(url, suffix) {
		return url[:len(url)-len(suffix)+1]
	}
	return url
}

// Add registers a document's URL and outbound links. Called only when both
// are present on the document (§4.3). Adding a document invalidates any
// cached neighbor resolution for it, since the graph just changed.
func (g *LinkGraph) Add(docID int, url string, links []string) {
	url = normalizeURL(url)
	g.urlToID[url] = docID
	g.idToURL[docID] = url

	for _, link := range links {
		link = normalizeURL(link)
		g.forward[url] = append(g.forward[url], link)
		g.inverse[link] = append(g.inverse[link], url)
	}

	delete(g.neighbors, docID)
}

// Neighbors resolves the incoming and outgoing doc-id neighbors for docID,
// computing and caching them on first access. Self-loops and links to URLs
// outside urlToID are dropped; doc-id 0 is dropped from both lists as an
// inherited quirk (§4.6, §9), not a newly introduced one.
func (g *LinkGraph) Neighbors(docID int) (incoming, outgoing []int) {
	if cached, ok := g.neighbors[docID]; ok {
		return cached.incoming, cached.outgoing
	}

	url, ok := g.idToURL[docID]
	if !ok {
		set := &neighborSet{}
		g.neighbors[docID] = set
		return nil, nil
	}

	set := &neighborSet{
		incoming: g.resolve(g.inverse[url], url, docID),
		outgoing: g.resolve(g.forward[url], url, docID),
	}
	g.neighbors[docID] = set
	return set.incoming, set.outgoing
}

// resolve maps a list of URLs to doc ids, dropping self-loops against
// selfURL, unknown URLs, and — preserving the inherited truthy-check quirk
// — doc-id 0.
func (g *LinkGraph) resolve(urls []string, selfURL string, selfID int) []int {
	var ids []int
	for _, u := range urls {
		if u == selfURL {
			continue
		}
		id, ok := g.urlToID[u]
		if !ok || id == selfID {
			continue
		}
		if id == 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
