package lexis

import "github.com/RoaringBitmap/roaring"

// ═══════════════════════════════════════════════════════════════════════════════
// TRIE: Prefix Lookup Over Indexed Terms
// ═══════════════════════════════════════════════════════════════════════════════
// The trie is the only structure that supports prefix expansion ("doc" should
// also surface documents indexed under "docker", "document", ...). Exact-term
// lookup never needs the trie — the inverted index's term map handles that
// directly (§4.4).
//
// Each trie node that terminates a term carries a roaring bitmap of the
// document ids registered under that exact term, mirroring blaze's hybrid
// storage idea (bitmaps for fast document-level set membership) rather than a
// plain slice: prefix search unions many such bitmaps and a bitmap union is
// cheap and naturally de-duplicates doc ids.
// ═══════════════════════════════════════════════════════════════════════════════

type trieNode struct {
	children map[rune]*trieNode
	term     bool            // true if a term ends exactly here
	docs     *roaring.Bitmap // doc ids registered under the exact term at this node
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Trie maps terms to the document ids that contain them, supporting both
// exact and prefix lookup.
type Trie struct {
	root *trieNode
}

// NewTrie creates an empty trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Insert registers docID under term, creating intermediate nodes as needed.
func (t *Trie) Insert(term string, docID int) {
	node := t.root
	for _, r := range term {
		child, ok := node.children[r]
		if !ok {
			child = newTrieNode()
			node.children[r] = child
		}
		node = child
	}
	node.term = true
	if node.docs == nil {
		node.docs = roaring.NewBitmap()
	}
	node.docs.Add(uint32(docID))
}

// Search looks up term. With prefix=false it returns only the doc ids
// registered under the exact term. With prefix=true it returns every
// indexed term that starts with the query term together with the doc ids
// registered under each of them, keyed per doc id by the set of matching
// terms (so callers can tell which expanded spelling actually matched).
func (t *Trie) Search(term string, prefix bool) map[int]map[string]struct{} {
	node := t.root
	for _, r := range term {
		child, ok := node.children[r]
		if !ok {
			return map[int]map[string]struct{}{}
		}
		node = child
	}

	results := make(map[int]map[string]struct{})
	if prefix {
		t.collect(node, term, results)
	} else if node.term {
		addMatches(results, term, node.docs)
	}
	return results
}

// collect walks every terminal node reachable from node (inclusive),
// reconstructing the full term spelled out by prefix+path so far.
func (t *Trie) collect(node *trieNode, prefix string, results map[int]map[string]struct{}) {
	if node.term {
		addMatches(results, prefix, node.docs)
	}
	for r, child := range node.children {
		t.collect(child, prefix+string(r), results)
	}
}

func addMatches(results map[int]map[string]struct{}, term string, docs *roaring.Bitmap) {
	if docs == nil {
		return
	}
	iter := docs.Iterator()
	for iter.HasNext() {
		docID := int(iter.Next())
		terms, ok := results[docID]
		if !ok {
			terms = make(map[string]struct{})
			results[docID] = terms
		}
		terms[term] = struct{}{}
	}
}
