// ═══════════════════════════════════════════════════════════════════════════════
// TEXT ANALYSIS OVERVIEW
// ═══════════════════════════════════════════════════════════════════════════════
// Text analysis transforms raw text into searchable tokens. The pipeline is
// shared by both ingest and query paths, which must agree on every step or
// terms indexed one way will never match terms searched another way.
//
// PIPELINE:
// ---------
//  1. Tokenization    → split text into words, optionally keeping the
//                        correlation-prefix markers ($, %, %%) attached
//  2. Lowercasing      → normalize case
//  3. Stop word removal → drop common words ("the", "a", ...)
//  4. Correlation-prefix rule or stemming → §4.1
//
// CORRELATION PREFIXES:
// ----------------------
// A token spelled "%%kubernetes" is stored verbatim (no stemming) and
// implies a synonym correlation from "kubernetes" at weight 0.9; "$x" and
// "%x" behave the same way at the single-character-prefix level. Every other
// token is stemmed and stored in its stemmed form. See correlation.go.
// ═══════════════════════════════════════════════════════════════════════════════

package lexis

import (
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

// correlationPrefix classifies a raw token's leading marker, if any.
type correlationPrefix int

const (
	noPrefix correlationPrefix = iota
	singlePrefix                // "$x" or "%x"
	doublePrefix                // "%%x"
)

// analyzedToken is one token surviving the pipeline, carrying enough state
// for the caller (ingest or correlation store) to decide whether to stem it.
type analyzedToken struct {
	Raw    string // original-case token as it appeared in the source text
	Stored string // the form to store in the index / look up in the index
	Prefix correlationPrefix
	Base   string // prefix-stripped, stemmed word (only set when Prefix != noPrefix)
}

// Analyze runs the full ingest/query pipeline: tokenize (keeping
// correlation-prefix markers attached), lowercase, drop stop words, then stem
// unless a correlation prefix says otherwise, in which case the token is
// returned verbatim, marker included. The returned strings are exactly the
// keys this token would be stored/looked-up under in the index.
func Analyze(text string) []string {
	tokens := analyzeTokens(text)
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Stored
	}
	return out
}

// analyzeTokens is Analyze's richer sibling: it additionally reports the
// correlation-prefix classification so InvertedIndex.Add can register implied
// synonym correlations as it ingests (§4.1).
func analyzeTokens(text string) []analyzedToken {
	raw := tokenizeKeepPrefixes(text)

	out := make([]analyzedToken, 0, len(raw))
	for _, rawTok := range raw {
		tok := strings.ToLower(rawTok)

		prefix, base := splitCorrelationPrefix(tok)
		stopwordCheck := tok
		if prefix != noPrefix {
			stopwordCheck = base
		}
		if isStopword(stopwordCheck) {
			continue
		}

		if prefix == noPrefix {
			out = append(out, analyzedToken{Raw: rawTok, Stored: stem(tok)})
			continue
		}

		out = append(out, analyzedToken{
			Raw:    rawTok,
			Stored: tok,
			Prefix: prefix,
			Base:   stem(base),
		})
	}
	return out
}

// tokenize splits text into individual words using Unicode-aware,
// non-letter/non-digit delimiters. It discards all punctuation, including
// the correlation-prefix markers, so "user@email.com" becomes
// ["user", "email", "com"]. The ingest and query paths do not call it; they
// use tokenizeKeepPrefixes, which applies the same word boundaries.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// tokenizeKeepPrefixes is tokenize's sibling for ingest and query paths: it
// additionally recognizes a leading "$", "%", or "%%" immediately before a
// word as part of the token, since those markers carry the correlation-prefix
// semantics of §4.1. A bare "$"/"%"/"%%" with no following word character is
// noise and is dropped, matching tokenize's "no empty tokens" behavior.
func tokenizeKeepPrefixes(text string) []string {
	runes := []rune(text)
	n := len(runes)
	isWord := func(r rune) bool { return unicode.IsLetter(r) || unicode.IsNumber(r) }

	var tokens []string
	i := 0
	for i < n {
		for i < n && !isWord(runes[i]) && runes[i] != '$' && runes[i] != '%' {
			i++
		}
		if i >= n {
			break
		}

		start := i
		switch runes[i] {
		case '%':
			i++
			if i < n && runes[i] == '%' {
				i++
			}
		case '$':
			i++
		}

		if i >= n || !isWord(runes[i]) {
			// Prefix marker with nothing to attach to — skip it.
			i = start + 1
			continue
		}

		for i < n && isWord(runes[i]) {
			i++
		}
		tokens = append(tokens, string(runes[start:i]))
	}
	return tokens
}

// splitCorrelationPrefix classifies a lowercased token per §4.1:
//
//	"%%kubernetes" → doublePrefix, base "kubernetes"
//	"$k8s" / "%k8s" → singlePrefix, base "k8s"
//	anything else  → noPrefix, base == token
func splitCorrelationPrefix(token string) (correlationPrefix, string) {
	switch {
	case strings.HasPrefix(token, "%%"):
		return doublePrefix, token[2:]
	case strings.HasPrefix(token, "$"):
		return singlePrefix, token[1:]
	case strings.HasPrefix(token, "%"):
		return singlePrefix, token[1:]
	default:
		return noPrefix, token
	}
}

// isStopword checks if a token is a common English stopword
//
// Uses a hash map for O(1) lookup performance.
// The map uses struct{} as values (0 bytes) instead of strings (16 bytes)
// for memory efficiency.
func isStopword(token string) bool {
	_, exists := englishStopwords[token]
	return exists
}

// stem reduces a single lowercased word to its Snowball (Porter2) root,
// e.g. "running" → "run", "connection" → "connect". Deterministic and
// idempotent: stem(stem(x)) == stem(x).
func stem(word string) string {
	return snowballeng.Stem(word, false)
}

// englishStopwords contains common English words to exclude from indexing
//
// MEMORY OPTIMIZATION:
// --------------------
// Uses struct{} (empty struct) as the value type instead of string or bool.
// - struct{}: 0 bytes per entry
// - string:   16 bytes per entry
// - bool:     1 byte per entry
//
// For 300+ stopwords, this saves ~5KB of memory.
//
// STOPWORD SELECTION:
// -------------------
// This list includes:
// - Articles: a, an, the
// - Prepositions: in, on, at, to
// - Conjunctions: and, but, or
// - Pronouns: he, she, it, they
// - Common verbs: is, are, was, were
// - Numbers: one, two, three, etc.
var englishStopwords = map[string]struct{}{
	"a":            {},
	"about":        {},
	"above":        {},
	"across":       {},
	"after":        {},
	"afterwards":   {},
	"again":        {},
	"against":      {},
	"all":          {},
	"almost":       {},
	"alone":        {},
	"along":        {},
	"already":      {},
	"also":         {},
	"although":     {},
	"always":       {},
	"am":           {},
	"among":        {},
	"amongst":      {},
	"amoungst":     {},
	"amount":       {},
	"an":           {},
	"and":          {},
	"another":      {},
	"any":          {},
	"anyhow":       {},
	"anyone":       {},
	"anything":     {},
	"anyway":       {},
	"anywhere":     {},
	"are":          {},
	"around":       {},
	"as":           {},
	"at":           {},
	"back":         {},
	"be":           {},
	"became":       {},
	"because":      {},
	"become":       {},
	"becomes":      {},
	"becoming":     {},
	"been":         {},
	"before":       {},
	"beforehand":   {},
	"behind":       {},
	"being":        {},
	"below":        {},
	"beside":       {},
	"besides":      {},
	"between":      {},
	"beyond":       {},
	"bill":         {},
	"both":         {},
	"bottom":       {},
	"but":          {},
	"by":           {},
	"call":         {},
	"can":          {},
	"cannot":       {},
	"cant":         {},
	"co":           {},
	"con":          {},
	"could":        {},
	"couldnt":      {},
	"cry":          {},
	"de":           {},
	"describe":     {},
	"detail":       {},
	"do":           {},
	"done":         {},
	"down":         {},
	"due":          {},
	"during":       {},
	"each":         {},
	"eg":           {},
	"eight":        {},
	"either":       {},
	"eleven":       {},
	"else":         {},
	"elsewhere":    {},
	"empty":        {},
	"enough":       {},
	"etc":          {},
	"even":         {},
	"ever":         {},
	"every":        {},
	"everyone":     {},
	"everything":   {},
	"everywhere":   {},
	"except":       {},
	"few":          {},
	"fifteen":      {},
	"fify":         {},
	"fill":         {},
	"find":         {},
	"fire":         {},
	"first":        {},
	"five":         {},
	"for":          {},
	"former":       {},
	"formerly":     {},
	"forty":        {},
	"found":        {},
	"four":         {},
	"from":         {},
	"front":        {},
	"full":         {},
	"further":      {},
	"get":          {},
	"give":         {},
	"go":           {},
	"had":          {},
	"has":          {},
	"hasnt":        {},
	"have":         {},
	"he":           {},
	"hence":        {},
	"her":          {},
	"here":         {},
	"hereafter":    {},
	"hereby":       {},
	"herein":       {},
	"hereupon":     {},
	"hers":         {},
	"herself":      {},
	"him":          {},
	"himself":      {},
	"his":          {},
	"how":          {},
	"however":      {},
	"hundred":      {},
	"ie":           {},
	"if":           {},
	"in":           {},
	"inc":          {},
	"indeed":       {},
	"interest":     {},
	"into":         {},
	"is":           {},
	"it":           {},
	"its":          {},
	"itself":       {},
	"keep":         {},
	"last":         {},
	"latter":       {},
	"latterly":     {},
	"least":        {},
	"less":         {},
	"ltd":          {},
	"made":         {},
	"many":         {},
	"may":          {},
	"me":           {},
	"meanwhile":    {},
	"might":        {},
	"mill":         {},
	"mine":         {},
	"more":         {},
	"moreover":     {},
	"most":         {},
	"mostly":       {},
	"move":         {},
	"much":         {},
	"must":         {},
	"my":           {},
	"myself":       {},
	"name":         {},
	"namely":       {},
	"neither":      {},
	"never":        {},
	"nevertheless": {},
	"next":         {},
	"nine":         {},
	"no":           {},
	"nobody":       {},
	"none":         {},
	"noone":        {},
	"nor":          {},
	"not":          {},
	"nothing":      {},
	"now":          {},
	"nowhere":      {},
	"of":           {},
	"off":          {},
	"often":        {},
	"on":           {},
	"once":         {},
	"one":          {},
	"only":         {},
	"onto":         {},
	"or":           {},
	"other":        {},
	"others":       {},
	"otherwise":    {},
	"our":          {},
	"ours":         {},
	"ourselves":    {},
	"out":          {},
	"over":         {},
	"own":          {},
	"part":         {},
	"per":          {},
	"perhaps":      {},
	"please":       {},
	"put":          {},
	"rather":       {},
	"re":           {},
	"same":         {},
	"see":          {},
	"seem":         {},
	"seemed":       {},
	"seeming":      {},
	"seems":        {},
	"serious":      {},
	"several":      {},
	"she":          {},
	"should":       {},
	"show":         {},
	"side":         {},
	"since":        {},
	"sincere":      {},
	"six":          {},
	"sixty":        {},
	"so":           {},
	"some":         {},
	"somehow":      {},
	"someone":      {},
	"something":    {},
	"sometime":     {},
	"sometimes":    {},
	"somewhere":    {},
	"still":        {},
	"such":         {},
	"system":       {},
	"take":         {},
	"ten":          {},
	"than":         {},
	"that":         {},
	"the":          {},
	"their":        {},
	"them":         {},
	"themselves":   {},
	"then":         {},
	"thence":       {},
	"there":        {},
	"thereafter":   {},
	"thereby":      {},
	"therefore":    {},
	"therein":      {},
	"thereupon":    {},
	"these":        {},
	"they":         {},
	"thickv":       {},
	"thin":         {},
	"third":        {},
	"this":         {},
	"those":        {},
	"though":       {},
	"three":        {},
	"through":      {},
	"throughout":   {},
	"thru":         {},
	"thus":         {},
	"to":           {},
	"together":     {},
	"too":          {},
	"top":          {},
	"toward":       {},
	"towards":      {},
	"twelve":       {},
	"twenty":       {},
	"two":          {},
	"un":           {},
	"under":        {},
	"until":        {},
	"up":           {},
	"upon":         {},
	"us":           {},
	"very":         {},
	"via":          {},
	"was":          {},
	"we":           {},
	"well":         {},
	"were":         {},
	"what":         {},
	"whatever":     {},
	"when":         {},
	"whence":       {},
	"whenever":     {},
	"where":        {},
	"whereafter":   {},
	"whereas":      {},
	"whereby":      {},
	"wherein":      {},
	"whereupon":    {},
	"wherever":     {},
	"whether":      {},
	"which":        {},
	"while":        {},
	"whither":      {},
	"who":          {},
	"whoever":      {},
	"whole":        {},
	"whom":         {},
	"whose":        {},
	"why":          {},
	"will":         {},
	"with":         {},
	"within":       {},
	"without":      {},
	"would":        {},
	"yet":          {},
	"you":          {},
	"your":         {},
	"yours":        {},
	"yourself":     {},
	"yourselves":   {}}
