package lexis

// ═══════════════════════════════════════════════════════════════════════════════
// DOCUMENTS AND FIELDS
// ═══════════════════════════════════════════════════════════════════════════════
// A Document is the caller's unit of ingestion: a URL, its outbound links, a
// weight, and up to four weighted text fields. Once Add assigns a document an
// id, the id is permanent — this engine never deletes or mutates a document
// in place (see Non-goals).
//
// A Field is one of the four named text channels ("text", "headings",
// "title", "tags"). Each field owns its own per-document bookkeeping
// (DocumentEntry) independent of the other fields, plus a lazily computed
// length-weight that normalizes scores across documents of different sizes.
// ═══════════════════════════════════════════════════════════════════════════════

// FieldName identifies one of the canonical text channels.
type FieldName string

const (
	FieldText     FieldName = "text"
	FieldHeadings FieldName = "headings"
	FieldTitle    FieldName = "title"
	FieldTags     FieldName = "tags"
)

// FieldSpec is the construction-time (name, weight) pair an Index is built
// with. Weights are static for the lifetime of the index.
type FieldSpec struct {
	Name   FieldName
	Weight float64
}

// DefaultFields returns the canonical field set and weights from the corpus
// this engine was built to search: body text, headings, title, and tags.
func DefaultFields() []FieldSpec {
	return []FieldSpec{
		{Name: FieldText, Weight: 1},
		{Name: FieldHeadings, Weight: 5},
		{Name: FieldTitle, Weight: 10},
		{Name: FieldTags, Weight: 10},
	}
}

// Document is the caller-supplied unit of ingestion.
type Document struct {
	URL     string
	Links   []string
	Weight  float64 // defaults to 1.0 if zero
	Title   string
	Tags    string
	Text    string
	Headings string
}

func (d *Document) fieldText(name FieldName) (string, bool) {
	switch name {
	case FieldTitle:
		return d.Title, d.Title != ""
	case FieldTags:
		return d.Tags, d.Tags != ""
	case FieldText:
		return d.Text, d.Text != ""
	case FieldHeadings:
		return d.Headings, d.Headings != ""
	default:
		return "", false
	}
}

// DocumentEntry is a field's per-document record: the caller's opaque
// property tag, the post-stopword token count, and token→frequency within
// this (document, field) pair.
type DocumentEntry struct {
	PropertyName    string
	Len             int
	TermFrequencies map[string]int
}

// Field holds, per field, every document that has contributed text to it.
type Field struct {
	Name   FieldName
	Weight float64

	docs            map[int]*DocumentEntry
	totalTokensSeen int

	lengthWeight      float64
	lengthWeightValid bool
}

func newField(spec FieldSpec) *Field {
	return &Field{
		Name:   spec.Name,
		Weight: spec.Weight,
		docs:   make(map[int]*DocumentEntry),
	}
}

// entry returns the DocumentEntry for docID, creating it if absent.
func (f *Field) entry(docID int, propertyName string) *DocumentEntry {
	e, ok := f.docs[docID]
	if !ok {
		e = &DocumentEntry{
			PropertyName:    propertyName,
			TermFrequencies: make(map[string]int),
		}
		f.docs[docID] = e
	}
	return e
}

// invalidateLengthWeight must be called whenever a new document is added to
// this field (spec.md §3: "The cache is invalidated whenever a new document
// is added to that field").
func (f *Field) invalidateLengthWeight() {
	f.lengthWeightValid = false
}

// LengthWeight is (#docs with an entry in the field) / (Σ distinct tokens per
// entry), lazily computed and cached until the next mutation.
func (f *Field) LengthWeight() float64 {
	if f.lengthWeightValid {
		return f.lengthWeight
	}

	var distinctTokenSum int
	for _, e := range f.docs {
		distinctTokenSum += len(e.TermFrequencies)
	}

	if distinctTokenSum == 0 {
		f.lengthWeight = 0
	} else {
		f.lengthWeight = float64(len(f.docs)) / float64(distinctTokenSum)
	}
	f.lengthWeightValid = true
	return f.lengthWeight
}
