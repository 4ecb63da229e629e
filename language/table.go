package language

import (
	"maps"
	"slices"
	"sort"
)

// Sentinel is the boundary symbol standing in for the grapheme preceding the
// first position of a word.
const Sentinel = "^"

// TrigramKey conditions a grapheme on a phoneme and the preceding grapheme.
type TrigramKey struct {
	Phoneme string
	Prev    string // preceding grapheme token or Sentinel
}

func (k TrigramKey) String() string { return "(" + k.Phoneme + ", " + k.Prev + ")" }

// Table maps a conditioning key to a distribution over grapheme tokens.
// Values are counts before normalisation and probabilities after.
//
// The table is open-ended: reading a missing key yields an empty
// distribution, and a key's inner map is only created on its first write.
// Read methods treat a nil *Table as empty.
type Table[K comparable] struct {
	rows       map[K]map[string]float64
	normalized bool
}

// BigramTable holds P(grapheme | phoneme).
type BigramTable = Table[string]

// TrigramTable holds P(grapheme | phoneme, preceding grapheme).
type TrigramTable = Table[TrigramKey]

// NewTable creates an empty table.
func NewTable[K comparable]() *Table[K] {
	return &Table[K]{rows: make(map[K]map[string]float64)}
}

// NewBigramTable creates an empty bigram table.
func NewBigramTable() *BigramTable { return NewTable[string]() }

// NewTrigramTable creates an empty trigram table.
func NewTrigramTable() *TrigramTable { return NewTable[TrigramKey]() }

// row returns the inner map for key, creating it on first write.
func (t *Table[K]) row(key K) map[string]float64 {
	if t.rows == nil {
		t.rows = make(map[K]map[string]float64)
	}
	r, ok := t.rows[key]
	if !ok {
		r = make(map[string]float64)
		t.rows[key] = r
	}
	return r
}

// Add adds n to the value of grapheme under key.
func (t *Table[K]) Add(key K, grapheme string, n float64) {
	t.row(key)[grapheme] += n
	t.normalized = false
}

// Set overwrites the value of grapheme under key.
func (t *Table[K]) Set(key K, grapheme string, v float64) {
	t.row(key)[grapheme] = v
	t.normalized = false
}

// Value returns the value of grapheme under key and whether it is present.
func (t *Table[K]) Value(key K, grapheme string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.rows[key][grapheme]
	return v, ok
}

// Has reports whether key has a distribution.
func (t *Table[K]) Has(key K) bool {
	if t == nil {
		return false
	}
	_, ok := t.rows[key]
	return ok
}

// Row returns a copy of the distribution under key. A missing key yields an
// empty, non-nil map and does not create the key.
func (t *Table[K]) Row(key K) map[string]float64 {
	if t == nil {
		return map[string]float64{}
	}
	r, ok := t.rows[key]
	if !ok {
		return map[string]float64{}
	}
	return maps.Clone(r)
}

// Graphemes returns the grapheme tokens under key in sorted order.
func (t *Table[K]) Graphemes(key K) []string {
	if t == nil {
		return nil
	}
	r := t.rows[key]
	if len(r) == 0 {
		return nil
	}
	gs := make([]string, 0, len(r))
	for g := range r {
		gs = append(gs, g)
	}
	sort.Strings(gs)
	return gs
}

// Keys returns the conditioning keys in unspecified order.
func (t *Table[K]) Keys() []K {
	if t == nil {
		return nil
	}
	return slices.Collect(maps.Keys(t.rows))
}

// Len returns the number of conditioning keys.
func (t *Table[K]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Entries returns the total number of (key, grapheme) pairs.
func (t *Table[K]) Entries() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, r := range t.rows {
		n += len(r)
	}
	return n
}

// IsNormalized reports whether the table was produced by Normalized and has
// not been written to since.
func (t *Table[K]) IsNormalized() bool { return t != nil && t.normalized }
