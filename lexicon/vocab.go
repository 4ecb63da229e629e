package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Vocabulary is an immutable set of valid phoneme symbols.
type Vocabulary struct {
	symbols map[string]struct{}
}

// NewVocabulary creates a vocabulary from the given symbols.
// Empty strings are ignored.
func NewVocabulary(symbols ...string) *Vocabulary {
	v := &Vocabulary{symbols: make(map[string]struct{}, len(symbols))}
	for _, s := range symbols {
		if s == "" {
			continue
		}
		v.symbols[s] = struct{}{}
	}
	return v
}

// ParseVocabulary builds a vocabulary from a phoneme inventory blob.
// Every whitespace-separated field is a member, so both one-symbol-per-line
// files and CMU style "AA<TAB>vowel" listings are accepted.
func ParseVocabulary(blob string) *Vocabulary {
	return NewVocabulary(strings.Fields(blob)...)
}

// LoadVocabulary reads a phoneme inventory. Lines starting with '#' are comments.
func LoadVocabulary(r io.Reader) (*Vocabulary, error) {
	v := NewVocabulary()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, f := range strings.Fields(line) {
			v.symbols[f] = struct{}{}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNum, err)
	}
	if len(v.symbols) == 0 {
		return nil, fmt.Errorf("vocabulary is empty")
	}

	return v, nil
}

// LoadVocabularyFile is a convenience wrapper that opens a file path.
func LoadVocabularyFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadVocabulary(f)
}

// Contains reports whether the phoneme is a member of the vocabulary.
func (v *Vocabulary) Contains(phoneme string) bool {
	if v == nil {
		return false
	}
	_, ok := v.symbols[phoneme]
	return ok
}

// Len returns the number of symbols.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.symbols)
}

// Symbols returns all symbols in sorted order.
func (v *Vocabulary) Symbols() []string {
	if v == nil {
		return nil
	}
	out := make([]string, 0, len(v.symbols))
	for s := range v.symbols {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
