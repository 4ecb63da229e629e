package lexicon

import (
	"fmt"
	"strings"
	"unicode"
)

// NullGrapheme is the placeholder for a phoneme that maps to no visible letter.
const NullGrapheme = '_'

// DefaultLetters is the letter set of the default alphabet.
const DefaultLetters = "abcdefghijklmnopqrstuvwxyz"

// Alphabet is a closed set of grapheme characters plus one null placeholder.
type Alphabet struct {
	letters map[rune]struct{}
	null    rune
}

// DefaultAlphabet returns the 27 symbol alphabet: a-z and '_'.
func DefaultAlphabet() Alphabet {
	a, _ := NewAlphabet(DefaultLetters, NullGrapheme)
	return a
}

// NewAlphabet creates an alphabet from letters and a null placeholder.
// The placeholder must not be whitespace and must not also be a letter.
func NewAlphabet(letters string, null rune) (Alphabet, error) {
	if unicode.IsSpace(null) {
		return Alphabet{}, fmt.Errorf("null placeholder %q is whitespace", null)
	}
	a := Alphabet{letters: make(map[rune]struct{}, len(letters)), null: null}
	for _, r := range letters {
		if unicode.IsSpace(r) {
			continue
		}
		if r == null {
			return Alphabet{}, fmt.Errorf("null placeholder %q is also listed as a letter", null)
		}
		a.letters[r] = struct{}{}
	}
	if len(a.letters) == 0 {
		return Alphabet{}, fmt.Errorf("alphabet has no letters")
	}
	return a, nil
}

// Contains reports whether r is a letter or the null placeholder.
func (a Alphabet) Contains(r rune) bool {
	if r == a.null {
		return true
	}
	_, ok := a.letters[r]
	return ok
}

// Null returns the null placeholder.
func (a Alphabet) Null() rune { return a.null }

// IsNull reports whether r is the null placeholder.
func (a Alphabet) IsNull(r rune) bool { return r == a.null }

// Size returns the number of symbols including the null placeholder.
func (a Alphabet) Size() int { return len(a.letters) + 1 }

// Spell joins grapheme tokens into a spelling, dropping null placeholders.
func (a Alphabet) Spell(graphemes []string) string {
	var b strings.Builder
	for _, g := range graphemes {
		for _, r := range g {
			if r != a.null {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
