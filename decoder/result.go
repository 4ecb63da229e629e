package decoder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ieee0824/p2g-go/lexicon"
)

// Candidate is one ranked spelling hypothesis.
type Candidate struct {
	Graphemes   []string // grapheme tokens, one per input phoneme
	Probability float64  // product of per-step interpolated probabilities
}

// Text joins the grapheme tokens without separators, keeping null placeholders.
func (c Candidate) Text() string { return strings.Join(c.Graphemes, "") }

// Spelling joins the grapheme tokens and drops the alphabet's null placeholder.
func (c Candidate) Spelling(alphabet lexicon.Alphabet) string {
	return alphabet.Spell(c.Graphemes)
}

// ErrNoCoverage is matched by every *EmptyBeamError.
var ErrNoCoverage = errors.New("no coverage for phoneme")

// EmptyBeamError reports a phoneme with no bigram distribution, which empties
// the beam. It is distinct from a short but successful result.
type EmptyBeamError struct {
	Phoneme  string
	Position int // 0-based index in the input sequence
}

func (e *EmptyBeamError) Error() string {
	return fmt.Sprintf("decoder: no coverage for phoneme %q at position %d", e.Phoneme, e.Position)
}

func (e *EmptyBeamError) Is(target error) bool { return target == ErrNoCoverage }
