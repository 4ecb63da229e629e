// Package corpus reads aligned pronunciation/spelling rows and filters them
// into training records.
//
// A row pairs a whitespace-delimited phoneme sequence with a
// whitespace-delimited grapheme sequence of the same length, position i of one
// aligned to position i of the other:
//
//	phonemes,graphemes
//	B AE T,b a t
//	N OW,n ow
package corpus

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Row is a raw corpus row before validation.
type Row struct {
	Line      int    // 1-based line in the source, 0 if unknown
	Phonemes  string // whitespace-delimited phoneme tokens
	Graphemes string // whitespace-delimited grapheme tokens
}

// Record is a validated alignment: Phonemes[i] is spelled Graphemes[i].
type Record struct {
	Phonemes  []string
	Graphemes []string
}

// NewRecord splits a phoneme string and a grapheme string into a record
// without validating it.
func NewRecord(phonemes, graphemes string) Record {
	return Record{
		Phonemes:  strings.Fields(phonemes),
		Graphemes: strings.Fields(graphemes),
	}
}

// Len returns the number of aligned positions.
func (r Record) Len() int { return len(r.Phonemes) }

// PhonemeString joins the phonemes with single spaces.
func (r Record) PhonemeString() string { return strings.Join(r.Phonemes, " ") }

var (
	ErrTokenCountMismatch = errors.New("phoneme and grapheme token counts differ")
	ErrUnknownPhoneme     = errors.New("phoneme not in vocabulary")
	ErrInvalidGrapheme    = errors.New("grapheme character not in alphabet")
)

// RowError describes why a row was rejected.
type RowError struct {
	Line  int
	Token string // offending token, empty for count mismatches
	Err   error
}

func (e *RowError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Err.Error())
	if e.Token != "" {
		fmt.Fprintf(&b, ": %q", e.Token)
	}
	return b.String()
}

func (e *RowError) Unwrap() error { return e.Err }

// Measure is a corpus statistic that is undefined when no rows were retained.
type Measure struct {
	Value   float64
	Defined bool
}

func defined(v float64) Measure { return Measure{Value: v, Defined: true} }

func (m Measure) String() string {
	if !m.Defined {
		return "undefined"
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// Stats holds aggregate statistics of a validation pass.
type Stats struct {
	InvalidRows  int
	RetainedRows int

	AvgPhonemes    Measure // phoneme tokens per retained word
	AvgGraphemes   Measure // grapheme characters per retained word, null placeholder excluded
	NullProportion Measure // share of retained words with at least one null placeholder

	// Rejections by reason. A row is charged to the first check it fails.
	CountMismatches  int
	UnknownPhonemes  int
	InvalidGraphemes int
}
