package corpus

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/ieee0824/p2g-go/lexicon"
)

// Validator filters rows against a phoneme vocabulary and a grapheme alphabet.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	vocab    *lexicon.Vocabulary
	alphabet lexicon.Alphabet
	log      zerolog.Logger
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithLogger sets the logger used to report rejected rows at debug level.
func WithLogger(log zerolog.Logger) ValidatorOption {
	return func(v *Validator) {
		v.log = log
	}
}

// NewValidator creates a Validator.
func NewValidator(vocab *lexicon.Vocabulary, alphabet lexicon.Alphabet, opts ...ValidatorOption) *Validator {
	v := &Validator{
		vocab:    vocab,
		alphabet: alphabet,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Result is the outcome of a validation pass.
type Result struct {
	Records []Record
	Stats   Stats
}

// Check validates a single row. Checks run in order: token count, phoneme
// membership, grapheme characters. The returned error is a *RowError.
func (v *Validator) Check(row Row) (Record, error) {
	rec := NewRecord(row.Phonemes, row.Graphemes)

	if len(rec.Phonemes) != len(rec.Graphemes) {
		return Record{}, &RowError{Line: row.Line, Err: ErrTokenCountMismatch}
	}
	for _, p := range rec.Phonemes {
		if !v.vocab.Contains(p) {
			return Record{}, &RowError{Line: row.Line, Token: p, Err: ErrUnknownPhoneme}
		}
	}
	for _, g := range rec.Graphemes {
		for _, r := range g {
			if !v.alphabet.Contains(r) {
				return Record{}, &RowError{Line: row.Line, Token: g, Err: ErrInvalidGrapheme}
			}
		}
	}
	return rec, nil
}

// Validate filters rows and computes statistics over the retained ones.
// Invalid rows are counted, never returned as an error.
func (v *Validator) Validate(rows []Row) Result {
	var res Result
	var phonemes, chars, withNull int

	for _, row := range rows {
		rec, err := v.Check(row)
		if err != nil {
			res.Stats.reject(err)
			v.log.Debug().Err(err).Int("line", row.Line).Msg("row rejected")
			continue
		}
		res.Records = append(res.Records, rec)

		phonemes += len(rec.Phonemes)
		hasNull := false
		for _, g := range rec.Graphemes {
			for _, r := range g {
				if v.alphabet.IsNull(r) {
					hasNull = true
					continue
				}
				chars++
			}
		}
		if hasNull {
			withNull++
		}
	}

	n := len(res.Records)
	res.Stats.RetainedRows = n
	if n > 0 {
		res.Stats.AvgPhonemes = defined(float64(phonemes) / float64(n))
		res.Stats.AvgGraphemes = defined(float64(chars) / float64(n))
		res.Stats.NullProportion = defined(float64(withNull) / float64(n))
	}

	v.log.Info().
		Int("retained", n).
		Int("invalid", res.Stats.InvalidRows).
		Stringer("avg_phonemes", res.Stats.AvgPhonemes).
		Stringer("avg_graphemes", res.Stats.AvgGraphemes).
		Stringer("null_proportion", res.Stats.NullProportion).
		Msg("corpus validated")

	return res
}

func (s *Stats) reject(err error) {
	s.InvalidRows++
	switch {
	case errors.Is(err, ErrTokenCountMismatch):
		s.CountMismatches++
	case errors.Is(err, ErrUnknownPhoneme):
		s.UnknownPhonemes++
	case errors.Is(err, ErrInvalidGrapheme):
		s.InvalidGraphemes++
	}
}
