package language

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ieee0824/p2g-go/corpus"
)

// ErrMisaligned is returned for a record whose phoneme and grapheme sequences
// differ in length.
var ErrMisaligned = errors.New("record is not aligned")

// Trainer accumulates aligned records into bigram and trigram frequency tables.
// It is not safe for concurrent use.
type Trainer struct {
	bigram  *BigramTable
	trigram *TrigramTable
	records int
	log     zerolog.Logger
}

// TrainerOption configures a Trainer.
type TrainerOption func(*Trainer)

// WithTrainerLogger sets the trainer's logger.
func WithTrainerLogger(log zerolog.Logger) TrainerOption {
	return func(t *Trainer) {
		t.log = log
	}
}

// NewTrainer creates an empty trainer.
func NewTrainer(opts ...TrainerOption) *Trainer {
	t := &Trainer{
		bigram:  NewBigramTable(),
		trigram: NewTrigramTable(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Add counts one record. For position i it increments
// bigram[p_i][g_i] and trigram[(p_i, g_{i-1})][g_i], with Sentinel standing
// in for g_{-1}.
func (t *Trainer) Add(rec corpus.Record) error {
	if len(rec.Phonemes) != len(rec.Graphemes) {
		return fmt.Errorf("%w: %d phonemes, %d graphemes", ErrMisaligned, len(rec.Phonemes), len(rec.Graphemes))
	}

	prev := Sentinel
	for i, p := range rec.Phonemes {
		g := rec.Graphemes[i]
		t.bigram.Add(p, g, 1)
		t.trigram.Add(TrigramKey{Phoneme: p, Prev: prev}, g, 1)
		prev = g
	}
	t.records++
	return nil
}

// AddAll counts every record, stopping at the first misaligned one.
func (t *Trainer) AddAll(recs []corpus.Record) error {
	for i, rec := range recs {
		if err := t.Add(rec); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	t.log.Debug().
		Int("records", t.records).
		Int("bigram_keys", t.bigram.Len()).
		Int("trigram_keys", t.trigram.Len()).
		Msg("n-gram counts updated")
	return nil
}

// Records returns the number of records counted so far.
func (t *Trainer) Records() int { return t.records }

// Bigram returns the bigram frequency table.
func (t *Trainer) Bigram() *BigramTable { return t.bigram }

// Trigram returns the trigram frequency table.
func (t *Trainer) Trigram() *TrigramTable { return t.trigram }
