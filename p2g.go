// Package p2g builds a phoneme-to-grapheme alignment model from an aligned
// pronunciation corpus and spells phoneme sequences with it.
//
// The pipeline is validate (package corpus), count (language.Trainer),
// normalise (language.Table.Normalized) and decode (package decoder). A built
// Model is read-only and safe for concurrent Transliterate calls.
package p2g

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ieee0824/p2g-go/corpus"
	"github.com/ieee0824/p2g-go/decoder"
	"github.com/ieee0824/p2g-go/language"
	"github.com/ieee0824/p2g-go/lexicon"
)

// Model is a trained spelling model.
type Model struct {
	Alphabet lexicon.Alphabet
	DecCfg   decoder.Config
	Stats    corpus.Stats // zero unless built from raw rows

	// Raw counts, kept for inspection.
	BigramCounts  *language.BigramTable
	TrigramCounts *language.TrigramTable

	// Normalised distributions used for decoding.
	Bigram  *language.BigramTable
	Trigram *language.TrigramTable

	log zerolog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithAlphabet sets the grapheme alphabet used for validation and spelling.
func WithAlphabet(a lexicon.Alphabet) Option {
	return func(m *Model) {
		m.Alphabet = a
	}
}

// WithDecoderConfig sets the default decoder parameters.
func WithDecoderConfig(cfg decoder.Config) Option {
	return func(m *Model) {
		m.DecCfg = cfg
	}
}

// WithLogger sets the logger passed down to the validator and trainer.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Model) {
		m.log = log
	}
}

func newModel(opts []Option) *Model {
	m := &Model{
		Alphabet: lexicon.DefaultAlphabet(),
		DecCfg:   decoder.DefaultConfig(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Train builds a model from already validated records.
func Train(records []corpus.Record, opts ...Option) (*Model, error) {
	m := newModel(opts)
	if err := m.train(records); err != nil {
		return nil, err
	}
	return m, nil
}

// Build validates raw rows against vocab and the model alphabet, then trains
// on the rows that pass. Invalid rows are only counted in Model.Stats.
func Build(rows []corpus.Row, vocab *lexicon.Vocabulary, opts ...Option) (*Model, error) {
	m := newModel(opts)
	v := corpus.NewValidator(vocab, m.Alphabet,
		corpus.WithLogger(m.log.With().Str("component", "validator").Logger()))
	res := v.Validate(rows)
	m.Stats = res.Stats
	if len(res.Records) == 0 {
		m.log.Warn().Int("invalid", res.Stats.InvalidRows).Msg("no valid rows; every phoneme will lack coverage")
	}
	if err := m.train(res.Records); err != nil {
		return nil, err
	}
	return m, nil
}

// BuildFromFiles reads a CSV corpus and a phoneme inventory and builds a model.
func BuildFromFiles(corpusPath, vocabPath string, opts ...Option) (*Model, error) {
	vocab, err := lexicon.LoadVocabularyFile(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	rows, err := corpus.ReadFile(corpusPath)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return Build(rows, vocab, opts...)
}

func (m *Model) train(records []corpus.Record) error {
	tr := language.NewTrainer(language.WithTrainerLogger(m.log.With().Str("component", "trainer").Logger()))
	if err := tr.AddAll(records); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	m.BigramCounts = tr.Bigram()
	m.TrigramCounts = tr.Trigram()

	bi, tri, err := language.Normalize(m.BigramCounts, m.TrigramCounts)
	if err != nil {
		return err
	}
	m.Bigram, m.Trigram = bi, tri

	m.log.Info().
		Int("records", tr.Records()).
		Int("bigram_keys", bi.Len()).
		Int("trigram_keys", tri.Len()).
		Msg("model trained")
	return nil
}

// Transliterate spells a whitespace-separated phoneme string with the
// model's decoder config.
func (m *Model) Transliterate(phonemes string) ([]decoder.Candidate, error) {
	return decoder.Decode(phonemes, m.Bigram, m.Trigram, m.DecCfg)
}

// TransliterateWith spells a phoneme string with an explicit decoder config.
func (m *Model) TransliterateWith(phonemes string, cfg decoder.Config) ([]decoder.Candidate, error) {
	return decoder.Decode(phonemes, m.Bigram, m.Trigram, cfg)
}

// TransliterateAll spells many phoneme strings concurrently.
func (m *Model) TransliterateAll(ctx context.Context, inputs []string, workers int) ([]decoder.BatchResult, error) {
	return decoder.DecodeAll(ctx, inputs, m.Bigram, m.Trigram, m.DecCfg, workers)
}

// Spell renders a candidate as a word using the model alphabet.
func (m *Model) Spell(c decoder.Candidate) string {
	return c.Spelling(m.Alphabet)
}
