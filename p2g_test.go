package p2g

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ieee0824/p2g-go/corpus"
	"github.com/ieee0824/p2g-go/decoder"
	"github.com/ieee0824/p2g-go/lexicon"
)

const eps = 1e-9

func buildTestModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	m, err := BuildFromFiles("testdata/corpus.csv", "testdata/phones.txt", opts...)
	if err != nil {
		t.Fatalf("BuildFromFiles: %v", err)
	}
	return m
}

func TestBuildFromFiles(t *testing.T) {
	m := buildTestModel(t)

	if m.Stats.RetainedRows != 6 {
		t.Errorf("RetainedRows = %d, want 6", m.Stats.RetainedRows)
	}
	if m.Stats.InvalidRows != 3 {
		t.Errorf("InvalidRows = %d, want 3", m.Stats.InvalidRows)
	}
	if m.Stats.CountMismatches != 1 || m.Stats.UnknownPhonemes != 1 || m.Stats.InvalidGraphemes != 1 {
		t.Errorf("reject reasons = %d/%d/%d, want 1/1/1",
			m.Stats.CountMismatches, m.Stats.UnknownPhonemes, m.Stats.InvalidGraphemes)
	}

	if v, _ := m.BigramCounts.Value("k", "c"); v != 3 {
		t.Errorf("count(k -> c) = %v, want 3", v)
	}
	if v, _ := m.Bigram.Value("k", "c"); math.Abs(v-0.75) > eps {
		t.Errorf("P(c | k) = %v, want 0.75", v)
	}
	if m.BigramCounts.IsNormalized() || !m.Bigram.IsNormalized() {
		t.Error("counts and distributions are mixed up")
	}
}

func TestTransliterate(t *testing.T) {
	m := buildTestModel(t)

	cands, err := m.Transliterate("k ae t")
	if err != nil {
		t.Fatalf("Transliterate: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2", len(cands))
	}
	tests := []struct {
		spelling string
		prob     float64
	}{
		{"cat", 0.75},
		{"kat", 0.25},
	}
	for i, tt := range tests {
		if got := m.Spell(cands[i]); got != tt.spelling {
			t.Errorf("cands[%d] = %q, want %q", i, got, tt.spelling)
		}
		if math.Abs(cands[i].Probability-tt.prob) > eps {
			t.Errorf("cands[%d].Probability = %v, want %v", i, cands[i].Probability, tt.prob)
		}
	}
}

func TestTransliterateMultiLetterGrapheme(t *testing.T) {
	m := buildTestModel(t)
	cands, err := m.Transliterate("n ow")
	if err != nil {
		t.Fatalf("Transliterate: %v", err)
	}
	if got := m.Spell(cands[0]); got != "know" {
		t.Errorf("spelling = %q, want %q", got, "know")
	}
}

func TestTransliterateNoCoverage(t *testing.T) {
	m := buildTestModel(t)
	_, err := m.Transliterate("zh ae")
	if !errors.Is(err, decoder.ErrNoCoverage) {
		t.Fatalf("error = %v, want ErrNoCoverage", err)
	}
	var eb *decoder.EmptyBeamError
	if !errors.As(err, &eb) || eb.Phoneme != "zh" {
		t.Errorf("error = %#v, want EmptyBeamError for zh", err)
	}
}

func TestTransliterateWithInvalidConfig(t *testing.T) {
	m := buildTestModel(t)
	_, err := m.TransliterateWith("k ae t", decoder.Config{Alpha: 2, BeamWidth: 10})
	if !errors.Is(err, decoder.ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestWithDecoderConfigBeamWidth(t *testing.T) {
	m := buildTestModel(t, WithDecoderConfig(decoder.Config{Alpha: 0.5, BeamWidth: 1}))
	cands, err := m.Transliterate("k ae t")
	if err != nil {
		t.Fatalf("Transliterate: %v", err)
	}
	if len(cands) != 1 || m.Spell(cands[0]) != "cat" {
		t.Errorf("cands = %+v, want only cat", cands)
	}
}

func TestTransliterateAll(t *testing.T) {
	m := buildTestModel(t)
	inputs := []string{"b ae t", "zh", "n ow", "k ae b"}
	results, err := m.TransliterateAll(context.Background(), inputs, 2)
	if err != nil {
		t.Fatalf("TransliterateAll: %v", err)
	}
	want := []string{"bat", "", "know", "cab"}
	for i, r := range results {
		if r.Input != inputs[i] {
			t.Errorf("results[%d].Input = %q, want %q", i, r.Input, inputs[i])
		}
		if want[i] == "" {
			if !errors.Is(r.Err, decoder.ErrNoCoverage) {
				t.Errorf("results[%d].Err = %v, want ErrNoCoverage", i, r.Err)
			}
			continue
		}
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
			continue
		}
		if got := m.Spell(r.Candidates[0]); got != want[i] {
			t.Errorf("results[%d] = %q, want %q", i, got, want[i])
		}
	}
}

func TestTrain(t *testing.T) {
	records := []corpus.Record{
		corpus.NewRecord("k ae t", "c a t"),
		corpus.NewRecord("k ow", "c _"),
	}
	m, err := Train(records)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if m.Stats != (corpus.Stats{}) {
		t.Errorf("Stats = %+v, want zero for Train", m.Stats)
	}
	cands, err := m.Transliterate("k ow")
	if err != nil {
		t.Fatalf("Transliterate: %v", err)
	}
	if got := m.Spell(cands[0]); got != "c" {
		t.Errorf("spelling = %q, want %q", got, "c")
	}
}

func TestTrainMisaligned(t *testing.T) {
	_, err := Train([]corpus.Record{{Phonemes: []string{"k"}, Graphemes: nil}})
	if err == nil {
		t.Fatal("expected error for misaligned record")
	}
}

func TestBuildNoValidRows(t *testing.T) {
	rows := []corpus.Row{{Line: 2, Phonemes: "k", Graphemes: "c c"}}
	m, err := Build(rows, lexicon.NewVocabulary("k"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Stats.RetainedRows != 0 || m.Stats.AvgPhonemes.Defined {
		t.Errorf("Stats = %+v, want no retained rows and undefined averages", m.Stats)
	}
	if _, err := m.Transliterate("k"); !errors.Is(err, decoder.ErrNoCoverage) {
		t.Errorf("error = %v, want ErrNoCoverage", err)
	}
}

func TestBuildWithAlphabet(t *testing.T) {
	alpha, err := lexicon.NewAlphabet("abc", '-')
	if err != nil {
		t.Fatalf("NewAlphabet: %v", err)
	}
	rows := []corpus.Row{
		{Line: 2, Phonemes: "k ae", Graphemes: "c a"},
		{Line: 3, Phonemes: "k t", Graphemes: "c -"},
		{Line: 4, Phonemes: "ae t", Graphemes: "a t"},
	}
	m, err := Build(rows, lexicon.NewVocabulary("k", "ae", "t"), WithAlphabet(alpha))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Stats.RetainedRows != 2 {
		t.Errorf("RetainedRows = %d, want 2", m.Stats.RetainedRows)
	}
	cands, err := m.Transliterate("k t")
	if err != nil {
		t.Fatalf("Transliterate: %v", err)
	}
	if got := m.Spell(cands[0]); got != "c" {
		t.Errorf("spelling = %q, want %q", got, "c")
	}
}

func TestBuildFromFilesMissing(t *testing.T) {
	if _, err := BuildFromFiles("testdata/nope.csv", "testdata/phones.txt"); err == nil {
		t.Error("expected error for missing corpus")
	}
	if _, err := BuildFromFiles("testdata/corpus.csv", "testdata/nope.txt"); err == nil {
		t.Error("expected error for missing vocabulary")
	}
}
