// Package evaluate measures decoder accuracy on held-out aligned records and
// searches the interpolation weight.
package evaluate

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/antzucaro/matchr"

	"github.com/ieee0824/p2g-go/corpus"
	"github.com/ieee0824/p2g-go/decoder"
	"github.com/ieee0824/p2g-go/language"
	"github.com/ieee0824/p2g-go/lexicon"
)

// Report summarises one evaluation run.
type Report struct {
	Alpha     float64
	BeamWidth int

	Total      int // records evaluated
	Top1       int // best candidate equals the reference tokens
	TopN       int // reference tokens appear anywhere in the beam
	NoCoverage int // records containing a phoneme unseen in training

	// Means over covered records, best candidate against reference.
	TokenDistance float64 // grapheme-token edit distance
	CharDistance  float64 // character edit distance of the spellings
}

// Top1Accuracy returns Top1/Total, or 0 for an empty run.
func (r Report) Top1Accuracy() float64 { return ratio(r.Top1, r.Total) }

// TopNAccuracy returns TopN/Total, or 0 for an empty run.
func (r Report) TopNAccuracy() float64 { return ratio(r.TopN, r.Total) }

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func (r Report) String() string {
	return fmt.Sprintf("alpha=%.2f beam=%d top1=%.1f%% topN=%.1f%% tokdist=%.3f chardist=%.3f nocov=%d/%d",
		r.Alpha, r.BeamWidth, r.Top1Accuracy()*100, r.TopNAccuracy()*100,
		r.TokenDistance, r.CharDistance, r.NoCoverage, r.Total)
}

// Evaluator decodes records against a fixed pair of normalised tables.
type Evaluator struct {
	Bigram   *language.BigramTable
	Trigram  *language.TrigramTable
	Alphabet lexicon.Alphabet
	Workers  int // <= 0 means runtime.NumCPU()
}

// Run decodes every record's phonemes and compares against its graphemes.
func (e *Evaluator) Run(ctx context.Context, records []corpus.Record, cfg decoder.Config) (Report, error) {
	inputs := make([]string, len(records))
	for i, rec := range records {
		inputs[i] = rec.PhonemeString()
	}
	results, err := decoder.DecodeAll(ctx, inputs, e.Bigram, e.Trigram, cfg, e.Workers)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Alpha: cfg.Alpha, BeamWidth: cfg.BeamWidth, Total: len(records)}
	var tokSum, charSum, covered int
	for i, res := range results {
		ref := records[i].Graphemes
		if res.Err != nil {
			rep.NoCoverage++
			continue
		}
		if len(res.Candidates) == 0 {
			continue
		}
		covered++
		best := res.Candidates[0]
		if slices.Equal(best.Graphemes, ref) {
			rep.Top1++
		}
		for _, c := range res.Candidates {
			if slices.Equal(c.Graphemes, ref) {
				rep.TopN++
				break
			}
		}
		tokSum += lexicon.TokenEditDistance(best.Graphemes, ref)
		charSum += matchr.Levenshtein(e.Alphabet.Spell(best.Graphemes), e.Alphabet.Spell(ref))
	}
	if covered > 0 {
		rep.TokenDistance = float64(tokSum) / float64(covered)
		rep.CharDistance = float64(charSum) / float64(covered)
	}
	return rep, nil
}

// Sweep runs one evaluation per alpha and returns reports ordered by top-1
// accuracy descending, then alpha ascending.
func (e *Evaluator) Sweep(ctx context.Context, records []corpus.Record, alphas []float64, beamWidth int) ([]Report, error) {
	reports := make([]Report, 0, len(alphas))
	for _, a := range alphas {
		rep, err := e.Run(ctx, records, decoder.Config{Alpha: a, BeamWidth: beamWidth})
		if err != nil {
			return nil, fmt.Errorf("alpha %v: %w", a, err)
		}
		reports = append(reports, rep)
	}
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Top1 != reports[j].Top1 {
			return reports[i].Top1 > reports[j].Top1
		}
		return reports[i].Alpha < reports[j].Alpha
	})
	return reports, nil
}

// Split holds out every k-th record (k >= 2) for testing and returns the rest
// for training. k < 2 returns all records for training.
func Split(records []corpus.Record, k int) (train, test []corpus.Record) {
	if k < 2 {
		return records, nil
	}
	for i, rec := range records {
		if (i+1)%k == 0 {
			test = append(test, rec)
		} else {
			train = append(train, rec)
		}
	}
	return train, test
}

// AlphaGrid returns steps+1 evenly spaced alphas from 0 to 1 inclusive.
func AlphaGrid(steps int) []float64 {
	if steps < 1 {
		return []float64{1}
	}
	grid := make([]float64, steps+1)
	for i := range grid {
		grid[i] = float64(i) / float64(steps)
	}
	return grid
}
