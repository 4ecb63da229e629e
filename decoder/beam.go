package decoder

import (
	"slices"
	"strings"

	"github.com/ieee0824/p2g-go/language"
)

// hypothesis is a partial spelling. graphemes[0] is always language.Sentinel.
type hypothesis struct {
	graphemes []string
	prob      float64
}

// Decode transliterates a whitespace-separated phoneme string into at most
// cfg.BeamWidth spellings, most probable first. See DecodeTokens.
func Decode(phonemes string, bigram *language.BigramTable, trigram *language.TrigramTable, cfg Config) ([]Candidate, error) {
	return DecodeTokens(strings.Fields(phonemes), bigram, trigram, cfg)
}

// DecodeTokens runs beam search over a phoneme sequence using normalised
// bigram and trigram tables.
//
// Each hypothesis h is extended by every grapheme g listed under the phoneme
// in the bigram table, scored as
//
//	h.prob * (alpha*P(g|p) + (1-alpha)*P(g|p, last(h)))
//
// where a missing trigram entry contributes 0 to the second term. Its alpha
// weight is not moved back onto the bigram term. Candidates are ordered by
// descending probability, then by ascending grapheme sequence, and the first
// BeamWidth survive each step.
//
// Probabilities are multiplied in linear space and can underflow to zero on
// very long inputs.
//
// A phoneme without a bigram distribution yields *EmptyBeamError. An empty
// input yields a single empty candidate with probability 1. A nil table reads
// as empty. The tables are only read, so concurrent calls may share them.
func DecodeTokens(phonemes []string, bigram *language.BigramTable, trigram *language.TrigramTable, cfg Config) ([]Candidate, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	beam := []hypothesis{{graphemes: []string{language.Sentinel}, prob: 1.0}}
	var next []hypothesis

	for pos, p := range phonemes {
		graphemes := bigram.Graphemes(p)
		if len(graphemes) == 0 {
			return nil, &EmptyBeamError{Phoneme: p, Position: pos}
		}

		next = slices.Grow(next[:0], len(beam)*len(graphemes))
		for _, h := range beam {
			prev := h.graphemes[len(h.graphemes)-1]
			key := language.TrigramKey{Phoneme: p, Prev: prev}
			for _, g := range graphemes {
				bi, _ := bigram.Value(p, g)
				tri, _ := trigram.Value(key, g)
				step := cfg.Alpha*bi + (1-cfg.Alpha)*tri
				next = append(next, hypothesis{
					graphemes: extend(h.graphemes, g),
					prob:      h.prob * step,
				})
			}
		}

		beam = prune(next, beam[:0], cfg.BeamWidth)
	}

	out := make([]Candidate, len(beam))
	for i, h := range beam {
		out[i] = Candidate{Graphemes: h.graphemes[1:], Probability: h.prob}
	}
	return out, nil
}

// extend returns a new slice so hypotheses never share backing arrays.
func extend(seq []string, g string) []string {
	out := make([]string, len(seq)+1)
	copy(out, seq)
	out[len(seq)] = g
	return out
}

// compareHypotheses orders by descending probability, then ascending
// grapheme sequence compared token by token.
func compareHypotheses(a, b hypothesis) int {
	switch {
	case a.prob > b.prob:
		return -1
	case a.prob < b.prob:
		return 1
	}
	return slices.Compare(a.graphemes, b.graphemes)
}

// prune sorts src and copies its best width entries into dst.
func prune(src, dst []hypothesis, width int) []hypothesis {
	slices.SortFunc(src, compareHypotheses)
	if len(src) > width {
		src = src[:width]
	}
	return append(dst, src...)
}
