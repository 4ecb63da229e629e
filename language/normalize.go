package language

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyDistribution is matched by every *AlignmentModelError.
var ErrEmptyDistribution = errors.New("distribution has no mass")

// AlignmentModelError reports a table row that cannot be turned into a
// probability distribution. It means the table was not built by a Trainer.
type AlignmentModelError struct {
	Key    any
	Reason string
}

func (e *AlignmentModelError) Error() string {
	return fmt.Sprintf("alignment model: key %v: %s", e.Key, e.Reason)
}

func (e *AlignmentModelError) Is(target error) bool { return target == ErrEmptyDistribution }

// Normalized returns a new table in which every row is divided by its sum.
// The receiver is left untouched so raw counts remain available.
//
// Every row must be nonempty with finite, nonnegative values and a positive
// sum; otherwise an *AlignmentModelError is returned and no table is produced.
// Normalising an already normalised table is a no-op within float tolerance.
func (t *Table[K]) Normalized() (*Table[K], error) {
	out := &Table[K]{
		rows:       make(map[K]map[string]float64, len(t.rows)),
		normalized: true,
	}
	for key, r := range t.rows {
		if len(r) == 0 {
			return nil, &AlignmentModelError{Key: key, Reason: "empty distribution"}
		}
		total := 0.0
		for g, v := range r {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &AlignmentModelError{Key: key, Reason: fmt.Sprintf("invalid value %v for %q", v, g)}
			}
			total += v
		}
		if total <= 0 {
			return nil, &AlignmentModelError{Key: key, Reason: "zero total count"}
		}
		nr := make(map[string]float64, len(r))
		for g, v := range r {
			nr[g] = v / total
		}
		out.rows[key] = nr
	}
	return out, nil
}

// Normalize normalises a bigram and a trigram frequency table.
func Normalize(bigram *BigramTable, trigram *TrigramTable) (*BigramTable, *TrigramTable, error) {
	bp, err := bigram.Normalized()
	if err != nil {
		return nil, nil, fmt.Errorf("normalize bigrams: %w", err)
	}
	tp, err := trigram.Normalized()
	if err != nil {
		return nil, nil, fmt.Errorf("normalize trigrams: %w", err)
	}
	return bp, tp, nil
}
