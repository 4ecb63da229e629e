package decoder

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ieee0824/p2g-go/language"
)

// BatchResult is the outcome of decoding one input of a batch.
type BatchResult struct {
	Input      string
	Candidates []Candidate
	Err        error // per-input failure such as *EmptyBeamError
}

// DecodeAll decodes inputs concurrently against shared read-only tables.
// Results keep the order of inputs. Per-input decode failures are reported in
// BatchResult.Err; the returned error is non-nil only for an invalid config or
// a cancelled context. workers <= 0 means runtime.NumCPU().
func DecodeAll(ctx context.Context, inputs []string, bigram *language.BigramTable, trigram *language.TrigramTable, cfg Config, workers int) ([]BatchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]BatchResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cands, err := Decode(in, bigram, trigram, cfg)
			results[i] = BatchResult{Input: in, Candidates: cands, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
