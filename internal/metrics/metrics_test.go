package metrics

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieee0824/p2g-go/corpus"
	"github.com/ieee0824/p2g-go/decoder"
	"github.com/ieee0824/p2g-go/evaluate"
)

func TestObserveCorpus(t *testing.T) {
	ObserveCorpus(corpus.Stats{
		InvalidRows:     2,
		RetainedRows:    3,
		AvgPhonemes:     corpus.Measure{Value: 2.5, Defined: true},
		CountMismatches: 2,
	})

	assert.Equal(t, 3.0, testutil.ToFloat64(CorpusRows.WithLabelValues("retained")))
	assert.Equal(t, 2.0, testutil.ToFloat64(CorpusRows.WithLabelValues("invalid")))
	assert.Equal(t, 2.0, testutil.ToFloat64(CorpusRows.WithLabelValues("count_mismatch")))
	assert.Equal(t, 2.5, testutil.ToFloat64(CorpusAverage.WithLabelValues("phonemes")))
	assert.True(t, math.IsNaN(testutil.ToFloat64(CorpusAverage.WithLabelValues("graphemes"))))
}

func TestObserveDecode(t *testing.T) {
	before := testutil.ToFloat64(DecodesTotal.WithLabelValues("no_coverage"))
	ObserveDecode(&decoder.EmptyBeamError{Phoneme: "zh"})
	assert.Equal(t, before+1, testutil.ToFloat64(DecodesTotal.WithLabelValues("no_coverage")))

	assert.Equal(t, "ok", decodeResult(nil))
	assert.Equal(t, "invalid_config", decodeResult(&decoder.ConfigurationError{Field: "alpha"}))
	assert.Equal(t, "error", decodeResult(os.ErrNotExist))
}

func TestObserveEvaluation(t *testing.T) {
	ObserveEvaluation(evaluate.Report{Alpha: 0.5, Total: 4, Top1: 3, TopN: 4, TokenDistance: 0.25})

	assert.Equal(t, 0.75, testutil.ToFloat64(EvalAccuracy.WithLabelValues("0.5", "top1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(EvalAccuracy.WithLabelValues("0.5", "topn")))
	assert.Equal(t, 0.25, testutil.ToFloat64(EvalDistance.WithLabelValues("0.5", "token")))
}

func TestWriteTextfile(t *testing.T) {
	ObserveTable("bigram", 5, 12)
	path := filepath.Join(t.TempDir(), "p2g.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `p2g_table_keys{table="bigram"} 5`)
	assert.Contains(t, string(data), `p2g_table_entries{table="bigram"} 12`)

	require.NoError(t, WriteTextfile(""))
}
