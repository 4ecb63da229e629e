// Package metrics exposes corpus, model and evaluation figures as Prometheus
// gauges. Batch commands write them with WriteTextfile for a node_exporter
// textfile collector.
package metrics

import (
	"errors"
	"math"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ieee0824/p2g-go/corpus"
	"github.com/ieee0824/p2g-go/decoder"
	"github.com/ieee0824/p2g-go/evaluate"
)

const namespace = "p2g"

// Registry holds every collector in this package.
var Registry = prometheus.NewRegistry()

// Corpus gauges (set once per validation pass).
var (
	CorpusRows = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "corpus_rows",
		Help:      "Corpus rows by validation outcome.",
	}, []string{"outcome"})

	CorpusAverage = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "corpus_average",
		Help:      "Per-word corpus averages over retained rows; NaN when undefined.",
	}, []string{"measure"})
)

// Model gauges.
var (
	TableKeys = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "table_keys",
		Help:      "Conditioning keys per n-gram table.",
	}, []string{"table"})

	TableEntries = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "table_entries",
		Help:      "Key/grapheme pairs per n-gram table.",
	}, []string{"table"})
)

// Decode counters.
var (
	DecodesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decodes_total",
		Help:      "Decode calls by result.",
	}, []string{"result"})
)

// Evaluation gauges.
var (
	EvalAccuracy = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "eval_accuracy",
		Help:      "Held-out accuracy by alpha and rank.",
	}, []string{"alpha", "rank"})

	EvalDistance = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "eval_edit_distance",
		Help:      "Mean edit distance of the best candidate by alpha and unit.",
	}, []string{"alpha", "unit"})
)

func init() {
	Registry.MustRegister(
		CorpusRows,
		CorpusAverage,
		TableKeys,
		TableEntries,
		DecodesTotal,
		EvalAccuracy,
		EvalDistance,
	)
}

// ObserveCorpus records validation statistics.
func ObserveCorpus(s corpus.Stats) {
	CorpusRows.WithLabelValues("retained").Set(float64(s.RetainedRows))
	CorpusRows.WithLabelValues("invalid").Set(float64(s.InvalidRows))
	CorpusRows.WithLabelValues("count_mismatch").Set(float64(s.CountMismatches))
	CorpusRows.WithLabelValues("unknown_phoneme").Set(float64(s.UnknownPhonemes))
	CorpusRows.WithLabelValues("invalid_grapheme").Set(float64(s.InvalidGraphemes))

	CorpusAverage.WithLabelValues("phonemes").Set(measure(s.AvgPhonemes))
	CorpusAverage.WithLabelValues("graphemes").Set(measure(s.AvgGraphemes))
	CorpusAverage.WithLabelValues("null_proportion").Set(measure(s.NullProportion))
}

func measure(m corpus.Measure) float64 {
	if !m.Defined {
		return math.NaN()
	}
	return m.Value
}

// ObserveTable records the size of one n-gram table.
func ObserveTable(name string, keys, entries int) {
	TableKeys.WithLabelValues(name).Set(float64(keys))
	TableEntries.WithLabelValues(name).Set(float64(entries))
}

// ObserveDecode counts one decode call by its outcome.
func ObserveDecode(err error) {
	DecodesTotal.WithLabelValues(decodeResult(err)).Inc()
}

func decodeResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, decoder.ErrNoCoverage):
		return "no_coverage"
	case errors.Is(err, decoder.ErrInvalidConfig):
		return "invalid_config"
	default:
		return "error"
	}
}

// ObserveEvaluation records one evaluation report.
func ObserveEvaluation(r evaluate.Report) {
	alpha := strconv.FormatFloat(r.Alpha, 'f', -1, 64)
	EvalAccuracy.WithLabelValues(alpha, "top1").Set(r.Top1Accuracy())
	EvalAccuracy.WithLabelValues(alpha, "topn").Set(r.TopNAccuracy())
	EvalDistance.WithLabelValues(alpha, "token").Set(r.TokenDistance)
	EvalDistance.WithLabelValues(alpha, "char").Set(r.CharDistance)
}

// WriteTextfile writes the registry in text exposition format to path.
// An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, Registry)
}
