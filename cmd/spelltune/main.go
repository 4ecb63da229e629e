package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	p2g "github.com/ieee0824/p2g-go"
	"github.com/ieee0824/p2g-go/corpus"
	"github.com/ieee0824/p2g-go/evaluate"
	"github.com/ieee0824/p2g-go/internal/config"
	"github.com/ieee0824/p2g-go/internal/metrics"
	"github.com/ieee0824/p2g-go/lexicon"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	holdout := flag.Int("holdout", 10, "hold out every k-th valid row for testing")
	alphasStr := flag.String("alphas", "", "comma-separated alpha values (default: grid from -steps)")
	steps := flag.Int("steps", 10, "alpha grid steps over [0,1]")
	var ov config.Overrides
	ov.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spelltune [options] -corpus CSV -vocab PHONES")
		fmt.Fprintln(os.Stderr, "  Grid search the bigram/trigram weight against a held-out split.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath, ov)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Corpus == "" || cfg.Vocabulary == "" || *holdout < 2 {
		flag.Usage()
		os.Exit(1)
	}
	log := cfg.Logger(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	alphas := evaluate.AlphaGrid(*steps)
	if *alphasStr != "" {
		alphas, err = parseFloats(*alphasStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -alphas: %v\n", err)
			os.Exit(1)
		}
	}

	alphabet, err := cfg.AlphabetValue()
	if err != nil {
		log.Fatal().Err(err).Msg("alphabet")
	}
	vocab, err := lexicon.LoadVocabularyFile(cfg.Vocabulary)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Vocabulary).Msg("load vocabulary")
	}
	rows, err := corpus.ReadFile(cfg.Corpus)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Corpus).Msg("read corpus")
	}
	res := corpus.NewValidator(vocab, alphabet,
		corpus.WithLogger(log.With().Str("component", "validator").Logger())).Validate(rows)
	metrics.ObserveCorpus(res.Stats)

	train, test := evaluate.Split(res.Records, *holdout)
	log.Info().Int("train", len(train)).Int("test", len(test)).Msg("split corpus")
	if len(test) == 0 {
		log.Fatal().Msg("no held-out records; lower -holdout or add rows")
	}

	model, err := p2g.Train(train, p2g.WithAlphabet(alphabet), p2g.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("train")
	}
	metrics.ObserveTable("bigram", model.Bigram.Len(), model.Bigram.Entries())
	metrics.ObserveTable("trigram", model.Trigram.Len(), model.Trigram.Entries())

	ev := &evaluate.Evaluator{
		Bigram:   model.Bigram,
		Trigram:  model.Trigram,
		Alphabet: alphabet,
		Workers:  cfg.Workers,
	}
	fmt.Fprintf(os.Stderr, "Running %d alpha values on %d held-out records...\n", len(alphas), len(test))
	reports, err := ev.Sweep(ctx, test, alphas, cfg.Decoder.BeamWidth)
	if err != nil {
		log.Fatal().Err(err).Msg("sweep")
	}

	fmt.Printf("%-8s %-6s %8s %8s %10s %10s %8s\n",
		"Alpha", "Beam", "Top1", "TopN", "TokDist", "CharDist", "NoCov")
	fmt.Println(strings.Repeat("-", 64))
	for _, r := range reports {
		metrics.ObserveEvaluation(r)
		fmt.Printf("%-8.2f %-6d %7.1f%% %7.1f%% %10.3f %10.3f %8d\n",
			r.Alpha, r.BeamWidth, r.Top1Accuracy()*100, r.TopNAccuracy()*100,
			r.TokenDistance, r.CharDistance, r.NoCoverage)
	}

	if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
		log.Error().Err(err).Str("path", cfg.MetricsFile).Msg("write metrics")
		os.Exit(1)
	}
}

// parseFloats parses a comma-separated list. Empty entries are skipped; any
// other unparsable entry is an error.
func parseFloats(s string) ([]float64, error) {
	var vals []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q: %w", part, err)
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("no values in %q", s)
	}
	return vals, nil
}
