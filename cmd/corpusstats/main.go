package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ieee0824/p2g-go/corpus"
	"github.com/ieee0824/p2g-go/internal/config"
	"github.com/ieee0824/p2g-go/internal/metrics"
	"github.com/ieee0824/p2g-go/lexicon"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	var ov config.Overrides
	ov.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: corpusstats [-config FILE] -corpus CSV -vocab PHONES")
		fmt.Fprintln(os.Stderr, "  Validates an aligned corpus and prints summary statistics.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath, ov)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Corpus == "" || cfg.Vocabulary == "" {
		flag.Usage()
		os.Exit(1)
	}
	log := cfg.Logger(zerolog.ConsoleWriter{Out: os.Stderr})

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

	v := corpus.NewValidator(vocab, alphabet,
		corpus.WithLogger(log.With().Str("component", "validator").Logger()))
	s := v.Validate(rows).Stats

	fmt.Printf("%-20s %d\n", "rows", len(rows))
	fmt.Printf("%-20s %d\n", "retained", s.RetainedRows)
	fmt.Printf("%-20s %d\n", "invalid", s.InvalidRows)
	fmt.Printf("%-20s %d\n", "  count mismatch", s.CountMismatches)
	fmt.Printf("%-20s %d\n", "  unknown phoneme", s.UnknownPhonemes)
	fmt.Printf("%-20s %d\n", "  invalid grapheme", s.InvalidGraphemes)
	fmt.Printf("%-20s %s\n", "avg phonemes", s.AvgPhonemes)
	fmt.Printf("%-20s %s\n", "avg graphemes", s.AvgGraphemes)
	fmt.Printf("%-20s %s\n", "null proportion", s.NullProportion)

	metrics.ObserveCorpus(s)
	if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
		log.Error().Err(err).Str("path", cfg.MetricsFile).Msg("write metrics")
		os.Exit(1)
	}
}
