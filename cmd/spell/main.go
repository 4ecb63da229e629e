package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"

	p2g "github.com/ieee0824/p2g-go"
	"github.com/ieee0824/p2g-go/internal/config"
	"github.com/ieee0824/p2g-go/internal/metrics"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	top := flag.Int("n", 0, "candidates to print per input (0 = whole beam)")
	var ov config.Overrides
	ov.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spell [options] [\"PHONEMES\"...]")
		fmt.Fprintln(os.Stderr, "  Trains on -corpus and spells each phoneme string.")
		fmt.Fprintln(os.Stderr, "  Phonemes are separated by spaces. If no arguments given, reads one input per line from stdin.")
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	alphabet, err := cfg.AlphabetValue()
	if err != nil {
		log.Fatal().Err(err).Msg("alphabet")
	}
	model, err := p2g.BuildFromFiles(cfg.Corpus, cfg.Vocabulary,
		p2g.WithAlphabet(alphabet),
		p2g.WithDecoderConfig(cfg.DecoderConfig()),
		p2g.WithLogger(log),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("build model")
	}

	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs, err = readLines(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("read stdin")
		}
	}

	results, err := model.TransliterateAll(ctx, inputs, cfg.Workers)
	if err != nil {
		log.Fatal().Err(err).Msg("decode")
	}

	failed := 0
	for _, r := range results {
		metrics.ObserveDecode(r.Err)
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Input, r.Err)
			continue
		}
		cands := r.Candidates
		if *top > 0 && len(cands) > *top {
			cands = cands[:*top]
		}
		fmt.Println(r.Input)
		for _, c := range cands {
			fmt.Printf("  %-24s %-32s %.6f\n", model.Spell(c), strings.Join(c.Graphemes, " "), c.Probability)
		}
	}

	metrics.ObserveCorpus(model.Stats)
	metrics.ObserveTable("bigram", model.Bigram.Len(), model.Bigram.Entries())
	metrics.ObserveTable("trigram", model.Trigram.Len(), model.Trigram.Entries())
	if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
		log.Error().Err(err).Str("path", cfg.MetricsFile).Msg("write metrics")
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// readLines returns the non-blank lines of r, trimmed. A line longer than
// 1 MiB is an error.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
