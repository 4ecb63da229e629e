// Package config loads settings for the p2g commands from a YAML file,
// environment variables and command-line overrides.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ieee0824/p2g-go/decoder"
	"github.com/ieee0824/p2g-go/lexicon"
)

// Config holds every setting shared by the commands.
type Config struct {
	Corpus      string `yaml:"corpus" env:"P2G_CORPUS"`
	Vocabulary  string `yaml:"vocabulary" env:"P2G_VOCABULARY"`
	Workers     int    `yaml:"workers" env:"P2G_WORKERS"`
	LogLevel    string `yaml:"log_level" env:"P2G_LOG_LEVEL"`
	MetricsFile string `yaml:"metrics_file" env:"P2G_METRICS_FILE"`

	Alphabet AlphabetConfig `yaml:"alphabet" envPrefix:"P2G_ALPHABET_"`
	Decoder  DecoderConfig  `yaml:"decoder" envPrefix:"P2G_DECODER_"`
}

// AlphabetConfig describes the grapheme alphabet.
type AlphabetConfig struct {
	Letters     string `yaml:"letters" env:"LETTERS"`
	Placeholder string `yaml:"placeholder" env:"PLACEHOLDER"` // exactly one character
}

// DecoderConfig mirrors decoder.Config.
type DecoderConfig struct {
	Alpha     float64 `yaml:"alpha" env:"ALPHA"`
	BeamWidth int     `yaml:"beam_width" env:"BEAM_WIDTH"`
}

// Overrides holds CLI flag values that take priority over everything else.
// Zero strings and nil pointers leave the loaded value alone.
type Overrides struct {
	EnvFile     string
	Corpus      string
	Vocabulary  string
	LogLevel    string
	MetricsFile string
	Alpha       *float64
	BeamWidth   *int
	Workers     int
}

// RegisterFlags binds the common command-line flags to ov.
func (ov *Overrides) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&ov.EnvFile, "env-file", "", "dotenv file (default: .env if present)")
	fs.StringVar(&ov.Corpus, "corpus", "", "aligned corpus CSV")
	fs.StringVar(&ov.Vocabulary, "vocab", "", "phoneme inventory file")
	fs.StringVar(&ov.LogLevel, "log-level", "", "trace, debug, info, warn or error")
	fs.StringVar(&ov.MetricsFile, "metrics", "", "write Prometheus metrics to this file")
	fs.Func("beam", "beam width (>= 1)", func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		ov.BeamWidth = &v
		return nil
	})
	fs.IntVar(&ov.Workers, "workers", 0, "parallel workers (default: NumCPU)")
	fs.Func("alpha", "bigram weight in [0,1]", func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		ov.Alpha = &v
		return nil
	})
}

// Default returns the built-in defaults.
func Default() *Config {
	dc := decoder.DefaultConfig()
	return &Config{
		LogLevel: "info",
		Alphabet: AlphabetConfig{
			Letters:     lexicon.DefaultLetters,
			Placeholder: string(lexicon.NullGrapheme),
		},
		Decoder: DecoderConfig{
			Alpha:     dc.Alpha,
			BeamWidth: dc.BeamWidth,
		},
	}
}

// Load builds a Config. Priority: CLI overrides > environment variables >
// .env file > YAML file at path > defaults. An empty path skips the file.
func Load(path string, ov Overrides) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: open %q: %w", path, err)
		}
		defer f.Close()
		if err := decodeYAML(f, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}

	envFile := ov.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		_ = godotenv.Load(envFile)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	ov.apply(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over the defaults and validates it.
// Environment variables are not consulted.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := decodeYAML(r, cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeYAML(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode yaml: %w", err)
	}
	return nil
}

func (ov Overrides) apply(cfg *Config) {
	if ov.Corpus != "" {
		cfg.Corpus = ov.Corpus
	}
	if ov.Vocabulary != "" {
		cfg.Vocabulary = ov.Vocabulary
	}
	if ov.LogLevel != "" {
		cfg.LogLevel = ov.LogLevel
	}
	if ov.MetricsFile != "" {
		cfg.MetricsFile = ov.MetricsFile
	}
	if ov.Alpha != nil {
		cfg.Decoder.Alpha = *ov.Alpha
	}
	if ov.BeamWidth != nil {
		cfg.Decoder.BeamWidth = *ov.BeamWidth
	}
	if ov.Workers != 0 {
		cfg.Workers = ov.Workers
	}
}

// Validate checks cfg and returns every problem found, joined.
func Validate(cfg *Config) error {
	var errs []error

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: trace, debug, info, warn, error", cfg.LogLevel))
	}
	if _, err := cfg.AlphabetValue(); err != nil {
		errs = append(errs, fmt.Errorf("alphabet: %w", err))
	}
	if err := cfg.DecoderConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers = %d, want >= 0", cfg.Workers))
	}

	return errors.Join(errs...)
}

// AlphabetValue builds the configured alphabet.
func (c *Config) AlphabetValue() (lexicon.Alphabet, error) {
	if utf8.RuneCountInString(c.Alphabet.Placeholder) != 1 {
		return lexicon.Alphabet{}, fmt.Errorf("null placeholder %q must be exactly one character", c.Alphabet.Placeholder)
	}
	null, _ := utf8.DecodeRuneInString(c.Alphabet.Placeholder)
	return lexicon.NewAlphabet(c.Alphabet.Letters, null)
}

// DecoderConfig returns the decoder parameters.
func (c *Config) DecoderConfig() decoder.Config {
	return decoder.Config{
		Alpha:     c.Decoder.Alpha,
		BeamWidth: c.Decoder.BeamWidth,
	}
}

// Logger returns a zerolog logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(level)
}
