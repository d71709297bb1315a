package faker

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-faker/mersenne"
)

// Config is the environment-facing configuration of a Faker.
type Config struct {
	Locale         string `env:"FAKER_LOCALE"          envDefault:"en"`
	FallbackLocale string `env:"FAKER_FALLBACK_LOCALE" envDefault:"en"`
	Seed           string `env:"FAKER_SEED"`
	StrictLocales  bool   `env:"FAKER_STRICT_LOCALES"`
	Evaluator      string `env:"FAKER_EVALUATOR"       envDefault:"expr"`
}

// ConfigFromEnv reads Config from the process environment.
func ConfigFromEnv() (Config, error) {
	return parseConfig(env.Options{})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("faker: parse env: %w", err)
	}
	return cfg, nil
}

// Options converts cfg into constructor options. An empty Seed leaves the
// engine seeded from system entropy.
func (c Config) Options() ([]Option, error) {
	opts := []Option{
		WithLocale(c.Locale),
		WithFallbackLocale(c.FallbackLocale),
		WithStrictLocales(c.StrictLocales),
	}
	if c.Seed != "" {
		seed, err := mersenne.ParseSeed(c.Seed)
		if err != nil {
			return nil, fmt.Errorf("faker: FAKER_SEED: %w", err)
		}
		opts = append(opts, WithSeed(seed))
	}
	if c.Evaluator != "" && c.Evaluator != EngineExpr {
		opts = append(opts, withEvaluatorName(c.Evaluator))
	}
	return opts, nil
}

// NewFromEnv builds a Faker configured from the environment. opts are applied
// after the environment and override it.
func NewFromEnv(packs map[string]Pack, opts ...Option) (*Faker, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewFromConfig(packs, cfg, opts...)
}

// NewFromConfig builds a Faker from cfg followed by opts.
func NewFromConfig(packs map[string]Pack, cfg Config, opts ...Option) (*Faker, error) {
	base, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return New(packs, append(base, opts...)...)
}

// withEvaluatorName selects a bundled engine by name. WithEvaluator wins over
// it regardless of order.
func withEvaluatorName(name string) Option {
	return func(cfg *config) {
		cfg.evaluatorName = name
	}
}
