// Package faker generates synthetic data from locale packs using a seedable
// MT19937 engine. Values resolve lazily against the active locale and fall
// back, property by property, to a complete fallback locale.
package faker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-faker/mersenne"
	"github.com/goliatone/go-faker/pkg/activity"
)

// Faker wires an engine, a locale resolver and a definition registry together.
// It is safe for concurrent use.
type Faker struct {
	cfg       config
	seeds     *SeedManager
	resolver  *Resolver
	registry  *Registry
	functions *FunctionRegistry
	emitter   *activity.Emitter

	evalMu    sync.Mutex
	evaluator Evaluator
}

// New builds a Faker over packs keyed by locale code. The fallback pack must
// define every property of the registered schema.
func New(packs map[string]Pack, opts ...Option) (*Faker, error) {
	cfg := applyOptions(opts)
	resolver, err := newResolver(packs, cfg)
	if err != nil {
		return nil, err
	}
	registry, err := NewRegistry(resolver)
	if err != nil {
		return nil, err
	}
	if err := registerSchema(registry, cfg.schema); err != nil {
		return nil, err
	}
	seeds, err := NewSeedManager(cfg.seed)
	if err != nil {
		return nil, err
	}
	f := &Faker{
		cfg:       cfg,
		seeds:     seeds,
		resolver:  resolver,
		registry:  registry,
		emitter:   resolver.emitter,
		evaluator: cfg.evaluator,
	}
	f.functions = f.builtins().Overlay(cfg.functions)
	if f.evaluator == nil && cfg.evaluatorName != "" {
		if f.evaluator, err = EvaluatorByName(cfg.evaluatorName, cfg.programCache, f.functions); err != nil {
			return nil, err
		}
	}
	log.Debugf("faker ready: locale=%s fallback=%s categories=%d", resolver.Locale(), resolver.FallbackLocale(), len(registry.Categories()))
	return f, nil
}

// Seed reseeds the engine. The stream that follows matches a fresh Faker
// created with the same seed.
func (f *Faker) Seed(seed mersenne.Seed) error {
	previous, hadSeed := f.seeds.Seed()
	if err := f.seeds.Reseed(seed); err != nil {
		return err
	}
	reseed := activity.Reseed{Seed: seed.String(), Kind: seed.Kind().String()}
	if hadSeed {
		reseed.Previous = previous.String()
	}
	event := activity.EngineReseedEvent(reseed)
	if err := f.emitter.Emit(context.Background(), event); err != nil {
		log.Warnf("reseed activity hooks: %v", err)
	}
	return nil
}

// CurrentSeed returns the seed in effect when one was supplied.
func (f *Faker) CurrentSeed() (mersenne.Seed, bool) {
	return f.seeds.Seed()
}

// SetLocale switches the active locale for subsequent lookups.
func (f *Faker) SetLocale(code string) error {
	return f.resolver.SetLocale(code)
}

// Locale returns the active locale code.
func (f *Faker) Locale() string {
	return f.resolver.Locale()
}

// FallbackLocale returns the fallback locale code.
func (f *Faker) FallbackLocale() string {
	return f.resolver.FallbackLocale()
}

// Definitions exposes the registry.
func (f *Faker) Definitions() *Registry {
	return f.registry
}

// Resolver exposes the locale resolver.
func (f *Faker) Resolver() *Resolver {
	return f.resolver
}

// SeedManager exposes the engine owner for callers drawing raw numbers.
func (f *Faker) SeedManager() *SeedManager {
	return f.seeds
}

// Resolve reads category/property through the registry. An unregistered
// category reports the full category, property and locale triple.
func (f *Faker) Resolve(category Category, property string) (Resolved, error) {
	accessor, err := f.registry.Category(category)
	if err != nil {
		var missing *MissingDefinitionError
		if errors.As(err, &missing) {
			return Resolved{}, &MissingDefinitionError{Category: category, Property: property, Locale: missing.Locale}
		}
		return Resolved{}, err
	}
	return accessor.Get(property)
}

// Pick resolves a candidate list and returns one entry chosen by the engine.
func (f *Faker) Pick(category Category, property string) (string, error) {
	resolved, err := f.Resolve(category, property)
	if err != nil {
		return "", err
	}
	if !resolved.Value.IsCandidates() {
		return "", fmt.Errorf("%w: %s.%s", ErrNotCandidateList, category, property)
	}
	candidates := resolved.Value.candidates
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %s.%s", ErrNoCandidates, category, property)
	}
	index, err := f.seeds.Int(0, int64(len(candidates)-1))
	if err != nil {
		return "", err
	}
	return candidates[index], nil
}

// Functions returns a copy of the functions exposed to expressions.
func (f *Faker) Functions() *FunctionRegistry {
	return f.functions.Clone()
}
