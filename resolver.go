package faker

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/goliatone/go-faker/pkg/activity"
)

// Resolved is the value returned for one lookup. Locale is the active locale
// at read time; Source is the locale whose pack supplied the value.
type Resolved struct {
	Value    Value
	Category Category
	Property string
	Locale   string
	Source   string
	Fallback bool
}

// localeSelection is swapped wholesale so a lookup always sees a consistent
// (active, fallback) pair.
type localeSelection struct {
	active   string
	fallback string
}

// Resolver answers category/property lookups against the active locale,
// falling back to the fallback locale on absence. Lookups are never cached:
// every call reads the packs against the selection current at that moment.
// A Resolver is safe for concurrent use.
type Resolver struct {
	packs     map[string]Pack
	selection atomic.Pointer[localeSelection]
	strict    bool
	logger    ResolveLogger
	emitter   *activity.Emitter
}

// NewResolver builds a resolver over packs keyed by locale code. The map is
// copied; pack contents are held by reference and must not be mutated by the
// caller afterwards.
func NewResolver(packs map[string]Pack, opts ...Option) (*Resolver, error) {
	return newResolver(packs, applyOptions(opts))
}

func newResolver(packs map[string]Pack, cfg config) (*Resolver, error) {
	if cfg.locale == "" || cfg.fallbackLocale == "" {
		return nil, ErrLocaleRequired
	}
	copied := make(map[string]Pack, len(packs))
	for code, pack := range packs {
		if code == "" {
			return nil, fmt.Errorf("%w: pack key", ErrLocaleRequired)
		}
		if pack.Code == "" {
			pack.Code = code
		}
		copied[code] = pack
	}
	r := &Resolver{
		packs:   copied,
		strict:  cfg.strictLocales,
		logger:  cfg.resolveLoggerOrNoop(),
		emitter: cfg.emitter(),
	}
	if r.strict {
		if err := r.checkKnown(cfg.locale); err != nil {
			return nil, err
		}
	}
	r.selection.Store(&localeSelection{active: cfg.locale, fallback: cfg.fallbackLocale})
	return r, nil
}

// Locale returns the active locale code.
func (r *Resolver) Locale() string {
	return r.selection.Load().active
}

// FallbackLocale returns the fallback locale code.
func (r *Resolver) FallbackLocale() string {
	return r.selection.Load().fallback
}

// Locales returns the loaded locale codes, sorted.
func (r *Resolver) Locales() []string {
	codes := make([]string, 0, len(r.packs))
	for code := range r.packs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Pack returns the pack loaded for code.
func (r *Resolver) Pack(code string) (Pack, bool) {
	pack, ok := r.packs[code]
	return pack, ok
}

// SetLocale replaces the active locale. Unknown codes are accepted unless
// strict checks are enabled; lookups then fall through to the fallback.
// Values already returned are unaffected.
func (r *Resolver) SetLocale(code string) error {
	if code == "" {
		return ErrLocaleRequired
	}
	if r.strict {
		if err := r.checkKnown(code); err != nil {
			return err
		}
	}
	previous := r.selection.Load()
	r.selection.Store(&localeSelection{active: code, fallback: previous.fallback})
	log.Debugf("locale set to %s (was %s, fallback %s)", code, previous.active, previous.fallback)

	if err := r.emitter.Emit(context.Background(), activity.LocaleSetEvent(activity.LocaleChange{
		Previous: previous.active,
		Current:  code,
		Fallback: previous.fallback,
	})); err != nil {
		log.Warnf("locale activity hooks: %v", err)
	}
	return nil
}

func (r *Resolver) checkKnown(code string) error {
	if _, ok := r.packs[code]; ok {
		return nil
	}
	return &UnknownLocaleError{Locale: code, Known: r.Locales()}
}

// Resolve looks up category/property in the active locale, then in the
// fallback locale. When neither defines it a *MissingDefinitionError naming
// the active locale is returned.
func (r *Resolver) Resolve(category Category, property string) (Resolved, error) {
	resolved, _, err := r.resolve(category, property, false)
	return resolved, err
}

// ResolveWithTrace behaves like Resolve and also reports which locales were
// consulted and what each contributed.
func (r *Resolver) ResolveWithTrace(category Category, property string) (Resolved, Trace, error) {
	return r.resolve(category, property, true)
}

func (r *Resolver) resolve(category Category, property string, traced bool) (Resolved, Trace, error) {
	start := time.Now()
	sel := r.selection.Load()
	trace := Trace{Category: category, Property: property}

	order := []struct {
		code string
		role string
	}{{sel.active, RoleActive}}
	if sel.fallback != sel.active {
		order = append(order, struct {
			code string
			role string
		}{sel.fallback, RoleFallback})
	}

	var (
		resolved Resolved
		found    bool
	)
	for _, candidate := range order {
		pack, loaded := r.packs[candidate.code]
		var (
			value Value
			ok    bool
		)
		if loaded {
			value, ok = pack.Lookup(category, property)
		}
		if traced {
			entry := Provenance{Locale: candidate.code, Role: candidate.role, Loaded: loaded, Found: ok}
			if ok && !found {
				entry.Value = value.Any()
			}
			trace.Layers = append(trace.Layers, entry)
		}
		if ok && !found {
			resolved = Resolved{
				Value:    value,
				Category: category,
				Property: property,
				Locale:   sel.active,
				Source:   candidate.code,
				Fallback: candidate.role == RoleFallback,
			}
			found = true
			if !traced {
				break
			}
		}
	}

	var err error
	if !found {
		err = &MissingDefinitionError{Category: category, Property: property, Locale: sel.active}
	}
	r.logger.LogResolve(ResolveLogEvent{
		Category: category,
		Property: property,
		Locale:   sel.active,
		Source:   resolved.Source,
		Fallback: resolved.Fallback,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return Resolved{}, trace, err
	}
	return resolved, trace, nil
}

// Separator returns the list separator of the active locale, falling back to
// the fallback pack and finally to ", ".
func (r *Resolver) Separator() string {
	sel := r.selection.Load()
	for _, code := range []string{sel.active, sel.fallback} {
		if pack, ok := r.packs[code]; ok && pack.Separator != "" {
			return pack.Separator
		}
	}
	return ", "
}
