package packs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	faker "github.com/goliatone/go-faker"
)

var (
	// ErrCodeRequired indicates an empty locale code.
	ErrCodeRequired = errors.New("packs: locale code is required")
	// ErrInvalidCode indicates a code that cannot name a pack file.
	ErrInvalidCode = errors.New("packs: invalid locale code")
	// ErrNotFound indicates a requested pack that no store provides.
	ErrNotFound = errors.New("packs: pack not found")
)

// Store loads the pack for one locale code. ok is false when the store has no
// pack for code.
type Store interface {
	Load(ctx context.Context, code string) (pack faker.Pack, ok bool, err error)
}

// Lister is implemented by stores able to enumerate their codes.
type Lister interface {
	Codes(ctx context.Context) ([]string, error)
}

// ValidateCode rejects codes that are empty or could escape a pack directory.
func ValidateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrCodeRequired
	}
	if strings.ContainsAny(code, `/\`) || strings.Contains(code, "..") || strings.TrimSpace(code) != code {
		return fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	return nil
}

// LoadAll loads codes from store. With no codes and a store that implements
// Lister, every listed pack is loaded.
func LoadAll(ctx context.Context, store Store, codes ...string) (map[string]faker.Pack, error) {
	if store == nil {
		return nil, fmt.Errorf("packs: store is required")
	}
	if len(codes) == 0 {
		lister, ok := store.(Lister)
		if !ok {
			return nil, fmt.Errorf("packs: no codes given and store cannot list its packs")
		}
		listed, err := lister.Codes(ctx)
		if err != nil {
			return nil, fmt.Errorf("packs: list codes: %w", err)
		}
		codes = listed
	}

	out := make(map[string]faker.Pack, len(codes))
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pack, ok, err := store.Load(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("packs: load %q: %w", code, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, code)
		}
		out[code] = pack
	}
	return out, nil
}

// Chain consults stores in order and returns the first pack found. Codes
// lists the union of listable stores.
type Chain []Store

// Load implements Store.
func (c Chain) Load(ctx context.Context, code string) (faker.Pack, bool, error) {
	for _, store := range c {
		if store == nil {
			continue
		}
		pack, ok, err := store.Load(ctx, code)
		if err != nil {
			return faker.Pack{}, false, err
		}
		if ok {
			return pack, true, nil
		}
	}
	return faker.Pack{}, false, nil
}

// Codes implements Lister over the stores that support it.
func (c Chain) Codes(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	var codes []string
	for _, store := range c {
		lister, ok := store.(Lister)
		if !ok {
			continue
		}
		listed, err := lister.Codes(ctx)
		if err != nil {
			return nil, err
		}
		for _, code := range listed {
			if _, dup := seen[code]; dup {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes, nil
}
