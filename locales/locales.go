// Package locales embeds the bundled locale packs. The en pack defines every
// property of the default schema and serves as the fallback.
package locales

import (
	"context"
	"embed"
	"fmt"

	faker "github.com/goliatone/go-faker"
	"github.com/goliatone/go-faker/pkg/packs"
)

const (
	// English is the complete pack used as fallback.
	English = "en"
	// German is a sparse pack that relies on the fallback.
	German = "de"
)

// FS holds the embedded pack documents under data/.
//
//go:embed data/*.yaml
var FS embed.FS

// Store returns a pack store over the embedded documents.
func Store() packs.FSStore {
	return packs.NewFSStore(FS, "data")
}

// Packs decodes every embedded pack keyed by locale code.
func Packs(ctx context.Context) (map[string]faker.Pack, error) {
	return packs.LoadAll(ctx, Store())
}

// New builds a Faker over the embedded packs. The fallback defaults to en;
// options may override both locales.
func New(opts ...faker.Option) (*faker.Faker, error) {
	bundled, err := Packs(context.Background())
	if err != nil {
		return nil, fmt.Errorf("locales: %w", err)
	}
	return faker.New(bundled, append([]faker.Option{faker.WithFallbackLocale(English)}, opts...)...)
}

// NewWithStore builds a Faker from the embedded packs overlaid by store.
// Packs found in store replace the embedded pack of the same code.
func NewWithStore(ctx context.Context, store packs.Store, opts ...faker.Option) (*faker.Faker, error) {
	loaded, err := packs.LoadAll(ctx, packs.Chain{store, Store()})
	if err != nil {
		return nil, fmt.Errorf("locales: %w", err)
	}
	return faker.New(loaded, append([]faker.Option{faker.WithFallbackLocale(English)}, opts...)...)
}

// NewFromEnv builds a Faker over the embedded packs configured from the
// FAKER_* environment variables.
func NewFromEnv(opts ...faker.Option) (*faker.Faker, error) {
	bundled, err := Packs(context.Background())
	if err != nil {
		return nil, fmt.Errorf("locales: %w", err)
	}
	return faker.NewFromEnv(bundled, opts...)
}
