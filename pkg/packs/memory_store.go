package packs

import (
	"context"
	"sort"
	"sync"

	faker "github.com/goliatone/go-faker"
)

// MemoryStore is an in-memory Store intended for tests and examples.
type MemoryStore struct {
	mu    sync.RWMutex
	packs map[string]faker.Pack
}

// NewMemoryStore returns a store holding packs keyed by their Code.
func NewMemoryStore(packs ...faker.Pack) *MemoryStore {
	s := &MemoryStore{packs: map[string]faker.Pack{}}
	for _, pack := range packs {
		_ = s.Put(pack)
	}
	return s
}

// Put stores pack under its Code, replacing any previous pack.
func (s *MemoryStore) Put(pack faker.Pack) error {
	if err := ValidateCode(pack.Code); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.packs == nil {
		s.packs = map[string]faker.Pack{}
	}
	s.packs[pack.Code] = pack
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, code string) (faker.Pack, bool, error) {
	if err := ValidateCode(code); err != nil {
		return faker.Pack{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	pack, ok := s.packs[code]
	return pack, ok, nil
}

// Codes implements Lister.
func (s *MemoryStore) Codes(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	codes := make([]string, 0, len(s.packs))
	for code := range s.packs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}
