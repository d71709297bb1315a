package faker

import (
	"sync"

	"github.com/goliatone/go-faker/mersenne"
)

// SeedManager owns the engine used for every draw. Reseeding replaces the
// engine wholesale, so the stream after Reseed(s) matches a fresh engine
// seeded with s regardless of prior draws. Draws are serialised.
type SeedManager struct {
	mu     sync.Mutex
	engine *mersenne.Engine
	seed   mersenne.Seed
	seeded bool
}

// NewSeedManager builds a manager seeded with seed, or from system entropy
// when seed is nil.
func NewSeedManager(seed *mersenne.Seed) (*SeedManager, error) {
	m := &SeedManager{}
	if seed == nil {
		m.engine = mersenne.NewUnseeded()
		return m, nil
	}
	if err := m.Reseed(*seed); err != nil {
		return nil, err
	}
	return m, nil
}

// Reseed discards the current engine and starts a fresh stream from seed. An
// invalid seed leaves the current engine in place.
func (m *SeedManager) Reseed(seed mersenne.Seed) error {
	engine, err := mersenne.New(seed)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.engine = engine
	m.seed = seed
	m.seeded = true
	m.mu.Unlock()
	log.Debugf("engine reseeded with %s", seed)
	return nil
}

// Seed returns the seed last passed to Reseed.
func (m *SeedManager) Seed() (mersenne.Seed, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seed, m.seeded
}

// Uint32 draws one tempered word.
func (m *SeedManager) Uint32() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Uint32()
}

// Uint64 draws two words.
func (m *SeedManager) Uint64() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Uint64()
}

// Float64 draws a 53-bit float in [0,1).
func (m *SeedManager) Float64() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Float64()
}

// Int draws uniformly from [min,max].
func (m *SeedManager) Int(min, max int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Int(min, max)
}

// Read fills p from the engine stream.
func (m *SeedManager) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Read(p)
}

// shuffle runs a Fisher-Yates pass over n elements under a single lock.
func (m *SeedManager) shuffle(n int, swap func(i, j int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := n - 1; i > 0; i-- {
		j, _ := m.engine.Int(0, int64(i))
		swap(i, int(j))
	}
}
