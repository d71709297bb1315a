// Package mersenne implements the MT19937 Mersenne Twister with the reference
// seeding procedures, twist and tempering. Sequences are bit-exact with the
// reference mt19937ar implementation so fixtures pinned to a seed stay valid
// across platforms and independent implementations.
//
// An Engine is not safe for concurrent use. Callers sharing one across
// goroutines must serialise draws, see faker.SeedManager.
package mersenne

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	dcrdrand "github.com/decred/dcrd/crypto/rand"
)

const (
	stateSize  = 624
	shiftSize  = 397
	matrixA    = 0x9908b0df
	upperMask  = 0x80000000
	lowerMask  = 0x7fffffff
	defaultKey = 5489
)

var _ rand.Source = (*Engine)(nil)

// Engine holds one generator state block plus its cursor. The zero Engine
// behaves as if seeded with the reference default 5489.
type Engine struct {
	mt     [stateSize]uint32
	mti    int
	seed   Seed
	seeded bool
}

// New constructs an Engine from seed.
func New(seed Seed) (*Engine, error) {
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{}
	switch seed.kind {
	case SeedKindScalar:
		e.initGenrand(seed.scalar)
	case SeedKindVector:
		e.initByArray(seed.vector)
	}
	e.seed = Seed{kind: seed.kind, scalar: seed.scalar, vector: seed.Vector()}
	e.seeded = true
	return e, nil
}

// NewUnseeded seeds a vector key from system entropy. Output is not
// reproducible unless the caller records Seed() before drawing.
func NewUnseeded() *Engine {
	key := make([]uint32, 4)
	for i := range key {
		key[i] = dcrdrand.Uint32()
	}
	e, _ := New(VectorSeed(key...))
	return e
}

// Seed returns the seed the engine was built from.
func (e *Engine) Seed() Seed {
	e.ensureSeeded()
	return Seed{kind: e.seed.kind, scalar: e.seed.scalar, vector: e.seed.Vector()}
}

func (e *Engine) ensureSeeded() {
	if e.seeded {
		return
	}
	e.initGenrand(defaultKey)
	e.seed = ScalarSeed(defaultKey)
	e.seeded = true
}

func (e *Engine) initGenrand(s uint32) {
	e.mt[0] = s
	for i := 1; i < stateSize; i++ {
		prev := e.mt[i-1]
		e.mt[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	e.mti = stateSize
}

func (e *Engine) initByArray(key []uint32) {
	e.initGenrand(19650218)
	i, j := 1, 0
	k := stateSize
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := e.mt[i-1]
		e.mt[i] = (e.mt[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= stateSize {
			e.mt[0] = e.mt[stateSize-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = stateSize - 1; k > 0; k-- {
		prev := e.mt[i-1]
		e.mt[i] = (e.mt[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= stateSize {
			e.mt[0] = e.mt[stateSize-1]
			i = 1
		}
	}
	// MSB is 1, assuring a non-zero initial array.
	e.mt[0] = 0x80000000
	e.mti = stateSize
}

// twist regenerates the whole block. Indices wrap modulo the state size, which
// matches the three-segment loop of the reference code.
func (e *Engine) twist() {
	for kk := 0; kk < stateSize; kk++ {
		y := (e.mt[kk] & upperMask) | (e.mt[(kk+1)%stateSize] & lowerMask)
		next := e.mt[(kk+shiftSize)%stateSize] ^ (y >> 1)
		if y&1 != 0 {
			next ^= matrixA
		}
		e.mt[kk] = next
	}
	e.mti = 0
}

// Uint32 returns the next tempered output word.
func (e *Engine) Uint32() uint32 {
	e.ensureSeeded()
	if e.mti >= stateSize {
		e.twist()
	}
	y := e.mt[e.mti]
	e.mti++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Uint64 combines two draws, high word first.
func (e *Engine) Uint64() uint64 {
	hi := uint64(e.Uint32())
	lo := uint64(e.Uint32())
	return hi<<32 | lo
}

// Float64 returns a value in [0,1) with 53-bit resolution (genrand_res53).
// It consumes two draws.
func (e *Engine) Float64() float64 {
	a := e.Uint32() >> 5
	b := e.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// Real2 returns a value in [0,1) from a single draw (genrand_real2).
func (e *Engine) Real2() float64 {
	return float64(e.Uint32()) * (1.0 / 4294967296.0)
}

// Read fills p with successive draws, each word little-endian. A trailing
// partial word still consumes a full draw. It never fails.
func (e *Engine) Read(p []byte) (int, error) {
	var buf [4]byte
	n := 0
	for n < len(p) {
		binary.LittleEndian.PutUint32(buf[:], e.Uint32())
		n += copy(p[n:], buf[:])
	}
	return n, nil
}

// Int returns a uniformly distributed integer in [min, max]. Draws falling in
// the biased tail of the output space are rejected and redrawn.
func (e *Engine) Int(min, max int64) (int64, error) {
	if min > max {
		return 0, &RangeError{Min: min, Max: max}
	}
	span := uint64(max) - uint64(min)
	if span == math.MaxUint64 {
		return int64(e.Uint64()), nil
	}
	return int64(uint64(min) + e.uint64n(span+1)), nil
}

func (e *Engine) uint64n(n uint64) uint64 {
	if n <= math.MaxUint32+1 {
		if n == math.MaxUint32+1 {
			return uint64(e.Uint32())
		}
		return uint64(e.uint32n(uint32(n)))
	}
	threshold := -n % n
	for {
		v := e.Uint64()
		if v >= threshold {
			return v % n
		}
	}
}

func (e *Engine) uint32n(n uint32) uint32 {
	threshold := -n % n
	for {
		v := e.Uint32()
		if v >= threshold {
			return v % n
		}
	}
}
