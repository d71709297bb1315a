package mersenne

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func mustNew(t *testing.T, seed Seed) *Engine {
	t.Helper()
	e, err := New(seed)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestReferenceVectorsInitByArray(t *testing.T) {
	e := mustNew(t, VectorSeed(0x123, 0x234, 0x345, 0x456))
	want := []uint32{1067595299, 955945823, 477289528, 4107218783, 4228976476}
	for i, expect := range want {
		if got := e.Uint32(); got != expect {
			t.Fatalf("draw %d: want %d got %d", i, expect, got)
		}
	}
}

func TestReferenceVectorsInitGenrand(t *testing.T) {
	cases := []struct {
		name string
		seed uint32
		want []uint32
	}{
		{name: "default key", seed: 5489, want: []uint32{3499211612}},
		{name: "seed 42", seed: 42, want: []uint32{1608637542, 3421126067, 4083286876}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			e := mustNew(t, ScalarSeed(tc.seed))
			for i, expect := range tc.want {
				if got := e.Uint32(); got != expect {
					t.Fatalf("draw %d: want %d got %d", i, expect, got)
				}
			}
		})
	}
}

func TestTenThousandthOutputCrossesTwists(t *testing.T) {
	e := mustNew(t, ScalarSeed(5489))
	var got uint32
	for i := 0; i < 10000; i++ {
		got = e.Uint32()
	}
	if got != 4123659995 {
		t.Fatalf("expected 10000th draw 4123659995, got %d", got)
	}
}

func TestZeroEngineUsesDefaultKey(t *testing.T) {
	var e Engine
	if got := e.Uint32(); got != 3499211612 {
		t.Fatalf("expected default key output, got %d", got)
	}
	if seed := e.Seed(); !seed.Equal(ScalarSeed(5489)) {
		t.Fatalf("expected default seed, got %s", seed)
	}
}

func TestSingleWordVectorDiffersFromScalar(t *testing.T) {
	// init_by_array([42]) is what CPython's random.seed(42) uses.
	vector := mustNew(t, VectorSeed(42))
	if got := vector.Uint32(); got != 2746317213 {
		t.Fatalf("expected 2746317213, got %d", got)
	}
	scalar := mustNew(t, ScalarSeed(42))
	if got := scalar.Uint32(); got == 2746317213 {
		t.Fatalf("scalar and vector seeding must not coincide")
	}
}

func TestFloat64Resolution53(t *testing.T) {
	e := mustNew(t, ScalarSeed(42))
	if got := e.Float64(); got != 0.3745401188473625 {
		t.Fatalf("unexpected first float: %v", got)
	}
	vector := mustNew(t, VectorSeed(42))
	if got := vector.Float64(); got != 0.6394267984578837 {
		t.Fatalf("unexpected first vector float: %v", got)
	}
}

func TestReal2SingleDraw(t *testing.T) {
	e := mustNew(t, VectorSeed(0x123, 0x234, 0x345, 0x456))
	want := float64(1067595299) / 4294967296.0
	if got := e.Real2(); got != want {
		t.Fatalf("want %v got %v", want, got)
	}
	if got := e.Uint32(); got != 955945823 {
		t.Fatalf("Real2 must consume exactly one draw, next was %d", got)
	}
}

func TestDeterminismAcrossEngines(t *testing.T) {
	seeds := []Seed{ScalarSeed(0), ScalarSeed(1), ScalarSeed(math.MaxUint32), VectorSeed(1, 2, 3), VectorSeed(make([]uint32, 700)...)}
	for _, seed := range seeds {
		a := mustNew(t, seed)
		b := mustNew(t, seed)
		for i := 0; i < 2000; i++ {
			if x, y := a.Uint32(), b.Uint32(); x != y {
				t.Fatalf("seed %s diverged at draw %d: %d != %d", seed, i, x, y)
			}
		}
	}
}

func TestIntPinnedSequence(t *testing.T) {
	e := mustNew(t, ScalarSeed(42))
	want := []int64{1, 6, 5, 5, 1, 6, 5, 3, 5, 6}
	for i, expect := range want {
		got, err := e.Int(1, 6)
		if err != nil {
			t.Fatalf("int: %v", err)
		}
		if got != expect {
			t.Fatalf("draw %d: want %d got %d", i, expect, got)
		}
	}
}

func TestIntRangeLaw(t *testing.T) {
	e := mustNew(t, ScalarSeed(7))
	ranges := [][2]int64{
		{0, 0},
		{-3, 3},
		{10, 11},
		{0, math.MaxUint32},
		{-1 << 40, 1 << 40},
		{math.MinInt64, math.MaxInt64},
		{math.MaxInt64 - 2, math.MaxInt64},
		{math.MinInt64, math.MinInt64 + 1},
	}
	for _, r := range ranges {
		for i := 0; i < 500; i++ {
			got, err := e.Int(r[0], r[1])
			if err != nil {
				t.Fatalf("range [%d,%d]: %v", r[0], r[1], err)
			}
			if got < r[0] || got > r[1] {
				t.Fatalf("range [%d,%d]: got %d", r[0], r[1], got)
			}
		}
	}
}

func TestIntCoversSmallRange(t *testing.T) {
	e := mustNew(t, ScalarSeed(99))
	seen := map[int64]int{}
	for i := 0; i < 6000; i++ {
		v, _ := e.Int(1, 6)
		seen[v]++
	}
	for face := int64(1); face <= 6; face++ {
		if seen[face] < 800 {
			t.Fatalf("face %d drawn %d times, distribution looks biased: %v", face, seen[face], seen)
		}
	}
}

func TestIntInvalidRange(t *testing.T) {
	e := mustNew(t, ScalarSeed(1))
	before := mustNew(t, ScalarSeed(1))
	_, err := e.Int(5, 4)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) || rangeErr.Min != 5 || rangeErr.Max != 4 {
		t.Fatalf("expected RangeError with bounds, got %#v", err)
	}
	if e.Uint32() != before.Uint32() {
		t.Fatalf("failed Int must not consume draws")
	}
}

func TestInvalidSeeds(t *testing.T) {
	for _, seed := range []Seed{{}, VectorSeed()} {
		if _, err := New(seed); !errors.Is(err, ErrInvalidSeed) {
			t.Fatalf("expected ErrInvalidSeed for %s, got %v", seed, err)
		}
	}
}

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed(" 42 ")
	if err != nil {
		t.Fatalf("parse scalar: %v", err)
	}
	if v, ok := seed.Scalar(); !ok || v != 42 {
		t.Fatalf("expected scalar 42, got %s", seed)
	}
	seed, err = ParseSeed("1, 2,3")
	if err != nil {
		t.Fatalf("parse vector: %v", err)
	}
	if seed.Kind() != SeedKindVector || seed.String() != "1,2,3" {
		t.Fatalf("unexpected vector seed %s", seed)
	}
	for _, bad := range []string{"", "x", "1,,2", "4294967296", "-1"} {
		if _, err := ParseSeed(bad); !errors.Is(err, ErrInvalidSeed) {
			t.Fatalf("expected ErrInvalidSeed for %q, got %v", bad, err)
		}
	}
}

func TestVectorSeedIsCopied(t *testing.T) {
	key := []uint32{1, 2, 3}
	seed := VectorSeed(key...)
	key[0] = 99
	if got := seed.Vector(); got[0] != 1 {
		t.Fatalf("seed must not alias caller key, got %v", got)
	}
	out := seed.Vector()
	out[1] = 99
	if seed.Vector()[1] != 2 {
		t.Fatalf("Vector must return a copy")
	}
}

func TestReadFillsLittleEndianWords(t *testing.T) {
	e := mustNew(t, VectorSeed(0x123, 0x234, 0x345, 0x456))
	buf := make([]byte, 6)
	n, err := e.Read(buf)
	if err != nil || n != 6 {
		t.Fatalf("read: n=%d err=%v", n, err)
	}
	first := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	if first != 1067595299 {
		t.Fatalf("expected first word 1067595299, got %d", first)
	}
	if got := e.Uint32(); got != 477289528 {
		t.Fatalf("partial word must consume a full draw, next was %d", got)
	}
}

func TestEngineAsRandSource(t *testing.T) {
	a := rand.New(mustNew(t, ScalarSeed(3)))
	b := rand.New(mustNew(t, ScalarSeed(3)))
	for i := 0; i < 100; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("rand.Rand over equal seeds diverged at %d", i)
		}
	}
}

func TestUnseededEngineRecordsSeed(t *testing.T) {
	e := NewUnseeded()
	seed := e.Seed()
	if seed.Kind() != SeedKindVector || len(seed.Vector()) != 4 {
		t.Fatalf("expected 4-word vector seed, got %s", seed)
	}
	replay := mustNew(t, seed)
	if e.Uint32() != replay.Uint32() {
		t.Fatalf("recorded seed must replay the unseeded stream")
	}
}
