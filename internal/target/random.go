package target

import (
	"hash/fnv"
	"math/rand/v2"
	"sync"
)

// RandSource supplies the pseudo-random values used for simulated metrics.
// Implementations must be safe for concurrent use.
type RandSource interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// lockedRand serializes access to a math/rand/v2 generator.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// NewRandSource returns a concurrency-safe source seeded with seed. The same
// seed always yields the same sequence. A zero seed picks a random one.
func NewRandSource(seed uint64) RandSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Streams hands out one source per target, each derived from a common seed
// and the target name. A target's sequence depends only on the seed and on
// how many draws that target made, never on the order targets run in.
type Streams struct {
	seed uint64

	mu      sync.Mutex
	sources map[ModelTarget]RandSource
}

// NewStreams creates the per-target sources for seed. A zero seed picks a
// random one.
func NewStreams(seed uint64) *Streams {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Streams{seed: seed, sources: make(map[ModelTarget]RandSource)}
}

// For returns the source of t, creating it on first use.
func (s *Streams) For(t ModelTarget) RandSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.sources[t]
	if !ok {
		src = NewRandSource(streamSeed(s.seed, t))
		s.sources[t] = src
	}
	return src
}

// streamSeed mixes the target name into seed (splitmix64 finalizer). It
// never returns zero, which NewRandSource would replace with a random seed.
func streamSeed(seed uint64, t ModelTarget) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(t))
	z := seed ^ h.Sum64()
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		z = 1
	}
	return z
}
