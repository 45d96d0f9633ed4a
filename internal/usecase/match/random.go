package match

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomSource supplies the jitter and shuffle randomness of a match request.
// Production uses a time-seeded source; tests inject a fixed seed.
type RandomSource interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
	// Shuffle permutes n elements through swap.
	Shuffle(n int, swap func(i, j int))
}

type lockedRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSource returns a time-seeded source safe for concurrent requests.
func NewRandomSource() RandomSource {
	seed := uint64(time.Now().UnixNano())
	return NewSeededRandom(seed)
}

// NewSeededRandom returns a reproducible source.
func NewSeededRandom(seed uint64) RandomSource {
	return &lockedRandom{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *lockedRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.IntN(n)
}

func (r *lockedRandom) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rnd.Shuffle(n, swap)
}
