package testutil

import "sync"

// StubRandom replays fixed draws. Float64 cycles through floats and IntN
// returns 0 unless ints are set, in which case it cycles through them modulo n.
// Safe for concurrent use.
type StubRandom struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
	fi, ii int
	draws  int
}

// NewStubRandom creates a StubRandom that returns floats in order, wrapping around.
// With no floats, Float64 always returns 0.
func NewStubRandom(floats ...float64) *StubRandom {
	return &StubRandom{floats: floats}
}

// WithInts sets the values returned by IntN.
func (r *StubRandom) WithInts(ints ...int) *StubRandom {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = ints
	return r
}

func (r *StubRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draws++
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *StubRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 0 {
		panic("invalid argument to IntN")
	}
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	return v % n
}

// Draws returns how many times Float64 has been called.
func (r *StubRandom) Draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draws
}
