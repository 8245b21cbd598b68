package frame

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so the age filter is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Random abstracts the random draws used by the age filter and the playlist
// shuffle so tests can supply fixed sequences.
type Random interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// RealRandom draws from the math/rand/v2 global source.
type RealRandom struct{}

func (RealRandom) Float64() float64 { return rand.Float64() }
func (RealRandom) IntN(n int) int   { return rand.IntN(n) }

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }
