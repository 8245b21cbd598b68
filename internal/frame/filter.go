package frame

import (
	"math"
	"time"
)

const (
	// SecondsPerYear is the Julian year used to bucket timestamps into years.
	SecondsPerYear = 31_557_600
	// MinAcceptance is the lowest probability the age filter assigns to a file.
	MinAcceptance = 0.01
)

// AgeFilter makes older files progressively less likely to be accepted.
// Each whole (approximate) year of age halves the acceptance probability,
// down to MinAcceptance.
type AgeFilter struct {
	clock  Clock
	random Random
}

// NewAgeFilter creates an AgeFilter reading the time from clock and drawing from random.
func NewAgeFilter(clock Clock, random Random) *AgeFilter {
	return &AgeFilter{clock: clock, random: random}
}

// epochYear converts a timestamp to whole Julian years since 1970.
// ok is false for timestamps before the epoch.
func epochYear(t time.Time) (year int64, ok bool) {
	secs := t.Unix()
	if secs < 0 {
		return 0, false
	}
	return secs / SecondsPerYear, true
}

// Acceptance returns the probability that a file of the given age is kept.
// Negative ages give values above 1.
func Acceptance(ageYears int64) float64 {
	return math.Max(MinAcceptance, math.Pow(0.5, float64(ageYears)))
}

// Accept makes the random keep-or-drop decision for a file modified at modTime.
// Files dated before the epoch are always kept. A clock reading before the
// epoch rejects the file.
func (f *AgeFilter) Accept(modTime time.Time) bool {
	modYear, ok := epochYear(modTime)
	if !ok {
		return true
	}
	nowYear, ok := epochYear(f.clock.Now())
	if !ok {
		return false
	}

	// Future-dated files have a negative age and always pass.
	r := Acceptance(nowYear - modYear)
	return !(r < f.random.Float64())
}
