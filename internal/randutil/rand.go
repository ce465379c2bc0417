package randutil

import (
	rand "math/rand/v2"

	"github.com/coder/quartz"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source is the slice of *rand.Rand the game needs. Both the deck shuffle and
// the computer's choice of kind draw from it so that a single seed replays a
// whole session.
type Source interface {
	IntN(n int) int
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the one seed so call sites only ever deal in
// a single number.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ResolveSeed returns seed unchanged unless it is zero, in which case a seed is
// taken from the clock. Zero is the "pick one for me" value on the command line.
func ResolveSeed(seed int64, clock quartz.Clock) int64 {
	if seed != 0 {
		return seed
	}
	if s := clock.Now().UnixNano(); s != 0 {
		return s
	}
	return 1
}

// Child derives an independent generator from parent. Each simulated game gets
// its own child so games can run on separate goroutines.
func Child(parent *rand.Rand) *rand.Rand {
	return New(parent.Int64())
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
