// Package properrandom hands out uniformly distributed random numbers from a
// generator that is freshly seeded from the operating system on every call,
// so that consecutive runs of a program never repeat each other's choices.
package properrandom

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// Intn returns a uniform random number in [0,n). It panics if n <= 0.
func Intn(n int) int {
	return New().Intn(n)
}

// New returns a math/rand generator seeded from crypto/rand. If the system
// entropy source fails, the current time is used instead.
func New() *rand.Rand {
	var b [8]byte
	seed := time.Now().UnixNano()
	if _, err := crand.Read(b[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	return rand.New(rand.NewSource(seed))
}
