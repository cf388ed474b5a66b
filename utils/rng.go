package utils

import (
	"math/rand/v2"
	"time"
)

// NewRNG returns a PCG-backed source seeded with seed. A zero seed picks one
// from the wall clock so every run differs.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// DeriveSeed returns the seed for the i-th independent simulation of a batch.
func DeriveSeed(seed int64, i int) int64 {
	if seed == 0 {
		return 0
	}
	return seed + int64(i)*0x9e3779b9
}
