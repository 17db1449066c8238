// Package workload defines the two benchmark workloads: fastSum8, whose
// cost is dominated by call overhead, and slowCompute, whose cost is
// dominated by a fixed number of 64-bit mixing rounds.
package workload

import (
	"fmt"

	"github.com/weiihann/callbench/harness"
)

// Default batch sizes.
const (
	FastIters    = 1_000_000
	SlowIters    = 100
	ComputeIters = 1_000_000
)

const (
	mixMul1 = 0xff51afd7ed558ccd
	mixMul2 = 0xc4ceb9fe1a85ec53
)

// FastSum8 returns a+b+...+h modulo 2^64.
//
//go:noinline
func FastSum8(a, b, c, d, e, f, g, h uint64) uint64 {
	return a + b + c + d + e + f + g + h
}

// SlowCompute applies iterations rounds of the 64-bit finalizer mix to
// seed. Zero or negative iterations return seed unchanged.
//
//go:noinline
func SlowCompute(seed uint64, iterations int) uint64 {
	h := seed
	for i := 0; i < iterations; i++ {
		h ^= h >> 33
		h *= mixMul1
		h ^= h >> 33
		h *= mixMul2
		h ^= h >> 33
	}

	return h
}

// Batches returns the fast and slow batches for cfg. Arguments are
// prepared here so that the timed loop only contains the call.
func Batches(cfg Config) []harness.Batch {
	fast := func() uint64 {
		return FastSum8(1, 2, 3, 4, 5, 6, 7, 8)
	}

	var call uint64

	computeIters := cfg.ComputeIters
	seed := cfg.Seed
	slow := func() uint64 {
		h := SlowCompute(seed+call, computeIters)
		call++

		return h
	}

	return []harness.Batch{
		{
			Name:        "fast_sum8",
			Description: fmt.Sprintf("%d calls", cfg.FastIters),
			Calls:       cfg.FastIters,
			Unit:        harness.Nanoseconds,
			Op:          fast,
		},
		{
			Name: "slow_compute",
			Description: fmt.Sprintf("%d calls, %d iters each",
				cfg.SlowIters, cfg.ComputeIters),
			Calls: cfg.SlowIters,
			Unit:  harness.Milliseconds,
			Op:    slow,
		},
	}
}
