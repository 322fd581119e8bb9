// SPDX-License-Identifier: MIT
// Package: stochgrid/sampling
//
// rng.go - deterministic per-leaf random streams.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe; every leaf task gets its own stream.
//   - Streams depend only on (seed, leaf), never on scheduling order.
package sampling

import "math/rand"

// RandomSeed returns a process-random 64-bit seed for callers that did not
// supply one. Record it (Tree.Seed) to reproduce a run.
func RandomSeed() int64 {
	return rand.Int63()
}

// deriveSeed mixes a parent seed and a stream identifier with the SplitMix64
// finalizer so that neighbouring streams are decorrelated. Every parent seed,
// zero included, yields its own family of streams.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// streamFor returns the independent stream of one leaf. Each call returns a
// fresh *rand.Rand; never share it across goroutines.
func streamFor(seed int64, leaf int) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(seed, uint64(leaf))))
}
