// SPDX-License-Identifier: MIT
// Package: stochgrid/dataset
//
// synthetic.go - reproducible GBM price histories for tests, benchmarks and
// the CLI.

package dataset

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// Quote selects which price of a simulated period a Synthetic source emits.
type Quote int

const (
	// Close is the last price of the period (default).
	Close Quote = iota
	// Open is the first price of the period.
	Open
	// High is the running maximum within the period.
	High
	// Low is the running minimum within the period.
	Low
)

// Defaults for Synthetic.
const (
	DefaultStart      = 100.0  // initial price S0 (>0)
	DefaultDrift      = 0.0005 // drift μ per period
	DefaultVolatility = 0.02   // volatility σ per period (≥0)
	DefaultSubSteps   = 8      // simulation steps per period
)

// Synthetic is a deterministic geometric-Brownian price history:
//
//	S_{k+1} = S_k · exp((μ − σ²/2)Δ + σ√Δ·Z),  Z ~ N(0,1),  Δ = 1/SubSteps
//
// Zero-valued Start, Volatility and SubSteps take the defaults above. Drift is
// a pointer so that an explicit zero drift can be requested; nil means
// DefaultDrift. Flat forces σ = 0 and ignores Volatility.
type Synthetic struct {
	Length     int
	Seed       int64
	Start      float64
	Drift      *float64 // nil: DefaultDrift
	Volatility float64
	SubSteps   int
	Flat       bool     // σ = 0: a pure drift path
	Quote      Quote
}

// Rows simulates the path; the same Seed always yields the same rows.
func (s Synthetic) Rows(ctx context.Context) ([]Row, error) {
	if s.Length < 0 {
		return nil, fmt.Errorf("%s: length=%d: %w", MethodSynthetic, s.Length, ErrSourceFormat)
	}
	p := s.resolve()
	if p.Start <= 0 || p.Volatility < 0 {
		return nil, fmt.Errorf("%s: start=%v volatility=%v: %w", MethodSynthetic, p.Start, p.Volatility, ErrSourceFormat)
	}

	rng := rand.New(rand.NewSource(p.Seed))
	dt := 1.0 / float64(p.SubSteps)
	drift := DefaultDrift
	if p.Drift != nil {
		drift = *p.Drift
	}
	driftTerm := drift - 0.5*p.Volatility*p.Volatility
	noiseScale := p.Volatility * math.Sqrt(dt)

	out := make([]Row, p.Length)
	price := p.Start
	for d := 0; d < p.Length; d++ {
		if d%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		open := price
		hi, lo := open, open
		for k := 0; k < p.SubSteps; k++ {
			price *= math.Exp(driftTerm*dt + noiseScale*rng.NormFloat64())
			hi = math.Max(hi, price)
			lo = math.Min(lo, price)
		}

		var v float64
		switch p.Quote {
		case Open:
			v = open
		case High:
			v = hi
		case Low:
			v = lo
		default:
			v = price
		}
		out[d] = Row{Index: int64(d), Value: v}
	}
	return out, nil
}

func (s Synthetic) resolve() Synthetic {
	p := s
	if p.Start == 0 {
		p.Start = DefaultStart
	}
	if p.SubSteps < 1 {
		p.SubSteps = DefaultSubSteps
	}
	if p.Flat {
		p.Volatility = 0
	} else if p.Volatility == 0 {
		p.Volatility = DefaultVolatility
	}
	return p
}
