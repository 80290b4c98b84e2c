/*
Copyright © 2020 the COVIDSim authors.
This file is part of COVIDSim.

COVIDSim is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

COVIDSim is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with COVIDSim.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package random provides the seeded samplers used by the simulator.
// Every sampler draws from the Source it is called on, so replicates that
// own separate Sources never share random state.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source is a pseudo-random number generator handle. It is not safe for
// concurrent use; each worker should own its own Source.
type Source struct {
	src rand.Source
	rnd *rand.Rand
}

// New returns a Source seeded with seed.
func New(seed uint64) *Source {
	src := rand.NewSource(seed)
	return &Source{src: src, rnd: rand.New(src)}
}

// NewEntropy returns a Source seeded from the operating system's entropy
// pool, falling back to the clock if that is unavailable.
func NewEntropy() *Source {
	return New(EntropySeed())
}

// EntropySeed returns a nondeterministic seed.
func EntropySeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Src returns the underlying source, for gonum distributions that draw
// from it directly.
func (s *Source) Src() rand.Source { return s.src }

// UniformInt returns an integer uniformly distributed on [a, b].
func (s *Source) UniformInt(a, b int) int {
	if b <= a {
		return a
	}
	return a + s.rnd.Intn(b-a+1)
}

// Float64 returns a uniform draw on [0, 1).
func (s *Source) Float64() float64 {
	return s.rnd.Float64()
}

// Gamma returns a draw from Gamma(alpha, 1).
func (s *Source) Gamma(alpha float64) float64 {
	return distuv.Gamma{Alpha: alpha, Beta: 1, Src: s.src}.Rand()
}

// Beta returns a draw from Beta(alpha, beta), computed as X/(X+Y) with
// X ~ Gamma(alpha, 1) and Y ~ Gamma(beta, 1).
func (s *Source) Beta(alpha, beta float64) float64 {
	x := s.Gamma(alpha)
	y := s.Gamma(beta)
	if x+y == 0 {
		return 0
	}
	return x / (x + y)
}

// Poisson returns a draw from Poisson(mu). Means that are not positive
// always yield zero.
func (s *Source) Poisson(mu float64) int {
	if !(mu > 0) {
		return 0
	}
	return int(distuv.Poisson{Lambda: mu, Src: s.src}.Rand())
}

// QBeta returns the q-quantile of Beta(1, beta), 1 - (1-q)^(1/beta).
// q is clamped into [0, 1].
func QBeta(beta, q float64) float64 {
	q = math.Max(0, math.Min(1, q))
	return -math.Expm1(math.Log1p(-q) / beta)
}
