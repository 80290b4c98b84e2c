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

package covidsim

import (
	"fmt"
	"math"
	"strings"
)

// Generator is a deterministic growth curve that gives the expected number
// of new infections on each simulated day.
type Generator interface {
	// CreateDeltas returns the expected new infections on days 0 to n-1
	// when the restriction day falls on simulated day t0.
	CreateDeltas(t0, n int) []float64

	// RestrictionDay returns the restriction day relative to the first
	// observed day.
	RestrictionDay() int
}

// Exponential is a two-phase exponential growth curve. Infections grow by
// a factor of Gamma1 per day up to the restriction day and by Gamma2 per
// day afterwards.
type Exponential struct {
	Gamma1, Gamma2 float64
}

// CreateDeltas implements Generator.
func (e Exponential) CreateDeltas(t0, n int) []float64 {
	o := make([]float64, n)
	for k := range o {
		if k <= t0 {
			o[k] = math.Pow(e.Gamma1, float64(k))
		} else {
			o[k] = math.Pow(e.Gamma1, float64(t0)) * math.Pow(e.Gamma2, float64(k-t0))
		}
	}
	return o
}

// RestrictionDay implements Generator.
func (e Exponential) RestrictionDay() int { return RestrictionDay }

// PowerLaw grows exponentially by a factor of Gamma1 per day up to the
// restriction day and as a power law with the given Exponent afterwards.
type PowerLaw struct {
	Gamma1, Exponent float64
}

// CreateDeltas implements Generator.
func (p PowerLaw) CreateDeltas(t0, n int) []float64 {
	o := make([]float64, n)
	for k := range o {
		if k <= t0 {
			o[k] = math.Pow(p.Gamma1, float64(k))
		} else {
			o[k] = math.Pow(p.Gamma1, float64(t0)) * math.Pow(float64(k-t0+1), p.Exponent)
		}
	}
	return o
}

// RestrictionDay implements Generator.
func (p PowerLaw) RestrictionDay() int { return PowerLawRestrictionDay }

// DefaultExponential is the exponential growth curve fit to the Slovak
// outbreak.
var DefaultExponential = Exponential{Gamma1: Gamma1, Gamma2: Gamma2}

// DefaultPowerLaw is the power-law growth curve fit to the Slovak outbreak.
var DefaultPowerLaw = PowerLaw{Gamma1: Gamma1, Exponent: PowerLawExponent}

// NewGenerator returns the growth curve with the given name, which must be
// "exponential" or "powerlaw".
func NewGenerator(name string, gamma1, gamma2, exponent float64) (Generator, error) {
	if gamma1 <= 1 {
		return nil, fmt.Errorf("covidsim: gamma1 must be greater than 1 but is %g", gamma1)
	}
	switch strings.ToLower(name) {
	case "exponential":
		if gamma2 <= 1 {
			return nil, fmt.Errorf("covidsim: gamma2 must be greater than 1 but is %g", gamma2)
		}
		return Exponential{Gamma1: gamma1, Gamma2: gamma2}, nil
	case "powerlaw", "power-law":
		if exponent <= 0 {
			return nil, fmt.Errorf("covidsim: power-law exponent must be positive but is %g", exponent)
		}
		return PowerLaw{Gamma1: gamma1, Exponent: exponent}, nil
	default:
		return nil, fmt.Errorf("covidsim: invalid growth curve %q; valid options are 'exponential' and 'powerlaw'", name)
	}
}

// gamma2 returns the post-restriction growth factor of g, or zero if g
// does not grow exponentially after the restriction day.
func gamma2(g Generator) float64 {
	if e, ok := g.(Exponential); ok {
		return e.Gamma2
	}
	return 0
}
