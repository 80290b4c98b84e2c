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

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/covidsim/epi"
	"github.com/spatialmodel/covidsim/internal/random"
	"gonum.org/v1/gonum/floats"
)

// SimulationResult holds the outcome of one replicate.
type SimulationResult struct {
	// Infected holds the number of new infections drawn for every
	// simulated day, including the unscored extra days.
	Infected []int

	// DailyPositive holds the number of people detected on each scored day.
	DailyPositive []int

	// Latent holds the number of infected, undetected people remaining
	// after each scored day's testing.
	Latent []int

	// DeadCount holds the number of deaths on each day, indexed by day.
	DeadCount *sparse.SparseArray

	// Error is the negated sum of the daily log-distances between the
	// simulated and observed cumulative positives.
	Error float64
}

// Dead returns the total number of deaths.
func (r *SimulationResult) Dead() int {
	return int(r.DeadCount.Sum())
}

// DeadSeries returns the daily number of deaths, ending with the last day
// on which someone died.
func (r *SimulationResult) DeadSeries() []int {
	last := -1
	for _, i := range r.DeadCount.Nonzero() {
		if i > last {
			last = i
		}
	}
	o := make([]int, last+1)
	for i := range o {
		o[i] = int(r.DeadCount.Get(i))
	}
	return o
}

// Simulator runs replicates of the day-by-day infection process against
// one observation series and prefix length. A Simulator owns its random
// source and is not safe for concurrent use.
type Simulator struct {
	// PrefixLength is the number of unobserved days prepended to the
	// observations.
	PrefixLength int

	// tested holds the daily number of tests, padded with
	// PrefixLength+1 leading zeros.
	tested []int

	// cumPositive holds the cumulative number of positive cases,
	// padded like tested.
	cumPositive []int

	src        *random.Source
	population *epi.PopulationModel
}

// NewSimulator prepares a simulator for the given observations and prefix
// length. The simulator draws all of its randomness from src.
func NewSimulator(prefixLength int, obs *Observations, src *random.Source) (*Simulator, error) {
	if prefixLength < 0 {
		return nil, fmt.Errorf("covidsim: prefix length must not be negative but is %d", prefixLength)
	}
	if err := obs.Validate(); err != nil {
		return nil, err
	}
	pad := prefixLength + 1
	s := &Simulator{
		PrefixLength: prefixLength,
		tested:       make([]int, pad, pad+obs.Len()),
		cumPositive:  make([]int, pad, pad+obs.Len()),
		src:          src,
		population:   epi.NewPopulationModel(src),
	}
	s.tested = append(s.tested, obs.Tested...)
	sum := 0
	for _, p := range obs.Positive {
		sum += p
		s.cumPositive = append(s.cumPositive, sum)
	}
	return s, nil
}

// Days returns the number of scored days, including the padding.
func (s *Simulator) Days() int { return len(s.tested) }

// CumulativePositive returns the padded cumulative observed positives.
func (s *Simulator) CumulativePositive() []int { return s.cumPositive }

// T0 returns the simulated day on which generator g's restriction day
// falls.
func (s *Simulator) T0(g Generator) int {
	return g.RestrictionDay() + s.PrefixLength + 1
}

// Simulate runs one replicate with testing parameter beta0 and growth
// curve g.
func (s *Simulator) Simulate(beta0 float64, g Generator) *SimulationResult {
	days := s.Days()
	infected := s.generateInfected(g)
	r := &SimulationResult{
		Infected:      infected,
		DailyPositive: make([]int, days),
		Latent:        make([]int, days),
		DeadCount:     sparse.ZerosSparse(days + SymptomsLength + OnsetSpread + 1),
	}

	var persons []Person
	cumulative := 0
	for day := 0; day < days; day++ {
		for i := 0; i < infected[day]; i++ {
			p := s.newPerson(day)
			if date, ok := p.DateOfDeath(); ok {
				r.DeadCount.AddVal(1, date)
			}
			persons = append(persons, p)
		}

		q := epi.TestingQuantile(s.tested[day])
		threshold := s.population.CalculateThreshold(beta0, q)

		var positive int
		persons, positive = partition(persons, day, threshold)
		r.DailyPositive[day] = positive
		r.Latent[day] = len(persons)

		cumulative += positive
		if cumulative+s.cumPositive[day] > 0 {
			r.Error -= LogDistance(cumulative, s.cumPositive[day])
		}
	}
	return r
}

// generateInfected draws the number of new infections on every simulated
// day from the growth curve's daily means.
func (s *Simulator) generateInfected(g Generator) []int {
	deltas := g.CreateDeltas(s.T0(g), s.Days()+ExtraDays)
	infected := make([]int, len(deltas))
	for i, mean := range deltas {
		infected[i] = s.src.Poisson(mean)
	}
	return infected
}

// newPerson creates a person infected on day.
func (s *Simulator) newPerson(day int) Person {
	decade := s.population.GenerateAgeDecade()
	severity := s.population.GenerateSymptoms(decade)
	course := int(math.Ceil(severity*SymptomsLength + float64(s.src.UniformInt(0, OnsetSpread))))
	return NewPerson(severity, course, day)
}

// partition removes the people detected on day from persons and returns
// the remaining people along with the number detected.
func partition(persons []Person, day int, threshold float64) ([]Person, int) {
	n := 0
	for _, p := range persons {
		if !p.Detected(day, threshold) {
			persons[n] = p
			n++
		}
	}
	return persons[:n], len(persons) - n
}

// MeanSeries returns the element-wise mean of the series that f selects
// from each result. Shorter series are treated as zero-padded.
func MeanSeries(results []*SimulationResult, f func(*SimulationResult) []int) []float64 {
	var n int
	for _, r := range results {
		if l := len(f(r)); l > n {
			n = l
		}
	}
	o := make([]float64, n)
	if len(results) == 0 {
		return o
	}
	v := make([]float64, n)
	for _, r := range results {
		for i := range v {
			v[i] = 0
		}
		for i, x := range f(r) {
			v[i] = float64(x)
		}
		floats.Add(o, v)
	}
	floats.Scale(1/float64(len(results)), o)
	return o
}
