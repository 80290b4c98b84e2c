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
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/spatialmodel/covidsim/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testObservations(t *testing.T) *Observations {
	t.Helper()
	obs, err := ReadObservationsFile("testdata/slovakia.yaml")
	require.NoError(t, err)
	return obs
}

func sum(v []int) int {
	var s int
	for _, x := range v {
		s += x
	}
	return s
}

// rampObservations returns a series of the given length with steadily
// increasing testing.
func rampObservations(days int) *Observations {
	obs := &Observations{Tested: make([]int, days), Positive: make([]int, days)}
	for i := range obs.Tested {
		obs.Tested[i] = 50 + 50*i
		obs.Positive[i] = i / 4
	}
	return obs
}

func TestNewSimulator(t *testing.T) {
	obs := &Observations{Tested: []int{5, 7, 9}, Positive: []int{1, 0, 2}}
	sim, err := NewSimulator(2, obs, random.New(1))
	require.NoError(t, err)
	assert.Equal(t, 6, sim.Days())
	assert.Equal(t, []int{0, 0, 0, 1, 1, 3}, sim.CumulativePositive())
	assert.Equal(t, RestrictionDay+3, sim.T0(DefaultExponential))
	assert.Equal(t, PowerLawRestrictionDay+3, sim.T0(DefaultPowerLaw))
}

func TestNewSimulatorMismatch(t *testing.T) {
	obs := &Observations{Tested: []int{5, 7, 9}, Positive: []int{1, 0}}
	_, err := NewSimulator(2, obs, random.New(1))
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("have error %v, want %v", err, ErrLengthMismatch)
	}
}

// With a single unobserved day nobody can be detected, and the first
// day's admissions are the first Poisson draw of the source.
func TestSimulateSingleDay(t *testing.T) {
	const seed = 12
	obs := &Observations{Tested: []int{0}, Positive: []int{0}}
	sim, err := NewSimulator(0, obs, random.New(seed))
	require.NoError(t, err)
	r := sim.Simulate(100, DefaultExponential)

	mu := DefaultExponential.CreateDeltas(sim.T0(DefaultExponential), 1)[0]
	assert.Equal(t, random.New(seed).Poisson(mu), r.Infected[0])
	assert.Len(t, r.Infected, sim.Days()+ExtraDays)
	assert.Equal(t, []int{0, 0}, r.DailyPositive)
	assert.Equal(t, 0.0, r.Error)
}

func TestSimulateNoTesting(t *testing.T) {
	n := 30
	obs := &Observations{Tested: make([]int, n), Positive: make([]int, n)}
	for _, b0 := range []float64{1, 60, 200, 1e6} {
		t.Run(fmt.Sprint(b0), func(t *testing.T) {
			sim, err := NewSimulator(4, obs, random.New(3))
			require.NoError(t, err)
			r := sim.Simulate(b0, DefaultExponential)
			assert.Equal(t, 0, sum(r.DailyPositive))
			assert.Equal(t, 0.0, r.Error)
			assert.Equal(t, sum(r.Infected[:sim.Days()]), r.Latent[sim.Days()-1])
		})
	}
}

func TestSimulateDetectedNotMoreThanInfected(t *testing.T) {
	obs := rampObservations(40)
	for _, g := range []Generator{DefaultExponential, DefaultPowerLaw} {
		for _, b0 := range []float64{1, 60, 100, 200} {
			t.Run(fmt.Sprintf("%T_%g", g, b0), func(t *testing.T) {
				sim, err := NewSimulator(3, obs, random.New(5))
				require.NoError(t, err)
				r := sim.Simulate(b0, g)
				assert.True(t, sum(r.DailyPositive) <= sum(r.Infected[:sim.Days()]))
				assert.True(t, r.Error >= 0)
			})
		}
	}
}

// The undetected roster grows by each day's admissions and shrinks by
// each day's detections.
func TestSimulateRosterBalance(t *testing.T) {
	obs := testObservations(t)
	sim, err := NewSimulator(5, obs, random.New(8))
	require.NoError(t, err)
	r := sim.Simulate(90, DefaultExponential)
	prev := 0
	for d := 0; d < sim.Days(); d++ {
		assert.Equal(t, prev+r.Infected[d]-r.DailyPositive[d], r.Latent[d], "day %d", d)
		assert.True(t, r.Latent[d] >= 0)
		prev = r.Latent[d]
	}
}

// As β₀ grows the threshold approaches zero, so everyone with ongoing
// symptoms is detected on every tested day.
func TestSimulateLargeBeta(t *testing.T) {
	obs := rampObservations(40)
	const prefix = 3
	sim, err := NewSimulator(prefix, obs, random.New(21))
	require.NoError(t, err)
	r := sim.Simulate(1e12, DefaultExponential)
	for d := prefix + 2; d < sim.Days(); d++ {
		assert.Equal(t, r.Infected[d], r.DailyPositive[d], "day %d", d)
		assert.Equal(t, r.Latent[prefix+1], r.Latent[d], "day %d", d)
	}
}

func TestSimulateDeaths(t *testing.T) {
	obs := testObservations(t)
	sim, err := NewSimulator(5, obs, random.New(2))
	require.NoError(t, err)
	r := sim.Simulate(100, DefaultExponential)
	series := r.DeadSeries()
	assert.Equal(t, r.Dead(), sum(series))
	if len(series) > 0 {
		assert.NotEqual(t, 0, series[len(series)-1])
	}
	assert.True(t, r.Dead() <= sum(r.Infected[:sim.Days()]))
}

func TestSimulateSeeded(t *testing.T) {
	obs := testObservations(t)
	run := func(seed uint64, n int) []*SimulationResult {
		sim, err := NewSimulator(5, obs, random.New(seed))
		require.NoError(t, err)
		o := make([]*SimulationResult, n)
		for i := range o {
			o[i] = sim.Simulate(100, DefaultExponential)
		}
		return o
	}
	a, b := run(9, 3), run(9, 3)
	for i := range a {
		assert.Equal(t, a[i].Record(), b[i].Record(), "replicate %d", i)
	}
	if reflect.DeepEqual(a[0].Infected, a[1].Infected) {
		t.Error("consecutive replicates should differ")
	}
}

// Replicates from independently seeded sources converge to the same mean
// error.
func TestSimulateIndependentReplicates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	obs := testObservations(t)
	const n = 200
	moments := func(seed uint64) (mean, variance float64) {
		sim, err := NewSimulator(5, obs, random.New(seed))
		require.NoError(t, err)
		e := make([]float64, n)
		for i := range e {
			e[i] = sim.Simulate(100, DefaultExponential).Error
			mean += e[i]
		}
		mean /= n
		for _, x := range e {
			variance += (x - mean) * (x - mean)
		}
		return mean, variance / (n - 1)
	}
	m1, v1 := moments(31)
	m2, v2 := moments(32)
	assert.InDelta(t, m1, m2, 4*math.Sqrt(v1/n+v2/n))
}

func TestMeanSeries(t *testing.T) {
	results := []*SimulationResult{
		{DailyPositive: []int{1, 2, 3}},
		{DailyPositive: []int{3, 4}},
	}
	have := MeanSeries(results, func(r *SimulationResult) []int { return r.DailyPositive })
	assert.Equal(t, []float64{2, 3, 1.5}, have)
	assert.Empty(t, MeanSeries(nil, func(r *SimulationResult) []int { return r.DailyPositive }))
}
