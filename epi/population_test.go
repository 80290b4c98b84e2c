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

package epi

import (
	"fmt"
	"testing"

	"github.com/spatialmodel/covidsim/internal/random"
	"github.com/stretchr/testify/assert"
)

func TestGenerateSymptoms(t *testing.T) {
	const iterations = 1 << 16
	m := NewPopulationModel(random.New(1))
	for _, decade := range []int{1, 5, 8} {
		t.Run(fmt.Sprint(decade), func(t *testing.T) {
			var fatal int
			for i := 0; i < iterations; i++ {
				if IsFatal(m.GenerateSymptoms(decade)) {
					fatal++
				}
			}
			assert.InDelta(t, DeathProbabilities[decade], float64(fatal)/iterations, 0.02)
		})
	}
}

func TestCalculateThreshold(t *testing.T) {
	const (
		iterations = 1 << 20
		beta       = 80.
	)
	q := 1 - 5450/PopulationSize // 99.9th percentile of the population
	m := NewPopulationModel(random.New(2))
	threshold := m.CalculateThreshold(beta, q)

	src := random.New(3)
	var below int
	for i := 0; i < iterations; i++ {
		if src.Beta(1, beta) < threshold {
			below++
		}
	}
	assert.InDelta(t, q, float64(below)/iterations, 0.001)
}

func TestGenerateAgeDecade(t *testing.T) {
	const iterations = 1 << 22
	m := NewPopulationModel(random.New(4))
	occurrences := make([]float64, DecadesCount)
	for i := 0; i < iterations; i++ {
		occurrences[m.GenerateAgeDecade()]++
	}
	for i, o := range occurrences {
		assert.InDelta(t, PopulationAge[i], o/iterations, 0.001, "decade %d", i)
	}
}

func TestGenerateAgeDecadeSeeded(t *testing.T) {
	a := NewPopulationModel(random.New(9))
	b := NewPopulationModel(random.New(9))
	for i := 0; i < 1000; i++ {
		da, db := a.GenerateAgeDecade(), b.GenerateAgeDecade()
		if da != db {
			t.Fatalf("draw %d: %d != %d", i, da, db)
		}
		if da < 0 || da >= DecadesCount {
			t.Fatalf("draw %d: decade %d out of range", i, da)
		}
	}
}

func TestSeverityShapes(t *testing.T) {
	for i, b := range SeverityShapes {
		if b <= 0 {
			t.Errorf("decade %d: shape %g should be positive", i, b)
		}
		if i > 0 && b >= SeverityShapes[i-1] {
			t.Errorf("decade %d: shape %g should be below %g", i, b, SeverityShapes[i-1])
		}
	}
}

func TestTestingQuantile(t *testing.T) {
	var tests = []struct {
		tested int
		want   float64
	}{
		{tested: 0, want: 1},
		{tested: 5450, want: 0.999},
		{tested: 10000000, want: 0},
		{tested: -10, want: 1},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.tested), func(t *testing.T) {
			assert.InDelta(t, test.want, TestingQuantile(test.tested), 1e-12)
		})
	}
}
