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

// Package epi holds the population model used to turn an infection into a
// latent symptom severity and, possibly, a death.
package epi

import (
	"math"

	"github.com/spatialmodel/covidsim/internal/random"
	"gonum.org/v1/gonum/stat/distuv"
)

// PopulationSize is the number of people in the modelled population
// (Slovakia, 2020).
const PopulationSize = 5450000.0

// DecadesCount is the number of age groups. The last group holds everyone
// aged 80 and above.
const DecadesCount = 9

// FatalSeverity is the severity above which an infection is fatal.
const FatalSeverity = 0.5

// PopulationAge is the fraction of the population in each age decade.
var PopulationAge = [DecadesCount]float64{
	0.1075, // 0-9
	0.0993, // 10-19
	0.1225, // 20-29
	0.1522, // 30-39
	0.1470, // 40-49
	0.1276, // 50-59
	0.1305, // 60-69
	0.0790, // 70-79
	0.0344, // 80+
}

// DeathProbabilities is the infection fatality ratio of each age decade.
var DeathProbabilities = [DecadesCount]float64{
	0.00002,
	0.00006,
	0.0003,
	0.0008,
	0.0015,
	0.006,
	0.022,
	0.051,
	0.093,
}

// SeverityShapes holds the second shape parameter b of the Beta(1, b)
// severity distribution of each age decade. For Beta(1, b),
// P[X > x] = (1-x)^b, so b = ln(p)/ln(1-FatalSeverity) makes the
// probability of a fatal severity equal to the decade's death probability.
var SeverityShapes [DecadesCount]float64

func init() {
	for i, p := range DeathProbabilities {
		SeverityShapes[i] = math.Log(p) / math.Log(1-FatalSeverity)
	}
}

// PopulationModel samples the attributes of newly infected people.
type PopulationModel struct {
	src  *random.Source
	ages distuv.Categorical
}

// NewPopulationModel returns a population model drawing from src.
func NewPopulationModel(src *random.Source) *PopulationModel {
	return &PopulationModel{
		src:  src,
		ages: distuv.NewCategorical(PopulationAge[:], src.Src()),
	}
}

// GenerateAgeDecade returns age decade i with probability PopulationAge[i].
func (m *PopulationModel) GenerateAgeDecade() int {
	return int(m.ages.Rand())
}

// GenerateSymptoms returns a severity drawn from Beta(1, SeverityShapes[decade]).
func (m *PopulationModel) GenerateSymptoms(decade int) float64 {
	return m.src.Beta(1, SeverityShapes[decade])
}

// CalculateThreshold returns the q-quantile of Beta(1, beta): the severity
// a person needs to be caught by testing that reaches the top 1-q of the
// population.
func (m *PopulationModel) CalculateThreshold(beta, q float64) float64 {
	return random.QBeta(beta, q)
}

// TestingQuantile returns the quantile 1 - tested/PopulationSize, clamped
// into [0, 1].
func TestingQuantile(tested int) float64 {
	q := 1 - float64(tested)/PopulationSize
	return math.Max(0, math.Min(1, q))
}

// IsFatal reports whether severity leads to death.
func IsFatal(severity float64) bool { return severity > FatalSeverity }
