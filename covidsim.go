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

// Package covidsim is a Monte-Carlo epidemic simulator for fitting the
// testing-intensity parameter β₀ to observed daily counts of tests and
// positive cases in the early phase of an outbreak.
//
// Each replicate draws daily infections from a deterministic growth curve,
// gives every infected person a latent symptom severity, and detects the
// people whose severity reaches the day's testing threshold. The cumulative
// number of detections is scored against the observed cumulative positives.
package covidsim

// Version gives the version number.
const Version = "1.0.0"

const (
	// ExtraDays is the number of days simulated past the observed horizon
	// to seed late infections. They are never scored.
	ExtraDays = 10

	// RestrictionDay is the 0-indexed day (12 March 2020) on which movement
	// restrictions slowed the exponential growth.
	RestrictionDay = 11

	// PowerLawRestrictionDay is the restriction day used with the
	// power-law growth curve.
	PowerLawRestrictionDay = 10

	// Gamma1 and Gamma2 are the daily growth factors before and after the
	// restriction day.
	Gamma1 = 1.25
	Gamma2 = 1.04

	// PowerLawExponent is the exponent of the power-law growth curve.
	PowerLawExponent = 1.30

	// SymptomsLength scales a person's severity into the number of days
	// their symptoms last.
	SymptomsLength = 28

	// OnsetSpread is the largest number of days randomly added to a
	// person's symptom course.
	OnsetSpread = 14
)
