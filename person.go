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

import "github.com/spatialmodel/covidsim/epi"

// Person is an infected person. It is a value: every attribute is fixed
// when the person is infected.
type Person struct {
	// Severity is the peak of the person's symptoms, in [0, 1].
	Severity float64

	// CourseDays is the number of days the symptoms last.
	CourseDays int

	// InfectionDay is the simulation day of infection.
	InfectionDay int
}

// NewPerson returns a person infected on infectionDay.
func NewPerson(severity float64, courseDays, infectionDay int) Person {
	return Person{Severity: severity, CourseDays: courseDays, InfectionDay: infectionDay}
}

// CurrentSymptoms returns the severity of the person's symptoms on day.
// Symptoms are at their peak from the day of infection until the course
// ends and zero otherwise.
func (p Person) CurrentSymptoms(day int) float64 {
	if day < p.InfectionDay || day >= p.InfectionDay+p.CourseDays {
		return 0
	}
	return p.Severity
}

// DateOfDeath returns the day the person dies and true, or false if the
// infection is not fatal.
func (p Person) DateOfDeath() (int, bool) {
	if !epi.IsFatal(p.Severity) {
		return 0, false
	}
	return p.InfectionDay + p.CourseDays, true
}

// Detected reports whether testing with the given severity threshold
// catches the person on day.
func (p Person) Detected(day int, threshold float64) bool {
	return p.CurrentSymptoms(day) >= threshold
}
