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
	"testing"
)

func TestCurrentSymptoms(t *testing.T) {
	p := NewPerson(0.3, 10, 5)
	var tests = []struct {
		day  int
		want float64
	}{
		{day: 0, want: 0},
		{day: 4, want: 0},
		{day: 5, want: 0.3},
		{day: 10, want: 0.3},
		{day: 14, want: 0.3},
		{day: 15, want: 0},
		{day: 40, want: 0},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.day), func(t *testing.T) {
			if have := p.CurrentSymptoms(test.day); have != test.want {
				t.Errorf("day %d: have %g, want %g", test.day, have, test.want)
			}
		})
	}
}

func TestDateOfDeath(t *testing.T) {
	var tests = []struct {
		severity float64
		course   int
		day      int
		want     int
		fatal    bool
	}{
		{severity: 0.1, course: 5, day: 3},
		{severity: 0.5, course: 20, day: 3},
		{severity: 0.51, course: 20, day: 3, want: 23, fatal: true},
		{severity: 0.99, course: 42, day: 0, want: 42, fatal: true},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.severity), func(t *testing.T) {
			date, fatal := NewPerson(test.severity, test.course, test.day).DateOfDeath()
			if fatal != test.fatal || date != test.want {
				t.Errorf("have (%d, %v), want (%d, %v)", date, fatal, test.want, test.fatal)
			}
		})
	}
}

func TestDetected(t *testing.T) {
	p := NewPerson(0.2, 3, 1)
	if !p.Detected(1, 0.2) {
		t.Error("severity equal to the threshold should be detected")
	}
	if p.Detected(1, 0.21) {
		t.Error("severity below the threshold should not be detected")
	}
	if p.Detected(4, 0.01) {
		t.Error("person should not be detected after symptoms end")
	}
}
