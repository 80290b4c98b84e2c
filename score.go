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

import "gonum.org/v1/gonum/stat/distuv"

// LogDistance returns how close a and b are as the log probability that
// two independent Poisson variables sharing the mean (a+b)/2 take the
// values a and b.
func LogDistance(a, b int) float64 {
	m := float64(a+b) / 2
	if m == 0 {
		return 0
	}
	p := distuv.Poisson{Lambda: m}
	return p.LogProb(float64(a)) + p.LogProb(float64(b))
}
