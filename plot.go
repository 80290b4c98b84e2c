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
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotSweep plots the mean error of every sweep point against β₀, with
// one line per prefix length.
func PlotSweep(points []*SweepPoint) (*plot.Plot, error) {
	byPrefix := make(map[int]plotter.XYs)
	for _, p := range points {
		byPrefix[p.Params.PrefixLength] = append(byPrefix[p.Params.PrefixLength],
			plotter.XY{X: float64(p.Params.B0), Y: p.Summary.MeanError})
	}
	prefixes := make([]int, 0, len(byPrefix))
	for pl := range byPrefix {
		prefixes = append(prefixes, pl)
	}
	sort.Ints(prefixes)

	p := plot.New()
	p.Title.Text = "Mean error by testing parameter"
	p.X.Label.Text = "β₀"
	p.Y.Label.Text = "Mean error"
	p.Legend.Top = true

	var lines []interface{}
	for _, pl := range prefixes {
		xy := byPrefix[pl]
		sort.Slice(xy, func(i, j int) bool { return xy[i].X < xy[j].X })
		lines = append(lines, fmt.Sprintf("prefix %d", pl), xy)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return nil, fmt.Errorf("covidsim: plotting sweep: %v", err)
	}
	return p, nil
}

// PlotGrowth plots the first n daily means of g with the restriction day
// on simulated day t0.
func PlotGrowth(g Generator, t0, n int) (*plot.Plot, error) {
	deltas := g.CreateDeltas(t0, n)
	xy := make(plotter.XYs, len(deltas))
	for i, d := range deltas {
		xy[i].X = float64(i)
		xy[i].Y = d
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Expected new infections (restriction on day %d)", t0)
	p.X.Label.Text = "Simulated day"
	p.Y.Label.Text = "Expected new infections"
	p.Y.Min = 0
	if err := plotutil.AddLinePoints(p, xy); err != nil {
		return nil, fmt.Errorf("covidsim: plotting growth curve: %v", err)
	}
	return p, nil
}

// SavePlot saves p to filename; the image format is chosen from the
// file extension.
func SavePlot(p *plot.Plot, filename string) error {
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("covidsim: saving plot: %v", err)
	}
	return nil
}
