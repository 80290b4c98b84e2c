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

package covidsimutil

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/covidsim"
	"github.com/spatialmodel/covidsim/internal/random"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Run sweeps the prefix lengths and b0 values specified by c against the
// observations in dataFile. It prints the best b0 for every prefix length
// to w, writes every replicate to outputFile and, if plotFile is not empty,
// plots the mean error of every sweep point to plotFile.
func Run(ctx context.Context, w io.Writer, dataFile, outputFile, plotFile string, c covidsim.SweepConfig, g covidsim.Generator) error {
	if ctx == nil {
		ctx = context.Background()
	}
	obs, err := covidsim.ReadObservationsFile(dataFile)
	if err != nil {
		return err
	}
	log := logrus.WithField("file", dataFile)
	log.WithFields(logrus.Fields{
		"days":        obs.Len(),
		"replicates":  c.Replicates,
		"sweep_width": len(c.Grid()),
	}).Info("covidsim: starting sweep")

	s := covidsim.NewSweep(c, g, obs)
	optima, err := s.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, covidsim.OptimumHeader)
	for _, o := range optima {
		fmt.Fprintln(w, o)
	}

	points := s.Store.Points()
	if err := covidsim.WriteResultsFile(outputFile, points); err != nil {
		return err
	}
	log.WithField("output", outputFile).Info("covidsim: results written")
	if plotFile != "" {
		return plotSweep(points, plotFile)
	}
	return nil
}

// plotSweep plots the mean error of every sweep point to filename.
func plotSweep(points []*covidsim.SweepPoint, filename string) error {
	p, err := covidsim.PlotSweep(points)
	if err != nil {
		return err
	}
	if err := covidsim.SavePlot(p, filename); err != nil {
		return err
	}
	logrus.WithField("plot", filename).Info("covidsim: plot written")
	return nil
}

// Simulate runs the given number of replicates at a single prefix length
// and b0 and prints the mean daily results to w.
func Simulate(w io.Writer, dataFile string, prefixLength int, b0 float64, replicates int, seed uint64, g covidsim.Generator) error {
	if replicates < 1 {
		return fmt.Errorf("covidsim: the number of replicates must be at least 1 but is %d", replicates)
	}
	obs, err := covidsim.ReadObservationsFile(dataFile)
	if err != nil {
		return err
	}
	src := random.NewEntropy()
	if seed != 0 {
		src = random.New(seed)
	}
	sim, err := covidsim.NewSimulator(prefixLength, obs, src)
	if err != nil {
		return err
	}

	results := make([]*covidsim.SimulationResult, replicates)
	errs := make([]float64, replicates)
	dead := make([]float64, replicates)
	for i := range results {
		results[i] = sim.Simulate(b0, g)
		errs[i] = results[i].Error
		dead[i] = float64(results[i].Dead())
	}

	infected := covidsim.MeanSeries(results, func(r *covidsim.SimulationResult) []int { return r.Infected })
	positive := covidsim.MeanSeries(results, func(r *covidsim.SimulationResult) []int { return r.DailyPositive })
	latent := covidsim.MeanSeries(results, func(r *covidsim.SimulationResult) []int { return r.Latent })
	cumulative := make([]float64, len(positive))
	floats.CumSum(cumulative, positive)
	observed := sim.CumulativePositive()

	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "day\tinfected\tdetected\tlatent\tcumulative\tobserved\t")
	for day := 0; day < sim.Days(); day++ {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t\n", day, infected[day],
			positive[day], latent[day], cumulative[day], observed[day])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "mean error: %g\nmean dead: %g\n", stat.Mean(errs, nil), stat.Mean(dead, nil))
	return nil
}

// Growth prints the first days daily means of g for the given prefix
// length to w and, if plotFile is not empty, plots them.
func Growth(w io.Writer, g covidsim.Generator, prefixLength, days int, plotFile string) error {
	if days < 1 {
		return fmt.Errorf("covidsim: the number of days must be at least 1 but is %d", days)
	}
	t0 := g.RestrictionDay() + prefixLength + 1
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "day\tmean\t")
	for day, mean := range g.CreateDeltas(t0, days) {
		fmt.Fprintf(tw, "%d\t%.3f\t\n", day, mean)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if plotFile == "" {
		return nil
	}
	p, err := covidsim.PlotGrowth(g, t0, days)
	if err != nil {
		return err
	}
	return covidsim.SavePlot(p, plotFile)
}
