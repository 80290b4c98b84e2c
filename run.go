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
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/covidsim/internal/random"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// SweepConfig specifies the grid of sweep points.
type SweepConfig struct {
	// PrefixMin and PrefixMax bound the prefix lengths to sweep,
	// [PrefixMin, PrefixMax).
	PrefixMin, PrefixMax int

	// B0Min, B0Max, and B0Step specify the β₀ grid, B0Min to B0Max
	// inclusive.
	B0Min, B0Max, B0Step int

	// Replicates is the number of replicates run at every sweep point.
	Replicates int

	// Workers is the maximum number of prefix lengths swept at the same
	// time. If Workers < 1, GOMAXPROCS is used.
	Workers int

	// Seed seeds the random sources. If Seed is zero, every
	// simulator is seeded from the operating system's entropy pool.
	Seed uint64
}

// DefaultSweepConfig returns the sweep used to fit the Slovak outbreak.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		PrefixMin:  2,
		PrefixMax:  9,
		B0Min:      60,
		B0Max:      200,
		B0Step:     3,
		Replicates: 50,
	}
}

// Validate checks that the configuration describes a non-empty sweep.
func (c SweepConfig) Validate() error {
	if c.PrefixMin < 0 || c.PrefixMax <= c.PrefixMin {
		return fmt.Errorf("covidsim: invalid prefix length range [%d, %d)", c.PrefixMin, c.PrefixMax)
	}
	if c.B0Step <= 0 {
		return fmt.Errorf("covidsim: b0 step must be positive but is %d", c.B0Step)
	}
	if c.B0Min <= 0 || c.B0Max < c.B0Min {
		return fmt.Errorf("covidsim: invalid b0 range [%d, %d]", c.B0Min, c.B0Max)
	}
	if c.Replicates < 1 {
		return fmt.Errorf("covidsim: the number of replicates must be at least 1 but is %d", c.Replicates)
	}
	return nil
}

// Grid returns the β₀ values to sweep.
func (c SweepConfig) Grid() []int {
	var o []int
	for b0 := c.B0Min; b0 <= c.B0Max; b0 += c.B0Step {
		o = append(o, b0)
	}
	return o
}

// source returns a new random source for the simulator of the given
// prefix length.
func (c SweepConfig) source(prefixLength int) *random.Source {
	if c.Seed == 0 {
		return random.NewEntropy()
	}
	return random.New(c.Seed*0x9E3779B97F4A7C15 + uint64(prefixLength))
}

// SweepParams identifies a sweep point. Gamma2 is zero, and omitted from
// results files, for growth curves without a post-restriction growth factor.
type SweepParams struct {
	PrefixLength int     `yaml:"prefix_length"`
	B0           int     `yaml:"b0"`
	Gamma2       float64 `yaml:"gamma2,omitempty"`
}

// PointSummary summarizes the replicates of a sweep point.
type PointSummary struct {
	MeanError float64 `yaml:"mean_error"`
	SDError   float64 `yaml:"sd_error"`
	MeanDead  float64 `yaml:"mean_dead"`
}

// ReplicateRecord is the serialized form of a SimulationResult.
type ReplicateRecord struct {
	Infected      []int   `yaml:"infected"`
	DailyPositive []int   `yaml:"daily_positive"`
	Latent        []int   `yaml:"latent"`
	DeadCount     []int   `yaml:"dead_count"`
	Error         float64 `yaml:"error"`
}

// Record returns the serialized form of r.
func (r *SimulationResult) Record() ReplicateRecord {
	return ReplicateRecord{
		Infected:      r.Infected,
		DailyPositive: r.DailyPositive,
		Latent:        r.Latent,
		DeadCount:     r.DeadSeries(),
		Error:         r.Error,
	}
}

// SweepPoint holds every replicate run at one sweep point.
type SweepPoint struct {
	Params  SweepParams       `yaml:"params"`
	Summary PointSummary      `yaml:"summary"`
	Results []ReplicateRecord `yaml:"results"`
}

// Optimum is the best β₀ found for one prefix length.
type Optimum struct {
	PrefixLength int
	B0           int
	DeadCount    float64
	Error        float64
}

// OptimumHeader is the header of the table of optima.
const OptimumHeader = "prefix_length optimal_b0 dead_count best_error"

func (o Optimum) String() string {
	return fmt.Sprintf("%d %d %g %g", o.PrefixLength, o.B0, o.DeadCount, o.Error)
}

// ResultStore collects sweep points from concurrent workers.
type ResultStore struct {
	mu     sync.Mutex
	points []*SweepPoint
}

// Add appends p to the store. It is safe for concurrent use.
func (s *ResultStore) Add(p *SweepPoint) {
	s.mu.Lock()
	s.points = append(s.points, p)
	s.mu.Unlock()
}

// Points returns the stored sweep points ordered by prefix length and β₀.
func (s *ResultStore) Points() []*SweepPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := make([]*SweepPoint, len(s.points))
	copy(o, s.points)
	sort.Slice(o, func(i, j int) bool {
		if o[i].Params.PrefixLength != o[j].Params.PrefixLength {
			return o[i].Params.PrefixLength < o[j].Params.PrefixLength
		}
		return o[i].Params.B0 < o[j].Params.B0
	})
	return o
}

// Sweep searches the β₀ grid for the value that best reproduces the
// observations at every prefix length.
type Sweep struct {
	Config       SweepConfig
	Generator    Generator
	Observations *Observations

	// Store receives every sweep point. If it is nil, points are
	// discarded.
	Store *ResultStore

	Log logrus.FieldLogger
}

// NewSweep returns a sweep with a new result store that logs to the
// standard logger.
func NewSweep(c SweepConfig, g Generator, obs *Observations) *Sweep {
	return &Sweep{
		Config:       c,
		Generator:    g,
		Observations: obs,
		Store:        new(ResultStore),
		Log:          logrus.StandardLogger(),
	}
}

// Run sweeps every prefix length in parallel and returns the optimum for
// each, ordered by prefix length. If ctx is cancelled, Run returns the
// context's error and partial results are dropped.
func (s *Sweep) Run(ctx context.Context) ([]Optimum, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	if err := s.Observations.Validate(); err != nil {
		return nil, err
	}
	workers := s.Config.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	optima := make([]Optimum, s.Config.PrefixMax-s.Config.PrefixMin)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range optima {
		i := i
		g.Go(func() error {
			o, err := s.runPrefix(ctx, s.Config.PrefixMin+i)
			if err != nil {
				return err
			}
			optima[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return optima, nil
}

// runPrefix sweeps the β₀ grid for one prefix length.
func (s *Sweep) runPrefix(ctx context.Context, prefixLength int) (Optimum, error) {
	sim, err := NewSimulator(prefixLength, s.Observations, s.Config.source(prefixLength))
	if err != nil {
		return Optimum{}, err
	}
	best := Optimum{PrefixLength: prefixLength, B0: -1}
	for _, b0 := range s.Config.Grid() {
		if err := ctx.Err(); err != nil {
			return Optimum{}, err
		}
		p := s.runPoint(sim, b0)
		if s.Store != nil {
			s.Store.Add(p)
		}
		s.Log.WithFields(logrus.Fields{
			"prefix_length": prefixLength,
			"b0":            b0,
			"mean_error":    p.Summary.MeanError,
			"mean_dead":     p.Summary.MeanDead,
		}).Debug("covidsim: finished sweep point")
		if best.B0 < 0 || p.Summary.MeanError < best.Error {
			best.B0 = b0
			best.Error = p.Summary.MeanError
			best.DeadCount = p.Summary.MeanDead
		}
	}
	s.Log.WithFields(logrus.Fields{
		"prefix_length": prefixLength,
		"optimal_b0":    best.B0,
		"best_error":    best.Error,
	}).Info("covidsim: finished prefix length")
	return best, nil
}

// runPoint runs the replicates of one sweep point.
func (s *Sweep) runPoint(sim *Simulator, b0 int) *SweepPoint {
	p := &SweepPoint{
		Params: SweepParams{
			PrefixLength: sim.PrefixLength,
			B0:           b0,
			Gamma2:       gamma2(s.Generator),
		},
		Results: make([]ReplicateRecord, s.Config.Replicates),
	}
	var errStats stats.Stats
	dead := make([]float64, s.Config.Replicates)
	for i := range p.Results {
		r := sim.Simulate(float64(b0), s.Generator)
		errStats.Update(r.Error)
		dead[i] = float64(r.Dead())
		p.Results[i] = r.Record()
	}
	p.Summary.MeanError = errStats.Mean()
	if errStats.Count() > 1 {
		p.Summary.SDError = errStats.SampleStandardDeviation()
	}
	p.Summary.MeanDead = stat.Mean(dead, nil)
	return p
}
