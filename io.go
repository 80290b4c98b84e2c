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
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoObservations is returned when an observation file holds no
	// records.
	ErrNoObservations = errors.New("covidsim: no observations")

	// ErrEmptyRecord is returned when an observation record is missing
	// its positive or tested count.
	ErrEmptyRecord = errors.New("covidsim: empty observation record")

	// ErrLengthMismatch is returned when the positive and tested series
	// differ in length.
	ErrLengthMismatch = errors.New("covidsim: positive and tested series differ in length")
)

// Observations holds the daily number of tests performed and positive
// cases found, in day order.
type Observations struct {
	Tested   []int
	Positive []int
}

// Len returns the number of observed days.
func (o *Observations) Len() int { return len(o.Tested) }

// Validate checks that the series have equal lengths and hold no negative
// counts.
func (o *Observations) Validate() error {
	if len(o.Tested) != len(o.Positive) {
		return fmt.Errorf("%w: %d tested, %d positive", ErrLengthMismatch, len(o.Tested), len(o.Positive))
	}
	for i := range o.Tested {
		if o.Tested[i] < 0 || o.Positive[i] < 0 {
			return fmt.Errorf("covidsim: negative count on day %d", i)
		}
	}
	return nil
}

// observationRecord is one day of an observation file. The pointers
// distinguish a missing count from a zero count.
type observationRecord struct {
	Positive *int `yaml:"positive"`
	Tested   *int `yaml:"tested"`
}

// ReadObservations reads a YAML sequence of {positive, tested} records.
// Any other fields in the records are ignored.
func ReadObservations(r io.Reader) (*Observations, error) {
	var records []*observationRecord
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if err == io.EOF {
			return nil, ErrNoObservations
		}
		return nil, fmt.Errorf("covidsim: reading observations: %v", err)
	}
	if len(records) == 0 {
		return nil, ErrNoObservations
	}
	o := &Observations{
		Tested:   make([]int, len(records)),
		Positive: make([]int, len(records)),
	}
	for i, rec := range records {
		if rec == nil || rec.Positive == nil || rec.Tested == nil {
			return nil, fmt.Errorf("%w: day %d", ErrEmptyRecord, i)
		}
		o.Positive[i] = *rec.Positive
		o.Tested[i] = *rec.Tested
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// ReadObservationsFile reads observations from the named file.
func ReadObservationsFile(filename string) (*Observations, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("covidsim: opening observations: %v", err)
	}
	defer f.Close()
	o, err := ReadObservations(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, filename)
	}
	return o, nil
}

// WriteResults writes the sweep points to w as a YAML sequence, with each
// replicate in flow style.
func WriteResults(w io.Writer, points []*SweepPoint) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, p := range points {
		n := new(yaml.Node)
		if err := n.Encode(p); err != nil {
			return fmt.Errorf("covidsim: encoding results: %v", err)
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value != "results" {
				continue
			}
			for _, r := range n.Content[i+1].Content {
				r.Style = yaml.FlowStyle
			}
		}
		doc.Content = append(doc.Content, n)
	}
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(doc); err != nil {
		return fmt.Errorf("covidsim: writing results: %v", err)
	}
	return e.Close()
}

// WriteResultsFile writes the sweep points to the named file.
func WriteResultsFile(filename string, points []*SweepPoint) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("covidsim: creating results file: %v", err)
	}
	if err := WriteResults(f, points); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadResults reads sweep points written by WriteResults.
func ReadResults(r io.Reader) ([]*SweepPoint, error) {
	var points []*SweepPoint
	if err := yaml.NewDecoder(r).Decode(&points); err != nil && err != io.EOF {
		return nil, fmt.Errorf("covidsim: reading results: %v", err)
	}
	return points, nil
}

// ReadResultsFile reads sweep points from the named file.
func ReadResultsFile(filename string) ([]*SweepPoint, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("covidsim: opening results: %v", err)
	}
	defer f.Close()
	return ReadResults(f)
}
