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
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/spatialmodel/covidsim"
	"github.com/spf13/cast"
)

// getInt returns the integer value of the named option.
func getInt(cfg *viper.Viper, name string) (int, error) {
	v, err := cast.ToIntE(cfg.Get(name))
	if err != nil {
		return 0, fmt.Errorf("covidsim: invalid value for %s: %v", name, err)
	}
	return v, nil
}

// getFloat returns the floating-point value of the named option.
func getFloat(cfg *viper.Viper, name string) (float64, error) {
	v, err := cast.ToFloat64E(cfg.Get(name))
	if err != nil {
		return 0, fmt.Errorf("covidsim: invalid value for %s: %v", name, err)
	}
	return v, nil
}

// getSeed returns the random seed; 0 means seed from entropy.
func getSeed(cfg *viper.Viper) (uint64, error) {
	v, err := cast.ToInt64E(cfg.Get("seed"))
	if err != nil {
		return 0, fmt.Errorf("covidsim: invalid value for seed: %v", err)
	}
	if v < 0 {
		return 0, fmt.Errorf("covidsim: seed must not be negative but is %d", v)
	}
	return uint64(v), nil
}

// generator returns the configured growth curve.
func generator(cfg *viper.Viper) (covidsim.Generator, error) {
	var vals [3]float64
	for i, name := range []string{"gamma1", "gamma2", "exponent"} {
		v, err := getFloat(cfg, name)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return covidsim.NewGenerator(cfg.GetString("generator"), vals[0], vals[1], vals[2])
}

// sweepConfig returns the configured sweep.
func sweepConfig(cfg *viper.Viper) (covidsim.SweepConfig, error) {
	var c covidsim.SweepConfig
	for _, o := range []struct {
		name string
		v    *int
	}{
		{"prefixmin", &c.PrefixMin},
		{"prefixmax", &c.PrefixMax},
		{"b0min", &c.B0Min},
		{"b0max", &c.B0Max},
		{"b0step", &c.B0Step},
		{"replicates", &c.Replicates},
		{"workers", &c.Workers},
	} {
		v, err := getInt(cfg, o.name)
		if err != nil {
			return c, err
		}
		*o.v = v
	}
	seed, err := getSeed(cfg)
	if err != nil {
		return c, err
	}
	c.Seed = seed
	return c, c.Validate()
}

// writeConfig writes the value of every option except the configuration
// file location to w in TOML format.
func writeConfig(w io.Writer, cfg *viper.Viper) error {
	m := make(map[string]interface{})
	for _, o := range options {
		if o.name == "config" {
			continue
		}
		v := cfg.Get(o.name)
		switch o.defaultVal.(type) {
		case int:
			m[o.name] = cast.ToInt(v)
		case float64:
			m[o.name] = cast.ToFloat64(v)
		case bool:
			m[o.name] = cast.ToBool(v)
		default:
			m[o.name] = cast.ToString(v)
		}
	}
	if err := toml.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("covidsim: writing configuration: %v", err)
	}
	return nil
}
