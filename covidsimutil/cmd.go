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

// Package covidsimutil holds the command-line interface and configuration
// handling for COVIDSim.
package covidsimutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/covidsim"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	def := covidsim.DefaultSweepConfig()

	// Options are the configuration options available to COVIDSim.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "verbose",
			usage: `
              verbose turns on debug logging.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "generator",
			usage: `
              generator specifies the growth curve that gives the expected
              number of new infections per day. Valid options are
              "exponential" and "powerlaw".`,
			defaultVal: "exponential",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "gamma1",
			usage: `
              gamma1 is the daily growth factor before the restriction day.`,
			defaultVal: covidsim.Gamma1,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "gamma2",
			usage: `
              gamma2 is the daily growth factor after the restriction day
              for the exponential growth curve.`,
			defaultVal: covidsim.Gamma2,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "exponent",
			usage: `
              exponent is the exponent of the power-law growth curve.`,
			defaultVal: covidsim.PowerLawExponent,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "seed",
			usage: `
              seed seeds the random number generators so that results can
              be reproduced. If seed is 0, the generators are seeded from
              the operating system's entropy pool.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "replicates",
			usage: `
              replicates is the number of independent simulations run for
              every combination of prefix length and b0.`,
			shorthand:  "k",
			defaultVal: def.Replicates,
			flagsets:   []*pflag.FlagSet{Root.Flags(), simulateCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output is the path where the results of every replicate are
              written.`,
			shorthand:  "o",
			defaultVal: "results.yaml",
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "plot",
			usage: `
              plot is the path to an image file to plot to. If it is
              empty, no plot is created.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.Flags(), growthCmd.Flags()},
		},
		{
			name: "b0min",
			usage: `
              b0min is the smallest b0 in the sweep.`,
			defaultVal: def.B0Min,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "b0max",
			usage: `
              b0max is the largest b0 in the sweep.`,
			defaultVal: def.B0Max,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "b0step",
			usage: `
              b0step is the spacing between b0 values in the sweep.`,
			defaultVal: def.B0Step,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "prefixmin",
			usage: `
              prefixmin is the smallest prefix length in the sweep.`,
			defaultVal: def.PrefixMin,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "prefixmax",
			usage: `
              prefixmax is one more than the largest prefix length in the
              sweep.`,
			defaultVal: def.PrefixMax,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "workers",
			usage: `
              workers is the number of prefix lengths swept at the same
              time. If it is 0, the number of processors is used.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{Root.Flags()},
		},
		{
			name: "prefix",
			usage: `
              prefix is the number of unobserved days before the first
              observation.`,
			shorthand:  "p",
			defaultVal: 5,
			flagsets:   []*pflag.FlagSet{simulateCmd.Flags(), growthCmd.Flags()},
		},
		{
			name: "b0",
			usage: `
              b0 is the testing parameter to simulate.`,
			defaultVal: 100,
			flagsets:   []*pflag.FlagSet{simulateCmd.Flags()},
		},
		{
			name: "days",
			usage: `
              days is the number of days of the growth curve to print.`,
			defaultVal: 50,
			flagsets:   []*pflag.FlagSet{growthCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("COVIDSIM")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
			case int:
				set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(simulateCmd)
	Root.AddCommand(growthCmd)
	Root.AddCommand(plotCmd)
	Root.AddCommand(configCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("covidsim: problem reading configuration file: %v", err)
		}
	}
	if Cfg.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	return nil
}

// dataFileArg checks that exactly one data file was supplied.
func dataFileArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("you need to supply a YAML file with data")
	}
	return nil
}

// Root is the main command. It sweeps the prefix length and b0 grid and
// reports the best b0 for every prefix length.
var Root = &cobra.Command{
	Use:   "covidsim data.yaml",
	Short: "Fit an epidemic model to observed tests and positive cases.",
	Long: `covidsim runs a Monte-Carlo simulation of the early phase of an epidemic
and finds the testing parameter b0 that best reproduces the observed daily
numbers of tests and positive cases. data.yaml holds a sequence of records
with 'positive' and 'tested' fields, one per day.

For every prefix length and b0 in the sweep, many replicates are simulated
and scored. The best b0 for each prefix length is printed to standard output
and every replicate is written to the output file.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'COVIDSIM_var' where 'var' is
the name of the variable to be set.`,
	Args:              dataFileArg,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := generator(Cfg)
		if err != nil {
			return err
		}
		sc, err := sweepConfig(Cfg)
		if err != nil {
			return err
		}
		return Run(cmd.Context(), cmd.OutOrStdout(), args[0],
			Cfg.GetString("output"), Cfg.GetString("plot"), sc, g)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of COVIDSim.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "COVIDSim v%s\n", covidsim.Version)
	},
	DisableAutoGenTag: true,
}

// simulateCmd runs the replicates of a single sweep point.
var simulateCmd = &cobra.Command{
	Use:   "simulate data.yaml",
	Short: "Simulate a single prefix length and b0.",
	Long: `simulate runs the replicates for one prefix length and b0 and prints
the mean number of new infections, detections, and undetected infected people
on every day, along with the observed cumulative positive cases.`,
	Args:              dataFileArg,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := generator(Cfg)
		if err != nil {
			return err
		}
		prefix, err := getInt(Cfg, "prefix")
		if err != nil {
			return err
		}
		b0, err := getFloat(Cfg, "b0")
		if err != nil {
			return err
		}
		replicates, err := getInt(Cfg, "replicates")
		if err != nil {
			return err
		}
		seed, err := getSeed(Cfg)
		if err != nil {
			return err
		}
		return Simulate(cmd.OutOrStdout(), args[0], prefix, b0, replicates, seed, g)
	},
}

// growthCmd prints the growth curve.
var growthCmd = &cobra.Command{
	Use:   "growth",
	Short: "Print the expected number of new infections per day.",
	Long: `growth prints the daily means of the configured growth curve for the
given prefix length, and optionally plots them.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := generator(Cfg)
		if err != nil {
			return err
		}
		prefix, err := getInt(Cfg, "prefix")
		if err != nil {
			return err
		}
		days, err := getInt(Cfg, "days")
		if err != nil {
			return err
		}
		return Growth(cmd.OutOrStdout(), g, prefix, days, Cfg.GetString("plot"))
	},
}

// plotCmd plots a results file written by a previous sweep.
var plotCmd = &cobra.Command{
	Use:   "plot results.yaml image.png",
	Short: "Plot the mean error of a previous sweep.",
	Long: `plot reads a results file written by a previous sweep and plots the
mean error against b0 for every prefix length.`,
	Args:              cobra.ExactArgs(2),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := covidsim.ReadResultsFile(args[0])
		if err != nil {
			return err
		}
		return plotSweep(points, args[1])
	},
}

// configCmd prints the configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration.",
	Long: `config prints the current configuration in TOML format. The output
can be saved and used as a configuration file.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeConfig(cmd.OutOrStdout(), Cfg)
	},
}
