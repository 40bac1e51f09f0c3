/*
Copyright © 2019 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package firestarrutil holds the CLI scaffolding: flag/config wiring via
// cobra and viper, and the zerolog logger setup, following the same
// Cfg-wraps-Viper-plus-named-Commands shape the teacher uses in its own
// inmaputil package.
package firestarrutil

import (
	"os"

	"github.com/lnashier/viper"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds the CLI's configuration and command tree. Flags are bound
// into the embedded Viper so every option is settable by flag, config
// file, or FIRESTARR_-prefixed environment variable.
type Cfg struct {
	*viper.Viper

	Root, surfaceCmd, testCmd *cobra.Command

	Logger zerolog.Logger
}

// NewCfg builds a Cfg with its command tree wired but not yet executed.
// action is called with the parsed Cfg to actually run a simulation
// (kept as a parameter rather than a package-level hook so tests can
// substitute a no-op action).
func NewCfg(action func(cfg *Cfg, mode string, args []string) error) *Cfg {
	cfg := &Cfg{Viper: viper.New()}
	cfg.SetEnvPrefix("FIRESTARR")
	cfg.AutomaticEnv()

	cfg.Root = &cobra.Command{
		Use:   "firestarr <outputDir> <date> <lat> <lon> <time>",
		Short: "Monte-Carlo wildland fire growth simulator.",
		Long: `firestarr simulates the probable growth of a wildland fire from a
point or perimeter ignition, driven by the Canadian Forest Fire Weather
Index System and a pluggable fire behaviour model, until its burn
probability grids converge.`,
		DisableAutoGenTag: true,
		Args:              cobra.MinimumNArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			return action(cfg, "point", args)
		},
	}

	cfg.surfaceCmd = &cobra.Command{
		Use:               "surface <outputDir> <date> <lat> <lon> <time>",
		Short:             "Simulate fire growth from every burnable cell as a start.",
		DisableAutoGenTag: true,
		Args:              cobra.MinimumNArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			return action(cfg, "surface", args)
		},
	}

	cfg.testCmd = &cobra.Command{
		Use:               "test <outputDir> [all]",
		Short:             "Run the built-in acceptance scenarios.",
		DisableAutoGenTag: true,
		Args:              cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return action(cfg, "test", args)
		},
	}

	registerFlags(cfg)
	cfg.Root.AddCommand(cfg.surfaceCmd, cfg.testCmd)

	cfg.Root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg.Logger = buildLogger(cfg)
		return nil
	}

	return cfg
}

// registerFlags binds every flag named in §6.1 onto the root command's
// persistent flag set, mirroring them into cfg's Viper so subcommands and
// config files see the same names.
func registerFlags(cfg *Cfg) {
	var fs *pflag.FlagSet = cfg.Root.PersistentFlags()

	fs.CountP("verbose", "v", "increase log verbosity")
	fs.CountP("quiet", "q", "decrease log verbosity")
	fs.BoolP("save-intermediate", "i", false, "save per-scenario grids")
	fs.BoolP("synchronous", "s", false, "run scenarios synchronously")
	fs.Bool("ascii", false, "emit .asc alongside .tif")
	fs.Bool("no-tiff", false, "suppress .tif output")
	fs.Bool("no-intensity", false, "suppress intensity output")
	fs.Bool("no-probability", false, "suppress probability output")
	fs.Bool("occurrence", false, "emit an occurrence grid")
	fs.Bool("sim-area", false, "emit a simulated-area grid")
	fs.Bool("deterministic", false, "run a fixed scenario count instead of converging")
	fs.Float64("confidence", 0.95, "confidence level for the convergence interval")
	fs.String("perim", "", "existing fire perimeter shapefile")
	fs.Float64("size", 0, "initial fire size in hectares, for a circular ignition")
	fs.String("wx", "", "weather CSV path")
	fs.Float64("ffmc", 85, "starting FFMC")
	fs.Float64("dmc", 6, "starting DMC")
	fs.Float64("dc", 15, "starting DC")
	fs.Float64("apcp_prev", 0, "yesterday's 24-hour precipitation, mm")
	fs.Float64("wd", 0, "wind direction override, degrees")
	fs.Float64("ws", 0, "wind speed override, km/h")
	fs.Float64("slope", 0, "slope override, percent")
	fs.Float64("aspect", 0, "aspect override, degrees")
	fs.Float64("curing", 0, "grass curing percent")
	fs.Bool("force-greenup", false, "force green-up regardless of date")
	fs.Bool("force-no-greenup", false, "force no green-up regardless of date")
	fs.String("output_date_offsets", "", "comma-separated save-point offsets in hours")
	fs.String("raster-root", "", "directory containing fuel and elevation rasters")
	fs.String("fuel-lut", "", "fuel code lookup table file")
	fs.Float64("tz", 0, "UTC offset in hours")
	fs.String("log", "", "log file path")
	fs.Bool("points", false, "treat the perimeter file as points rather than polygons")

	cfg.BindPFlags(fs)
}

// buildLogger constructs the zerolog logger the rest of the program logs
// through, with a level derived from the -v/-q counts and an optional
// --log file destination.
func buildLogger(cfg *Cfg) zerolog.Logger {
	level := zerolog.InfoLevel
	level = zerolog.Level(int8(level) - int8(cast.ToInt(cfg.Get("verbose"))) + int8(cast.ToInt(cfg.Get("quiet"))))

	var out = os.Stderr
	logger := zerolog.New(out).With().Timestamp().Logger().Level(level)

	if path := cfg.GetString("log"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			logger = zerolog.New(f).With().Timestamp().Logger().Level(level)
		}
	}
	return logger
}
