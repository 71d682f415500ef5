/*
Copyright © 2026 the Mapbrush authors.
This file is part of Mapbrush.

Mapbrush is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Mapbrush is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Mapbrush.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package mapbrushutil holds configuration and command-line wiring for
// the mapbrush tool.
package mapbrushutil

import (
	"fmt"
	"log"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/mapbrush"
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
	// Options are the configuration options available to mapbrush.
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
			name: "LayerFiles",
			usage: `
              LayerFiles lists the vector layer files to select from.
              Shapefiles (.shp) and GeoJSON feature collections
              (.geojson, .json) are supported. The first file becomes
              the active layer.`,
			shorthand:  "l",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{selectCmd.Flags()},
		},
		{
			name: "LayerType",
			usage: `
              LayerType restricts candidate layers to one geometry
              family: any, point, line, or polygon.`,
			defaultVal: "any",
			flagsets:   []*pflag.FlagSet{selectCmd.Flags()},
		},
		{
			name: "RadiusPx",
			usage: `
              RadiusPx is the brush radius in screen pixels (1-200).`,
			shorthand:  "r",
			defaultVal: 20,
			flagsets:   []*pflag.FlagSet{selectCmd.Flags()},
		},
		{
			name: "Segments",
			usage: `
              Segments controls the smoothness of buffered corridor
              arcs, in segments per quarter circle (minimum 8).`,
			defaultVal: 8,
			flagsets:   []*pflag.FlagSet{selectCmd.Flags()},
		},
		{
			name: "MergeMode",
			usage: `
              MergeMode specifies how matched features combine with a
              layer's existing selection: union or replace.`,
			defaultVal: "union",
			flagsets:   []*pflag.FlagSet{selectCmd.Flags()},
		},
		{
			name: "ActiveLayerOnly",
			usage: `
              ActiveLayerOnly restricts selection to the active (first)
              layer instead of all layers.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{selectCmd.Flags()},
		},
		{
			name: "VisibilityFilter",
			usage: `
              VisibilityFilter excludes features that layer symbology
              would not render, even if they intersect the brush.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{selectCmd.Flags()},
		},
		{
			name: "Scenario",
			usage: `
              Scenario is the location of a TOML file holding a
              recorded brush gesture: the zoom level and the raw
              pointer samples in screen pixels.`,
			shorthand:  "s",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{selectCmd.Flags()},
		},
		{
			name: "MapProj",
			usage: `
              MapProj gives the map projection in Proj4 format.
              Shapefile layers with a .prj file are reprojected into
              it; if empty, layer coordinates are used as-is.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{selectCmd.Flags()},
		},
		{
			name: "SnapshotFile",
			usage: `
              SnapshotFile is the location for a PNG snapshot of the
              layers, the selection, and the brush corridor. If empty,
              no snapshot is written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{selectCmd.Flags()},
		},
		{
			name: "SnapshotWidth",
			usage: `
              SnapshotWidth is the snapshot image width in pixels.`,
			defaultVal: 800,
			flagsets:   []*pflag.FlagSet{selectCmd.Flags()},
		},
		{
			name: "CorridorFile",
			usage: `
              CorridorFile is the location for a GeoJSON dump of the
              brush corridor geometry. If empty, no dump is written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{selectCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("MAPBRUSH")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
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
	Root.AddCommand(selectCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("mapbrush: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "mapbrush",
	Short: "A brush selection tool for map data.",
	Long: `Mapbrush selects vector features by painting a stroke over a map:
the stroke is buffered into a corridor polygon and all features
intersecting the corridor are selected.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format
'MAPBRUSH_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of mapbrush.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("mapbrush v%s\n", mapbrush.Version)
	},
	DisableAutoGenTag: true,
}

// selectCmd replays a recorded brush gesture against the configured
// layers and reports the resulting selection.
var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Replay a brush gesture and select features",
	Long: `select loads the configured vector layers, replays the brush
gesture recorded in the scenario file, and reports which features the
brush selected, optionally writing a PNG snapshot and a GeoJSON dump of
the corridor geometry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := Config(Cfg)
		if err != nil {
			return err
		}
		result, err := RunScenario(cfg)
		if err != nil {
			return err
		}
		log.Println(result.Summary())
		for _, lr := range result.Layers {
			log.Printf("%s: %v", lr.Layer, lr.IDs)
		}
		return nil
	},
	DisableAutoGenTag: true,
}
