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

package mapbrushutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	"github.com/lnashier/viper"
	"github.com/spatialmodel/mapbrush"
	"github.com/spf13/cast"
)

// ConfigData holds the checked configuration for one brush run.
type ConfigData struct {
	// LayerFiles lists the vector layer files to select from; the
	// first file is the active layer.
	LayerFiles []string

	// LayerType optionally restricts candidate layers to one geometry
	// family.
	LayerType mapbrush.GeometryType

	// RadiusPx is the brush radius in screen pixels.
	RadiusPx int

	// Segments is the buffer tessellation quality.
	Segments int

	// Merge is the selection merge policy.
	Merge mapbrush.MergeMode

	// ActiveLayerOnly restricts selection to the active layer.
	ActiveLayerOnly bool

	// VisibilityFilter excludes features hidden by layer symbology.
	VisibilityFilter bool

	// ScenarioFile is the recorded gesture to replay.
	ScenarioFile string

	// MapProj is the map projection in Proj4 format; shapefile layers
	// are reprojected into it when it is set.
	MapProj string

	// SnapshotFile, SnapshotWidth, and CorridorFile control the
	// optional diagnostic outputs.
	SnapshotFile  string
	SnapshotWidth int
	CorridorFile  string
}

// Config reads and checks the configuration from cfg.
func Config(cfg *viper.Viper) (*ConfigData, error) {
	c := &ConfigData{
		LayerFiles:       expandStringSlice(cfg.GetStringSlice("LayerFiles")),
		RadiusPx:         cast.ToInt(cfg.Get("RadiusPx")),
		Segments:         cast.ToInt(cfg.Get("Segments")),
		ActiveLayerOnly:  cast.ToBool(cfg.Get("ActiveLayerOnly")),
		VisibilityFilter: cast.ToBool(cfg.Get("VisibilityFilter")),
		ScenarioFile:     os.ExpandEnv(cfg.GetString("Scenario")),
		MapProj:          cfg.GetString("MapProj"),
		SnapshotFile:     os.ExpandEnv(cfg.GetString("SnapshotFile")),
		SnapshotWidth:    cast.ToInt(cfg.Get("SnapshotWidth")),
		CorridorFile:     os.ExpandEnv(cfg.GetString("CorridorFile")),
	}
	var err error
	c.LayerType, err = mapbrush.ParseGeometryType(cfg.GetString("LayerType"))
	if err != nil {
		return nil, err
	}
	c.Merge, err = mapbrush.ParseMergeMode(cfg.GetString("MergeMode"))
	if err != nil {
		return nil, err
	}
	if len(c.LayerFiles) == 0 {
		return nil, fmt.Errorf("mapbrush: no layer files specified")
	}
	if c.ScenarioFile == "" {
		return nil, fmt.Errorf("mapbrush: no scenario file specified")
	}
	if c.RadiusPx < mapbrush.MinRadiusPx || c.RadiusPx > mapbrush.MaxRadiusPx {
		return nil, fmt.Errorf("mapbrush: radius %d px is outside the valid range [%d, %d]",
			c.RadiusPx, mapbrush.MinRadiusPx, mapbrush.MaxRadiusPx)
	}
	return c, nil
}

// expandStringSlice expands environment variables in a slice of strings.
func expandStringSlice(s []string) []string {
	out := make([]string, len(s))
	for i, ss := range s {
		out[i] = os.ExpandEnv(ss)
	}
	return out
}

// LoadLayers reads vector layers from the given files. Shapefiles with
// a .prj file are reprojected to mapProj when it is non-empty; GeoJSON
// coordinates are assumed to already be in map coordinates. The layer
// name is the file name without its extension, and feature IDs are
// assigned in row order starting from zero.
func LoadLayers(files []string, gtype mapbrush.GeometryType, mapProj string) ([]*mapbrush.Layer, error) {
	var outSR *proj.SR
	if mapProj != "" {
		var err error
		outSR, err = proj.Parse(mapProj)
		if err != nil {
			return nil, fmt.Errorf("mapbrush: parsing map projection: %v", err)
		}
	}

	layers := make([]*mapbrush.Layer, 0, len(files))
	for _, file := range files {
		var geoms []geom.Geom
		var err error
		switch strings.ToLower(filepath.Ext(file)) {
		case ".shp":
			geoms, err = loadShapefile(file, outSR)
		case ".geojson", ".json":
			geoms, err = loadGeoJSON(file)
		default:
			err = fmt.Errorf("mapbrush: unsupported layer file type %s", filepath.Ext(file))
		}
		if err != nil {
			return nil, err
		}

		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		layerType := gtype
		if layerType == mapbrush.AnyGeometry {
			for _, g := range geoms {
				if t := mapbrush.GeometryTypeOf(g); t != mapbrush.AnyGeometry {
					layerType = t
					break
				}
			}
		}
		layer := mapbrush.NewLayer(name, layerType)
		for i, g := range geoms {
			if err := layer.AddFeature(int64(i), g); err != nil {
				return nil, err
			}
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

func loadShapefile(file string, outSR *proj.SR) ([]geom.Geom, error) {
	d, err := shp.NewDecoder(file)
	if err != nil {
		return nil, fmt.Errorf("mapbrush: opening %s: %v", file, err)
	}
	defer d.Close()

	var ct proj.Transformer
	if outSR != nil {
		inSR, err := d.SR()
		if err != nil {
			return nil, fmt.Errorf("mapbrush: reading projection of %s: %v", file, err)
		}
		ct, err = inSR.NewTransform(outSR)
		if err != nil {
			return nil, fmt.Errorf("mapbrush: creating transform for %s: %v", file, err)
		}
	}

	var geoms []geom.Geom
	for {
		g, _, more := d.DecodeRowFields()
		if !more {
			break
		}
		if ct != nil {
			g, err = g.Transform(ct)
			if err != nil {
				return nil, fmt.Errorf("mapbrush: reprojecting %s: %v", file, err)
			}
		}
		geoms = append(geoms, g)
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("mapbrush: reading %s: %v", file, err)
	}
	return geoms, nil
}

// loadGeoJSON reads either a FeatureCollection or a bare geometry
// object. Features with null geometry decode to nil, which layers keep
// but never match.
func loadGeoJSON(file string) ([]geom.Geom, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry json.RawMessage `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("mapbrush: reading %s: %v", file, err)
	}
	if fc.Type != "FeatureCollection" {
		g, err := geojson.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("mapbrush: decoding geometry in %s: %v", file, err)
		}
		return []geom.Geom{g}, nil
	}
	geoms := make([]geom.Geom, 0, len(fc.Features))
	for i, f := range fc.Features {
		if len(f.Geometry) == 0 || string(f.Geometry) == "null" {
			geoms = append(geoms, nil)
			continue
		}
		g, err := geojson.Decode(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("mapbrush: decoding feature %d in %s: %v", i, file, err)
		}
		geoms = append(geoms, g)
	}
	return geoms, nil
}
