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
	"fmt"
	"log"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/spatialmodel/mapbrush"
)

// Scenario is a recorded brush gesture: the raw pointer samples of one
// press-drag-release sequence in screen pixels, plus the zoom level the
// gesture was recorded at. The first sample is the press position and
// the last is the release position.
type Scenario struct {
	// Zoom is the map scale in map units per screen pixel.
	Zoom float64 `toml:"zoom"`

	// OriginX and OriginY give the map coordinates of the screen
	// origin (pixel 0,0).
	OriginX float64 `toml:"origin_x"`
	OriginY float64 `toml:"origin_y"`

	// RadiusPx optionally overrides the configured brush radius.
	RadiusPx int `toml:"radius_px"`

	// Merge optionally overrides the configured merge policy.
	Merge string `toml:"merge"`

	// InvertMerge records whether the merge-override modifier was held
	// during the gesture.
	InvertMerge bool `toml:"invert_merge"`

	Samples []Sample `toml:"sample"`
}

// Sample is one raw pointer position in screen pixels.
type Sample struct {
	X int `toml:"x"`
	Y int `toml:"y"`
}

// ReadScenario reads a TOML gesture recording.
func ReadScenario(filename string) (*Scenario, error) {
	s := new(Scenario)
	if _, err := toml.DecodeFile(filename, s); err != nil {
		return nil, fmt.Errorf("mapbrush: reading scenario %s: %v", filename, err)
	}
	if len(s.Samples) == 0 {
		return nil, fmt.Errorf("mapbrush: scenario %s holds no pointer samples", filename)
	}
	if s.Zoom <= 0 {
		s.Zoom = 1
	}
	return s, nil
}

// ReplayCanvas is a headless Canvas for replaying recorded gestures.
// Screen x grows rightward and screen y grows downward, as in GUI
// coordinate systems.
type ReplayCanvas struct {
	// Zoom is the map scale in map units per screen pixel.
	Zoom float64

	// Origin is the map coordinate of screen pixel (0, 0).
	Origin geom.Point
}

// MapUnitsPerPixel reports the replay zoom level.
func (c *ReplayCanvas) MapUnitsPerPixel() float64 { return c.Zoom }

// ToMapCoordinates converts a screen position to map coordinates.
func (c *ReplayCanvas) ToMapCoordinates(p mapbrush.ScreenPoint) geom.Point {
	return geom.Point{
		X: c.Origin.X + float64(p.X)*c.Zoom,
		Y: c.Origin.Y - float64(p.Y)*c.Zoom,
	}
}

// SetRenderFlag is a no-op; there is nothing to render during replay.
func (c *ReplayCanvas) SetRenderFlag(bool) {}

// Registry is a static LayerRegistry whose first layer is active.
type Registry struct {
	layers []mapbrush.VectorLayer
}

// NewRegistry creates a registry holding the given layers.
func NewRegistry(layers ...mapbrush.VectorLayer) *Registry {
	return &Registry{layers: layers}
}

// ActiveLayer returns the first layer, or nil if the registry is empty.
func (r *Registry) ActiveLayer() mapbrush.VectorLayer {
	if len(r.layers) == 0 {
		return nil
	}
	return r.layers[0]
}

// Layers returns all layers in the registry.
func (r *Registry) Layers() []mapbrush.VectorLayer { return r.layers }

// logStatus reports status messages to the process log.
type logStatus struct{}

func (logStatus) Message(msg string, _ time.Duration) error {
	log.Println(msg)
	return nil
}

// RunScenario loads the configured layers, replays the recorded
// gesture through the brush tool, and returns the selection result,
// writing the optional snapshot and corridor outputs.
func RunScenario(cfg *ConfigData) (*mapbrush.SelectionResult, error) {
	scenario, err := ReadScenario(cfg.ScenarioFile)
	if err != nil {
		return nil, err
	}

	layers, err := LoadLayers(cfg.LayerFiles, cfg.LayerType, cfg.MapProj)
	if err != nil {
		return nil, err
	}
	vls := make([]mapbrush.VectorLayer, len(layers))
	for i, l := range layers {
		vls[i] = l
	}
	registry := NewRegistry(vls...)

	bc := mapbrush.DefaultConfig()
	bc.SetRadiusPx(cfg.RadiusPx)
	bc.Segments = cfg.Segments
	bc.Merge = cfg.Merge
	bc.ActiveLayerOnly = cfg.ActiveLayerOnly
	bc.TypeFilter = cfg.LayerType
	bc.VisibilityFilter = cfg.VisibilityFilter
	if scenario.RadiusPx != 0 {
		bc.SetRadiusPx(scenario.RadiusPx)
	}
	if scenario.Merge != "" {
		bc.Merge, err = mapbrush.ParseMergeMode(scenario.Merge)
		if err != nil {
			return nil, err
		}
	}

	canvas := &ReplayCanvas{
		Zoom:   scenario.Zoom,
		Origin: geom.Point{X: scenario.OriginX, Y: scenario.OriginY},
	}
	tool := mapbrush.NewTool(canvas, registry, bc)
	tool.SetStatusSink(logStatus{})

	var mod mapbrush.Modifier
	if scenario.InvertMerge {
		mod = mapbrush.ModShift
	}

	samples := scenario.Samples
	press := samples[0]
	release := samples[len(samples)-1]
	tool.MousePress(mapbrush.MouseEvent{
		Pos:     mapbrush.ScreenPoint{X: press.X, Y: press.Y},
		Button:  mapbrush.LeftButton,
		Buttons: mapbrush.LeftButton,
		Mod:     mod,
	})
	moves := samples[1:]
	if len(moves) > 0 {
		moves = moves[:len(moves)-1]
	}
	for _, s := range moves {
		tool.MouseMove(mapbrush.MouseEvent{
			Pos:     mapbrush.ScreenPoint{X: s.X, Y: s.Y},
			Buttons: mapbrush.LeftButton,
			Mod:     mod,
		})
	}
	tool.MouseRelease(mapbrush.MouseEvent{
		Pos:    mapbrush.ScreenPoint{X: release.X, Y: release.Y},
		Button: mapbrush.LeftButton,
		Mod:    mod,
	})

	if cfg.SnapshotFile != "" {
		f, err := os.Create(cfg.SnapshotFile)
		if err != nil {
			return nil, err
		}
		err = mapbrush.WriteSnapshot(f, vls, tool.LastCorridor(), cfg.SnapshotWidth)
		f.Close()
		if err != nil {
			return nil, err
		}
	}

	if cfg.CorridorFile != "" {
		if err := writeCorridor(cfg.CorridorFile, tool.LastCorridor()); err != nil {
			return nil, err
		}
	}

	result := tool.LastResult()
	if result == nil {
		result = new(mapbrush.SelectionResult)
	}
	return result, nil
}

func writeCorridor(filename string, corridor geom.Polygon) error {
	if len(corridor) == 0 {
		return fmt.Errorf("mapbrush: no corridor geometry to write")
	}
	data, err := geojson.Encode(corridor)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
