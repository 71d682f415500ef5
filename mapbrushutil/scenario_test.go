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
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ctessum/geom"
	"github.com/spatialmodel/mapbrush"
)

const testScenario = `
zoom = 1.0
origin_x = 0.0
origin_y = 10.0
radius_px = 10

[[sample]]
x = 0
y = 5

[[sample]]
x = 5
y = 5

[[sample]]
x = 10
y = 5
`

func TestReadScenario(t *testing.T) {
	file := writeTempFile(t, "gesture.toml", testScenario)
	s, err := ReadScenario(file)
	if err != nil {
		t.Fatal(err)
	}
	if s.Zoom != 1 || s.OriginX != 0 || s.OriginY != 10 || s.RadiusPx != 10 {
		t.Errorf("have %+v", s)
	}
	want := []Sample{{X: 0, Y: 5}, {X: 5, Y: 5}, {X: 10, Y: 5}}
	if !reflect.DeepEqual(s.Samples, want) {
		t.Errorf("have samples %v, want %v", s.Samples, want)
	}
}

func TestReadScenarioEmpty(t *testing.T) {
	file := writeTempFile(t, "empty.toml", "zoom = 1.0\n")
	if _, err := ReadScenario(file); err == nil {
		t.Error("have nil error for scenario without samples")
	}
}

func TestReplayCanvas(t *testing.T) {
	c := &ReplayCanvas{Zoom: 2, Origin: geom.Point{X: 100, Y: 50}}
	if have := c.MapUnitsPerPixel(); have != 2 {
		t.Errorf("have %g, want 2", have)
	}
	have := c.ToMapCoordinates(mapbrush.ScreenPoint{X: 10, Y: 5})
	want := geom.Point{X: 120, Y: 40}
	if have != want {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestRunScenario(t *testing.T) {
	// The recorded stroke runs along map y=5 (screen y=5 with origin_y
	// 10 and downward screen y) with a 10 px radius; only the point at
	// (5, 5) is within reach.
	dir := t.TempDir()
	layerFile := filepath.Join(dir, "points.geojson")
	if err := os.WriteFile(layerFile, []byte(testGeoJSON), 0644); err != nil {
		t.Fatal(err)
	}
	scenarioFile := filepath.Join(dir, "gesture.toml")
	if err := os.WriteFile(scenarioFile, []byte(testScenario), 0644); err != nil {
		t.Fatal(err)
	}
	snapshotFile := filepath.Join(dir, "snapshot.png")
	corridorFile := filepath.Join(dir, "corridor.geojson")

	cfg := &ConfigData{
		LayerFiles:      []string{layerFile},
		RadiusPx:        20, // overridden by the scenario's 10
		Segments:        8,
		Merge:           mapbrush.Union,
		ActiveLayerOnly: true,
		ScenarioFile:    scenarioFile,
		SnapshotFile:    snapshotFile,
		SnapshotWidth:   200,
		CorridorFile:    corridorFile,
	}
	result, err := RunScenario(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.Total != 1 {
		t.Errorf("have total %d, want 1", result.Total)
	}
	wantLayers := []mapbrush.LayerResult{{Layer: "points", IDs: []int64{0}}}
	if !reflect.DeepEqual(result.Layers, wantLayers) {
		t.Errorf("have layers %+v, want %+v", result.Layers, wantLayers)
	}

	for _, f := range []string{snapshotFile, corridorFile} {
		info, err := os.Stat(f)
		if err != nil {
			t.Errorf("%s: %v", f, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", f)
		}
	}
}

func TestRunScenarioMergeOverride(t *testing.T) {
	dir := t.TempDir()
	layerFile := filepath.Join(dir, "points.geojson")
	if err := os.WriteFile(layerFile, []byte(testGeoJSON), 0644); err != nil {
		t.Fatal(err)
	}
	scenarioFile := filepath.Join(dir, "gesture.toml")
	if err := os.WriteFile(scenarioFile, []byte("invert_merge = true\n"+testScenario), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &ConfigData{
		LayerFiles:      []string{layerFile},
		RadiusPx:        20,
		Segments:        8,
		Merge:           mapbrush.Union, // inverted to replace by the modifier
		ActiveLayerOnly: true,
		ScenarioFile:    scenarioFile,
	}
	result, err := RunScenario(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.Total != 1 {
		t.Errorf("have total %d, want 1", result.Total)
	}
}
