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

package mapbrush

import (
	"reflect"
	"testing"

	"github.com/ctessum/geom"
)

// testRegistry is a static LayerRegistry; the first layer is active.
type testRegistry []VectorLayer

func (r testRegistry) ActiveLayer() VectorLayer {
	if len(r) == 0 {
		return nil
	}
	return r[0]
}
func (r testRegistry) Layers() []VectorLayer { return r }

func newTestTool(layers ...VectorLayer) (*Tool, *testCanvas) {
	canvas := &testCanvas{zoom: 1}
	tool := NewTool(canvas, testRegistry(layers), DefaultConfig())
	return tool, canvas
}

func dragGesture(tool *Tool, path ...ScreenPoint) {
	tool.MousePress(MouseEvent{Pos: path[0], Button: LeftButton, Buttons: LeftButton})
	for _, p := range path[1 : len(path)-1] {
		tool.MouseMove(MouseEvent{Pos: p, Buttons: LeftButton})
	}
	tool.MouseRelease(MouseEvent{Pos: path[len(path)-1], Button: LeftButton})
}

func TestToolGesture(t *testing.T) {
	// A horizontal drag at zoom 1 with the default 20 px radius selects
	// the features within 20 map units of the stroke.
	l := pointLayer("cities",
		geom.Point{X: 10, Y: 0},   // on the stroke
		geom.Point{X: 15, Y: 15},  // within the radius
		geom.Point{X: 10, Y: -30}, // beyond the radius
	)
	tool, _ := newTestTool(l)

	dragGesture(tool,
		ScreenPoint{X: 0, Y: 0},
		ScreenPoint{X: 10, Y: 0},
		ScreenPoint{X: 20, Y: 0},
	)

	if have := l.SelectedIDs(); !reflect.DeepEqual(have, []int64{0, 1}) {
		t.Errorf("have selection %v, want [0 1]", have)
	}
	result := tool.LastResult()
	if result == nil || result.Total != 2 {
		t.Errorf("have result %+v, want total 2", result)
	}
	if tool.LastCorridor() == nil {
		t.Error("have nil corridor after gesture")
	}
}

func TestToolClickSelectsUnderCircle(t *testing.T) {
	// A click with no drag buffers the single point into a circle.
	l := pointLayer("l", geom.Point{X: 5, Y: 5}, geom.Point{X: 200, Y: 200})
	tool, _ := newTestTool(l)

	tool.MousePress(MouseEvent{Pos: ScreenPoint{X: 5, Y: -5}, Button: LeftButton, Buttons: LeftButton})
	tool.MouseRelease(MouseEvent{Pos: ScreenPoint{X: 5, Y: -5}, Button: LeftButton})

	if have := l.SelectedIDs(); !reflect.DeepEqual(have, []int64{0}) {
		t.Errorf("have selection %v, want [0]", have)
	}
}

func TestToolIgnoresSecondaryButtons(t *testing.T) {
	l := pointLayer("l", geom.Point{X: 0, Y: 0})
	tool, _ := newTestTool(l)

	tool.MousePress(MouseEvent{Pos: ScreenPoint{}, Button: RightButton, Buttons: RightButton})
	tool.MouseRelease(MouseEvent{Pos: ScreenPoint{}, Button: RightButton})
	if have := l.SelectedIDs(); len(have) != 0 {
		t.Errorf("have selection %v after secondary-button click, want none", have)
	}
	if tool.LastResult() != nil {
		t.Error("have selection result after secondary-button click")
	}

	// A release without a press in progress does nothing.
	tool.MouseRelease(MouseEvent{Pos: ScreenPoint{}, Button: LeftButton})
	if tool.LastResult() != nil {
		t.Error("have selection result after stray release")
	}
}

func TestToolMergeOverride(t *testing.T) {
	// Holding the modifier during the gesture flips the configured
	// merge policy for that gesture only.
	l := pointLayer("l", geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 100})
	l.SelectByIDs([]int64{1}, Union)
	tool, _ := newTestTool(l)

	tool.MousePress(MouseEvent{Pos: ScreenPoint{}, Button: LeftButton, Buttons: LeftButton, Mod: ModShift})
	tool.MouseRelease(MouseEvent{Pos: ScreenPoint{}, Button: LeftButton, Mod: ModShift})
	if have := l.SelectedIDs(); !reflect.DeepEqual(have, []int64{0}) {
		t.Errorf("have selection %v after inverted merge, want [0]", have)
	}

	// The next plain gesture is back to the configured union.
	l.SelectByIDs([]int64{1}, Union)
	tool.MousePress(MouseEvent{Pos: ScreenPoint{}, Button: LeftButton, Buttons: LeftButton})
	tool.MouseRelease(MouseEvent{Pos: ScreenPoint{}, Button: LeftButton})
	if have := l.SelectedIDs(); !reflect.DeepEqual(have, []int64{0, 1}) {
		t.Errorf("have selection %v, want [0 1]", have)
	}
}

func TestToolWheelRadius(t *testing.T) {
	tool, _ := newTestTool()

	tool.Wheel(WheelEvent{Delta: 1, Mod: ModCtrl})
	if have := tool.Config().RadiusPx; have != 21 {
		t.Errorf("have radius %d, want 21", have)
	}
	tool.Wheel(WheelEvent{Delta: -1, Mod: ModCtrl})
	if have := tool.Config().RadiusPx; have != 20 {
		t.Errorf("have radius %d, want 20", have)
	}

	// Without Ctrl the wheel is left to the host.
	tool.Wheel(WheelEvent{Delta: 1})
	if have := tool.Config().RadiusPx; have != 20 {
		t.Errorf("have radius %d after plain wheel, want 20", have)
	}

	// The radius clamps at both ends.
	tool.SetRadiusPx(MaxRadiusPx)
	tool.Wheel(WheelEvent{Delta: 1, Mod: ModCtrl})
	if have := tool.Config().RadiusPx; have != MaxRadiusPx {
		t.Errorf("have radius %d, want %d", have, MaxRadiusPx)
	}
	tool.SetRadiusPx(MinRadiusPx)
	tool.Wheel(WheelEvent{Delta: -1, Mod: ModCtrl})
	if have := tool.Config().RadiusPx; have != MinRadiusPx {
		t.Errorf("have radius %d, want %d", have, MinRadiusPx)
	}
}

func TestToolRadiusClamp(t *testing.T) {
	tool, _ := newTestTool()
	tool.SetRadiusPx(0)
	if have := tool.Config().RadiusPx; have != MinRadiusPx {
		t.Errorf("have radius %d, want %d", have, MinRadiusPx)
	}
	tool.SetRadiusPx(1000)
	if have := tool.Config().RadiusPx; have != MaxRadiusPx {
		t.Errorf("have radius %d, want %d", have, MaxRadiusPx)
	}

	cfg := DefaultConfig()
	cfg.RadiusPx = -5
	tool2 := NewTool(&testCanvas{zoom: 1}, nil, cfg)
	if have := tool2.Config().RadiusPx; have != MinRadiusPx {
		t.Errorf("have radius %d from constructor, want %d", have, MinRadiusPx)
	}
}

func TestToolOverlays(t *testing.T) {
	l := pointLayer("l", geom.Point{X: 0, Y: 0})
	tool, _ := newTestTool(l)
	stroke := new(testOverlay)
	cursor := new(testOverlay)
	tool.SetOverlays(stroke, cursor)

	tool.MouseMove(MouseEvent{Pos: ScreenPoint{X: 5, Y: 5}})
	if cursor.geom == nil {
		t.Error("have no cursor preview after hover")
	}
	if stroke.geom != nil {
		t.Error("have stroke preview without a drag")
	}

	tool.MousePress(MouseEvent{Pos: ScreenPoint{}, Button: LeftButton, Buttons: LeftButton})
	tool.MouseMove(MouseEvent{Pos: ScreenPoint{X: 10, Y: 0}, Buttons: LeftButton})
	if stroke.geom == nil {
		t.Error("have no stroke preview during drag")
	}

	tool.MouseRelease(MouseEvent{Pos: ScreenPoint{X: 20, Y: 0}, Button: LeftButton})
	if stroke.geom != nil {
		t.Error("stroke preview not cleared after release")
	}
}

func TestToolDeactivate(t *testing.T) {
	l := pointLayer("l", geom.Point{X: 0, Y: 0})
	tool, _ := newTestTool(l)
	stroke := new(testOverlay)
	cursor := new(testOverlay)
	tool.SetOverlays(stroke, cursor)

	tool.MousePress(MouseEvent{Pos: ScreenPoint{}, Button: LeftButton, Buttons: LeftButton})
	tool.MouseMove(MouseEvent{Pos: ScreenPoint{X: 10, Y: 0}, Buttons: LeftButton})
	tool.Deactivate()

	if stroke.geom != nil || cursor.geom != nil {
		t.Error("overlays not cleared by Deactivate")
	}
	if have := l.SelectedIDs(); len(have) != 0 {
		t.Errorf("have selection %v after aborted gesture, want none", have)
	}

	// The aborted gesture leaves no stroke behind.
	tool.MouseRelease(MouseEvent{Pos: ScreenPoint{X: 20, Y: 0}, Button: LeftButton})
	if have := l.SelectedIDs(); len(have) != 0 {
		t.Errorf("have selection %v after release following Deactivate, want none", have)
	}
}

func TestToolDegenerateGestureClearsResult(t *testing.T) {
	// A gesture whose corridor collapses to nothing must not leave the
	// previous gesture's result behind.
	l := pointLayer("l", geom.Point{X: 0, Y: 0})
	tool, canvas := newTestTool(l)

	dragGesture(tool, ScreenPoint{}, ScreenPoint{X: 5, Y: 0})
	if tool.LastResult() == nil {
		t.Fatal("have nil result after a normal gesture")
	}

	canvas.zoom = 0 // radius collapses to zero map units
	dragGesture(tool, ScreenPoint{}, ScreenPoint{X: 5, Y: 0})
	if tool.LastResult() != nil {
		t.Errorf("have stale result %+v after a degenerate gesture", tool.LastResult())
	}
	if tool.LastCorridor() != nil {
		t.Errorf("have stale corridor after a degenerate gesture")
	}
}

func TestToolLayerScoping(t *testing.T) {
	active := pointLayer("active", geom.Point{X: 0, Y: 0})
	other := pointLayer("other", geom.Point{X: 0, Y: 0})

	t.Run("active layer only", func(t *testing.T) {
		tool, _ := newTestTool(active, other)
		dragGesture(tool, ScreenPoint{}, ScreenPoint{X: 5, Y: 0})
		if len(active.SelectedIDs()) != 1 {
			t.Error("active layer not selected")
		}
		if len(other.SelectedIDs()) != 0 {
			t.Error("inactive layer selected in active-only mode")
		}
	})

	t.Run("all layers", func(t *testing.T) {
		active.SelectByIDs(nil, Replace)
		other.SelectByIDs(nil, Replace)
		tool, _ := newTestTool(active, other)
		tool.SetActiveLayerOnly(false)
		dragGesture(tool, ScreenPoint{}, ScreenPoint{X: 5, Y: 0})
		if len(active.SelectedIDs()) != 1 || len(other.SelectedIDs()) != 1 {
			t.Error("not all layers selected in all-layers mode")
		}
	})

	t.Run("type filter", func(t *testing.T) {
		active.SelectByIDs(nil, Replace)
		other.SelectByIDs(nil, Replace)
		lines := NewLayer("lines", LineGeometry)
		lines.AddFeature(0, geom.LineString{{X: -5, Y: 0}, {X: 5, Y: 0}})
		tool, _ := newTestTool(active, lines)
		tool.SetActiveLayerOnly(false)
		cfg := tool.Config()
		cfg.TypeFilter = LineGeometry
		tool2 := NewTool(&testCanvas{zoom: 1}, testRegistry{active, lines}, cfg)
		dragGesture(tool2, ScreenPoint{}, ScreenPoint{X: 5, Y: 0})
		if len(lines.SelectedIDs()) != 1 {
			t.Error("line layer not selected under line filter")
		}
		if len(active.SelectedIDs()) != 0 {
			t.Error("point layer selected under line filter")
		}
	})
}
