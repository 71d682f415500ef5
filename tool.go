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

import "github.com/ctessum/geom"

// MouseButton identifies pointer buttons. The values form a bitmask so
// that MouseEvent.Buttons can report all buttons held during a move.
type MouseButton int

const (
	NoButton   MouseButton = 0
	LeftButton MouseButton = 1 << iota
	RightButton
	MiddleButton
)

// Modifier is a bitmask of keyboard modifiers held during an event.
type Modifier int

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
)

// MouseEvent is a pointer press, move, or release.
type MouseEvent struct {
	Pos ScreenPoint
	// Button is the button that changed state (press/release).
	Button MouseButton
	// Buttons is the set of buttons held during the event.
	Buttons MouseButton
	Mod     Modifier
}

// WheelEvent is a scroll-wheel movement. Delta is positive when
// scrolling away from the user.
type WheelEvent struct {
	Pos   ScreenPoint
	Delta int
	Mod   Modifier
}

// Tool is the brush selection map tool: a gesture state machine that
// samples a stroke while the primary button is dragged, previews the
// buffered corridor live, and selects intersecting features on release.
//
// All methods must be called from the host's event-dispatch thread; the
// tool holds no locks.
type Tool struct {
	canvas   Canvas
	registry LayerRegistry
	status   StatusSink

	strokeOverlay Overlay // live corridor preview; may be nil
	cursorOverlay Overlay // radius circle at the pointer; may be nil

	cfg     BrushConfig
	sampler *StrokeSampler

	dragging bool
	// invertMerge records whether the merge-override modifier was held
	// at any time during the current gesture.
	invertMerge bool
	lastPos     ScreenPoint

	lastCorridor geom.Polygon
	lastResult   *SelectionResult
}

// NewTool creates a brush tool reading pointer positions from canvas
// and selecting from the layers in registry.
func NewTool(canvas Canvas, registry LayerRegistry, cfg BrushConfig) *Tool {
	cfg.RadiusPx = clampRadius(cfg.RadiusPx)
	return &Tool{
		canvas:   canvas,
		registry: registry,
		cfg:      cfg,
		sampler:  NewStrokeSampler(canvas),
	}
}

// SetStatusSink installs the transient-message sink; nil disables
// status reporting.
func (t *Tool) SetStatusSink(s StatusSink) { t.status = s }

// SetOverlays installs the live preview overlays: stroke shows the
// buffered corridor while dragging, cursor shows a circle of the
// current radius at the pointer. Either may be nil.
func (t *Tool) SetOverlays(stroke, cursor Overlay) {
	t.strokeOverlay = stroke
	t.cursorOverlay = cursor
}

// Config returns the current brush settings.
func (t *Tool) Config() BrushConfig { return t.cfg }

// SetRadiusPx sets the brush radius in screen pixels, clamped to the
// allowed range. Live previews reflect the new radius immediately.
func (t *Tool) SetRadiusPx(px int) {
	t.cfg.SetRadiusPx(px)
	t.refreshPreviews()
}

// SetMergeMode sets the default selection merge policy.
func (t *Tool) SetMergeMode(m MergeMode) { t.cfg.Merge = m }

// SetActiveLayerOnly restricts or widens layer scoping.
func (t *Tool) SetActiveLayerOnly(v bool) { t.cfg.ActiveLayerOnly = v }

// SetVisibilityFilter toggles symbology-based filtering of matches.
func (t *Tool) SetVisibilityFilter(v bool) { t.cfg.VisibilityFilter = v }

// LastResult returns the outcome of the most recent selection pass, or
// nil if none has run.
func (t *Tool) LastResult() *SelectionResult { return t.lastResult }

// LastCorridor returns the corridor geometry of the most recent
// completed gesture, or nil.
func (t *Tool) LastCorridor() geom.Polygon { return t.lastCorridor }

// MousePress starts a gesture. Non-primary buttons are ignored.
func (t *Tool) MousePress(e MouseEvent) {
	if e.Button != LeftButton {
		return
	}
	t.dragging = true
	t.invertMerge = e.Mod&ModShift != 0
	t.lastPos = e.Pos
	t.sampler.Begin(t.canvas.ToMapCoordinates(e.Pos))
	t.updateCursorPreview(e.Pos)
	t.updateStrokePreview()
}

// MouseMove updates the cursor preview and, while dragging with the
// primary button held, extends the stroke and refreshes the live
// corridor preview.
func (t *Tool) MouseMove(e MouseEvent) {
	t.lastPos = e.Pos
	t.updateCursorPreview(e.Pos)

	if !t.dragging || e.Buttons&LeftButton == 0 {
		return
	}
	if e.Mod&ModShift != 0 {
		t.invertMerge = true
	}
	t.sampler.Extend(t.canvas.ToMapCoordinates(e.Pos))
	t.updateStrokePreview()
}

// MouseRelease finalizes the gesture: the release position is force-
// appended to the stroke, the corridor is built once, and the selection
// pass runs. Non-primary releases and releases without a drag in
// progress are ignored.
func (t *Tool) MouseRelease(e MouseEvent) {
	if e.Button != LeftButton || !t.dragging {
		return
	}
	t.dragging = false
	if e.Mod&ModShift != 0 {
		t.invertMerge = true
	}
	points := t.sampler.End(t.canvas.ToMapCoordinates(e.Pos))
	t.sampler.Reset()
	if t.strokeOverlay != nil {
		t.strokeOverlay.Reset()
	}

	corridor := Corridor(points, t.radiusMapUnits(), t.cfg.Segments)
	t.lastCorridor = corridor
	t.lastResult = nil
	if len(corridor) == 0 {
		return
	}

	merge := t.cfg.Merge
	if t.invertMerge {
		merge = merge.Opposite()
	}
	// Boundary failures collapse to "no effect"; the result still
	// reflects the layers that were processed.
	t.lastResult, _ = SelectFeatures(corridor, t.candidateLayers(), t.canvas, t.status, SelectOptions{
		Merge:            merge,
		VisibilityFilter: t.cfg.VisibilityFilter,
	})
}

// Wheel adjusts the brush radius when the Ctrl modifier is held; plain
// wheel events are left to the host for canvas zooming.
func (t *Tool) Wheel(e WheelEvent) {
	if e.Mod&ModCtrl == 0 || e.Delta == 0 {
		return
	}
	step := 1
	if e.Delta < 0 {
		step = -1
	}
	t.cfg.SetRadiusPx(t.cfg.RadiusPx + step)
	t.lastPos = e.Pos
	t.refreshPreviews()
}

// Deactivate aborts any gesture in progress and clears all visual
// state. No selection is performed.
func (t *Tool) Deactivate() {
	t.dragging = false
	t.sampler.Reset()
	if t.strokeOverlay != nil {
		t.strokeOverlay.Reset()
	}
	if t.cursorOverlay != nil {
		t.cursorOverlay.Reset()
	}
}

// radiusMapUnits converts the pixel radius to map units at the current
// zoom level.
func (t *Tool) radiusMapUnits() float64 {
	return float64(t.cfg.RadiusPx) * t.canvas.MapUnitsPerPixel()
}

func (t *Tool) updateCursorPreview(pos ScreenPoint) {
	if t.cursorOverlay == nil {
		return
	}
	center := t.canvas.ToMapCoordinates(pos)
	circle := Corridor([]geom.Point{center}, t.radiusMapUnits(), t.cfg.Segments)
	if circle != nil {
		t.cursorOverlay.SetGeometry(circle)
	}
}

func (t *Tool) updateStrokePreview() {
	if t.strokeOverlay == nil {
		return
	}
	points := t.sampler.Points()
	if len(points) == 0 {
		t.strokeOverlay.Reset()
		return
	}
	stroke := Corridor(points, t.radiusMapUnits(), t.cfg.Segments)
	if len(stroke) > 0 {
		t.strokeOverlay.SetGeometry(stroke)
	}
}

func (t *Tool) refreshPreviews() {
	t.updateCursorPreview(t.lastPos)
	if t.dragging {
		t.updateStrokePreview()
	}
}

// candidateLayers applies the configured layer scoping: the active
// layer only, or every registry layer, in both cases restricted by the
// geometry-type filter.
func (t *Tool) candidateLayers() []VectorLayer {
	if t.registry == nil {
		return nil
	}
	match := func(l VectorLayer) bool {
		if l == nil {
			return false
		}
		return t.cfg.TypeFilter == AnyGeometry || l.GeometryType() == t.cfg.TypeFilter
	}
	if t.cfg.ActiveLayerOnly {
		if l := t.registry.ActiveLayer(); match(l) {
			return []VectorLayer{l}
		}
		return nil
	}
	var out []VectorLayer
	for _, l := range t.registry.Layers() {
		if match(l) {
			out = append(out, l)
		}
	}
	return out
}
