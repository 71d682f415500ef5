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
	"fmt"
	"time"

	"github.com/ctessum/geom"
)

const (
	// MinRadiusPx and MaxRadiusPx bound the brush radius in screen pixels.
	MinRadiusPx = 1
	MaxRadiusPx = 200

	// minSegments is the lower limit on buffer tessellation quality,
	// in segments per quarter circle.
	minSegments = 8

	// strokeSpacingPx is the minimum on-screen distance between
	// consecutive sampled stroke points.
	strokeSpacingPx = 2.0
)

// MergeMode specifies how a new set of matched feature IDs is combined
// with a layer's existing selection.
type MergeMode int

const (
	// Union adds the matched IDs to the existing selection.
	Union MergeMode = iota
	// Replace makes the matched IDs the entire new selection.
	Replace
)

func (m MergeMode) String() string {
	switch m {
	case Union:
		return "union"
	case Replace:
		return "replace"
	}
	return fmt.Sprintf("MergeMode(%d)", int(m))
}

// Opposite returns the other merge mode. It implements the momentary
// modifier-key override of the configured default.
func (m MergeMode) Opposite() MergeMode {
	if m == Union {
		return Replace
	}
	return Union
}

// ParseMergeMode converts a configuration string to a MergeMode.
func ParseMergeMode(s string) (MergeMode, error) {
	switch s {
	case "union", "add", "":
		return Union, nil
	case "replace", "set":
		return Replace, nil
	}
	return Union, fmt.Errorf("mapbrush: invalid merge mode %q (must be union or replace)", s)
}

// BrushConfig holds the process-wide brush settings. It persists across
// gestures; the zero value is not useful, use DefaultConfig as a starting
// point.
type BrushConfig struct {
	// RadiusPx is the brush radius in screen pixels, so that the brush
	// covers the same on-screen area at every zoom level. It is clamped
	// to [MinRadiusPx, MaxRadiusPx].
	RadiusPx int

	// Segments controls buffer arc tessellation, in segments per quarter
	// circle. Values below 8 are treated as 8.
	Segments int

	// Merge is the default selection merge policy.
	Merge MergeMode

	// ActiveLayerOnly restricts selection to the registry's active layer.
	// Otherwise all layers matching TypeFilter are candidates.
	ActiveLayerOnly bool

	// TypeFilter optionally restricts candidate layers to one geometry
	// family. AnyGeometry disables the restriction.
	TypeFilter GeometryType

	// VisibilityFilter, when set, excludes features that the layer's
	// renderer would not draw, even if they intersect the corridor.
	VisibilityFilter bool
}

// DefaultConfig returns the brush settings the tool starts with.
func DefaultConfig() BrushConfig {
	return BrushConfig{
		RadiusPx:        20,
		Segments:        8,
		Merge:           Union,
		ActiveLayerOnly: true,
		TypeFilter:      AnyGeometry,
	}
}

// SetRadiusPx sets the brush radius, clamped to the allowed range.
func (c *BrushConfig) SetRadiusPx(px int) {
	c.RadiusPx = clampRadius(px)
}

func clampRadius(px int) int {
	if px < MinRadiusPx {
		return MinRadiusPx
	}
	if px > MaxRadiusPx {
		return MaxRadiusPx
	}
	return px
}

// ScreenPoint is a pointer position in screen pixels.
type ScreenPoint struct {
	X, Y int
}

// Canvas is the host map-canvas capability: it converts between screen
// and map coordinates and allows rendering to be suspended during a
// selection pass.
type Canvas interface {
	// MapUnitsPerPixel reports the current zoom as map units per
	// screen pixel.
	MapUnitsPerPixel() float64

	// ToMapCoordinates converts a screen position to map coordinates.
	ToMapCoordinates(p ScreenPoint) geom.Point

	// SetRenderFlag enables or disables canvas rendering.
	SetRenderFlag(on bool)
}

// Feature is a vector feature as returned by a layer query.
type Feature struct {
	ID   int64
	Geom geom.Geom
}

// Renderer decides whether a layer's current symbology would draw a
// feature. Layers without symbology-based filtering return nil from
// Renderer().
type Renderer interface {
	WillRender(f Feature) bool
}

// VectorLayer is the per-layer feature-store capability.
type VectorLayer interface {
	Name() string

	// GeometryType reports the geometry family shared by the layer's
	// features.
	GeometryType() GeometryType

	// Extent reports the bounding box of all features in the layer.
	Extent() *geom.Bounds

	// SearchIntersect returns the features whose bounding boxes
	// intersect b. It is a coarse prefilter: the caller still needs to
	// run exact intersection tests against the returned features.
	SearchIntersect(b *geom.Bounds) ([]Feature, error)

	// SelectByIDs applies ids to the layer's persistent selection
	// using the given merge mode. Replace with an empty id set clears
	// the selection.
	SelectByIDs(ids []int64, mode MergeMode)

	// SelectedIDs returns the current selection in ascending ID order.
	SelectedIDs() []int64

	// Renderer returns the layer's symbology filter, or nil.
	Renderer() Renderer
}

// LayerRegistry enumerates the layers available for selection.
type LayerRegistry interface {
	// ActiveLayer returns the currently active layer, or nil.
	ActiveLayer() VectorLayer

	// Layers returns all vector layers in the project.
	Layers() []VectorLayer
}

// Overlay is the host rubber-band capability used for live previews.
type Overlay interface {
	SetGeometry(p geom.Polygon)
	Reset()
}

// StatusSink displays a transient message to the user. Errors from the
// sink are ignored by this package; a missing status bar never
// interrupts a gesture.
type StatusSink interface {
	Message(msg string, d time.Duration) error
}
