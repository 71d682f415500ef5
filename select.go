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
	"strings"
	"time"

	"github.com/ctessum/geom"
)

// statusDuration is how long selection summaries stay on the status bar.
const statusDuration = 5 * time.Second

// SelectOptions holds the per-pass selection settings.
type SelectOptions struct {
	Merge            MergeMode
	VisibilityFilter bool
}

// LayerResult is the outcome of a selection pass for one layer.
type LayerResult struct {
	Layer string
	IDs   []int64
}

// SelectionResult summarizes one selection pass.
type SelectionResult struct {
	// Total is the number of features matched across all layers.
	Total int
	// Layers holds the per-layer breakdown, in pass order, for every
	// layer the pass processed; zero-match layers appear with empty
	// IDs so that a cleared selection is visible in the report.
	Layers []LayerResult
	// Elapsed is the processing time for the pass.
	Elapsed time.Duration
}

// Summary formats the result the way the status bar shows it.
func (r *SelectionResult) Summary() string {
	ms := r.Elapsed.Milliseconds()
	if r.Total == 0 {
		return fmt.Sprintf("Brush selected 0 features in %d ms", ms)
	}
	parts := make([]string, len(r.Layers))
	for i, lr := range r.Layers {
		parts[i] = fmt.Sprintf("%s: %d", lr.Layer, len(lr.IDs))
	}
	return fmt.Sprintf("Brush selected %d feature(s) [%s] in %d ms",
		r.Total, strings.Join(parts, ", "), ms)
}

// SelectFeatures runs one selection pass: for each candidate layer it
// queries the features whose bounding boxes intersect the corridor's
// bounding box, runs exact intersection tests on that subset only, and
// applies the matched IDs to the layer's selection with the configured
// merge policy. Under Replace, a layer with no matches has its selection
// cleared rather than left stale.
//
// Canvas rendering is suspended for the duration of the pass and always
// restored, including on error paths. A failing layer query skips that
// layer (its selection is left untouched) and the pass continues; the
// first such error is returned after all layers have been processed.
// status may be nil; sink failures are swallowed.
func SelectFeatures(corridor geom.Polygon, layers []VectorLayer, canvas Canvas, status StatusSink, opts SelectOptions) (*SelectionResult, error) {
	start := time.Now()
	result := new(SelectionResult)

	if len(corridor) == 0 || len(layers) == 0 {
		result.Elapsed = time.Since(start)
		report(status, result)
		return result, nil
	}

	if canvas != nil {
		canvas.SetRenderFlag(false)
		defer canvas.SetRenderFlag(true)
	}

	bbox := corridor.Bounds()
	var firstErr error
	for _, layer := range layers {
		candidates, err := layer.SearchIntersect(bbox)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("mapbrush: querying layer %s: %v", layer.Name(), err)
			}
			continue
		}

		var ids []int64
		for _, f := range candidates {
			if f.Geom == nil || geometryEmpty(f.Geom) {
				continue
			}
			if opts.VisibilityFilter {
				if r := layer.Renderer(); r != nil && !r.WillRender(f) {
					continue
				}
			}
			if Intersects(f.Geom, corridor) {
				ids = append(ids, f.ID)
			}
		}

		if len(ids) > 0 || opts.Merge == Replace {
			layer.SelectByIDs(ids, opts.Merge)
		}
		result.Layers = append(result.Layers, LayerResult{Layer: layer.Name(), IDs: ids})
		result.Total += len(ids)
	}

	result.Elapsed = time.Since(start)
	report(status, result)
	return result, firstErr
}

func report(status StatusSink, r *SelectionResult) {
	if status == nil {
		return
	}
	// A broken status bar must not interrupt the gesture.
	_ = status.Message(r.Summary(), statusDuration)
}

// Intersects reports whether g intersects the corridor polygon,
// including boundary contact.
func Intersects(g geom.Geom, corridor geom.Polygon) bool {
	if len(corridor) == 0 {
		return false
	}
	switch t := g.(type) {
	case geom.Point:
		return t.Within(corridor) != geom.Outside
	case geom.MultiPoint:
		for _, p := range t {
			if p.Within(corridor) != geom.Outside {
				return true
			}
		}
		return false
	case geom.LineString:
		return lineIntersects(t, corridor)
	case geom.MultiLineString:
		for _, l := range t {
			if lineIntersects(l, corridor) {
				return true
			}
		}
		return false
	case geom.GeometryCollection:
		for _, g2 := range t {
			if Intersects(g2, corridor) {
				return true
			}
		}
		return false
	case geom.Polygonal:
		return polygonalIntersects(t, corridor)
	}
	return false
}

// polygonalIntersects tests polygon-polygon intersection: overlapping
// interiors show up as a nonzero overlay area; zero-area boundary
// contact and full containment are caught by vertex containment checks
// in both directions.
func polygonalIntersects(p geom.Polygonal, corridor geom.Polygon) bool {
	if corridor.Intersection(p).Area() > 0 {
		return true
	}
	for _, poly := range p.Polygons() {
		for _, ring := range poly {
			for _, pt := range ring {
				if pt.Within(corridor) != geom.Outside {
					return true
				}
			}
		}
	}
	for _, ring := range corridor {
		for _, pt := range ring {
			if pt.Within(p) != geom.Outside {
				return true
			}
		}
	}
	return false
}

// lineIntersects tests linestring-polygon intersection: any vertex
// inside the polygon, or any segment crossing a polygon edge.
func lineIntersects(l geom.LineString, corridor geom.Polygon) bool {
	for _, pt := range l {
		if pt.Within(corridor) != geom.Outside {
			return true
		}
	}
	for i := 0; i < len(l)-1; i++ {
		a := l[i]
		b := l[i+1]
		for _, ring := range corridor {
			for j := range ring {
				c := ring[j]
				d := ring[(j+1)%len(ring)]
				if segmentsIntersect(a, b, c, d) {
					return true
				}
			}
		}
	}
	return false
}

// segmentsIntersect reports whether segments a-b and c-d share a point.
func segmentsIntersect(a, b, c, d geom.Point) bool {
	d1 := crossProduct(c, d, a)
	d2 := crossProduct(c, d, b)
	d3 := crossProduct(a, b, c)
	d4 := crossProduct(a, b, d)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	// Collinear cases.
	switch {
	case d1 == 0 && onSegment(c, d, a):
		return true
	case d2 == 0 && onSegment(c, d, b):
		return true
	case d3 == 0 && onSegment(a, b, c):
		return true
	case d4 == 0 && onSegment(a, b, d):
		return true
	}
	return false
}

// crossProduct returns the z component of (q-p) × (r-p).
func crossProduct(p, q, r geom.Point) float64 {
	return (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
}

// onSegment reports whether r, known to be collinear with p-q, lies on
// the segment p-q.
func onSegment(p, q, r geom.Point) bool {
	return min(p.X, q.X) <= r.X && r.X <= max(p.X, q.X) &&
		min(p.Y, q.Y) <= r.Y && r.Y <= max(p.Y, q.Y)
}
