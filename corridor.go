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
	"math"

	"github.com/ctessum/geom"
)

// Corridor buffers a stroke into a polygon: a circle for a single-point
// stroke, or a capsule-shaped corridor with round caps and joins for a
// polyline. radius is in map units; segments controls arc tessellation
// in segments per quarter circle, with a floor of minSegments.
//
// Corridor is a pure function, so the live preview during a drag and the
// authoritative selection geometry at release are guaranteed identical
// for the same inputs. Degenerate input (no points, non-positive radius,
// coincident points) yields nil or the point-buffer case rather than an
// error; callers treat nil as "nothing to select".
func Corridor(points []geom.Point, radius float64, segments int) geom.Polygon {
	if len(points) == 0 || radius <= 0 || math.IsNaN(radius) {
		return nil
	}
	if segments < minSegments {
		segments = minSegments
	}

	// Drop consecutive coincident points; they would form zero-length
	// segments.
	pts := make([]geom.Point, 0, len(points))
	pts = append(pts, points[0])
	for _, p := range points[1:] {
		if !p.Equals(pts[len(pts)-1]) {
			pts = append(pts, p)
		}
	}

	if len(pts) == 1 {
		return circlePolygon(pts[0], radius, segments)
	}

	var corridor geom.Polygonal
	for i := 0; i < len(pts)-1; i++ {
		capsule := segmentCapsule(pts[i], pts[i+1], radius, segments)
		if corridor == nil {
			corridor = capsule
		} else {
			corridor = corridor.Union(capsule)
		}
	}
	// Consecutive capsules overlap, so the union is normally a single
	// polygon; flattening the rings also covers the multi-polygon case.
	var out geom.Polygon
	for _, poly := range corridor.Polygons() {
		out = append(out, poly...)
	}
	return out
}

// circlePolygon tessellates a circle of the given radius around c,
// with 4*segments vertices, wound counterclockwise.
func circlePolygon(c geom.Point, radius float64, segments int) geom.Polygon {
	n := 4 * segments
	ring := make(geom.Path, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = geom.Point{
			X: c.X + radius*math.Cos(a),
			Y: c.Y + radius*math.Sin(a),
		}
	}
	return geom.Polygon{ring}
}

// segmentCapsule returns the stadium-shaped buffer of the segment p-q:
// a rectangle of width 2*radius with a semicircular cap around each
// endpoint. Unioning consecutive capsules yields round joins along the
// stroke.
func segmentCapsule(p, q geom.Point, radius float64, segments int) geom.Polygon {
	dx := q.X - p.X
	dy := q.Y - p.Y
	if dx == 0 && dy == 0 {
		return circlePolygon(p, radius, segments)
	}
	theta := math.Atan2(dy, dx)
	n := 2 * segments // arc points per semicircle

	ring := make(geom.Path, 0, 2*n+2)
	// Cap around q, sweeping counterclockwise from the right-hand side
	// of the segment to the left.
	for i := 0; i <= n; i++ {
		a := theta - math.Pi/2 + math.Pi*float64(i)/float64(n)
		ring = append(ring, geom.Point{
			X: q.X + radius*math.Cos(a),
			Y: q.Y + radius*math.Sin(a),
		})
	}
	// Cap around p, closing the ring.
	for i := 0; i <= n; i++ {
		a := theta + math.Pi/2 + math.Pi*float64(i)/float64(n)
		ring = append(ring, geom.Point{
			X: p.X + radius*math.Cos(a),
			Y: p.Y + radius*math.Sin(a),
		})
	}
	return geom.Polygon{ring}
}
