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

// StrokeSampler decimates raw pointer positions into an ordered sequence
// of map-space stroke points. Pointer-move events fire far more often
// than geometric detail is needed; points closer than strokeSpacingPx
// screen pixels to the previously kept point are discarded, which keeps
// visual fidelity constant across zoom levels while bounding the stroke
// point count. The first and last points of a gesture are always kept.
type StrokeSampler struct {
	canvas Canvas
	points []geom.Point
	last   geom.Point
	active bool
}

// NewStrokeSampler returns a sampler that reads the current zoom level
// from canvas. The zoom is re-read on every Extend call because it may
// change mid-gesture.
func NewStrokeSampler(canvas Canvas) *StrokeSampler {
	return &StrokeSampler{canvas: canvas}
}

// Begin resets the stroke to start at p.
func (s *StrokeSampler) Begin(p geom.Point) {
	s.points = s.points[:0]
	s.points = append(s.points, p)
	s.last = p
	s.active = true
}

// Extend appends p to the stroke if it is at least strokeSpacingPx
// screen pixels away from the last kept point; closer points are
// discarded as jitter. Calling Extend before Begin has no effect.
func (s *StrokeSampler) Extend(p geom.Point) {
	if !s.active {
		return
	}
	threshold := strokeSpacingPx * s.canvas.MapUnitsPerPixel()
	if distSq(p, s.last) >= threshold*threshold {
		s.points = append(s.points, p)
		s.last = p
	}
}

// End appends p unconditionally, finalizes the stroke, and returns the
// full point sequence. The returned slice is owned by the caller; the
// sampler must be Begin'd again before reuse.
func (s *StrokeSampler) End(p geom.Point) []geom.Point {
	if !s.active {
		return nil
	}
	s.points = append(s.points, p)
	s.active = false
	out := make([]geom.Point, len(s.points))
	copy(out, s.points)
	return out
}

// Points returns the stroke sampled so far. The returned slice is only
// valid until the next sampler call.
func (s *StrokeSampler) Points() []geom.Point {
	return s.points
}

// Reset clears the stroke.
func (s *StrokeSampler) Reset() {
	s.points = s.points[:0]
	s.active = false
}

func distSq(a, b geom.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
