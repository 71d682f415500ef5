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
	"image"
	"image/color"
	"io"

	"github.com/ctessum/geom"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Brush overlay colors, matching the on-canvas rubber bands.
var (
	corridorFill   = color.NRGBA{R: 0, G: 150, B: 255, A: 60}
	corridorStroke = color.NRGBA{R: 0, G: 100, B: 200, A: 150}
	featureFill    = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	featureStroke  = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
	selectedFill   = color.NRGBA{R: 255, G: 220, B: 0, A: 255}
	selectedStroke = color.NRGBA{R: 180, G: 120, B: 0, A: 255}
)

// mapCanvas projects map coordinates onto a drawing canvas.
type mapCanvas struct {
	dc             draw.Canvas
	west, south    float64
	xScale, yScale float64 // canvas units per map unit
}

func newMapCanvas(dc draw.Canvas, west, east, south, north float64) *mapCanvas {
	return &mapCanvas{
		dc:     dc,
		west:   west,
		south:  south,
		xScale: float64(dc.Max.X-dc.Min.X) / (east - west),
		yScale: float64(dc.Max.Y-dc.Min.Y) / (north - south),
	}
}

func (m *mapCanvas) point(p geom.Point) vg.Point {
	return vg.Point{
		X: m.dc.Min.X + vg.Length((p.X-m.west)*m.xScale),
		Y: m.dc.Min.Y + vg.Length((p.Y-m.south)*m.yScale),
	}
}

func (m *mapCanvas) path(pts []geom.Point) []vg.Point {
	out := make([]vg.Point, len(pts))
	for i, p := range pts {
		out[i] = m.point(p)
	}
	return out
}

// drawGeom draws g: points as glyphs, linestrings as stroked paths,
// polygons filled and outlined.
func (m *mapCanvas) drawGeom(g geom.Geom, fill color.NRGBA, ls draw.LineStyle, gs draw.GlyphStyle) {
	switch t := g.(type) {
	case geom.Point:
		m.dc.DrawGlyph(gs, m.point(t))
	case geom.MultiPoint:
		for _, p := range t {
			m.dc.DrawGlyph(gs, m.point(p))
		}
	case geom.LineString:
		m.dc.StrokeLines(ls, m.path(t))
	case geom.MultiLineString:
		for _, l := range t {
			m.dc.StrokeLines(ls, m.path(l))
		}
	case geom.Polygonal:
		for _, poly := range t.Polygons() {
			for _, ring := range poly {
				if len(ring) == 0 {
					continue
				}
				pts := m.path(ring)
				m.dc.FillPolygon(fill, pts)
				m.dc.StrokeLines(ls, append(pts, pts[0]))
			}
		}
	case geom.GeometryCollection:
		for _, g2 := range t {
			m.drawGeom(g2, fill, ls, gs)
		}
	}
}

// WriteSnapshot renders the layers, their current selections, and the
// corridor geometry to a PNG image of the given pixel width (height
// follows the aspect ratio of the drawn extent). It is the headless
// counterpart of the live canvas overlays, useful for diagnostics and
// for the command-line stroke replay.
func WriteSnapshot(w io.Writer, layers []VectorLayer, corridor geom.Polygon, widthPx int) error {
	bounds := geom.NewBounds()
	for _, l := range layers {
		if e := l.Extent(); e != nil && !e.Empty() {
			bounds.Extend(e)
		}
	}
	if len(corridor) > 0 {
		bounds.Extend(corridor.Bounds())
	}
	if bounds.Empty() {
		return fmt.Errorf("mapbrush: snapshot extent is empty")
	}

	// Pad the extent so features on the edge stay visible.
	dx := bounds.Max.X - bounds.Min.X
	dy := bounds.Max.Y - bounds.Min.Y
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}
	W := bounds.Min.X - 0.05*dx
	E := bounds.Max.X + 0.05*dx
	S := bounds.Min.Y - 0.05*dy
	N := bounds.Max.Y + 0.05*dy

	if widthPx <= 0 {
		widthPx = 800
	}
	heightPx := int(float64(widthPx) * (N - S) / (E - W))
	if heightPx <= 0 {
		heightPx = 1
	}

	img := vgimg.NewWith(vgimg.UseImage(image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))))
	m := newMapCanvas(draw.New(img), W, E, S, N)

	for _, l := range layers {
		features, err := l.SearchIntersect(bounds)
		if err != nil {
			return fmt.Errorf("mapbrush: snapshot of layer %s: %v", l.Name(), err)
		}
		selected := make(map[int64]bool)
		for _, id := range l.SelectedIDs() {
			selected[id] = true
		}
		for _, f := range features {
			fill, stroke := featureFill, featureStroke
			if selected[f.ID] {
				fill, stroke = selectedFill, selectedStroke
			}
			ls := draw.LineStyle{Color: stroke, Width: 0.2 * vg.Millimeter}
			gs := draw.GlyphStyle{Color: fill, Radius: 0.7 * vg.Millimeter, Shape: draw.CircleGlyph{}}
			m.drawGeom(f.Geom, fill, ls, gs)
		}
	}

	if len(corridor) > 0 {
		ls := draw.LineStyle{Color: corridorStroke, Width: 0.3 * vg.Millimeter}
		m.drawGeom(corridor, corridorFill, ls, draw.GlyphStyle{})
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return err
	}
	return nil
}
