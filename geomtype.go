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

	"github.com/ctessum/geom"
)

// GeometryType classifies geometries into the families used for layer
// scoping.
type GeometryType int

const (
	AnyGeometry GeometryType = iota
	PointGeometry
	LineGeometry
	PolygonGeometry
)

func (t GeometryType) String() string {
	switch t {
	case AnyGeometry:
		return "any"
	case PointGeometry:
		return "point"
	case LineGeometry:
		return "line"
	case PolygonGeometry:
		return "polygon"
	}
	return fmt.Sprintf("GeometryType(%d)", int(t))
}

// ParseGeometryType converts a configuration string to a GeometryType.
func ParseGeometryType(s string) (GeometryType, error) {
	switch s {
	case "any", "":
		return AnyGeometry, nil
	case "point":
		return PointGeometry, nil
	case "line", "linestring":
		return LineGeometry, nil
	case "polygon":
		return PolygonGeometry, nil
	}
	return AnyGeometry, fmt.Errorf("mapbrush: invalid geometry type %q (must be any, point, line, or polygon)", s)
}

// GeometryTypeOf reports the family of g. Geometry collections are
// classified by their first member; nil geometries are AnyGeometry.
func GeometryTypeOf(g geom.Geom) GeometryType {
	switch t := g.(type) {
	case geom.Point, geom.MultiPoint:
		return PointGeometry
	case geom.LineString, geom.MultiLineString:
		return LineGeometry
	case geom.Polygon, geom.MultiPolygon:
		return PolygonGeometry
	case geom.GeometryCollection:
		if len(t) > 0 {
			return GeometryTypeOf(t[0])
		}
	}
	return AnyGeometry
}

// geometryEmpty reports whether g holds no coordinates.
func geometryEmpty(g geom.Geom) bool {
	switch t := g.(type) {
	case nil:
		return true
	case geom.Point:
		return false
	case geom.MultiPoint:
		return len(t) == 0
	case geom.LineString:
		return len(t) == 0
	case geom.MultiLineString:
		return len(t) == 0
	case geom.Polygon:
		return len(t) == 0
	case geom.MultiPolygon:
		return len(t) == 0
	case geom.GeometryCollection:
		for _, g2 := range t {
			if !geometryEmpty(g2) {
				return false
			}
		}
		return true
	}
	return g.Bounds().Empty()
}
