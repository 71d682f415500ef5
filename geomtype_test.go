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
	"testing"

	"github.com/ctessum/geom"
)

func TestGeometryTypeOf(t *testing.T) {
	tests := []struct {
		g    geom.Geom
		want GeometryType
	}{
		{geom.Point{X: 1, Y: 1}, PointGeometry},
		{geom.MultiPoint{{X: 1, Y: 1}}, PointGeometry},
		{geom.LineString{{X: 0, Y: 0}, {X: 1, Y: 1}}, LineGeometry},
		{geom.MultiLineString{{{X: 0, Y: 0}, {X: 1, Y: 1}}}, LineGeometry},
		{geom.Polygon{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}}, PolygonGeometry},
		{geom.GeometryCollection{geom.Point{X: 1, Y: 1}}, PointGeometry},
		{geom.GeometryCollection{}, AnyGeometry},
		{nil, AnyGeometry},
	}
	for _, test := range tests {
		if have := GeometryTypeOf(test.g); have != test.want {
			t.Errorf("%v: have %v, want %v", test.g, have, test.want)
		}
	}
}

func TestParseGeometryType(t *testing.T) {
	for s, want := range map[string]GeometryType{
		"":           AnyGeometry,
		"any":        AnyGeometry,
		"point":      PointGeometry,
		"line":       LineGeometry,
		"linestring": LineGeometry,
		"polygon":    PolygonGeometry,
	} {
		have, err := ParseGeometryType(s)
		if err != nil {
			t.Errorf("%q: %v", s, err)
		}
		if have != want {
			t.Errorf("%q: have %v, want %v", s, have, want)
		}
	}
	if _, err := ParseGeometryType("raster"); err == nil {
		t.Error("have nil error for invalid geometry type")
	}
}

func TestParseMergeMode(t *testing.T) {
	for s, want := range map[string]MergeMode{
		"":        Union,
		"union":   Union,
		"add":     Union,
		"replace": Replace,
		"set":     Replace,
	} {
		have, err := ParseMergeMode(s)
		if err != nil {
			t.Errorf("%q: %v", s, err)
		}
		if have != want {
			t.Errorf("%q: have %v, want %v", s, have, want)
		}
	}
	if _, err := ParseMergeMode("xor"); err == nil {
		t.Error("have nil error for invalid merge mode")
	}
}

func TestMergeModeOpposite(t *testing.T) {
	if Union.Opposite() != Replace || Replace.Opposite() != Union {
		t.Error("Opposite does not swap the merge modes")
	}
}
