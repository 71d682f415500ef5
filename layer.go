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
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// Layer is an in-memory VectorLayer backed by an r-tree spatial index,
// so that bounding-box queries only touch features near the search
// rectangle rather than the whole layer.
type Layer struct {
	name     string
	gtype    GeometryType
	tree     *rtree.Rtree
	extent   *geom.Bounds
	nullGeom []int64 // features without geometry; never match queries
	selected map[int64]struct{}
	renderer Renderer
}

// layerFeature is the r-tree entry for one feature. Embedding the
// geometry lets the entry go into the index directly while carrying
// the feature ID along.
type layerFeature struct {
	geom.Geom
	id int64
}

// NewLayer creates an empty layer holding features of the given
// geometry family.
func NewLayer(name string, gtype GeometryType) *Layer {
	return &Layer{
		name:     name,
		gtype:    gtype,
		tree:     rtree.NewTree(25, 50),
		extent:   geom.NewBounds(),
		selected: make(map[int64]struct{}),
	}
}

// AddFeature adds a feature to the layer. Features with nil or empty
// geometry are kept but never returned by spatial queries. Adding a
// geometry from a different family than the layer's is an error.
func (l *Layer) AddFeature(id int64, g geom.Geom) error {
	if g == nil || geometryEmpty(g) {
		l.nullGeom = append(l.nullGeom, id)
		return nil
	}
	if l.gtype != AnyGeometry {
		if t := GeometryTypeOf(g); t != l.gtype {
			return fmt.Errorf("mapbrush: layer %s holds %v geometry but feature %d is %v", l.name, l.gtype, id, t)
		}
	}
	f := &layerFeature{Geom: g, id: id}
	l.tree.Insert(f)
	l.extent.Extend(f.Bounds())
	return nil
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// GeometryType returns the geometry family of the layer's features.
func (l *Layer) GeometryType() GeometryType { return l.gtype }

// Extent returns the bounding box of all features in the layer.
func (l *Layer) Extent() *geom.Bounds { return l.extent.Copy() }

// SetRenderer installs a symbology filter for the layer; nil removes it.
func (l *Layer) SetRenderer(r Renderer) { l.renderer = r }

// Renderer returns the layer's symbology filter, or nil.
func (l *Layer) Renderer() Renderer { return l.renderer }

// SearchIntersect returns the features whose bounding boxes intersect b,
// in ascending ID order.
func (l *Layer) SearchIntersect(b *geom.Bounds) ([]Feature, error) {
	hits := l.tree.SearchIntersect(b)
	out := make([]Feature, len(hits))
	for i, h := range hits {
		f := h.(*layerFeature)
		out[i] = Feature{ID: f.id, Geom: f.Geom}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SelectByIDs applies ids to the layer's selection using the given
// merge mode.
func (l *Layer) SelectByIDs(ids []int64, mode MergeMode) {
	l.selected = applySelection(l.selected, ids, mode)
}

// SelectedIDs returns the current selection in ascending ID order.
func (l *Layer) SelectedIDs() []int64 {
	return sortedIDs(l.selected)
}

// applySelection implements the union and replace merge policies over a
// selection id set. Replace with no ids yields an empty set, not the
// previous one.
func applySelection(cur map[int64]struct{}, ids []int64, mode MergeMode) map[int64]struct{} {
	if mode == Replace {
		cur = make(map[int64]struct{}, len(ids))
	}
	for _, id := range ids {
		cur[id] = struct{}{}
	}
	return cur
}

func sortedIDs(m map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
