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

// Package mapbrush implements a brush selection tool for map canvases:
// the user paints a stroke over the map, the stroke is buffered into a
// corridor polygon, and all vector features intersecting the corridor
// are selected.
//
// The package is independent of any particular GUI host. The host supplies
// a Canvas (coordinate transforms and scale), a LayerRegistry (the layers
// that can be selected from), Overlays (live previews of the brush), and a
// StatusSink (transient user messages); the Tool type consumes pointer
// events and drives the selection. The Layer and PostGISLayer types are
// ready-made VectorLayer implementations for in-memory and database-backed
// feature storage.
package mapbrush

// Version gives the version number.
const Version = "0.1.0"
