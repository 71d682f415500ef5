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

// Command mapbrush is a command-line interface for brush selection of
// map features.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/mapbrush/mapbrushutil"
)

func main() {
	if err := mapbrushutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
