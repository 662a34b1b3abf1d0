/*
   Copyright (c) Utkan Güngördü <utkan@freeconsole.org>

   This program is free software; you can redistribute it and/or modify
   it under the terms of the GNU General Public License as
   published by the Free Software Foundation; either version 3 or
   (at your option) any later version.

   This program is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of

   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the

   GNU General Public License for more details


   You should have received a copy of the GNU General Public
   License along with this program; if not, write to the
   Free Software Foundation, Inc.,
   51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.
*/

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/salviati/tiledmap/tmx"
)

func kindOf(l tmx.Layer) string {
	switch l.(type) {
	case *tmx.TileLayer:
		return "layer"
	case *tmx.ObjectGroup:
		return "objectgroup"
	case *tmx.ImageLayer:
		return "imagelayer"
	case *tmx.GroupLayer:
		return "group"
	}
	return "?"
}

func countTiles(l *tmx.TileLayer) int {
	n := 0
	for _, c := range l.Cells {
		if !c.Empty() {
			n++
		}
	}
	return n
}

// tileLayer returns the tile layer called name, or the first one when name
// is empty.
func tileLayer(m *tmx.Map, name string) (*tmx.TileLayer, error) {
	for l := range m.AllLayers() {
		tl, ok := l.(*tmx.TileLayer)
		if ok && (name == "" || tl.Name == name) {
			return tl, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoTileLayer, name)
}

func parsePoint(s string) (tmx.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return tmx.Point{}, fmt.Errorf("invalid position %q, want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return tmx.Point{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return tmx.Point{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	return tmx.Point{X: x, Y: y}, nil
}
