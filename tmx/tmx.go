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

// A Go library that reads Tiled's TMX maps and TSX tilesets.
//
// A map is loaded in two phases. The parser walks the XML token stream of the
// map and of every external tileset it references, building structure and
// buffering raw layer data. Once every tileset is known, the finalize pass
// slices tileset atlases and commits the buffered data into tile grids. A
// load either returns a complete Map or an error; there are no partial maps.
//
// All exported fields are meant to be read only once a Map is returned.
package tmx

import (
	"image/color"
	"iter"
)

type Orientation string

const (
	Orthogonal Orientation = "orthogonal"
	Isometric  Orientation = "isometric"
	Hexagonal  Orientation = "hexagonal"
	Staggered  Orientation = "staggered"
)

func (o Orientation) valid() bool {
	switch o {
	case Orthogonal, Isometric, Hexagonal, Staggered:
		return true
	}
	return false
}

type RenderOrder string

const (
	RightDown RenderOrder = "right-down"
	RightUp   RenderOrder = "right-up"
	LeftDown  RenderOrder = "left-down"
	LeftUp    RenderOrder = "left-up"
)

type StaggerAxis string

const (
	StaggerAxisX StaggerAxis = "x"
	StaggerAxisY StaggerAxis = "y"
)

type StaggerIndex string

const (
	StaggerOdd  StaggerIndex = "odd"
	StaggerEven StaggerIndex = "even"
)

// Coord is a tile coordinate.
type Coord struct {
	X, Y int
}

// Point is a position in map pixels.
type Point struct {
	X, Y float64
}

type Map struct {
	Version      string
	TiledVersion string
	Class        string
	Orientation  Orientation
	RenderOrder  RenderOrder
	Width        int
	Height       int
	TileWidth    int
	TileHeight   int

	HexSideLength int
	StaggerAxis   StaggerAxis
	StaggerIndex  StaggerIndex

	BackgroundColor color.NRGBA // Zero when the map has none.
	Infinite        bool
	NextLayerID     int
	NextObjectID    int

	Properties Properties
	Layers     []Layer    // Top level layers in draw order.
	Tilesets   []*Tileset // Sorted by FirstGID.

	Warnings []Warning
	Source   string
}

// AllLayers yields every layer in draw order, descending into groups before
// moving on to the group's next sibling.
func (m *Map) AllLayers() iter.Seq[Layer] {
	return func(yield func(Layer) bool) {
		walkLayers(m.Layers, yield)
	}
}

func walkLayers(layers []Layer, yield func(Layer) bool) bool {
	for _, l := range layers {
		if !yield(l) {
			return false
		}
		if g, ok := l.(*GroupLayer); ok {
			if !walkLayers(g.Layers, yield) {
				return false
			}
		}
	}
	return true
}

// LayerByName returns the first layer, in draw order, with the given name.
func (m *Map) LayerByName(name string) (Layer, bool) {
	for l := range m.AllLayers() {
		if l.Base().Name == name {
			return l, true
		}
	}
	return nil, false
}

// TilesetIndex returns the index in m.Tilesets of the tileset owning gid, or
// -1. Flip flags are ignored.
func (m *Map) TilesetIndex(gid GID) int {
	id := gid.ID()
	if id == 0 {
		return -1
	}
	for i := len(m.Tilesets) - 1; i >= 0; i-- {
		ts := m.Tilesets[i]
		if ts.FirstGID <= id {
			if ts.LastGID != 0 && id > ts.LastGID {
				return -1
			}
			return i
		}
	}
	return -1
}

// DecodeGID resolves a raw GID, flip flags included, to a cell. The zero GID
// yields the empty cell.
func (m *Map) DecodeGID(gid GID) (Cell, error) {
	if gid.Empty() {
		return Cell{}, nil
	}
	i := m.TilesetIndex(gid)
	if i < 0 {
		return Cell{}, ErrUnresolvedGID
	}
	id := gid.ID()
	return Cell{
		GID:     id,
		Tileset: i,
		ID:      uint32(id - m.Tilesets[i].FirstGID),
		Flip:    gid.Flip(),
	}, nil
}

// TileRecord returns the per-tile record for a cell, if its tileset has one.
func (m *Map) TileRecord(c Cell) (*TileRecord, bool) {
	if c.Empty() || c.Tileset < 0 || c.Tileset >= len(m.Tilesets) {
		return nil, false
	}
	t, ok := m.Tilesets[c.Tileset].Tiles[c.ID]
	return t, ok
}

func (m *Map) Geometry() Geometry {
	return Geometry{
		Orientation:   m.Orientation,
		Width:         m.Width,
		Height:        m.Height,
		TileWidth:     m.TileWidth,
		TileHeight:    m.TileHeight,
		HexSideLength: m.HexSideLength,
		StaggerAxis:   m.StaggerAxis,
		StaggerIndex:  m.StaggerIndex,
	}
}

func (m *Map) TileToPixel(c Coord) Point { return m.Geometry().TileToPixel(c) }

func (m *Map) PixelToTile(p Point) Coord { return m.Geometry().PixelToTile(p) }
