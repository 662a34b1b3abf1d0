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

package tmx

import "image/color"

// Layer is one of *TileLayer, *ObjectGroup, *ImageLayer or *GroupLayer.
type Layer interface {
	Base() *LayerBase
	layer()
}

// LayerBase holds what every layer kind has in common.
type LayerBase struct {
	ID    int
	Name  string
	Class string
	// Index is the draw index: unique across the map and strictly increasing
	// in file order.
	Index int

	OffsetX   float64
	OffsetY   float64
	ParallaxX float64
	ParallaxY float64
	Opacity   float64
	Visible   bool
	TintColor color.NRGBA // Zero when not tinted.

	Properties Properties
}

func (b *LayerBase) Base() *LayerBase { return b }
func (b *LayerBase) layer() {}

// TileLayer is a dense grid of cells. For infinite maps X and Y give the tile
// coordinate of the grid's top-left cell; they are zero otherwise.
type TileLayer struct {
	LayerBase
	X, Y          int
	Width, Height int
	Cells         []Cell // Row major, Width*Height entries.
}

// At returns the cell at tile coordinate (x, y), or the empty cell when the
// coordinate lies outside the layer.
func (l *TileLayer) At(x, y int) Cell {
	x -= l.X
	y -= l.Y
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return Cell{}
	}
	return l.Cells[y*l.Width+x]
}

// IsEmpty reports whether no cell holds a tile.
func (l *TileLayer) IsEmpty() bool {
	for _, c := range l.Cells {
		if !c.Empty() {
			return false
		}
	}
	return true
}

type DrawOrder string

const (
	DrawTopDown DrawOrder = "topdown"
	DrawIndex   DrawOrder = "index"
)

type ObjectGroup struct {
	LayerBase
	Color     color.NRGBA
	DrawOrder DrawOrder
	Objects   []*Object
}

// ObjectByID returns the object with the given id, if present.
func (g *ObjectGroup) ObjectByID(id int) (*Object, bool) {
	for _, o := range g.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

type ImageLayer struct {
	LayerBase
	Image   *Image
	RepeatX bool
	RepeatY bool
}

type GroupLayer struct {
	LayerBase
	Layers []Layer
}
