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

// Package collide builds resolv collision spaces from orthogonal tmx maps.
//
// Tile layers and object groups take part when they carry the bool property
// "collides" set to true. Every non-empty cell of such a tile layer becomes
// one object covering the tile, or one object per shape when the tile's
// record has its own collision object group. Every rectangle, ellipse,
// polygon, polyline and tile object of such an object group becomes one
// object covering its bounding box.
package collide

import (
	"errors"
	"fmt"
	"slices"

	"github.com/salviati/tiledmap/tmx"
	"github.com/solarlune/resolv"
)

// TagSolid is carried by every object this package creates. Objects also
// carry the type of the tile record or map object they came from, if any.
const TagSolid = "solid"

var ErrInfiniteMap = errors.New("collide: infinite maps are not supported")

type config struct {
	property string
}

type Option func(*config)

// WithProperty changes the name of the bool property that marks layers as
// solid.
func WithProperty(name string) Option {
	return func(c *config) {
		c.property = name
	}
}

// NewSpace returns a space holding the collision objects of m. Its cells are
// the size of the map's tiles.
func NewSpace(m *tmx.Map, opts ...Option) (*resolv.Space, error) {
	objects, err := Objects(m, opts...)
	if err != nil {
		return nil, err
	}
	w, h := m.Geometry().PixelSize()
	space := resolv.NewSpace(int(w), int(h), m.TileWidth, m.TileHeight)
	space.Add(objects...)
	return space, nil
}

// Objects returns the collision objects of m in draw order. Data holds the
// tmx.Cell or *tmx.Object each one came from.
func Objects(m *tmx.Map, opts ...Option) ([]*resolv.Object, error) {
	cfg := config{property: "collides"}
	for _, opt := range opts {
		opt(&cfg)
	}

	if m.Orientation != tmx.Orthogonal {
		return nil, fmt.Errorf("%w: collide: %s", tmx.ErrUnsupportedOrientation, m.Orientation)
	}
	if m.Infinite {
		return nil, ErrInfiniteMap
	}

	var objects []*resolv.Object
	for l := range m.AllLayers() {
		base := l.Base()
		if solid, _ := base.Properties.Bool(cfg.property); !solid {
			continue
		}
		switch l := l.(type) {
		case *tmx.TileLayer:
			objects = appendTiles(objects, m, l)
		case *tmx.ObjectGroup:
			objects = appendShapes(objects, l.Objects, base.OffsetX, base.OffsetY, nil)
		}
	}
	return objects, nil
}

func appendTiles(objects []*resolv.Object, m *tmx.Map, l *tmx.TileLayer) []*resolv.Object {
	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	for y := range l.Height {
		for x := range l.Width {
			cell := l.At(l.X+x, l.Y+y)
			if cell.Empty() {
				continue
			}
			px := float64(l.X+x)*tw + l.OffsetX
			py := float64(l.Y+y)*th + l.OffsetY

			var tags []string
			rec, ok := m.TileRecord(cell)
			if ok && rec.Type != "" {
				tags = append(tags, rec.Type)
			}
			if ok && rec.ObjectGroup != nil && len(rec.ObjectGroup.Objects) > 0 {
				objects = appendShapes(objects, rec.ObjectGroup.Objects, px, py, cell, tags...)
				continue
			}
			objects = append(objects, newObject(px, py, tw, th, cell, tags...))
		}
	}
	return objects
}

// appendShapes adds one object per shape, translated by (dx, dy). A non-nil
// data replaces the shape as the object's Data.
func appendShapes(objects []*resolv.Object, shapes []*tmx.Object, dx, dy float64, data any, extra ...string) []*resolv.Object {
	for _, o := range shapes {
		if !o.Visible {
			continue
		}
		switch o.Shape {
		case tmx.ShapePoint, tmx.ShapeText:
			continue
		}
		minX, minY, maxX, maxY := o.Bounds()
		if maxX <= minX || maxY <= minY {
			continue
		}

		tags := extra
		if o.Type != "" {
			tags = append(slices.Clip(tags), o.Type)
		}
		d := data
		if d == nil {
			d = o
		}
		objects = append(objects, newObject(minX+dx, minY+dy, maxX-minX, maxY-minY, d, tags...))
	}
	return objects
}

func newObject(x, y, w, h float64, data any, tags ...string) *resolv.Object {
	obj := resolv.NewObject(x, y, w, h, append([]string{TagSolid}, tags...)...)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = data
	return obj
}
