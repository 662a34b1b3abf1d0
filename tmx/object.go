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

import (
	"fmt"
	"strconv"
	"strings"
)

type Shape uint8

const (
	ShapeRectangle Shape = iota
	ShapeEllipse
	ShapePolygon
	ShapePolyline
	ShapePoint
	ShapeTile
	ShapeText
)

var shapeNames = [...]string{
	ShapeRectangle: "rectangle",
	ShapeEllipse:   "ellipse",
	ShapePolygon:   "polygon",
	ShapePolyline:  "polyline",
	ShapePoint:     "point",
	ShapeTile:      "tile",
	ShapeText:      "text",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "Shape(" + strconv.Itoa(int(s)) + ")"
}

type Object struct {
	ID       int
	Name     string
	Type     string
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64 // Degrees, clockwise.
	Visible  bool

	Shape  Shape
	Points []Point // Polygon and polyline vertices, relative to (X, Y).
	GID    GID     // Tile objects only; flip flags included.
	Text   string  // Text objects only.

	Properties Properties
}

// Bounds returns the axis-aligned bounding box of the object, ignoring
// rotation. For polygons and polylines it encloses the vertices.
func (o *Object) Bounds() (minX, minY, maxX, maxY float64) {
	switch o.Shape {
	case ShapePolygon, ShapePolyline:
		if len(o.Points) == 0 {
			return o.X, o.Y, o.X, o.Y
		}
		minX, minY = o.Points[0].X, o.Points[0].Y
		maxX, maxY = minX, minY
		for _, p := range o.Points[1:] {
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
		return o.X + minX, o.Y + minY, o.X + maxX, o.Y + maxY
	case ShapeTile:
		// Tile objects are anchored at their bottom-left corner.
		return o.X, o.Y - o.Height, o.X + o.Width, o.Y
	}
	return o.X, o.Y, o.X + o.Width, o.Y + o.Height
}

// ParsePoints decodes a points attribute: space separated "x,y" pairs.
func ParsePoints(s string) ([]Point, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedPoints, s)
	}

	points := make([]Point, len(fields))
	for i, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPoints, f)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPoints, f)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPoints, f)
		}
		points[i] = Point{X: x, Y: y}
	}
	return points, nil
}
