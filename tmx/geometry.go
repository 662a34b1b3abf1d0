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

import "math"

// Geometry converts between tile coordinates and map pixels for one map
// orientation. The zero StaggerAxis and StaggerIndex behave like "y" and
// "odd".
//
// TileToPixel returns the center of a tile, which is the point guaranteed to
// map back to the same tile through PixelToTile. Pixel to tile conversions
// always floor, so negative positions stay consistent.
type Geometry struct {
	Orientation   Orientation
	Width         int // Map size in tiles; isometric maps need Height for their origin.
	Height        int
	TileWidth     int
	TileHeight    int
	HexSideLength int
	StaggerAxis   StaggerAxis
	StaggerIndex  StaggerIndex
}

func (g Geometry) staggerX() bool { return g.StaggerAxis == StaggerAxisX }
func (g Geometry) staggerEven() bool { return g.StaggerIndex == StaggerEven }

func parity(i int, even bool) bool {
	odd := i&1 != 0
	return odd != even
}

// DoStaggerX reports whether column x is shifted along the stagger axis.
func (g Geometry) DoStaggerX(x int) bool {
	return g.staggerX() && parity(x, g.staggerEven())
}

// DoStaggerY reports whether row y is shifted along the stagger axis.
func (g Geometry) DoStaggerY(y int) bool {
	return !g.staggerX() && parity(y, g.staggerEven())
}

// hexParams mirrors the layout constants of hexagonal and staggered maps.
// Staggered maps are hexagonal maps with a zero side length.
type hexParams struct {
	tileWidth, tileHeight    int
	sideLengthX, sideLengthY int
	sideOffsetX, sideOffsetY int
	columnWidth, rowHeight   int
}

func (g Geometry) hex() hexParams {
	p := hexParams{
		tileWidth:  g.TileWidth &^ 1,
		tileHeight: g.TileHeight &^ 1,
	}
	side := g.HexSideLength
	if g.Orientation != Hexagonal {
		side = 0
	}
	if g.staggerX() {
		p.sideLengthX = side
	} else {
		p.sideLengthY = side
	}
	p.sideOffsetX = (p.tileWidth - p.sideLengthX) / 2
	p.sideOffsetY = (p.tileHeight - p.sideLengthY) / 2
	p.columnWidth = p.sideOffsetX + p.sideLengthX
	p.rowHeight = p.sideOffsetY + p.sideLengthY
	return p
}

// TileOrigin returns the top-left corner of the tile's bounding box. For
// isometric maps that is the top corner of the diamond. This is Tiled's own
// tile to pixel formula: x*tilewidth, y*tileheight on orthogonal maps and
// (x-y)*tilewidth/2 + height*tilewidth/2, (x+y)*tileheight/2 on isometric
// ones.
func (g Geometry) TileOrigin(c Coord) Point {
	x, y := float64(c.X), float64(c.Y)
	tw, th := float64(g.TileWidth), float64(g.TileHeight)

	switch g.Orientation {
	case Isometric:
		originX := float64(g.Height) * tw / 2
		return Point{
			X: (x-y)*tw/2 + originX,
			Y: (x + y) * th / 2,
		}
	case Hexagonal, Staggered:
		p := g.hex()
		var px, py int
		if g.staggerX() {
			py = c.Y * (p.tileHeight + p.sideLengthY)
			if g.DoStaggerX(c.X) {
				py += p.rowHeight
			}
			px = c.X * p.columnWidth
		} else {
			px = c.X * (p.tileWidth + p.sideLengthX)
			if g.DoStaggerY(c.Y) {
				px += p.columnWidth
			}
			py = c.Y * p.rowHeight
		}
		return Point{X: float64(px), Y: float64(py)}
	}
	return Point{X: x * tw, Y: y * th}
}

// TileToPixel returns the center of the tile, which is TileOrigin shifted by
// half a tile (half the tile height for isometric diamonds, whose origin is
// already horizontally centered).
func (g Geometry) TileToPixel(c Coord) Point {
	o := g.TileOrigin(c)
	switch g.Orientation {
	case Isometric:
		return Point{X: o.X, Y: o.Y + float64(g.TileHeight)/2}
	case Hexagonal, Staggered:
		p := g.hex()
		return Point{X: o.X + float64(p.tileWidth)/2, Y: o.Y + float64(p.tileHeight)/2}
	}
	return Point{X: o.X + float64(g.TileWidth)/2, Y: o.Y + float64(g.TileHeight)/2}
}

func floor(v float64) int { return int(math.Floor(v)) }

// PixelToTile returns the tile containing the pixel position.
func (g Geometry) PixelToTile(pt Point) Coord {
	tw, th := float64(g.TileWidth), float64(g.TileHeight)

	switch g.Orientation {
	case Isometric:
		x := pt.X - float64(g.Height)*tw/2
		ty := pt.Y / th
		tx := x / tw
		return Coord{X: floor(ty + tx), Y: floor(ty - tx)}
	case Hexagonal, Staggered:
		return g.pixelToStaggeredTile(pt)
	}
	return Coord{X: floor(pt.X / tw), Y: floor(pt.Y / th)}
}

var (
	staggerXOffsets = [4]Coord{{0, 0}, {1, -1}, {1, 0}, {2, 0}}
	staggerYOffsets = [4]Coord{{0, 0}, {-1, 1}, {0, 1}, {0, 2}}
)

// pixelToStaggeredTile sections the plane into cells two tiles wide along the
// stagger axis. Each cell overlaps four candidate tiles; the nearest center
// wins. Hexagons use euclidean distance, staggered diamonds the diamond norm,
// under which the diamond tiling is exactly the nearest-center partition.
func (g Geometry) pixelToStaggeredTile(pt Point) Coord {
	p := g.hex()
	staggerX, even := g.staggerX(), g.staggerEven()
	x, y := pt.X, pt.Y

	if staggerX {
		if even {
			x -= float64(p.tileWidth)
		} else {
			x -= float64(p.sideOffsetX)
		}
	} else {
		if even {
			y -= float64(p.tileHeight)
		} else {
			y -= float64(p.sideOffsetY)
		}
	}

	cellW := float64(p.columnWidth * 2)
	cellH := float64(p.rowHeight * 2)
	ref := Coord{X: floor(x / cellW), Y: floor(y / cellH)}
	relX := x - float64(ref.X)*cellW
	relY := y - float64(ref.Y)*cellH

	var (
		centers [4]Point
		offsets [4]Coord
	)
	cw, rh := float64(p.columnWidth), float64(p.rowHeight)
	if staggerX {
		ref.X *= 2
		if even {
			ref.X++
		}
		left := float64(p.sideLengthX) / 2
		centerX := left + cw
		centerY := float64(p.tileHeight) / 2
		centers = [4]Point{
			{left, centerY},
			{centerX, centerY - rh},
			{centerX, centerY + rh},
			{centerX + cw, centerY},
		}
		offsets = staggerXOffsets
	} else {
		ref.Y *= 2
		if even {
			ref.Y++
		}
		top := float64(p.sideLengthY) / 2
		centerX := float64(p.tileWidth) / 2
		centerY := top + rh
		centers = [4]Point{
			{centerX, top},
			{centerX - cw, centerY},
			{centerX + cw, centerY},
			{centerX, centerY + rh},
		}
		offsets = staggerYOffsets
	}

	halfW, halfH := float64(p.tileWidth)/2, float64(p.tileHeight)/2
	dist := func(c Point) float64 {
		dx, dy := c.X-relX, c.Y-relY
		if g.Orientation == Staggered {
			return math.Abs(dx)/halfW + math.Abs(dy)/halfH
		}
		return dx*dx + dy*dy
	}

	nearest := 0
	best := math.Inf(1)
	for i, c := range centers {
		if d := dist(c); d < best {
			best = d
			nearest = i
		}
	}
	return Coord{X: ref.X + offsets[nearest].X, Y: ref.Y + offsets[nearest].Y}
}

// PixelSize returns the size in pixels of the map's bounding box.
func (g Geometry) PixelSize() (width, height float64) {
	switch g.Orientation {
	case Isometric:
		side := float64(g.Width + g.Height)
		return side * float64(g.TileWidth) / 2, side * float64(g.TileHeight) / 2
	case Hexagonal, Staggered:
		p := g.hex()
		if g.staggerX() {
			w := g.Width*p.columnWidth + p.sideOffsetX
			h := g.Height * (p.tileHeight + p.sideLengthY)
			if g.Width > 1 {
				h += p.rowHeight
			}
			return float64(w), float64(h)
		}
		w := g.Width * (p.tileWidth + p.sideLengthX)
		if g.Height > 1 {
			w += p.columnWidth
		}
		h := g.Height*p.rowHeight + p.sideOffsetY
		return float64(w), float64(h)
	}
	return float64(g.Width * g.TileWidth), float64(g.Height * g.TileHeight)
}
