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
	"testing"
)

func geometries() []Geometry {
	gs := []Geometry{
		{Orientation: Orthogonal, Width: 10, Height: 8, TileWidth: 16, TileHeight: 16},
		{Orientation: Orthogonal, Width: 7, Height: 5, TileWidth: 15, TileHeight: 9},
		{Orientation: Isometric, Width: 10, Height: 10, TileWidth: 64, TileHeight: 32},
		{Orientation: Isometric, Width: 6, Height: 9, TileWidth: 32, TileHeight: 32},
	}
	for _, axis := range []StaggerAxis{StaggerAxisX, StaggerAxisY} {
		for _, index := range []StaggerIndex{StaggerOdd, StaggerEven} {
			gs = append(gs,
				Geometry{Orientation: Hexagonal, Width: 8, Height: 8, TileWidth: 14, TileHeight: 12, HexSideLength: 6, StaggerAxis: axis, StaggerIndex: index},
				Geometry{Orientation: Hexagonal, Width: 8, Height: 8, TileWidth: 32, TileHeight: 32, HexSideLength: 16, StaggerAxis: axis, StaggerIndex: index},
				Geometry{Orientation: Staggered, Width: 8, Height: 8, TileWidth: 64, TileHeight: 32, StaggerAxis: axis, StaggerIndex: index},
			)
		}
	}
	return gs
}

func geometryName(g Geometry) string {
	s := fmt.Sprintf("%s_%dx%d", g.Orientation, g.TileWidth, g.TileHeight)
	if g.Orientation == Hexagonal || g.Orientation == Staggered {
		s += fmt.Sprintf("_side%d_%s_%s", g.HexSideLength, g.StaggerAxis, g.StaggerIndex)
	}
	return s
}

func TestTilePixelRoundTrip(t *testing.T) {
	for _, g := range geometries() {
		t.Run(geometryName(g), func(t *testing.T) {
			for y := -3; y < g.Height+3; y++ {
				for x := -3; x < g.Width+3; x++ {
					c := Coord{X: x, Y: y}
					p := g.TileToPixel(c)
					if got := g.PixelToTile(p); got != c {
						t.Errorf("PixelToTile(TileToPixel(%v)) = %v via %v", c, got, p)
					}
				}
			}
		})
	}
}

func TestTileToPixel(t *testing.T) {
	hex := Geometry{Orientation: Hexagonal, TileWidth: 14, TileHeight: 12, HexSideLength: 6, StaggerAxis: StaggerAxisY, StaggerIndex: StaggerOdd}
	tests := []struct {
		name   string
		g      Geometry
		c      Coord
		origin Point
		center Point
	}{
		{"orthogonal", Geometry{Orientation: Orthogonal, TileWidth: 32, TileHeight: 32}, Coord{2, 3}, Point{64, 96}, Point{80, 112}},
		{"isometric origin", Geometry{Orientation: Isometric, Height: 10, TileWidth: 64, TileHeight: 32}, Coord{0, 0}, Point{320, 0}, Point{320, 16}},
		{"isometric", Geometry{Orientation: Isometric, Height: 10, TileWidth: 64, TileHeight: 32}, Coord{3, 1}, Point{384, 64}, Point{384, 80}},
		{"hexagonal even row", hex, Coord{1, 0}, Point{14, 0}, Point{21, 6}},
		{"hexagonal odd row", hex, Coord{0, 1}, Point{7, 9}, Point{14, 15}},
		{"staggered odd row", Geometry{Orientation: Staggered, TileWidth: 64, TileHeight: 32, StaggerAxis: StaggerAxisY}, Coord{0, 1}, Point{32, 16}, Point{64, 32}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.TileOrigin(tt.c); got != tt.origin {
				t.Errorf("TileOrigin(%v) = %v, want %v", tt.c, got, tt.origin)
			}
			if got := tt.g.TileToPixel(tt.c); got != tt.center {
				t.Errorf("TileToPixel(%v) = %v, want %v", tt.c, got, tt.center)
			}
		})
	}
}

func TestTileOriginFormula(t *testing.T) {
	for _, g := range geometries()[:4] {
		t.Run(geometryName(g), func(t *testing.T) {
			tw, th := float64(g.TileWidth), float64(g.TileHeight)
			for y := -2; y < g.Height+2; y++ {
				for x := -2; x < g.Width+2; x++ {
					c := Coord{X: x, Y: y}
					want := Point{X: float64(x) * tw, Y: float64(y) * th}
					if g.Orientation == Isometric {
						want = Point{
							X: float64(x-y)*tw/2 + float64(g.Height)*tw/2,
							Y: float64(x+y) * th / 2,
						}
					}
					if got := g.TileOrigin(c); got != want {
						t.Errorf("TileOrigin(%v) = %v, want %v", c, got, want)
					}
					if got := g.PixelToTile(g.TileOrigin(c)); got != c {
						t.Errorf("PixelToTile(TileOrigin(%v)) = %v", c, got)
					}
				}
			}
		})
	}
}

func TestPixelToTileFloors(t *testing.T) {
	g := Geometry{Orientation: Orthogonal, TileWidth: 16, TileHeight: 16}
	tests := []struct {
		p    Point
		want Coord
	}{
		{Point{0, 0}, Coord{0, 0}},
		{Point{15.9, 15.9}, Coord{0, 0}},
		{Point{16, 0}, Coord{1, 0}},
		{Point{-0.5, -0.5}, Coord{-1, -1}},
		{Point{-16, -16.01}, Coord{-1, -2}},
	}
	for _, tt := range tests {
		if got := g.PixelToTile(tt.p); got != tt.want {
			t.Errorf("PixelToTile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestDoStagger(t *testing.T) {
	tests := []struct {
		axis  StaggerAxis
		index StaggerIndex
		x     [4]bool // DoStaggerX for 0..3
		y     [4]bool // DoStaggerY for 0..3
	}{
		{StaggerAxisX, StaggerOdd, [4]bool{false, true, false, true}, [4]bool{}},
		{StaggerAxisX, StaggerEven, [4]bool{true, false, true, false}, [4]bool{}},
		{StaggerAxisY, StaggerOdd, [4]bool{}, [4]bool{false, true, false, true}},
		{StaggerAxisY, StaggerEven, [4]bool{}, [4]bool{true, false, true, false}},
	}
	for _, tt := range tests {
		t.Run(string(tt.axis)+"_"+string(tt.index), func(t *testing.T) {
			g := Geometry{Orientation: Hexagonal, StaggerAxis: tt.axis, StaggerIndex: tt.index}
			for i := range 4 {
				if got := g.DoStaggerX(i); got != tt.x[i] {
					t.Errorf("DoStaggerX(%d) = %v, want %v", i, got, tt.x[i])
				}
				if got := g.DoStaggerY(i); got != tt.y[i] {
					t.Errorf("DoStaggerY(%d) = %v, want %v", i, got, tt.y[i])
				}
			}
			// Parity holds for negative indices too.
			if g.DoStaggerX(-1) != g.DoStaggerX(1) || g.DoStaggerY(-2) != g.DoStaggerY(0) {
				t.Error("parity differs for negative indices")
			}
		})
	}
}

func TestPixelSize(t *testing.T) {
	tests := []struct {
		name string
		g    Geometry
		w, h float64
	}{
		{"orthogonal", Geometry{Orientation: Orthogonal, Width: 10, Height: 8, TileWidth: 16, TileHeight: 16}, 160, 128},
		{"isometric", Geometry{Orientation: Isometric, Width: 4, Height: 2, TileWidth: 64, TileHeight: 32}, 192, 96},
		{"hexagonal", Geometry{Orientation: Hexagonal, Width: 4, Height: 3, TileWidth: 14, TileHeight: 12, HexSideLength: 6}, 63, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.g.PixelSize()
			if w != tt.w || h != tt.h {
				t.Errorf("PixelSize() = %vx%v, want %vx%v", w, h, tt.w, tt.h)
			}
		})
	}
}
