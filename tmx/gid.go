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

const (
	GIDHorizontalFlip = 0x80000000
	GIDVerticalFlip   = 0x40000000
	GIDDiagonalFlip   = 0x20000000
	GIDFlip           = GIDHorizontalFlip | GIDVerticalFlip | GIDDiagonalFlip
	GIDMask           = ^uint32(GIDFlip)
)

// GID is a global tile id as stored in layer data: the low 29 bits identify
// the tile across all tilesets of a map, the high 3 bits are flip flags.
type GID uint32

// Flip holds the orientation flags of a placed tile.
type Flip uint8

const (
	FlipHorizontal Flip = 1 << iota
	FlipVertical
	FlipDiagonal
)

func (f Flip) Horizontal() bool { return f&FlipHorizontal != 0 }
func (f Flip) Vertical() bool { return f&FlipVertical != 0 }
func (f Flip) Diagonal() bool { return f&FlipDiagonal != 0 }

// ID strips the flip flags.
func (g GID) ID() GID {
	if g == 0 {
		return 0
	}
	return g & GID(GIDMask)
}

func (g GID) Flip() Flip {
	var f Flip
	if g&GIDHorizontalFlip != 0 {
		f |= FlipHorizontal
	}
	if g&GIDVerticalFlip != 0 {
		f |= FlipVertical
	}
	if g&GIDDiagonalFlip != 0 {
		f |= FlipDiagonal
	}
	return f
}

// Empty reports whether g refers to no tile. A GID carrying only flip flags
// is empty as well.
func (g GID) Empty() bool { return g.ID() == 0 }

// Cell is one placed tile of a TileLayer. Flip flags live here rather than in
// the TileRecord, since the same tile is placed with different orientations
// across a map.
type Cell struct {
	GID     GID    // Flag free; 0 for an empty cell.
	Tileset int    // Index into Map.Tilesets.
	ID      uint32 // Tileset-local id.
	Flip    Flip
}

func (c Cell) Empty() bool { return c.GID == 0 }
