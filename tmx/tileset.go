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
	"image"
	"image/color"
	"time"
)

type Image struct {
	Source string // As written, relative to the declaring file.
	Format string
	Trans  *color.NRGBA // Transparent color key, if any.
	Width  int
	Height int
}

type Tileset struct {
	FirstGID GID
	LastGID  GID
	Source   string // Canonical path of the TSX file; empty for inline tilesets.

	Name       string
	Class      string
	TileWidth  int
	TileHeight int
	Spacing    int
	Margin     int
	TileCount  int
	Columns    int
	TileOffset Coord

	// Image is nil for collection-of-images tilesets, whose tiles each carry
	// their own image.
	Image *Image

	Properties Properties
	Tiles      map[uint32]*TileRecord

	// Rects holds the atlas rectangle of each tile, indexed by local id.
	Rects []image.Rectangle
}

// IsCollection reports whether every tile brings its own image.
func (ts *Tileset) IsCollection() bool { return ts.Image == nil }

// Contains reports whether the flag free gid belongs to ts.
func (ts *Tileset) Contains(gid GID) bool {
	id := gid.ID()
	return id >= ts.FirstGID && (ts.LastGID == 0 || id <= ts.LastGID)
}

// TileRect returns the source rectangle of a tile: its atlas slice for
// spritesheet tilesets, or the bounds of the tile's own image for
// collections.
func (ts *Tileset) TileRect(id uint32) (image.Rectangle, bool) {
	if ts.IsCollection() {
		t, ok := ts.Tiles[id]
		if !ok || t.Image == nil {
			return image.Rectangle{}, false
		}
		return image.Rect(0, 0, t.Image.Width, t.Image.Height), true
	}
	if int(id) >= len(ts.Rects) {
		return image.Rectangle{}, false
	}
	return ts.Rects[id], true
}

// tileCount is the number of ids the tileset spans, used for LastGID.
func (ts *Tileset) tileCount() int {
	if !ts.IsCollection() {
		return ts.TileCount
	}
	n := ts.TileCount
	for id := range ts.Tiles {
		if int(id) >= n {
			n = int(id) + 1
		}
	}
	return n
}

type Frame struct {
	TileID   uint32
	Duration time.Duration
}

type TileRecord struct {
	ID          uint32
	Type        string
	Probability float64
	Image       *Image
	Animation   []Frame
	ObjectGroup *ObjectGroup // Collision shapes drawn in the tile editor.
	Properties  Properties
}
