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
	"image"
	"io/fs"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Atlas is the result of slicing a spritesheet into tiles.
type Atlas struct {
	Columns int
	Rows    int
	Rects   []image.Rectangle // Row major, Columns*Rows entries.
}

// SliceAtlas cuts a spritesheet into tile rectangles, row major starting at
// the top-left margin. Only whole tiles that fit inside the margins count.
func SliceAtlas(imageWidth, imageHeight, tileWidth, tileHeight, margin, spacing int) Atlas {
	if tileWidth <= 0 || tileHeight <= 0 {
		return Atlas{}
	}
	columns := fitTiles(imageWidth, tileWidth, margin, spacing)
	rows := fitTiles(imageHeight, tileHeight, margin, spacing)

	rects := make([]image.Rectangle, 0, columns*rows)
	y := margin
	for row := 0; row < rows; row++ {
		x := margin
		for col := 0; col < columns; col++ {
			rects = append(rects, image.Rect(x, y, x+tileWidth, y+tileHeight))
			x += tileWidth + spacing
		}
		y += tileHeight + spacing
	}
	return Atlas{Columns: columns, Rows: rows, Rects: rects}
}

// fitTiles counts the tiles of the given size that fit along one axis.
func fitTiles(length, tile, margin, spacing int) int {
	if tile <= 0 || tile+spacing <= 0 {
		return 0
	}
	usable := length - 2*margin + spacing
	if usable < tile+spacing {
		return 0
	}
	return usable / (tile + spacing)
}

// probeImageSize reads just enough of an image file to learn its dimensions.
func probeImageSize(fsys fs.FS, name string) (width, height int, err error) {
	f, err := fsys.Open(name)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", name, err)
	}
	return cfg.Width, cfg.Height, nil
}
