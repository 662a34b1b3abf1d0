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
	"cmp"
	"context"
	"fmt"
	"image"
	"maps"
	"slices"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// finish resolves what parsing left open. Tile grids are committed last, once
// every tileset and its GID range are known.
func (b *builder) finish(ctx context.Context) (*Map, error) {
	if err := b.drain(ctx); err != nil {
		return nil, err
	}
	m := b.m

	for _, name := range slices.Sorted(maps.Keys(b.refs)) {
		if !b.done[name] {
			return nil, &ParseError{File: name, Err: ErrUnresolvedFile}
		}
	}

	slices.SortStableFunc(m.Tilesets, func(a, c *Tileset) int {
		return cmp.Compare(a.FirstGID, c.FirstGID)
	})

	if err := b.sliceAtlases(ctx); err != nil {
		return nil, err
	}
	b.assignLastGIDs()
	if err := b.commitLayers(ctx); err != nil {
		return nil, err
	}
	if err := b.checkObjects(); err != nil {
		return nil, err
	}

	b.l.log.WithFields(logrus.Fields{
		"file":     m.Source,
		"tilesets": len(m.Tilesets),
		"layers":   b.index,
		"warnings": len(m.Warnings),
	}).Debug("tmx: map loaded")
	return m, nil
}

// run calls fn for 0 <= i < n on at most concurrency goroutines. Every call
// runs to completion and the error with the lowest index is returned, so the
// outcome does not depend on scheduling.
func (b *builder) run(ctx context.Context, n int, fn func(i int) error) error {
	errs := make([]error, n)
	var g errgroup.Group
	g.SetLimit(b.l.concurrency)
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = fn(i)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) sliceAtlases(ctx context.Context) error {
	tilesets := b.m.Tilesets
	warnings := make([][]Warning, len(tilesets))
	err := b.run(ctx, len(tilesets), func(i int) error {
		ts := tilesets[i]
		if ts.IsCollection() {
			return nil
		}
		warnings[i] = b.sliceAtlas(ts)
		return nil
	})
	if err != nil {
		return err
	}
	for _, ws := range warnings {
		for _, w := range ws {
			b.warn(w)
		}
	}
	return nil
}

// sliceAtlas fills ts.Rects. The spritesheet's size comes from the <image>
// element, from the image file header, or as a last resort from the declared
// columns and tile count.
func (b *builder) sliceAtlas(ts *Tileset) []Warning {
	var warnings []Warning
	file := b.dirs[ts]
	warn := func(format string, args ...any) {
		warnings = append(warnings, Warning{File: file, Err: fmt.Errorf(format, args...)})
	}

	img := ts.Image
	if (img.Width <= 0 || img.Height <= 0) && b.l.probeImages {
		name := b.l.resolve(file, img.Source)
		w, h, err := probeImageSize(b.l.fsys, name)
		if err != nil {
			warn("tileset %q: image size unknown: %v", ts.Name, err)
		} else {
			img.Width, img.Height = w, h
		}
	}

	if img.Width <= 0 || img.Height <= 0 {
		ts.Rects = declaredRects(ts)
		return warnings
	}

	atlas := SliceAtlas(img.Width, img.Height, ts.TileWidth, ts.TileHeight, ts.Margin, ts.Spacing)
	if ts.TileCount != 0 && ts.TileCount != len(atlas.Rects) {
		warn("%w: tileset %q declares %d tiles, image holds %d", ErrTileCountMismatch, ts.Name, ts.TileCount, len(atlas.Rects))
	}
	if ts.Columns != 0 && ts.Columns != atlas.Columns {
		warn("%w: tileset %q declares %d columns, image holds %d", ErrTileCountMismatch, ts.Name, ts.Columns, atlas.Columns)
	}
	ts.TileCount = len(atlas.Rects)
	ts.Columns = atlas.Columns
	ts.Rects = atlas.Rects
	return warnings
}

// declaredRects slices an atlas of unknown size from the declared columns
// and tile count.
func declaredRects(ts *Tileset) []image.Rectangle {
	if ts.Columns <= 0 || ts.TileCount <= 0 {
		return nil
	}
	rows := (ts.TileCount + ts.Columns - 1) / ts.Columns
	width := 2*ts.Margin + ts.Columns*(ts.TileWidth+ts.Spacing) - ts.Spacing
	height := 2*ts.Margin + rows*(ts.TileHeight+ts.Spacing) - ts.Spacing
	atlas := SliceAtlas(width, height, ts.TileWidth, ts.TileHeight, ts.Margin, ts.Spacing)
	return atlas.Rects[:min(ts.TileCount, len(atlas.Rects))]
}

// assignLastGIDs bounds every tileset's GID range. A tileset of unknown size
// extends to the next tileset's first GID.
func (b *builder) assignLastGIDs() {
	tilesets := b.m.Tilesets
	for i, ts := range tilesets {
		if n := ts.tileCount(); n > 0 {
			ts.LastGID = ts.FirstGID + GID(n) - 1
			continue
		}
		if i+1 < len(tilesets) {
			ts.LastGID = tilesets[i+1].FirstGID - 1
		}
	}
}

func (b *builder) commitLayers(ctx context.Context) error {
	return b.run(ctx, len(b.raw), func(i int) error {
		return b.commit(b.raw[i])
	})
}

// commit turns the buffered GIDs of one layer into cells.
func (b *builder) commit(raw *rawLayer) error {
	tl := raw.layer
	gids := raw.gids
	if b.m.Infinite || raw.chunks != nil {
		gids = assembleChunks(tl, raw.chunks)
	}

	cells := make([]Cell, len(gids))
	for i, gid := range gids {
		c, err := b.m.DecodeGID(gid)
		if err != nil {
			x, y := tl.X+i%tl.Width, tl.Y+i/tl.Width
			return &ParseError{
				File:    raw.file,
				Line:    raw.line,
				Element: "data",
				Err:     fmt.Errorf("%w: %d in layer %q at (%d,%d)", err, gid.ID(), tl.Name, x, y),
			}
		}
		cells[i] = c
	}
	tl.Cells = cells
	return nil
}

// checkObjects resolves the gid of every tile object.
func (b *builder) checkObjects() error {
	for _, raw := range b.objects {
		o := raw.object
		if _, err := b.m.DecodeGID(o.GID); err != nil {
			return &ParseError{
				File:    raw.file,
				Line:    raw.line,
				Element: "object",
				Attr:    "gid",
				Err:     fmt.Errorf("%w: %d in object %d", err, o.GID.ID(), o.ID),
			}
		}
	}
	return nil
}

// assembleChunks sizes tl to the union of the chunks and lays them out in one
// dense grid.
func assembleChunks(tl *TileLayer, chunks []rawChunk) []GID {
	if len(chunks) == 0 {
		tl.X, tl.Y, tl.Width, tl.Height = 0, 0, 0, 0
		return nil
	}

	minX, minY := chunks[0].x, chunks[0].y
	maxX, maxY := minX+chunks[0].width, minY+chunks[0].height
	for _, c := range chunks[1:] {
		minX = min(minX, c.x)
		minY = min(minY, c.y)
		maxX = max(maxX, c.x+c.width)
		maxY = max(maxY, c.y+c.height)
	}
	tl.X, tl.Y = minX, minY
	tl.Width, tl.Height = maxX-minX, maxY-minY

	gids := make([]GID, tl.Width*tl.Height)
	for _, c := range chunks {
		for row := range c.height {
			dst := (c.y-minY+row)*tl.Width + c.x - minX
			copy(gids[dst:dst+c.width], c.gids[row*c.width:(row+1)*c.width])
		}
	}
	return gids
}
