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

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/salviati/tiledmap/tmx"
	"github.com/sirupsen/logrus"
)

var ErrNoTileLayer = errors.New("tmxinfo: no such tile layer")

type Options struct {
	Layer string
	At    *tmx.Point
}

type Reporter interface {
	Report(w io.Writer, m *tmx.Map, opts Options) error
}

// Do loads filename and writes r's report of it to w.
func Do(w io.Writer, r Reporter, filename string, opts Options, log logrus.FieldLogger) error {
	m, err := tmx.LoadFile(filename, tmx.WithLogger(log))
	if err != nil {
		return err
	}
	if err := r.Report(w, m, opts); err != nil {
		return err
	}
	if opts.At != nil {
		return reportAt(w, m, *opts.At)
	}
	return nil
}

type Summary struct{}

func (Summary) Report(w io.Writer, m *tmx.Map, _ Options) error {
	pw, ph := m.Geometry().PixelSize()
	fmt.Fprintf(w, "%s\n", m.Source)
	fmt.Fprintf(w, "  %s %dx%d tiles of %dx%d, %gx%g pixels", m.Orientation, m.Width, m.Height, m.TileWidth, m.TileHeight, pw, ph)
	if m.Orientation == tmx.Hexagonal || m.Orientation == tmx.Staggered {
		fmt.Fprintf(w, ", stagger %s/%s", m.StaggerAxis, m.StaggerIndex)
	}
	if m.Infinite {
		fmt.Fprint(w, ", infinite")
	}
	fmt.Fprintln(w)

	for _, ts := range m.Tilesets {
		kind := "spritesheet"
		if ts.IsCollection() {
			kind = "collection"
		}
		fmt.Fprintf(w, "  tileset %q gids %d-%d, %s, %d tiles\n", ts.Name, ts.FirstGID, ts.LastGID, kind, ts.TileCount)
	}

	for l := range m.AllLayers() {
		b := l.Base()
		fmt.Fprintf(w, "  %3d %-12s %q", b.Index, kindOf(l), b.Name)
		switch l := l.(type) {
		case *tmx.TileLayer:
			fmt.Fprintf(w, " %dx%d, %d tiles", l.Width, l.Height, countTiles(l))
		case *tmx.ObjectGroup:
			fmt.Fprintf(w, " %d objects", len(l.Objects))
		case *tmx.GroupLayer:
			fmt.Fprintf(w, " %d children", len(l.Layers))
		}
		if !b.Visible {
			fmt.Fprint(w, " hidden")
		}
		fmt.Fprintln(w)
	}

	for _, warning := range m.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
	return nil
}

type Grid struct{}

func (Grid) Report(w io.Writer, m *tmx.Map, opts Options) error {
	l, err := tileLayer(m, opts.Layer)
	if err != nil {
		return err
	}
	row := make([]byte, l.Width+1)
	row[l.Width] = '\n'
	for y := range l.Height {
		for x := range l.Width {
			row[x] = cellRune(l.At(l.X+x, l.Y+y))
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func cellRune(c tmx.Cell) byte {
	if c.Empty() {
		return '.'
	}
	return strconv.FormatUint(uint64(c.ID%36), 36)[0]
}

func reportAt(w io.Writer, m *tmx.Map, p tmx.Point) error {
	c := m.PixelToTile(p)
	center := m.TileToPixel(c)
	fmt.Fprintf(w, "pixel (%g,%g) is tile (%d,%d), centered at (%g,%g)\n", p.X, p.Y, c.X, c.Y, center.X, center.Y)
	for l := range m.AllLayers() {
		tl, ok := l.(*tmx.TileLayer)
		if !ok {
			continue
		}
		cell := tl.At(c.X, c.Y)
		if cell.Empty() {
			continue
		}
		ts := m.Tilesets[cell.Tileset]
		fmt.Fprintf(w, "  %q: gid %d, tileset %q id %d", tl.Name, cell.GID, ts.Name, cell.ID)
		if rec, ok := m.TileRecord(cell); ok && rec.Type != "" {
			fmt.Fprintf(w, " type %q", rec.Type)
		}
		fmt.Fprintln(w)
	}
	return nil
}
