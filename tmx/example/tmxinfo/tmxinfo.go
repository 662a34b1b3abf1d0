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

/*
  Prints what a TMX map holds.

  Usage:

    tmxinfo [-format summary|grid] [-layer name] [-at x,y] file.tmx...

  The summary format lists the map's geometry, its tilesets with their GID
  ranges, and its layers in draw order. The grid format draws one tile layer
  as text, one character per cell: '.' for an empty cell, otherwise the
  tileset-local id in base 36 (modulo 36).

  With -at, the pixel position x,y is converted to a tile coordinate and the
  cells of every tile layer at that coordinate are listed.

  LOG_LEVEL and LOG_FORMAT (text or json) configure the log written to
  standard error.
*/
package main

import (
	"flag"
	"os"
)

var (
	formatName = flag.String("format", "summary", "Output format (can be one of: summary, grid)")
	layerName  = flag.String("layer", "", "Tile layer drawn by the grid format; the first tile layer when empty")
	at         = flag.String("at", "", "Pixel position x,y to convert to a tile coordinate")
	reporters  = map[string]Reporter{"summary": Summary{}, "grid": Grid{}}
)

func main() {
	flag.Parse()
	log := newLogger()

	r, ok := reporters[*formatName]
	if !ok {
		log.Fatalf("No such format %q", *formatName)
	}
	opts := Options{Layer: *layerName}
	if *at != "" {
		p, err := parsePoint(*at)
		if err != nil {
			log.Fatal(err)
		}
		opts.At = &p
	}

	failed := false
	for _, filename := range flag.Args() {
		if err := Do(os.Stdout, r, filename, opts, log); err != nil {
			log.WithField("file", filename).Error(err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
