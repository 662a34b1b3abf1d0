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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/salviati/tiledmap/tmx"
	"github.com/sirupsen/logrus/hooks/test"
)

const doc = `<map version="1.10" orientation="orthogonal" width="3" height="2" tilewidth="16" tileheight="16">
 <tileset firstgid="1" name="t" tilewidth="16" tileheight="16" tilecount="40" columns="8">
  <image source="t.png" width="128" height="80"/>
  <tile id="11" type="door"/>
 </tileset>
 <layer id="1" name="floor" width="3" height="2">
  <data encoding="csv">1,0,12,0,40,2</data>
 </layer>
 <objectgroup id="2" name="things" visible="0"/>
</map>`

func TestReports(t *testing.T) {
	log, _ := test.NewNullLogger()
	m, err := tmx.Read(strings.NewReader(doc), tmx.WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}

	var grid bytes.Buffer
	if err := (Grid{}).Report(&grid, m, Options{}); err != nil {
		t.Fatal(err)
	}
	if want := "0.b\n.31\n"; grid.String() != want {
		t.Errorf("grid = %q, want %q", grid.String(), want)
	}

	var summary bytes.Buffer
	if err := (Summary{}).Report(&summary, m, Options{}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"orthogonal 3x2 tiles of 16x16, 48x32 pixels",
		`tileset "t" gids 1-40, spritesheet, 40 tiles`,
		`"floor"`,
		"4 tiles",
		"0 objects hidden",
	} {
		if !strings.Contains(summary.String(), want) {
			t.Errorf("summary lacks %q:\n%s", want, summary.String())
		}
	}

	var at bytes.Buffer
	if err := reportAt(&at, m, tmx.Point{X: 40, Y: 4}); err != nil {
		t.Fatal(err)
	}
	if want := `"floor": gid 12, tileset "t" id 11 type "door"`; !strings.Contains(at.String(), want) {
		t.Errorf("at report lacks %q:\n%s", want, at.String())
	}

	if err := (Grid{}).Report(&grid, m, Options{Layer: "nope"}); !errors.Is(err, ErrNoTileLayer) {
		t.Errorf("error = %v, want %v", err, ErrNoTileLayer)
	}
}

func TestDo(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "m.tmx")
	if err := os.WriteFile(name, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	log, _ := test.NewNullLogger()

	var out bytes.Buffer
	p := tmx.Point{X: 1, Y: 17}
	if err := Do(&out, Grid{}, name, Options{At: &p}, log); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "0.b\n.31\npixel (1,17) is tile (0,1)") {
		t.Errorf("output = %q", out.String())
	}

	if err := Do(&out, Grid{}, filepath.Join(dir, "missing.tmx"), Options{}, log); !errors.Is(err, tmx.ErrUnresolvedFile) {
		t.Errorf("error = %v, want %v", err, tmx.ErrUnresolvedFile)
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    tmx.Point
		wantErr bool
	}{
		{"10,20", tmx.Point{X: 10, Y: 20}, false},
		{" -3.5 , 7 ", tmx.Point{X: -3.5, Y: 7}, false},
		{"10", tmx.Point{}, true},
		{"a,1", tmx.Point{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoint(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parsePoint(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
