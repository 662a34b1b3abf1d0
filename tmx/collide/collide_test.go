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

package collide

import (
	"errors"
	"strings"
	"testing"

	"github.com/salviati/tiledmap/tmx"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/solarlune/resolv"
)

const level = `<map version="1.10" orientation="orthogonal" width="4" height="3" tilewidth="16" tileheight="16">
 <tileset firstgid="1" name="t" tilewidth="16" tileheight="16" tilecount="4" columns="2">
  <image source="t.png" width="32" height="32"/>
  <tile id="1" type="ledge">
   <objectgroup draworder="index">
    <object id="1" x="0" y="0" width="16" height="4"/>
   </objectgroup>
  </tile>
 </tileset>
 <layer id="1" name="background" width="4" height="3">
  <data encoding="csv">1,1,1,1,1,1,1,1,1,1,1,1</data>
 </layer>
 <layer id="2" name="walls" width="4" height="3">
  <properties>
   <property name="collides" type="bool" value="true"/>
  </properties>
  <data encoding="csv">
1,0,0,1,
0,0,0,2,
3,3,3,3
</data>
 </layer>
 <objectgroup id="3" name="triggers" offsetx="2" offsety="0">
  <properties>
   <property name="collides" type="bool" value="true"/>
  </properties>
  <object id="1" type="spikes" x="16" y="16" width="32" height="8"/>
  <object id="2" name="marker" x="8" y="8"><point/></object>
  <object id="3" x="40" y="0" visible="0" width="8" height="8"/>
 </objectgroup>
</map>`

func load(t *testing.T, doc string) *tmx.Map {
	t.Helper()
	log, _ := test.NewNullLogger()
	m, err := tmx.Read(strings.NewReader(doc), tmx.WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

type rect struct{ x, y, w, h float64 }

func TestObjects(t *testing.T) {
	m := load(t, level)
	objects, err := Objects(m)
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		r    rect
		tags []string
	}{
		{rect{0, 0, 16, 16}, []string{TagSolid}},
		{rect{48, 0, 16, 16}, []string{TagSolid}},
		{rect{48, 16, 16, 4}, []string{TagSolid, "ledge"}},
		{rect{0, 32, 16, 16}, []string{TagSolid}},
		{rect{16, 32, 16, 16}, []string{TagSolid}},
		{rect{32, 32, 16, 16}, []string{TagSolid}},
		{rect{48, 32, 16, 16}, []string{TagSolid}},
		{rect{18, 16, 32, 8}, []string{TagSolid, "spikes"}},
	}
	if len(objects) != len(want) {
		t.Fatalf("got %d objects, want %d", len(objects), len(want))
	}
	for i, o := range objects {
		got := rect{o.X, o.Y, o.W, o.H}
		if got != want[i].r {
			t.Errorf("object %d = %v, want %v", i, got, want[i].r)
		}
		if !o.HasTags(want[i].tags...) {
			t.Errorf("object %d lacks tags %v", i, want[i].tags)
		}
	}

	if c, ok := objects[0].Data.(tmx.Cell); !ok || c.GID != 1 {
		t.Errorf("tile object data = %#v", objects[0].Data)
	}
	if c, ok := objects[2].Data.(tmx.Cell); !ok || c.ID != 1 {
		t.Errorf("ledge object data = %#v", objects[2].Data)
	}
	if o, ok := objects[7].Data.(*tmx.Object); !ok || o.ID != 1 {
		t.Errorf("map object data = %#v", objects[7].Data)
	}
}

func TestNewSpace(t *testing.T) {
	m := load(t, level)
	space, err := NewSpace(m)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		r     rect
		solid bool
	}{
		{"on a wall tile", rect{2, 2, 4, 4}, true},
		{"open floor", rect{20, 2, 8, 8}, false},
		{"on the ledge", rect{50, 17, 4, 2}, true},
		{"left gap", rect{4, 20, 8, 8}, false},
		{"on the spikes", rect{30, 18, 4, 4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mover := resolv.NewObject(tt.r.x, tt.r.y, tt.r.w, tt.r.h)
			space.Add(mover)
			defer space.Remove(mover)
			if got := mover.Check(0, 0, TagSolid) != nil; got != tt.solid {
				t.Errorf("collides = %v, want %v", got, tt.solid)
			}
		})
	}
}

func TestWithProperty(t *testing.T) {
	m := load(t, strings.ReplaceAll(level, `name="collides"`, `name="solid"`))
	objects, err := Objects(m)
	if err != nil {
		t.Fatal(err)
	}
	if len(objects) != 0 {
		t.Errorf("got %d objects without the default property", len(objects))
	}
	objects, err = Objects(m, WithProperty("solid"))
	if err != nil {
		t.Fatal(err)
	}
	if len(objects) != 8 {
		t.Errorf("got %d objects, want 8", len(objects))
	}
}

func TestUnsupportedMaps(t *testing.T) {
	tests := []struct {
		name    string
		old     string
		new     string
		wantErr error
	}{
		{"isometric", `orientation="orthogonal"`, `orientation="isometric"`, tmx.ErrUnsupportedOrientation},
		{"infinite", `orientation="orthogonal"`, `orientation="orthogonal" infinite="1"`, ErrInfiniteMap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := load(t, strings.Replace(level, tt.old, tt.new, 1))
			if _, err := NewSpace(m); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
