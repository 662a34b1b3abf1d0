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
	"errors"
	"image/color"
	"testing"
)

func TestNewProperty(t *testing.T) {
	tests := []struct {
		name    string
		typ     PropertyType
		value   string
		check   func(Property) bool
		wantErr bool
	}{
		{"string", PropertyString, "hello", func(p Property) bool { v, ok := p.AsString(); return ok && v == "hello" }, false},
		{"int", PropertyInt, "-42", func(p Property) bool { v, ok := p.AsInt(); return ok && v == -42 }, false},
		{"float", PropertyFloat, "2.5", func(p Property) bool { v, ok := p.AsFloat(); return ok && v == 2.5 }, false},
		{"bool", PropertyBool, "true", func(p Property) bool { v, ok := p.AsBool(); return ok && v }, false},
		{"color", PropertyColor, "#80ff0000", func(p Property) bool {
			v, ok := p.AsColor()
			return ok && v == color.NRGBA{R: 0xff, A: 0x80}
		}, false},
		{"file", PropertyFile, "../sound/hit.wav", func(p Property) bool { v, ok := p.AsFile(); return ok && v == "../sound/hit.wav" }, false},
		{"object", PropertyObject, "12", func(p Property) bool { v, ok := p.AsObject(); return ok && v == 12 }, false},
		{"empty int", PropertyInt, "", func(p Property) bool { v, ok := p.AsInt(); return ok && v == 0 }, false},
		{"bad int", PropertyInt, "twelve", nil, true},
		{"bad bool", PropertyBool, "yes", nil, true},
		{"bad color", PropertyColor, "#12345", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProperty(tt.name, tt.typ, tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAttribute) {
					t.Fatalf("error = %v, want %v", err, ErrInvalidAttribute)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !tt.check(p) {
				t.Errorf("unexpected value for %+v", p)
			}
		})
	}
}

func TestPropertyAccessorsFailClosed(t *testing.T) {
	p, err := NewProperty("speed", PropertyInt, "3")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.AsString(); ok {
		t.Error("AsString succeeded on an int property")
	}
	if _, ok := p.AsFloat(); ok {
		t.Error("AsFloat succeeded on an int property")
	}
	if _, ok := p.AsBool(); ok {
		t.Error("AsBool succeeded on an int property")
	}
	if _, ok := p.AsObject(); ok {
		t.Error("AsObject succeeded on an int property")
	}
}

func TestProperties(t *testing.T) {
	must := func(p Property, err error) Property {
		if err != nil {
			t.Fatal(err)
		}
		return p
	}
	ps := Properties{
		must(NewProperty("name", PropertyString, "door")),
		must(NewProperty("locked", PropertyBool, "true")),
		must(NewProperty("hp", PropertyInt, "7")),
	}

	if v, ok := ps.String("name"); !ok || v != "door" {
		t.Errorf("String(name) = %q, %v", v, ok)
	}
	if v, ok := ps.Bool("locked"); !ok || !v {
		t.Errorf("Bool(locked) = %v, %v", v, ok)
	}
	if v, ok := ps.Int("hp"); !ok || v != 7 {
		t.Errorf("Int(hp) = %v, %v", v, ok)
	}
	if _, ok := ps.Int("name"); ok {
		t.Error("Int(name) succeeded on a string property")
	}
	if _, ok := ps.Get("missing"); ok {
		t.Error("Get(missing) succeeded")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ff8000", color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, false},
		{"ff8000", color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, false},
		{"#40102030", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"#fff", color.NRGBA{}, true},
		{"#gg0000", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
