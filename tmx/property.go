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
	"image/color"
	"strconv"
)

type PropertyType uint8

const (
	PropertyString PropertyType = iota
	PropertyInt
	PropertyFloat
	PropertyBool
	PropertyColor
	PropertyFile
	PropertyObject
)

var propertyTypeNames = [...]string{
	PropertyString: "string",
	PropertyInt:    "int",
	PropertyFloat:  "float",
	PropertyBool:   "bool",
	PropertyColor:  "color",
	PropertyFile:   "file",
	PropertyObject: "object",
}

func (t PropertyType) String() string {
	if int(t) < len(propertyTypeNames) {
		return propertyTypeNames[t]
	}
	return "PropertyType(" + strconv.Itoa(int(t)) + ")"
}

func parsePropertyType(s string) (PropertyType, bool) {
	if s == "" {
		return PropertyString, true
	}
	for i, name := range propertyTypeNames {
		if name == s {
			return PropertyType(i), true
		}
	}
	return PropertyString, false
}

// Property is a typed custom property. The typed accessors fail closed: they
// report false unless the property was declared with the matching type.
type Property struct {
	Name  string
	Type  PropertyType
	Value string // As written in the document.

	num   int64
	float float64
	flag  bool
	color color.NRGBA
}

// NewProperty parses value according to typ. An empty value yields the zero
// value of the type.
func NewProperty(name string, typ PropertyType, value string) (Property, error) {
	p := Property{Name: name, Type: typ, Value: value}
	if value == "" {
		return p, nil
	}
	var err error
	switch typ {
	case PropertyInt, PropertyObject:
		p.num, err = strconv.ParseInt(value, 10, 64)
	case PropertyFloat:
		p.float, err = strconv.ParseFloat(value, 64)
	case PropertyBool:
		p.flag, err = strconv.ParseBool(value)
	case PropertyColor:
		p.color, err = ParseColor(value)
	}
	if err != nil {
		return Property{}, fmt.Errorf("%w: property %q of type %s: %q", ErrInvalidAttribute, name, typ, value)
	}
	return p, nil
}

func (p Property) String() string { return p.Value }

func (p Property) AsString() (string, bool) {
	if p.Type != PropertyString {
		return "", false
	}
	return p.Value, true
}

func (p Property) AsInt() (int, bool) {
	if p.Type != PropertyInt {
		return 0, false
	}
	return int(p.num), true
}

func (p Property) AsFloat() (float64, bool) {
	if p.Type != PropertyFloat {
		return 0, false
	}
	return p.float, true
}

func (p Property) AsBool() (bool, bool) {
	if p.Type != PropertyBool {
		return false, false
	}
	return p.flag, true
}

func (p Property) AsColor() (color.NRGBA, bool) {
	if p.Type != PropertyColor {
		return color.NRGBA{}, false
	}
	return p.color, true
}

// AsFile returns the path as written, relative to the file that declared it.
func (p Property) AsFile() (string, bool) {
	if p.Type != PropertyFile {
		return "", false
	}
	return p.Value, true
}

// AsObject returns the referenced object id; 0 means no object.
func (p Property) AsObject() (int, bool) {
	if p.Type != PropertyObject {
		return 0, false
	}
	return int(p.num), true
}

// Properties is an ordered property bag. Lookups return the first property
// with a matching name.
type Properties []Property

func (ps Properties) Get(name string) (Property, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

func (ps Properties) String(name string) (string, bool) {
	p, ok := ps.Get(name)
	if !ok {
		return "", false
	}
	return p.AsString()
}

func (ps Properties) Int(name string) (int, bool) {
	p, ok := ps.Get(name)
	if !ok {
		return 0, false
	}
	return p.AsInt()
}

func (ps Properties) Float(name string) (float64, bool) {
	p, ok := ps.Get(name)
	if !ok {
		return 0, false
	}
	return p.AsFloat()
}

func (ps Properties) Bool(name string) (bool, bool) {
	p, ok := ps.Get(name)
	if !ok {
		return false, false
	}
	return p.AsBool()
}

func (ps Properties) Color(name string) (color.NRGBA, bool) {
	p, ok := ps.Get(name)
	if !ok {
		return color.NRGBA{}, false
	}
	return p.AsColor()
}

func (ps Properties) File(name string) (string, bool) {
	p, ok := ps.Get(name)
	if !ok {
		return "", false
	}
	return p.AsFile()
}

func (ps Properties) Object(name string) (int, bool) {
	p, ok := ps.Get(name)
	if !ok {
		return 0, false
	}
	return p.AsObject()
}
