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
	"encoding/xml"
	"fmt"
	"image/color"
	"strconv"
)

// attrs reads the attributes of one start element. The first failure is kept
// in err and later reads return defaults, so callers check err once.
type attrs struct {
	p    *parser
	el   string
	list []xml.Attr
	err  error
}

func (p *parser) attrs(se xml.StartElement) *attrs {
	return &attrs{p: p, el: se.Name.Local, list: se.Attr}
}

func (a *attrs) lookup(name string) (string, bool) {
	for _, attr := range a.list {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

func (a *attrs) has(name string) bool {
	_, ok := a.lookup(name)
	return ok
}

func (a *attrs) fail(name string, err error) {
	if a.err == nil {
		a.err = a.p.errorf(a.el, name, err)
	}
}

func (a *attrs) invalid(name, value, want string) {
	a.fail(name, fmt.Errorf("%w: %q is not %s", ErrInvalidAttribute, value, want))
}

func (a *attrs) str(name, def string) string {
	if v, ok := a.lookup(name); ok {
		return v
	}
	return def
}

func (a *attrs) required(name string) (string, bool) {
	v, ok := a.lookup(name)
	if !ok {
		a.fail(name, ErrMissingAttribute)
	}
	return v, ok
}

func (a *attrs) requiredStr(name string) string {
	v, _ := a.required(name)
	return v
}

func (a *attrs) parseInt(name, v string) int {
	i, err := strconv.Atoi(v)
	if err != nil {
		a.invalid(name, v, "an integer")
		return 0
	}
	return i
}

func (a *attrs) int(name string, def int) int {
	v, ok := a.lookup(name)
	if !ok {
		return def
	}
	return a.parseInt(name, v)
}

func (a *attrs) requiredInt(name string) int {
	v, ok := a.required(name)
	if !ok {
		return 0
	}
	return a.parseInt(name, v)
}

// atLeast passes v through if it is not below lo.
func (a *attrs) atLeast(name string, v, lo int) int {
	if v < lo {
		a.invalid(name, strconv.Itoa(v), fmt.Sprintf("at least %d", lo))
		return lo
	}
	return v
}

func (a *attrs) parseUint(name, v string) uint32 {
	u, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		a.invalid(name, v, "an unsigned 32 bit integer")
		return 0
	}
	return uint32(u)
}

func (a *attrs) uint(name string, def uint32) uint32 {
	v, ok := a.lookup(name)
	if !ok {
		return def
	}
	return a.parseUint(name, v)
}

func (a *attrs) requiredUint(name string) uint32 {
	v, ok := a.required(name)
	if !ok {
		return 0
	}
	return a.parseUint(name, v)
}

func (a *attrs) float(name string, def float64) float64 {
	v, ok := a.lookup(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		a.invalid(name, v, "a number")
		return def
	}
	return f
}

// bool accepts Tiled's "0"/"1" as well as "true"/"false".
func (a *attrs) bool(name string, def bool) bool {
	v, ok := a.lookup(name)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		a.invalid(name, v, "a boolean")
		return def
	}
	return b
}

func (a *attrs) color(name string) color.NRGBA {
	v, ok := a.lookup(name)
	if !ok || v == "" {
		return color.NRGBA{}
	}
	c, err := ParseColor(v)
	if err != nil {
		a.fail(name, err)
	}
	return c
}

// oneOf returns the attribute value if it is one of the allowed values.
func (a *attrs) oneOf(name, def string, allowed ...string) string {
	v := a.str(name, def)
	for _, s := range allowed {
		if v == s {
			return v
		}
	}
	a.invalid(name, v, fmt.Sprintf("one of %q", allowed))
	return def
}
