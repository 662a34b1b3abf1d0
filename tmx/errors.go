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
	"fmt"
	"strings"
)

var (
	ErrMissingAttribute       = errors.New("tmx: missing required attribute")
	ErrInvalidAttribute       = errors.New("tmx: invalid attribute value")
	ErrUnexpectedElement      = errors.New("tmx: unexpected element")
	ErrUnsupportedOrientation = errors.New("tmx: unsupported orientation")
	ErrUnresolvedFile         = errors.New("tmx: unresolved external file")
	ErrDataSizeMismatch       = errors.New("tmx: invalid decoded data length")
	ErrInvalidEncoding        = errors.New("tmx: invalid encoding scheme")
	ErrUnsupportedCompression = errors.New("tmx: invalid compression method")
	ErrUnresolvedGID          = errors.New("tmx: invalid GID")
	ErrMalformedPoints        = errors.New("tmx: invalid points string")

	// Recoverable. These only ever show up wrapped in a Warning.
	ErrDuplicateTileID     = errors.New("tmx: duplicate tile id")
	ErrTileCountMismatch   = errors.New("tmx: tile count does not match tileset geometry")
	ErrUnknownPropertyType = errors.New("tmx: unknown property type")
)

// ParseError is returned for every failure that aborts a load. Line is
// zero when the failure was detected after the file was parsed.
type ParseError struct {
	File    string
	Line    int
	Element string
	Attr    string
	Err     error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.File)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	if e.Element != "" {
		fmt.Fprintf(&b, ": <%s>", e.Element)
	}
	if e.Attr != "" {
		fmt.Fprintf(&b, " %q", e.Attr)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Warning records an issue the loader recovered from.
type Warning struct {
	File string
	Line int
	Err  error
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", w.File, w.Line, w.Err)
	}
	return fmt.Sprintf("%s: %v", w.File, w.Err)
}
