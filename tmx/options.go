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
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

type Option func(*Loader)

// WithFileSystem makes the loader read every file, external tilesets and
// probed images included, from fsys. Paths are then slash separated and
// relative to the root of fsys.
func WithFileSystem(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fsys = fsys
		l.osPaths = false
	}
}

// WithLogger sets where warnings and progress are logged. The default is the
// logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// WithImageProbe controls whether spritesheets whose <image> element lacks a
// size are opened to read their dimensions. It is on by default.
func WithImageProbe(probe bool) Option {
	return func(l *Loader) {
		l.probeImages = probe
	}
}

// WithConcurrency bounds the goroutines used by the finalize pass.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// osFS opens paths on the host file system as given, so that external files
// may live outside the map's directory.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) { return os.Open(name) }

// canonical returns the key under which a file is de-duplicated and opened.
func (l *Loader) canonical(name string) string {
	if !l.osPaths {
		return path.Clean(name)
	}
	if abs, err := filepath.Abs(name); err == nil {
		return abs
	}
	return filepath.Clean(name)
}

// resolve interprets ref relative to the file that declared it.
func (l *Loader) resolve(from, ref string) string {
	if !l.osPaths {
		if path.IsAbs(ref) {
			return l.canonical(ref[1:])
		}
		return l.canonical(path.Join(path.Dir(from), ref))
	}
	if filepath.IsAbs(ref) {
		return l.canonical(ref)
	}
	return l.canonical(filepath.Join(filepath.Dir(from), filepath.FromSlash(ref)))
}

func defaultLoader() *Loader {
	return &Loader{
		fsys:        osFS{},
		osPaths:     true,
		log:         logrus.StandardLogger(),
		probeImages: true,
		concurrency: runtime.GOMAXPROCS(0),
	}
}
