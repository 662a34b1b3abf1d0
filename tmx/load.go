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
	"context"
	"fmt"
	"io"
	"io/fs"

	"github.com/sirupsen/logrus"
)

// readerName stands in for the file name of a map read through Read.
const readerName = "<reader>"

// Loader reads maps together with the external tilesets they reference. A
// Loader holds only configuration and may be shared between goroutines.
type Loader struct {
	fsys        fs.FS
	osPaths     bool
	log         logrus.FieldLogger
	probeImages bool
	concurrency int
}

func NewLoader(opts ...Option) *Loader {
	l := defaultLoader()
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile loads the TMX file at name.
func LoadFile(name string, opts ...Option) (*Map, error) {
	return NewLoader(opts...).Load(context.Background(), name)
}

// Read loads a map from r. External tilesets and images are resolved
// relative to the current directory of the configured file system.
func Read(r io.Reader, opts ...Option) (*Map, error) {
	return NewLoader(opts...).Read(context.Background(), r)
}

// Load reads the map at name and every tileset it references, breadth first
// and at most once per file. Either the returned map is complete or the
// error explains why not.
func (l *Loader) Load(ctx context.Context, name string) (*Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = l.canonical(name)
	b := newBuilder(l)
	b.m.Source = name
	if err := b.open(name, nil); err != nil {
		return nil, err
	}
	return b.finish(ctx)
}

// Read is like Load for a map that does not come from a file.
func (l *Loader) Read(ctx context.Context, r io.Reader) (*Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := newBuilder(l)
	if err := b.parse(readerName, nil, r); err != nil {
		return nil, err
	}
	return b.finish(ctx)
}

// drain parses queued external tilesets until none are left. Files found
// while parsing join the end of the queue.
func (b *builder) drain(ctx context.Context) error {
	for len(b.queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := b.queue[0]
		b.queue = b.queue[1:]

		tsx := &Tileset{Source: name}
		if err := b.open(name, tsx); err != nil {
			return err
		}
		b.fill(name, tsx)
	}
	return nil
}

func (b *builder) open(name string, tsx *Tileset) error {
	b.l.log.WithField("file", name).Debug("tmx: reading")
	f, err := b.l.fsys.Open(name)
	if err != nil {
		return &ParseError{File: name, Err: fmt.Errorf("%w: %w", ErrUnresolvedFile, err)}
	}
	defer f.Close()
	return b.parse(name, tsx, f)
}

func (b *builder) parse(name string, tsx *Tileset, r io.Reader) error {
	return newParser(b, name, tsx, r).run()
}

// fill copies a parsed external tileset into every placeholder that
// referenced it, keeping each placeholder's own first GID.
func (b *builder) fill(name string, tsx *Tileset) {
	for _, ts := range b.refs[name] {
		firstGID := ts.FirstGID
		*ts = *tsx
		ts.FirstGID = firstGID
		ts.Source = name
		if tsx.Image != nil {
			img := *tsx.Image
			ts.Image = &img
		}
		b.dirs[ts] = name
	}
	b.done[name] = true
}
