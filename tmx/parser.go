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
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/ianaindex"
)

type frameKind uint8

const (
	frameMap frameKind = iota
	frameTileset
	frameTile
	frameLayer
	frameObject
	frameProperties
	frameData
	frameChunk
)

// frame is the parser state for one open entity. The frame on top of the
// stack is the entity nested elements apply to.
type frame struct {
	kind    frameKind
	tileset *Tileset
	tile    *TileRecord
	layer   Layer
	object  *Object
	data    *pendingData
	chunk   *rawChunk

	// props is where a <properties> block nested in this entity lands. For a
	// frameProperties frame it is the target of the pending bag.
	props *Properties
	bag   Properties
}

type element struct {
	name   string
	pushed bool // Whether the element opened a frame.
}

type pendingProperty struct {
	name     string
	typ      PropertyType
	value    string
	hasValue bool
}

type pendingData struct {
	layer       *TileLayer
	encoding    string
	compression string
	gids        []GID // <tile> children, xml encoding only.
	chunks      []rawChunk
	line        int
}

// parser turns the XML token stream of one file into model entities. All
// parsers of a load share one builder.
type parser struct {
	b    *builder
	file string
	tsx  *Tileset // Set when parsing an external tileset file.
	dec  *xml.Decoder

	elems  []element
	frames []*frame
	skip   int // Depth inside a subtree being ignored.
	root   bool
	text   bytes.Buffer
	prop   *pendingProperty
}

func newParser(b *builder, file string, tsx *Tileset, r io.Reader) *parser {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	return &parser{b: b, file: file, tsx: tsx, dec: dec}
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

func (p *parser) line() int {
	line, _ := p.dec.InputPos()
	return line
}

func (p *parser) errorf(el, attr string, err error) error {
	return &ParseError{File: p.file, Line: p.line(), Element: el, Attr: attr, Err: err}
}

func (p *parser) warn(err error) {
	w := Warning{File: p.file, Line: p.line(), Err: err}
	p.b.warn(w)
}

func (p *parser) run() error {
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			var syntax *xml.SyntaxError
			if errors.As(err, &syntax) {
				return &ParseError{File: p.file, Line: syntax.Line, Err: err}
			}
			return p.errorf("", "", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := p.start(t); err != nil {
				return err
			}
		case xml.EndElement:
			if err := p.end(); err != nil {
				return err
			}
		case xml.CharData:
			if p.skip == 0 && p.collectsText() {
				p.text.Write(t)
			}
		}
	}

	if !p.root {
		return p.errorf("", "", fmt.Errorf("%w: document has no root element", ErrUnexpectedElement))
	}
	return nil
}

func (p *parser) collectsText() bool {
	if len(p.elems) == 0 {
		return false
	}
	switch p.elems[len(p.elems)-1].name {
	case "data", "chunk", "property", "text":
		return true
	}
	return false
}

func (p *parser) top() *frame {
	if len(p.frames) == 0 {
		return nil
	}
	return p.frames[len(p.frames)-1]
}

func (p *parser) topKind(kind frameKind) *frame {
	if f := p.top(); f != nil && f.kind == kind {
		return f
	}
	return nil
}

// parent returns the name of the element enclosing the one being started.
func (p *parser) parent() string {
	if len(p.elems) < 2 {
		return ""
	}
	return p.elems[len(p.elems)-2].name
}

func (p *parser) push(f *frame) {
	p.frames = append(p.frames, f)
	p.elems[len(p.elems)-1].pushed = true
}

// ignore skips the subtree of the element being started.
func (p *parser) ignore() error {
	p.skip = 1
	return nil
}

func (p *parser) start(se xml.StartElement) error {
	name := se.Name.Local
	p.elems = append(p.elems, element{name: name})
	if p.skip > 0 {
		p.skip++
		return nil
	}

	if !p.root {
		p.root = true
		want := "map"
		if p.tsx != nil {
			want = "tileset"
		}
		if name != want {
			return p.errorf(name, "", fmt.Errorf("%w: root is <%s>, want <%s>", ErrUnexpectedElement, name, want))
		}
	}

	switch name {
	case "map":
		return p.startMap(se)
	case "tileset":
		return p.startTileset(se)
	case "tileoffset":
		return p.startTileOffset(se)
	case "image":
		return p.startImage(se)
	case "properties":
		return p.startProperties()
	case "property":
		return p.startProperty(se)
	case "layer", "objectgroup", "imagelayer", "group":
		return p.startLayer(se)
	case "data":
		return p.startData(se)
	case "chunk":
		return p.startChunk(se)
	case "tile":
		return p.startTile(se)
	case "animation":
		if p.topKind(frameTile) == nil {
			return p.ignore()
		}
		return nil
	case "frame":
		return p.startFrame(se)
	case "object":
		return p.startObject(se)
	case "ellipse", "point", "polygon", "polyline", "text":
		return p.startShape(se)
	}
	return p.ignore()
}

func (p *parser) end() error {
	el := p.elems[len(p.elems)-1]
	p.elems = p.elems[:len(p.elems)-1]
	if p.skip > 0 {
		p.skip--
		return nil
	}

	switch el.name {
	case "property":
		return p.endProperty()
	case "text":
		if f := p.topKind(frameObject); f != nil {
			f.object.Text = p.text.String()
		}
	}

	if !el.pushed {
		return nil
	}
	f := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]

	switch f.kind {
	case frameProperties:
		*f.props = append(*f.props, f.bag...)
	case frameChunk:
		return p.endChunk(f.chunk)
	case frameData:
		return p.endData(f.data)
	}
	return nil
}

func (p *parser) startMap(se xml.StartElement) error {
	a := p.attrs(se)
	m := p.b.m
	m.Version = a.requiredStr("version")
	orientation := a.requiredStr("orientation")
	m.Width = a.atLeast("width", a.requiredInt("width"), 0)
	m.Height = a.atLeast("height", a.requiredInt("height"), 0)
	m.TileWidth = a.atLeast("tilewidth", a.requiredInt("tilewidth"), 1)
	m.TileHeight = a.atLeast("tileheight", a.requiredInt("tileheight"), 1)
	if a.err != nil {
		return a.err
	}

	m.Orientation = Orientation(orientation)
	if !m.Orientation.valid() {
		return p.errorf("map", "orientation", fmt.Errorf("%w: %q", ErrUnsupportedOrientation, orientation))
	}

	m.TiledVersion = a.str("tiledversion", "")
	m.Class = a.str("class", "")
	m.RenderOrder = RenderOrder(a.oneOf("renderorder", string(RightDown),
		string(RightDown), string(RightUp), string(LeftDown), string(LeftUp)))
	m.HexSideLength = a.int("hexsidelength", 0)
	m.StaggerAxis = StaggerAxis(a.oneOf("staggeraxis", string(StaggerAxisY), string(StaggerAxisX), string(StaggerAxisY)))
	m.StaggerIndex = StaggerIndex(a.oneOf("staggerindex", string(StaggerOdd), string(StaggerOdd), string(StaggerEven)))
	m.BackgroundColor = a.color("backgroundcolor")
	m.Infinite = a.bool("infinite", false)
	m.NextLayerID = a.int("nextlayerid", 0)
	m.NextObjectID = a.int("nextobjectid", 0)
	if a.err != nil {
		return a.err
	}

	p.push(&frame{kind: frameMap, props: &m.Properties})
	return nil
}

func (p *parser) startTileset(se xml.StartElement) error {
	a := p.attrs(se)

	if p.tsx != nil && len(p.frames) == 0 {
		ts := p.tsx
		p.fillTileset(a, ts)
		if a.err != nil {
			return a.err
		}
		p.b.dirs[ts] = p.file
		p.push(&frame{kind: frameTileset, tileset: ts, props: &ts.Properties})
		return nil
	}

	if p.topKind(frameMap) == nil {
		return p.errorf("tileset", "", fmt.Errorf("%w: <tileset> outside <map>", ErrUnexpectedElement))
	}

	firstGID := GID(a.requiredUint("firstgid"))
	if a.err != nil {
		return a.err
	}
	ts := &Tileset{FirstGID: firstGID, Tiles: make(map[uint32]*TileRecord)}

	if source, ok := a.lookup("source"); ok {
		p.b.m.Tilesets = append(p.b.m.Tilesets, ts)
		p.b.reference(p.file, source, ts)
		// A reference has no content of its own.
		return p.ignore()
	}

	p.fillTileset(a, ts)
	if a.err != nil {
		return a.err
	}
	p.b.m.Tilesets = append(p.b.m.Tilesets, ts)
	p.b.dirs[ts] = p.file
	p.push(&frame{kind: frameTileset, tileset: ts, props: &ts.Properties})
	return nil
}

func (p *parser) fillTileset(a *attrs, ts *Tileset) {
	ts.Name = a.requiredStr("name")
	ts.TileWidth = a.atLeast("tilewidth", a.requiredInt("tilewidth"), 1)
	ts.TileHeight = a.atLeast("tileheight", a.requiredInt("tileheight"), 1)
	ts.Class = a.str("class", "")
	ts.Spacing = a.atLeast("spacing", a.int("spacing", 0), 0)
	ts.Margin = a.atLeast("margin", a.int("margin", 0), 0)
	ts.TileCount = a.atLeast("tilecount", a.int("tilecount", 0), 0)
	ts.Columns = a.atLeast("columns", a.int("columns", 0), 0)
	if ts.Tiles == nil {
		ts.Tiles = make(map[uint32]*TileRecord)
	}
}

func (p *parser) startTileOffset(se xml.StartElement) error {
	f := p.topKind(frameTileset)
	if f == nil {
		return p.ignore()
	}
	a := p.attrs(se)
	f.tileset.TileOffset = Coord{X: a.int("x", 0), Y: a.int("y", 0)}
	return a.err
}

func (p *parser) startImage(se xml.StartElement) error {
	f := p.top()
	if f == nil {
		return p.ignore()
	}

	var dst **Image
	switch f.kind {
	case frameTileset:
		dst = &f.tileset.Image
	case frameTile:
		dst = &f.tile.Image
	case frameLayer:
		if l, ok := f.layer.(*ImageLayer); ok {
			dst = &l.Image
		}
	}
	if dst == nil {
		return p.ignore()
	}

	a := p.attrs(se)
	img := &Image{
		Source: a.requiredStr("source"),
		Format: a.str("format", ""),
		Width:  a.int("width", 0),
		Height: a.int("height", 0),
	}
	if a.has("trans") {
		c := a.color("trans")
		img.Trans = &c
	}
	if a.err != nil {
		return a.err
	}
	*dst = img
	return p.ignore()
}

func (p *parser) startProperties() error {
	f := p.top()
	if f == nil || f.props == nil || f.kind == frameProperties || p.parent() == "property" {
		// Members of class properties are not modelled.
		return p.ignore()
	}
	p.push(&frame{kind: frameProperties, props: f.props})
	return nil
}

func (p *parser) startProperty(se xml.StartElement) error {
	if p.topKind(frameProperties) == nil {
		return p.ignore()
	}
	a := p.attrs(se)
	name := a.requiredStr("name")
	if a.err != nil {
		return a.err
	}

	typeName := a.str("type", "")
	typ, ok := parsePropertyType(typeName)
	if !ok {
		p.warn(fmt.Errorf("%w: %q for property %q, read as string", ErrUnknownPropertyType, typeName, name))
	}
	value, hasValue := a.lookup("value")
	p.prop = &pendingProperty{name: name, typ: typ, value: value, hasValue: hasValue}
	p.text.Reset()
	return nil
}

func (p *parser) endProperty() error {
	pp := p.prop
	p.prop = nil
	f := p.topKind(frameProperties)
	if pp == nil || f == nil {
		return nil
	}

	value := pp.value
	if !pp.hasValue {
		value = p.text.String()
	}
	prop, err := NewProperty(pp.name, pp.typ, value)
	if err != nil {
		return p.errorf("property", "value", err)
	}
	f.bag = append(f.bag, prop)
	return nil
}

func (p *parser) startLayer(se xml.StartElement) error {
	name := se.Name.Local
	a := p.attrs(se)

	var (
		l    Layer
		base *LayerBase
	)
	switch name {
	case "layer":
		tl := &TileLayer{
			Width:  a.atLeast("width", a.int("width", p.b.m.Width), 0),
			Height: a.atLeast("height", a.int("height", p.b.m.Height), 0),
		}
		l, base = tl, &tl.LayerBase
	case "objectgroup":
		og := &ObjectGroup{
			Color:     a.color("color"),
			DrawOrder: DrawOrder(a.oneOf("draworder", string(DrawTopDown), string(DrawTopDown), string(DrawIndex))),
		}
		l, base = og, &og.LayerBase
	case "imagelayer":
		il := &ImageLayer{
			RepeatX: a.bool("repeatx", false),
			RepeatY: a.bool("repeaty", false),
		}
		l, base = il, &il.LayerBase
	case "group":
		g := &GroupLayer{}
		l, base = g, &g.LayerBase
	}

	base.ID = a.int("id", 0)
	base.Name = a.str("name", "")
	base.Class = a.str("class", "")
	base.OffsetX = a.float("offsetx", 0)
	base.OffsetY = a.float("offsety", 0)
	base.ParallaxX = a.float("parallaxx", 1)
	base.ParallaxY = a.float("parallaxy", 1)
	base.Opacity = a.float("opacity", 1)
	base.Visible = a.bool("visible", true)
	base.TintColor = a.color("tintcolor")
	if a.err != nil {
		return a.err
	}

	f := p.top()
	switch {
	case f != nil && f.kind == frameMap:
		base.Index = p.b.nextIndex()
		p.b.m.Layers = append(p.b.m.Layers, l)
	case f != nil && f.kind == frameLayer:
		g, ok := f.layer.(*GroupLayer)
		if !ok {
			return p.errorf(name, "", fmt.Errorf("%w: <%s> inside a non-group layer", ErrUnexpectedElement, name))
		}
		base.Index = p.b.nextIndex()
		g.Layers = append(g.Layers, l)
	case f != nil && f.kind == frameTile && name == "objectgroup":
		f.tile.ObjectGroup = l.(*ObjectGroup)
	default:
		return p.ignore()
	}

	p.push(&frame{kind: frameLayer, layer: l, props: &base.Properties})
	return nil
}

func (p *parser) startData(se xml.StartElement) error {
	f := p.topKind(frameLayer)
	if f == nil {
		return p.ignore()
	}
	tl, ok := f.layer.(*TileLayer)
	if !ok {
		return p.ignore()
	}

	a := p.attrs(se)
	d := &pendingData{
		layer:       tl,
		encoding:    a.str("encoding", EncodingXML),
		compression: a.str("compression", CompressionNone),
		line:        p.line(),
	}
	if err := checkEncoding(d.encoding, d.compression); err != nil {
		attr := "encoding"
		if errors.Is(err, ErrUnsupportedCompression) {
			attr = "compression"
		}
		return p.errorf("data", attr, err)
	}
	p.push(&frame{kind: frameData, data: d})
	p.text.Reset()
	return nil
}

func (p *parser) startChunk(se xml.StartElement) error {
	f := p.topKind(frameData)
	if f == nil {
		return p.ignore()
	}
	a := p.attrs(se)
	c := &rawChunk{
		x:      a.requiredInt("x"),
		y:      a.requiredInt("y"),
		width:  a.atLeast("width", a.requiredInt("width"), 0),
		height: a.atLeast("height", a.requiredInt("height"), 0),
	}
	if a.err != nil {
		return a.err
	}
	p.push(&frame{kind: frameChunk, data: f.data, chunk: c})
	p.text.Reset()
	return nil
}

func (p *parser) endChunk(c *rawChunk) error {
	d := p.topKind(frameData).data
	if d.encoding != EncodingXML {
		gids, err := DecodeData(p.text.Bytes(), d.encoding, d.compression, c.width, c.height)
		if err != nil {
			return p.errorf("chunk", "", err)
		}
		c.gids = gids
	} else if len(c.gids) != c.width*c.height {
		return p.errorf("chunk", "", fmt.Errorf("%w: got %d tiles, want %dx%d", ErrDataSizeMismatch, len(c.gids), c.width, c.height))
	}
	d.chunks = append(d.chunks, *c)
	return nil
}

// endData decodes the buffered payload. Turning GIDs into cells waits for the
// finalize pass, when every tileset is known.
func (p *parser) endData(d *pendingData) error {
	raw := &rawLayer{file: p.file, line: d.line, layer: d.layer}
	tl := d.layer

	switch {
	case len(d.chunks) > 0 || p.b.m.Infinite:
		raw.chunks = d.chunks
	case d.encoding == EncodingXML:
		if len(d.gids) != tl.Width*tl.Height {
			return p.errorf("data", "", fmt.Errorf("%w: got %d tiles, want %dx%d", ErrDataSizeMismatch, len(d.gids), tl.Width, tl.Height))
		}
		raw.gids = d.gids
	default:
		gids, err := DecodeData(p.text.Bytes(), d.encoding, d.compression, tl.Width, tl.Height)
		if err != nil {
			return p.errorf("data", "", err)
		}
		raw.gids = gids
	}
	p.b.raw = append(p.b.raw, raw)
	return nil
}

func (p *parser) startTile(se xml.StartElement) error {
	f := p.top()
	if f == nil {
		return p.ignore()
	}
	a := p.attrs(se)

	switch f.kind {
	case frameData, frameChunk:
		if f.data.encoding != EncodingXML {
			return p.errorf("tile", "", fmt.Errorf("%w: <tile> inside %s data", ErrInvalidEncoding, f.data.encoding))
		}
		gid := GID(a.uint("gid", 0))
		if a.err != nil {
			return a.err
		}
		if f.kind == frameChunk {
			f.chunk.gids = append(f.chunk.gids, gid)
		} else {
			f.data.gids = append(f.data.gids, gid)
		}
		return nil

	case frameTileset:
		ts := f.tileset
		id := a.requiredUint("id")
		rec := &TileRecord{
			ID:          id,
			Type:        a.str("type", a.str("class", "")),
			Probability: a.float("probability", 1),
		}
		if a.err != nil {
			return a.err
		}
		if _, dup := ts.Tiles[id]; dup {
			p.warn(fmt.Errorf("%w: %d in tileset %q, keeping the last", ErrDuplicateTileID, id, ts.Name))
		}
		ts.Tiles[id] = rec
		p.push(&frame{kind: frameTile, tileset: ts, tile: rec, props: &rec.Properties})
		return nil
	}
	return p.ignore()
}

func (p *parser) startFrame(se xml.StartElement) error {
	f := p.topKind(frameTile)
	if f == nil || p.parent() != "animation" {
		return p.ignore()
	}
	a := p.attrs(se)
	fr := Frame{
		TileID:   a.requiredUint("tileid"),
		Duration: time.Duration(a.requiredInt("duration")) * time.Millisecond,
	}
	if a.err != nil {
		return a.err
	}
	f.tile.Animation = append(f.tile.Animation, fr)
	return nil
}

func (p *parser) startObject(se xml.StartElement) error {
	f := p.topKind(frameLayer)
	if f == nil {
		return p.ignore()
	}
	og, ok := f.layer.(*ObjectGroup)
	if !ok {
		return p.ignore()
	}

	a := p.attrs(se)
	o := &Object{
		ID:       a.int("id", 0),
		Name:     a.str("name", ""),
		Type:     a.str("type", a.str("class", "")),
		X:        a.float("x", 0),
		Y:        a.float("y", 0),
		Width:    a.float("width", 0),
		Height:   a.float("height", 0),
		Rotation: a.float("rotation", 0),
		Visible:  a.bool("visible", true),
	}
	if a.has("gid") {
		o.GID = GID(a.uint("gid", 0))
		o.Shape = ShapeTile
	}
	if a.err != nil {
		return a.err
	}
	if o.Shape == ShapeTile && p.tsx == nil {
		p.b.objects = append(p.b.objects, rawObject{file: p.file, line: p.line(), object: o})
	}
	og.Objects = append(og.Objects, o)
	p.push(&frame{kind: frameObject, object: o, props: &o.Properties})
	return nil
}

func (p *parser) startShape(se xml.StartElement) error {
	f := p.topKind(frameObject)
	if f == nil {
		return p.ignore()
	}
	o := f.object

	switch name := se.Name.Local; name {
	case "ellipse":
		o.Shape = ShapeEllipse
	case "point":
		o.Shape = ShapePoint
	case "text":
		o.Shape = ShapeText
		p.text.Reset()
	case "polygon", "polyline":
		a := p.attrs(se)
		points, ok := a.required("points")
		if !ok {
			return a.err
		}
		pts, err := ParsePoints(points)
		if err != nil {
			return p.errorf(name, "points", err)
		}
		o.Points = pts
		o.Shape = ShapePolygon
		if name == "polyline" {
			o.Shape = ShapePolyline
		}
	}
	return nil
}

// builder is the state shared by every file of one load.
type builder struct {
	l       *Loader
	m       *Map
	queue   []string
	refs    map[string][]*Tileset // External tileset placeholders by file.
	dirs    map[*Tileset]string   // File each tileset was declared in.
	done    map[string]bool       // External tileset files parsed so far.
	raw     []*rawLayer
	objects []rawObject // Tile objects, checked once every tileset is known.
	index   int
}

type rawChunk struct {
	x, y          int
	width, height int
	gids          []GID
}

// rawLayer is decoded layer data waiting for the finalize pass.
type rawLayer struct {
	file   string
	line   int
	layer  *TileLayer
	gids   []GID
	chunks []rawChunk
}

type rawObject struct {
	file   string
	line   int
	object *Object
}

func newBuilder(l *Loader) *builder {
	return &builder{
		l:    l,
		m:    &Map{},
		refs: make(map[string][]*Tileset),
		dirs: make(map[*Tileset]string),
		done: make(map[string]bool),
	}
}

func (b *builder) nextIndex() int {
	i := b.index
	b.index++
	return i
}

// reference registers an external tileset placeholder and queues its file
// unless an earlier reference already did.
func (b *builder) reference(from, source string, ts *Tileset) {
	name := b.l.resolve(from, source)
	ts.Source = name
	if _, queued := b.refs[name]; !queued {
		b.queue = append(b.queue, name)
		b.l.log.WithFields(logrus.Fields{"file": from, "tileset": name}).Debug("tmx: queued external tileset")
	}
	b.refs[name] = append(b.refs[name], ts)
}

func (b *builder) warn(w Warning) {
	b.m.Warnings = append(b.m.Warnings, w)
	fields := logrus.Fields{"file": w.File}
	if w.Line > 0 {
		fields["line"] = w.Line
	}
	b.l.log.WithFields(fields).Warn(w.Err)
}
