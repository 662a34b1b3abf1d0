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
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"unicode"
)

const (
	EncodingXML    = ""
	EncodingCSV    = "csv"
	EncodingBase64 = "base64"

	CompressionNone = ""
	CompressionZlib = "zlib"
	CompressionGzip = "gzip"
)

func checkEncoding(encoding, compression string) error {
	switch encoding {
	case EncodingXML, EncodingCSV:
		if compression != CompressionNone {
			return fmt.Errorf("%w: %q with %s encoding", ErrUnsupportedCompression, compression, encodingName(encoding))
		}
		return nil
	case EncodingBase64:
		switch compression {
		case CompressionNone, CompressionZlib, CompressionGzip:
			return nil
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedCompression, compression)
	}
	return fmt.Errorf("%w: %q", ErrInvalidEncoding, encoding)
}

func encodingName(encoding string) string {
	if encoding == EncodingXML {
		return "xml"
	}
	return encoding
}

// DecodeData decodes the text payload of a <data> or <chunk> element holding
// width*height GIDs. XML encoded data has no text payload; its GIDs come from
// <tile> elements, so EncodingXML is rejected here.
func DecodeData(raw []byte, encoding, compression string, width, height int) ([]GID, error) {
	if err := checkEncoding(encoding, compression); err != nil {
		return nil, err
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative size %dx%d", ErrDataSizeMismatch, width, height)
	}

	var (
		gids []GID
		err  error
	)
	switch encoding {
	case EncodingCSV:
		gids, err = decodeCSV(raw)
	case EncodingBase64:
		gids, err = decodeBase64(raw, compression, width*height)
	default:
		return nil, fmt.Errorf("%w: xml data has no text payload", ErrInvalidEncoding)
	}
	if err != nil {
		return nil, err
	}

	if len(gids) != width*height {
		return nil, fmt.Errorf("%w: got %d tiles, want %dx%d", ErrDataSizeMismatch, len(gids), width, height)
	}
	return gids, nil
}

func stripSpace(raw []byte) []byte {
	return bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

func decodeCSV(raw []byte) ([]GID, error) {
	clean := stripSpace(raw)
	if len(clean) == 0 {
		return nil, nil
	}
	clean = bytes.TrimSuffix(clean, []byte(","))

	fields := bytes.Split(clean, []byte(","))
	gids := make([]GID, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(string(f), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: csv token %d %q", ErrInvalidEncoding, i, f)
		}
		gids[i] = GID(v)
	}
	return gids, nil
}

// decodeBase64 reads at most one byte past n GIDs, so a compressed payload
// cannot inflate beyond the size of the layer.
func decodeBase64(raw []byte, compression string, n int) ([]GID, error) {
	var r io.Reader = base64.NewDecoder(base64.StdEncoding, bytes.NewReader(stripSpace(raw)))

	var err error
	switch compression {
	case CompressionGzip:
		r, err = gzip.NewReader(r)
	case CompressionZlib:
		r, err = zlib.NewReader(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidEncoding, compression, err)
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(4*n)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if len(data) > 4*n {
		return nil, fmt.Errorf("%w: data holds more than %d tiles", ErrDataSizeMismatch, n)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of GIDs", ErrDataSizeMismatch, len(data))
	}

	gids := make([]GID, len(data)/4)
	for i := range gids {
		gids[i] = GID(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return gids, nil
}
