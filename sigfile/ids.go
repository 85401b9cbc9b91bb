// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package sigfile

import (
	"bytes"
	"encoding/binary"

	"github.com/kness-bio/taxoscan"
)

const (
	idsFormatInt    = 'i'
	idsFormatString = 's'
)

// IDs is a per-signature identifier column, either strings or integers of
// one of the four canonical widths. Exactly one of Strings or Ints is set.
type IDs struct {
	Strings []string
	Ints    []uint64
	Width   taxoscan.Width // only meaningful when Ints is set
}

func (ids IDs) Len() int {
	if ids.Strings != nil {
		return len(ids.Strings)
	}
	return len(ids.Ints)
}

func encodeIDs(ids IDs, count uint64) ([]byte, error) {
	if uint64(ids.Len()) != count {
		return nil, ErrLengthMismatch
	}
	var buf bytes.Buffer
	if ids.Strings != nil {
		buf.WriteByte(idsFormatString)
		for _, s := range ids.Strings {
			buf.WriteString(s)
			buf.WriteByte(0)
		}
		return buf.Bytes(), nil
	}

	buf.WriteByte(idsFormatInt)
	buf.WriteString(ids.Width.String())
	for _, v := range ids.Ints {
		if err := writeWidth(&buf, ids.Width, v); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func decodeIDs(raw []byte, count uint64) (IDs, error) {
	if len(raw) == 0 {
		return IDs{}, ErrUnknownFormatTag
	}
	switch raw[0] {
	case idsFormatString:
		strs := make([]string, 0, count)
		rest := raw[1:]
		for len(strs) < int(count) {
			i := bytes.IndexByte(rest, 0)
			if i < 0 {
				return IDs{}, ErrTruncated
			}
			strs = append(strs, string(rest[:i]))
			rest = rest[i+1:]
		}
		return IDs{Strings: strs}, nil
	case idsFormatInt:
		if len(raw) < 3 {
			return IDs{}, ErrTruncated
		}
		width, err := taxoscan.ParseWidth(string(raw[1:3]))
		if err != nil {
			return IDs{}, err
		}
		data := raw[3:]
		ints := make([]uint64, count)
		step := width.Bytes()
		if len(data) < step*int(count) {
			return IDs{}, ErrTruncated
		}
		for i := range ints {
			ints[i] = readWidth(data[i*step:], width)
		}
		return IDs{Ints: ints, Width: width}, nil
	default:
		return IDs{}, ErrUnknownFormatTag
	}
}

func writeWidth(buf *bytes.Buffer, w taxoscan.Width, v uint64) error {
	switch w {
	case taxoscan.Width8:
		buf.WriteByte(byte(v))
	case taxoscan.Width16:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(v))
		buf.Write(b[:])
	case taxoscan.Width32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(v))
		buf.Write(b[:])
	default:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], v)
		buf.Write(b[:])
	}
	return nil
}

func readWidth(b []byte, w taxoscan.Width) uint64 {
	switch w {
	case taxoscan.Width8:
		return uint64(b[0])
	case taxoscan.Width16:
		return uint64(binary.LittleEndian.Uint16(b))
	case taxoscan.Width32:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return binary.LittleEndian.Uint64(b)
	}
}
