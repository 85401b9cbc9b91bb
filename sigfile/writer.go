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
	"io"

	"github.com/kness-bio/taxoscan"
	"github.com/pkg/errors"
)

// Write streams arr, together with optional ids and meta, to out in the
// §6.1 layout: a provisional header, then lengths, metadata, IDs and data
// sections in that order, then a seek back to offset 0 to patch the real
// offsets table. out must support Seek — the lazily-written-header idiom
// the teacher's Writer.Write uses for a single section does not extend to
// a four-section layout whose offsets table must be known after the fact,
// so this writer always patches rather than deferring the header write.
func Write(out io.WriteSeeker, arr taxoscan.SignatureArray, ids *IDs, meta *Meta) error {
	count := uint64(arr.Len())
	if ids != nil && uint64(ids.Len()) != count {
		return ErrLengthMismatch
	}

	header := Header{
		Version: "1.00",
		Count:   count,
		Dtype:   arr.Spec().Width(),
	}
	if err := writeHeader(out, header); err != nil {
		return errors.Wrap(err, "write provisional header")
	}

	pos := int64(HeaderSize)

	lengthsBegin := pos
	lengthsBytes, err := encodeLengths(arr)
	if err != nil {
		return errors.Wrap(err, "encode lengths")
	}
	if _, err := out.Write(lengthsBytes); err != nil {
		return errors.Wrap(err, "write lengths section")
	}
	pos += int64(len(lengthsBytes))
	header.offsets[SectionLengths] = span{Begin: lengthsBegin, End: pos - 1}

	if meta != nil {
		metaBegin := pos
		metaBytes, err := encodeMeta(*meta)
		if err != nil {
			return errors.Wrap(err, "encode metadata")
		}
		if _, err := out.Write(metaBytes); err != nil {
			return errors.Wrap(err, "write metadata section")
		}
		pos += int64(len(metaBytes))
		header.offsets[SectionMetadata] = span{Begin: metaBegin, End: pos - 1}
	}

	if ids != nil {
		idsBegin := pos
		idsBytes, err := encodeIDs(*ids, count)
		if err != nil {
			return errors.Wrap(err, "encode ids")
		}
		if _, err := out.Write(idsBytes); err != nil {
			return errors.Wrap(err, "write ids section")
		}
		pos += int64(len(idsBytes))
		header.offsets[SectionIDs] = span{Begin: idsBegin, End: pos - 1}
	}

	dataBegin := pos
	dataBytes, err := encodeData(arr)
	if err != nil {
		return errors.Wrap(err, "encode data")
	}
	if _, err := out.Write(dataBytes); err != nil {
		return errors.Wrap(err, "write data section")
	}
	pos += int64(len(dataBytes))
	header.offsets[SectionData] = span{Begin: dataBegin, End: pos - 1}

	if _, err := out.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "seek back to header")
	}
	if err := writeHeader(out, header); err != nil {
		return errors.Wrap(err, "patch header")
	}
	if _, err := out.Seek(0, io.SeekEnd); err != nil {
		return errors.Wrap(err, "seek to end")
	}
	return nil
}

func encodeLengths(arr taxoscan.SignatureArray) ([]byte, error) {
	bounds := arr.Bounds()
	n := arr.Len()
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		l := bounds[i+1] - bounds[i]
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(l))
	}
	return buf, nil
}

func encodeData(arr taxoscan.SignatureArray) ([]byte, error) {
	width := arr.Spec().Width()
	step := width.Bytes()
	values := arr.Values()
	var buf bytes.Buffer
	buf.Grow(len(values) * step)
	b := make([]byte, step)
	for _, v := range values {
		switch width {
		case taxoscan.Width8:
			b[0] = byte(v)
		case taxoscan.Width16:
			binary.LittleEndian.PutUint16(b, uint16(v))
		case taxoscan.Width32:
			binary.LittleEndian.PutUint32(b, uint32(v))
		default:
			binary.LittleEndian.PutUint64(b, v)
		}
		buf.Write(b)
	}
	return buf.Bytes(), nil
}
