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
	"io"

	"github.com/klauspost/pgzip"
	"github.com/kness-bio/taxoscan"
	"github.com/pkg/errors"
)

// WriteGzip writes a whole signature file to out through a parallel gzip
// writer, for sequential-only bulk transfer (e.g. shipping a reference
// bundle) where random access via Open/GetSubset is not needed. Because
// gzip streams cannot be seeked, Write's seek-back header patch runs
// against an in-memory buffer first; the finished bytes are then gzipped
// once as a whole.
func WriteGzip(out io.Writer, arr taxoscan.SignatureArray, ids *IDs, meta *Meta) error {
	var buf bytes.Buffer
	if err := Write(&nopSeeker{Buffer: &buf}, arr, ids, meta); err != nil {
		return errors.Wrap(err, "encode signature file")
	}
	gz := pgzip.NewWriter(out)
	if _, err := gz.Write(buf.Bytes()); err != nil {
		gz.Close()
		return errors.Wrap(err, "write gzip stream")
	}
	return gz.Close()
}

// OpenGzip decompresses a whole gzip-wrapped signature file into memory
// and opens a Reader over it.
func OpenGzip(in io.Reader) (*Reader, error) {
	gz, err := pgzip.NewReader(in)
	if err != nil {
		return nil, errors.Wrap(err, "open gzip stream")
	}
	defer gz.Close()

	body, err := io.ReadAll(gz)
	if err != nil {
		return nil, errors.Wrap(err, "read gzip stream")
	}
	return Open(bytes.NewReader(body))
}

// nopSeeker adapts a bytes.Buffer (append-only) to the io.WriteSeeker
// Write needs for its header seek-back, by buffering the whole encoded
// file before any compression happens.
type nopSeeker struct {
	*bytes.Buffer
	pos int64
}

func (s *nopSeeker) Write(p []byte) (int, error) {
	b := s.Buffer.Bytes()
	if s.pos < int64(len(b)) {
		n := copy(b[s.pos:], p)
		s.pos += int64(n)
		if n < len(p) {
			written, err := s.Buffer.Write(p[n:])
			s.pos += int64(written)
			return n + written, err
		}
		return n, nil
	}
	n, err := s.Buffer.Write(p)
	s.pos += int64(n)
	return n, err
}

func (s *nopSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		s.pos = offset
	case io.SeekCurrent:
		s.pos += offset
	case io.SeekEnd:
		s.pos = int64(s.Buffer.Len()) + offset
	}
	return s.pos, nil
}
