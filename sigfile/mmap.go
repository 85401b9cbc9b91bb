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
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// MmapReader is a Reader backed by a memory-mapped file instead of a
// plain *os.File, for random-access GetSubset workloads against reference
// databases too large to read section-by-section without OS page cache
// help. Grounded on the teacher CLI's UnikIndex.useMmap path, which maps
// the same way for the same reason (many small random reads against one
// big reference file).
type MmapReader struct {
	*Reader
	f *os.File
	m mmap.MMap
}

// OpenMmap opens path and memory-maps it read-only, then parses the header
// and lengths section exactly as Open does.
func OpenMmap(path string) (*MmapReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "mmap")
	}

	rd, err := Open(&sectionReaderFromBytes{data: m})
	if err != nil {
		m.Unmap()
		f.Close()
		return nil, err
	}
	return &MmapReader{Reader: rd, f: f, m: m}, nil
}

// Close unmaps the file and closes the underlying descriptor.
func (r *MmapReader) Close() error {
	if err := r.m.Unmap(); err != nil {
		return err
	}
	return r.f.Close()
}

// sectionReaderFromBytes adapts an in-memory byte slice (the mmap'd
// region) to io.ReadSeeker so the same Reader/readSignatureValues code
// path works whether the backing store is a file handle or a mapped
// region.
type sectionReaderFromBytes struct {
	data []byte
	pos  int64
}

func (s *sectionReaderFromBytes) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *sectionReaderFromBytes) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case 0:
		base = 0
	case 1:
		base = s.pos
	case 2:
		base = int64(len(s.data))
	}
	s.pos = base + offset
	return s.pos, nil
}
