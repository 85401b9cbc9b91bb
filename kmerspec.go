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

package taxoscan

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// KmerSpec is the immutable pair of scan parameters shared by a Scanner, a
// Signature and a SignatureArray: the fixed anchor prefix and the tail
// length k. Two KmerSpecs are comparable with Equal; Signatures built under
// different KmerSpecs must never be compared.
type KmerSpec struct {
	k      int
	prefix []byte // always upper-case ACGT
}

// NewKmerSpec validates and constructs a KmerSpec. prefix is upper-cased in
// place semantics (a copy is taken, the caller's slice is untouched).
func NewKmerSpec(k int, prefix []byte) (KmerSpec, error) {
	if len(prefix) == 0 {
		return KmerSpec{}, ErrEmptyPrefix
	}
	if k < 1 || k > 32 {
		return KmerSpec{}, ErrKOutOfRange
	}
	if !upperACGT(prefix) {
		return KmerSpec{}, ErrIllegalBase
	}
	cp := make([]byte, len(prefix))
	copy(cp, prefix)
	toUpperACGT(cp)
	return KmerSpec{k: k, prefix: cp}, nil
}

// K returns the tail length.
func (s KmerSpec) K() int { return s.k }

// Prefix returns the upper-case prefix bytes. Callers must not mutate the
// returned slice.
func (s KmerSpec) Prefix() []byte { return s.prefix }

// PrefixLen is len(Prefix()).
func (s KmerSpec) PrefixLen() int { return len(s.prefix) }

// TotalLen is PrefixLen() + K().
func (s KmerSpec) TotalLen() int { return len(s.prefix) + s.k }

// IndexSpace is 4^k, the exclusive upper bound on any tail-index. For
// k == 32, 4^k does not fit in a uint64 and IndexSpace returns 0.
func (s KmerSpec) IndexSpace() uint64 {
	return uint64(1) << uint(2*s.k)
}

// Width is the canonical coordinate type for this spec: the narrowest of
// the four integer widths (1, 2, 4, 8 bytes) that holds IndexSpace()-1.
func (s KmerSpec) Width() Width {
	return widthForIndexSpace(s.IndexSpace())
}

// Equal reports whether two KmerSpecs have identical k and prefix.
func (s KmerSpec) Equal(o KmerSpec) bool {
	return s.k == o.k && bytes.Equal(s.prefix, o.prefix)
}

func (s KmerSpec) String() string {
	return fmt.Sprintf("k=%d prefix=%s", s.k, s.prefix)
}

// record is the two-field on-disk representation of a KmerSpec: k as a
// big-endian uint32 followed by the raw prefix bytes, length-prefixed by a
// big-endian uint32. Used by callers that need to stamp a KmerSpec into a
// sidecar or header alongside a SignatureFile; the binary signature file
// format itself (see package sigfile) stores only the dtype, neither k nor
// the prefix.
var be = binary.BigEndian

// WriteRecord serializes the KmerSpec as (k uint32, prefixLen uint32, prefix bytes).
func (s KmerSpec) WriteRecord(w io.Writer) error {
	if err := binary.Write(w, be, uint32(s.k)); err != nil {
		return err
	}
	if err := binary.Write(w, be, uint32(len(s.prefix))); err != nil {
		return err
	}
	_, err := w.Write(s.prefix)
	return err
}

// ReadKmerSpecRecord deserializes a KmerSpec written by WriteRecord.
func ReadKmerSpecRecord(r io.Reader) (KmerSpec, error) {
	var k, n uint32
	if err := binary.Read(r, be, &k); err != nil {
		return KmerSpec{}, err
	}
	if err := binary.Read(r, be, &n); err != nil {
		return KmerSpec{}, err
	}
	prefix := make([]byte, n)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return KmerSpec{}, err
	}
	return NewKmerSpec(int(k), prefix)
}
