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
	"encoding/binary"
	"io"
	"sort"

	"github.com/kness-bio/taxoscan"
	"github.com/pkg/errors"
)

// Reader opens a signature file: the header and lengths section are read
// eagerly (both are small and always needed), metadata/IDs/data stay on
// disk until one of the read operations asks for them.
type Reader struct {
	r        io.ReadSeeker
	hdr      Header
	lens     []uint32 // lengths[i], eagerly loaded
	elemOff  []int64  // cumulative element offset of signature i within the data section
}

// Open parses the header and lengths section of r.
func Open(r io.ReadSeeker) (*Reader, error) {
	hdr, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	rd := &Reader{r: r, hdr: hdr}
	lengthsSpan := hdr.offsets[SectionLengths]
	if lengthsSpan.present() {
		n := int(hdr.Count)
		buf := make([]byte, n*4)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errors.Wrap(ErrTruncated, "read lengths section")
		}
		lens := make([]uint32, n)
		for i := 0; i < n; i++ {
			lens[i] = binary.LittleEndian.Uint32(buf[i*4:])
		}
		rd.lens = lens

		elemOff := make([]int64, n)
		var cum int64
		for i := 0; i < n; i++ {
			elemOff[i] = cum
			cum += int64(lens[i])
		}
		rd.elemOff = elemOff
	}
	return rd, nil
}

// Count is the number of signatures in the file.
func (r *Reader) Count() uint64 { return r.hdr.Count }

// Dtype is the coordinate width signatures are stored in.
func (r *Reader) Dtype() taxoscan.Width { return r.hdr.Dtype }

// Lengths returns the per-signature element counts, in file order.
func (r *Reader) Lengths() []uint32 { return r.lens }

// NumElements is sum(Lengths()).
func (r *Reader) NumElements() uint64 {
	var total uint64
	for _, l := range r.lens {
		total += uint64(l)
	}
	return total
}

// HasIDs reports whether an IDs section is present.
func (r *Reader) HasIDs() bool { return r.hdr.offsets[SectionIDs].present() }

// HasMetadata reports whether a metadata section is present.
func (r *Reader) HasMetadata() bool { return r.hdr.offsets[SectionMetadata].present() }

func (r *Reader) readSection(s span) ([]byte, error) {
	if !s.present() {
		return nil, nil
	}
	if _, err := r.r.Seek(s.Begin, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, s.length())
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, errors.Wrap(ErrTruncated, "read section")
	}
	return buf, nil
}

// ReadMetadata reads and parses the metadata section, if present.
func (r *Reader) ReadMetadata() (Meta, bool, error) {
	if !r.HasMetadata() {
		return Meta{}, false, nil
	}
	raw, err := r.readSection(r.hdr.offsets[SectionMetadata])
	if err != nil {
		return Meta{}, false, err
	}
	m, err := decodeMeta(raw)
	if err != nil {
		return Meta{}, false, err
	}
	return m, true, nil
}

// ReadIDs reads and parses the IDs section, if present.
func (r *Reader) ReadIDs() (IDs, bool, error) {
	if !r.HasIDs() {
		return IDs{}, false, nil
	}
	raw, err := r.readSection(r.hdr.offsets[SectionIDs])
	if err != nil {
		return IDs{}, false, err
	}
	ids, err := decodeIDs(raw, r.hdr.Count)
	if err != nil {
		return IDs{}, false, err
	}
	return ids, true, nil
}

// dataOffset returns the absolute byte offset of signature i's first
// element within the data section.
func (r *Reader) dataOffset(i int) int64 {
	base := r.hdr.offsets[SectionData].Begin
	step := int64(r.hdr.Dtype.Bytes())
	return base + r.elemOff[i]*step
}

func (r *Reader) readSignatureValues(i int) ([]uint64, error) {
	n := int(r.lens[i])
	if n == 0 {
		return nil, nil
	}
	step := r.hdr.Dtype.Bytes()
	if _, err := r.r.Seek(r.dataOffset(i), io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, n*step)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, errors.Wrap(ErrTruncated, "read data section")
	}
	values := make([]uint64, n)
	for j := 0; j < n; j++ {
		values[j] = readWidth(buf[j*step:], r.hdr.Dtype)
	}
	return values, nil
}

// GetAll reads every signature in file order, invoking progress (if
// non-nil) after every chunk signatures have been read.
func (r *Reader) GetAll(spec taxoscan.KmerSpec, chunk int, progress func(done int)) (taxoscan.SignatureArray, error) {
	n := int(r.hdr.Count)
	lengths := r.lens
	arr := taxoscan.NewUninitializedSignatureArray(spec, lengths)
	for i := 0; i < n; i++ {
		values, err := r.readSignatureValues(i)
		if err != nil {
			return taxoscan.SignatureArray{}, err
		}
		if err := arr.FillSlot(i, values); err != nil {
			return taxoscan.SignatureArray{}, err
		}
		if progress != nil && chunk > 0 && (i+1)%chunk == 0 {
			progress(i + 1)
		}
	}
	if progress != nil && chunk > 0 && n%chunk != 0 {
		progress(n)
	}
	return arr, nil
}

// GetSubset reads only the signatures at indices (arbitrary order,
// duplicates permitted). It sorts a copy of indices to perform a single
// ascending sequential scan of the data section, then scatters results
// into output position i, so result.At(i) corresponds to indices[i].
func (r *Reader) GetSubset(spec taxoscan.KmerSpec, indices []int, progress func(done int)) (taxoscan.SignatureArray, error) {
	order := make([]int, len(indices))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return indices[order[a]] < indices[order[b]] })

	lengths := make([]uint32, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= int(r.hdr.Count) {
			return taxoscan.SignatureArray{}, taxoscan.ErrIndexOutOfRange
		}
		lengths[i] = r.lens[idx]
	}
	arr := taxoscan.NewUninitializedSignatureArray(spec, lengths)

	for done, pos := range order {
		idx := indices[pos]
		values, err := r.readSignatureValues(idx)
		if err != nil {
			return taxoscan.SignatureArray{}, err
		}
		if err := arr.FillSlot(pos, values); err != nil {
			return taxoscan.SignatureArray{}, err
		}
		if progress != nil {
			progress(done + 1)
		}
	}
	return arr, nil
}

// Iter returns a lazy sequential iterator over the data section.
func (r *Reader) Iter(spec taxoscan.KmerSpec) *Iterator {
	return &Iterator{r: r, spec: spec, n: int(r.hdr.Count)}
}

// Iterator walks a Reader's signatures in file order without materializing
// the whole SignatureArray in memory.
type Iterator struct {
	r    *Reader
	spec taxoscan.KmerSpec
	n    int
	i    int
}

// Next returns the next Signature, or ok=false once every signature has
// been produced.
func (it *Iterator) Next() (sig taxoscan.Signature, ok bool, err error) {
	if it.i >= it.n {
		return taxoscan.Signature{}, false, nil
	}
	values, err := it.r.readSignatureValues(it.i)
	if err != nil {
		return taxoscan.Signature{}, false, err
	}
	it.i++
	sig, err = taxoscan.NewSignature(it.spec, values)
	if err != nil {
		return taxoscan.Signature{}, false, err
	}
	return sig, true, nil
}
