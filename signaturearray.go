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

// SignatureArray is a packed column store of N Signatures sharing one
// values buffer: Values[Bounds[i]:Bounds[i+1]] is the i-th Signature. It is
// logically immutable once built; random access returns a view into Values,
// never a copy.
type SignatureArray struct {
	spec   KmerSpec
	values []uint64
	bounds []uint64 // len == N+1, bounds[0] == 0, bounds[N] == len(values)
}

// NewSignatureArrayFromSignatures concatenates a sequence of Signatures,
// all built under the same KmerSpec, into one packed array.
func NewSignatureArrayFromSignatures(spec KmerSpec, sigs []Signature) (SignatureArray, error) {
	bounds := make([]uint64, len(sigs)+1)
	total := uint64(0)
	for i, s := range sigs {
		if !s.Spec().Equal(spec) {
			return SignatureArray{}, ErrLengthMismatch
		}
		total += uint64(s.Len())
		bounds[i+1] = total
	}
	values := make([]uint64, 0, total)
	for _, s := range sigs {
		values = append(values, s.Values()...)
	}
	return SignatureArray{spec: spec, values: values, bounds: bounds}, nil
}

// NewSignatureArrayFromValues wraps a pre-populated values buffer together
// with its bounds table, validating both.
func NewSignatureArrayFromValues(spec KmerSpec, values []uint64, bounds []uint64) (SignatureArray, error) {
	if len(bounds) == 0 || bounds[0] != 0 {
		return SignatureArray{}, ErrBoundsNotSorted
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i] < bounds[i-1] {
			return SignatureArray{}, ErrBoundsNotSorted
		}
	}
	if bounds[len(bounds)-1] != uint64(len(values)) {
		return SignatureArray{}, ErrLengthMismatch
	}
	return SignatureArray{spec: spec, values: values, bounds: bounds}, nil
}

// NewUninitializedSignatureArray allocates a values buffer sized from a list
// of per-signature lengths, with every slot zeroed, so a loader can fill
// each signature's slice in place (e.g. while streaming sections of a
// SignatureFile) without ever exposing a partially constructed array: the
// caller holds the SignatureArray value only after every write lands.
func NewUninitializedSignatureArray(spec KmerSpec, lengths []uint32) SignatureArray {
	bounds := make([]uint64, len(lengths)+1)
	total := uint64(0)
	for i, l := range lengths {
		total += uint64(l)
		bounds[i+1] = total
	}
	return SignatureArray{spec: spec, values: make([]uint64, total), bounds: bounds}
}

// Spec returns the shared KmerSpec.
func (a SignatureArray) Spec() KmerSpec { return a.spec }

// Len is the number of signatures, N.
func (a SignatureArray) Len() int {
	if len(a.bounds) == 0 {
		return 0
	}
	return len(a.bounds) - 1
}

// NumElements is the total element count across all signatures.
func (a SignatureArray) NumElements() int { return len(a.values) }

// Bounds returns the N+1 length bounds table. Callers must not mutate it.
func (a SignatureArray) Bounds() []uint64 { return a.bounds }

// Values returns the shared backing buffer. Callers must not mutate it.
func (a SignatureArray) Values() []uint64 { return a.values }

// At returns a view of the i-th Signature, sharing storage with a.Values().
func (a SignatureArray) At(i int) (Signature, error) {
	if i < 0 || i >= a.Len() {
		return Signature{}, ErrIndexOutOfRange
	}
	return Signature{spec: a.spec, values: a.values[a.bounds[i]:a.bounds[i+1]]}, nil
}

// FillSlot writes a Signature's values into slot i of an array produced by
// NewUninitializedSignatureArray. Values must already be the exact length
// declared for that slot.
func (a SignatureArray) FillSlot(i int, values []uint64) error {
	if i < 0 || i >= a.Len() {
		return ErrIndexOutOfRange
	}
	want := int(a.bounds[i+1] - a.bounds[i])
	if len(values) != want {
		return ErrLengthMismatch
	}
	copy(a.values[a.bounds[i]:a.bounds[i+1]], values)
	return nil
}

// Subset returns a new SignatureArray whose i-th entry is a.At(indices[i]);
// indices may repeat and be in arbitrary order. The result does not share
// storage with a — subsetting copies, since the source ranges may overlap
// or be reordered.
func (a SignatureArray) Subset(indices []int) (SignatureArray, error) {
	sigs := make([]Signature, len(indices))
	for i, idx := range indices {
		s, err := a.At(idx)
		if err != nil {
			return SignatureArray{}, err
		}
		sigs[i] = s
	}
	return NewSignatureArrayFromSignatures(a.spec, sigs)
}

// Mask returns a new SignatureArray containing only the signatures whose
// corresponding keep[i] is true, preserving original relative order.
func (a SignatureArray) Mask(keep []bool) (SignatureArray, error) {
	if len(keep) != a.Len() {
		return SignatureArray{}, ErrLengthMismatch
	}
	indices := make([]int, 0, a.Len())
	for i, k := range keep {
		if k {
			indices = append(indices, i)
		}
	}
	return a.Subset(indices)
}
