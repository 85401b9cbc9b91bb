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
	"sort"

	"github.com/twotwotwo/sorts/sortutil"
)

// Signature is a strictly increasing, duplicate-free sequence of tail
// indices in [0, 4^k), the set of observed k-mers for one sequence under a
// given KmerSpec. The zero value is the empty signature.
type Signature struct {
	spec   KmerSpec
	values []uint64 // always sorted ascending, deduplicated
}

// NewSignature validates and wraps an already-sorted, deduplicated, in-range
// slice of tail indices. Use this when values are known-good (e.g. freshly
// produced by a Scanner); use BuildSignature when values need sorting.
func NewSignature(spec KmerSpec, values []uint64) (Signature, error) {
	space := spec.IndexSpace()
	for i, v := range values {
		if spec.K() < 32 && v >= space {
			return Signature{}, ErrValueOutOfRange
		}
		if i > 0 && values[i-1] >= v {
			return Signature{}, ErrNotSorted
		}
	}
	return Signature{spec: spec, values: values}, nil
}

// BuildSignature sorts and deduplicates an arbitrary slice of tail indices
// in place, then wraps the result. For large slices (k large enough that a
// hash-set accumulation was used, see Scanner.Fold) the sort is dispatched
// to sortutil.Uint64s, which parallelizes across GOMAXPROCS the same way
// common.go's large-k sort path in the teacher CLI does.
func BuildSignature(spec KmerSpec, values []uint64) (Signature, error) {
	if len(values) > sortParallelThreshold {
		sortutil.Uint64s(values)
	} else {
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	}
	values = dedupSorted(values)
	return NewSignature(spec, values)
}

// sortParallelThreshold is the element count above which a parallel sort
// pays for its own setup cost.
const sortParallelThreshold = 1 << 16

func dedupSorted(values []uint64) []uint64 {
	if len(values) == 0 {
		return values
	}
	w := 1
	for r := 1; r < len(values); r++ {
		if values[r] != values[w-1] {
			values[w] = values[r]
			w++
		}
	}
	return values[:w]
}

// Spec returns the KmerSpec this Signature was built under.
func (s Signature) Spec() KmerSpec { return s.spec }

// Len is the number of distinct tail indices.
func (s Signature) Len() int { return len(s.values) }

// Values returns the backing slice. Callers must not mutate it.
func (s Signature) Values() []uint64 { return s.values }

// At returns the i-th smallest tail index.
func (s Signature) At(i int) uint64 { return s.values[i] }

// Empty reports whether the Signature has no elements.
func (s Signature) Empty() bool { return len(s.values) == 0 }
