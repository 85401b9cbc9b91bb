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

import "bytes"

// Scanner finds every occurrence of a KmerSpec's prefix (forward and
// reverse complement) in a nucleotide sequence and encodes the trailing
// k-mer as a tail-index. A Scanner accumulates across any number of Fold
// calls before Finish is asked to produce the Signature, so a caller can
// fold record-by-record over the contigs of a genome assembly and emit one
// Signature for the whole thing.
type Scanner struct {
	spec   KmerSpec
	revPfx []byte

	dense  *denseBitset
	sparse map[uint64]struct{}
}

// NewScanner builds a Scanner for spec. k <= denseBitsetMaxK uses a dense
// bitset of size 4^k; larger k falls back to a hash set, matching §4.2's
// "dense bit-set for small k, hash set for large k" instruction.
func NewScanner(spec KmerSpec) *Scanner {
	s := &Scanner{
		spec:   spec,
		revPfx: reverseComplement(spec.Prefix()),
	}
	if spec.K() <= denseBitsetMaxK {
		s.dense = newDenseBitset(spec.IndexSpace())
	} else {
		s.sparse = make(map[uint64]struct{})
	}
	return s
}

// Fold scans one sequence fragment (a whole record, or a chunk of one) and
// accumulates any tail-indices found into the Scanner's running state.
// Matching is case-insensitive; characters outside {A,C,G,T} never match a
// prefix occurrence and never decode to a valid tail.
func (sc *Scanner) Fold(seq []byte) {
	prefixLen := sc.spec.PrefixLen()
	k := sc.spec.K()
	totalLen := sc.spec.TotalLen()
	n := len(seq)

	// forward pass: prefix, then tail
	for p := 0; p+totalLen <= n; p++ {
		if !equalFoldACGT(seq[p:p+prefixLen], sc.spec.Prefix()) {
			continue
		}
		tail := seq[p+prefixLen : p+totalLen]
		if code, ok := encodeTail(tail); ok {
			sc.record(code)
		}
	}

	// reverse pass: reverse-complemented prefix, tail precedes it
	for p := k; p+prefixLen <= n; p++ {
		if !equalFoldACGT(seq[p:p+prefixLen], sc.revPfx) {
			continue
		}
		tail := reverseComplement(seq[p-k : p])
		if code, ok := encodeTail(tail); ok {
			sc.record(code)
		}
	}
}

func (sc *Scanner) record(code uint64) {
	if sc.dense != nil {
		sc.dense.set(code)
		return
	}
	sc.sparse[code] = struct{}{}
}

// Finish extracts the accumulated tail-indices as a sorted, deduplicated
// Signature and resets the Scanner's internal state so it can be reused.
func (sc *Scanner) Finish() (Signature, error) {
	var values []uint64
	if sc.dense != nil {
		values = sc.dense.sorted()
		sc.dense = newDenseBitset(sc.spec.IndexSpace())
	} else {
		values = make([]uint64, 0, len(sc.sparse))
		for code := range sc.sparse {
			values = append(values, code)
		}
		sc.sparse = make(map[uint64]struct{})
		return BuildSignature(sc.spec, values)
	}
	return NewSignature(sc.spec, values)
}

// Scan is a convenience wrapper for the common case of a single sequence:
// Fold(seq) followed by Finish().
func (sc *Scanner) Scan(seq []byte) (Signature, error) {
	sc.Fold(seq)
	return sc.Finish()
}

// equalFoldACGT reports whether a and b are equal under ASCII
// case-folding, assuming both are nucleotide bytes (no Unicode case rules
// needed). len(a) must equal len(b).
func equalFoldACGT(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return bytes.EqualFold(a, b)
}
