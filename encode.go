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

// encodeTail packs a tail of nucleotides into a base-4 integer, most
// significant base first: base at position 0 contributes the highest-order
// two bits. Any byte outside {A,C,G,T} (either case) is rejected outright —
// unlike IUPAC-aware encoders, a tail-index is either exact or not emitted.
//
// Codes:
//
//	A    00
//	C    01
//	G    10
//	T    11
func encodeTail(tail []byte) (code uint64, ok bool) {
	n := len(tail)
	for i := 0; i < n; i++ {
		code <<= 2
		switch tail[i] {
		case 'A', 'a':
			// code |= 0
		case 'C', 'c':
			code |= 1
		case 'G', 'g':
			code |= 2
		case 'T', 't':
			code |= 3
		default:
			return 0, false
		}
	}
	return code, true
}

var bit2base = [4]byte{'A', 'C', 'G', 'T'}

// decodeTail converts a code back into a k-length upper-case byte slice.
func decodeTail(code uint64, k int) []byte {
	out := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		out[i] = bit2base[code&3]
		code >>= 2
	}
	return out
}

// reverseComplement returns the reverse complement of a nucleotide sequence.
// Bytes outside {A,C,G,T} (either case) come out as 'N'; Scanner.Fold calls
// this on raw tails, and encodeTail then rejects any tail containing 'N'.
func reverseComplement(seq []byte) []byte {
	n := len(seq)
	out := make([]byte, n)
	for i, b := range seq {
		out[n-1-i] = complementBase(b)
	}
	return out
}

func complementBase(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'a':
		return 't'
	case 'C':
		return 'G'
	case 'c':
		return 'g'
	case 'G':
		return 'C'
	case 'g':
		return 'c'
	case 'T':
		return 'A'
	case 't':
		return 'a'
	default:
		return 'N'
	}
}

// upperACGT reports whether seq consists entirely of {A,C,G,T}, case
// insensitively — used to validate a KmerSpec prefix at construction time.
func upperACGT(seq []byte) bool {
	for _, b := range seq {
		switch b {
		case 'A', 'a', 'C', 'c', 'G', 'g', 'T', 't':
		default:
			return false
		}
	}
	return true
}

// toUpperACGT uppercases a validated ACGT byte slice in place and returns it.
func toUpperACGT(seq []byte) []byte {
	for i, b := range seq {
		switch b {
		case 'a':
			seq[i] = 'A'
		case 'c':
			seq[i] = 'C'
		case 'g':
			seq[i] = 'G'
		case 't':
			seq[i] = 'T'
		}
	}
	return seq
}
