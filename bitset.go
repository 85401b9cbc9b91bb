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

import "math/bits"

// denseBitset is a flat [0, n) bitset backed by a []uint64, used by the
// Scanner to accumulate tail-indices for small k where 4^k is cheap to
// allocate densely (k <= denseBitsetMaxK).
type denseBitset struct {
	bits []uint64
	n    uint64
}

// denseBitsetMaxK bounds dense accumulation to k where 4^k occupies at most
// 64 MiB of bitset memory (4^13 bits == 64 Mbit == 8 MiB; headroom kept for
// k=14, 32 MiB).
const denseBitsetMaxK = 14

func newDenseBitset(n uint64) *denseBitset {
	return &denseBitset{bits: make([]uint64, (n+63)/64), n: n}
}

func (b *denseBitset) set(i uint64) {
	b.bits[i>>6] |= 1 << (i & 63)
}

func (b *denseBitset) has(i uint64) bool {
	return b.bits[i>>6]&(1<<(i&63)) != 0
}

// sorted returns every set index in ascending order.
func (b *denseBitset) sorted() []uint64 {
	out := make([]uint64, 0)
	for word := 0; word < len(b.bits); word++ {
		w := b.bits[word]
		if w == 0 {
			continue
		}
		base := uint64(word) * 64
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			out = append(out, base+uint64(bit))
			w &= w - 1
		}
	}
	return out
}
