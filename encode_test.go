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
	"math/rand"
	"testing"
)

var randomTails [][]byte
var randomTailsN = 10000

var benchTail = []byte("ACTGACTGGTCAGTCAACTGGTCAACTGGTCA")
var benchCode uint64

func init() {
	randomTails = make([][]byte, randomTailsN)
	for i := 0; i < randomTailsN; i++ {
		randomTails[i] = make([]byte, rand.Intn(32)+1)
		for j := range randomTails[i] {
			randomTails[i][j] = bit2base[rand.Intn(4)]
		}
	}
	benchCode, _ = encodeTail(benchTail)
}

func TestEncodeDecodeTail(t *testing.T) {
	for _, tail := range randomTails {
		code, ok := encodeTail(tail)
		if !ok {
			t.Errorf("encodeTail error: %s", tail)
			continue
		}
		if !bytes.Equal(tail, decodeTail(code, len(tail))) {
			t.Errorf("decodeTail error: %s != %s", tail, decodeTail(code, len(tail)))
		}
	}
}

func TestEncodeTailRejectsNonACGT(t *testing.T) {
	if _, ok := encodeTail([]byte("ACGN")); ok {
		t.Errorf("encodeTail should reject ambiguity codes")
	}
}

func TestReverseComplementInvolution(t *testing.T) {
	for _, tail := range randomTails {
		rc := reverseComplement(reverseComplement(tail))
		if !bytes.Equal(tail, rc) {
			t.Errorf("reverseComplement(reverseComplement(x)) != x: %s != %s", tail, rc)
		}
	}
}

func BenchmarkEncodeTailK32(b *testing.B) {
	for i := 0; i < b.N; i++ {
		encodeTail(benchTail)
	}
}

func BenchmarkDecodeTailK32(b *testing.B) {
	for i := 0; i < b.N; i++ {
		decodeTail(benchCode, len(benchTail))
	}
}
