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

import "testing"

func buildTestArray(t *testing.T) (KmerSpec, SignatureArray) {
	t.Helper()
	spec := mustSpec(t, 3, "CCG")
	sigs := make([]Signature, 3)
	var err error
	sigs[0], err = NewSignature(spec, []uint64{1, 4, 9})
	if err != nil {
		t.Fatal(err)
	}
	sigs[1], err = NewSignature(spec, nil)
	if err != nil {
		t.Fatal(err)
	}
	sigs[2], err = NewSignature(spec, []uint64{0, 1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	arr, err := NewSignatureArrayFromSignatures(spec, sigs)
	if err != nil {
		t.Fatal(err)
	}
	return spec, arr
}

func TestSignatureArrayBounds(t *testing.T) {
	_, arr := buildTestArray(t)
	bounds := arr.Bounds()
	want := []uint64{0, 3, 3, 7}
	if len(bounds) != len(want) {
		t.Fatalf("expected %d bounds, got %d", len(want), len(bounds))
	}
	for i, w := range want {
		if bounds[i] != w {
			t.Errorf("bounds[%d]: expected %d, got %d", i, w, bounds[i])
		}
	}
	if arr.NumElements() != len(arr.Values()) {
		t.Errorf("NumElements inconsistent with Values length")
	}
}

func TestSignatureArrayAtIsView(t *testing.T) {
	_, arr := buildTestArray(t)
	s, err := arr.At(0)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 || s.At(0) != 1 || s.At(2) != 9 {
		t.Errorf("unexpected signature view: %v", s.Values())
	}
}

func TestSignatureArraySubsetOrdering(t *testing.T) {
	_, arr := buildTestArray(t)
	sub, err := arr.Subset([]int{2, 0})
	if err != nil {
		t.Fatal(err)
	}
	s0, _ := sub.At(0)
	s1, _ := sub.At(1)
	want0 := []uint64{0, 1, 2, 3}
	want1 := []uint64{1, 4, 9}
	for i, w := range want0 {
		if s0.At(i) != w {
			t.Errorf("subset[0][%d]: expected %d, got %d", i, w, s0.At(i))
		}
	}
	for i, w := range want1 {
		if s1.At(i) != w {
			t.Errorf("subset[1][%d]: expected %d, got %d", i, w, s1.At(i))
		}
	}
}

func TestSignatureArrayMask(t *testing.T) {
	_, arr := buildTestArray(t)
	masked, err := arr.Mask([]bool{true, false, true})
	if err != nil {
		t.Fatal(err)
	}
	if masked.Len() != 2 {
		t.Fatalf("expected 2 signatures after mask, got %d", masked.Len())
	}
}

func TestUninitializedSignatureArrayFill(t *testing.T) {
	spec := mustSpec(t, 3, "CCG")
	arr := NewUninitializedSignatureArray(spec, []uint32{3, 0, 4})
	if err := arr.FillSlot(0, []uint64{1, 4, 9}); err != nil {
		t.Fatal(err)
	}
	if err := arr.FillSlot(2, []uint64{0, 1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	s0, _ := arr.At(0)
	if s0.At(1) != 4 {
		t.Errorf("expected filled value 4, got %d", s0.At(1))
	}
	if err := arr.FillSlot(0, []uint64{1, 2}); err != ErrLengthMismatch {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}
