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
	"strings"
	"testing"
)

func TestScanEmptySequence(t *testing.T) {
	spec := mustSpec(t, 3, "CCG")
	sc := NewScanner(spec)
	sig, err := sc.Scan(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !sig.Empty() {
		t.Errorf("expected empty signature for empty sequence")
	}
}

func TestScanPlantedKmer(t *testing.T) {
	spec := mustSpec(t, 3, "CCG")
	sc := NewScanner(spec)
	sig, err := sc.Scan([]byte("CCGAAA"))
	if err != nil {
		t.Fatal(err)
	}
	if sig.Len() != 1 || sig.At(0) != 0 {
		t.Fatalf("expected signature {0}, got %v", sig.Values())
	}

	sc2 := NewScanner(spec)
	rc, err := sc2.Scan([]byte("TTTCGG"))
	if err != nil {
		t.Fatal(err)
	}
	if rc.Len() != sig.Len() || rc.At(0) != sig.At(0) {
		t.Errorf("reverse complement scan mismatch: %v != %v", rc.Values(), sig.Values())
	}
}

func TestScanOverlappingMatches(t *testing.T) {
	spec := mustSpec(t, 5, "GCCGG")
	sc := NewScanner(spec)
	sig, err := sc.Scan([]byte("GCCGGCCGGATTAT"))
	if err != nil {
		t.Fatal(err)
	}
	if sig.Len() != 2 {
		t.Fatalf("expected 2 tail indices from overlapping matches, got %d: %v", sig.Len(), sig.Values())
	}
}

func TestScanCaseInsensitive(t *testing.T) {
	spec := mustSpec(t, 3, "CCG")
	upper, err := NewScanner(spec).Scan([]byte("CCGAAATTTCCGGGG"))
	if err != nil {
		t.Fatal(err)
	}
	lower, err := NewScanner(spec).Scan([]byte(strings.ToLower("CCGAAATTTCCGGGG")))
	if err != nil {
		t.Fatal(err)
	}
	if upper.Len() != lower.Len() {
		t.Fatalf("case mismatch: %v != %v", upper.Values(), lower.Values())
	}
	for i := 0; i < upper.Len(); i++ {
		if upper.At(i) != lower.At(i) {
			t.Errorf("case mismatch at %d: %d != %d", i, upper.At(i), lower.At(i))
		}
	}
}

func TestScanReverseComplementSymmetry(t *testing.T) {
	spec := mustSpec(t, 4, "ACGT")
	seq := []byte("ACGTAACCGGTTACGTGGCC")
	a, err := NewScanner(spec).Scan(seq)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewScanner(spec).Scan(reverseComplement(seq))
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != b.Len() {
		t.Fatalf("rev-comp asymmetry: %v != %v", a.Values(), b.Values())
	}
	for i := 0; i < a.Len(); i++ {
		if a.At(i) != b.At(i) {
			t.Errorf("rev-comp mismatch at %d: %d != %d", i, a.At(i), b.At(i))
		}
	}
}

func TestScanIdempotentUnderSplitting(t *testing.T) {
	spec := mustSpec(t, 4, "ACGT")
	seq := "ACGTAACCGGTTACGTGGCCACGTTTTT"
	whole, err := NewScanner(spec).Scan([]byte(seq))
	if err != nil {
		t.Fatal(err)
	}

	totalLen := spec.TotalLen()
	overlap := totalLen - 1
	split := len(seq) / 2
	if split < overlap {
		split = overlap
	}
	sc := NewScanner(spec)
	sc.Fold([]byte(seq[:split]))
	sc.Fold([]byte(seq[split-overlap:]))
	folded, err := sc.Finish()
	if err != nil {
		t.Fatal(err)
	}

	if whole.Len() != folded.Len() {
		t.Fatalf("split scan mismatch: %v != %v", whole.Values(), folded.Values())
	}
	for i := 0; i < whole.Len(); i++ {
		if whole.At(i) != folded.At(i) {
			t.Errorf("split scan element %d mismatch: %d != %d", i, whole.At(i), folded.At(i))
		}
	}
}

func TestScanLargeKUsesSparsePath(t *testing.T) {
	spec := mustSpec(t, 20, "ACGT")
	sc := NewScanner(spec)
	if sc.dense != nil {
		t.Fatalf("expected sparse accumulation for k=20")
	}
	sig, err := sc.Scan([]byte("ACGTAAAAAAAAAAAAAAAAAAAAAAAA"))
	if err != nil {
		t.Fatal(err)
	}
	if sig.Len() != 1 {
		t.Errorf("expected exactly one tail index, got %d", sig.Len())
	}
}
