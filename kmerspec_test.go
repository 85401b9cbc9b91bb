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
	"testing"
)

func TestNewKmerSpecValidation(t *testing.T) {
	if _, err := NewKmerSpec(21, nil); err != ErrEmptyPrefix {
		t.Errorf("expected ErrEmptyPrefix, got %v", err)
	}
	if _, err := NewKmerSpec(0, []byte("CCG")); err != ErrKOutOfRange {
		t.Errorf("expected ErrKOutOfRange for k=0, got %v", err)
	}
	if _, err := NewKmerSpec(33, []byte("CCG")); err != ErrKOutOfRange {
		t.Errorf("expected ErrKOutOfRange for k=33, got %v", err)
	}
	if _, err := NewKmerSpec(3, []byte("CCN")); err != ErrIllegalBase {
		t.Errorf("expected ErrIllegalBase, got %v", err)
	}
}

func TestKmerSpecDerived(t *testing.T) {
	spec, err := NewKmerSpec(3, []byte("ccg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(spec.Prefix(), []byte("CCG")) {
		t.Errorf("prefix not upper-cased: %s", spec.Prefix())
	}
	if spec.PrefixLen() != 3 || spec.TotalLen() != 6 {
		t.Errorf("unexpected prefix_len/total_len: %d/%d", spec.PrefixLen(), spec.TotalLen())
	}
	if spec.IndexSpace() != 64 {
		t.Errorf("expected index_space=64 for k=3, got %d", spec.IndexSpace())
	}
	if spec.Width() != Width8 {
		t.Errorf("expected Width8 for k=3, got %v", spec.Width())
	}
}

func TestKmerSpecWidthBoundaries(t *testing.T) {
	cases := []struct {
		k    int
		want Width
	}{
		{1, Width8}, {4, Width8},
		{5, Width16}, {8, Width16},
		{9, Width32}, {16, Width32},
		{17, Width64}, {32, Width64},
	}
	for _, c := range cases {
		spec, err := NewKmerSpec(c.k, []byte("A"))
		if err != nil {
			t.Fatal(err)
		}
		if got := spec.Width(); got != c.want {
			t.Errorf("k=%d: expected width %v, got %v", c.k, c.want, got)
		}
	}
}

func TestKmerSpecRecordRoundTrip(t *testing.T) {
	spec, err := NewKmerSpec(21, []byte("ACGTACGT"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := spec.WriteRecord(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := ReadKmerSpecRecord(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(spec) {
		t.Errorf("round trip mismatch: %v != %v", got, spec)
	}
}
