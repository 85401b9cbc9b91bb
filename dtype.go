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

// Width tags the four canonical coordinate types a Signature's elements can
// be stored in. It doubles as the on-disk dtype: String() produces the
// NumPy-style two-character tag used in the SignatureFile header and IDs
// section (§6.1 "u1".."u8").
type Width uint8

const (
	Width8 Width = iota
	Width16
	Width32
	Width64
)

// Bytes is the size in bytes of one element of this Width.
func (w Width) Bytes() int {
	switch w {
	case Width8:
		return 1
	case Width16:
		return 2
	case Width32:
		return 4
	case Width64:
		return 8
	default:
		return 0
	}
}

// String renders the NumPy-style dtype tag, e.g. "u4".
func (w Width) String() string {
	switch w {
	case Width8:
		return "u1"
	case Width16:
		return "u2"
	case Width32:
		return "u4"
	case Width64:
		return "u8"
	default:
		return "??"
	}
}

// ParseWidth parses a two-byte NumPy-style dtype tag ("u1", "u2", "u4", "u8").
func ParseWidth(tag string) (Width, error) {
	switch tag {
	case "u1":
		return Width8, nil
	case "u2":
		return Width16, nil
	case "u4":
		return Width32, nil
	case "u8":
		return Width64, nil
	default:
		return 0, ErrUnknownDtype
	}
}

// Max is the largest representable value of this width.
func (w Width) Max() uint64 {
	switch w {
	case Width8:
		return 1<<8 - 1
	case Width16:
		return 1<<16 - 1
	case Width32:
		return 1<<32 - 1
	default:
		return ^uint64(0)
	}
}

// widthForIndexSpace picks the narrowest Width that holds indexSpace-1.
func widthForIndexSpace(indexSpace uint64) Width {
	maxValue := indexSpace - 1
	switch {
	case maxValue <= Width8.Max():
		return Width8
	case maxValue <= Width16.Max():
		return Width16
	case maxValue <= Width32.Max():
		return Width32
	default:
		return Width64
	}
}
