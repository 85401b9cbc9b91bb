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

import "errors"

// Validation errors (KmerSpec, Signature, SignatureArray construction).
var (
	ErrEmptyPrefix      = errors.New("taxoscan: empty prefix")
	ErrIllegalBase      = errors.New("taxoscan: non-ACGT character in prefix")
	ErrKOutOfRange      = errors.New("taxoscan: k must be in [1, 32]")
	ErrBoundsNotSorted  = errors.New("taxoscan: bounds is not non-decreasing")
	ErrIndexOutOfRange  = errors.New("taxoscan: index out of range")
	ErrNotSorted        = errors.New("taxoscan: values are not strictly increasing")
	ErrValueOutOfRange  = errors.New("taxoscan: value >= 4^k")
	ErrLengthMismatch   = errors.New("taxoscan: length mismatch")
	ErrUnknownDtype     = errors.New("taxoscan: unknown coordinate dtype")
)
