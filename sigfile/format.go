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

// Package sigfile implements the self-describing binary container that
// holds a packed collection of k-mer signatures together with optional
// per-signature IDs and free-form metadata, as a header, a lengths
// section, a metadata section, an IDs section and a data section, each
// independently optional except the header and the lengths.
package sigfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/kness-bio/taxoscan"
)

// MainVersion and MinorVersion identify the binary layout this package
// reads and writes.
const (
	MainVersion  uint8 = 1
	MinorVersion uint8 = 0
)

// Magic is the four-byte file signature ("MSF\xFF").
var Magic = [4]byte{0x4D, 0x53, 0x46, 0xFF}

// HeaderSize is the fixed size in bytes of the header.
const HeaderSize = 4 + 4 + 8 + 2 + 64

// Section indices into Header.Offsets, in on-disk order.
const (
	SectionLengths = iota
	SectionMetadata
	SectionIDs
	SectionData
	numSections
)

// ErrInvalidMagic means the file does not begin with the expected magic bytes.
var ErrInvalidMagic = errors.New("sigfile: invalid magic number")

// ErrUnsupportedVersion means the file's version is not one this package understands.
var ErrUnsupportedVersion = errors.New("sigfile: unsupported version")

// ErrTruncated means a read ran past the declared end of the file.
var ErrTruncated = errors.New("sigfile: truncated file")

// ErrUnknownFormatTag means a metadata or IDs section format tag was not recognized.
var ErrUnknownFormatTag = errors.New("sigfile: unknown section format tag")

// ErrLengthMismatch means len(ids) != count at write time.
var ErrLengthMismatch = errors.New("sigfile: ids length does not match signature count")

var be = binary.LittleEndian

// span is a (begin, end) byte-offset pair for one section; begin == 0
// means the section is absent. end is the last byte of the section
// (inclusive), per the spec's "(begin, end-1)" convention.
type span struct {
	Begin int64
	End   int64
}

func (s span) present() bool { return s.Begin != 0 }

func (s span) length() int64 {
	if !s.present() {
		return 0
	}
	return s.End - s.Begin + 1
}

// Header is the fixed 82-byte prefix of a signature file.
type Header struct {
	Version string // "1.00"
	Count   uint64
	Dtype   taxoscan.Width
	offsets [numSections]span
}

func (h Header) String() string {
	return fmt.Sprintf("sigfile v%s, count=%d, dtype=%s", h.Version, h.Count, h.Dtype)
}

func writeHeader(w io.Writer, h Header) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte(fmt.Sprintf("%d.%02d", MainVersion, MinorVersion))); err != nil {
		return err
	}
	if err := binary.Write(w, be, h.Count); err != nil {
		return err
	}
	if _, err := w.Write([]byte(h.Dtype.String())); err != nil {
		return err
	}
	for _, s := range h.offsets {
		if err := binary.Write(w, be, s.Begin); err != nil {
			return err
		}
		if err := binary.Write(w, be, s.End); err != nil {
			return err
		}
	}
	return nil
}

func readHeader(r io.Reader) (Header, error) {
	var m [4]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, ErrTruncated
		}
		return Header{}, err
	}
	if m != Magic {
		return Header{}, ErrInvalidMagic
	}

	var v [4]byte
	if _, err := io.ReadFull(r, v[:]); err != nil {
		return Header{}, ErrTruncated
	}
	version := string(v[:])
	if version[:1] != fmt.Sprintf("%d", MainVersion) {
		return Header{}, ErrUnsupportedVersion
	}

	var h Header
	h.Version = version
	if err := binary.Read(r, be, &h.Count); err != nil {
		return Header{}, ErrTruncated
	}

	var dt [2]byte
	if _, err := io.ReadFull(r, dt[:]); err != nil {
		return Header{}, ErrTruncated
	}
	width, err := taxoscan.ParseWidth(string(dt[:]))
	if err != nil {
		return Header{}, err
	}
	h.Dtype = width

	for i := range h.offsets {
		var begin, end int64
		if err := binary.Read(r, be, &begin); err != nil {
			return Header{}, ErrTruncated
		}
		if err := binary.Read(r, be, &end); err != nil {
			return Header{}, ErrTruncated
		}
		h.offsets[i] = span{Begin: begin, End: end}
	}
	return h, nil
}
