// Copyright © 2018-2020 Wei Shen <shenwei356@gmail.com>
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

// Package fastaio adapts github.com/shenwei356/bio/seqio/fastx into the
// plain []byte-yielding records the Scanner needs, the same library and
// calling convention db-search.go uses. Parsing itself stays out of scope:
// this package only shapes records, it never interprets sequence content.
package fastaio

import (
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
)

// Record is one sequence record from a query input file: an identifier and
// its forward-strand bases. The Scanner computes the reverse complement
// itself, so Record never needs to carry both strands.
type Record struct {
	ID  string
	Seq []byte
}

// Reader streams Records out of a single (optionally gzipped) FASTA/FASTQ
// file, mirroring db-search.go's fastx.NewDefaultReader loop.
type Reader struct {
	file string
	r    *fastx.Reader
}

// Open starts reading file, which may be "-" for stdin.
func Open(file string) (*Reader, error) {
	r, err := fastx.NewDefaultReader(file)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	return &Reader{file: file, r: r}, nil
}

// Next returns the next Record, or ok=false once the file is exhausted.
func (r *Reader) Next() (rec Record, ok bool, err error) {
	record, err := r.r.Read()
	if err != nil {
		if err == io.EOF {
			return Record{}, false, nil
		}
		return Record{}, false, errors.Wrap(err, r.file)
	}
	return Record{ID: string(record.ID), Seq: record.Seq.Seq}, true, nil
}

// ReadAll drains every record in file, in file order, one Record per
// sequence; the records are not concatenated.
func ReadAll(file string) ([]Record, error) {
	r, err := Open(file)
	if err != nil {
		return nil, err
	}
	var records []Record
	for {
		rec, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		records = append(records, rec)
	}
	return records, nil
}
