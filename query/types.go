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

// Package query drives signature extraction, similarity and classification
// over one or many query inputs, parallelizing independent inputs across a
// bounded worker pool.
package query

import (
	"time"

	"github.com/kness-bio/taxoscan"
	"github.com/kness-bio/taxoscan/refdb"
	"github.com/kness-bio/taxoscan/sigfile"
	"github.com/kness-bio/taxoscan/taxonomy"
)

// Input is one query: an opaque descriptor (e.g. a file path) paired with
// the Signature folded from it.
type Input struct {
	Descriptor string
	Signature  taxoscan.Signature
}

// ResultItem is the outcome of classifying one Input.
type ResultItem struct {
	Input          string
	Success        bool
	PredictedTaxon *taxonomy.Taxon
	ReportTaxon    *taxonomy.Taxon
	Warnings       []string
	Error          string
}

// Results is an ordered batch of ResultItems plus a snapshot of the
// reference bundle identity used to produce them: the genome set the
// references belong to, and the signature file's own metadata.
type Results struct {
	Items          []ResultItem
	GenomeSet      refdb.GenomeSet
	SignaturesMeta sigfile.Meta
	Timestamp      time.Time
	Cancelled      bool
}
