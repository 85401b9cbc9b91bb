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

package query

import (
	"github.com/kness-bio/taxoscan"
	"github.com/kness-bio/taxoscan/classify"
	"github.com/kness-bio/taxoscan/refdb"
)

// Single runs one signature against every reference in db and classifies
// the resulting distance vector, never returning a Go error for anything
// db-search.go would consider a per-query outcome -- those land in
// ResultItem.Error instead.
func Single(db *refdb.ReferenceDB, sig taxoscan.Signature, descriptor string) ResultItem {
	dists32, err := taxoscan.OneVsManyDistances(sig, db.Signatures)
	if err != nil {
		return ResultItem{Input: descriptor, Error: err.Error()}
	}

	distances := make([]float64, len(dists32))
	for i, d := range dists32 {
		distances[i] = float64(d)
	}

	result, err := classify.Classify(distances, db)
	if err != nil {
		return ResultItem{Input: descriptor, Error: err.Error()}
	}

	return ResultItem{
		Input:          descriptor,
		Success:        result.Success,
		PredictedTaxon: result.PredictedTaxon,
		ReportTaxon:    result.ReportTaxon,
		Warnings:       result.Warnings,
		Error:          result.Error,
	}
}
