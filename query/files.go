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
	"context"

	"github.com/pkg/errors"

	"github.com/kness-bio/taxoscan"
	"github.com/kness-bio/taxoscan/fastaio"
	"github.com/kness-bio/taxoscan/refdb"
)

// FoldFile reads every record in file and folds it into a single Signature
// under spec, mirroring db-search.go's one-signature-per-input-file scan.
func FoldFile(spec taxoscan.KmerSpec, file string) (taxoscan.Signature, error) {
	records, err := fastaio.ReadAll(file)
	if err != nil {
		return taxoscan.Signature{}, err
	}

	sc := taxoscan.NewScanner(spec)
	for _, rec := range records {
		sc.Fold(rec.Seq)
	}
	sig, err := sc.Finish()
	if err != nil {
		return taxoscan.Signature{}, errors.Wrap(err, file)
	}
	return sig, nil
}

// FromFiles folds every file into a Signature (parallelized the same way
// as Batch, since scanning is independent per file) and then classifies
// the whole batch against db. A file that fails to scan still produces a
// ResultItem, carrying the scan error instead of a classification.
func FromFiles(ctx context.Context, db *refdb.ReferenceDB, files []string, workers int) Results {
	type folded struct {
		input Input
		err   error
	}
	folds := make([]folded, len(files))

	foldBatch := func(i int, file string) {
		sig, err := FoldFile(db.KmerSpec, file)
		folds[i] = folded{input: Input{Descriptor: file, Signature: sig}, err: err}
	}

	// Folding has no shared state across files, so it can reuse the same
	// bounded-worker shape Batch uses for classification.
	sem := make(chan struct{}, workersOrDefault(workers, len(files)))
	done := make(chan struct{}, len(files))
	for i, file := range files {
		select {
		case <-ctx.Done():
			folds[i] = folded{input: Input{Descriptor: file}, err: ctx.Err()}
			done <- struct{}{}
			continue
		case sem <- struct{}{}:
		}
		go func(i int, file string) {
			defer func() { <-sem }()
			foldBatch(i, file)
			done <- struct{}{}
		}(i, file)
	}
	for range files {
		<-done
	}

	inputs := make([]Input, 0, len(files))
	preFolded := make([]ResultItem, len(files))
	indexOf := make([]int, 0, len(files))
	foldCancelled := false
	for i, f := range folds {
		if f.err != nil {
			preFolded[i] = ResultItem{Input: f.input.Descriptor, Error: f.err.Error()}
			if f.err == context.Canceled || f.err == context.DeadlineExceeded {
				foldCancelled = true
			}
			continue
		}
		indexOf = append(indexOf, i)
		inputs = append(inputs, f.input)
	}

	batch := Batch(ctx, db, inputs, workers)

	items := make([]ResultItem, len(files))
	copy(items, preFolded)
	for j, i := range indexOf {
		items[i] = batch.Items[j]
	}

	return Results{
		Items:          items,
		GenomeSet:      db.GenomeSet,
		SignaturesMeta: db.SignaturesMeta,
		Timestamp:      batch.Timestamp,
		Cancelled:      batch.Cancelled || foldCancelled,
	}
}

func workersOrDefault(workers, n int) int {
	if workers <= 0 {
		workers = n
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
