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
	"runtime"
	"sync"
	"time"

	"github.com/smallnest/ringbuffer"

	"github.com/kness-bio/taxoscan/refdb"
)

// Batch runs every input against db, one call to Single per input,
// spreading the work across a bounded pool of workers the same way
// util-search.go's UnikIndexDB.Search bounds concurrency with a
// ringbuffer of tokens. Each input writes into its own index-addressed
// slot, so Results.Items[i] always corresponds to inputs[i] regardless of
// which worker finishes first.
//
// If ctx is cancelled, Batch stops dispatching new inputs, lets
// already-started ones run to completion, and returns with Cancelled
// set and the unstarted slots left as their zero ResultItem. Batch never
// writes to db, so cancellation can never corrupt on-disk state.
func Batch(ctx context.Context, db *refdb.ReferenceDB, inputs []Input, workers int) Results {
	items := make([]ResultItem, len(inputs))
	if len(inputs) == 0 {
		return Results{Items: items, GenomeSet: db.GenomeSet, SignaturesMeta: db.SignaturesMeta, Timestamp: time.Now()}
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}
	tokens := ringbuffer.New(workers)

	var wg sync.WaitGroup
	var mu sync.Mutex
	cancelled := false

	for i, in := range inputs {
		select {
		case <-ctx.Done():
			mu.Lock()
			cancelled = true
			mu.Unlock()
		default:
		}

		mu.Lock()
		stop := cancelled
		mu.Unlock()
		if stop {
			break
		}

		tokens.WriteByte(0)
		wg.Add(1)
		go func(i int, in Input) {
			defer wg.Done()
			defer func() { tokens.ReadByte() }()
			items[i] = Single(db, in.Signature, in.Descriptor)
		}(i, in)
	}
	wg.Wait()

	return Results{
		Items:          items,
		GenomeSet:      db.GenomeSet,
		SignaturesMeta: db.SignaturesMeta,
		Timestamp:      time.Now(),
		Cancelled:      cancelled,
	}
}
