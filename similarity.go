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
	"runtime"
	"sync"

	"github.com/smallnest/ringbuffer"
)

// Jaccard computes the Jaccard similarity between two Signatures via a
// linear two-pointer merge over their sorted values. Both-empty is defined
// as 1.0 by convention.
func Jaccard(a, b Signature) float32 {
	av, bv := a.values, b.values
	if len(av) == 0 && len(bv) == 0 {
		return 1.0
	}
	var intersection, i, j int
	for i < len(av) && j < len(bv) {
		switch {
		case av[i] == bv[j]:
			intersection++
			i++
			j++
		case av[i] < bv[j]:
			i++
		default:
			j++
		}
	}
	union := len(av) + len(bv) - intersection
	if union == 0 {
		return 1.0
	}
	return float32(intersection) / float32(union)
}

// JaccardDistance is 1 - Jaccard(a, b), returned as exactly 0.0 in the
// both-empty case rather than falling out of floating point subtraction.
func JaccardDistance(a, b Signature) float32 {
	if a.Empty() && b.Empty() {
		return 0.0
	}
	return 1.0 - Jaccard(a, b)
}

// oneVsManyWorkers bounds the goroutine fan-out used by OneVsMany and
// OneVsManyDistances to GOMAXPROCS, the same way the teacher CLI's search
// pool sizes itself off the caller-supplied thread count.
func oneVsManyWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}

// OneVsMany computes Jaccard(query, R[i]) for every reference in R,
// parallelized across references with a bounded worker pool so the result
// is identical regardless of how many goroutines actually ran.
func OneVsMany(query Signature, refs SignatureArray) ([]float32, error) {
	return oneVsManyDispatch(query, refs, Jaccard)
}

// OneVsManyDistances computes JaccardDistance(query, R[i]) for every
// reference in R, parallelized the same way as OneVsMany.
func OneVsManyDistances(query Signature, refs SignatureArray) ([]float32, error) {
	return oneVsManyDispatch(query, refs, JaccardDistance)
}

func oneVsManyDispatch(query Signature, refs SignatureArray, fn func(a, b Signature) float32) ([]float32, error) {
	n := refs.Len()
	out := make([]float32, n)
	if n == 0 {
		return out, nil
	}

	workers := oneVsManyWorkers()
	if workers > n {
		workers = n
	}
	tokens := ringbuffer.New(workers)

	var wg sync.WaitGroup
	var firstErr error
	var mu sync.Mutex

	for i := 0; i < n; i++ {
		tokens.WriteByte(0)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { tokens.ReadByte() }()

			ref, err := refs.At(i)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			out[i] = fn(query, ref)
		}(i)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
