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
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kness-bio/taxoscan"
	"github.com/kness-bio/taxoscan/refdb"
	"github.com/kness-bio/taxoscan/taxonomy"
)

func testSpec(t *testing.T) taxoscan.KmerSpec {
	t.Helper()
	spec, err := taxoscan.NewKmerSpec(4, []byte("ATG"))
	if err != nil {
		t.Fatal(err)
	}
	return spec
}

func sigFromSeq(t *testing.T, spec taxoscan.KmerSpec, seq string) taxoscan.Signature {
	t.Helper()
	sc := taxoscan.NewScanner(spec)
	sc.Fold([]byte(seq))
	sig, err := sc.Finish()
	if err != nil {
		t.Fatal(err)
	}
	return sig
}

func testDB(t *testing.T) (*refdb.ReferenceDB, taxoscan.KmerSpec) {
	t.Helper()
	spec := testSpec(t)

	seqs := []string{
		"ATGAAAACGTACGTACGTTTTGGGCCCAAATTTGGGCCCATGAAAA",
		"ATGCCCGGGTTTAAACCCGGGATGCCCGGGTTTAAACCCGGGATGC",
	}
	sigs := make([]taxoscan.Signature, len(seqs))
	for i, seq := range seqs {
		sigs[i] = sigFromSeq(t, spec, seq)
	}
	arr, err := taxoscan.NewSignatureArrayFromSignatures(spec, sigs)
	if err != nil {
		t.Fatal(err)
	}

	thr := 0.5
	root := &taxonomy.Taxon{ID: 1, Name: "R", Report: true, Threshold: &thr}
	g1 := &taxonomy.Taxon{ID: 2, Name: "G1", Parent: root}
	g2 := &taxonomy.Taxon{ID: 3, Name: "G2", Parent: root}
	root.Children = []*taxonomy.Taxon{g1, g2}
	forest := taxonomy.NewForest([]*taxonomy.Taxon{root, g1, g2})

	db := &refdb.ReferenceDB{
		KmerSpec:   spec,
		GenomeSet:  refdb.GenomeSet{Name: "test-set", Key: "test/refset/example", Version: "1.0"},
		Signatures: arr,
		Genomes: []refdb.GenomeRecord{
			{ID: "genome1", PrimaryTaxon: g1},
			{ID: "genome2", PrimaryTaxon: g2},
		},
		Forest: forest,
	}
	return db, spec
}

func TestSingleMatchesItself(t *testing.T) {
	db, spec := testDB(t)
	sig := sigFromSeq(t, spec, "ATGAAAACGTACGTACGTTTTGGGCCCAAATTTGGGCCCATGAAAA")

	item := Single(db, sig, "query1")
	if item.Error != "" {
		t.Fatalf("unexpected error: %s", item.Error)
	}
	if !item.Success {
		t.Fatal("expected success")
	}
	if item.PredictedTaxon == nil || item.PredictedTaxon.Name != "G1" {
		t.Errorf("expected predicted taxon G1, got %v", item.PredictedTaxon)
	}
}

func TestBatchPreservesOrdering(t *testing.T) {
	db, spec := testDB(t)

	inputs := make([]Input, 20)
	for i := range inputs {
		seq := fmt.Sprintf("ATG%sAAA", fmt.Sprintf("%04d", i))
		inputs[i] = Input{
			Descriptor: fmt.Sprintf("input-%02d", i),
			Signature:  sigFromSeq(t, spec, seq+"CCCGGGTTTAAACCCGGGATGCCCGGGTTT"),
		}
	}

	results := Batch(context.Background(), db, inputs, 4)
	if results.Cancelled {
		t.Fatal("did not expect cancellation")
	}
	if len(results.Items) != len(inputs) {
		t.Fatalf("expected %d items, got %d", len(inputs), len(results.Items))
	}
	for i, item := range results.Items {
		want := fmt.Sprintf("input-%02d", i)
		if item.Input != want {
			t.Errorf("item %d: expected descriptor %q, got %q", i, want, item.Input)
		}
	}
	if results.GenomeSet != db.GenomeSet {
		t.Errorf("expected GenomeSet %+v to be carried through, got %+v", db.GenomeSet, results.GenomeSet)
	}
}

func TestBatchEmptyInputs(t *testing.T) {
	db, _ := testDB(t)
	results := Batch(context.Background(), db, nil, 4)
	if len(results.Items) != 0 {
		t.Errorf("expected no items, got %d", len(results.Items))
	}
	if results.Cancelled {
		t.Error("did not expect cancellation for an empty batch")
	}
}

func TestBatchCancellationStopsDispatch(t *testing.T) {
	db, spec := testDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	time.Sleep(time.Millisecond)

	inputs := make([]Input, 5)
	for i := range inputs {
		inputs[i] = Input{
			Descriptor: fmt.Sprintf("input-%d", i),
			Signature:  sigFromSeq(t, spec, "ATGAAACCCGGGTTTAAACCCGGGATGAAA"),
		}
	}

	results := Batch(ctx, db, inputs, 2)
	if !results.Cancelled {
		t.Error("expected Cancelled to be true when ctx is already done")
	}
}

func TestFromFiles(t *testing.T) {
	db, _ := testDB(t)
	dir := t.TempDir()

	path1 := filepath.Join(dir, "a.fasta")
	if err := os.WriteFile(path1, []byte(">c1\nATGAAAACGTACGTACGTTTTGGGCCCAAATTTGGGCCCATGAAAA\n"), 0644); err != nil {
		t.Fatal(err)
	}
	path2 := filepath.Join(dir, "bad.fasta")
	if err := os.WriteFile(path2, []byte("not fasta at all"), 0644); err != nil {
		t.Fatal(err)
	}

	results := FromFiles(context.Background(), db, []string{path1, path2}, 2)
	if len(results.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(results.Items))
	}
	if results.Items[0].Input != path1 {
		t.Errorf("expected first item to be %s, got %s", path1, results.Items[0].Input)
	}
	if results.Items[0].Error != "" {
		t.Errorf("unexpected error for valid file: %s", results.Items[0].Error)
	}
}
