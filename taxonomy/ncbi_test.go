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

package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

// writeDmp writes lines in NCBI taxdump's "\t|\t"-joined, "\t|\n"-terminated
// style.
func writeDmp(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	for _, row := range rows {
		line := ""
		for i, field := range row {
			if i > 0 {
				line += "\t|\t"
			}
			line += field
		}
		line += "\t|\n"
		if _, err := f.WriteString(line); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func TestLoadNCBI(t *testing.T) {
	dir := t.TempDir()
	nodes := writeDmp(t, dir, "nodes.dmp", [][]string{
		{"1", "1", "no rank"},
		{"2", "1", "superkingdom"},
		{"3", "2", "species"},
		{"4", "2", "species"},
	})
	names := writeDmp(t, dir, "names.dmp", [][]string{
		{"1", "root", "", "scientific name"},
		{"2", "Bacteria", "", "scientific name"},
		{"2", "Bacteria syn", "", "synonym"},
		{"3", "Escherichia coli", "", "scientific name"},
		{"4", "Salmonella enterica", "", "scientific name"},
	})

	forest, err := LoadNCBI(nodes, names)
	if err != nil {
		t.Fatal(err)
	}
	if forest.Len() != 4 {
		t.Fatalf("expected 4 taxa, got %d", forest.Len())
	}

	root, ok := forest.Get(1)
	if !ok || !root.IsRoot() {
		t.Fatal("expected taxid 1 to be the sole root")
	}
	if root.Name != "root" {
		t.Errorf("expected root name %q, got %q", "root", root.Name)
	}

	ecoli, ok := forest.Get(3)
	if !ok {
		t.Fatal("expected taxid 3 to be loaded")
	}
	if ecoli.Name != "Escherichia coli" {
		t.Errorf("expected scientific name, got %q (synonym should have been skipped)", ecoli.Name)
	}
	if ecoli.Parent == nil || ecoli.Parent.ID != 2 {
		t.Error("expected taxid 3's parent to be taxid 2")
	}

	consensus, ok := CommonAncestor([]*Taxon{forest.byID[3], forest.byID[4]})
	if !ok || consensus.ID != 2 {
		t.Errorf("expected consensus of the two species to be taxon 2")
	}
}

func TestLoadNCBIWithOptions(t *testing.T) {
	dir := t.TempDir()
	nodes := writeDmp(t, dir, "nodes.dmp", [][]string{
		{"1", "1", "no rank"},
		{"2", "1", "species"},
	})

	forest, err := LoadNCBI(nodes, "",
		WithThresholds(map[string]float64{"species": 0.05}),
		WithReportRanks(map[string]bool{"species": true}),
	)
	if err != nil {
		t.Fatal(err)
	}

	species, _ := forest.Get(2)
	if species.Threshold == nil || *species.Threshold != 0.05 {
		t.Error("expected species-rank threshold to be set to 0.05")
	}
	if !species.Report {
		t.Error("expected species rank to be reportable")
	}

	root, _ := forest.Get(1)
	if root.Report {
		t.Error("expected root (rank != species) to not be reportable after WithReportRanks")
	}
}

func TestLoadFromRecords(t *testing.T) {
	thresh := 0.1
	records := []TaxonRecord{
		{ID: 1, Name: "root", Report: true},
		{ID: 2, ParentID: 1, Name: "child", Report: true, Threshold: &thresh},
	}
	forest, err := LoadFromRecords(records)
	if err != nil {
		t.Fatal(err)
	}
	child, ok := forest.Get(2)
	if !ok || child.Parent == nil || child.Parent.ID != 1 {
		t.Fatal("expected child's parent to be root")
	}
	if got, ok := child.EffectiveThreshold(); !ok || got != thresh {
		t.Errorf("expected effective threshold %v, got %v (ok=%v)", thresh, got, ok)
	}
}

func TestLoadFromRecordsUnknownParent(t *testing.T) {
	records := []TaxonRecord{
		{ID: 1, ParentID: 42, Name: "orphan"},
	}
	if _, err := LoadFromRecords(records); err == nil {
		t.Error("expected an error for a record referencing an unknown parent")
	}
}
