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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shenwei356/breader"
)

// ErrIllegalColumnIndex means a 1-based column index was 0 or negative.
var ErrIllegalColumnIndex = errors.New("taxonomy: illegal column index, positive integer needed")

// ncbiNode mirrors one row of nodes.dmp: child taxid, parent taxid, rank.
type ncbiNode struct {
	Taxid  uint32
	Parent uint32
	Rank   string
}

// LoadNCBI builds a Forest from an NCBI taxdump nodes.dmp file, optionally
// enriched with scientific names from a names.dmp file (pass "" to skip).
// Neither distance thresholds nor report flags exist in taxdump itself;
// every loaded Taxon has Threshold == nil and Report == true, leaving
// per-taxon overrides to the caller (see WithThresholds/WithReportRanks).
func LoadNCBI(nodesFile, namesFile string, opts ...NCBIOption) (*Forest, error) {
	return LoadNCBICustom(nodesFile, namesFile, 1, 3, 5, opts...)
}

// LoadNCBICustom is LoadNCBI with explicit 1-based column positions, for
// taxdump-shaped files whose columns have been reordered or trimmed.
func LoadNCBICustom(nodesFile, namesFile string, childColumn, parentColumn, rankColumn int, opts ...NCBIOption) (*Forest, error) {
	if childColumn < 1 || parentColumn < 1 {
		return nil, ErrIllegalColumnIndex
	}
	minColumns := childColumn
	if parentColumn > minColumns {
		minColumns = parentColumn
	}
	if rankColumn > minColumns {
		minColumns = rankColumn
	}

	parseFunc := func(line string) (interface{}, bool, error) {
		items := strings.Split(line, "\t")
		if len(items) < minColumns {
			return nil, false, nil
		}
		child, err := strconv.Atoi(items[childColumn-1])
		if err != nil {
			return nil, false, err
		}
		parent, err := strconv.Atoi(items[parentColumn-1])
		if err != nil {
			return nil, false, err
		}
		var rank string
		if rankColumn >= 1 && rankColumn <= len(items) {
			rank = strings.TrimSpace(items[rankColumn-1])
		}
		return ncbiNode{Taxid: uint32(child), Parent: uint32(parent), Rank: rank}, true, nil
	}

	reader, err := breader.NewBufferedReader(nodesFile, 8, 100, parseFunc)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: %s", err)
	}

	taxa := make(map[uint32]*Taxon, 1024)
	parentOf := make(map[uint32]uint32, 1024)

	var node ncbiNode
	var data interface{}
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, fmt.Errorf("taxonomy: %s", chunk.Err)
		}
		for _, data = range chunk.Data {
			node = data.(ncbiNode)
			taxa[node.Taxid] = &Taxon{ID: node.Taxid, Rank: node.Rank, Report: true}
			if node.Taxid != node.Parent {
				parentOf[node.Taxid] = node.Parent
			}
		}
	}

	for id, t := range taxa {
		parentID, ok := parentOf[id]
		if !ok {
			continue
		}
		parent, ok := taxa[parentID]
		if !ok {
			continue
		}
		t.Parent = parent
		parent.Children = append(parent.Children, t)
	}

	if namesFile != "" {
		if err := loadNCBINames(namesFile, taxa); err != nil {
			return nil, err
		}
	}

	nodes := make([]*Taxon, 0, len(taxa))
	for _, t := range taxa {
		nodes = append(nodes, t)
	}
	forest := NewForest(nodes)

	for _, opt := range opts {
		opt(forest)
	}
	return forest, nil
}

// ncbiName mirrors one row of names.dmp that carries the scientific name.
type ncbiName struct {
	Taxid uint32
	Name  string
}

func loadNCBINames(namesFile string, taxa map[uint32]*Taxon) error {
	const (
		taxidColumn = 1
		nameColumn  = 3
		classColumn = 7
	)
	parseFunc := func(line string) (interface{}, bool, error) {
		items := strings.Split(line, "\t")
		if len(items) < classColumn {
			return nil, false, nil
		}
		if strings.TrimSpace(items[classColumn-1]) != "scientific name" {
			return nil, false, nil
		}
		taxid, err := strconv.Atoi(items[taxidColumn-1])
		if err != nil {
			return nil, false, err
		}
		return ncbiName{Taxid: uint32(taxid), Name: items[nameColumn-1]}, true, nil
	}

	reader, err := breader.NewBufferedReader(namesFile, 8, 100, parseFunc)
	if err != nil {
		return fmt.Errorf("taxonomy: %s", err)
	}
	var name ncbiName
	var data interface{}
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return fmt.Errorf("taxonomy: %s", chunk.Err)
		}
		for _, data = range chunk.Data {
			name = data.(ncbiName)
			if t, ok := taxa[name.Taxid]; ok {
				t.Name = name.Name
			}
		}
	}
	return nil
}

// NCBIOption customizes a Forest built by LoadNCBI/LoadNCBICustom, filling
// in the distance-threshold and report-flag fields taxdump itself lacks.
type NCBIOption func(*Forest)

// WithThresholds sets Threshold on every Taxon whose rank appears in
// byRank (e.g. {"species": 0.05, "genus": 0.1}), leaving the rest nil.
func WithThresholds(byRank map[string]float64) NCBIOption {
	return func(f *Forest) {
		for _, t := range f.byID {
			if v, ok := byRank[t.Rank]; ok {
				val := v
				t.Threshold = &val
			}
		}
	}
}

// WithReportRanks restricts Report to taxa whose rank appears in ranks;
// every other taxon's Report flag is cleared. Without this option every
// NCBI-loaded taxon is reportable.
func WithReportRanks(ranks map[string]bool) NCBIOption {
	return func(f *Forest) {
		for _, t := range f.byID {
			t.Report = ranks[t.Rank]
		}
	}
}

// TaxonRecord is one flat row of a structured (non-NCBI-shaped) taxonomy
// snapshot, as produced e.g. by a relational reference-metadata schema.
type TaxonRecord struct {
	ID        uint32
	ParentID  uint32 // 0 means "this is a root"
	Name      string
	Rank      string
	Report    bool
	Threshold *float64
}

// LoadFromRecords builds a Forest directly from in-memory TaxonRecords,
// for taxonomies that don't arrive as an NCBI taxdump (e.g. loaded from a
// reference-metadata database by an external collaborator).
func LoadFromRecords(records []TaxonRecord) (*Forest, error) {
	taxa := make(map[uint32]*Taxon, len(records))
	for _, rec := range records {
		taxa[rec.ID] = &Taxon{
			ID:        rec.ID,
			Name:      rec.Name,
			Rank:      rec.Rank,
			Report:    rec.Report,
			Threshold: rec.Threshold,
		}
	}
	for _, rec := range records {
		if rec.ParentID == 0 {
			continue
		}
		child := taxa[rec.ID]
		parent, ok := taxa[rec.ParentID]
		if !ok {
			return nil, fmt.Errorf("taxonomy: record %d references unknown parent %d", rec.ID, rec.ParentID)
		}
		child.Parent = parent
		parent.Children = append(parent.Children, child)
	}

	nodes := make([]*Taxon, 0, len(taxa))
	for _, t := range taxa {
		nodes = append(nodes, t)
	}
	return NewForest(nodes), nil
}
