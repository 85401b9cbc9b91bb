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

// Package classify turns a vector of per-reference distances into a single
// predicted taxon by consensus over a reference taxonomy's ancestor tree.
package classify

import (
	"fmt"
	"sort"

	"github.com/kness-bio/taxoscan/refdb"
	"github.com/kness-bio/taxoscan/taxonomy"
)

// Result is the classifier's verdict for one query: a predicted taxon (the
// consensus of matched references), a report taxon (the nearest reportable
// ancestor of the consensus), diagnostic warnings, and a database-integrity
// error when one of these cannot be computed.
type Result struct {
	Success        bool
	PredictedTaxon *taxonomy.Taxon
	ReportTaxon    *taxonomy.Taxon
	Warnings       []string
	Error          string
}

// ErrLengthMismatch is returned when the distance vector's length does not
// match the number of reference genomes in db.
var ErrLengthMismatch = fmt.Errorf("classify: distance vector length does not match reference count")

// Classify runs the three-step matching/consensus/reporting procedure
// against one query's distances to every reference signature in db.
func Classify(distances []float64, db *refdb.ReferenceDB) (Result, error) {
	if len(distances) != len(db.Genomes) {
		return Result{}, ErrLengthMismatch
	}

	matched := matchingSet(distances, db.Genomes)
	if len(matched) == 0 {
		return Result{Success: true}, nil
	}

	consensus, ok := taxonomy.CommonAncestor(matched)
	if !ok {
		return Result{
			Success: false,
			Error:   "matched taxa have no common ancestor",
		}, nil
	}

	reportTaxon := reportableAncestor(consensus)
	if reportTaxon == nil {
		return Result{
			Success:        false,
			PredictedTaxon: consensus,
			Error:          "no reportable ancestor found above the consensus taxon",
		}, nil
	}

	result := Result{
		Success:        true,
		PredictedTaxon: consensus,
		ReportTaxon:    reportTaxon,
	}
	if others := inconsistentMatches(matched, consensus); len(others) > 0 {
		result.Warnings = append(result.Warnings, warningForOthers(others))
	}
	return result, nil
}

// matchingSet implements Step 1: a reference genome matches iff its
// distance is within its primary taxon's effective (lineage-inherited)
// threshold.
func matchingSet(distances []float64, genomes []refdb.GenomeRecord) []*taxonomy.Taxon {
	matched := make([]*taxonomy.Taxon, 0, len(genomes))
	for i, g := range genomes {
		threshold, ok := g.PrimaryTaxon.EffectiveThreshold()
		if !ok {
			continue
		}
		if distances[i] <= threshold {
			matched = append(matched, g.PrimaryTaxon)
		}
	}
	return matched
}

// reportableAncestor walks t's lineage from itself up to the root and
// returns the first ancestor (inclusive) with Report == true, or nil.
func reportableAncestor(t *taxonomy.Taxon) *taxonomy.Taxon {
	lineage := t.Lineage()
	for i := len(lineage) - 1; i >= 0; i-- {
		if lineage[i].Report {
			return lineage[i]
		}
	}
	return nil
}

// inconsistentMatches returns the subset of matched not on consensus's
// root-to-self path -- the taxa responsible for the consensus being an
// ancestor rather than an exact match.
func inconsistentMatches(matched []*taxonomy.Taxon, consensus *taxonomy.Taxon) []*taxonomy.Taxon {
	onPath := make(map[*taxonomy.Taxon]bool)
	for _, n := range consensus.Lineage() {
		onPath[n] = true
	}

	seen := make(map[*taxonomy.Taxon]bool)
	var others []*taxonomy.Taxon
	for _, t := range matched {
		if onPath[t] || seen[t] {
			continue
		}
		seen[t] = true
		others = append(others, t)
	}
	sort.Slice(others, func(i, j int) bool { return others[i].ID < others[j].ID })
	return others
}

func warningForOthers(others []*taxonomy.Taxon) string {
	names := make([]string, len(others))
	for i, t := range others {
		if t.Name != "" {
			names[i] = t.Name
		} else {
			names[i] = fmt.Sprintf("taxid:%d", t.ID)
		}
	}
	msg := "inconsistent matches outside the consensus lineage:"
	for _, n := range names {
		msg += " " + n
	}
	return msg
}
