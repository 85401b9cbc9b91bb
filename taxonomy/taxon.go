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

// Package taxonomy models a forest of reference Taxon nodes: lineage,
// leaves, per-node distance thresholds and reporting flags, and the
// n-ary common-ancestor operation the classifier needs.
package taxonomy

// Taxon is one node of a reference taxonomy: an id, optional name/rank, an
// optional distance threshold (the maximum query-to-reference distance for
// a match to count within this taxon), a report flag, and parent/children
// links.
type Taxon struct {
	ID        uint32
	Name      string
	Rank      string
	Report    bool
	Threshold *float64 // nil means "not defined at this node"

	Parent   *Taxon
	Children []*Taxon
}

// IsRoot reports whether this Taxon has no parent.
func (t *Taxon) IsRoot() bool { return t.Parent == nil }

// IsLeaf reports whether this Taxon has no children.
func (t *Taxon) IsLeaf() bool { return len(t.Children) == 0 }

// Lineage returns the chain from the root to this Taxon, inclusive, root first.
func (t *Taxon) Lineage() []*Taxon {
	var rev []*Taxon
	for n := t; n != nil; n = n.Parent {
		rev = append(rev, n)
	}
	out := make([]*Taxon, len(rev))
	for i, n := range rev {
		out[len(rev)-1-i] = n
	}
	return out
}

// Leaves returns this Taxon itself if it is a leaf, or the union of its
// children's leaves otherwise.
func (t *Taxon) Leaves() []*Taxon {
	if t.IsLeaf() {
		return []*Taxon{t}
	}
	var out []*Taxon
	for _, c := range t.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// EffectiveThreshold walks this Taxon's lineage root-to-self and returns the
// tightest (minimum) distance threshold defined along it, and whether any
// was defined at all. This is the Open Question resolution: lineage
// inheritance picks the strictest ancestor constraint, not the nearest one.
func (t *Taxon) EffectiveThreshold() (threshold float64, ok bool) {
	for _, n := range t.Lineage() {
		if n.Threshold == nil {
			continue
		}
		if !ok || *n.Threshold < threshold {
			threshold = *n.Threshold
			ok = true
		}
	}
	return threshold, ok
}

// depth is the Taxon's distance from the root (root has depth 0), used by
// CommonAncestor's ancestor-walk.
func (t *Taxon) depth() int {
	d := 0
	for n := t.Parent; n != nil; n = n.Parent {
		d++
	}
	return d
}
