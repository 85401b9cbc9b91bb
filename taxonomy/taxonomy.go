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

import "errors"

// ErrUnknownTaxon means a referenced taxon id is not present in the forest.
var ErrUnknownTaxon = errors.New("taxonomy: unknown taxon id")

// Forest is a read-only collection of Taxon trees indexed by ID. Unlike
// the teacher's single-tree NCBI taxonomy, a Forest may hold more than one
// root — CommonAncestor reports "no common ancestor" rather than
// collapsing unrelated trees into one synthetic root.
type Forest struct {
	byID  map[uint32]*Taxon
	roots []*Taxon
}

// NewForest builds a Forest from a flat set of already-linked Taxon nodes.
// Nodes whose Parent is nil are treated as roots.
func NewForest(nodes []*Taxon) *Forest {
	f := &Forest{byID: make(map[uint32]*Taxon, len(nodes))}
	for _, n := range nodes {
		f.byID[n.ID] = n
		if n.IsRoot() {
			f.roots = append(f.roots, n)
		}
	}
	return f
}

// Get looks up a Taxon by id.
func (f *Forest) Get(id uint32) (*Taxon, bool) {
	t, ok := f.byID[id]
	return t, ok
}

// Roots returns every tree root in the forest.
func (f *Forest) Roots() []*Taxon { return f.roots }

// Len is the total number of taxa across every tree.
func (f *Forest) Len() int { return len(f.byID) }

// root returns n's tree root by walking parent links.
func root(n *Taxon) *Taxon {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// ancestorSet is the set of n's inclusive ancestors, root to n.
func ancestorSet(n *Taxon) map[*Taxon]struct{} {
	set := make(map[*Taxon]struct{})
	for cur := n; cur != nil; cur = cur.Parent {
		set[cur] = struct{}{}
	}
	return set
}

// CommonAncestor returns the unique deepest Taxon that is an inclusive
// ancestor of every element of taxa. Empty taxa is undefined (no
// prediction, per the classifier's §4.7 "M is empty" case). If the
// elements span more than one tree of the forest, there is no common
// ancestor and ok is false — the single-tree teacher LCA never needed to
// make this distinction since NCBI's taxonomy is always one tree.
func CommonAncestor(taxa []*Taxon) (consensus *Taxon, ok bool) {
	if len(taxa) == 0 {
		return nil, false
	}

	firstRoot := root(taxa[0])
	for _, t := range taxa[1:] {
		if root(t) != firstRoot {
			return nil, false
		}
	}

	common := ancestorSet(taxa[0])
	for _, t := range taxa[1:] {
		next := ancestorSet(t)
		for n := range common {
			if _, in := next[n]; !in {
				delete(common, n)
			}
		}
		if len(common) == 0 {
			return nil, false
		}
	}

	bestDepth := -1
	for n := range common {
		d := n.depth()
		if d > bestDepth {
			bestDepth = d
			consensus = n
		}
	}
	return consensus, true
}
