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

package refdb

import (
	"os"

	"github.com/pkg/errors"

	"github.com/kness-bio/taxoscan"
	"github.com/kness-bio/taxoscan/sigfile"
	"github.com/kness-bio/taxoscan/taxonomy"
)

// ErrMissingGenomeIDs is returned by strict cross-linking when one or more
// signature IDs have no entry in the genome-taxon index.
var ErrMissingGenomeIDs = errors.New("refdb: signature IDs missing from genome index")

// GenomeRecord is one reference genome: its external ID (as typed by
// SignaturesMeta.IDAttr) and its primary Taxon.
type GenomeRecord struct {
	ID           string
	PrimaryTaxon *taxonomy.Taxon
}

// GenomeSet identifies the reference genome set a ReferenceDB was loaded
// from: Name for display, Key a stable namespaced identifier intended to
// track the set across distributed updates, Version a string tracking
// revisions to its membership or annotations. Any field may be empty when
// the manifest doesn't set it.
type GenomeSet struct {
	Name    string
	Key     string
	Version string
}

// ReferenceDB is the read-only bundle a Classifier and query pipeline
// consume: reference signatures, the genomes they belong to, and the
// taxonomy forest assigning each genome its primary taxon. Immutable once
// loaded; Close releases the underlying signature file.
type ReferenceDB struct {
	KmerSpec       taxoscan.KmerSpec
	GenomeSet      GenomeSet
	Signatures     taxoscan.SignatureArray
	SignaturesMeta sigfile.Meta
	Genomes        []GenomeRecord
	Forest         *taxonomy.Forest

	f *os.File
}

// Close releases the underlying signature file, if one is held open.
func (db *ReferenceDB) Close() error {
	if db.f == nil {
		return nil
	}
	return db.f.Close()
}

// Load builds a ReferenceDB from a Manifest, the reference SignatureArray
// it names, and the taxonomy it names. The KmerSpec is reconstructed from
// the manifest's own k/prefix fields, since the binary signature format
// never stores the anchor prefix.
func Load(manifestPath string, strict bool) (*ReferenceDB, error) {
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	spec, err := m.Spec()
	if err != nil {
		return nil, errors.Wrap(err, "reconstruct kmer spec")
	}

	f, err := os.Open(m.resolve(m.SignatureFile))
	if err != nil {
		return nil, errors.Wrap(err, "open signature file")
	}

	rd, err := sigfile.Open(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "open signature file")
	}

	meta, _, err := rd.ReadMetadata()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "read signatures metadata")
	}

	ids, hasIDs, err := rd.ReadIDs()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "read signature IDs")
	}
	if !hasIDs {
		f.Close()
		return nil, errors.New("refdb: signature file has no IDs section to cross-link against")
	}

	var opts []taxonomy.NCBIOption
	if len(m.RankThresholds) > 0 {
		opts = append(opts, taxonomy.WithThresholds(m.RankThresholds))
	}
	if len(m.ReportRanks) > 0 {
		ranks := make(map[string]bool, len(m.ReportRanks))
		for _, r := range m.ReportRanks {
			ranks[r] = true
		}
		opts = append(opts, taxonomy.WithReportRanks(ranks))
	}
	forest, err := taxonomy.LoadNCBI(m.resolve(m.TaxonomyNodesFile), resolveOptional(m, m.TaxonomyNamesFile), opts...)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "load taxonomy")
	}

	genomeTaxa, err := loadGenomeTaxonIndex(m.resolve(m.GenomeTaxonFile))
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "load genome-taxon index")
	}

	keep, genomes, missing, err := CrossLink(ids.Strings, genomeTaxa, forest, strict)
	if err != nil {
		f.Close()
		return nil, err
	}
	if len(missing) > 0 && !strict {
		// Permissive mode proceeds over the intersection; the unresolved
		// IDs in `missing` are dropped and Load does not report them.
	}

	var sigs taxoscan.SignatureArray
	if len(keep) == len(ids.Strings) {
		sigs, err = rd.GetAll(spec, 0, nil)
	} else {
		sigs, err = rd.GetSubset(spec, keep, nil)
	}
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "read reference signatures")
	}

	return &ReferenceDB{
		KmerSpec:       spec,
		GenomeSet:      m.GenomeSet(),
		Signatures:     sigs,
		SignaturesMeta: meta,
		Genomes:        genomes,
		Forest:         forest,
		f:              f,
	}, nil
}

func resolveOptional(m *Manifest, f string) string {
	if f == "" {
		return ""
	}
	return m.resolve(f)
}

// CrossLink resolves a list of signature IDs against an external
// genome->taxid index and a taxonomy forest, per the SignatureFile's
// id_attr contract. In strict mode, any unresolved ID is an error. In
// permissive mode, unresolved IDs are dropped and their external IDs
// returned in `missing`; `keep` holds the original indices to pass to
// SignatureArray.Subset or sigfile.Reader.GetSubset so the two stay
// aligned with `genomes`.
func CrossLink(ids []string, genomeTaxa map[string]uint32, forest *taxonomy.Forest, strict bool) (keep []int, genomes []GenomeRecord, missing []string, err error) {
	keep = make([]int, 0, len(ids))
	genomes = make([]GenomeRecord, 0, len(ids))

	for i, id := range ids {
		taxid, ok := genomeTaxa[id]
		var taxon *taxonomy.Taxon
		if ok {
			taxon, ok = forest.Get(taxid)
		}
		if !ok {
			missing = append(missing, id)
			if strict {
				return nil, nil, missing, errors.Wrapf(ErrMissingGenomeIDs, "%s", id)
			}
			continue
		}
		keep = append(keep, i)
		genomes = append(genomes, GenomeRecord{ID: id, PrimaryTaxon: taxon})
	}
	return keep, genomes, missing, nil
}
