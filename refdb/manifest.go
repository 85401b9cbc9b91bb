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

// Package refdb bundles a reference SignatureArray, its taxonomy forest and
// the genome-to-taxon cross-linking needed to turn raw signature IDs into
// classifiable reference genomes.
package refdb

import (
	"io/ioutil"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/shenwei356/util/pathutil"
	"gopkg.in/yaml.v2"

	"github.com/kness-bio/taxoscan"
)

// manifestFile is the conventional sidecar name describing a reference bundle.
const manifestFile = "_db.yml"

// Manifest describes the files that make up one reference bundle, the way
// unikmer's "_db.yml" describes a set of index shards.
type Manifest struct {
	Version int `yaml:"version"`

	// K and Prefix reconstruct the KmerSpec the signature file was built
	// under -- the binary format stores only the dtype, neither k nor the
	// anchor prefix, so the manifest is the one place they survive.
	K      int    `yaml:"k"`
	Prefix string `yaml:"prefix"`

	// GenomeSetName/Key/Version identify the reference genome set itself,
	// independent of Version (the manifest schema revision) -- Key is a
	// stable namespaced identifier ("ncbi/refset/example"), Version a
	// string tracking updates to the set's membership or annotations.
	GenomeSetName    string `yaml:"genomeSetName"`
	GenomeSetKey     string `yaml:"genomeSetKey"`
	GenomeSetVersion string `yaml:"genomeSetVersion"`

	// SignatureFile is the path (relative to the manifest) of the binary
	// signature file holding the reference SignatureArray.
	SignatureFile string `yaml:"signatureFile"`

	// GenomeTaxonFile maps each signature ID (as typed by the file's
	// SignaturesMeta.id_attr) to an NCBI-style taxid, one pair per line.
	GenomeTaxonFile string `yaml:"genomeTaxonFile"`

	// TaxonomyNodesFile/TaxonomyNamesFile point at an NCBI taxdump-shaped
	// taxonomy. Leave TaxonomyNamesFile empty to skip scientific names.
	TaxonomyNodesFile string `yaml:"taxonomyNodesFile"`
	TaxonomyNamesFile string `yaml:"taxonomyNamesFile"`

	// RankThresholds sets Taxon.Threshold for every taxon of a given rank.
	RankThresholds map[string]float64 `yaml:"rankThresholds"`

	// ReportRanks restricts Taxon.Report to the named ranks. An empty list
	// leaves every taxon reportable.
	ReportRanks []string `yaml:"reportRanks"`

	path string // directory the manifest was loaded from
}

// LoadManifest reads and validates a Manifest from path (either the
// manifest file itself or a directory containing manifestFile).
func LoadManifest(path string) (*Manifest, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrap(err, "expand manifest path")
	}

	ok, err := pathutil.Exists(expanded)
	if err != nil {
		return nil, errors.Wrap(err, expanded)
	}
	if !ok {
		return nil, errors.Errorf("refdb: manifest path does not exist: %s", expanded)
	}

	isDir, err := pathutil.DirExists(expanded)
	if err != nil {
		return nil, errors.Wrap(err, expanded)
	}
	file := expanded
	if isDir {
		file = filepath.Join(expanded, manifestFile)
	}

	data, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "parse manifest")
	}
	m.path = filepath.Dir(file)

	return &m, m.check()
}

// Spec reconstructs the KmerSpec the manifest's signature file was built
// under, from its K and Prefix fields.
func (m *Manifest) Spec() (taxoscan.KmerSpec, error) {
	return taxoscan.NewKmerSpec(m.K, []byte(m.Prefix))
}

// GenomeSet returns the identity of the reference genome set this manifest
// describes, for attaching to a ReferenceDB and, from there, to query
// results.
func (m *Manifest) GenomeSet() GenomeSet {
	return GenomeSet{
		Name:    m.GenomeSetName,
		Key:     m.GenomeSetKey,
		Version: m.GenomeSetVersion,
	}
}

func (m *Manifest) check() error {
	if m.SignatureFile == "" {
		return errors.New("refdb: manifest missing signatureFile")
	}
	if _, err := m.Spec(); err != nil {
		return errors.Wrap(err, "refdb: manifest has an invalid k/prefix")
	}
	for _, f := range []string{m.SignatureFile, m.GenomeTaxonFile, m.TaxonomyNodesFile} {
		if f == "" {
			continue
		}
		ok, err := pathutil.Exists(m.resolve(f))
		if err != nil {
			return errors.Wrap(err, f)
		}
		if !ok {
			return errors.Errorf("refdb: manifest references missing file: %s", f)
		}
	}
	return nil
}

// resolve joins a manifest-relative path against the manifest's directory.
func (m *Manifest) resolve(f string) string {
	if filepath.IsAbs(f) {
		return f
	}
	return filepath.Join(m.path, f)
}
