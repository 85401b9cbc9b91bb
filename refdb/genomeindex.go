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
	"fmt"
	"strconv"
	"strings"

	"github.com/shenwei356/breader"
)

// genomeTaxonRow is one line of a genome-taxon index: external signature ID
// (a refseq accession or similar) tab-separated from its NCBI taxid.
type genomeTaxonRow struct {
	ID    string
	Taxid uint32
}

// loadGenomeTaxonIndex reads a two-column TSV (id, taxid) into a lookup
// table, using the same buffered-chunk reader the taxonomy loader uses for
// nodes.dmp.
func loadGenomeTaxonIndex(file string) (map[string]uint32, error) {
	parseFunc := func(line string) (interface{}, bool, error) {
		items := strings.SplitN(line, "\t", 2)
		if len(items) < 2 {
			return nil, false, nil
		}
		taxid, err := strconv.Atoi(strings.TrimSpace(items[1]))
		if err != nil {
			return nil, false, err
		}
		return genomeTaxonRow{ID: items[0], Taxid: uint32(taxid)}, true, nil
	}

	reader, err := breader.NewBufferedReader(file, 8, 100, parseFunc)
	if err != nil {
		return nil, fmt.Errorf("refdb: %s", err)
	}

	index := make(map[string]uint32, 1024)
	var row genomeTaxonRow
	var data interface{}
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, fmt.Errorf("refdb: %s", chunk.Err)
		}
		for _, data = range chunk.Data {
			row = data.(genomeTaxonRow)
			index[row.ID] = row.Taxid
		}
	}
	return index, nil
}
