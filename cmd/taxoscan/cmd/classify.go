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

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	humanize "github.com/dustin/go-humanize"
	"github.com/shenwei356/stable"
	"github.com/spf13/cobra"

	"github.com/kness-bio/taxoscan/query"
	"github.com/kness-bio/taxoscan/refdb"
	"github.com/kness-bio/taxoscan/taxonomy"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify genome assemblies against a reference database",
	Long: `Classify genome assemblies against a reference database

For every input FASTA/FASTQ file, folds its k-mers into a signature under
the reference database's KmerSpec, compares it against every reference
signature, and reports the consensus taxon of whichever references fall
within their taxon's distance threshold.

Attentions:
  0. Input format should be (gzipped) FASTA or FASTQ from file or stdin.
  1. Increase value of -j/--threads for acceleration.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)

		dbDir := getFlagString(cmd, "db-dir")
		if dbDir == "" {
			checkError(fmt.Errorf("flag -d/--db-dir needed"))
		}
		outFile := getFlagString(cmd, "out-file")
		tabular := getFlagBool(cmd, "tabular")
		strict := getFlagBool(cmd, "strict")

		files := getFileListFromArgs(args)
		if opt.Verbose {
			if len(files) == 1 && isStdin(files[0]) {
				log.Info("no files given, reading from stdin")
			} else {
				log.Infof("%d input file(s) given", len(files))
			}
		}

		if opt.Verbose {
			log.Infof("loading reference database: %s", dbDir)
		}
		db, err := refdb.Load(dbDir, strict)
		checkError(err)
		defer func() {
			checkError(db.Close())
		}()
		if opt.Verbose {
			log.Infof("%d reference genomes loaded", len(db.Genomes))
			if gs := genomeSetLabel(db.GenomeSet); gs != "" {
				log.Infof("reference genome set: %s", gs)
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		results := query.FromFiles(ctx, db, files, opt.NumCPUs)
		if results.Cancelled {
			log.Warning("classification was cancelled, results are partial")
		}

		outfh, gw, w, err := outStream(outFile)
		checkError(err)
		defer func() {
			outfh.Flush()
			if gw != nil {
				gw.Close()
			}
			w.Close()
		}()

		if tabular {
			writeTabular(outfh, results)
			return
		}
		writeTable(outfh, results)
	},
}

func init() {
	RootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringP("db-dir", "d", "", "path to the reference database manifest or its directory")
	classifyCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	classifyCmd.Flags().BoolP("tabular", "T", false, "output in machine-friendly tabular format")
	classifyCmd.Flags().BoolP("strict", "s", false, "fail immediately on any unresolved reference genome instead of dropping it")
}

// genomeSetLabel renders a GenomeSet's identity as a single display
// string, empty when the manifest left every field blank.
func genomeSetLabel(gs refdb.GenomeSet) string {
	if gs.Name == "" && gs.Key == "" && gs.Version == "" {
		return ""
	}
	label := gs.Name
	if label == "" {
		label = gs.Key
	}
	if gs.Key != "" && gs.Key != label {
		label += " (" + gs.Key + ")"
	}
	if gs.Version != "" {
		label += "@" + gs.Version
	}
	return label
}

func taxonName(t *taxonomy.Taxon) string {
	if t == nil {
		return ""
	}
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("taxid:%d", t.ID)
}

func writeTabular(w interface{ WriteString(string) (int, error) }, results query.Results) {
	if gs := genomeSetLabel(results.GenomeSet); gs != "" {
		w.WriteString(fmt.Sprintf("# reference genome set: %s\n", gs))
	}
	w.WriteString("input\tsuccess\tpredicted_taxon\treport_taxon\twarnings\terror\n")
	for _, item := range results.Items {
		w.WriteString(fmt.Sprintf(
			"%s\t%v\t%s\t%s\t%s\t%s\n",
			item.Input,
			item.Success,
			taxonName(item.PredictedTaxon),
			taxonName(item.ReportTaxon),
			strings.Join(item.Warnings, "; "),
			item.Error,
		))
	}
}

func writeTable(w interface{ Write([]byte) (int, error) }, results query.Results) {
	style := &stable.TableStyle{
		Name:      "plain",
		HeaderRow: stable.RowStyle{Begin: "", Sep: "  ", End: ""},
		DataRow:   stable.RowStyle{Begin: "", Sep: "  ", End: ""},
		Padding:   "",
	}
	columns := []stable.Column{
		{Header: "input"},
		{Header: "success", Align: stable.AlignLeft},
		{Header: "predicted_taxon", Align: stable.AlignLeft},
		{Header: "report_taxon", Align: stable.AlignLeft},
		{Header: "warnings", Align: stable.AlignLeft},
		{Header: "error", Align: stable.AlignLeft},
	}
	tbl := stable.New()
	tbl.HeaderWithFormat(columns)

	if gs := genomeSetLabel(results.GenomeSet); gs != "" {
		log.Infof("reference genome set: %s", gs)
	}

	matched := 0
	for _, item := range results.Items {
		if item.Success && item.ReportTaxon != nil {
			matched++
		}
		tbl.AddRow([]interface{}{
			item.Input,
			item.Success,
			taxonName(item.PredictedTaxon),
			taxonName(item.ReportTaxon),
			strings.Join(item.Warnings, "; "),
			item.Error,
		})
	}
	w.Write(tbl.Render(style))
	log.Infof("%s/%s inputs classified to a reportable taxon", humanize.Comma(int64(matched)), humanize.Comma(int64(len(results.Items))))
}
