// Package fuma projects a cleaned summary-statistics dataset into the fixed
// column schema the FUMA platform expects and serializes it gzip-compressed.
package fuma

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/genepi/gwasqc/sumstats"
)

// Header is the exact column order of a FUMA upload file.
var Header = []string{"SNP", "A1", "A2", "BETA", "SE", "P", "N", "CHR", "BP"}

// Write serializes ds in the FUMA schema, tab-delimited and gzip-compressed.
// It is a pure projection: no filtering, and the raw cell values pass through
// so numeric precision is untouched.
func Write(w io.Writer, ds sumstats.Dataset) error {
	gz := gzip.NewWriter(w)
	bw := bufio.NewWriter(gz)

	fmt.Fprintln(bw, strings.Join(Header, "\t"))

	l := ds.Layout
	for _, rec := range ds.Records {
		fmt.Fprintln(bw, strings.Join([]string{
			rec.Fields[l.ColSNP],
			rec.Fields[l.ColEffectAllele],
			rec.Fields[l.ColOtherAllele],
			rec.Fields[l.ColBeta],
			rec.Fields[l.ColSE],
			rec.Fields[l.ColPValue],
			rec.Fields[l.ColSampleSize],
			rec.Fields[l.ColChromosome],
			rec.Fields[l.ColPosition],
		}, "\t"))
	}

	if err := bw.Flush(); err != nil {
		return err
	}

	return gz.Close()
}
