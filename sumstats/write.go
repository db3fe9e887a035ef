package sumstats

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteDataset serializes the dataset as a tab-delimited table, emitting the
// original header and the raw cell values of each surviving row so that
// source numeric formatting is preserved.
func WriteDataset(w io.Writer, ds Dataset) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, strings.Join(ds.Header, "\t"))
	for _, rec := range ds.Records {
		fmt.Fprintln(bw, strings.Join(rec.Fields, "\t"))
	}

	return bw.Flush()
}
