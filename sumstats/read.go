package sumstats

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"

	gwasqc "github.com/genepi/gwasqc"
)

// ReadDataset parses and validates a delimited summary-statistics table into
// a Dataset tagged with the given build. Rows failing validation are dropped
// and counted in the StageReport, never repaired. Only an unreadable input or
// a header missing required columns is an error.
func ReadDataset(r io.Reader, build string) (Dataset, StageReport, error) {
	report := StageReport{Stage: "validate"}

	raw, err := io.ReadAll(r)
	if err != nil {
		return Dataset{}, report, pfx.Err(err)
	}

	rows, err := splitRows(raw)
	if err != nil {
		return Dataset{}, report, err
	}
	if len(rows) == 0 {
		return Dataset{}, report, fmt.Errorf("input contains no header row")
	}

	header := rows[0]
	layout, err := ParseHeader(header)
	if err != nil {
		return Dataset{}, report, err
	}

	ds := Dataset{
		Build:  build,
		Header: header,
		Layout: layout,
	}

	for _, fields := range rows[1:] {
		report.Read++

		rec, err := parseRow(layout, fields)
		if err != nil {
			continue
		}

		report.Kept++
		ds.Records = append(ds.Records, rec)
	}

	return ds, report, nil
}

// splitRows tokenizes the raw table. Space- and tab-delimited files are split
// on whitespace runs, which tolerates aligned columns; any other detected
// delimiter is handled as CSV.
func splitRows(raw []byte) ([][]string, error) {
	head := raw
	if len(head) > 64*1024 {
		head = head[:64*1024]
	}
	delim := gwasqc.DetermineDelimiter(bytes.NewReader(head))

	if delim != ' ' && delim != '\t' {
		cr := csv.NewReader(bytes.NewReader(raw))
		cr.Comma = delim
		cr.FieldsPerRecord = -1
		rows, err := cr.ReadAll()
		if err != nil {
			return nil, pfx.Err(err)
		}
		return rows, nil
	}

	var rows [][]string
	sc := bufio.NewScanner(bytes.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return rows, nil
}

func parseRow(layout Layout, fields []string) (VariantRecord, error) {
	rec := VariantRecord{Fields: fields}

	if layout.maxCol() >= len(fields) {
		return rec, fmt.Errorf("row has %d fields, need at least %d", len(fields), layout.maxCol()+1)
	}

	rec.SNP = fields[layout.ColSNP]
	rec.EffectAllele = fields[layout.ColEffectAllele]
	rec.OtherAllele = fields[layout.ColOtherAllele]
	if rec.SNP == "" || rec.EffectAllele == "" || rec.OtherAllele == "" {
		return rec, fmt.Errorf("empty identifier or allele")
	}

	chrom, ok := NormalizeChromosome(fields[layout.ColChromosome])
	if !ok {
		return rec, fmt.Errorf("unrecognized chromosome %q", fields[layout.ColChromosome])
	}
	rec.Chromosome = chrom

	pos, err := parseIntegral(fields[layout.ColPosition])
	if err != nil || pos < 0 {
		return rec, fmt.Errorf("bad position %q", fields[layout.ColPosition])
	}
	rec.Position = pos

	if rec.EAF, err = strconv.ParseFloat(fields[layout.ColEAF], 64); err != nil || rec.EAF < 0 || rec.EAF > 1 {
		return rec, fmt.Errorf("allele frequency %q outside [0,1]", fields[layout.ColEAF])
	}

	if rec.Beta, err = strconv.ParseFloat(fields[layout.ColBeta], 64); err != nil || math.IsNaN(rec.Beta) || math.IsInf(rec.Beta, 0) {
		return rec, fmt.Errorf("bad beta %q", fields[layout.ColBeta])
	}

	if rec.SE, err = strconv.ParseFloat(fields[layout.ColSE], 64); err != nil || math.IsNaN(rec.SE) || math.IsInf(rec.SE, 0) || rec.SE < 0 {
		return rec, fmt.Errorf("bad standard error %q", fields[layout.ColSE])
	}

	if rec.PValue, err = strconv.ParseFloat(fields[layout.ColPValue], 64); err != nil || rec.PValue <= 0 || rec.PValue > 1 {
		return rec, fmt.Errorf("p-value %q outside (0,1]", fields[layout.ColPValue])
	}

	n, err := parseIntegral(fields[layout.ColSampleSize])
	if err != nil || n <= 0 {
		return rec, fmt.Errorf("bad sample size %q", fields[layout.ColSampleSize])
	}
	rec.SampleSize = n

	return rec, nil
}

// parseIntegral accepts plain integers as well as float notation with no
// fractional part ("123456.0"), which some tools emit for positions and
// sample sizes.
func parseIntegral(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}

	return int64(f), nil
}
