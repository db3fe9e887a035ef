// Package ldsclog collects heritability estimates out of LDSC *_h2.log files
// into summary tables.
package ldsclog

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// H2Estimate holds the metrics LDSC prints at the end of an h2 run. The File
// stem is split on its first underscore into Source and Phenotype
// (e.g. UKB_Height).
type H2Estimate struct {
	File        string  `csv:"File"`
	Source      string  `csv:"Source"`
	Phenotype   string  `csv:"Phenotype"`
	H2          float64 `csv:"h2"`
	H2SE        float64 `csv:"h2_se"`
	ZScore      float64 `csv:"Z_score"`
	LambdaGC    float64 `csv:"Lambda_GC"`
	Intercept   float64 `csv:"Intercept"`
	InterceptSE float64 `csv:"Intercept_se"`
}

var (
	h2Pattern        = regexp.MustCompile(`Total Observed scale h2:\s+([-\d\.]+)\s+\(([\d\.]+)\)`)
	lambdaPattern    = regexp.MustCompile(`Lambda GC:\s+([-\d\.]+)`)
	interceptPattern = regexp.MustCompile(`Intercept:\s+([-\d\.]+)\s+\(([\d\.]+)\)`)
)

// ParseLog extracts the h2, Lambda GC, and intercept estimates from a single
// LDSC log. name is the file's base name, with the _h2.log suffix still on.
func ParseLog(r io.Reader, name string) (H2Estimate, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return H2Estimate{}, pfx.Err(err)
	}

	stem := strings.TrimSuffix(filepath.Base(name), "_h2.log")
	est := H2Estimate{File: stem}
	est.Source, est.Phenotype = splitStem(stem)

	if m := h2Pattern.FindSubmatch(content); m != nil {
		est.H2, _ = strconv.ParseFloat(string(m[1]), 64)
		est.H2SE, _ = strconv.ParseFloat(string(m[2]), 64)
		if est.H2SE > 0 {
			est.ZScore = math.Round(est.H2/est.H2SE*1e4) / 1e4
		}
	} else {
		return est, fmt.Errorf("%s: no h2 estimate found; did the LDSC run finish?", name)
	}

	if m := lambdaPattern.FindSubmatch(content); m != nil {
		est.LambdaGC, _ = strconv.ParseFloat(string(m[1]), 64)
	}

	if m := interceptPattern.FindSubmatch(content); m != nil {
		est.Intercept, _ = strconv.ParseFloat(string(m[1]), 64)
		est.InterceptSE, _ = strconv.ParseFloat(string(m[2]), 64)
	}

	return est, nil
}

// splitStem splits Source_Phenotype on the first underscore.
func splitStem(stem string) (source, phenotype string) {
	if i := strings.Index(stem, "_"); i >= 0 {
		return stem[:i], stem[i+1:]
	}
	return "Unknown", stem
}

// CollectDir parses every *_h2.log under dir, sorted by source then
// phenotype. Unparseable logs are skipped with their errors returned
// alongside the usable estimates.
func CollectDir(dir string) ([]H2Estimate, []error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*_h2.log"))
	if err != nil {
		return nil, []error{pfx.Err(err)}
	}

	var out []H2Estimate
	var errs []error
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			errs = append(errs, pfx.Err(err))
			continue
		}

		est, err := ParseLog(f, filepath.Base(path))
		f.Close()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, est)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Phenotype < out[j].Phenotype
	})

	return out, errs
}

// WriteCSV writes the estimates as a comma-delimited table.
func WriteCSV(w io.Writer, estimates []H2Estimate) error {
	return gocsv.Marshal(&estimates, w)
}

// WriteMatrix pivots the estimates into a phenotype-by-source matrix of h2
// values, the layout papers tabulate directly.
func WriteMatrix(w io.Writer, estimates []H2Estimate) error {
	sources := make([]string, 0)
	phenotypes := make([]string, 0)
	seenSource := make(map[string]bool)
	seenPheno := make(map[string]bool)
	cells := make(map[string]map[string]float64)

	for _, est := range estimates {
		if !seenSource[est.Source] {
			seenSource[est.Source] = true
			sources = append(sources, est.Source)
		}
		if !seenPheno[est.Phenotype] {
			seenPheno[est.Phenotype] = true
			phenotypes = append(phenotypes, est.Phenotype)
		}
		if cells[est.Phenotype] == nil {
			cells[est.Phenotype] = make(map[string]float64)
		}
		cells[est.Phenotype][est.Source] = est.H2
	}
	sort.Strings(sources)
	sort.Strings(phenotypes)

	if _, err := fmt.Fprintln(w, "Phenotype,"+strings.Join(sources, ",")); err != nil {
		return pfx.Err(err)
	}

	for _, pheno := range phenotypes {
		row := []string{pheno}
		for _, source := range sources {
			if h2, exists := cells[pheno][source]; exists {
				row = append(row, strconv.FormatFloat(h2, 'g', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, ",")); err != nil {
			return pfx.Err(err)
		}
	}

	return nil
}
