package pipeline

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"

	gwasqc "github.com/genepi/gwasqc"
	"github.com/genepi/gwasqc/fuma"
	"github.com/genepi/gwasqc/liftover"
	"github.com/genepi/gwasqc/sumstats"
)

// Report summarizes one file's run: how many rows each stage read and kept,
// and whether a fatal error skipped the file entirely.
type Report struct {
	File   string
	Stages []sumstats.StageReport
	Err    error
}

func (r Report) Log() {
	if r.Err != nil {
		log.Printf("%s: skipped: %v\n", filepath.Base(r.File), r.Err)
		return
	}
	for _, stage := range r.Stages {
		log.Printf("%s: %s\n", filepath.Base(r.File), stage)
	}
}

// ProcessFile runs the full cleaning flow for one input file: validate, lift
// hg38->hg19, drop the exclusion region, drop low-MAF variants, then write
// the hg19 table, the FUMA table, and the hg19->hg38 re-derivation. All
// stages complete in memory before anything is written, so a failing file
// leaves no partial output.
func ProcessFile(path string, cfg Config) Report {
	report := Report{File: path}

	f, err := gwasqc.MaybeOpenFromGoogleStorage(path, cfg.StorageClient)
	if err != nil {
		report.Err = err
		return report
	}
	defer f.Close()

	r, err := gwasqc.MaybeDecompressReadCloser(f)
	if err != nil {
		report.Err = err
		return report
	}

	raw, stage, err := sumstats.ReadDataset(r, sumstats.BuildHG38)
	if err != nil {
		report.Err = err
		return report
	}
	report.Stages = append(report.Stages, stage)

	if len(raw.Records) == 0 {
		report.Err = fmt.Errorf("no rows survived validation")
		return report
	}

	hg19, stage, err := liftover.Apply(raw, cfg.ToHG19)
	if err != nil {
		report.Err = err
		return report
	}
	report.Stages = append(report.Stages, stage)

	hg19, stage, err = sumstats.FilterRegion(hg19, cfg.ExcludeRegion)
	if err != nil {
		report.Err = err
		return report
	}
	report.Stages = append(report.Stages, stage)

	hg19, stage, err = sumstats.FilterMAF(hg19, cfg.MAFThreshold)
	if err != nil {
		report.Err = err
		return report
	}
	report.Stages = append(report.Stages, stage)

	// The hg38 output is re-derived from the filtered hg19 set, not taken
	// from the raw input, so hg38-output rows are always a subset of the hg19
	// output.
	hg38, stage, err := liftover.Apply(hg19, cfg.ToHG38)
	if err != nil {
		report.Err = err
		return report
	}
	report.Stages = append(report.Stages, stage)

	if err := writeOutputs(path, cfg, hg19, hg38); err != nil {
		report.Err = err
		return report
	}

	return report
}

func writeOutputs(path string, cfg Config, hg19, hg38 sumstats.Dataset) error {
	base := filepath.Base(path)

	written := make([]string, 0, 3)
	write := func(outPath string, body func(f *os.File) error) error {
		f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return pfx.Err(err)
		}
		written = append(written, outPath)

		if err := body(f); err != nil {
			f.Close()
			return pfx.Err(err)
		}
		return f.Close()
	}

	err := write(filepath.Join(cfg.HG19Dir, base), func(f *os.File) error {
		return sumstats.WriteDataset(f, hg19)
	})
	if err == nil {
		err = write(filepath.Join(cfg.FUMADir, fumaName(base)), func(f *os.File) error {
			return fuma.Write(f, hg19)
		})
	}
	if err == nil {
		err = write(filepath.Join(cfg.HG38Dir, base), func(f *os.File) error {
			return sumstats.WriteDataset(f, hg38)
		})
	}

	if err != nil {
		// Do not leave a partial set of outputs behind.
		for _, p := range written {
			os.Remove(p)
		}
		return err
	}

	return nil
}

// fumaName yields name.txt.gz regardless of the input's own extension, so
// name.txt, name.txt.gz, and name.tsv all map to the same FUMA file name.
func fumaName(base string) string {
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".txt.gz"
}
