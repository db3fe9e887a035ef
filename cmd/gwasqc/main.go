// gwasqc cleans raw GWAS summary statistics shared in hg38 coordinates:
// malformed rows are dropped, positions are lifted to hg19, MHC and low-MAF
// variants are removed, and three outputs are written per input file (the
// hg19 table, its hg38 re-derivation, and a gzip FUMA upload).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"

	gwasqc "github.com/genepi/gwasqc"
	"github.com/genepi/gwasqc/liftover"
	"github.com/genepi/gwasqc/pipeline"
	"github.com/genepi/gwasqc/sumstats"
)

func main() {
	var inputDir, hg19Dir, hg38Dir, fumaDir string
	var chainTo19, chainTo38, mhc string
	var mafThreshold float64
	var workers int

	flag.StringVar(&inputDir, "input", "0.Raw", "Directory holding raw summary statistics (*.txt, optionally compressed), in hg38 coordinates.")
	flag.StringVar(&hg19Dir, "hg19", "1.hg19", "Output directory for cleaned hg19 tables.")
	flag.StringVar(&hg38Dir, "hg38", "2.hg38", "Output directory for hg38 re-derivations of the cleaned set.")
	flag.StringVar(&fumaDir, "fuma", "3.FUMA", "Output directory for gzip-compressed FUMA tables.")
	flag.StringVar(&chainTo19, "chain3819", "", "Path to the hg38ToHg19 chain file from UCSC. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&chainTo38, "chain1938", "", "Path to the hg19ToHg38 chain file from UCSC. Optionally, may be a google storage URL (gs://)")
	flag.Float64Var(&mafThreshold, "maf", 0.01, "Minimum minor allele frequency; variants at exactly this value are kept.")
	flag.StringVar(&mhc, "mhc", "6:28477797-33448354", "Excluded region as chrom:start-end, in hg19 coordinates.")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "How many input files to process at once.")
	flag.Parse()

	if chainTo19 == "" || chainTo38 == "" {
		flag.Usage()
		log.Fatalln("Must specify --chain3819 and --chain1938 chain files")
	}

	var client *storage.Client
	if strings.HasPrefix(chainTo19, "gs://") ||
		strings.HasPrefix(chainTo38, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	region, err := parseRegion(mhc)
	if err != nil {
		log.Fatalln(err)
	}

	// Both chains are loaded up front: if either is unusable nothing runs,
	// because treating every position as unmapped would silently empty the
	// outputs.
	to19, err := liftover.LoadChain(gwasqc.ExpandHome(chainTo19), client)
	if err != nil {
		log.Fatalln(err)
	}
	to38, err := liftover.LoadChain(gwasqc.ExpandHome(chainTo38), client)
	if err != nil {
		log.Fatalln(err)
	}

	files, err := inputFiles(gwasqc.ExpandHome(inputDir))
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Found %d input files in %s\n", len(files), inputDir)

	cfg := pipeline.Config{
		HG19Dir:       gwasqc.ExpandHome(hg19Dir),
		HG38Dir:       gwasqc.ExpandHome(hg38Dir),
		FUMADir:       gwasqc.ExpandHome(fumaDir),
		ToHG19:        to19,
		ToHG38:        to38,
		ExcludeRegion: region,
		MAFThreshold:  mafThreshold,
		StorageClient: client,
		Workers:       workers,
	}

	reports, err := pipeline.RunAll(files, cfg)
	if err != nil {
		log.Fatalln(err)
	}

	skipped := 0
	for _, report := range reports {
		if report.Err != nil {
			skipped++
		}
	}
	log.Printf("Finished. Processed: %d. Skipped: %d\n", len(reports)-skipped, skipped)
}

func inputFiles(dir string) ([]string, error) {
	// Chain files and individual inputs may live on gs://, but the input
	// directory is enumerated with a local glob, so a bucket path here would
	// quietly match nothing.
	if strings.HasPrefix(dir, "gs://") {
		return nil, fmt.Errorf("-input must be a local directory, not a google storage path: %s", dir)
	}

	files := make([]string, 0)
	for _, pattern := range []string{"*.txt", "*.txt.gz"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

func parseRegion(s string) (sumstats.Region, error) {
	errFormat := fmt.Errorf("Expected region format to be chrom:start-end, but found: %s", s)

	chromSpan := strings.SplitN(s, ":", 2)
	if len(chromSpan) != 2 {
		return sumstats.Region{}, errFormat
	}
	bounds := strings.SplitN(chromSpan[1], "-", 2)
	if len(bounds) != 2 {
		return sumstats.Region{}, errFormat
	}

	chrom, ok := sumstats.NormalizeChromosome(chromSpan[0])
	if !ok {
		return sumstats.Region{}, errFormat
	}
	start, err := strconv.ParseInt(bounds[0], 10, 64)
	if err != nil {
		return sumstats.Region{}, errFormat
	}
	end, err := strconv.ParseInt(bounds[1], 10, 64)
	if err != nil || end < start {
		return sumstats.Region{}, errFormat
	}

	return sumstats.Region{
		Build:      sumstats.BuildHG19,
		Chromosome: chrom,
		Start:      start,
		End:        end,
	}, nil
}
