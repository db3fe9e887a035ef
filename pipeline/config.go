// Package pipeline composes validation, liftover, and filtering into the
// full per-file cleaning flow and runs many files concurrently.
package pipeline

import (
	"fmt"

	"cloud.google.com/go/storage"

	"github.com/genepi/gwasqc/liftover"
	"github.com/genepi/gwasqc/sumstats"
)

// Config is the fixed configuration shared by every file in a run.
type Config struct {
	// Output directories, one per category.
	HG19Dir string
	HG38Dir string
	FUMADir string

	// ToHG19 lifts the raw hg38 input down; ToHG38 re-derives hg38 positions
	// from the filtered hg19 set. Both are read-only and shared across
	// concurrent files.
	ToHG19 liftover.BuildMapper
	ToHG38 liftover.BuildMapper

	ExcludeRegion sumstats.Region
	MAFThreshold  float64

	// StorageClient is only needed when inputs live on gs://.
	StorageClient *storage.Client

	// Workers bounds how many files are processed at once. Zero means one.
	Workers int
}

// Validate catches configuration errors before any file is touched.
func (c Config) Validate() error {
	if c.HG19Dir == "" || c.HG38Dir == "" || c.FUMADir == "" {
		return fmt.Errorf("all three output directories must be set")
	}

	if c.ToHG19 == nil || c.ToHG38 == nil {
		return fmt.Errorf("both liftover directions must be configured")
	}
	if c.ToHG19.From() != sumstats.BuildHG38 || c.ToHG19.To() != sumstats.BuildHG19 {
		return fmt.Errorf("ToHG19 mapper lifts %s->%s, want %s->%s", c.ToHG19.From(), c.ToHG19.To(), sumstats.BuildHG38, sumstats.BuildHG19)
	}
	if c.ToHG38.From() != sumstats.BuildHG19 || c.ToHG38.To() != sumstats.BuildHG38 {
		return fmt.Errorf("ToHG38 mapper lifts %s->%s, want %s->%s", c.ToHG38.From(), c.ToHG38.To(), sumstats.BuildHG19, sumstats.BuildHG38)
	}

	if c.MAFThreshold < 0 || c.MAFThreshold > 0.5 {
		return fmt.Errorf("maf threshold %v outside [0, 0.5]", c.MAFThreshold)
	}

	if c.ExcludeRegion.Build != sumstats.BuildHG19 {
		return fmt.Errorf("exclusion region must be declared in %s coordinates, got %s", sumstats.BuildHG19, c.ExcludeRegion.Build)
	}

	return nil
}

func (c Config) workers() int {
	if c.Workers < 1 {
		return 1
	}
	return c.Workers
}
