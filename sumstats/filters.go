package sumstats

import "fmt"

// Region is an exclusion window on one chromosome, in the coordinates of a
// specific build.
type Region struct {
	Build      string
	Chromosome string
	Start      int64
	End        int64
}

// MHC is the major histocompatibility complex locus on chromosome 6 in hg19
// coordinates. Its long-range linkage structure confounds downstream
// analyses, so it is excluded by default.
var MHC = Region{
	Build:      BuildHG19,
	Chromosome: "6",
	Start:      28477797,
	End:        33448354,
}

// FilterRegion removes every record whose chromosome matches the region and
// whose position lies in [Start, End] inclusive. The dataset's build must
// match the build the region is declared in; a mismatch is a configuration
// error, not a silent no-op.
func FilterRegion(ds Dataset, region Region) (Dataset, StageReport, error) {
	report := StageReport{Stage: "region filter", Read: len(ds.Records)}

	if ds.Build != region.Build {
		return Dataset{}, report, fmt.Errorf("region is declared in %s coordinates but the dataset is tagged %s", region.Build, ds.Build)
	}

	out := ds.derive(ds.Build)
	for _, rec := range ds.Records {
		if rec.Chromosome == region.Chromosome && rec.Position >= region.Start && rec.Position <= region.End {
			continue
		}
		out.Records = append(out.Records, rec)
	}

	report.Kept = len(out.Records)
	return out, report, nil
}

// FilterMAF removes records whose minor allele frequency is below threshold.
// A record at exactly the threshold is retained.
func FilterMAF(ds Dataset, threshold float64) (Dataset, StageReport, error) {
	report := StageReport{Stage: "maf filter", Read: len(ds.Records)}

	// MAF cannot exceed 0.5, so thresholds above that would empty any dataset.
	if threshold < 0 || threshold > 0.5 {
		return Dataset{}, report, fmt.Errorf("maf threshold %v outside [0, 0.5]", threshold)
	}

	out := ds.derive(ds.Build)
	for _, rec := range ds.Records {
		if rec.MAF() < threshold {
			continue
		}
		out.Records = append(out.Records, rec)
	}

	report.Kept = len(out.Records)
	return out, report, nil
}
