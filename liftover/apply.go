package liftover

import (
	"fmt"
	"strconv"

	"github.com/genepi/gwasqc/sumstats"
)

// Apply lifts every record of ds to the mapper's target build, dropping
// records with no mapping. The input dataset is left untouched; surviving
// records get a rewritten position in both the typed field and the raw cells.
// The dataset's build must match the mapper's source build.
func Apply(ds sumstats.Dataset, mapper BuildMapper) (sumstats.Dataset, sumstats.StageReport, error) {
	report := sumstats.StageReport{
		Stage: fmt.Sprintf("liftover %s->%s", mapper.From(), mapper.To()),
		Read:  len(ds.Records),
	}

	if ds.Build != mapper.From() {
		return sumstats.Dataset{}, report, fmt.Errorf("dataset is tagged %s but the mapper lifts from %s", ds.Build, mapper.From())
	}

	out := sumstats.Dataset{
		Build:   mapper.To(),
		Header:  ds.Header,
		Layout:  ds.Layout,
		Records: make([]sumstats.VariantRecord, 0, len(ds.Records)),
	}

	for _, rec := range ds.Records {
		mapped, ok := mapper.Lift(rec.Chromosome, rec.Position)
		if !ok {
			continue
		}

		rec.Position = mapped
		rec.Fields = append([]string(nil), rec.Fields...)
		rec.Fields[ds.Layout.ColPosition] = strconv.FormatInt(mapped, 10)

		out.Records = append(out.Records, rec)
	}

	report.Kept = len(out.Records)
	return out, report, nil
}
