package sumstats

import "testing"

func testDataset(build string, recs ...VariantRecord) Dataset {
	return Dataset{Build: build, Records: recs}
}

func TestFilterRegionMHCBoundaries(t *testing.T) {
	ds := testDataset(BuildHG19,
		VariantRecord{SNP: "rs_before", Chromosome: "6", Position: 28000000},
		VariantRecord{SNP: "rs_start", Chromosome: "6", Position: 28477797},
		VariantRecord{SNP: "rs_inside", Chromosome: "6", Position: 30000000},
		VariantRecord{SNP: "rs_end", Chromosome: "6", Position: 33448354},
		VariantRecord{SNP: "rs_after", Chromosome: "6", Position: 33448355},
		VariantRecord{SNP: "rs_otherchrom", Chromosome: "7", Position: 30000000},
	)

	out, report, err := FilterRegion(ds, MHC)
	if err != nil {
		t.Fatal(err)
	}

	if report.Read != 6 || report.Kept != 3 {
		t.Errorf("read %d kept %d, want 6 and 3", report.Read, report.Kept)
	}

	want := []string{"rs_before", "rs_after", "rs_otherchrom"}
	if len(out.Records) != len(want) {
		t.Fatalf("kept %d records, want %d", len(out.Records), len(want))
	}
	for i, rec := range out.Records {
		if rec.SNP != want[i] {
			t.Errorf("record %d is %s, want %s", i, rec.SNP, want[i])
		}
		if rec.Chromosome == MHC.Chromosome && rec.Position >= MHC.Start && rec.Position <= MHC.End {
			t.Errorf("%s survived inside the excluded region", rec.SNP)
		}
	}
}

func TestFilterRegionBuildMismatch(t *testing.T) {
	ds := testDataset(BuildHG38, VariantRecord{SNP: "rs1", Chromosome: "6", Position: 30000000})

	if _, _, err := FilterRegion(ds, MHC); err == nil {
		t.Error("expected a configuration error for an hg38 dataset against an hg19 region")
	}
}

func TestFilterMAFThresholdInclusive(t *testing.T) {
	ds := testDataset(BuildHG19,
		VariantRecord{SNP: "rs_low", EAF: 0.005},   // maf 0.005, dropped
		VariantRecord{SNP: "rs_edge", EAF: 0.01},   // maf 0.01, kept
		VariantRecord{SNP: "rs_high", EAF: 0.995},  // maf ~0.005, dropped
		VariantRecord{SNP: "rs_common", EAF: 0.40}, // kept
	)

	out, report, err := FilterMAF(ds, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	if report.Kept != 2 || report.Dropped() != 2 {
		t.Errorf("kept %d dropped %d, want 2 and 2", report.Kept, report.Dropped())
	}
	if out.Records[0].SNP != "rs_edge" || out.Records[1].SNP != "rs_common" {
		t.Error("Mismatch")
	}
}

func TestFilterMAFIdempotent(t *testing.T) {
	ds := testDataset(BuildHG19,
		VariantRecord{SNP: "rs1", EAF: 0.005},
		VariantRecord{SNP: "rs2", EAF: 0.3},
		VariantRecord{SNP: "rs3", EAF: 0.99},
	)

	once, _, err := FilterMAF(ds, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	twice, report, err := FilterMAF(once, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	if report.Dropped() != 0 {
		t.Errorf("second pass dropped %d rows, want 0", report.Dropped())
	}
	if len(twice.Records) != len(once.Records) {
		t.Error("re-filtering changed the dataset")
	}
}

func TestFilterMAFBadThreshold(t *testing.T) {
	ds := testDataset(BuildHG19, VariantRecord{SNP: "rs1", EAF: 0.3})

	for _, threshold := range []float64{-0.01, 0.51, 2} {
		if _, _, err := FilterMAF(ds, threshold); err == nil {
			t.Errorf("threshold %v should be rejected", threshold)
		}
	}
}

func TestFiltersDoNotMutateInput(t *testing.T) {
	ds := testDataset(BuildHG19,
		VariantRecord{SNP: "rs1", Chromosome: "6", Position: 30000000, EAF: 0.005},
		VariantRecord{SNP: "rs2", Chromosome: "1", Position: 100, EAF: 0.3},
	)

	if _, _, err := FilterRegion(ds, MHC); err != nil {
		t.Fatal(err)
	}
	if _, _, err := FilterMAF(ds, 0.01); err != nil {
		t.Fatal(err)
	}

	if len(ds.Records) != 2 || ds.Records[0].SNP != "rs1" || ds.Records[1].SNP != "rs2" {
		t.Error("input dataset was mutated")
	}
}
