package liftover

import (
	"testing"

	"github.com/genepi/gwasqc/sumstats"
)

func testMapper() TableMapper {
	return TableMapper{
		FromBuild: sumstats.BuildHG38,
		ToBuild:   sumstats.BuildHG19,
		Positions: map[string]map[int64]int64{
			"1": {10600: 10500},
			"6": {30100000: 30000000},
		},
	}
}

func liftableDataset() sumstats.Dataset {
	layout, _ := sumstats.ParseHeader([]string{"SNP", "chr", "pos", "effect_allele", "other_allele", "eaf", "beta", "se", "pval", "samplesize"})
	return sumstats.Dataset{
		Build:  sumstats.BuildHG38,
		Header: []string{"SNP", "chr", "pos", "effect_allele", "other_allele", "eaf", "beta", "se", "pval", "samplesize"},
		Layout: layout,
		Records: []sumstats.VariantRecord{
			{
				SNP: "rs1", Chromosome: "1", Position: 10600,
				Fields: []string{"rs1", "1", "10600", "A", "G", "0.25", "0.02", "0.005", "1.5e-08", "100000"},
			},
			{
				SNP: "rs_gap", Chromosome: "2", Position: 555,
				Fields: []string{"rs_gap", "2", "555", "C", "T", "0.30", "0.01", "0.004", "0.2", "100000"},
			},
			{
				SNP: "rs_mhc", Chromosome: "6", Position: 30100000,
				Fields: []string{"rs_mhc", "6", "30100000", "C", "T", "0.30", "0.01", "0.004", "0.2", "100000"},
			},
		},
	}
}

func TestApplyLiftsAndDropsUnmapped(t *testing.T) {
	ds := liftableDataset()

	out, report, err := Apply(ds, testMapper())
	if err != nil {
		t.Fatal(err)
	}

	if out.Build != sumstats.BuildHG19 {
		t.Errorf("build = %q, want %q", out.Build, sumstats.BuildHG19)
	}
	if report.Read != 3 || report.Kept != 2 {
		t.Errorf("read %d kept %d, want 3 and 2", report.Read, report.Kept)
	}

	rec := out.Records[0]
	if rec.SNP != "rs1" || rec.Position != 10500 || rec.Fields[2] != "10500" {
		t.Error("Mismatch")
	}
	if out.Records[1].SNP != "rs_mhc" {
		t.Error("the variant in the assembly gap should be absent, preserving order of the rest")
	}
}

func TestApplyMitochondrialRecord(t *testing.T) {
	mapper := TableMapper{
		FromBuild: sumstats.BuildHG38,
		ToBuild:   sumstats.BuildHG19,
		Positions: map[string]map[int64]int64{
			"MT": {16000: 15990},
		},
	}

	layout, _ := sumstats.ParseHeader([]string{"SNP", "chr", "pos", "effect_allele", "other_allele", "eaf", "beta", "se", "pval", "samplesize"})
	ds := sumstats.Dataset{
		Build:  sumstats.BuildHG38,
		Layout: layout,
		Records: []sumstats.VariantRecord{
			{
				SNP: "rs_mito", Chromosome: "MT", Position: 16000,
				Fields: []string{"rs_mito", "chrM", "16000", "A", "G", "0.25", "0.02", "0.005", "0.5", "100000"},
			},
		},
	}

	out, report, err := Apply(ds, mapper)
	if err != nil {
		t.Fatal(err)
	}
	if report.Kept != 1 {
		t.Fatal("the mitochondrial record should lift, not silently drop")
	}
	if out.Records[0].Position != 15990 || out.Records[0].Fields[2] != "15990" {
		t.Error("Mismatch")
	}
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	ds := liftableDataset()

	if _, _, err := Apply(ds, testMapper()); err != nil {
		t.Fatal(err)
	}

	if ds.Build != sumstats.BuildHG38 {
		t.Error("input build tag changed")
	}
	if ds.Records[0].Position != 10600 || ds.Records[0].Fields[2] != "10600" {
		t.Error("input record was mutated")
	}
}

func TestApplyBuildMismatch(t *testing.T) {
	ds := liftableDataset()
	ds.Build = sumstats.BuildHG19

	if _, _, err := Apply(ds, testMapper()); err == nil {
		t.Error("expected an error lifting an hg19 dataset with an hg38 source mapper")
	}
}
