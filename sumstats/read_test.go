package sumstats

import (
	"strings"
	"testing"
)

const testHeader = "SNP chr pos effect_allele other_allele eaf beta se pval samplesize"

func TestReadDatasetValidRow(t *testing.T) {
	in := testHeader + "\n" +
		"rs1 chr1 10500 A G 0.25 0.02 0.005 1.5e-08 100000\n"

	ds, report, err := ReadDataset(strings.NewReader(in), BuildHG38)
	if err != nil {
		t.Fatal(err)
	}

	if report.Read != 1 || report.Kept != 1 {
		t.Errorf("read %d kept %d, want 1 and 1", report.Read, report.Kept)
	}
	if ds.Build != BuildHG38 {
		t.Errorf("build = %q, want %q", ds.Build, BuildHG38)
	}

	rec := ds.Records[0]
	if rec.SNP != "rs1" ||
		rec.Chromosome != "1" ||
		rec.Position != 10500 ||
		rec.EffectAllele != "A" ||
		rec.OtherAllele != "G" ||
		rec.EAF != 0.25 ||
		rec.Beta != 0.02 ||
		rec.SE != 0.005 ||
		rec.PValue != 1.5e-08 ||
		rec.SampleSize != 100000 {
		t.Error("Mismatch")
	}
}

func TestReadDatasetDropsMalformedRows(t *testing.T) {
	rows := []string{
		"rs2 1 NA A G 0.25 0.02 0.005 0.5 1000",     // non-numeric position
		"rs3 1 100 A G 1.5 0.02 0.005 0.5 1000",     // eaf out of [0,1]
		"rs4 1 100 A G 0.25 0.02 0.005 0.0 1000",    // p-value out of (0,1]
		"rs5 1 100 A G 0.25 0.02 0.005 0.5 0",       // sample size not positive
		"rs6 1 100 A G 0.25 0.02 -0.005 0.5 1000",   // negative standard error
		"rs7 contig 100 A G 0.25 0.02 0.005 0.5 99", // unrecognized chromosome
		"rs8 1 100 A G 0.25 0.02 0.005",             // short row
		"rs9 1 100 A G 0.25 0.02 0.005 0.5 1000",    // fine
	}
	in := testHeader + "\n" + strings.Join(rows, "\n") + "\n"

	ds, report, err := ReadDataset(strings.NewReader(in), BuildHG38)
	if err != nil {
		t.Fatal(err)
	}

	if report.Read != 8 {
		t.Errorf("read %d rows, want 8", report.Read)
	}
	if report.Kept != 1 || report.Dropped() != 7 {
		t.Errorf("kept %d dropped %d, want 1 and 7", report.Kept, report.Dropped())
	}
	if len(ds.Records) != 1 || ds.Records[0].SNP != "rs9" {
		t.Error("only rs9 should survive")
	}
}

func TestReadDatasetIntegralFloatFields(t *testing.T) {
	in := testHeader + "\n" +
		"rs1 1 10500.0 A G 0.25 0.02 0.005 0.5 100000.0\n"

	ds, _, err := ReadDataset(strings.NewReader(in), BuildHG38)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Records) != 1 || ds.Records[0].Position != 10500 || ds.Records[0].SampleSize != 100000 {
		t.Error("float-formatted integral fields should parse")
	}
}

func TestReadDatasetMissingHeaderIsFatal(t *testing.T) {
	in := "rs1 1 10500 A G 0.25 0.02 0.005 0.5 100000\n"

	if _, _, err := ReadDataset(strings.NewReader(in), BuildHG38); err == nil {
		t.Error("expected a fatal error for an input without the required header")
	}
}

func TestMAF(t *testing.T) {
	rec := VariantRecord{EAF: 0.995}
	if maf := rec.MAF(); maf < 0.0049 || maf > 0.0051 {
		t.Errorf("MAF = %v, want ~0.005", maf)
	}

	rec = VariantRecord{EAF: 0.25}
	if rec.MAF() != 0.25 {
		t.Errorf("MAF = %v, want 0.25", rec.MAF())
	}
}
