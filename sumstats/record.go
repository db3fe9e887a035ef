// Package sumstats defines the typed representation of GWAS summary
// statistics and the cleaning filters applied to them.
package sumstats

import (
	"math"
	"strconv"
	"strings"
)

const (
	BuildHG19 = "hg19"
	BuildHG38 = "hg38"
)

// VariantRecord is one validated row of summary statistics. Position is
// scoped to the build of the Dataset that carries the record.
type VariantRecord struct {
	SNP          string
	Chromosome   string // canonical token: "1".."22", "X", "Y", "MT"
	Position     int64
	EffectAllele string
	OtherAllele  string
	EAF          float64
	Beta         float64
	SE           float64
	PValue       float64
	SampleSize   int64

	// Fields holds the raw input cells so that output files preserve the
	// source file's full column set and numeric formatting.
	Fields []string
}

// MAF is the minor allele frequency, derived from the effect allele
// frequency. It is never stored.
func (v VariantRecord) MAF() float64 {
	return math.Min(v.EAF, 1-v.EAF)
}

// NormalizeChromosome converts chromosome notation to its canonical token:
// "chr" prefixes and leading zeroes are stripped, and mitochondrial aliases
// collapse to "MT". The second return is false for tokens that are not a
// recognized human chromosome.
func NormalizeChromosome(chrom string) (string, bool) {
	c := strings.TrimPrefix(strings.TrimSpace(chrom), "chr")
	c = strings.ToUpper(c)

	switch c {
	case "X", "Y", "MT":
		return c, true
	case "M":
		return "MT", true
	}

	n, err := strconv.Atoi(c)
	if err != nil || n < 1 || n > 22 {
		return "", false
	}

	return strconv.Itoa(n), true
}
