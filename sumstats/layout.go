package sumstats

import (
	"fmt"
	"strings"
)

// Column names that must be present in the input header. Column order is not
// significant; names are.
const (
	ColNameSNP          = "SNP"
	ColNameChromosome   = "chr"
	ColNamePosition     = "pos"
	ColNameEffectAllele = "effect_allele"
	ColNameOtherAllele  = "other_allele"
	ColNameEAF          = "eaf"
	ColNameBeta         = "beta"
	ColNameSE           = "se"
	ColNamePValue       = "pval"
	ColNameSampleSize   = "samplesize"
)

// Layout maps the required summary-statistics fields to their column indices
// in one particular input file.
type Layout struct {
	ColSNP          int
	ColChromosome   int
	ColPosition     int
	ColEffectAllele int
	ColOtherAllele  int
	ColEAF          int
	ColBeta         int
	ColSE           int
	ColPValue       int
	ColSampleSize   int
}

// ParseHeader resolves the required column names against a header row. Extra
// columns are tolerated and carried through untouched; a missing required
// column is a fatal configuration error for the file.
func ParseHeader(header []string) (Layout, error) {
	cols := make(map[string]int)
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	l := Layout{}
	var missing []string

	for _, want := range []struct {
		name string
		col  *int
	}{
		{ColNameSNP, &l.ColSNP},
		{ColNameChromosome, &l.ColChromosome},
		{ColNamePosition, &l.ColPosition},
		{ColNameEffectAllele, &l.ColEffectAllele},
		{ColNameOtherAllele, &l.ColOtherAllele},
		{ColNameEAF, &l.ColEAF},
		{ColNameBeta, &l.ColBeta},
		{ColNameSE, &l.ColSE},
		{ColNamePValue, &l.ColPValue},
		{ColNameSampleSize, &l.ColSampleSize},
	} {
		id, exists := cols[want.name]
		if !exists {
			missing = append(missing, want.name)
			continue
		}
		*want.col = id
	}

	if len(missing) > 0 {
		return Layout{}, fmt.Errorf("input header is missing required columns: %s", strings.Join(missing, ", "))
	}

	return l, nil
}

// maxCol is the highest column index the layout references, used to bounds
// check short rows before field access.
func (l Layout) maxCol() int {
	max := l.ColSNP
	for _, c := range []int{
		l.ColChromosome, l.ColPosition, l.ColEffectAllele, l.ColOtherAllele,
		l.ColEAF, l.ColBeta, l.ColSE, l.ColPValue, l.ColSampleSize,
	} {
		if c > max {
			max = c
		}
	}
	return max
}
