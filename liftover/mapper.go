// Package liftover converts genomic positions between reference genome
// builds using UCSC chain files.
package liftover

// A BuildMapper converts a single position from its source build to its
// target build. Implementations are read-only after construction and safe for
// concurrent use.
type BuildMapper interface {
	// From and To name the source and target builds, e.g. "hg38", "hg19".
	From() string
	To() string

	// Lift maps a position on a canonical chromosome token ("1".."22", "X",
	// "Y", "MT"). The second return is false when the locus has no mapping in
	// the target build.
	Lift(chrom string, pos int64) (int64, bool)
}

// TableMapper is a BuildMapper backed by a fixed lookup table. It exists so
// pipelines can be exercised deterministically in tests without real chain
// files.
type TableMapper struct {
	FromBuild string
	ToBuild   string

	// Positions maps chromosome -> source position -> target position.
	Positions map[string]map[int64]int64
}

func (m TableMapper) From() string { return m.FromBuild }
func (m TableMapper) To() string   { return m.ToBuild }

func (m TableMapper) Lift(chrom string, pos int64) (int64, bool) {
	byPos, exists := m.Positions[chrom]
	if !exists {
		return 0, false
	}
	mapped, exists := byPos[pos]
	return mapped, exists
}
