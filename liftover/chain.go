package liftover

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	glo "github.com/carbocation/GLO"
	"github.com/carbocation/pfx"

	gwasqc "github.com/genepi/gwasqc"
)

// ChainMapper is a BuildMapper backed by a UCSC chain file loaded into
// memory. After LoadChain returns it is read-only and safe to share across
// concurrently processed files.
type ChainMapper struct {
	from string
	to   string
	lo   *glo.LiftOver
}

func (m *ChainMapper) From() string { return m.from }
func (m *ChainMapper) To() string   { return m.to }

func (m *ChainMapper) Lift(chrom string, pos int64) (int64, bool) {
	mapped := m.lo.Lift(m.from, m.to, glo.NewChainInterval(chainContig(chrom), pos, pos+1))
	if len(mapped) == 0 {
		return 0, false
	}

	// A position can fall in more than one chain block; take the first, which
	// is the highest-scoring chain.
	return mapped[0].Start, true
}

// LoadChain reads a chain file, which may be local or on Google Storage and
// may be compressed, and returns a mapper for its build pair. The builds are
// taken from the UCSC naming convention ("hg38ToHg19.over.chain.gz"). Failure
// here is fatal for the run: without the chain every position would silently
// go unmapped.
func LoadChain(path string, client *storage.Client) (*ChainMapper, error) {
	from, to, err := chainBuilds(path)
	if err != nil {
		return nil, err
	}

	f, err := gwasqc.MaybeOpenFromGoogleStorage(path, client)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	r, err := gwasqc.MaybeDecompressReadCloser(f)
	if err != nil {
		return nil, pfx.Err(err)
	}

	lo := new(glo.LiftOver)
	lo.Init()
	lo.Load(from, to, bufio.NewReader(r))

	return &ChainMapper{from: from, to: to, lo: lo}, nil
}

// chainContig converts a canonical chromosome token to the contig name UCSC
// chain files use: a chr prefix, and chrM rather than MT for the
// mitochondrial genome.
func chainContig(chrom string) string {
	if chrom == "MT" {
		chrom = "M"
	}
	if !strings.HasPrefix(chrom, "chr") {
		chrom = "chr" + chrom
	}
	return chrom
}

// chainBuilds extracts the source and target build names from a chain file
// path following the oldToNew.over.chain.* convention.
func chainBuilds(path string) (from, to string, err error) {
	chunks := strings.Split(strings.Split(filepath.Base(path), ".")[0], "To")
	if len(chunks) != 2 {
		return "", "", fmt.Errorf("Expected chain file name format to be oldToNew.over.chain.*, but found: %s", path)
	}

	return strings.ToLower(chunks[0]), strings.ToLower(chunks[1]), nil
}
