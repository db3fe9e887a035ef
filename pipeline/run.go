package pipeline

import (
	"os"

	"github.com/carbocation/pfx"
	"golang.org/x/sync/errgroup"
)

// RunAll processes each input file through the full pipeline, at most
// cfg.Workers at a time. Files are independent: one file's fatal error is
// recorded in its report without disturbing the others. Configuration
// problems are caught before any file is touched.
func RunAll(files []string, cfg Config) ([]Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, dir := range []string{cfg.HG19Dir, cfg.HG38Dir, cfg.FUMADir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, pfx.Err(err)
		}
	}

	reports := make([]Report, len(files))

	g := new(errgroup.Group)
	g.SetLimit(cfg.workers())

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			reports[i] = ProcessFile(file, cfg)
			reports[i].Log()
			return nil
		})
	}

	// Workers never return errors; per-file failures live in the reports.
	_ = g.Wait()

	return reports, nil
}
