// ldsch2 gathers the heritability estimates LDSC leaves in *_h2.log files
// into a CSV summary and an optional phenotype-by-source h2 matrix.
package main

import (
	"flag"
	"log"
	"os"

	gwasqc "github.com/genepi/gwasqc"
	"github.com/genepi/gwasqc/ldsclog"
)

func main() {
	var logDir, outCSV, outMatrix string
	flag.StringVar(&logDir, "logs", "2.h2", "Directory holding LDSC *_h2.log files.")
	flag.StringVar(&outCSV, "out", "h2SNP.csv", "Path for the CSV summary.")
	flag.StringVar(&outMatrix, "matrix", "", "Optional path for a phenotype-by-source h2 matrix CSV.")
	flag.Parse()

	estimates, errs := ldsclog.CollectDir(gwasqc.ExpandHome(logDir))
	for _, err := range errs {
		log.Println(err)
	}
	if len(estimates) == 0 {
		log.Fatalf("No usable h2 logs found in %s\n", logDir)
	}
	log.Printf("Collected %d h2 estimates from %s\n", len(estimates), logDir)

	f, err := os.OpenFile(gwasqc.ExpandHome(outCSV), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		log.Fatalln(err)
	}
	if err := ldsclog.WriteCSV(f, estimates); err != nil {
		log.Fatalln(err)
	}
	if err := f.Close(); err != nil {
		log.Fatalln(err)
	}

	if outMatrix != "" {
		m, err := os.OpenFile(gwasqc.ExpandHome(outMatrix), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			log.Fatalln(err)
		}
		if err := ldsclog.WriteMatrix(m, estimates); err != nil {
			log.Fatalln(err)
		}
		if err := m.Close(); err != nil {
			log.Fatalln(err)
		}
	}
}
