// rbpconcordance measures how reproducible the k-mer binding summaries
// (Z-score, AUC, E-score) of each RNA-binding protein are between two
// replicate RNAcompete experiments. It writes long-format Pearson and
// Spearman tables and a boxplot figure.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/carbocation/rnacompete/compileinfoprint"
)

func main() {
	flag.CommandLine.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}

	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalln(err)
	}

	cfg = cfg.Resolved()
	if err := cfg.Validate(); err != nil {
		log.Println(err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	fmt.Fprintln(os.Stderr, strings.Join(os.Args, " "))

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalln(err)
	}
}
