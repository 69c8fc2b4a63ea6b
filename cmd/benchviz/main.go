// Copyright 2024 The Benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchviz turns a CSV table of hashing benchmark results into
// comparison charts.
//
// Usage:
//
//	benchviz [-metric name] [-png dir] [-chart name] results.csv
//
// The input table may use either of the two known column naming
// schemes: the pre-labeled scheme (Scenario,Algorithm,TestName,TimeNs)
// produced by the converter tool, or the raw scheme
// (Benchmark,NsPerOp,AllocBytes,AllocsPerOp) dumped directly from a
// benchmark run. Raw identifiers are classified into scenario,
// algorithm and test variant; repeated measurements of the same
// logical benchmark are averaged.
//
// The -metric flag selects which canonical metric to aggregate and
// plot: TimeNs (default), AllocBytes, or AllocsPerOp.
//
// The -chart flag selects which chart to emit: "all" (default),
// "overview", or a single scenario name such as "Same Key" or
// "Progressive Removals". Charts are written as PNG files into the
// -png directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/balancerlab/benchviz/benchagg"
	"github.com/balancerlab/benchviz/benchchart"
	"github.com/balancerlab/benchviz/benchclass"
	"github.com/balancerlab/benchviz/benchcsv"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: benchviz [flags] results.csv\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("benchviz: ")
	log.SetFlags(0)

	metric := flag.String("metric", benchcsv.TimeNs, "canonical metric to aggregate and plot")
	pngDir := flag.String("png", ".", "`directory` to write PNG charts into")
	chart := flag.String("chart", "all", "chart to emit: all, overview, or a scenario name")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}

	table, err := benchcsv.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	recs, err := benchagg.Aggregate(benchclass.Records(table.Rows), *metric)
	if err != nil {
		log.Fatal(err)
	}
	if len(recs) == 0 {
		log.Fatal("no aggregated records to plot")
	}
	fmt.Printf("loaded %d rows (%s scheme), %d aggregated records\n",
		len(table.Rows), table.Scheme, len(recs))

	if err := os.MkdirAll(*pngDir, 0777); err != nil {
		log.Fatal(err)
	}

	switch *chart {
	case "all":
		if err := emitAll(recs, *metric, *pngDir); err != nil {
			log.Fatal(err)
		}
	case "overview":
		if err := benchchart.Overview(recs, *metric, pngPath(*pngDir, "overview")); err != nil {
			log.Fatal(err)
		}
	default:
		if err := emitScenario(recs, *chart, *metric, *pngDir); err != nil {
			log.Fatal(err)
		}
	}
}

// emitAll writes one chart per scenario present in recs, plus the
// overview. Scenarios with no plottable data are skipped silently:
// a chart that would be empty is not an error for a bulk run.
func emitAll(recs []benchagg.Record, metric, dir string) error {
	var scenarios []string
	seen := make(map[string]bool)
	for _, r := range recs {
		if !seen[r.Scenario] {
			seen[r.Scenario] = true
			scenarios = append(scenarios, r.Scenario)
		}
	}
	for _, s := range scenarios {
		if s == "Other" {
			continue
		}
		if err := emitScenario(recs, s, metric, dir); err != nil {
			fmt.Fprintf(os.Stderr, "benchviz: skipping %s: %v\n", s, err)
			continue
		}
		fmt.Printf("wrote %s\n", pngPath(dir, s))
	}
	if err := benchchart.Overview(recs, metric, pngPath(dir, "overview")); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", pngPath(dir, "overview"))
	return nil
}

func emitScenario(recs []benchagg.Record, scenario, metric, dir string) error {
	path := pngPath(dir, scenario)
	if benchchart.Parameterized(scenario) {
		return benchchart.Lines(recs, scenario, metric, path)
	}
	return benchchart.Bars(recs, scenario, metric, path)
}

func pngPath(dir, name string) string {
	base := strings.ReplaceAll(strings.ToLower(name), " ", "_")
	return filepath.Join(dir, base+".png")
}
