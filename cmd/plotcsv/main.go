// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command plotcsv renders a CSV file as an SVG plot.
//
// plotcsv reads a CSV file with a header row, maps the named columns
// to aesthetics, and writes an SVG. The -stat flag selects the
// statistic applied to each panel before rendering; the default
// "identity" plots each row as-is. The geometry and position
// adjustment follow from the statistic's defaults.
//
// For example, to plot a faceted histogram of the "delay" column:
//
//	plotcsv -x delay -stat bin -facet day -o delays.svg flights.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/plotgrid/plotgrid/gg"
	"github.com/plotgrid/plotgrid/ggstat"
)

func main() {
	log.SetPrefix("plotcsv: ")
	log.SetFlags(0)

	var (
		flagX      = flag.String("x", "", "bind `column` to x (default: first column)")
		flagY      = flag.String("y", "", "bind `column` to y (default: second column)")
		flagColor  = flag.String("color", "", "bind `column` to color")
		flagFacet  = flag.String("facet", "", "facet into one panel per value of `column`")
		flagStat   = flag.String("stat", "identity", "apply `statistic`: identity, bin, ecdf, density, or lsq")
		flagBins   = flag.Int("bins", 0, "number of bins for -stat bin")
		flagTitle  = flag.String("title", "", "plot `title`")
		flagOut    = flag.String("o", "", "write output to `file` (default: stdout)")
		flagWidth  = flag.Int("w", 800, "output width in `pixels`")
		flagHeight = flag.Int("h", 500, "output height in `pixels`")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [input.csv]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	in := os.Stdin
	if flag.NArg() == 1 && flag.Arg(0) != "-" {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}
	tab, err := readTable(in)
	if err != nil {
		log.Fatal(err)
	}

	// The statistics name their columns explicitly, so fill the
	// positional defaults here.
	cols := tab.Columns()
	x, y := *flagX, *flagY
	if x == "" && len(cols) > 0 {
		x = cols[0]
	}
	if y == "" && len(cols) > 1 {
		y = cols[1]
	}

	var stat ggstat.Stat
	switch *flagStat {
	case "identity":
		stat = ggstat.Identity{}
	case "bin":
		stat = ggstat.Bin{X: x, Bins: *flagBins}
	case "ecdf":
		stat = ggstat.ECDF{X: x}
	case "density":
		stat = ggstat.Density{X: x}
	case "lsq":
		stat = ggstat.LeastSquares{X: x, Y: y}
	default:
		log.Fatalf("unknown statistic %q", *flagStat)
	}

	plot := gg.NewPlot(tab)
	if *flagFacet != "" {
		plot.Facet(*flagFacet)
	}
	if *flagTitle != "" {
		plot.Add(gg.Title(*flagTitle))
	}
	plot.Add(gg.Layer{
		X:     x,
		Y:     y,
		Color: *flagColor,
		Stat:  stat,
	})

	out := os.Stdout
	if *flagOut != "" {
		f, err := os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	if err := plot.WriteSVG(out, *flagWidth, *flagHeight); err != nil {
		log.Fatal(err)
	}
}
