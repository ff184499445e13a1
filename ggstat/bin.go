// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggstat

import (
	"math"

	"github.com/aclements/go-moremath/vec"
	"github.com/plotgrid/plotgrid/table"
)

// Bin groups samples into equal-width bins and counts the samples in
// each bin. It is the statistic behind histograms.
//
// X is the only required field. All other fields have reasonable
// default zero values.
//
// The result of Bin has three columns in addition to constant columns
// from the input:
//
// - Column X is the center of each bin.
//
// - Column "count" is the weighted number of samples in each bin.
//
// - Column "density" is the count normalized so the histogram
// integrates to 1.
//
// If an "x" scale has been trained, bins span its domain, so all
// panels of a faceted plot get identical bin boundaries. Otherwise
// bins span the panel's own data.
type Bin struct {
	// X is the name of the column to bin.
	X string

	// W is the optional name of the column to use for sample
	// weights. It may be "" to weight each sample as 1.
	W string

	// Bins is the number of bins. If Bins is 0, it defaults to
	// 30.
	Bins int

	// Width is the width of each bin. If Width is non-zero, it
	// takes precedence over Bins and the number of bins is
	// determined by the bin domain.
	Width float64
}

func (s Bin) ComputePanel(t *table.Table, scales Scales) *table.Table {
	xs := table.Floats(t.MustColumn(s.X))
	var ws []float64
	if s.W != "" {
		ws = table.Floats(t.MustColumn(s.W))
	}

	if len(xs) == 0 {
		nt := new(table.Builder).
			Add(s.X, []float64{}).
			Add("count", []float64{}).
			Add("density", []float64{})
		preserveConsts(nt, t)
		return nt.Done()
	}

	lo, hi := xBounds(xs, scales, 1.0)
	if math.IsNaN(lo) || lo == hi {
		// A single distinct value. Fall back to one bin of
		// width 1 centered on the data.
		lo, hi = lo-0.5, lo+0.5
		s.Bins, s.Width = 1, 0
	}

	nbins := s.Bins
	width := s.Width
	if width > 0 {
		nbins = int(math.Ceil((hi - lo) / width))
		if nbins < 1 {
			nbins = 1
		}
	} else {
		if nbins <= 0 {
			nbins = 30
		}
		width = (hi - lo) / float64(nbins)
	}

	counts := make([]float64, nbins)
	var total float64
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		bin := int((x - lo) / width)
		// The last bin is closed on both sides, as in NumPy.
		if bin == nbins && x == hi {
			bin = nbins - 1
		}
		if bin < 0 || bin >= nbins {
			continue
		}
		w := 1.0
		if ws != nil {
			w = ws[i]
		}
		counts[bin] += w
		total += w
	}

	centers := make([]float64, nbins)
	for i := range centers {
		centers[i] = lo + width*(float64(i)+0.5)
	}
	density := vec.Map(func(c float64) float64 {
		if total == 0 {
			return 0
		}
		return c / (total * width)
	}, counts)

	nt := new(table.Builder).Add(s.X, centers).Add("count", counts).Add("density", density)
	preserveConsts(nt, t)
	return nt.Done()
}

func (Bin) Defaults() Defaults {
	return Defaults{Geom: "bar", Position: "stack"}
}
