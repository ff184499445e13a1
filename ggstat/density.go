// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggstat

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/plotgrid/plotgrid/table"
)

// Density constructs a probability density estimate from a set of
// samples using kernel density estimation.
//
// X is the only required field. All other fields have reasonable
// default zero values.
//
// The result of Density has three columns in addition to constant
// columns from the input:
//
// - Column X is the points at which the density estimate is sampled.
//
// - Column "probability density" is the density estimate.
//
// - Column "cumulative density" is the cumulative density estimate.
type Density struct {
	// X is the name of the column to use for samples.
	X string

	// W is the optional name of the column to use for sample
	// weights. It may be "" to uniformly weight samples.
	W string

	// N is the number of points to sample the KDE at. If N is 0,
	// it defaults to 200.
	N int

	// Widen controls the domain of the returned density estimate
	// when no "x" scale has been trained: the data bounds are
	// expanded by Widen*Bandwidth on each side. If Widen is 0, it
	// is treated as 3. If an "x" scale has been trained, its
	// domain is used directly.
	Widen float64

	// Kernel is the kernel to use for the KDE.
	Kernel stats.KDEKernel

	// Bandwidth is the bandwidth to use for the KDE. If this is
	// zero, the bandwidth is computed from the data using Scott's
	// rule.
	Bandwidth float64
}

func (s Density) ComputePanel(t *table.Table, scales Scales) *table.Table {
	if s.N == 0 {
		s.N = 200
	}
	if s.Widen == 0 {
		s.Widen = 3
	}
	dname, cname := "probability density", "cumulative density"

	sample := stats.Sample{Xs: table.Floats(t.MustColumn(s.X))}
	if s.W != "" {
		sample.Weights = table.Floats(t.MustColumn(s.W))
	}

	if sample.Weight() == 0 {
		nt := new(table.Builder).
			Add(s.X, []float64{}).
			Add(dname, []float64{}).
			Add(cname, []float64{})
		preserveConsts(nt, t)
		return nt.Done()
	}

	kde := stats.KDE{
		Sample:    sample,
		Kernel:    s.Kernel,
		Bandwidth: s.Bandwidth,
	}
	if kde.Bandwidth == 0 {
		kde.Bandwidth = stats.BandwidthScott(sample)
	}

	min, max, ok := scales.Domain("x")
	if !ok || min >= max {
		min, max = sample.Bounds()
		min, max = min-s.Widen*kde.Bandwidth, max+s.Widen*kde.Bandwidth
	}
	if math.IsNaN(min) {
		min, max = -1, 1
	}

	ss := vec.Linspace(min, max, s.N)
	nt := new(table.Builder).
		Add(s.X, ss).
		Add(dname, vec.Map(kde.PDF, ss)).
		Add(cname, vec.Map(kde.CDF, ss))
	preserveConsts(nt, t)
	return nt.Done()
}

func (Density) Defaults() Defaults {
	return Defaults{Geom: "line", Position: "identity"}
}
