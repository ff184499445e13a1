// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggstat

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/vec"
	"github.com/plotgrid/plotgrid/table"
)

// ECDF constructs an empirical CDF from a set of samples.
//
// X is the only required field. All other fields have reasonable
// default zero values.
//
// The result of ECDF has three columns in addition to constant
// columns from the input:
//
// - Column X is the points at which the CDF changes (the distinct
// samples).
//
// - Column "cumulative density" is the cumulative density estimate.
//
// - Column "cumulative count" is the cumulative count or weight of
// samples; that is, cumulative density times the total weight.
type ECDF struct {
	// X is the name of the column to use for samples.
	X string

	// W is the optional name of the column to use for sample
	// weights. It may be "" to uniformly weight samples.
	W string

	// Widen adjusts the domain of the returned ECDF. If Widen is
	// greater than 1, ECDF adds a point below the smallest sample
	// and above the largest sample to make the 0 and 1 levels
	// clear. If Widen is 0, it is treated as 1.1. If an "x" scale
	// has been trained, its domain is used for the added points
	// instead.
	Widen float64
}

func (s ECDF) ComputePanel(t *table.Table, scales Scales) *table.Table {
	if s.Widen == 0 {
		s.Widen = 1.1
	}
	if s.Widen < 1 {
		// Narrowing makes no sense for a step function.
		s.Widen = 1
	}

	xs := table.Floats(t.MustColumn(s.X))
	var ws []float64
	if s.W != "" {
		ws = table.Floats(t.MustColumn(s.W))
		sort.Sort(&weightedSort{xs, ws})
	} else {
		sort.Float64s(xs)
	}

	if len(xs) == 0 {
		nt := new(table.Builder).
			Add(s.X, []float64{}).
			Add("cumulative density", []float64{}).
			Add("cumulative count", []float64{})
		preserveConsts(nt, t)
		return nt.Done()
	}

	var total float64
	if ws == nil {
		total = float64(len(xs))
	} else {
		total = vec.Sum(ws)
	}

	var xo, do, co []float64
	lo, hi := xBounds(xs, scales, s.Widen)
	if s.Widen > 1 && !math.IsNaN(lo) {
		xo = append(xo, lo)
		do = append(do, 0)
		co = append(co, 0)
	}

	cum := 0.0
	for i := 0; i < len(xs); {
		j := i
		for j < len(xs) && xs[i] == xs[j] {
			if ws == nil {
				cum++
			} else {
				cum += ws[j]
			}
			j++
		}
		xo = append(xo, xs[i])
		do = append(do, cum/total)
		co = append(co, cum)
		i = j
	}

	if s.Widen > 1 && !math.IsNaN(hi) {
		xo = append(xo, hi)
		do = append(do, 1)
		co = append(co, cum)
	}

	nt := new(table.Builder).
		Add(s.X, xo).
		Add("cumulative density", do).
		Add("cumulative count", co)
	preserveConsts(nt, t)
	return nt.Done()
}

func (ECDF) Defaults() Defaults {
	return Defaults{Geom: "line", Position: "identity"}
}

// weightedSort sorts xs and ws together by xs.
type weightedSort struct {
	xs, ws []float64
}

func (w *weightedSort) Len() int { return len(w.xs) }

func (w *weightedSort) Less(i, j int) bool { return w.xs[i] < w.xs[j] }

func (w *weightedSort) Swap(i, j int) {
	w.xs[i], w.xs[j] = w.xs[j], w.xs[i]
	w.ws[i], w.ws[j] = w.ws[j], w.ws[i]
}
