// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggstat

import (
	"math"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/vec"
	"gonum.org/v1/gonum/stat"

	"github.com/plotgrid/plotgrid/table"
)

// LeastSquares constructs a least squares polynomial regression for
// the data (X, Y), sampled over the X domain.
//
// X and Y are required. All other fields have reasonable default zero
// values.
//
// The result of LeastSquares has two columns in addition to constant
// columns from the input:
//
// - Column X is the points at which the fit function is sampled.
//
// - Column Y is the value of the fit function.
type LeastSquares struct {
	// X and Y are the names of the columns to use for X and Y
	// values of data points, respectively.
	X, Y string

	// N is the number of points to sample the regression at. If N
	// is 0, it defaults to 200.
	N int

	// Widen sets the sample domain to Widen times the span of the
	// data when no "x" scale has been trained. If Widen is 0, it
	// is treated as 1.1. If an "x" scale has been trained, its
	// domain is used directly.
	Widen float64

	// Degree is the degree of the fit polynomial. If it is 0, it
	// is treated as 1 (a linear fit).
	Degree int
}

func (s LeastSquares) ComputePanel(t *table.Table, scales Scales) *table.Table {
	if s.N == 0 {
		s.N = 200
	}
	if s.Degree <= 0 {
		s.Degree = 1
	}

	xs := table.Floats(t.MustColumn(s.X))
	ys := table.Floats(t.MustColumn(s.Y))

	if len(xs) == 0 {
		nt := new(table.Builder).Add(s.X, []float64{}).Add(s.Y, []float64{})
		preserveConsts(nt, t)
		return nt.Done()
	}

	lo, hi := xBounds(xs, scales, s.Widen)
	if math.IsNaN(lo) || lo == hi {
		lo, hi = lo-1, hi+1
	}

	var f func(float64) float64
	if s.Degree == 1 {
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		f = func(x float64) float64 { return alpha + beta*x }
	} else {
		r := fit.PolynomialRegression(xs, ys, nil, s.Degree)
		f = r.F
	}

	eval := vec.Linspace(lo, hi, s.N)
	nt := new(table.Builder).Add(s.X, eval).Add(s.Y, vec.Map(f, eval))
	preserveConsts(nt, t)
	return nt.Done()
}

func (LeastSquares) Defaults() Defaults {
	return Defaults{Geom: "line", Position: "identity"}
}
