// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggstat

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/plotgrid/plotgrid/table"
)

// preserveConsts copies the constant columns of t into nt. Constant
// columns describe the whole panel (facet values, group labels), so
// they survive statistics that replace the row-wise columns.
func preserveConsts(nt *table.Builder, t *table.Table) {
	for _, col := range t.Columns() {
		if nt.Has(col) {
			// Don't overwrite a column the statistic
			// produced.
			continue
		}
		if cv, ok := t.Const(col); ok {
			nt.AddConst(col, cv)
		}
	}
}

// xBounds returns the domain over which a statistic should evaluate
// column xs. It prefers the trained "x" scale domain and falls back
// to the data bounds widened by widen (total, so half on each side).
// widen <= 0 is treated as 1.1.
func xBounds(xs []float64, scales Scales, widen float64) (min, max float64) {
	if widen <= 0 {
		widen = 1.1
	}
	if min, max, ok := scales.Domain("x"); ok && min < max {
		return min, max
	}
	min, max = stats.Bounds(xs)
	if math.IsNaN(min) {
		return min, max
	}
	span := max - min
	return min - span*(widen-1)/2, max + span*(widen-1)/2
}
