// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ggstat provides statistics for the plotgrid layer pipeline.
//
// A statistic transforms one panel's data table after aesthetic
// mapping and before geometry rendering. Binning, density estimation,
// and regression are statistics; Identity is the no-op statistic used
// when each mapped row should be rendered as-is.
//
// Statistics are plain value types. Their parameters are exported
// struct fields with reasonable zero-value defaults, fixed when the
// layer is built. A statistic holds no state across invocations, so a
// pipeline may compute panels concurrently with the same statistic
// value.
package ggstat

import "github.com/plotgrid/plotgrid/table"

// A Stat transforms a panel's data table.
type Stat interface {
	// ComputePanel transforms one panel's table. scales is the
	// read-only scale context for the panel; a statistic may
	// consult trained scale domains (for example, to choose bin
	// boundaries) but must not modify scales.
	ComputePanel(t *table.Table, scales Scales) *table.Table

	// Defaults returns the geometry and position adjustment to
	// pair with this statistic when the layer names neither.
	Defaults() Defaults
}

// Defaults names the geometry and position adjustment a statistic
// pairs with by default. The names are resolved against the gg
// package's geometry and position registries when a layer is built.
type Defaults struct {
	// Geom is a registered geometry name, such as "point",
	// "line", or "bar".
	Geom string

	// Position is a registered position adjustment name, such as
	// "identity", "jitter", or "stack".
	Position string
}

// Scales is a read-only view of the per-aesthetic scales supplied to
// a statistic by the pipeline.
type Scales interface {
	// Domain returns the trained domain of the scale bound to
	// aesthetic aes, such as "x" or "y". ok is false if no scale
	// has been trained for aes.
	Domain(aes string) (min, max float64, ok bool)
}

// NoScales is a Scales with nothing trained. It is what a statistic
// sees when it is applied outside a full render pass.
var NoScales Scales = noScales{}

type noScales struct{}

func (noScales) Domain(string) (min, max float64, ok bool) {
	return 0, 0, false
}

// Apply applies s to every panel of g under the same scale context.
func Apply(g table.Grouping, s Stat, scales Scales) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		return s.ComputePanel(t, scales)
	})
}

// Identity is the statistic that performs no transformation: every
// panel's table is returned exactly as mapped, with the same rows,
// columns, and values. It is the statistic for plots of raw
// observations, such as scatter plots, and the default statistic of a
// layer that names none.
//
// Identity never reads its scale context and returns the identical
// *table.Table it was given.
type Identity struct{}

func (Identity) ComputePanel(t *table.Table, _ Scales) *table.Table {
	return t
}

func (Identity) Defaults() Defaults {
	return Defaults{Geom: "point", Position: "identity"}
}
