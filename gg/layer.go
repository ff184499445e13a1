// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"

	"github.com/plotgrid/plotgrid/ggstat"
	"github.com/plotgrid/plotgrid/table"
)

// A Layer combines data, aesthetic bindings, a statistic, a geometry,
// and a position adjustment into one visual component of a Plot.
//
// Only the bindings a layer actually uses are required; everything
// else has a default. A zero Stat is ggstat.Identity. A zero Geom or
// Position is taken from the statistic's Defaults, so a layer with an
// Identity statistic and nothing else draws points with no
// displacement.
type Layer struct {
	// Data is the data table for this layer. If Data is nil, the
	// layer uses the Plot's data.
	Data table.Grouping

	// X and Y name columns bound to the x and y positions of each
	// mark. If they are empty, they default to the first and
	// second columns of the layer's data after the statistic has
	// run.
	X, Y string

	// Color names a column bound to the color of each mark. If
	// Color is "", marks are black. Marks are grouped by distinct
	// values of this column.
	Color string

	// Stat is the statistic applied to each panel's data before
	// rendering. If Stat is nil, it defaults to ggstat.Identity.
	Stat ggstat.Stat

	// Geom is the geometry that renders this layer. If Geom is
	// nil, it defaults to the geometry named by Stat's Defaults.
	Geom Geom

	// Position is the position adjustment applied after the
	// statistic. If Position is nil, it defaults to the position
	// named by Stat's Defaults.
	Position Position
}

func (l Layer) Apply(p *Plot) {
	p.layers = append(p.layers, l.resolve(p))
}

// layer is a Layer with every default filled in.
type layer struct {
	data     table.Grouping
	x, y     string
	color    string
	stat     ggstat.Stat
	geom     Geom
	position Position
}

func (l Layer) resolve(p *Plot) *layer {
	data := l.Data
	if data == nil {
		data = p.data
	}

	stat := l.Stat
	if stat == nil {
		stat = ggstat.Identity{}
	}
	def := stat.Defaults()

	geom := l.Geom
	if geom == nil {
		geom = lookupGeom(def.Geom)
	}
	position := l.Position
	if position == nil {
		position = lookupPosition(def.Position)
	}

	return &layer{
		data:     data,
		x:        l.X,
		y:        l.Y,
		color:    l.Color,
		stat:     stat,
		geom:     geom,
		position: position,
	}
}

// bindCols returns the x and y column names of l for table t,
// defaulting to t's first and second columns. It is applied to the
// statistic's output, since a statistic may replace the bound columns
// (for example, binning replaces y with "count"). It returns an error
// if a binding cannot be resolved, such as a missing y default on a
// one-column table.
func (l *layer) bindCols(t *table.Table) (x, y string, err error) {
	cols := t.Columns()
	pick := func(name string, idx int) (string, error) {
		if name != "" && t.Column(name) != nil {
			return name, nil
		}
		if idx >= len(cols) {
			return "", fmt.Errorf("cannot get default column %d; table has only %d columns", idx, len(cols))
		}
		return cols[idx], nil
	}
	if x, err = pick(l.x, 0); err != nil {
		return "", "", err
	}
	if y, err = pick(l.y, 1); err != nil {
		return "", "", err
	}
	return x, y, nil
}

// resolveCols is bindCols for callers past the render pass's
// validation, where an unresolvable binding is a bug.
func (l *layer) resolveCols(t *table.Table) (x, y string) {
	x, y, err := l.bindCols(t)
	if err != nil {
		panic(err.Error())
	}
	return x, y
}
