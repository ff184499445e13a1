// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gg assembles layered plots and renders them to SVG.
//
// A Plot combines a data table with one or more Layers. Each Layer
// binds columns to aesthetics (x, y, color), names a statistic that
// transforms each panel's data, a geometry that draws it, and a
// position adjustment that displaces overlapping marks. Faceting
// partitions the data into panels by a column's values; the render
// pass applies each layer's statistic to each panel, adjusts
// positions, and draws the geometry with shared scales.
package gg

import (
	"log"
	"os"

	"github.com/plotgrid/plotgrid/table"
)

// Warning is a logger for reporting conditions that don't prevent the
// production of a plot, but may lead to unexpected results.
var Warning = log.New(os.Stderr, "[plotgrid] ", log.Lshortfile)

// Plot represents a single (potentially faceted) plot.
type Plot struct {
	data   table.Grouping
	facet  string
	layers []*layer

	title      string
	axisLabels map[string]string
}

// NewPlot returns a new Plot backed by data. It has no layers and one
// panel.
func NewPlot(data table.Grouping) *Plot {
	return &Plot{
		data:       data,
		axisLabels: make(map[string]string),
	}
}

// SetData sets p's data table. The caller must not modify data after
// this point.
func (p *Plot) SetData(data table.Grouping) *Plot {
	p.data = data
	return p
}

// Data returns p's data table.
func (p *Plot) Data() table.Grouping {
	return p.data
}

// Facet partitions the plot into one panel per distinct value of
// column col. Each panel gets the subset of the data with that value,
// and all panels share scales.
func (p *Plot) Facet(col string) *Plot {
	p.facet = col
	return p
}

// A Plotter is an operation that can modify a Plot.
type Plotter interface {
	Apply(*Plot)
}

// Add applies each of plotters to p in order.
func (p *Plot) Add(plotters ...Plotter) *Plot {
	for _, plotter := range plotters {
		plotter.Apply(p)
	}
	return p
}

// Title returns a Plotter that sets the title of a Plot.
func Title(label string) Plotter {
	return titlePlotter{label}
}

type titlePlotter struct {
	label string
}

func (t titlePlotter) Apply(p *Plot) {
	p.title = t.label
}

// AxisLabel returns a Plotter that sets the label of an axis on a
// Plot. By default, Plot constructs axis labels from column names;
// AxisLabel lets callers override these.
func AxisLabel(axis, label string) Plotter {
	return axisLabel{axis, label}
}

type axisLabel struct {
	axis, label string
}

func (a axisLabel) Apply(p *Plot) {
	p.axisLabels[a.axis] = a.label
}
