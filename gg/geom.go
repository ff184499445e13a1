// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"math"

	"github.com/plotgrid/plotgrid/table"
)

// A Geom renders one panel of a layer's data as marks.
//
// Positional columns must be numeric; Color may be any comparable
// column.
type Geom interface {
	// render draws t's rows into e's panel. l carries the
	// aesthetic bindings.
	render(e *panelEnv, t *table.Table, l *layer)
}

var geomRegistry = make(map[string]func() Geom)

func registerGeom(name string, f func() Geom) {
	geomRegistry[name] = f
}

// lookupGeom returns the registered geometry named name. Unknown
// names warn and fall back to GeomPoint.
func lookupGeom(name string) Geom {
	f := geomRegistry[name]
	if f == nil {
		Warning.Printf("unknown geometry %q; using \"point\"", name)
		return GeomPoint{}
	}
	return f()
}

func init() {
	registerGeom("point", func() Geom { return GeomPoint{} })
	registerGeom("line", func() Geom { return GeomLine{} })
	registerGeom("bar", func() Geom { return GeomBar{} })
}

// GeomPoint draws a point mark at each row.
type GeomPoint struct {
	// Size is the point radius in pixels. If Size is 0, it
	// defaults to 3.
	Size float64
}

func (g GeomPoint) render(e *panelEnv, t *table.Table, l *layer) {
	xcol, ycol := l.resolveCols(t)
	xs := table.Floats(t.MustColumn(xcol))
	ys := table.Floats(t.MustColumn(ycol))
	colors := e.rowColors(t, l)

	r := int(math.Round(g.Size))
	if r <= 0 {
		r = 3
	}
	for i := range xs {
		if !isFinite(xs[i]) || !isFinite(ys[i]) {
			continue
		}
		style := fmt.Sprintf("fill:%s;fill-opacity:0.85", colors(i))
		e.svg.Circle(e.mapX(xs[i]), e.mapY(ys[i]), r, style)
	}
}

// GeomLine connects successive rows with a path, in x order.
type GeomLine struct {
	// Width is the stroke width in pixels. If Width is 0, it
	// defaults to 1.5.
	Width float64
}

func (g GeomLine) render(e *panelEnv, t *table.Table, l *layer) {
	// One path per color series, each in x order.
	series := table.Grouping(t)
	if l.color != "" && t.Column(l.color) != nil {
		series = table.GroupBy(t, l.color)
	}
	xcol, ycol := l.resolveCols(t)
	series = table.SortBy(series, xcol)

	width := g.Width
	if width == 0 {
		width = 1.5
	}

	for _, gid := range series.Tables() {
		st := series.Table(gid)
		xs := table.Floats(st.MustColumn(xcol))
		ys := table.Floats(st.MustColumn(ycol))
		colors := e.rowColors(st, l)

		var px, py []int
		for i := range xs {
			if !isFinite(xs[i]) || !isFinite(ys[i]) {
				continue
			}
			px = append(px, e.mapX(xs[i]))
			py = append(py, e.mapY(ys[i]))
		}
		if len(px) < 2 {
			continue
		}
		style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.3g", colors(0), width)
		e.svg.Polyline(px, py, style)
	}
}

// GeomBar draws a vertical bar at each row, from the row's stack base
// (or zero) to its y value.
type GeomBar struct {
	// Width is the bar width in x units. If Width is 0, it
	// defaults to 90% of the smallest spacing between distinct x
	// values.
	Width float64
}

func (g GeomBar) render(e *panelEnv, t *table.Table, l *layer) {
	xcol, ycol := l.resolveCols(t)
	xs := table.Floats(t.MustColumn(xcol))
	ys := table.Floats(t.MustColumn(ycol))
	colors := e.rowColors(t, l)

	var bases []float64
	if bc := t.Column(stackBaseCol); bc != nil {
		bases = table.Floats(bc)
	}

	width := g.Width
	if width == 0 {
		width = 0.9 * resolution(xs)
	}

	for i := range xs {
		if !isFinite(xs[i]) || !isFinite(ys[i]) {
			continue
		}
		base := 0.0
		if bases != nil {
			base = bases[i]
		}
		x0 := e.mapX(xs[i] - width/2)
		x1 := e.mapX(xs[i] + width/2)
		y0 := e.mapY(base)
		y1 := e.mapY(ys[i])
		if y1 > y0 {
			y0, y1 = y1, y0
		}
		if x1 <= x0 {
			x1 = x0 + 1
		}
		style := fmt.Sprintf("fill:%s;fill-opacity:0.85", colors(i))
		e.svg.Rect(x0, y1, x1-x0, y0-y1, style)
	}
}

func isFinite(x float64) bool {
	return !(math.IsNaN(x) || math.IsInf(x, 0))
}
