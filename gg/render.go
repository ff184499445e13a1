// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"

	svg "github.com/ajstarks/svgo"
	"github.com/plotgrid/plotgrid/table"
)

// WriteSVG renders p as a width x height SVG document to w.
//
// The render pass partitions each layer's data into panels (one per
// facet value), trains the positional scales, applies each layer's
// statistic to each panel under those scales, applies the layer's
// position adjustment, and draws the layer's geometry with all panels
// sharing scales.
func (p *Plot) WriteSVG(w io.Writer, width, height int) error {
	if p.data == nil || len(p.data.Tables()) == 0 {
		return errors.New("plot has no data")
	}
	if len(p.layers) == 0 {
		return errors.New("plot has no layers")
	}
	if p.facet != "" && !hasColumn(p.data, p.facet) {
		return fmt.Errorf("facet column %q is not in the data", p.facet)
	}

	// Partition into panels.
	panels := table.Grouping(p.data)
	if p.facet != "" {
		panels = table.GroupBy(p.data, p.facet)
	}
	pgids := panels.Tables()

	scales := make(scaleSet)
	colors := newColorScale()

	// Partition each layer and train the x scale on the raw mapped
	// data, so statistics see a trained x domain.
	type layerPanels struct {
		l          *layer
		groups     map[table.GroupID][]*table.Table
		xcol, ycol string
	}
	prepped := make([]*layerPanels, 0, len(p.layers))
	for _, l := range p.layers {
		lp := &layerPanels{l: l, groups: make(map[table.GroupID][]*table.Table)}

		var lg table.Grouping
		switch {
		case l.data == table.Grouping(p.data):
			lg = panels
		case p.facet != "" && hasColumn(l.data, p.facet):
			lg = table.GroupBy(l.data, p.facet)
		default:
			lg = l.data
		}

		for _, gid := range pgids {
			t := lg.Table(gid)
			if t == nil && gid != table.RootGroupID {
				// A layer without the facet column
				// repeats in every panel.
				t = lg.Table(table.RootGroupID)
			}
			if t == nil {
				continue
			}
			lp.groups[gid] = splitColor(t, l.color)
		}

		for _, ts := range lp.groups {
			for _, t := range ts {
				if xcol := colIfPresent(t, l.x, 0); xcol != "" {
					trainOn(scales.linear("x"), t.Column(xcol))
				}
			}
		}
		prepped = append(prepped, lp)
	}

	// Statistics, positions, and full scale training. Color
	// subgroups are computed separately and then merged back into
	// one table per panel, so position adjustments like stacking
	// see every series at once.
	for _, lp := range prepped {
		l := lp.l
		for _, gid := range pgids {
			var stattedSubs []*table.Table
			for _, t := range lp.groups[gid] {
				nt := l.stat.ComputePanel(t, scales)
				if nt != nil && len(nt.Columns()) != 0 {
					stattedSubs = append(stattedSubs, nt)
				}
			}
			nt := mergeTables(stattedSubs)
			if nt == nil {
				delete(lp.groups, gid)
				continue
			}

			x, y, err := l.bindCols(nt)
			if err != nil {
				return err
			}
			if lp.xcol == "" {
				lp.xcol, lp.ycol = x, y
			}
			nt = l.position.adjust(nt, x, y)
			lp.groups[gid] = []*table.Table{nt}

			trainOn(scales.linear("x"), nt.Column(x))
			trainOn(scales.linear("y"), nt.Column(y))
			if bc := nt.Column(stackBaseCol); bc != nil {
				trainOn(scales.linear("y"), bc)
			}
			if _, isBar := l.geom.(GeomBar); isBar {
				scales.linear("y").Include(0)
			}
			if l.color != "" {
				if col := nt.Column(l.color); col != nil {
					colors.ExpandDomain(col)
				}
			}
		}
	}

	// Layout.
	marginTop := 10.0
	if p.title != "" {
		marginTop += 24
	}
	facetH := 0.0
	if p.facet != "" {
		facetH = 20
	}
	const marginLeft, marginRight, marginBottom = 60.0, 10.0, 45.0
	const panelGap = 10.0

	n := len(pgids)
	plotW := float64(width) - marginLeft - marginRight
	plotH := float64(height) - marginTop - marginBottom - facetH
	pw := (plotW - panelGap*float64(n-1)) / float64(n)
	if pw < 10 || plotH < 10 {
		return fmt.Errorf("%dx%d is too small for %d panels", width, height, n)
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)

	if p.title != "" {
		canvas.Text(width/2, 20, p.title,
			"text-anchor:middle;font-size:16px;font-family:sans-serif")
	}

	xscale, yscale := scales.linear("x"), scales.linear("y")
	for i, gid := range pgids {
		x0 := marginLeft + float64(i)*(pw+panelGap)
		y0 := marginTop + facetH
		env := &panelEnv{
			svg: canvas,
			x0:  x0, y0: y0, w: pw, h: plotH,
			x: xscale, y: yscale,
			colors: colors,
		}

		canvas.Rect(int(x0), int(y0), int(pw), int(plotH), "fill:none;stroke:#cccccc")
		if p.facet != "" {
			canvas.Text(int(x0+pw/2), int(y0)-6, fmt.Sprint(gid.Label()),
				"text-anchor:middle;font-size:12px;font-family:sans-serif")
		}
		drawXAxis(env)
		if i == 0 {
			drawYAxis(env)
		}

		for _, lp := range prepped {
			for _, t := range lp.groups[gid] {
				lp.l.geom.render(env, t, lp.l)
			}
		}
	}

	// Axis labels.
	xlab, ylab := p.axisLabels["x"], p.axisLabels["y"]
	if xlab == "" || ylab == "" {
		for _, lp := range prepped {
			if xlab == "" {
				xlab = lp.xcol
			}
			if ylab == "" {
				ylab = lp.ycol
			}
			break
		}
	}
	if xlab != "" {
		canvas.Text(int(marginLeft+plotW/2), height-8, xlab,
			"text-anchor:middle;font-size:13px;font-family:sans-serif")
	}
	if ylab != "" {
		canvas.Gtransform(fmt.Sprintf("translate(14,%d) rotate(-90)", int(marginTop+facetH+plotH/2)))
		canvas.Text(0, 0, ylab, "text-anchor:middle;font-size:13px;font-family:sans-serif")
		canvas.Gend()
	}

	canvas.End()
	return ew.err
}

// panelEnv is the drawing context for one panel: its pixel rectangle
// and the shared scales.
type panelEnv struct {
	svg          *svg.SVG
	x0, y0, w, h float64
	x, y         *linearScaler
	colors       *colorScale
}

func (e *panelEnv) mapX(v float64) int {
	return int(math.Round(e.x0 + e.x.Map(v)*e.w))
}

func (e *panelEnv) mapY(v float64) int {
	return int(math.Round(e.y0 + e.h - e.y.Map(v)*e.h))
}

// rowColors returns a function from row index to fill color for t
// under l's color binding.
func (e *panelEnv) rowColors(t *table.Table, l *layer) func(int) string {
	black := func(int) string { return "black" }
	if l.color == "" {
		return black
	}
	if cv, ok := t.Const(l.color); ok {
		c := e.colors.Map(cv)
		return func(int) string { return c }
	}
	col := t.Column(l.color)
	if col == nil {
		return black
	}
	vals := anySlice(col)
	return func(i int) string { return e.colors.Map(vals[i]) }
}

func drawXAxis(e *panelEnv) {
	major, labels := e.x.Ticks(6)
	yb := int(e.y0 + e.h)
	for i, v := range major {
		px := e.mapX(v)
		if px < int(e.x0) || px > int(e.x0+e.w) {
			continue
		}
		e.svg.Line(px, yb, px, yb+5, "stroke:black")
		e.svg.Text(px, yb+18, labels[i],
			"text-anchor:middle;font-size:11px;font-family:sans-serif")
	}
}

func drawYAxis(e *panelEnv) {
	major, labels := e.y.Ticks(6)
	xl := int(e.x0)
	for i, v := range major {
		py := e.mapY(v)
		if py < int(e.y0) || py > int(e.y0+e.h) {
			continue
		}
		e.svg.Line(xl-5, py, xl, py, "stroke:black")
		e.svg.Text(xl-8, py+4, labels[i],
			"text-anchor:end;font-size:11px;font-family:sans-serif")
	}
}

// splitColor splits t into one table per distinct value of the color
// column, so statistics and geometries see one series at a time.
func splitColor(t *table.Table, color string) []*table.Table {
	if color == "" || t.Column(color) == nil {
		return []*table.Table{t}
	}
	if _, ok := t.Const(color); ok {
		return []*table.Table{t}
	}
	g := table.GroupBy(t, color)
	ts := make([]*table.Table, 0, len(g.Tables()))
	for _, gid := range g.Tables() {
		ts = append(ts, g.Table(gid))
	}
	return ts
}

// mergeTables concatenates color subgroup tables back into one panel
// table. The subgroups' constant color labels become a row-wise
// column, which is how geometries color individual marks.
func mergeTables(ts []*table.Table) *table.Table {
	switch len(ts) {
	case 0:
		return nil
	case 1:
		return ts[0]
	}
	var gb table.GroupingBuilder
	for i, t := range ts {
		gb.Add(table.RootGroupID.Extend(i), t)
	}
	return table.Flatten(gb.Done())
}

func hasColumn(g table.Grouping, col string) bool {
	for _, c := range g.Columns() {
		if c == col {
			return true
		}
	}
	return false
}

// colIfPresent resolves a positional binding against t without
// panicking: the named column if present, else the column at idx,
// else "".
func colIfPresent(t *table.Table, name string, idx int) string {
	if name != "" && t.Column(name) != nil {
		return name
	}
	cols := t.Columns()
	if idx < len(cols) {
		return cols[idx]
	}
	return ""
}

// trainOn expands sc's domain with v if v is a numeric column.
func trainOn(sc *linearScaler, v table.Slice) {
	if v == nil {
		return
	}
	rv := reflect.ValueOf(v)
	switch rv.Type().Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		sc.ExpandDomain(v)
	}
}

func anySlice(s table.Slice) []interface{} {
	rv := reflect.ValueOf(s)
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// errWriter captures the first error from an underlying writer. The
// SVG encoder does not surface write errors itself.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return len(p), nil
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
		return len(p), nil
	}
	return n, nil
}
