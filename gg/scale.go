// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/plotgrid/plotgrid/table"
)

// A linearScaler maps a continuous domain, trained on data, onto
// [0, 1]. Positional aesthetics (x, y) use linear scalers; the render
// pass maps the unit interval onto panel pixels.
type linearScaler struct {
	s                scale.Linear
	dataMin, dataMax float64
}

func newLinearScaler() *linearScaler {
	return &linearScaler{
		s:       scale.Linear{Min: math.NaN(), Max: math.NaN()},
		dataMin: math.NaN(),
		dataMax: math.NaN(),
	}
}

// ExpandDomain widens the scaler's trained domain to include the
// values in v. NaNs and infinities are ignored.
func (s *linearScaler) ExpandDomain(v table.Slice) {
	for _, x := range table.Floats(v) {
		s.Include(x)
	}
}

// Include widens the scaler's trained domain to include v.
func (s *linearScaler) Include(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if v < s.dataMin || math.IsNaN(s.dataMin) {
		s.dataMin = v
	}
	if v > s.dataMax || math.IsNaN(s.dataMax) {
		s.dataMax = v
	}
}

// get returns the effective scale: fixed bounds if set, else the
// trained data bounds, else [-1, 1].
func (s *linearScaler) get() scale.Linear {
	ls := s.s
	if math.IsNaN(ls.Min) {
		ls.Min = s.dataMin
	}
	if math.IsNaN(ls.Max) {
		ls.Max = s.dataMax
	}
	if math.IsNaN(ls.Min) {
		ls.Min, ls.Max = -1, 1
	}
	if ls.Min == ls.Max {
		ls.Min, ls.Max = ls.Min-1, ls.Max+1
	}
	return ls
}

// Map maps x into [0, 1] under the scaler's domain.
func (s *linearScaler) Map(x float64) float64 {
	ls := s.get()
	return ls.Map(x)
}

// Domain returns the scaler's effective domain.
func (s *linearScaler) Domain() (min, max float64) {
	ls := s.get()
	return ls.Min, ls.Max
}

// Ticks returns at most max major tick positions in the scaler's
// domain and their labels.
func (s *linearScaler) Ticks(max int) (major []float64, labels []string) {
	ls := s.get()
	o := scale.TickOptions{Max: max}
	major, _ = ls.Ticks(o)
	labels = make([]string, len(major))
	for i, x := range major {
		labels[i] = fmt.Sprintf("%.6g", x)
	}
	return major, labels
}

// scaleSet is the per-aesthetic scale state of a render pass. It is
// the ggstat.Scales supplied to statistics: statistics see trained
// domains and nothing else.
type scaleSet map[string]*linearScaler

// linear returns the linear scaler for aesthetic aes, creating it if
// needed.
func (s scaleSet) linear(aes string) *linearScaler {
	sc := s[aes]
	if sc == nil {
		sc = newLinearScaler()
		s[aes] = sc
	}
	return sc
}

// Domain returns the trained domain of the scale for aesthetic aes.
// It reports ok as false until data has been trained on the scale.
func (s scaleSet) Domain(aes string) (min, max float64, ok bool) {
	sc := s[aes]
	if sc == nil || math.IsNaN(sc.dataMin) {
		return 0, 0, false
	}
	min, max = sc.Domain()
	return min, max, true
}

// colorScale maps distinct values of the color column onto a fixed
// palette, in first-appearance order.
type colorScale struct {
	order []interface{}
	index map[interface{}]int
}

// palette is the d3 "category10" qualitative palette.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

func newColorScale() *colorScale {
	return &colorScale{index: make(map[interface{}]int)}
}

func (s *colorScale) ExpandDomain(v table.Slice) {
	for _, x := range anySlice(v) {
		if _, ok := s.index[x]; !ok {
			s.index[x] = len(s.order)
			s.order = append(s.order, x)
		}
	}
}

// Map returns the palette color for value x. Values beyond the
// palette cycle through it.
func (s *colorScale) Map(x interface{}) string {
	i, ok := s.index[x]
	if !ok {
		return "black"
	}
	return palette[i%len(palette)]
}

// Levels returns the distinct color values in palette order.
func (s *colorScale) Levels() []interface{} {
	return s.order
}
