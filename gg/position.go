// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"math/rand"
	"sort"

	"github.com/plotgrid/plotgrid/table"
)

// stackBaseCol is the internal column PosStack adds to carry the
// lower edge of each stacked mark to the geometry.
const stackBaseCol = "[plotgrid-stack-base]"

// A Position adjusts the coordinates of a panel's marks after the
// statistic has run, to resolve overplotting.
type Position interface {
	// adjust returns t with the x and/or y columns displaced. x
	// and y are the resolved positional column names for t.
	adjust(t *table.Table, x, y string) *table.Table
}

var positionRegistry = make(map[string]func() Position)

func registerPosition(name string, f func() Position) {
	positionRegistry[name] = f
}

// lookupPosition returns the registered position adjustment named
// name. Unknown names warn and fall back to PosIdentity.
func lookupPosition(name string) Position {
	f := positionRegistry[name]
	if f == nil {
		Warning.Printf("unknown position adjustment %q; using \"identity\"", name)
		return PosIdentity{}
	}
	return f()
}

func init() {
	registerPosition("identity", func() Position { return PosIdentity{} })
	registerPosition("jitter", func() Position { return PosJitter{} })
	registerPosition("stack", func() Position { return PosStack{} })
}

// PosIdentity performs no displacement: marks are drawn exactly where
// the data puts them.
type PosIdentity struct{}

func (PosIdentity) adjust(t *table.Table, x, y string) *table.Table {
	return t
}

// PosJitter displaces each mark by a uniform random offset, breaking
// up overplotted discrete data.
type PosJitter struct {
	// Width is the total horizontal jitter in x units. If Width
	// is 0, it defaults to 40% of the smallest spacing between
	// distinct x values.
	Width float64

	// Height is the total vertical jitter in y units. If Height
	// is 0, y is not jittered.
	Height float64

	// Seed seeds the jitter's random source, so a seeded plot
	// renders reproducibly. A zero Seed is treated as 1.
	Seed int64
}

func (p PosJitter) adjust(t *table.Table, x, y string) *table.Table {
	seed := p.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	xs := table.Floats(t.MustColumn(x))
	width := p.Width
	if width == 0 {
		width = 0.4 * resolution(xs)
	}
	for i := range xs {
		xs[i] += (rng.Float64() - 0.5) * width
	}
	nt := table.NewBuilder(t).Add(x, xs)

	if p.Height != 0 {
		ys := table.Floats(t.MustColumn(y))
		for i := range ys {
			ys[i] += (rng.Float64() - 0.5) * p.Height
		}
		nt.Add(y, ys)
	}
	return nt.Done()
}

// PosStack stacks marks that share an x value: each mark's lower edge
// is the top of the previous mark at the same x, in row order. It is
// the default position for binned bar layers, where groups at the
// same bin should sum rather than occlude.
type PosStack struct{}

func (PosStack) adjust(t *table.Table, x, y string) *table.Table {
	xs := table.Floats(t.MustColumn(x))
	ys := table.Floats(t.MustColumn(y))

	cum := make(map[float64]float64)
	bases := make([]float64, len(ys))
	tops := make([]float64, len(ys))
	for i := range ys {
		b := cum[xs[i]]
		bases[i] = b
		tops[i] = b + ys[i]
		cum[xs[i]] = tops[i]
	}

	return table.NewBuilder(t).Add(y, tops).Add(stackBaseCol, bases).Done()
}

// resolution returns the smallest spacing between distinct values of
// xs, or 1 if there are fewer than two distinct values.
func resolution(xs []float64) float64 {
	distinct := append([]float64(nil), xs...)
	sort.Float64s(distinct)
	res := 0.0
	for i := 1; i < len(distinct); i++ {
		d := distinct[i] - distinct[i-1]
		if d > 0 && (res == 0 || d < res) {
			res = d
		}
	}
	if res == 0 {
		return 1
	}
	return res
}
