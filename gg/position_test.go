// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gg

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/plotgrid/plotgrid/table"
)

func TestPosIdentity(t *testing.T) {
	tab := xyTable()
	if got := (PosIdentity{}).adjust(tab, "x", "y"); got != tab {
		t.Errorf("identity position should return its input unchanged")
	}
}

func TestPosJitter(t *testing.T) {
	tab := xyTable()
	xs := tab.Column("x").([]float64)

	got := PosJitter{Seed: 7}.adjust(tab, "x", "y")
	jxs := got.Column("x").([]float64)
	if len(jxs) != len(xs) {
		t.Fatalf("jitter should preserve row count")
	}
	moved := false
	for i := range jxs {
		// Default width is 40% of the x resolution, so offsets
		// stay within +/-0.2.
		if d := math.Abs(jxs[i] - xs[i]); d > 0.2 {
			t.Errorf("row %d jittered by %v; want at most 0.2", i, d)
		}
		if jxs[i] != xs[i] {
			moved = true
		}
	}
	if !moved {
		t.Errorf("jitter should displace at least one mark")
	}

	// Zero Height leaves y alone.
	if diff := cmp.Diff(tab.Column("y"), got.Column("y")); diff != "" {
		t.Errorf("y should be untouched:\n%s", diff)
	}

	// The same seed reproduces the same jitter.
	again := PosJitter{Seed: 7}.adjust(tab, "x", "y")
	if diff := cmp.Diff(jxs, again.Column("x")); diff != "" {
		t.Errorf("jitter should be deterministic for a fixed seed:\n%s", diff)
	}

	// The input is unchanged.
	if diff := cmp.Diff([]float64{1, 2, 3, 4}, tab.Column("x")); diff != "" {
		t.Errorf("input mutated:\n%s", diff)
	}
}

func TestPosJitterHeight(t *testing.T) {
	tab := xyTable()
	got := PosJitter{Seed: 3, Height: 2}.adjust(tab, "x", "y")
	ys := tab.Column("y").([]float64)
	jys := got.Column("y").([]float64)
	for i := range jys {
		if d := math.Abs(jys[i] - ys[i]); d > 1 {
			t.Errorf("row %d y jittered by %v; want at most 1", i, d)
		}
	}
}

func TestPosStack(t *testing.T) {
	tab := new(table.Builder).
		Add("x", []float64{0, 0, 1}).
		Add("y", []float64{1, 2, 3}).
		Done()

	got := PosStack{}.adjust(tab, "x", "y")
	if diff := cmp.Diff([]float64{1, 3, 3}, got.Column("y")); diff != "" {
		t.Errorf("stacked tops:\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 1, 0}, got.Column(stackBaseCol)); diff != "" {
		t.Errorf("stacked bases:\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 0, 1}, got.Column("x")); diff != "" {
		t.Errorf("x should be untouched:\n%s", diff)
	}
}

func TestResolution(t *testing.T) {
	tests := []struct {
		xs   []float64
		want float64
	}{
		{[]float64{1, 2, 4}, 1},
		{[]float64{4, 2, 1}, 1},
		{[]float64{2, 2, 4}, 2},
		{[]float64{5}, 1},
		{nil, 1},
	}
	for _, test := range tests {
		if got := resolution(test.xs); got != test.want {
			t.Errorf("resolution(%v) = %v; want %v", test.xs, got, test.want)
		}
	}
}
