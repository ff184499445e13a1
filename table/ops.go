// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"reflect"
	"sort"
)

// GroupBy sub-divides every group of g such that all rows in each
// produced group have equal values in all of the named columns. Each
// produced GroupID extends the original GroupID with the values of
// the named columns, in first-appearance order. The values in the
// named columns must be comparable.
//
// In each produced group the grouped-by column is constant, so GroupBy
// rewrites it as a constant column. Operations that rebuild a group's
// row-wise columns while preserving its constant columns therefore
// keep the group's labels.
//
// This is the panel partitioner: faceting a plot on a column is a
// GroupBy on that column.
func GroupBy(g Grouping, cols ...string) Grouping {
	if len(cols) == 0 {
		return g
	}
	col := cols[0]

	var out GroupingBuilder
	for _, gid := range g.Tables() {
		t := g.Table(gid)

		if cv, ok := t.Const(col); ok {
			out.Add(gid.Extend(cv), t)
			continue
		}

		cv := reflectSlice(t.MustColumn(col))
		var order []interface{}
		rows := make(map[interface{}][]int)
		for i := 0; i < cv.Len(); i++ {
			k := cv.Index(i).Interface()
			if _, ok := rows[k]; !ok {
				order = append(order, k)
			}
			rows[k] = append(rows[k], i)
		}
		for _, k := range order {
			sub := NewBuilder(selectRows(t, rows[k])).AddConst(col, k).Done()
			out.Add(gid.Extend(k), sub)
		}
	}
	return GroupBy(out.Done(), cols[1:]...)
}

// selectRows returns a new Table with the rows of t at the given
// indexes, in order. Constant columns are carried over unchanged.
func selectRows(t *Table, idxs []int) *Table {
	var nt Builder
	for _, col := range t.Columns() {
		if cv, ok := t.Const(col); ok {
			nt.AddConst(col, cv)
			continue
		}
		cv := reflectSlice(t.Column(col))
		ncol := reflect.MakeSlice(cv.Type(), len(idxs), len(idxs))
		for i, idx := range idxs {
			ncol.Index(i).Set(cv.Index(idx))
		}
		nt.Add(col, ncol.Interface())
	}
	return nt.Done()
}

// MapTables applies f to each Table in g and returns a new Grouping
// with the same GroupIDs bound to f's results. f must return Tables
// with consistent columns.
func MapTables(g Grouping, f func(gid GroupID, t *Table) *Table) Grouping {
	var out GroupingBuilder
	for _, gid := range g.Tables() {
		out.Add(gid, f(gid, g.Table(gid)))
	}
	return out.Done()
}

// Flatten concatenates all of the groups of g into a single Table in
// group order. Constant columns are materialized.
func Flatten(g Grouping) *Table {
	gids := g.Tables()
	switch len(gids) {
	case 0:
		return new(Table)
	case 1:
		return g.Table(gids[0])
	}

	var nt Builder
	for _, col := range g.Columns() {
		var ncol reflect.Value
		for _, gid := range gids {
			cv := reflectSlice(g.Table(gid).MustColumn(col))
			if !ncol.IsValid() {
				ncol = reflect.MakeSlice(cv.Type(), 0, 0)
			}
			ncol = reflect.AppendSlice(ncol, cv)
		}
		nt.Add(col, ncol.Interface())
	}
	return nt.Done()
}

// SortBy sorts each group of g by the named columns. If two values in
// the first column are equal, rows are sorted by the second column,
// and so on. The sort is stable. The named columns must be of an
// ordered kind (integer, float, or string); otherwise SortBy panics.
func SortBy(g Grouping, cols ...string) Grouping {
	if len(cols) == 0 {
		return g
	}
	return MapTables(g, func(_ GroupID, t *Table) *Table {
		lesses := make([]func(i, j int) bool, 0, len(cols))
		equals := make([]func(i, j int) bool, 0, len(cols))
		for _, col := range cols {
			if _, ok := t.Const(col); ok {
				continue
			}
			less, eq := orderFuncs(t.MustColumn(col))
			lesses = append(lesses, less)
			equals = append(equals, eq)
		}

		perm := make([]int, t.Len())
		for i := range perm {
			perm[i] = i
		}
		sort.SliceStable(perm, func(i, j int) bool {
			a, b := perm[i], perm[j]
			for k, less := range lesses {
				if less(a, b) {
					return true
				}
				if !equals[k](a, b) {
					return false
				}
			}
			return false
		})
		return selectRows(t, perm)
	})
}

func orderFuncs(s Slice) (less, eq func(i, j int) bool) {
	switch s := s.(type) {
	case []float64:
		return func(i, j int) bool { return s[i] < s[j] },
			func(i, j int) bool { return s[i] == s[j] }
	case []int:
		return func(i, j int) bool { return s[i] < s[j] },
			func(i, j int) bool { return s[i] == s[j] }
	case []string:
		return func(i, j int) bool { return s[i] < s[j] },
			func(i, j int) bool { return s[i] == s[j] }
	}

	rv := reflectSlice(s)
	switch rv.Type().Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(i, j int) bool { return rv.Index(i).Int() < rv.Index(j).Int() },
			func(i, j int) bool { return rv.Index(i).Int() == rv.Index(j).Int() }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(i, j int) bool { return rv.Index(i).Uint() < rv.Index(j).Uint() },
			func(i, j int) bool { return rv.Index(i).Uint() == rv.Index(j).Uint() }
	case reflect.Float32, reflect.Float64:
		return func(i, j int) bool { return rv.Index(i).Float() < rv.Index(j).Float() },
			func(i, j int) bool { return rv.Index(i).Float() == rv.Index(j).Float() }
	case reflect.String:
		return func(i, j int) bool { return rv.Index(i).String() < rv.Index(j).String() },
			func(i, j int) bool { return rv.Index(i).String() == rv.Index(j).String() }
	}
	panic(fmt.Sprintf("cannot order values of type %T", s))
}

// ColType returns the slice type of column col in g, or nil if g is
// empty. All groups have the same column types, so this is the type
// of col in every group.
func ColType(g Grouping, col string) reflect.Type {
	gids := g.Tables()
	if len(gids) == 0 {
		return nil
	}
	return reflect.TypeOf(g.Table(gids[0]).MustColumn(col))
}

// Floats converts a numeric column to a fresh []float64. It panics if
// s is not a slice of an integer or float kind.
func Floats(s Slice) []float64 {
	switch s := s.(type) {
	case []float64:
		return append([]float64(nil), s...)
	case []int:
		out := make([]float64, len(s))
		for i, v := range s {
			out[i] = float64(v)
		}
		return out
	}

	rv := reflectSlice(s)
	switch rv.Type().Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		out := make([]float64, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Convert(float64Type).Float()
		}
		return out
	}
	panic(fmt.Sprintf("cannot convert %T to []float64", s))
}

var float64Type = reflect.TypeOf(float64(0))
