// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table implements ordered, grouped data tables.
//
// A Table is an immutable, column-major data table: a sequence of
// named columns where every column is a slice of the same length.
// Rows are observations; columns are variables. A Grouping extends
// this to an ordered collection of Tables indexed by hierarchical
// GroupIDs, which is how faceted (multi-panel) data is represented: a
// plot pipeline partitions a dataset into one Table per panel and
// each pipeline stage maps over the groups.
//
// Tables are constructed with a Builder and must not be modified
// after construction. Because Tables are immutable they may be shared
// freely, including between goroutines.
package table

import (
	"fmt"
	"reflect"
	"sync"
)

// A Slice is a Go slice value.
//
// This is primarily for documentation. There is no static way to
// enforce this in Go; however, functions that expect a Slice will
// panic with a *ValueError if passed a non-slice value.
type Slice interface{}

func reflectSlice(s Slice) reflect.Value {
	rv := reflect.ValueOf(s)
	if rv.Kind() != reflect.Slice {
		panic(fmt.Sprintf("expected slice; got value that is not a slice: %T", s))
	}
	return rv
}

// A GroupID identifies a group in a Grouping. GroupIDs form a
// hierarchy rooted at RootGroupID, where each level is labeled by a
// comparable value. Extending the same GroupID with equal labels
// yields equal GroupIDs, so GroupIDs may be used as map keys.
type GroupID struct {
	*groupNode
}

// RootGroupID is the root of the GroupID hierarchy and the sole group
// of an ungrouped Table.
var RootGroupID = GroupID{}

type groupNode struct {
	parent GroupID
	label  interface{}
}

type groupKey struct {
	parent *groupNode
	label  interface{}
}

var groupMu sync.Mutex
var groupIntern = make(map[groupKey]*groupNode)

// Extend returns a GroupID one level below g labeled by label. label
// must be comparable (in the sense of ==) or Extend will panic.
func (g GroupID) Extend(label interface{}) GroupID {
	groupMu.Lock()
	defer groupMu.Unlock()
	key := groupKey{g.groupNode, label}
	n, ok := groupIntern[key]
	if !ok {
		n = &groupNode{g, label}
		groupIntern[key] = n
	}
	return GroupID{n}
}

// Parent returns the GroupID one level above g. The parent of
// RootGroupID is RootGroupID.
func (g GroupID) Parent() GroupID {
	if g.groupNode == nil {
		return RootGroupID
	}
	return g.parent
}

// Label returns the label g was extended with, or nil for
// RootGroupID.
func (g GroupID) Label() interface{} {
	if g.groupNode == nil {
		return nil
	}
	return g.label
}

func (g GroupID) String() string {
	if g.groupNode == nil {
		return "/"
	}
	p := g.parent.String()
	if p == "/" {
		return "/" + fmt.Sprint(g.label)
	}
	return p + "/" + fmt.Sprint(g.label)
}

// A Grouping is an ordered collection of Tables indexed by GroupID.
// All Tables in a Grouping have the same set of columns with the same
// types. A *Table is itself a Grouping with a single group,
// RootGroupID (or no groups, if the Table is empty).
type Grouping interface {
	// Columns returns the column names of the Tables in this
	// Grouping, in order. It returns nil if the Grouping is
	// empty.
	Columns() []string

	// Tables returns the GroupIDs of the groups in this Grouping,
	// in order.
	Tables() []GroupID

	// Table returns the Table with the given GroupID, or nil if
	// there is no such group.
	Table(gid GroupID) *Table
}

// A Table is an immutable, ordered collection of equally sized
// columns. The zero value of Table is the empty table: it has no
// columns and no groups.
type Table struct {
	cols     map[string]Slice
	consts   map[string]interface{}
	colNames []string
	len      int
}

// Len returns the number of rows in t.
func (t *Table) Len() int {
	return t.len
}

// Columns returns the names of t's columns, in order, or nil if t is
// empty. Callers must not modify the returned slice.
func (t *Table) Columns() []string {
	return t.colNames
}

// Column returns the slice of data in column name, or nil if there is
// no such column. If name is a constant column, this materializes it
// as a slice of t.Len() repeated values.
func (t *Table) Column(name string) Slice {
	if c, ok := t.cols[name]; ok {
		return c
	}
	if cv, ok := t.consts[name]; ok {
		return repeatConst(cv, t.len)
	}
	return nil
}

// MustColumn is like Column, but panics if there is no column with
// the given name.
func (t *Table) MustColumn(name string) Slice {
	if c := t.Column(name); c != nil {
		return c
	}
	panic(fmt.Sprintf("unknown column %q", name))
}

// Const returns the value of constant column name and whether name is
// a constant column. A constant column has the same value in every
// row and is not stored row-wise.
func (t *Table) Const(name string) (val interface{}, ok bool) {
	val, ok = t.consts[name]
	return
}

func repeatConst(val interface{}, n int) Slice {
	sv := reflect.MakeSlice(reflect.SliceOf(reflect.TypeOf(val)), n, n)
	rval := reflect.ValueOf(val)
	for i := 0; i < n; i++ {
		sv.Index(i).Set(rval)
	}
	return sv.Interface()
}

// Tables returns the groups of t. If t is empty, there are no groups;
// otherwise the only group is RootGroupID.
func (t *Table) Tables() []GroupID {
	if len(t.colNames) == 0 {
		return []GroupID{}
	}
	return []GroupID{RootGroupID}
}

// Table returns t if gid is RootGroupID and t is non-empty; otherwise
// it returns nil.
func (t *Table) Table(gid GroupID) *Table {
	if gid == RootGroupID && len(t.colNames) != 0 {
		return t
	}
	return nil
}

// isConst reports whether name is a constant (not row-wise) column.
func (t *Table) isConst(name string) bool {
	_, ok := t.consts[name]
	return ok
}

// A Builder constructs a Table column by column. The zero value of
// Builder is an empty Builder.
type Builder struct {
	t *Table
}

// NewBuilder returns a Builder initialized with the columns of t. t
// may be nil, which is equivalent to new(Builder).
func NewBuilder(t *Table) *Builder {
	b := new(Builder)
	if t != nil {
		nt := &Table{
			cols:     make(map[string]Slice),
			consts:   make(map[string]interface{}),
			colNames: append([]string(nil), t.colNames...),
			len:      t.len,
		}
		for k, v := range t.cols {
			nt.cols[k] = v
		}
		for k, v := range t.consts {
			nt.consts[k] = v
		}
		b.t = nt
	}
	return b
}

func (b *Builder) table() *Table {
	if b.t == nil {
		b.t = &Table{
			cols:   make(map[string]Slice),
			consts: make(map[string]interface{}),
		}
	}
	return b.t
}

// Add adds a column named name with data data to b, or replaces the
// column if b already has one named name. Replacing a column keeps
// its position in the column order. If data is nil, Add instead
// removes column name, if present.
//
// Add panics if data is neither a slice nor nil, or if the length of
// data differs from the length of the other columns in b.
func (b *Builder) Add(name string, data Slice) *Builder {
	t := b.table()
	if data == nil {
		b.remove(name)
		return b
	}
	rv := reflectSlice(data)

	// The column being replaced doesn't constrain the length.
	rows, haveRows := -1, false
	for _, col := range t.colNames {
		if col != name && !t.isConst(col) {
			rows, haveRows = t.len, true
			break
		}
	}
	if haveRows && rv.Len() != rows {
		panic(fmt.Sprintf("cannot add column %q with %d elements to table with %d rows", name, rv.Len(), rows))
	}

	if t.isConst(name) {
		delete(t.consts, name)
	}
	if _, ok := t.cols[name]; !ok && !b.has(name) {
		t.colNames = append(t.colNames, name)
	}
	t.cols[name] = data
	t.len = rv.Len()
	return b
}

// AddConst adds a constant column named name with value val in every
// row, or replaces the column if b already has one named name.
// Constant columns are preserved by statistics that otherwise discard
// their input columns.
func (b *Builder) AddConst(name string, val interface{}) *Builder {
	t := b.table()
	if _, ok := t.cols[name]; ok {
		delete(t.cols, name)
	} else if !b.has(name) {
		t.colNames = append(t.colNames, name)
	}
	t.consts[name] = val
	return b
}

func (b *Builder) has(name string) bool {
	for _, col := range b.t.colNames {
		if col == name {
			return true
		}
	}
	return false
}

func (b *Builder) remove(name string) {
	t := b.table()
	if !b.has(name) {
		return
	}
	for i, col := range t.colNames {
		if col == name {
			t.colNames = append(t.colNames[:i], t.colNames[i+1:]...)
			break
		}
	}
	delete(t.cols, name)
	delete(t.consts, name)
	if len(t.cols) == 0 {
		t.len = 0
	}
}

// Has reports whether b has a column named name.
func (b *Builder) Has(name string) bool {
	if b.t == nil {
		return false
	}
	return b.has(name)
}

// Done returns the constructed Table and resets b to an empty
// Builder.
func (b *Builder) Done() *Table {
	t := b.table()
	b.t = nil
	if len(t.colNames) == 0 {
		t.colNames = nil
	}
	return t
}

// A GroupingBuilder constructs a Grouping group by group. The zero
// value of GroupingBuilder is an empty GroupingBuilder.
type GroupingBuilder struct {
	tables   map[GroupID]*Table
	gids     []GroupID
	colNames []string
	colTypes map[string]reflect.Type
}

// NewGroupingBuilder returns a GroupingBuilder initialized with the
// groups of g. g may be nil, which is equivalent to
// new(GroupingBuilder).
func NewGroupingBuilder(g Grouping) *GroupingBuilder {
	b := new(GroupingBuilder)
	if g == nil {
		return b
	}
	for _, gid := range g.Tables() {
		b.Add(gid, g.Table(gid))
	}
	return b
}

func (b *GroupingBuilder) init() {
	if b.tables == nil {
		b.tables = make(map[GroupID]*Table)
		b.colTypes = make(map[string]reflect.Type)
	}
}

// Add adds a Table to b under GroupID gid, or replaces the group if b
// already has one with this gid. Replacing a group keeps its position
// in the group order. If t is the empty Table, Add is a no-op. If t
// is nil, Add instead removes group gid, if present.
//
// All groups must have the same column names and column types, unless
// the Add replaces every group in b, in which case the new columns
// win. Add panics if t's columns are inconsistent with b's.
func (b *GroupingBuilder) Add(gid GroupID, t *Table) *GroupingBuilder {
	b.init()

	if t == nil {
		if _, ok := b.tables[gid]; ok {
			for i, g := range b.gids {
				if g == gid {
					b.gids = append(b.gids[:i], b.gids[i+1:]...)
					break
				}
			}
			delete(b.tables, gid)
		}
		if len(b.gids) == 0 {
			b.colNames, b.colTypes = nil, make(map[string]reflect.Type)
		}
		return b
	}

	if len(t.Columns()) == 0 {
		// Adding an empty table adds no data to any group.
		return b
	}

	// If this Add replaces everything in b, the table defines the
	// column structure.
	_, replacing := b.tables[gid]
	replaceAll := len(b.gids) == 0 || (len(b.gids) == 1 && replacing)

	if replaceAll {
		b.colNames = append([]string(nil), t.Columns()...)
		b.colTypes = make(map[string]reflect.Type)
		for _, col := range t.Columns() {
			if !t.isConst(col) {
				b.colTypes[col] = reflect.TypeOf(t.cols[col])
			}
		}
	} else {
		if !sameStrings(t.Columns(), b.colNames) {
			panic(fmt.Sprintf("table columns %q do not match group columns %q", t.Columns(), b.colNames))
		}
		for _, col := range t.Columns() {
			if t.isConst(col) {
				continue
			}
			typ := reflect.TypeOf(t.cols[col])
			if have, ok := b.colTypes[col]; !ok {
				b.colTypes[col] = typ
			} else if have != typ {
				panic(fmt.Sprintf("inconsistent types %s and %s for column %q", have.Elem(), typ.Elem(), col))
			}
		}
	}

	if !replacing {
		b.gids = append(b.gids, gid)
	}
	b.tables[gid] = t
	return b
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Done returns the constructed Grouping. If b has exactly one group
// and it is RootGroupID, Done returns its Table directly.
func (b *GroupingBuilder) Done() Grouping {
	if len(b.gids) == 0 {
		return new(Table)
	}
	if len(b.gids) == 1 && b.gids[0] == RootGroupID {
		return b.tables[RootGroupID]
	}
	g := &groupedTable{
		tables:   make(map[GroupID]*Table, len(b.tables)),
		gids:     append([]GroupID(nil), b.gids...),
		colNames: b.colNames,
	}
	for k, v := range b.tables {
		g.tables[k] = v
	}
	return g
}

type groupedTable struct {
	tables   map[GroupID]*Table
	gids     []GroupID
	colNames []string
}

func (g *groupedTable) Columns() []string {
	return g.colNames
}

func (g *groupedTable) Tables() []GroupID {
	return g.gids
}

func (g *groupedTable) Table(gid GroupID) *Table {
	return g.tables[gid]
}
