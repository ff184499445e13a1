// Copyright 2024 The plotgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/plotgrid/plotgrid/table"
)

// readTable reads CSV data with a header row into a Table. Columns
// whose every non-empty value parses as a number become []float64
// (empty cells become NaN); all other columns become []string.
func readTable(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	header, rows := recs[0], recs[1:]

	var nt table.Builder
	for j, name := range header {
		numeric := true
		for _, row := range rows {
			if row[j] == "" {
				continue
			}
			if _, err := strconv.ParseFloat(row[j], 64); err != nil {
				numeric = false
				break
			}
		}

		if numeric {
			col := make([]float64, len(rows))
			for i, row := range rows {
				if row[j] == "" {
					col[i] = math.NaN()
					continue
				}
				col[i], _ = strconv.ParseFloat(row[j], 64)
			}
			nt.Add(name, col)
		} else {
			col := make([]string, len(rows))
			for i, row := range rows {
				col[i] = row[j]
			}
			nt.Add(name, col)
		}
	}
	return nt.Done(), nil
}
