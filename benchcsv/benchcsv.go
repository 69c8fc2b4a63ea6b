// Copyright 2024 The Benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcsv reads benchmark result tables in CSV form.
//
// Benchmark harnesses have produced two generations of result tables.
// The older "labeled" scheme carries structured Scenario/Algorithm/
// TestName columns, so its rows need no further classification. The
// newer "raw" scheme carries only the free-form Benchmark identifier
// and leaves classification to the benchclass package. Read inspects
// the header row and picks the matching scheme; metric columns are
// normalized to the canonical names TimeNs, AllocBytes and AllocsPerOp
// regardless of which scheme named them.
package benchcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Canonical metric names. Both column naming schemes are mapped onto
// these on ingest, so downstream consumers never see per-scheme
// column names.
const (
	TimeNs      = "TimeNs"
	AllocBytes  = "AllocBytes"
	AllocsPerOp = "AllocsPerOp"
)

// A Row is a single benchmark measurement read from a results table.
//
// Rows are immutable once ingested; callers must not modify Metrics.
type Row struct {
	// Name is the free-form benchmark identifier. For labeled
	// tables this is the TestName column; for raw tables it is the
	// Benchmark column.
	Name string

	// Scenario, Algorithm and TestName carry the structured labels
	// of pre-classified tables. They are empty for raw tables.
	Scenario, Algorithm, TestName string

	// Metrics maps canonical metric names to measured values.
	// Cells that failed to parse as numbers are simply absent.
	Metrics map[string]float64

	fileName string
	line     int
}

// Labeled reports whether the row was read from a pre-classified
// table and already carries structured fields.
func (r *Row) Labeled() bool {
	return r.Scenario != ""
}

// Metric returns the named metric and whether it was present.
func (r *Row) Metric(name string) (float64, bool) {
	v, ok := r.Metrics[name]
	return v, ok
}

// Pos returns the file name and line this row was read from.
func (r *Row) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// A Table is the result of reading one CSV source.
type Table struct {
	// FileName is the name of the source, purely diagnostic.
	FileName string

	// Scheme is the name of the column naming scheme the header
	// matched, "labeled" or "raw".
	Scheme string

	// Labeled reports whether rows carry structured fields and the
	// classification stage can be bypassed.
	Labeled bool

	// Rows holds the measurements in input order.
	Rows []Row
}

// A MissingSourceError reports that a benchmark source does not exist
// or could not be read. It is fatal to a pipeline run.
type MissingSourceError struct {
	Path string
	Err  error
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("benchmark source %s: %v", e.Path, e.Err)
}

func (e *MissingSourceError) Unwrap() error {
	return e.Err
}

// A SchemaError reports that a table's header matched no known column
// naming scheme. It is fatal to a pipeline run.
type SchemaError struct {
	FileName string
	Header   []string
	Msg      string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.FileName, e.Msg)
}

// ReadFile reads the benchmark results table at path.
//
// It returns a *MissingSourceError if the file cannot be opened or
// read, and a *SchemaError if no identifier-like column can be
// located in its header.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &MissingSourceError{path, err}
	}
	defer f.Close()
	return Read(f, path)
}

// Read reads a benchmark results table from r. fileName is used in
// errors and row positions; it is purely diagnostic.
func Read(r io.Reader, fileName string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SchemaError{fileName, nil, "empty table"}
	}
	if err != nil {
		return nil, &MissingSourceError{fileName, err}
	}

	cols := make(map[string]int)
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var sc scheme
	for _, s := range schemes {
		if s.matches(cols) {
			sc = s
			break
		}
	}
	if sc == nil {
		return nil, &SchemaError{fileName, header,
			fmt.Sprintf("no identifier column in header %q (want %s)", header, schemeHint())}
	}

	t := &Table{FileName: fileName, Scheme: sc.name(), Labeled: sc.labeled()}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MissingSourceError{fileName, err}
		}
		row, ok := sc.row(cols, rec)
		if !ok {
			// No identifier on this line; skip it.
			continue
		}
		row.fileName = fileName
		row.line = line
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// field returns the trimmed cell at column name, or "" if the column
// is missing or the record is too short.
func field(cols map[string]int, rec []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// metric parses the cell at the first present column alias and stores
// it in m under the canonical name. Unparseable cells are dropped:
// a missing metric must stay missing rather than read as zero.
func metric(m map[string]float64, cols map[string]int, rec []string, canonical string, aliases ...string) {
	for _, alias := range aliases {
		s := field(cols, rec, alias)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		m[canonical] = v
		return
	}
}
