// Copyright 2024 The Benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import "strings"

// A scheme adapts one CSV column naming convention onto Rows. Schemes
// are tried in order against the header; the first whose required
// columns are present wins.
type scheme interface {
	name() string

	// columns describes the scheme's required columns for error
	// messages.
	columns() string

	// labeled reports whether rows produced by this scheme carry
	// structured scenario/algorithm fields.
	labeled() bool

	// matches reports whether the header columns satisfy this scheme.
	matches(cols map[string]int) bool

	// row converts one CSV record. ok is false when the record has
	// no identifier and should be skipped.
	row(cols map[string]int, rec []string) (row Row, ok bool)
}

var schemes = []scheme{labeledScheme{}, rawScheme{}}

func schemeHint() string {
	hints := make([]string, len(schemes))
	for i, s := range schemes {
		hints[i] = s.columns()
	}
	return strings.Join(hints, " or ")
}

// labeledScheme reads tables produced by the converter tool, with the
// classification already applied:
//
//	TestName,Algorithm,TimeNs,MemoryBytes,Allocations,Scenario
type labeledScheme struct{}

func (labeledScheme) name() string    { return "labeled" }
func (labeledScheme) columns() string { return "Scenario,Algorithm,TestName,TimeNs" }
func (labeledScheme) labeled() bool   { return true }

func (labeledScheme) matches(cols map[string]int) bool {
	_, hasScenario := cols["Scenario"]
	_, hasTest := cols["TestName"]
	return hasScenario && hasTest
}

func (labeledScheme) row(cols map[string]int, rec []string) (Row, bool) {
	name := field(cols, rec, "TestName")
	if name == "" {
		return Row{}, false
	}
	m := make(map[string]float64)
	metric(m, cols, rec, TimeNs, "TimeNs")
	metric(m, cols, rec, AllocBytes, "AllocBytes", "MemoryBytes")
	metric(m, cols, rec, AllocsPerOp, "AllocsPerOp", "Allocations")
	return Row{
		Name:      name,
		Scenario:  field(cols, rec, "Scenario"),
		Algorithm: field(cols, rec, "Algorithm"),
		TestName:  name,
		Metrics:   m,
	}, true
}

// rawScheme reads tables dumped straight from the benchmark run, one
// row per benchmark with only the free-form identifier:
//
//	Benchmark,NsPerOp,AllocBytes,AllocsPerOp
type rawScheme struct{}

func (rawScheme) name() string    { return "raw" }
func (rawScheme) columns() string { return "Benchmark,NsPerOp,AllocBytes,AllocsPerOp" }
func (rawScheme) labeled() bool   { return false }

func (rawScheme) matches(cols map[string]int) bool {
	_, ok := cols["Benchmark"]
	return ok
}

func (rawScheme) row(cols map[string]int, rec []string) (Row, bool) {
	name := field(cols, rec, "Benchmark")
	if name == "" {
		return Row{}, false
	}
	m := make(map[string]float64)
	metric(m, cols, rec, TimeNs, "NsPerOp")
	metric(m, cols, rec, AllocBytes, "AllocBytes")
	metric(m, cols, rec, AllocsPerOp, "AllocsPerOp")
	return Row{Name: name, Metrics: m}, true
}
