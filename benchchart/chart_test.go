// Copyright 2024 The Benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/balancerlab/benchviz/benchagg"
)

var testRecs = []benchagg.Record{
	{Key: benchagg.Key{Scenario: "Same Key", Algorithm: "Rendezvous", TestVariant: "IPHash_SameKey"}, Value: 204.7, SampleCount: 1},
	{Key: benchagg.Key{Scenario: "Same Key", Algorithm: "Memento", TestVariant: "SameKey"}, Value: 25.1, SampleCount: 1},
	{Key: benchagg.Key{Scenario: "Progressive Removals", Algorithm: "Memento", TestVariant: "100Nodes_10Removed"}, Value: 30, SampleCount: 2, Param: 10, HasParam: true},
	{Key: benchagg.Key{Scenario: "Progressive Removals", Algorithm: "Memento", TestVariant: "100Nodes_50Removed"}, Value: 45, SampleCount: 2, Param: 50, HasParam: true},
	{Key: benchagg.Key{Scenario: "Progressive Removals", Algorithm: "Rendezvous", TestVariant: "100Nodes_50Unavailable"}, Value: 900, SampleCount: 1, Param: 50, HasParam: true},
}

func checkPNG(t *testing.T, path string, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Errorf("%s is empty", path)
	}
}

func TestBars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "same_key.png")
	checkPNG(t, path, Bars(testRecs, "Same Key", "TimeNs", path))
}

func TestLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progressive_removals.png")
	checkPNG(t, path, Lines(testRecs, "Progressive Removals", "TimeNs", path))
}

func TestOverview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overview.png")
	checkPNG(t, path, Overview(testRecs, "TimeNs", path))
}

func TestNoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never.png")
	if err := Bars(testRecs, "No Such Scenario", "TimeNs", path); err == nil {
		t.Error("Bars with no matching records did not fail")
	}
	if err := Lines(testRecs, "Same Key", "TimeNs", path); err == nil {
		t.Error("Lines with no parameterized records did not fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("chart file created despite error")
	}
}

func TestParameterized(t *testing.T) {
	for s, want := range map[string]bool{
		"Pool Size Scalability": true,
		"Fixed Removals":        true,
		"Progressive Removals":  true,
		"Same Key":              false,
		"Other":                 false,
	} {
		if got := Parameterized(s); got != want {
			t.Errorf("Parameterized(%q) = %v, want %v", s, got, want)
		}
	}
}
