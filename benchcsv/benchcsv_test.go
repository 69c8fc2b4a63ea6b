// Copyright 2024 The Benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadLabeled(t *testing.T) {
	const in = `TestName,Algorithm,TimeNs,MemoryBytes,Allocations,Scenario
Rendezvous_IPHash_SameKey,Rendezvous,204.70,0,0,Same Key
Binomial_SameKey,BinomialHash,25.10,0,0,Same Key
`
	table, err := Read(strings.NewReader(in), "test.csv")
	if err != nil {
		t.Fatal(err)
	}
	if !table.Labeled {
		t.Errorf("labeled table not recognized, scheme %q", table.Scheme)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	got := table.Rows[0]
	if got.Name != "Rendezvous_IPHash_SameKey" || got.Scenario != "Same Key" || got.Algorithm != "Rendezvous" {
		t.Errorf("row 0 labels wrong: %+v", got)
	}
	// MemoryBytes and Allocations normalize to the canonical names.
	want := map[string]float64{TimeNs: 204.7, AllocBytes: 0, AllocsPerOp: 0}
	if !reflect.DeepEqual(got.Metrics, want) {
		t.Errorf("row 0 metrics: got %v, want %v", got.Metrics, want)
	}
}

func TestReadRaw(t *testing.T) {
	const in = `Benchmark,NsPerOp,AllocBytes,AllocsPerOp
Memento_100Nodes_50Removed,450,16,1
Rendezvous_100Nodes_50Unavailable,900,0,0
`
	table, err := Read(strings.NewReader(in), "test.csv")
	if err != nil {
		t.Fatal(err)
	}
	if table.Labeled {
		t.Error("raw table reported as labeled")
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	got := table.Rows[0]
	if got.Labeled() {
		t.Errorf("raw row carries labels: %+v", got)
	}
	if v, ok := got.Metric(TimeNs); !ok || v != 450 {
		t.Errorf("NsPerOp not normalized to TimeNs: %v, %v", v, ok)
	}
	if fn, line := got.Pos(); fn != "test.csv" || line != 2 {
		t.Errorf("Pos() = %s:%d, want test.csv:2", fn, line)
	}
}

func TestReadTolerance(t *testing.T) {
	// Unparseable metric cells are absent, not zero; rows without
	// an identifier are skipped.
	const in = `Benchmark,NsPerOp,AllocBytes,AllocsPerOp
Memento_SameKey,garbage,16,1
,100,0,0
Memento_DifferentKeys,200
`
	table, err := Read(strings.NewReader(in), "test.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if _, ok := table.Rows[0].Metric(TimeNs); ok {
		t.Error("unparseable TimeNs cell did not stay absent")
	}
	if v, ok := table.Rows[0].Metric(AllocBytes); !ok || v != 16 {
		t.Errorf("AllocBytes = %v, %v, want 16, true", v, ok)
	}
	if v, ok := table.Rows[1].Metric(TimeNs); !ok || v != 200 {
		t.Errorf("short row TimeNs = %v, %v, want 200, true", v, ok)
	}
}

func TestSchemaError(t *testing.T) {
	for _, in := range []string{
		"Foo,Bar\n1,2\n",
		"",
	} {
		_, err := Read(strings.NewReader(in), "test.csv")
		var serr *SchemaError
		if !errors.As(err, &serr) {
			t.Errorf("Read(%q) error = %v, want *SchemaError", in, err)
			continue
		}
		if !strings.HasPrefix(serr.Error(), "test.csv: ") {
			t.Errorf("error lacks file name: %q", serr.Error())
		}
	}
}

func TestMissingSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")
	_, err := ReadFile(path)
	var merr *MissingSourceError
	if !errors.As(err, &merr) {
		t.Fatalf("ReadFile error = %v, want *MissingSourceError", err)
	}
	if merr.Path != path || merr.Unwrap() == nil {
		t.Errorf("error not positioned: %+v", merr)
	}
}
