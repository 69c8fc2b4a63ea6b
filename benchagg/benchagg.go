// Copyright 2024 The Benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchagg collapses classified benchmark records into one
// aggregated record per (scenario, algorithm, test variant) key.
package benchagg

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"github.com/balancerlab/benchviz/benchclass"
)

// A Key identifies one group of repeated measurements.
type Key struct {
	Scenario, Algorithm, TestVariant string
}

// A Record is the aggregate of all measurements sharing one key.
// This is the stable contract consumed by the rendering stage:
// renderers read these fields and never re-derive classification.
//
// Records are computed once per pipeline run and never mutated
// afterward.
type Record struct {
	Key

	// Value is the arithmetic mean of the requested metric across
	// the group's records that carried it.
	Value float64

	// SampleCount is the number of records folded into Value,
	// always at least 1. Records missing the metric do not count.
	SampleCount int

	// Param is the numeric parameter embedded in the test variant
	// (a pool size or removed-node count). HasParam reports
	// whether one was present.
	Param    int
	HasParam bool
}

// An InvalidMetricError reports a request for a metric that appears
// nowhere in the input set. It indicates a configuration mistake and
// is surfaced immediately rather than recovered.
type InvalidMetricError struct {
	Metric string
	Known  []string
}

func (e *InvalidMetricError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown metric %q: input has no metrics", e.Metric)
	}
	return fmt.Sprintf("unknown metric %q: input has %s", e.Metric, strings.Join(e.Known, ", "))
}

// Aggregate groups records by key and computes the mean of metric for
// each group. Groups appear in first-seen order, so the output is
// deterministic given the input order.
//
// Records missing the metric are excluded from their group's mean and
// sample count; a missing value never averages as zero. A group where
// every record misses the metric is omitted entirely, since a zero or
// undefined mean would be indistinguishable from a real measurement
// of zero when rendered.
//
// Aggregate returns an *InvalidMetricError when metric matches no
// metric key anywhere in the input.
func Aggregate(records []benchclass.Record, metric string) ([]Record, error) {
	groups := make(map[Key][]float64)
	var order []Key
	known := make(map[string]bool)

	for _, r := range records {
		k := Key{r.Scenario, r.Algorithm, r.TestVariant}
		if _, ok := groups[k]; !ok {
			groups[k] = nil
			order = append(order, k)
		}
		for name := range r.Metrics {
			known[name] = true
		}
		if v, ok := r.Metrics[metric]; ok {
			groups[k] = append(groups[k], v)
		}
	}

	if !known[metric] {
		names := make([]string, 0, len(known))
		for name := range known {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, &InvalidMetricError{metric, names}
	}

	out := make([]Record, 0, len(order))
	for _, k := range order {
		xs := groups[k]
		if len(xs) == 0 {
			continue
		}
		rec := Record{
			Key:         k,
			Value:       stats.Mean(xs),
			SampleCount: len(xs),
		}
		cl := benchclass.Class{Scenario: k.Scenario, Algorithm: k.Algorithm, TestVariant: k.TestVariant}
		rec.Param, rec.HasParam = cl.Param()
		out = append(out, rec)
	}
	return out, nil
}
