// Copyright 2024 The Benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchclass maps free-form benchmark identifiers onto
// structured (scenario, algorithm, test variant) classes.
//
// Classification is an ordered cascade of substring rules with
// first-match-wins semantics. It is a total function: identifiers
// matching no rule land in the Other scenario with the classifier's
// default algorithm, so a single unexpected benchmark name never
// prevents reporting on everything else.
package benchclass

import (
	"strings"

	"github.com/balancerlab/benchviz/benchcsv"
)

// Scenarios. The set is fixed and enumerable; Other is the mandatory
// fallback for identifiers no rule recognizes.
const (
	SameKey                  = "Same Key"
	DifferentKeys            = "Different Keys"
	SameURI                  = "Same URI"
	DifferentURIs            = "Different URIs"
	SameHeader               = "Same Header"
	DifferentHeaders         = "Different Headers"
	PoolSizeScalability      = "Pool Size Scalability"
	MemoryAllocation         = "Memory Allocation"
	ConcurrentAccess         = "Concurrent Access"
	RealisticConcurrent      = "Realistic Concurrent"
	ConsistencyCheck         = "Consistency Check"
	EventDriven              = "Event-Driven Performance"
	EventDrivenTopology      = "Event-Driven with Topology Changes"
	FixedRemovals            = "Fixed Removals"
	ProgressiveRemovals      = "Progressive Removals"
	NodeRemoval              = "Node Removal"
	NodeRemovalWithLookups   = "Node Removal with Lookups"
	EngineNodeRemoval        = "Consistent Engine Node Removal"
	EngineRemovalWithLookups = "Consistent Engine Removal with Lookups"
	EngineGetBucket          = "Consistent Engine GetBucket"
	SizeAccess               = "Size Access"
	RememberOperation        = "Remember Operation"
	ReplacerLookup           = "Replacer Lookup"
	Other                    = "Other"
)

// Algorithms.
const (
	Rendezvous     = "Rendezvous"
	Memento        = "Memento"
	BinomialHash   = "BinomialHash"
	BinomialEngine = "BinomialEngine"
)

// Scenarios lists the full scenario set in presentation order.
var Scenarios = []string{
	SameKey, DifferentKeys,
	SameURI, DifferentURIs,
	SameHeader, DifferentHeaders,
	PoolSizeScalability,
	MemoryAllocation,
	ConcurrentAccess, RealisticConcurrent,
	ConsistencyCheck,
	EventDriven, EventDrivenTopology,
	FixedRemovals, ProgressiveRemovals,
	NodeRemoval, NodeRemovalWithLookups,
	EngineNodeRemoval, EngineRemovalWithLookups, EngineGetBucket,
	SizeAccess, RememberOperation, ReplacerLookup,
	Other,
}

// A Class is the structured category triple derived from a benchmark
// identifier.
type Class struct {
	Scenario  string
	Algorithm string

	// TestVariant is the identifier with scenario and algorithm
	// prefixes stripped or normalized, retaining any embedded
	// parameter (a pool size, a removed-node count) as unparsed
	// text.
	TestVariant string
}

// A Record pairs a class with the measurements it was derived from.
type Record struct {
	Class
	Metrics map[string]float64
}

// A Classifier holds the rule cascade. The zero value is not useful;
// use NewClassifier or the package-level Classify.
type Classifier struct {
	// DefaultAlgorithm labels identifiers whose algorithm cannot
	// be recognized. NewClassifier sets it to Memento.
	DefaultAlgorithm string

	rules []Rule
}

// NewClassifier returns a classifier with the default rule cascade.
func NewClassifier() *Classifier {
	c := &Classifier{DefaultAlgorithm: Memento}
	c.rules = c.defaultRules()
	return c
}

// Rules returns the cascade in application order.
func (c *Classifier) Rules() []Rule {
	return c.rules
}

// Classify maps identifier to its class. It is pure and
// deterministic: the same identifier always yields the same class,
// and no input fails to classify. Identifiers matching no rule land
// in Other with the default algorithm and the identifier unchanged,
// even when an algorithm marker happens to appear in them.
func (c *Classifier) Classify(identifier string) Class {
	for _, r := range c.rules {
		if r.Match(identifier) {
			return r.Emit(identifier)
		}
	}
	return Class{Other, c.DefaultAlgorithm, identifier}
}

// Records converts ingested rows into classified records. Rows from a
// pre-labeled table pass through with their structured fields
// unchanged; raw rows run through the cascade.
func (c *Classifier) Records(rows []benchcsv.Row) []Record {
	recs := make([]Record, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		var cl Class
		if row.Labeled() {
			cl = Class{row.Scenario, row.Algorithm, row.TestName}
		} else {
			cl = c.Classify(row.Name)
		}
		recs = append(recs, Record{Class: cl, Metrics: row.Metrics})
	}
	return recs
}

var defaultClassifier = NewClassifier()

// Classify maps identifier to its class using the default classifier.
func Classify(identifier string) Class {
	return defaultClassifier.Classify(identifier)
}

// Records converts rows using the default classifier.
func Records(rows []benchcsv.Row) []Record {
	return defaultClassifier.Records(rows)
}

// algorithm recognizes the compared implementation by substring.
// BinomialEngine must be checked before the plain Binomial marker.
func (c *Classifier) algorithm(identifier string) string {
	switch {
	case strings.Contains(identifier, Rendezvous):
		return Rendezvous
	case strings.Contains(identifier, BinomialEngine):
		return BinomialEngine
	case strings.Contains(identifier, "Binomial"):
		return BinomialHash
	case strings.Contains(identifier, Memento):
		return Memento
	}
	return c.DefaultAlgorithm
}

// algorithmPrefixes in trim order: longer markers first so that
// BinomialEngine_ is not half-trimmed by Binomial_.
var algorithmPrefixes = []string{
	"Rendezvous_", "BinomialEngine_", "BinomialHash_", "Binomial_", "Memento_",
}

// trimAlgorithm strips a leading algorithm marker from identifier,
// leaving the test variant.
func trimAlgorithm(identifier string) string {
	for _, p := range algorithmPrefixes {
		if strings.HasPrefix(identifier, p) {
			return identifier[len(p):]
		}
	}
	return identifier
}
