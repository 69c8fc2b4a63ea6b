// Copyright 2024 The Benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchclass

import "strings"

// A Rule is one step of the classification cascade. Rules are applied
// in slice order and the first whose Match reports true produces the
// class. Reordering rules is a behavior change, not a refactor:
// several markers are substrings of others.
type Rule struct {
	// Name identifies the rule in tests.
	Name string

	// Match reports whether the rule applies to identifier.
	Match func(identifier string) bool

	// Emit produces the class for an identifier Match accepted.
	Emit func(identifier string) Class
}

// defaultRules builds the cascade in precedence order. The order is
// strictly specific-before-general: progressive removals before fixed
// removals before any generic removal marker, with-lookups variants
// before their plain counterparts, RealisticConcurrent before the
// generic Concurrent marker, and topology-change event benchmarks
// before the generic event-driven marker.
func (c *Classifier) defaultRules() []Rule {
	contains := func(subs ...string) func(string) bool {
		return func(identifier string) bool {
			for _, sub := range subs {
				if !strings.Contains(identifier, sub) {
					return false
				}
			}
			return true
		}
	}
	removal := func(identifier string) bool {
		return strings.Contains(identifier, "Removed") || strings.Contains(identifier, "Unavailable")
	}
	// emit produces a class in the given scenario with the
	// algorithm recognized from the identifier and the algorithm
	// prefix stripped off the variant.
	emit := func(scenario string) func(string) Class {
		return func(identifier string) Class {
			return Class{scenario, c.algorithm(identifier), trimAlgorithm(identifier)}
		}
	}
	// fixed emits a class with a fixed, normalized test variant.
	fixed := func(scenario, variant string) func(string) Class {
		return func(identifier string) Class {
			return Class{scenario, c.algorithm(identifier), variant}
		}
	}

	return []Rule{
		{
			Name:  "binomial engine lookup",
			Match: contains("BinomialEngineGetBucket"),
			Emit: func(identifier string) Class {
				scenario := SameKey
				if strings.Contains(identifier, "DifferentKeys") {
					scenario = DifferentKeys
				}
				return Class{scenario, BinomialEngine, trimAlgorithm(identifier)}
			},
		},
		{
			Name: "progressive removals",
			Match: func(identifier string) bool {
				return strings.Contains(identifier, "_100Nodes_") && removal(identifier)
			},
			Emit: emit(ProgressiveRemovals),
		},
		{
			Name: "fixed removals",
			Match: func(identifier string) bool {
				return strings.Contains(identifier, "Nodes_") && removal(identifier)
			},
			Emit: emit(FixedRemovals),
		},
		{
			Name:  "bucket removal with lookups",
			Match: contains("RemoveBucket", "WithLookups"),
			Emit:  fixed(NodeRemovalWithLookups, "RemoveBucket_WithLookups"),
		},
		{
			Name:  "bucket removal",
			Match: contains("RemoveBucket"),
			Emit: func(identifier string) Class {
				variant := trimAlgorithm(identifier)
				if strings.Contains(identifier, "Sequential") {
					variant = "RemoveBucket_Sequential"
				}
				return Class{NodeRemoval, c.algorithm(identifier), variant}
			},
		},
		{
			Name:  "engine removal with lookups",
			Match: contains("RemoveNode", "WithLookups"),
			Emit:  fixed(EngineRemovalWithLookups, "RemoveNode_WithLookups"),
		},
		{
			Name:  "engine removal",
			Match: contains("RemoveNode"),
			Emit: func(identifier string) Class {
				variant := trimAlgorithm(identifier)
				if strings.Contains(identifier, "ConsistentEngine") {
					variant = "RemoveNode_ConsistentEngine"
				}
				return Class{EngineNodeRemoval, c.algorithm(identifier), variant}
			},
		},
		{
			Name:  "pool size scalability",
			Match: contains("PoolSize_"),
			Emit: func(identifier string) Class {
				variant := identifier[strings.Index(identifier, "PoolSize_"):]
				return Class{PoolSizeScalability, c.algorithm(identifier), variant}
			},
		},
		{
			Name:  "same uri",
			Match: contains("SameURI"),
			Emit:  emit(SameURI),
		},
		{
			Name:  "different uris",
			Match: contains("DifferentURIs"),
			Emit:  emit(DifferentURIs),
		},
		{
			Name:  "same header",
			Match: contains("SameHeader"),
			Emit:  emit(SameHeader),
		},
		{
			Name:  "different headers",
			Match: contains("DifferentHeaders"),
			Emit:  emit(DifferentHeaders),
		},
		{
			Name:  "different keys",
			Match: contains("DifferentKeys"),
			Emit:  emit(DifferentKeys),
		},
		{
			Name:  "same key",
			Match: contains("SameKey"),
			Emit:  emit(SameKey),
		},
		{
			Name:  "memory allocation",
			Match: contains("MemoryAllocation"),
			Emit:  emit(MemoryAllocation),
		},
		{
			Name:  "realistic concurrent",
			Match: contains("RealisticConcurrent"),
			Emit:  emit(RealisticConcurrent),
		},
		{
			Name:  "concurrent access",
			Match: contains("Concurrent"),
			Emit:  emit(ConcurrentAccess),
		},
		{
			Name:  "consistency check",
			Match: contains("ConsistencyCheck"),
			Emit:  emit(ConsistencyCheck),
		},
		{
			Name:  "event-driven with topology changes",
			Match: contains("WithTopologyChanges"),
			Emit:  emit(EventDrivenTopology),
		},
		{
			Name:  "event-driven",
			Match: contains("EventDriven"),
			Emit:  emit(EventDriven),
		},
		{
			Name:  "size access",
			Match: contains("SizeAccess"),
			Emit:  fixed(SizeAccess, "SizeAccess"),
		},
		{
			Name:  "remember",
			Match: contains("Remember"),
			Emit:  fixed(RememberOperation, "Remember"),
		},
		{
			Name:  "replacer",
			Match: contains("Replacer"),
			Emit:  fixed(ReplacerLookup, "Replacer"),
		},
		{
			Name:  "engine lookup",
			Match: contains("ConsistentEngineGetBucket"),
			Emit:  fixed(EngineGetBucket, "ConsistentEngineGetBucket"),
		},
	}
}
