// Copyright 2024 The Benchviz Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchclass

import (
	"strconv"
	"strings"
)

// Param extracts the numeric parameter embedded in the test variant,
// when the scenario has one: the removed-node count for progressive
// removals ("100Nodes_50Removed" yields 50), the total pool size for
// fixed removals ("20Nodes_5Removed" yields 20), and the pool size
// for pool-size scalability ("PoolSize_128" yields 128). For other
// scenarios the known markers are tried in that order.
//
// The boolean result reports whether a parameter was present. Parse
// failures degrade to an absent parameter; they are never errors.
func (c Class) Param() (int, bool) {
	switch c.Scenario {
	case ProgressiveRemovals:
		if n, ok := digitsBefore(c.TestVariant, "Removed"); ok {
			return n, true
		}
		return digitsBefore(c.TestVariant, "Unavailable")
	case FixedRemovals:
		return digitsBefore(c.TestVariant, "Nodes_")
	case PoolSizeScalability:
		return digitsAfter(c.TestVariant, "PoolSize_")
	}
	if n, ok := digitsAfter(c.TestVariant, "PoolSize_"); ok {
		return n, true
	}
	if n, ok := digitsBefore(c.TestVariant, "Removed"); ok {
		return n, true
	}
	if n, ok := digitsBefore(c.TestVariant, "Unavailable"); ok {
		return n, true
	}
	return 0, false
}

// digitsBefore parses the run of digits immediately preceding the
// first occurrence of marker in s.
func digitsBefore(s, marker string) (int, bool) {
	i := strings.Index(s, marker)
	if i < 0 {
		return 0, false
	}
	j := i
	for j > 0 && isDigit(s[j-1]) {
		j--
	}
	return atoi(s[j:i])
}

// digitsAfter parses the run of digits immediately following the
// first occurrence of marker in s.
func digitsAfter(s, marker string) (int, bool) {
	i := strings.Index(s, marker)
	if i < 0 {
		return 0, false
	}
	j := i + len(marker)
	k := j
	for k < len(s) && isDigit(s[k]) {
		k++
	}
	return atoi(s[j:k])
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func atoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
