// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package similartext finds the closest match to a misspelled name among a
// set of known names, for "did you mean X?" diagnostics.
package similartext

import (
	"fmt"
	"strings"
)

// Find returns ", maybe you mean X?" for the name in names closest to s, or
// "" if names is empty or nothing is close enough to be worth suggesting.
func Find(names []string, s string) string {
	name := FindMatch(names, s)
	if name == "" {
		return ""
	}
	return fmt.Sprintf(", maybe you mean %s?", name)
}

// FindMatch returns the name(s) in names with the smallest Levenshtein
// distance to s, joined with " or " when more than one name ties for
// closest, or "" if names is empty.
func FindMatch(names []string, s string) string {
	if len(names) == 0 {
		return ""
	}

	bestDist := distance(s, names[0])
	for _, n := range names[1:] {
		if d := distance(s, n); d < bestDist {
			bestDist = d
		}
	}

	// Too far away to be a plausible typo: don't suggest noise.
	threshold := len(s)/2 + 2
	if bestDist > threshold {
		return ""
	}

	var matches []string
	for _, n := range names {
		if distance(s, n) == bestDist {
			matches = append(matches, n)
		}
	}
	return strings.Join(matches, " or ")
}

// FindFromMap is FindMatch over a map's keys, wrapped in the same
// ", maybe you mean X?" framing as Find.
func FindFromMap[V any](names map[string]V, s string) string {
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	return Find(keys, s)
}

// distance computes the Levenshtein edit distance between a and b.
func distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	row := make([]int, lb+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= la; i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= lb; j++ {
			tmp := row[j]
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			row[j] = min3(row[j]+1, row[j-1]+1, prev+cost)
			prev = tmp
		}
	}
	return row[lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
