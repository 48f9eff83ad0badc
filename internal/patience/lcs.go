// Copyright 2025 Florian Zenker (flo@znkr.io)
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


package patience

import (
	"sort"

	"znkr.io/seqdiff/internal/edits"
	"znkr.io/seqdiff/internal/seqview"
)

// UniqueLCS returns the longest common subsequence of x and y that only consists of elements that
// occur exactly once in x and exactly once in y.
//
// The pairs are ordered and their positions are relative to the views.
func UniqueLCS[T comparable](x, y seqview.View[T]) []edits.Pair {
	return uniqueLCS(x, y, true)
}

// uniqueLCS is UniqueLCS with the option to always place elements using binary search. Both
// variants must produce the same result.
func uniqueLCS[T comparable](x, y seqview.View[T], fast bool) []edits.Pair {
	// Map every element of x to its position, or to -1 if it's not unique in x.
	index := make(map[T]int, x.Len())
	for s, e := range x.All() {
		if _, ok := index[e]; ok {
			index[e] = -1
		} else {
			index[e] = s
		}
	}

	// ytox[t] is the position of y[t] in x or -1 if y[t] is not a unique match.
	ytox := make([]int, y.Len())
	seen := make(map[T]int)
	for t, e := range y.All() {
		ytox[t] = -1
		s, ok := index[e]
		if !ok || s < 0 {
			continue
		}
		if prev, ok := seen[e]; ok {
			// Not unique in y either.
			ytox[prev] = -1
			index[e] = -1
			continue
		}
		seen[e] = t
		ytox[t] = s
	}

	// Patience sorting: tops[i] is the smallest x position that ends an increasing run of length
	// i+1, and lasts[i] is the position in y where that happens. back links every y position to
	// its predecessor in the run.
	back := make([]int, y.Len())
	var tops, lasts []int
	k := 0
	for t, s := range ytox {
		if s < 0 {
			continue
		}
		switch {
		case fast && len(tops) > 0 && tops[len(tops)-1] < s:
			// Starts a new pile.
			k = len(tops)
		case fast && len(tops) > 0 && tops[k] < s && (k == len(tops)-1 || tops[k+1] > s):
			// Goes on the pile after the previous one.
			k++
		default:
			k = sort.SearchInts(tops, s)
		}
		if k > 0 {
			back[t] = lasts[k-1]
		} else {
			back[t] = -1
		}
		if k < len(tops) {
			tops[k] = s
			lasts[k] = t
		} else {
			tops = append(tops, s)
			lasts = append(lasts, t)
		}
	}

	if len(lasts) == 0 {
		return nil
	}
	pairs := make([]edits.Pair, len(lasts))
	for i, t := len(pairs)-1, lasts[len(lasts)-1]; t >= 0; i, t = i-1, back[t] {
		pairs[i] = edits.Pair{X: ytox[t], Y: t}
	}
	return pairs
}
