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


// Package patience implements patience diff.
//
// Patience diff anchors the alignment on elements that are unique in both inputs, matches them
// with a longest common subsequence and recursively aligns the gaps between the anchors. If a
// range has no unique elements in common, matching prefixes and suffixes are peeled off before
// recursing. The result is not necessarily a minimal diff, but it tends to be easier to read when
// the inputs contain many repeated elements like blank lines or closing braces.
//
// Inputs without unique elements at many nested levels make the recursion arbitrarily deep, the
// depth is therefore limited.
package patience

import (
	"fmt"

	"znkr.io/seqdiff/internal/edits"
	"znkr.io/seqdiff/internal/seqview"
)

// Blocks computes the matching blocks of x and y, terminated by a sentinel.
//
// It fails with edits.ErrRecursionLimit if the alignment needs to recurse deeper than maxDepth.
func Blocks[T comparable](x, y []T, maxDepth int) ([]edits.Block, error) {
	a := aligner[T]{x: seqview.Of(x), y: seqview.Of(y), maxDepth: maxDepth}
	if err := a.recurse(a.x, a.y, maxDepth); err != nil {
		return nil, err
	}
	blocks := collapse(a.matches)
	if err := edits.Check(blocks); err != nil {
		return nil, fmt.Errorf("patience: %w", err)
	}
	return append(blocks, edits.Block{X: len(x), Y: len(y)}), nil
}

type aligner[T comparable] struct {
	x, y     seqview.View[T]
	maxDepth int

	// Matched pairs in absolute positions, in increasing order.
	matches []edits.Pair
}

// recurse appends all matches between x and y to a.matches.
func (a *aligner[T]) recurse(x, y seqview.View[T], depth int) error {
	if depth < 0 {
		return fmt.Errorf("patience: alignment needs more than %d levels: %w", a.maxDepth, edits.ErrRecursionLimit)
	}
	n, m := x.Len(), y.Len()
	if n == 0 || m == 0 {
		return nil
	}

	anchors := UniqueLCS(x, y)
	if len(anchors) > 0 {
		s, t := 0, 0 // start of the current gap
		for _, p := range anchors {
			if s < p.X && t < p.Y {
				if err := a.recurse(x.Sub(s, p.X), y.Sub(t, p.Y), depth-1); err != nil {
					return err
				}
			}
			a.match(x, y, p.X, p.Y)
			s, t = p.X+1, p.Y+1
		}
		if s < n && t < m {
			return a.recurse(x.Sub(s, n), y.Sub(t, m), depth-1)
		}
		return nil
	}

	// No anchors, match prefix and suffix.
	s, t := 0, 0
	for s < n && t < m && x.At(s) == y.At(t) {
		a.match(x, y, s, t)
		s++
		t++
	}
	u, v := n, m
	for u > s && v > t && x.At(u-1) == y.At(v-1) {
		u--
		v--
	}
	if (s > 0 || u < n) && s < u && t < v {
		// Peeling may have exposed new unique elements.
		if err := a.recurse(x.Sub(s, u), y.Sub(t, v), depth-1); err != nil {
			return err
		}
	}
	for i := range n - u {
		a.match(x, y, u+i, v+i)
	}
	return nil
}

// match records x[s] == y[t] for positions relative to the views.
func (a *aligner[T]) match(x, y seqview.View[T], s, t int) {
	a.matches = append(a.matches, edits.Pair{X: x.Base() + s, Y: y.Base() + t})
}

// collapse merges runs of consecutive matches into blocks.
func collapse(matches []edits.Pair) []edits.Block {
	var blocks []edits.Block
	for _, p := range matches {
		if n := len(blocks); n > 0 {
			if b := &blocks[n-1]; p.X == b.X+b.Len && p.Y == b.Y+b.Len {
				b.Len++
				continue
			}
		}
		blocks = append(blocks, edits.Block{X: p.X, Y: p.Y, Len: 1})
	}
	return blocks
}
