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


// Package rvecs contains functions to work with result vectors, a per-element representation of an
// alignment: rx[s] is set if x[s] is deleted and ry[t] is set if y[t] is inserted. Both vectors
// carry one extra element as a border, which makes it easier to iterate over them.
//
// Result vectors translate between the two output forms of the aligners, edit scripts and
// matching blocks.
package rvecs

import (
	"fmt"

	"znkr.io/seqdiff/internal/edits"
)

// Make allocates result vectors for inputs of length n and m.
func Make(n, m int) (rx, ry []bool) {
	r := make([]bool, (n + m + 2))
	rx = r[: n+1 : n+1]
	ry = r[n+1:]
	return
}

// FromScript marks every element touched by script in new result vectors.
func FromScript(script []edits.Edit, n, m int) (rx, ry []bool) {
	rx, ry = Make(n, m)
	for _, e := range script {
		switch e.Op {
		case edits.Delete:
			rx[e.X] = true
		case edits.Insert:
			ry[e.Y] = true
		default:
			panic(fmt.Sprintf("unexpected op in edit script: %v", e.Op))
		}
	}
	return rx, ry
}

// Blocks returns the matching blocks described by the result vectors, terminated by a sentinel.
//
// Unmarked elements are paired up in order, so the number of unmarked elements in rx and ry must
// be the same.
func Blocks(rx, ry []bool) []edits.Block {
	n, m := len(rx)-1, len(ry)-1
	var blocks []edits.Block
	for s, t := 0, 0; s < n || t < m; {
		for s < n && rx[s] {
			s++
		}
		for t < m && ry[t] {
			t++
		}
		s0, t0 := s, t
		for s < n && t < m && !rx[s] && !ry[t] {
			s++
			t++
		}
		if s > s0 {
			blocks = append(blocks, edits.Block{X: s0, Y: t0, Len: s - s0})
		} else if s < n && t < m {
			panic("result vectors don't describe an alignment")
		} else if (s < n && !rx[s]) || (t < m && !ry[t]) {
			panic("result vectors have a different number of matches")
		}
	}
	return append(blocks, edits.Block{X: n, Y: m, Len: 0})
}
