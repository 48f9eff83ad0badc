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


// Package myers contains an implementation of Myers' algorithm.
//
// The implementation in this package uses the linear space variant described in section 4.2 of the
// paper: Instead of remembering every furthest reaching path, it searches forwards from the start
// and backwards from the end at the same time until the two searches overlap. The overlap is a
// "middle snake", a possibly empty sequence of matches on an optimal path. The problem is then
// split at the middle snake and both halves are solved recursively.
//
// # Edit graph
//
// For x = "ABCABBA" and y = "CBABAC", all possible edits from x to y are represented by the graph:
//
//	(0,0)   A   B   C   A   B   B   A
//	    ┌───┬───┬───┬───┬───┬───┬───┐ 0
//	    │   │   │ ╲ │   │   │   │   │
//	 C  ├───┼───┼───┼───┼───┼───┼───┤ 1
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 2
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 3
//	    │   │ ╲ │   │   │ ╲ │ ╲ │   │
//	 B  ├───┼───┼───┼───┼───┼───┼───┤ 4
//	    │ ╲ │   │   │ ╲ │   │   │ ╲ │
//	 A  ├───┼───┼───┼───┼───┼───┼───┤ 5
//	    │   │   │ ╲ │   │   │   │   │
//	 C  └───┴───┴───┴───┴───┴───┴───┘
//	    0   1   2   3   4   5   6     (7,6)
//
// A step to the right deletes an element of x, a step down inserts an element of y and a diagonal
// step is a match. A shortest edit script is a path from (0,0) to (7,6) with the fewest horizontal
// and vertical steps. We call a path with exactly d non-diagonal steps a d-path and identify
// diagonals by k = a - b, where a and b are the positions in x and y.
//
// # Frontiers
//
// For every d, the search keeps the furthest reaching point of a d-path on every diagonal k. A
// d-path can only end on diagonals k in {-d, -d+2, ..., d-2, d}, so storing the frontier for
// d-paths overwrites only entries of (d-1)-paths that are not needed anymore. Since the search is
// bounded by the shorter input, no more than 2*min(N,M)+2 diagonals are ever live at the same time,
// and the frontier arrays are indexed modulo that size.
//
// To move from a (d-1)-path to a d-path on diagonal k, the search extends the neighbor diagonal
// with the furthest reaching point: k+1 (a step down) at the lower border or if V[k-1] < V[k+1],
// k-1 (a step right) otherwise. It then follows matches along the diagonal as long as possible.
// This tie-break decides which of several shortest edit scripts is returned.
//
// ## References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
//
// Elder, R. Myers Diff Algorithm - Code & Interactive Visualization (2017).
// https://blog.robertelder.org/diff-algorithm/
package myers
