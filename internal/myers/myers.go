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


package myers

import (
	"context"
	"fmt"

	"znkr.io/seqdiff/internal/config"
	"znkr.io/seqdiff/internal/edits"
	"znkr.io/seqdiff/internal/seqview"
)

// Diff computes a shortest edit script that transforms x into y.
//
// The script is ordered by position in x. Diff fails only if ctx is done or if the search exceeds
// cfg.CostLimit.
func Diff[T comparable](ctx context.Context, x, y []T, cfg config.Config) ([]edits.Edit, error) {
	z := 2*min(len(x), len(y)) + 2
	buf := make([]int, 2*z) // allocate space for vf and vb with a single allocation
	m := myers[T]{
		ctx:       ctx,
		vf:        buf[:z],
		vb:        buf[z:],
		costLimit: cfg.CostLimit,
	}
	if err := m.compare(seqview.Of(x), seqview.Of(y)); err != nil {
		return nil, err
	}
	return m.script, nil
}

type myers[T comparable] struct {
	ctx context.Context

	// Frontiers for the forwards and backwards search respectively. The furthest reaching point of
	// a path on diagonal k is stored in v[k mod len(v)]. The arrays are sized for the top level
	// problem and shared by all subproblems.
	vf, vb []int

	// Number of search iterations so far and the limit for it (0 means unlimited).
	cost, costLimit int

	// The result.
	script []edits.Edit
}

// compare appends a shortest edit script for transforming e into f to m.script.
func (m *myers[T]) compare(e, f seqview.View[T]) error {
	n, mm := e.Len(), f.Len()
	switch {
	case n == 0:
		// e is empty, therefore everything in f is an insertion.
		for t := range mm {
			m.script = append(m.script, edits.Edit{Op: edits.Insert, X: e.Base(), Y: f.Base() + t})
		}
		return nil
	case mm == 0:
		// f is empty, therefore everything in e is a deletion.
		for s := range n {
			m.script = append(m.script, edits.Edit{Op: edits.Delete, X: e.Base() + s, Y: -1})
		}
		return nil
	}

	x, y, u, v, d, err := m.split(e, f)
	if err != nil {
		return err
	}

	switch {
	case d > 1 || (x != u && y != v):
		// Recurse into the parts before and after the middle snake.
		if err := m.compare(e.Sub(0, x), f.Sub(0, y)); err != nil {
			return err
		}
		return m.compare(e.Sub(u, n), f.Sub(v, mm))
	case mm > n:
		// At most one edit and no snake to split at: e is a prefix of f.
		return m.compare(e.Sub(n, n), f.Sub(n, mm))
	case mm < n:
		// Analogous, f is a prefix of e.
		return m.compare(e.Sub(mm, n), f.Sub(mm, mm))
	default:
		return nil
	}
}

// split finds the middle snake (x, y) to (u, v) of a shortest path from (0, 0) to (N, M) and the
// length d of that path.
//
// Important: e and f must both be non-empty.
func (m *myers[T]) split(e, f seqview.View[T]) (x, y, u, v, d int, err error) {
	n, mm := e.Len(), f.Len()
	l := n + mm
	z := 2*min(n, mm) + 2
	w := n - mm // the diagonal the backwards search starts on
	vf, vb := m.vf[:z], m.vb[:z]
	clear(vf)
	clear(vb)

	// We know from Lemma 3 that there's a d-path with d <= ⌈(N+M)/2⌉ on each side.
	for h := 0; h <= (l+1)/2; h++ {
		if err := m.step(); err != nil {
			return 0, 0, 0, 0, 0, err
		}

		for _, forward := range [2]bool{true, false} {
			// The search in one direction fills c and checks for an overlap with c'.
			c, cc := vf, vb
			if !forward {
				c, cc = vb, vf
			}
			// The total path length is odd iff l is odd. The overlap can then only be found
			// during the forwards search and during the backwards search otherwise.
			check := (l%2 == 1) == forward

			// Don't leave the edit grid: diagonals are clamped once h exceeds N or M.
			for k := -(h - 2*max(0, h-mm)); k <= h-2*max(0, h-n); k += 2 {
				var a int
				if k == -h || k != h && c[mod(k-1, z)] < c[mod(k+1, z)] {
					a = c[mod(k+1, z)] // step down
				} else {
					a = c[mod(k-1, z)] + 1 // step right
				}
				b := a - k

				// Follow the diagonal as long as possible. The backwards search works on the
				// reversed inputs.
				s, t := a, b
				if forward {
					for a < n && b < mm && e.At(a) == f.At(b) {
						a++
						b++
					}
				} else {
					for a < n && b < mm && e.At(n-a-1) == f.At(mm-b-1) {
						a++
						b++
					}
				}
				c[mod(k, z)] = a

				if !check {
					continue
				}
				// Diagonal k of one search corresponds to diagonal w-k of the other one.
				kk := w - k
				lim := h
				if forward {
					lim = h - 1
				}
				if -lim <= kk && kk <= lim && a+cc[mod(kk, z)] >= n {
					if forward {
						return s, t, a, b, 2*h - 1, nil
					}
					return n - a, mm - b, n - s, mm - t, 2 * h, nil
				}
			}
		}
	}
	panic(fmt.Sprintf("no middle snake found for inputs of length %d and %d", n, mm))
}

// step accounts for one search iteration and fails if the search needs to be aborted.
func (m *myers[T]) step() error {
	m.cost++
	if m.costLimit > 0 && m.cost > m.costLimit {
		return fmt.Errorf("myers: search needs more than %d iterations: %w", m.costLimit, edits.ErrCostLimit)
	}
	if err := m.ctx.Err(); err != nil {
		return fmt.Errorf("myers: %w", err)
	}
	return nil
}

func mod(k, z int) int {
	k %= z
	if k < 0 {
		k += z
	}
	return k
}
