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


// Package seqview provides read-only views over the sequences being compared.
//
// The aligners in this module work on sub-ranges of their inputs and report positions in terms of
// the original sequences. A View carries both: the elements of a window and the offset of that
// window in the underlying slice.
package seqview

import (
	"fmt"
	"iter"
)

// View is an immutable window [lo, hi) onto a slice. Indices passed to At and Sub are relative to
// the window.
type View[T comparable] struct {
	s      []T
	lo, hi int
}

// Of returns a view of the whole slice s.
func Of[T comparable](s []T) View[T] {
	return View[T]{s: s, lo: 0, hi: len(s)}
}

// Len returns the number of elements in the view.
func (v View[T]) Len() int { return v.hi - v.lo }

// Base returns the position of the first element of the view in the underlying slice.
func (v View[T]) Base() int { return v.lo }

// At returns the i-th element of the view.
func (v View[T]) At(i int) T {
	if i < 0 || i >= v.hi-v.lo {
		panic(fmt.Sprintf("seqview: index %d out of range [0:%d]", i, v.hi-v.lo))
	}
	return v.s[v.lo+i]
}

// Sub returns the view of elements [i, j) of v.
func (v View[T]) Sub(i, j int) View[T] {
	if i < 0 || j < i || j > v.hi-v.lo {
		panic(fmt.Sprintf("seqview: slice bounds [%d:%d] out of range [0:%d]", i, j, v.hi-v.lo))
	}
	return View[T]{s: v.s, lo: v.lo + i, hi: v.lo + j}
}

// All iterates over the elements of the view together with their relative index.
func (v View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, e := range v.s[v.lo:v.hi] {
			if !yield(i, e) {
				return
			}
		}
	}
}
