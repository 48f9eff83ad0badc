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


// Package edits contains the value types that are shared between the aligners, the formatters and
// the user facing API, together with the operations that only depend on these values.
package edits

import (
	"cmp"
	"errors"
	"fmt"
)

// Op describes an edit operation or the kind of an opcode.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Equal   Op = iota // Elements match
	Delete            // Elements only in x
	Insert            // Elements only in y
	Replace           // Elements in x replaced by elements in y
)

// Edit is a single operation of an edit script.
//
//   - For Delete, X is the position of the deleted element and Y is -1.
//   - For Insert, X is the anchor in x (the element is inserted before x[X]) and Y is the position
//     of the inserted element in y.
type Edit struct {
	Op   Op
	X, Y int
}

// Block asserts that x[X:X+Len] and y[Y:Y+Len] are equal element-wise.
type Block struct {
	X, Y, Len int
}

// Pair is a single matched element, x[X] == y[Y].
type Pair struct {
	X, Y int
}

// Opcode describes how to turn x[X0:X1] into y[Y0:Y1].
type Opcode struct {
	Op     Op
	X0, X1 int
	Y0, Y1 int
}

var (
	// ErrResourceLimit is the parent of all errors reporting that an alignment exceeded one of its
	// configured resource bounds.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrRecursionLimit reports that the patience aligner exceeded its recursion depth.
	ErrRecursionLimit = fmt.Errorf("recursion %w", ErrResourceLimit)

	// ErrCostLimit reports that the Myers aligner exceeded its cost limit.
	ErrCostLimit = fmt.Errorf("cost %w", ErrResourceLimit)

	// ErrInconsistent reports that a list of matching blocks is not monotonically increasing.
	ErrInconsistent = errors.New("matching blocks are not monotonically increasing")

	// ErrInvalidScript reports an edit script that can't be applied to its inputs.
	ErrInvalidScript = errors.New("invalid edit script")
)

// Compare orders edits in script order: by X, then inserts before deletes, then by Y.
func Compare(a, b Edit) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	if a.Op != b.Op {
		if a.Op == Insert {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.Y, b.Y)
}

// Validate checks that script is ordered and that all of its edits are in range for inputs of
// length n and m.
func Validate(script []Edit, n, m int) error {
	for i, e := range script {
		if i > 0 && Compare(script[i-1], e) >= 0 {
			return fmt.Errorf("%w: edit %d (%v) is out of order", ErrInvalidScript, i, e)
		}
		switch e.Op {
		case Delete:
			if e.X < 0 || e.X >= n {
				return fmt.Errorf("%w: edit %d deletes x[%d], len(x) = %d", ErrInvalidScript, i, e.X, n)
			}
		case Insert:
			if e.X < 0 || e.X > n {
				return fmt.Errorf("%w: edit %d inserts before x[%d], len(x) = %d", ErrInvalidScript, i, e.X, n)
			}
			if e.Y < 0 || e.Y >= m {
				return fmt.Errorf("%w: edit %d inserts y[%d], len(y) = %d", ErrInvalidScript, i, e.Y, m)
			}
		default:
			return fmt.Errorf("%w: edit %d has unexpected op %v", ErrInvalidScript, i, e.Op)
		}
	}
	return nil
}

// Apply replays script against x and returns the reconstructed y.
func Apply[T any](script []Edit, x, y []T) ([]T, error) {
	if err := Validate(script, len(x), len(y)); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(y))
	s := 0 // next element of x to copy
	for _, e := range script {
		out = append(out, x[s:e.X]...)
		s = e.X
		if e.Op == Delete {
			s++
		} else {
			out = append(out, y[e.Y])
		}
	}
	return append(out, x[s:]...), nil
}

// Check verifies that blocks are monotonically increasing in x and y and that no two blocks
// overlap.
func Check(blocks []Block) error {
	nextX, nextY := 0, 0
	for i, b := range blocks {
		if b.Len < 0 {
			return fmt.Errorf("%w: block %d has negative length %d", ErrInconsistent, i, b.Len)
		}
		if b.X < nextX {
			return fmt.Errorf("%w: block %d starts at x=%d, previous block ends at x=%d", ErrInconsistent, i, b.X, nextX)
		}
		if b.Y < nextY {
			return fmt.Errorf("%w: block %d starts at y=%d, previous block ends at y=%d", ErrInconsistent, i, b.Y, nextY)
		}
		nextX, nextY = b.X+b.Len, b.Y+b.Len
	}
	return nil
}
