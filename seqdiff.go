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


package seqdiff

import (
	"context"
	"fmt"
	"iter"

	"znkr.io/seqdiff/internal/config"
	"znkr.io/seqdiff/internal/edits"
	"znkr.io/seqdiff/internal/impl"
	"znkr.io/seqdiff/internal/patience"
	"znkr.io/seqdiff/internal/rvecs"
	"znkr.io/seqdiff/internal/seqview"
)

// Op describes an edit operation or the kind of an [Opcode].
type Op = edits.Op

const (
	Equal   = edits.Equal   // Elements match
	Delete  = edits.Delete  // Elements only in x
	Insert  = edits.Insert  // Elements only in y
	Replace = edits.Replace // Elements in x replaced by elements in y (opcodes only)
)

// Edit is a single operation of an edit script.
//
//   - For Delete, X is the position of the deleted element in x and Y is -1.
//   - For Insert, X is the position in x the element is inserted before (len(x) appends) and Y
//     is the position of the inserted element in y.
//
// Edit scripts are ordered by X. Inserts come before a delete at the same X, and inserts at the
// same X are ordered by Y.
type Edit = edits.Edit

// MatchBlock asserts that x[X:X+Len] and y[Y:Y+Len] are equal. Lists of matching blocks are
// increasing in X and Y and end with the sentinel {len(x), len(y), 0}.
type MatchBlock = edits.Block

// Pair is a single match, x[X] == y[Y].
type Pair = edits.Pair

// Opcode describes how to turn x[X0:X1] into y[Y0:Y1].
type Opcode = edits.Opcode

var (
	// ErrResourceLimit is returned (wrapped) whenever a comparison exceeds one of its configured
	// bounds. Use errors.Is to check for it.
	ErrResourceLimit = edits.ErrResourceLimit

	// ErrRecursionLimit is returned by the patience strategy if the inputs need more recursion
	// levels than allowed by [RecursionLimit]. It is an ErrResourceLimit.
	ErrRecursionLimit = edits.ErrRecursionLimit

	// ErrCostLimit is returned by Myers' algorithm if it needs more search iterations than
	// allowed by [CostLimit]. It is an ErrResourceLimit.
	ErrCostLimit = edits.ErrCostLimit

	// ErrInvariant reports that an alignment produced inconsistent matching blocks. This is a bug.
	ErrInvariant = edits.ErrInconsistent

	// ErrInvalidScript is returned for edit scripts that can't be applied to the given inputs.
	ErrInvalidScript = edits.ErrInvalidScript
)

// Myers compares x and y and returns a shortest edit script that transforms x into y.
//
// If x and y are identical, the script is empty. Among several shortest scripts, Myers always
// returns the same one for the same inputs.
//
// The following option is supported: [seqdiff.CostLimit]
func Myers[T comparable](x, y []T, opts ...Option) ([]Edit, error) {
	return MyersContext(context.Background(), x, y, opts...)
}

// MyersContext is like [Myers] but aborts with the context's error once ctx is done.
func MyersContext[T comparable](ctx context.Context, x, y []T, opts ...Option) ([]Edit, error) {
	cfg := config.FromOptions(opts, config.CostLimit)
	return impl.Script(ctx, x, y, cfg)
}

// UniqueLCS returns the longest common subsequence of x and y that only consists of elements that
// occur exactly once in x and exactly once in y.
func UniqueLCS[T comparable](x, y []T) []Pair {
	return patience.UniqueLCS(seqview.Of(x), seqview.Of(y))
}

// Patience compares x and y using patience diff and returns the matching blocks.
//
// The following option is supported: [seqdiff.RecursionLimit]
func Patience[T comparable](x, y []T, opts ...Option) ([]MatchBlock, error) {
	cfg := config.FromOptions(opts, config.RecursionLimit)
	return patience.Blocks(x, y, cfg.RecursionLimit)
}

// Align compares x and y with the selected strategy and returns the matching blocks.
//
// The following options are supported: [seqdiff.Strategy], [seqdiff.RecursionLimit],
// [seqdiff.CostLimit]
func Align[T comparable](x, y []T, opts ...Option) ([]MatchBlock, error) {
	return AlignContext(context.Background(), x, y, opts...)
}

// AlignContext is like [Align] but aborts with the context's error once ctx is done.
func AlignContext[T comparable](ctx context.Context, x, y []T, opts ...Option) ([]MatchBlock, error) {
	cfg := config.FromOptions(opts, config.Strategies|config.RecursionLimit|config.CostLimit)
	return impl.Blocks(ctx, x, y, cfg)
}

// Apply replays script against x and returns the result. If script was computed for x and y,
// the result equals y.
func Apply[T any](script []Edit, x, y []T) ([]T, error) {
	return edits.Apply(script, x, y)
}

// ScriptBlocks converts an edit script for inputs of length n and m into matching blocks.
func ScriptBlocks(script []Edit, n, m int) ([]MatchBlock, error) {
	if err := edits.Validate(script, n, m); err != nil {
		return nil, err
	}
	var ndel, nins int
	for _, e := range script {
		if e.Op == Delete {
			ndel++
		} else {
			nins++
		}
	}
	if n-ndel != m-nins {
		return nil, fmt.Errorf("%w: %d of %d elements in x remain but %d of %d in y", ErrInvalidScript, n-ndel, n, m-nins, m)
	}
	return rvecs.Blocks(rvecs.FromScript(script, n, m)), nil
}

// Opcodes converts matching blocks into a list of opcodes that transform x into y.
func Opcodes(blocks []MatchBlock) []Opcode {
	return edits.Opcodes(blocks)
}

// GroupedOpcodes groups the opcodes of blocks into hunks with up to n matching elements of context
// around every change.
//
// The following option is supported: [seqdiff.Context]
func GroupedOpcodes(blocks []MatchBlock, opts ...Option) iter.Seq[[]Opcode] {
	cfg := config.FromOptions(opts, config.Context)
	return edits.Group(edits.Opcodes(blocks), cfg.Context)
}
