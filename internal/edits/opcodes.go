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


package edits

import (
	"iter"
	"slices"
)

// Opcodes converts a list of matching blocks (terminated by a sentinel) into opcodes describing
// how to turn x into y.
//
// Anything between two blocks is a Replace if both sides are non-empty and a Delete or Insert
// otherwise.
func Opcodes(blocks []Block) []Opcode {
	var ops []Opcode
	s, t := 0, 0
	for _, b := range blocks {
		switch {
		case s < b.X && t < b.Y:
			ops = append(ops, Opcode{Replace, s, b.X, t, b.Y})
		case s < b.X:
			ops = append(ops, Opcode{Delete, s, b.X, t, b.Y})
		case t < b.Y:
			ops = append(ops, Opcode{Insert, s, b.X, t, b.Y})
		}
		s, t = b.X+b.Len, b.Y+b.Len
		if b.Len > 0 {
			ops = append(ops, Opcode{Equal, b.X, s, b.Y, t})
		}
	}
	return ops
}

// Group groups opcodes into hunks with up to context elements of surrounding Equal opcodes.
//
// Equal runs longer than 2*context split hunks. A sequence without changes produces no hunks. The
// input is not modified, so the returned sequence can be iterated more than once.
func Group(ops []Opcode, context int) iter.Seq[[]Opcode] {
	return func(yield func([]Opcode) bool) {
		if len(ops) == 0 {
			return
		}
		n := max(0, context)
		ops := slices.Clone(ops)

		// Trim leading and trailing matches to the context size.
		if first := &ops[0]; first.Op == Equal {
			first.X0, first.Y0 = max(first.X0, first.X1-n), max(first.Y0, first.Y1-n)
		}
		if last := &ops[len(ops)-1]; last.Op == Equal {
			last.X1, last.Y1 = min(last.X1, last.X0+n), min(last.Y1, last.Y0+n)
		}

		var group []Opcode
		add := func(op Opcode) {
			if op.Op == Equal && op.X0 == op.X1 {
				return // nothing to show
			}
			group = append(group, op)
		}
		for _, op := range ops {
			// End the current group whenever there are more matches than fit into the context
			// of two hunks.
			if op.Op == Equal && op.X1-op.X0 > 2*n {
				add(Opcode{Equal, op.X0, min(op.X1, op.X0+n), op.Y0, min(op.Y1, op.Y0+n)})
				if changed(group) && !yield(group) {
					return
				}
				group = nil
				op.X0, op.Y0 = max(op.X0, op.X1-n), max(op.Y0, op.Y1-n)
			}
			add(op)
		}
		if changed(group) {
			yield(group)
		}
	}
}

func changed(group []Opcode) bool {
	for _, op := range group {
		if op.Op != Equal {
			return true
		}
	}
	return false
}
