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


// Package seqdiff compares two sequences of comparable elements.
//
// The comparison is available in three forms:
//
//   - [Myers] returns a shortest edit script, a list of deletions and insertions that transforms
//     x into y. [Apply] replays an edit script.
//   - [Patience] and [Align] return matching blocks, runs of elements that are equal in x and y.
//     [Opcodes] and [GroupedOpcodes] turn matching blocks into the building blocks of a unified
//     diff.
//   - [UniqueLCS] returns the longest common subsequence of elements that are unique in x and y.
//
// Myers' algorithm always finds a minimal diff. The patience strategy anchors the alignment on
// unique elements instead, which is often easier to read for source code. It recurses into the
// gaps between anchors and fails with [ErrRecursionLimit] for inputs that need more levels than
// configured with [RecursionLimit].
//
// All functions are safe for concurrent use, the inputs are never modified.
//
// Note: For a line-by-line diff of text, please see [znkr.io/seqdiff/textdiff].
//
// [znkr.io/seqdiff/textdiff]: https://pkg.go.dev/znkr.io/seqdiff/textdiff
package seqdiff
