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


// Package byteview provides immutable views of text that was passed in either as string or as
// []byte, so that the text packages only need a single implementation for both.
package byteview

import (
	"slices"
	"strings"
	"sync"
	"unsafe"
)

// ByteView is an immutable view of text. ByteViews are comparable, two views are equal if their
// contents are equal.
type ByteView struct {
	data string
}

// From returns a view of in without copying it. The caller must not modify in while the view is
// in use.
func From[T string | []byte](in T) ByteView {
	switch in := any(in).(type) {
	case string:
		return ByteView{in}
	case []byte:
		return ByteView{unsafe.String(unsafe.SliceData(in), len(in))}
	}
	panic("never reached")
}

// Len returns the length of the view in bytes.
func (v ByteView) Len() int { return len(v.data) }

// String returns the contents of the view.
func (v ByteView) String() string { return v.data }

// Text returns the contents of a line without its line terminator.
func (v ByteView) Text() string { return strings.TrimSuffix(v.data, "\n") }

// SplitLines splits v after every '\n'. The lines keep their terminator, which means that a final
// line without newline is different from the same line with a newline.
//
// The second result is the index of the line that is missing a newline or -1 if v is empty or ends
// in a newline.
func SplitLines(v ByteView) (lines []ByteView, missingNewline int) {
	lines = make([]ByteView, 0, strings.Count(v.data, "\n")+1)
	for line := range strings.SplitAfterSeq(v.data, "\n") {
		if line == "" {
			continue // only possible after the last newline or for empty input
		}
		lines = append(lines, ByteView{line})
	}
	missingNewline = -1
	if n := len(lines); n > 0 && !strings.HasSuffix(lines[n-1].data, "\n") {
		missingNewline = n - 1
	}
	return lines, missingNewline
}

// Builder accumulates output and returns it as either string or []byte without copying.
type Builder[T string | []byte] struct {
	_   [0]sync.Mutex // don't copy
	buf []byte
}

// Grow makes room for n more bytes.
func (b *Builder[T]) Grow(n int) {
	b.buf = slices.Grow(b.buf, n)
}

// WriteString appends s.
func (b *Builder[T]) WriteString(s string) (n int, err error) {
	b.buf = append(b.buf, s...)
	return len(s), nil
}

// WriteLine appends s followed by a newline.
func (b *Builder[T]) WriteLine(s string) {
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, '\n')
}

// Build returns the accumulated output and resets the builder.
func (b *Builder[T]) Build() T {
	defer func() {
		b.buf = nil
	}()
	switch any((*T)(nil)).(type) {
	case *string:
		return T(unsafe.String(unsafe.SliceData(b.buf), len(b.buf)))
	case *[]byte:
		return T(b.buf)
	}
	panic("never reached")
}
