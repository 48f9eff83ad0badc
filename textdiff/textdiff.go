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


// Package textdiff provides functions to compare text line by line and to render the result in
// unified format.
package textdiff

import (
	"context"
	"fmt"
	"iter"

	"znkr.io/seqdiff"
	"znkr.io/seqdiff/internal/byteview"
	"znkr.io/seqdiff/internal/config"
	"znkr.io/seqdiff/internal/edits"
	"znkr.io/seqdiff/internal/impl"
)

const (
	prefixMatch  = " "
	prefixDelete = "-"
	prefixInsert = "+"
)

const (
	missingNewline = `\ No newline at end of file`
	resetColor     = "\033[0m"
)

// Unified compares the lines in x and y and returns the changes necessary to convert from one to
// the other in unified format.
//
// Lines are compared including their line terminator. A final line without a newline is marked
// with "\ No newline at end of file", like diff -u does. If x and y are identical, the output is
// empty.
//
// The following options are supported: [seqdiff.Context], [seqdiff.Strategy],
// [seqdiff.RecursionLimit], [seqdiff.CostLimit], [Labels], [TerminalColors]
func Unified[T string | []byte](x, y T, opts ...seqdiff.Option) (T, error) {
	return UnifiedContext(context.Background(), x, y, opts...)
}

// UnifiedContext is like [Unified] but aborts with the context's error once ctx is done.
func UnifiedContext[T string | []byte](ctx context.Context, x, y T, opts ...seqdiff.Option) (T, error) {
	cfg := config.FromOptions(opts, config.Context|config.Strategies|config.RecursionLimit|config.CostLimit|config.Labels|config.Colors)

	xlines, xmissing := byteview.SplitLines(byteview.From(x))
	ylines, ymissing := byteview.SplitLines(byteview.From(y))

	blocks, err := impl.Blocks(ctx, xlines, ylines, cfg)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("textdiff: %w", err)
	}

	r := renderer{
		cfg:      cfg,
		x:        func(s int) string { return xlines[s].Text() },
		y:        func(t int) string { return ylines[t].Text() },
		xmissing: xmissing,
		ymissing: ymissing,
	}
	var b byteview.Builder[T]
	for line := range r.lines(blocks) {
		b.WriteLine(line)
	}
	return b.Build(), nil
}

// Format renders the matching blocks of the lines x and y in unified format. The lines must not
// contain line terminators and neither do the lines of the output.
//
// The output starts with "--- " and "+++ " lines if [Labels] are provided. Every hunk starts with
// a "@@ -l,s +l,s @@" header followed by the lines of the hunk, prefixed with " ", "-" or "+". If
// blocks describe identical inputs, the output is empty.
//
// The returned sequence can be iterated over any number of times.
//
// The following options are supported: [seqdiff.Context], [Labels], [TerminalColors]
func Format(blocks []seqdiff.MatchBlock, x, y []string, opts ...seqdiff.Option) iter.Seq[string] {
	cfg := config.FromOptions(opts, config.Context|config.Labels|config.Colors)
	r := renderer{
		cfg:      cfg,
		x:        func(s int) string { return x[s] },
		y:        func(t int) string { return y[t] },
		xmissing: -1,
		ymissing: -1,
	}
	return r.lines(blocks)
}

type renderer struct {
	cfg  config.Config
	x, y func(int) string

	// Index of the line without a newline at the end or -1.
	xmissing, ymissing int
}

func (r *renderer) lines(blocks []edits.Block) iter.Seq[string] {
	return func(yield func(string) bool) {
		labels := r.cfg.HasLabels
		for group := range edits.Group(edits.Opcodes(blocks), r.cfg.Context) {
			if labels {
				labels = false
				if !yield(r.paint(r.cfg.Colors.Header, "--- "+r.cfg.FromLabel)) {
					return
				}
				if !yield(r.paint(r.cfg.Colors.Header, "+++ "+r.cfg.ToLabel)) {
					return
				}
			}

			first, last := group[0], group[len(group)-1]
			header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", first.X0+1, last.X1-first.X0, first.Y0+1, last.Y1-first.Y0)
			if !yield(r.paint(r.cfg.Colors.HunkHeader, header)) {
				return
			}

			for _, op := range group {
				if op.Op == edits.Equal {
					for s := op.X0; s < op.X1; s++ {
						if !r.line(yield, r.cfg.Colors.Match, prefixMatch, r.x(s), s == r.xmissing) {
							return
						}
					}
					continue
				}
				for s := op.X0; s < op.X1; s++ {
					if !r.line(yield, r.cfg.Colors.Delete, prefixDelete, r.x(s), s == r.xmissing) {
						return
					}
				}
				for t := op.Y0; t < op.Y1; t++ {
					if !r.line(yield, r.cfg.Colors.Insert, prefixInsert, r.y(t), t == r.ymissing) {
						return
					}
				}
			}
		}
	}
}

// line yields a single line of a hunk and the missing newline marker if needed.
func (r *renderer) line(yield func(string) bool, color, prefix, text string, missing bool) bool {
	if !yield(r.paint(color, prefix+text)) {
		return false
	}
	return !missing || yield(missingNewline)
}

func (r *renderer) paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + resetColor
}
