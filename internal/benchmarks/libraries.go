package benchmarks

import (
	"bytes"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/seqdiff"
	"znkr.io/seqdiff/textdiff"
)

// Impl is a line diff implementation under benchmark. Diff returns something close to a unified
// diff, so that the number of "+" and "-" lines can be compared between implementations.
type Impl struct {
	Name string
	Diff func(x, y []byte) []byte
}

var Impls = []Impl{
	{
		Name: "seqdiff-myers",
		Diff: func(x, y []byte) []byte {
			return must(textdiff.Unified(x, y))
		},
	},
	{
		Name: "seqdiff-patience",
		Diff: func(x, y []byte) []byte {
			return must(textdiff.Unified(x, y, seqdiff.Strategy(seqdiff.StrategyPatience)))
		},
	},
	{
		Name: "seqdiff-script",
		Diff: func(x, y []byte) []byte {
			// The raw edit script without hunks or context.
			xlines, ylines := Lines(x), Lines(y)
			script := must(seqdiff.Myers(xlines, ylines))
			var buf bytes.Buffer
			for _, e := range script {
				if e.Op == seqdiff.Delete {
					writeLines(&buf, "-", xlines[e.X])
				} else {
					writeLines(&buf, "+", ylines[e.Y])
				}
			}
			return buf.Bytes()
		},
	},
	{
		Name: "go-internal",
		Diff: func(x, y []byte) []byte {
			return gointernal.Diff("x", x, "y", y)
		},
	},
	{
		Name: "diffmatchpatch",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			dmp := diffmatchpatch.New()
			rx, ry, lines := dmp.DiffLinesToRunes(string(x), string(y))
			diffs := dmp.DiffMainRunes(rx, ry, false)
			diffs = dmp.DiffCharsToLines(diffs, lines)

			var buf bytes.Buffer
			for _, diff := range diffs {
				switch diff.Type {
				case diffmatchpatch.DiffInsert:
					writeLines(&buf, "+", diff.Text)
				case diffmatchpatch.DiffDelete:
					writeLines(&buf, "-", diff.Text)
				case diffmatchpatch.DiffEqual:
					writeLines(&buf, " ", diff.Text)
				}
			}
			return buf.Bytes()
		},
	},
	{
		Name: "godebug",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			return []byte(godebug.Diff(string(x), string(y)))
		},
	},
	{
		Name: "mb0",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			d := mb0lines{x: Lines(x), y: Lines(y)}
			changes := mb0.Diff(len(d.x), len(d.y), d)
			var buf bytes.Buffer
			a := 0
			for _, ch := range changes {
				for ; a < ch.A; a++ {
					writeLines(&buf, " ", d.x[a])
				}
				for i := range ch.Del {
					writeLines(&buf, "-", d.x[ch.A+i])
				}
				for i := range ch.Ins {
					writeLines(&buf, "+", d.y[ch.B+i])
				}
				a += ch.Del
			}
			for ; a < len(d.x); a++ {
				writeLines(&buf, " ", d.x[a])
			}
			return buf.Bytes()
		},
	},
	{
		Name: "udiff",
		Diff: func(x, y []byte) []byte {
			return []byte(udiff.Unified("x", "y", string(x), string(y)))
		},
	},
}

// Lines splits text into lines, keeping the line terminators.
func Lines(text []byte) []string {
	var lines []string
	for line := range strings.SplitAfterSeq(string(text), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func writeLines(buf *bytes.Buffer, prefix, text string) {
	for line := range strings.SplitAfterSeq(text, "\n") {
		if line == "" {
			continue
		}
		buf.WriteString(prefix)
		buf.WriteString(line)
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

type mb0lines struct {
	x []string
	y []string
}

func (d mb0lines) Equal(i, j int) bool { return d.x[i] == d.y[j] }
