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


package textdiff

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
	"znkr.io/seqdiff"
	"znkr.io/seqdiff/internal/unixpatch"
	"znkr.io/seqdiff/textdiff/color"
)

var (
	update   = flag.Bool("update", false, "update golden files")
	validate = flag.Bool("validate", false, "perform validation using the unix patch cli tool")
)

func TestUnified(t *testing.T) {
	for _, tt := range parseTests(t) {
		t.Run(tt.name, func(t *testing.T) {
			for sti, st := range tt.subtests {
				t.Run(st.name, func(t *testing.T) {
					got, err := Unified(string(tt.x), string(tt.y), st.opts...)
					if err != nil {
						t.Fatalf("Unified(...) failed: %v", err)
					}
					if diff := cmp.Diff(string(st.want), got); diff != "" {
						t.Errorf("Unified(...) result are different:\ngot:\n%s\nwant:\n%s\ndiff [-want,+got]:\n%s", got, st.want, diff)
					}

					gotBytes, err := Unified(tt.x, tt.y, st.opts...)
					if err != nil {
						t.Fatalf("Unified[[]byte](...) failed: %v", err)
					}
					if string(gotBytes) != got {
						t.Errorf("Unified[[]byte](...) = %q, want %q", gotBytes, got)
					}

					if *validate && len(got) > 0 {
						patched, err := unixpatch.Patch(t.Context(), string(tt.x), got)
						if err != nil {
							t.Fatalf("failed to run patch: %v", err)
						}
						if diff := cmp.Diff(string(tt.y), patched); diff != "" {
							t.Errorf("file is different after applying patch [-want,+got]:\n%s", diff)
						}
					}
					if *update {
						tt.subtests[sti].want = []byte(got)
					}
				})
			}

			// Run in a cleanup to makes sure to runs after the subtests have finished.
			t.Cleanup(func() {
				if !*update {
					return
				}
				ar := &txtar.Archive{
					Comment: tt.comment,
					Files: []txtar.File{
						{Name: "x", Data: tt.x},
						{Name: "y", Data: tt.y},
					},
				}
				for _, st := range tt.subtests {
					data := slices.Concat(st.pragmas, st.want)
					ar.Files = append(ar.Files, txtar.File{Name: "diff", Data: data})
				}
				if err := os.WriteFile(tt.filename, txtar.Format(ar), 0o644); err != nil {
					t.Fatalf("error writing golden file: %v", err)
				}
			})
		})
	}
}

func TestUnifiedEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		want string
	}{
		{
			name: "empty",
			x:    "",
			y:    "",
			want: "",
		},
		{
			name: "identical",
			x:    "first line\n",
			y:    "first line\n",
			want: "",
		},
		{
			name: "new-lines-only",
			x:    "\n",
			y:    "\n",
			want: "",
		},
		{
			name: "x-empty",
			x:    "",
			y:    "one-line\n",
			want: "@@ -1,0 +1,1 @@\n+one-line\n",
		},
		{
			name: "y-empty",
			x:    "one-line\n",
			y:    "",
			want: "@@ -1,1 +1,0 @@\n-one-line\n",
		},
		{
			name: "missing-newline-x",
			x:    "first line",
			y:    "first line\n",
			want: "@@ -1,1 +1,1 @@\n-first line\n\\ No newline at end of file\n+first line\n",
		},
		{
			name: "missing-newline-y",
			x:    "first line\n",
			y:    "first line",
			want: "@@ -1,1 +1,1 @@\n-first line\n+first line\n\\ No newline at end of file\n",
		},
		{
			name: "missing-newline-both",
			x:    "a\nsecond line",
			y:    "b\nsecond line",
			want: "@@ -1,2 +1,2 @@\n-a\n+b\n second line\n\\ No newline at end of file\n",
		},
		{
			name: "missing-newline-empty-x",
			x:    "",
			y:    "\n",
			want: "@@ -1,0 +1,1 @@\n+\n", // no missing newline note here
		},
		{
			name: "missing-newline-empty-y",
			x:    "\n",
			y:    "",
			want: "@@ -1,1 +1,0 @@\n-\n", // no missing newline note here
		},
	}
	for _, tt := range tests {
		for _, strategy := range []seqdiff.StrategyKind{seqdiff.StrategyMyers, seqdiff.StrategyPatience} {
			t.Run(tt.name+"/"+strategy.String(), func(t *testing.T) {
				got, err := Unified(tt.x, tt.y, seqdiff.Strategy(strategy))
				if err != nil {
					t.Fatalf("Unified(...) failed: %v", err)
				}
				if got != tt.want {
					t.Errorf("Unified(...) is different:\ngot:  %q\nwant: %q", got, tt.want)
				}
				if *validate && len(got) > 0 {
					patched, err := unixpatch.Patch(t.Context(), tt.x, got)
					if err != nil {
						t.Fatalf("failed to run patch: %v", err)
					}
					if diff := cmp.Diff(tt.y, patched); diff != "" {
						t.Errorf("file is different after applying patch [-want,+got]:\n%s", diff)
					}
				}
			})
		}
	}
}

func TestUnifiedRecursionLimit(t *testing.T) {
	_, err := Unified("a\nb\nX\nc\nd\n", "a\nb\nY\nc\nd\n", seqdiff.Strategy(seqdiff.StrategyPatience), seqdiff.RecursionLimit(0))
	if !errors.Is(err, seqdiff.ErrRecursionLimit) {
		t.Errorf("Unified(...) returned %v, want ErrRecursionLimit", err)
	}
}

func TestFormat(t *testing.T) {
	x := []string{"one", "two", "three", "four"}
	y := []string{"zero", "one", "tree", "four"}
	blocks, err := seqdiff.Align(x, y)
	if err != nil {
		t.Fatalf("Align(...) failed: %v", err)
	}

	tests := []struct {
		name string
		opts []seqdiff.Option
		want []string
	}{
		{
			name: "default",
			want: []string{"@@ -1,4 +1,4 @@", "+zero", " one", "-two", "-three", "+tree", " four"},
		},
		{
			name: "labels",
			opts: []seqdiff.Option{Labels("a.txt", "b.txt")},
			want: []string{"--- a.txt", "+++ b.txt", "@@ -1,4 +1,4 @@", "+zero", " one", "-two", "-three", "+tree", " four"},
		},
		{
			name: "context-0",
			opts: []seqdiff.Option{seqdiff.Context(0)},
			want: []string{"@@ -1,0 +1,1 @@", "+zero", "@@ -2,2 +3,1 @@", "-two", "-three", "+tree"},
		},
		{
			name: "colors",
			opts: []seqdiff.Option{TerminalColors(color.HunkHeaders(color.Cyan), color.Deletes(color.Bold, color.Red))},
			want: []string{
				"\033[36m@@ -1,4 +1,4 @@\033[0m",
				"+zero",
				" one",
				"\033[1;31m-two\033[0m",
				"\033[1;31m-three\033[0m",
				"+tree",
				" four",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := Format(blocks, x, y, tt.opts...)
			for range 2 {
				got := slices.Collect(seq)
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("Format(...) differs [-want,+got]:\n%s", diff)
				}
			}
		})
	}
}

func TestFormatIdentical(t *testing.T) {
	x := []string{"a", "b"}
	blocks, err := seqdiff.Align(x, x)
	if err != nil {
		t.Fatalf("Align(...) failed: %v", err)
	}
	for line := range Format(blocks, x, x, Labels("x", "x")) {
		t.Errorf("Format(...) produced output for identical inputs: %q", line)
	}
}

func TestFormatStop(t *testing.T) {
	x := []string{"a", "b"}
	y := []string{"c"}
	blocks, err := seqdiff.Align(x, y)
	if err != nil {
		t.Fatalf("Align(...) failed: %v", err)
	}
	var got []string
	for line := range Format(blocks, x, y) {
		got = append(got, line)
		if len(got) == 2 {
			break
		}
	}
	if diff := cmp.Diff([]string{"@@ -1,2 +1,1 @@", "-a"}, got); diff != "" {
		t.Errorf("Format(...) differs [-want,+got]:\n%s", diff)
	}
}

func TestTerminalColorsDefault(t *testing.T) {
	got, err := Unified("a\n", "b\n", TerminalColors(), Labels("x", "y"))
	if err != nil {
		t.Fatalf("Unified(...) failed: %v", err)
	}
	want := "\033[1m--- x\033[0m\n" +
		"\033[1m+++ y\033[0m\n" +
		"\033[36m@@ -1,1 +1,1 @@\033[0m\n" +
		"\033[31m-a\033[0m\n" +
		"\033[32m+b\033[0m\n"
	if got != want {
		t.Errorf("Unified(...) = %q, want %q", got, want)
	}
}

func BenchmarkUnified(b *testing.B) {
	for _, tt := range parseTests(b) {
		b.Run(tt.name, func(b *testing.B) {
			for _, st := range tt.subtests {
				b.Run(st.name, func(b *testing.B) {
					b.ReportAllocs()
					for b.Loop() {
						_, _ = Unified(tt.x, tt.y, st.opts...)
					}
				})
			}
		})
	}
}

type test struct {
	name     string
	filename string
	comment  []byte
	x, y     []byte
	subtests []subtest
}

type subtest struct {
	name    string
	opts    []seqdiff.Option
	pragmas []byte
	want    []byte
}

func parseTests(t testing.TB) []test {
	t.Helper()
	testFiles, err := filepath.Glob("testdata/*.test")
	if err != nil {
		t.Fatalf("Failed to read testdata: %v", err)
	}
	var tests []test
	for _, filename := range testFiles {
		ar, err := txtar.ParseFile(filename)
		if err != nil {
			t.Fatalf("failed to parse test case: %v", err)
		}
		test := test{
			name:     strings.TrimSuffix(filepath.Base(filename), ".test"),
			filename: filename,
			comment:  ar.Comment,
		}

		for _, f := range ar.Files {
			switch f.Name {
			case "x":
				test.x = f.Data
			case "y":
				test.y = f.Data
			case "diff":
				data := f.Data
				var st subtest
				var name []string
				i := 0
				for i < len(data) && data[i] == '#' {
					eol := i + bytes.IndexByte(data[i:], '\n')
					if eol < i {
						t.Fatal("failed to parse test case: missing newline after pragma line")
					}
					k, v, found := bytes.Cut(data[i+1:eol], []byte{':'})
					if !found {
						t.Fatal("failed to parse test case: missing ':' in pragma line")
					}
					switch k, v := strings.TrimSpace(string(k)), strings.TrimSpace(string(v)); k {
					case "context":
						n, err := strconv.Atoi(v)
						if err != nil {
							t.Fatalf("invalid value for context: %v", err)
						}
						st.opts = append(st.opts, seqdiff.Context(n))
						name = append(name, k+"="+v)
					case "strategy":
						switch v {
						case "myers":
							st.opts = append(st.opts, seqdiff.Strategy(seqdiff.StrategyMyers))
						case "patience":
							st.opts = append(st.opts, seqdiff.Strategy(seqdiff.StrategyPatience))
						default:
							t.Fatalf("invalid value for strategy: %q", v)
						}
						name = append(name, v)
					case "labels":
						from, to, found := strings.Cut(v, " ")
						if !found {
							t.Fatalf("invalid value for labels: %q", v)
						}
						st.opts = append(st.opts, Labels(from, to))
						name = append(name, k)
					default:
						t.Fatalf("unknown option: %q", k)
					}
					i = eol + 1
				}
				if len(name) == 0 {
					name = append(name, "default")
				}
				st.name = strings.Join(name, ":")
				st.pragmas = data[:i]
				st.want = data[i:]
				test.subtests = append(test.subtests, st)
			default:
				t.Fatalf("unknown file in archive: %v", f.Name)
			}
		}
		tests = append(tests, test)
	}
	return tests
}
