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


package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/seqdiff"
)

const (
	numbers1 = "one\ntwo\nthree\n"
	numbers2 = "one\n2\nthree\n"
)

func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd(strings.NewReader(stdin))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

// setupDir changes into a fresh directory containing the files a.txt and b.txt.
func setupDir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	writeFile(t, "a.txt", numbers1)
	writeFile(t, "b.txt", numbers2)
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name   string
		config string
		stdin  string
		args   []string
		want   string
	}{
		{
			name: "unified",
			args: []string{"unified", "a.txt", "b.txt"},
			want: "--- a.txt\n+++ b.txt\n@@ -1,3 +1,3 @@\n one\n-two\n+2\n three\n",
		},
		{
			name: "unified-labels",
			args: []string{"unified", "-L", "a/numbers", "-L", "b/numbers", "a.txt", "b.txt"},
			want: "--- a/numbers\n+++ b/numbers\n@@ -1,3 +1,3 @@\n one\n-two\n+2\n three\n",
		},
		{
			name:  "unified-stdin",
			stdin: numbers2,
			args:  []string{"unified", "a.txt", "-"},
			want:  "--- a.txt\n+++ -\n@@ -1,3 +1,3 @@\n one\n-two\n+2\n three\n",
		},
		{
			name: "unified-context-flag",
			args: []string{"unified", "-U", "0", "a.txt", "b.txt"},
			want: "--- a.txt\n+++ b.txt\n@@ -2,1 +2,1 @@\n-two\n+2\n",
		},
		{
			name:   "unified-context-config",
			config: "context = 0\n",
			args:   []string{"unified", "a.txt", "b.txt"},
			want:   "--- a.txt\n+++ b.txt\n@@ -2,1 +2,1 @@\n-two\n+2\n",
		},
		{
			name:   "unified-flag-overrides-config",
			config: "context = 0\n",
			args:   []string{"unified", "--context", "1", "a.txt", "b.txt"},
			want:   "--- a.txt\n+++ b.txt\n@@ -1,3 +1,3 @@\n one\n-two\n+2\n three\n",
		},
		{
			name:   "unified-colors",
			config: "color = \"always\"\n[colors]\nheader = []\nhunk_header = []\ndelete = [1, 31]\ninsert = [32]\n",
			args:   []string{"unified", "a.txt", "b.txt"},
			want:   "--- a.txt\n+++ b.txt\n@@ -1,3 +1,3 @@\n one\n\033[1;31m-two\033[0m\n\033[32m+2\033[0m\n three\n",
		},
		{
			name: "unified-identical",
			args: []string{"unified", "a.txt", "a.txt"},
			want: "",
		},
		{
			name: "script",
			args: []string{"script", "a.txt", "b.txt"},
			want: "Delete\t1\t-1\ttwo\nInsert\t2\t1\t2\n",
		},
		{
			name: "blocks",
			args: []string{"blocks", "a.txt", "b.txt"},
			want: "0\t0\t1\n2\t2\t1\n3\t3\t0\n",
		},
		{
			name: "blocks-patience",
			args: []string{"blocks", "--strategy", "patience", "a.txt", "b.txt"},
			want: "0\t0\t1\n2\t2\t1\n3\t3\t0\n",
		},
		{
			name: "blocks-identical",
			args: []string{"blocks", "a.txt", "a.txt"},
			want: "0\t0\t3\n3\t3\t0\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupDir(t)
			if tt.config != "" {
				writeFile(t, defaultConfigFile, tt.config)
			}
			got, stderr, err := run(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("seqdiff %v failed: %v\nstderr:\n%s", tt.args, err, stderr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("seqdiff %v output is different [-want,+got]:\n%s", tt.args, diff)
			}
		})
	}
}

func TestExplicitConfig(t *testing.T) {
	setupDir(t)
	writeFile(t, "other.toml", "strategy = \"patience\"\ncontext = 0\n")

	got, _, err := run(t, "", "unified", "--config", "other.toml", "a.txt", "b.txt")
	if err != nil {
		t.Fatal(err)
	}
	want := "--- a.txt\n+++ b.txt\n@@ -2,1 +2,1 @@\n-two\n+2\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output is different [-want,+got]:\n%s", diff)
	}

	if _, _, err := run(t, "", "unified", "--config", "missing.toml", "a.txt", "b.txt"); err == nil {
		t.Error("missing config file succeeded, want error")
	}
}

func TestExitCode(t *testing.T) {
	for _, sub := range []string{"unified", "script", "blocks"} {
		t.Run(sub, func(t *testing.T) {
			setupDir(t)

			_, _, err := run(t, "", sub, "--exit-code", "a.txt", "b.txt")
			var code exitCode
			if !errors.As(err, &code) || code != 1 {
				t.Errorf("seqdiff %s --exit-code with differences = %v, want exit code 1", sub, err)
			}

			if _, _, err := run(t, "", sub, "--exit-code", "a.txt", "a.txt"); err != nil {
				t.Errorf("seqdiff %s --exit-code without differences = %v, want nil", sub, err)
			}

			if _, _, err := run(t, "", sub, "a.txt", "b.txt"); err != nil {
				t.Errorf("seqdiff %s with differences = %v, want nil", sub, err)
			}
		})
	}
}

func TestStat(t *testing.T) {
	for _, sub := range []string{"unified", "script", "blocks"} {
		t.Run(sub, func(t *testing.T) {
			setupDir(t)
			_, stderr, err := run(t, "", sub, "--stat", "--color", "never", "a.txt", "b.txt")
			if err != nil {
				t.Fatal(err)
			}
			if want := "1 insertion(+), 1 deletion(-)\n"; stderr != want {
				t.Errorf("seqdiff %s --stat wrote %q to stderr, want %q", sub, stderr, want)
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing-file", []string{"unified", "a.txt", "missing.txt"}, "reading missing.txt"},
		{"two-stdin", []string{"unified", "-", "-"}, "only one input"},
		{"strategy", []string{"blocks", "--strategy", "histogram", "a.txt", "b.txt"}, `unknown strategy "histogram"`},
		{"color", []string{"unified", "--color", "sometimes", "a.txt", "b.txt"}, `invalid color mode "sometimes"`},
		{"labels", []string{"unified", "-L", "a", "-L", "b", "-L", "c", "a.txt", "b.txt"}, "at most two labels"},
		{"args", []string{"blocks", "a.txt"}, "accepts 2 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupDir(t)
			_, _, err := run(t, "", tt.args...)
			if err == nil {
				t.Fatalf("seqdiff %v succeeded, want error containing %q", tt.args, tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("seqdiff %v = %v, want error containing %q", tt.args, err, tt.want)
			}
		})
	}
}

func TestRecursionLimit(t *testing.T) {
	setupDir(t)
	writeFile(t, "x.txt", "a\nb\nX\nc\nd\n")
	writeFile(t, "y.txt", "a\nb\nY\nc\nd\n")

	_, _, err := run(t, "", "blocks", "--strategy", "patience", "--recursion-limit", "0", "x.txt", "y.txt")
	if !errors.Is(err, seqdiff.ErrRecursionLimit) {
		t.Errorf("blocks with recursion limit 0 = %v, want recursion limit error", err)
	}
}
