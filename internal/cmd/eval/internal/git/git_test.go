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


package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newRepo creates a repository with two commits.
func newRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-C", dir, "-c", "user.name=test", "-c", "user.email=test@example.com"}, args...)...)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v\n%s", args, err, out)
		}
	}
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	run("init", "--quiet")
	write("numbers.txt", "one\ntwo\nthree\nfour\n")
	run("add", ".")
	run("commit", "--quiet", "-m", "first")
	write("numbers.txt", "zero\none\ntree\nfour\n")
	write("new.txt", "new\n")
	run("add", ".")
	run("commit", "--quiet", "-m", "second")
	return dir
}

func TestRepo(t *testing.T) {
	dir := newRepo(t)
	ctx := t.Context()

	repo, err := Open(ctx, dir)
	if err != nil {
		t.Fatalf("Open(...) failed: %v", err)
	}
	commits, err := repo.RevList(ctx)
	if err != nil {
		t.Fatalf("RevList() failed: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("RevList() = %v, want 2 commits", commits)
	}

	files, err := repo.DiffTree(ctx, commits[0])
	if err != nil {
		t.Fatalf("DiffTree(...) failed: %v", err)
	}
	if len(files) != 2 || files[0].Name != "new.txt" || files[1].Name != "numbers.txt" {
		t.Fatalf("DiffTree(...) = %v, want changes to new.txt and numbers.txt", files)
	}
	if files[0].OldID != ZeroID {
		t.Errorf("DiffTree(...) reports old ID %v for a new file", files[0].OldID)
	}

	var got []string
	for _, id := range []string{files[0].OldID, files[1].OldID, files[1].NewID} {
		content, err := repo.Cat(ctx, id)
		if err != nil {
			t.Fatalf("Cat(%v) failed: %v", id, err)
		}
		got = append(got, content)
	}
	want := []string{"", "one\ntwo\nthree\nfour\n", "zero\none\ntree\nfour\n"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("file contents differ [-want,+got]:\n%s", diff)
	}

	// The first commit is compared against the empty tree.
	files, err = repo.DiffTree(ctx, commits[1])
	if err != nil {
		t.Fatalf("DiffTree(...) failed: %v", err)
	}
	if len(files) != 1 || files[0].Name != "numbers.txt" {
		t.Errorf("DiffTree(root) = %v, want numbers.txt", files)
	}
}

func TestOpenNotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
	if _, err := Open(t.Context(), t.TempDir()); err == nil {
		t.Errorf("Open(...) succeeded for a directory without repository")
	}
}
