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


// Package git reads commits and file contents from a git repository by running the git command
// line tool.
package git

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// ZeroID is the object ID git reports for files that don't exist on one side of a change.
const ZeroID = "0000000000000000000000000000000000000000"

// Repo is a git repository on disk.
type Repo struct {
	dir string
}

// Open returns the repository in dir.
func Open(ctx context.Context, dir string) (*Repo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, errors.Wrap(err, "opening repository")
	}
	r := &Repo{dir: dir}
	if _, err := r.git(ctx, "rev-parse", "--git-dir"); err != nil {
		return nil, errors.Wrapf(err, "%s is not a git repository", dir)
	}
	return r, nil
}

// RevList returns the IDs of all non-merge commits reachable from HEAD, newest first.
func (r *Repo) RevList(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "rev-list", "--no-merges", "HEAD")
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// FileDiff describes a file changed by a commit.
type FileDiff struct {
	Name  string
	OldID string
	NewID string
}

// DiffTree returns the files changed by a commit compared to its first parent.
func (r *Repo) DiffTree(ctx context.Context, commit string) ([]FileDiff, error) {
	out, err := r.git(ctx, "diff-tree", "-r", "--no-commit-id", "--root", commit)
	if err != nil {
		return nil, err
	}
	var files []FileDiff
	for line := range strings.Lines(out) {
		line = strings.TrimSuffix(line, "\n")
		if line == "" {
			continue
		}
		// :<old mode> <new mode> <old id> <new id> <status>\t<name>
		meta, name, found := strings.Cut(line, "\t")
		fields := strings.Fields(strings.TrimPrefix(meta, ":"))
		if !found || !strings.HasPrefix(meta, ":") || len(fields) != 5 {
			return nil, errors.Errorf("unexpected diff-tree output: %q", line)
		}
		files = append(files, FileDiff{
			Name:  name,
			OldID: fields[2],
			NewID: fields[3],
		})
	}
	return files, nil
}

// Cat returns the contents of a blob. The contents of ZeroID are empty.
func (r *Repo) Cat(ctx context.Context, id string) (string, error) {
	if id == ZeroID {
		return "", nil
	}
	return r.git(ctx, "cat-file", "blob", id)
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	var wout, werr strings.Builder
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir}, args...)...)
	cmd.Stdout = &wout
	cmd.Stderr = &werr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "running %v\n%s", cmd.Args, werr.String())
	}
	return wout.String(), nil
}
