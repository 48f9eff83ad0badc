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


// Package unixpatch applies unified diffs with the patch(1) command line tool. It's used to
// validate the output of textdiff in tests and in the evaluation tool.
package unixpatch

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
)

// Available reports whether patch is installed.
func Available() bool {
	_, err := exec.LookPath("patch")
	return err == nil
}

// Patch applies the unified diff to orig and returns the result.
func Patch(ctx context.Context, orig, diff string) (string, error) {
	// Using patch with an empty diff will not create an output file.
	if len(diff) == 0 {
		return orig, nil
	}

	dir, err := os.MkdirTemp("", "patch-*")
	if err != nil {
		return "", errors.Wrap(err, "creating temporary directory")
	}
	defer os.RemoveAll(dir)

	patchfile := filepath.Join(dir, "patch")
	origfile := filepath.Join(dir, "orig")
	outfile := filepath.Join(dir, "out")

	if err := os.WriteFile(patchfile, []byte(diff), 0o644); err != nil {
		return "", errors.Wrap(err, "writing patch file")
	}
	if err := os.WriteFile(origfile, []byte(orig), 0o644); err != nil {
		return "", errors.Wrap(err, "writing orig file")
	}

	cmd := exec.CommandContext(ctx, "patch", "--quiet", "-u", "-i", patchfile, "-o", outfile, origfile)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", errors.Wrapf(err, "running %v\n%s", cmd.Args, out)
	}

	out, err := os.ReadFile(outfile)
	if err != nil {
		return "", errors.Wrap(err, "reading patched file")
	}
	return string(out), nil
}
