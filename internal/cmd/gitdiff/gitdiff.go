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


// gitdiff renders the diffs of git using seqdiff when used as GIT_EXTERNAL_DIFF:
//
//	GIT_EXTERNAL_DIFF=gitdiff git diff HEAD~1
//
// The strategy and context size are taken from the environment variables SEQDIFF_STRATEGY
// ("myers" or "patience", defaults to "myers") and SEQDIFF_CONTEXT (defaults to 3). This makes it
// easy to compare the output of both strategies on a real repository.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"znkr.io/seqdiff"
	"znkr.io/seqdiff/textdiff"
)

const devNull = "/dev/null"

func main() {
	if err := run(os.Args, os.Getenv, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, getenv func(string) string, out io.Writer) error {
	if len(args) < 8 {
		return errors.Errorf("expected at least 8 args, got %v: %v", len(args), args)
	}
	path, oldFile, oldHex, newFile, newHex, newMode := args[1], args[2], args[3], args[5], args[6], args[7]

	opts, err := options(getenv)
	if err != nil {
		return err
	}

	old, err := readFile(oldFile)
	if err != nil {
		return errors.Wrap(err, "reading old file")
	}
	new, err := readFile(newFile)
	if err != nil {
		return errors.Wrap(err, "reading new file")
	}

	opts = append(opts, textdiff.Labels(label("a/", path, oldFile), label("b/", path, newFile)))
	diff, err := textdiff.Unified(old, new, opts...)
	if err != nil {
		return errors.Wrapf(err, "comparing %s", path)
	}
	if len(diff) == 0 {
		return nil
	}

	fmt.Fprintf(out, "diff --git a/%s b/%s\n", path, path)
	fmt.Fprintf(out, "index %s..%s %s\n", abbrev(oldHex), abbrev(newHex), newMode)
	_, err = out.Write(diff)
	return errors.Wrap(err, "writing diff")
}

func options(getenv func(string) string) ([]seqdiff.Option, error) {
	strategy := seqdiff.StrategyMyers
	switch s := getenv("SEQDIFF_STRATEGY"); s {
	case "", "myers":
	case "patience":
		strategy = seqdiff.StrategyPatience
	default:
		return nil, errors.Errorf("unknown SEQDIFF_STRATEGY %q", s)
	}
	context := 3
	if s := getenv("SEQDIFF_CONTEXT"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, errors.Errorf("invalid SEQDIFF_CONTEXT %q", s)
		}
		context = n
	}
	return []seqdiff.Option{seqdiff.Strategy(strategy), seqdiff.Context(context)}, nil
}

func readFile(name string) ([]byte, error) {
	if name == devNull {
		return nil, nil
	}
	return os.ReadFile(name)
}

func label(prefix, path, file string) string {
	if file == devNull {
		return devNull
	}
	return prefix + path
}

func abbrev(hex string) string {
	if len(hex) > 10 {
		return hex[:10]
	}
	return hex
}
