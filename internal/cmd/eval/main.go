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


// eval validates the alignment strategies on the history of a git repository: Every file changed
// by a commit is compared with every strategy and the results are checked for consistency, by
// replaying edit scripts and optionally by applying the unified diff using the unix patch tool.
package main

import (
	"bufio"
	"context"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"znkr.io/seqdiff/internal/cmd/eval/internal/git"
	"znkr.io/seqdiff/internal/unixpatch"
)

type options struct {
	repo     string
	sample   int
	parallel int
	stats    string
	validate bool
	verbose  bool
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:           "eval --repo <dir>",
		Short:         "Validate the alignment strategies on the history of a git repository",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), &opts)
		},
	}
	cmd.Flags().StringVar(&opts.repo, "repo", "", "repository to use for evaluation")
	cmd.Flags().IntVar(&opts.sample, "sample", 0, "if >0, sample commits to the value of the flag")
	cmd.Flags().IntVar(&opts.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	cmd.Flags().StringVar(&opts.stats, "stats", "", "file to store stats in")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "validate unified diffs with the unix patch tool")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every evaluation")
	_ = cmd.MarkFlagRequired("repo")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("evaluation failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options) error {
	log := logrus.New()
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if opts.validate && !unixpatch.Available() {
		return errors.New("--validate needs the patch tool")
	}

	repo, err := git.Open(ctx, opts.repo)
	if err != nil {
		return err
	}
	commitIDs, err := repo.RevList(ctx)
	if err != nil {
		return errors.Wrap(err, "reading rev-list")
	}
	if opts.sample > 0 && opts.sample < len(commitIDs) {
		sample := make([]string, opts.sample)
		for i, j := range rand.Perm(len(commitIDs))[:opts.sample] {
			sample[i] = commitIDs[j]
		}
		commitIDs = sample
	}
	log.WithFields(logrus.Fields{"repo": opts.repo, "commits": len(commitIDs)}).Info("starting evaluation")

	e := &evaluator{
		parallel: opts.parallel,
		validate: opts.validate,
		log:      log,
	}
	if opts.stats != "" {
		f, err := os.Create(opts.stats)
		if err != nil {
			return errors.Wrap(err, "creating stats file")
		}
		defer f.Close()
		w := bufio.NewWriter(f)
		defer w.Flush()
		e.stats = w
	}

	sum, err := e.run(ctx, changesIn(repo, commitIDs, log))
	log.WithFields(logrus.Fields{
		"changes":     sum.Changes,
		"evaluations": sum.Evaluations,
		"failures":    sum.Failures,
		"limited":     sum.Limited,
	}).Info("evaluation done")
	if err != nil {
		return err
	}
	if sum.Failures > 0 {
		return errors.Errorf("%d evaluations failed", sum.Failures)
	}
	return nil
}

// changesIn sends all text files changed by the commits to out.
func changesIn(repo *git.Repo, commitIDs []string, log logrus.FieldLogger) func(ctx context.Context, out chan<- change) error {
	return func(ctx context.Context, out chan<- change) error {
		for _, commitID := range commitIDs {
			files, err := repo.DiffTree(ctx, commitID)
			if err != nil {
				return errors.Wrapf(err, "processing commit %s", commitID)
			}
			for _, file := range files {
				old, err := repo.Cat(ctx, file.OldID)
				if err != nil {
					return err
				}
				new, err := repo.Cat(ctx, file.NewID)
				if err != nil {
					return err
				}
				if strings.ContainsRune(old, 0) || strings.ContainsRune(new, 0) {
					log.WithFields(logrus.Fields{"commit": commitID, "file": file.Name}).Debug("skipping binary file")
					continue
				}
				select {
				case out <- change{commitID: commitID, filename: file.Name, old: old, new: new}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		return nil
	}
}
