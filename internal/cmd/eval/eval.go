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
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"znkr.io/seqdiff"
	"znkr.io/seqdiff/internal/byteview"
	"znkr.io/seqdiff/internal/unixpatch"
	"znkr.io/seqdiff/textdiff"
)

// change is a single file changed by a commit.
type change struct {
	commitID string
	filename string
	old, new string
}

// summary collects the outcome of an evaluation.
type summary struct {
	Changes     int // number of evaluated changes
	Evaluations int // number of evaluated (change, variant) combinations
	Failures    int // evaluations that produced a wrong result
	Limited     int // evaluations that exceeded a resource limit
}

type variant struct {
	name     string
	strategy seqdiff.StrategyKind
}

var variants = []variant{
	{"myers", seqdiff.StrategyMyers},
	{"patience", seqdiff.StrategyPatience},
}

// evaluator compares the old and new contents of changes with all variants and verifies that the
// results reproduce the new contents.
type evaluator struct {
	parallel int
	validate bool // validate unified diffs with patch(1)
	log      logrus.FieldLogger

	mu      sync.Mutex
	stats   io.Writer // optional CSV output
	summary summary
}

// run evaluates all changes sent by produce using e.parallel workers.
func (e *evaluator) run(ctx context.Context, produce func(ctx context.Context, out chan<- change) error) (summary, error) {
	if e.stats != nil {
		if _, err := io.WriteString(e.stats, "commit_id,file,variant,N,M,D,duration_ns\n"); err != nil {
			return summary{}, errors.Wrap(err, "writing stats")
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	changes := make(chan change)
	g.Go(func() error {
		defer close(changes)
		return produce(ctx, changes)
	})
	for range max(1, e.parallel) {
		g.Go(func() error {
			for c := range changes {
				if err := e.evaluate(ctx, c); err != nil {
					return err
				}
			}
			return nil
		})
	}
	err := g.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summary, err
}

// evaluate checks a single change. Wrong results are logged and counted, only I/O errors and
// cancellation are returned.
func (e *evaluator) evaluate(ctx context.Context, c change) error {
	log := e.log.WithFields(logrus.Fields{"commit": c.commitID, "file": c.filename})
	x, _ := byteview.SplitLines(byteview.From(c.old))
	y, _ := byteview.SplitLines(byteview.From(c.new))

	var failures, limited int
	var rows []string
	for _, v := range variants {
		vlog := log.WithField("variant", v.name)

		start := time.Now()
		blocks, err := seqdiff.AlignContext(ctx, x, y, seqdiff.Strategy(v.strategy))
		duration := time.Since(start)
		switch {
		case errors.Is(err, seqdiff.ErrResourceLimit):
			vlog.WithError(err).Debug("resource limit exceeded")
			limited++
			continue
		case err != nil:
			return errors.Wrapf(err, "aligning %s:%s", c.commitID, c.filename)
		}

		if msg := checkBlocks(x, y, blocks); msg != "" {
			vlog.Error(msg)
			failures++
		}
		if v.strategy == seqdiff.StrategyMyers {
			if msg := checkScript(ctx, x, y, blocks); msg != "" {
				vlog.Error(msg)
				failures++
			}
		}
		if e.validate {
			if msg := checkPatch(ctx, c, v); msg != "" {
				vlog.Error(msg)
				failures++
			}
		}

		d := 0
		for _, op := range seqdiff.Opcodes(blocks) {
			if op.Op != seqdiff.Equal {
				d += (op.X1 - op.X0) + (op.Y1 - op.Y0)
			}
		}
		rows = append(rows, fmt.Sprintf("%s,%s,%s,%d,%d,%d,%d\n", c.commitID, c.filename, v.name, len(x), len(y), d, duration.Nanoseconds()))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.summary.Changes++
	e.summary.Evaluations += len(variants)
	e.summary.Failures += failures
	e.summary.Limited += limited
	if e.summary.Changes%100 == 0 {
		e.log.WithFields(logrus.Fields{
			"changes":  e.summary.Changes,
			"failures": e.summary.Failures,
		}).Info("progress")
	}
	if e.stats != nil {
		if _, err := io.WriteString(e.stats, strings.Join(rows, "")); err != nil {
			return errors.Wrap(err, "writing stats")
		}
	}
	return nil
}

// checkBlocks verifies that blocks is a valid list of matching blocks for x and y.
func checkBlocks[T comparable](x, y []T, blocks []seqdiff.MatchBlock) string {
	if len(blocks) == 0 || blocks[len(blocks)-1] != (seqdiff.MatchBlock{X: len(x), Y: len(y)}) {
		return "matching blocks don't end in a sentinel"
	}
	s, t := 0, 0
	for _, b := range blocks {
		if b.X < s || b.Y < t {
			return fmt.Sprintf("matching block %v overlaps previous block", b)
		}
		if !slices.Equal(x[b.X:b.X+b.Len], y[b.Y:b.Y+b.Len]) {
			return fmt.Sprintf("matching block %v contains different elements", b)
		}
		s, t = b.X+b.Len, b.Y+b.Len
	}
	return ""
}

// checkScript verifies that the edit script reproduces y and agrees with blocks.
func checkScript[T comparable](ctx context.Context, x, y []T, blocks []seqdiff.MatchBlock) string {
	script, err := seqdiff.MyersContext(ctx, x, y)
	if err != nil {
		return fmt.Sprintf("computing edit script: %v", err)
	}
	got, err := seqdiff.Apply(script, x, y)
	if err != nil {
		return fmt.Sprintf("applying edit script: %v", err)
	}
	if !slices.Equal(got, y) {
		return "edit script doesn't reproduce the new file"
	}
	sblocks, err := seqdiff.ScriptBlocks(script, len(x), len(y))
	if err != nil {
		return fmt.Sprintf("converting edit script: %v", err)
	}
	if !slices.Equal(sblocks, blocks) {
		return "edit script and matching blocks disagree"
	}
	return ""
}

// checkPatch verifies that patch(1) reproduces the new file from the unified diff.
func checkPatch(ctx context.Context, c change, v variant) string {
	unified, err := textdiff.UnifiedContext(ctx, c.old, c.new, seqdiff.Strategy(v.strategy))
	if err != nil {
		return fmt.Sprintf("computing unified diff: %v", err)
	}
	patched, err := unixpatch.Patch(ctx, c.old, unified)
	if err != nil {
		return fmt.Sprintf("failed to run patch: %v", err)
	}
	if patched != c.new {
		return "file is different after applying patch"
	}
	return ""
}

// changesFrom sends all changes to out.
func changesFrom(changes []change) func(ctx context.Context, out chan<- change) error {
	return func(ctx context.Context, out chan<- change) error {
		for _, c := range changes {
			select {
			case out <- c:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}
}
