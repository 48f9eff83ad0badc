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
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"znkr.io/seqdiff"
	"znkr.io/seqdiff/internal/byteview"
	"znkr.io/seqdiff/textdiff"
)

// exitCode is returned from a command that wants the process to exit with a specific code
// without printing an error.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit code %d", int(c)) }

type app struct {
	stdin io.Reader

	configPath string
	flags      settings
	verbose    int
	debug      bool
	exitCode   bool
	stat       bool

	settings settings
	log      *log.Logger
}

func newRootCmd(stdin io.Reader) *cobra.Command {
	a := &app{stdin: stdin}
	root := &cobra.Command{
		Use:   "seqdiff",
		Short: "Compare files line by line",
		Long: `seqdiff compares two files line by line using Myers' or patience diff.

Defaults are read from ./seqdiff.toml if it exists. Flags override the config file. A file name
of "-" reads from stdin.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	d := defaultSettings()
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default "+defaultConfigFile+" if it exists)")
	pf.StringVar(&a.flags.Strategy, "strategy", d.Strategy, "diff strategy: myers or patience")
	pf.IntVarP(&a.flags.Context, "context", "U", d.Context, "lines of context around changes")
	pf.IntVar(&a.flags.RecursionLimit, "recursion-limit", d.RecursionLimit, "maximum recursion depth of patience diff")
	pf.IntVar(&a.flags.CostLimit, "cost-limit", d.CostLimit, "maximum search iterations of myers diff, 0 for no limit")
	pf.StringVar(&a.flags.Color, "color", d.Color, "colorize output: auto, always or never")
	pf.CountVarP(&a.verbose, "verbose", "v", "log more details, repeat for debug logs")
	pf.BoolVar(&a.debug, "debug", false, "dump intermediate results to stderr")
	pf.BoolVar(&a.exitCode, "exit-code", false, "exit with 1 if the inputs differ")
	pf.BoolVar(&a.stat, "stat", false, "print a summary of the changes to stderr")

	root.AddCommand(a.unifiedCmd(), a.scriptCmd(), a.blocksCmd())
	return root
}

// setup resolves the effective settings and the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.log = log.New()
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	switch {
	case a.debug || a.verbose > 1:
		a.log.SetLevel(log.DebugLevel)
	case a.verbose == 1:
		a.log.SetLevel(log.InfoLevel)
	default:
		a.log.SetLevel(log.WarnLevel)
	}

	path, required := a.configPath, true
	if path == "" {
		path, required = defaultConfigFile, false
	}
	s, err := loadSettings(path, required)
	if err != nil {
		return err
	}
	s.override(cmd.Flags(), a.flags)
	if err := s.validate(); err != nil {
		return err
	}
	a.settings = s
	a.log.WithFields(log.Fields{
		"strategy": s.Strategy,
		"context":  s.Context,
		"color":    s.Color,
	}).Debug("settings resolved")
	return nil
}

func (a *app) unifiedCmd() *cobra.Command {
	var labels []string
	cmd := &cobra.Command{
		Use:   "unified OLD NEW",
		Short: "Print the differences in unified format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(labels) > 2 {
				return errors.New("at most two labels allowed")
			}
			from, to := args[0], args[1]
			if len(labels) > 0 {
				from = labels[0]
			}
			if len(labels) > 1 {
				to = labels[1]
			}

			x, y, err := a.readInputs(args[0], args[1])
			if err != nil {
				return err
			}
			opts, err := a.settings.alignOptions()
			if err != nil {
				return err
			}
			opts = append(opts, seqdiff.Context(a.settings.Context), textdiff.Labels(from, to))
			if a.colorEnabled(cmd.OutOrStdout()) {
				opts = append(opts, a.settings.terminalColors())
			}

			start := time.Now()
			out, err := textdiff.UnifiedContext(cmd.Context(), x, y, opts...)
			if err != nil {
				return err
			}
			a.log.WithFields(log.Fields{
				"from":     from,
				"to":       to,
				"duration": time.Since(start),
			}).Info("compared")
			if _, err := io.WriteString(cmd.OutOrStdout(), out); err != nil {
				return errors.Wrap(err, "writing diff")
			}

			if a.stat {
				xlines, _ := byteview.SplitLines(byteview.From(x))
				ylines, _ := byteview.SplitLines(byteview.From(y))
				blocks, err := a.align(cmd.Context(), xlines, ylines)
				if err != nil {
					return err
				}
				a.printStat(cmd.ErrOrStderr(), blocks, len(xlines), len(ylines))
			}
			return a.result(out != "")
		},
	}
	cmd.Flags().StringArrayVarP(&labels, "label", "L", nil, "use label instead of the file name, may be given twice")
	return cmd
}

func (a *app) scriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "script OLD NEW",
		Short: "Print the shortest edit script computed by Myers' algorithm",
		Long: `script prints one edit per line: the operation, the position in OLD, the position in
NEW (-1 for deletions) and the affected line.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			xlines, ylines, err := a.readLines(args[0], args[1])
			if err != nil {
				return err
			}
			if a.settings.Strategy != "myers" {
				a.log.WithField("strategy", a.settings.Strategy).Warn("edit scripts are always computed with myers")
			}

			start := time.Now()
			script, err := seqdiff.MyersContext(cmd.Context(), xlines, ylines, seqdiff.CostLimit(a.settings.CostLimit))
			if err != nil {
				return err
			}
			a.log.WithFields(log.Fields{
				"edits":    len(script),
				"duration": time.Since(start),
			}).Info("compared")
			a.dump(cmd.ErrOrStderr(), script)

			w := cmd.OutOrStdout()
			for _, e := range script {
				var line byteview.ByteView
				if e.Op == seqdiff.Insert {
					line = ylines[e.Y]
				} else {
					line = xlines[e.X]
				}
				if _, err := fmt.Fprintf(w, "%v\t%d\t%d\t%s\n", e.Op, e.X, e.Y, line.Text()); err != nil {
					return errors.Wrap(err, "writing script")
				}
			}

			if a.stat {
				blocks, err := seqdiff.ScriptBlocks(script, len(xlines), len(ylines))
				if err != nil {
					return err
				}
				a.printStat(cmd.ErrOrStderr(), blocks, len(xlines), len(ylines))
			}
			return a.result(len(script) > 0)
		},
	}
}

func (a *app) blocksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blocks OLD NEW",
		Short: "Print the matching blocks of both inputs",
		Long: `blocks prints one matching block per line: the start in OLD, the start in NEW and the
number of matching lines. The last block always has length 0 and marks the end of both inputs.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			xlines, ylines, err := a.readLines(args[0], args[1])
			if err != nil {
				return err
			}
			blocks, err := a.align(cmd.Context(), xlines, ylines)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, b := range blocks {
				if _, err := fmt.Fprintf(w, "%d\t%d\t%d\n", b.X, b.Y, b.Len); err != nil {
					return errors.Wrap(err, "writing blocks")
				}
			}
			if a.stat {
				a.printStat(cmd.ErrOrStderr(), blocks, len(xlines), len(ylines))
			}
			return a.result(!identical(blocks, len(xlines), len(ylines)))
		},
	}
}

func (a *app) align(ctx context.Context, x, y []byteview.ByteView) ([]seqdiff.MatchBlock, error) {
	opts, err := a.settings.alignOptions()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	blocks, err := seqdiff.AlignContext(ctx, x, y, opts...)
	if err != nil {
		return nil, err
	}
	a.log.WithFields(log.Fields{
		"strategy": a.settings.Strategy,
		"blocks":   len(blocks),
		"duration": time.Since(start),
	}).Info("aligned")
	a.dump(a.log.Out, blocks)
	return blocks, nil
}

func (a *app) readLines(xname, yname string) (x, y []byteview.ByteView, err error) {
	xs, ys, err := a.readInputs(xname, yname)
	if err != nil {
		return nil, nil, err
	}
	x, _ = byteview.SplitLines(byteview.From(xs))
	y, _ = byteview.SplitLines(byteview.From(ys))
	return x, y, nil
}

func (a *app) readInputs(xname, yname string) (x, y string, err error) {
	if xname == "-" && yname == "-" {
		return "", "", errors.New("only one input can be read from stdin")
	}
	if x, err = a.read(xname); err != nil {
		return "", "", err
	}
	if y, err = a.read(yname); err != nil {
		return "", "", err
	}
	return x, y, nil
}

func (a *app) read(name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(a.stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", name)
	}
	a.log.WithFields(log.Fields{"file": name, "bytes": len(data)}).Debug("read input")
	return string(data), nil
}

func (a *app) colorEnabled(w io.Writer) bool {
	switch a.settings.Color {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (a *app) printStat(w io.Writer, blocks []seqdiff.MatchBlock, n, m int) {
	matched := 0
	for _, b := range blocks {
		matched += b.Len
	}
	ins, del := color.New(color.FgGreen), color.New(color.FgRed)
	if a.colorEnabled(w) {
		ins.EnableColor()
		del.EnableColor()
	} else {
		ins.DisableColor()
		del.DisableColor()
	}
	fmt.Fprintf(w, "%s, %s\n",
		ins.Sprint(plural(m-matched, "insertion")+"(+)"),
		del.Sprint(plural(n-matched, "deletion")+"(-)"))
}

func (a *app) dump(w io.Writer, v any) {
	if a.debug {
		fmt.Fprintln(w, litter.Sdump(v))
	}
}

// result turns the outcome of a comparison into the error expected by main.
func (a *app) result(differ bool) error {
	if differ && a.exitCode {
		return exitCode(1)
	}
	return nil
}

func identical(blocks []seqdiff.MatchBlock, n, m int) bool {
	return n == m && (n == 0 || len(blocks) == 2 && blocks[0].Len == n)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
