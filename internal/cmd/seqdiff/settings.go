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
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"znkr.io/seqdiff"
	"znkr.io/seqdiff/textdiff"
	"znkr.io/seqdiff/textdiff/color"
)

// defaultConfigFile is read from the working directory if --config isn't set.
const defaultConfigFile = "seqdiff.toml"

// settings are read from the config file and can be overridden with flags.
type settings struct {
	Strategy       string        `toml:"strategy"`
	Context        int           `toml:"context"`
	RecursionLimit int           `toml:"recursion_limit"`
	CostLimit      int           `toml:"cost_limit"`
	Color          string        `toml:"color"` // auto, always or never
	Colors         colorSettings `toml:"colors"`
}

// colorSettings are SGR parameters for the parts of a unified diff. Unset entries use the default
// colors.
type colorSettings struct {
	Header     []int `toml:"header"`
	HunkHeader []int `toml:"hunk_header"`
	Match      []int `toml:"match"`
	Delete     []int `toml:"delete"`
	Insert     []int `toml:"insert"`
}

func defaultSettings() settings {
	return settings{
		Strategy:       "myers",
		Context:        3,
		RecursionLimit: 10,
		Color:          "auto",
	}
}

// loadSettings reads the config file at path. A missing file is only an error if required is set.
func loadSettings(path string, required bool) (settings, error) {
	s := defaultSettings()
	if _, err := os.Stat(path); err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, errors.Wrap(err, "reading config")
	}
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		return s, errors.Wrapf(err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return s, errors.Errorf("%s: unknown keys %v", path, undecoded)
	}
	return s, s.validate()
}

func (s settings) validate() error {
	if _, err := s.strategy(); err != nil {
		return err
	}
	switch s.Color {
	case "auto", "always", "never":
	default:
		return errors.Errorf("invalid color mode %q, want auto, always or never", s.Color)
	}
	if s.Context < 0 || s.RecursionLimit < 0 || s.CostLimit < 0 {
		return errors.New("context and limits must not be negative")
	}
	return nil
}

// override replaces the settings for which a flag was set explicitly.
func (s *settings) override(flags *pflag.FlagSet, from settings) {
	if flags.Changed("strategy") {
		s.Strategy = from.Strategy
	}
	if flags.Changed("context") {
		s.Context = from.Context
	}
	if flags.Changed("recursion-limit") {
		s.RecursionLimit = from.RecursionLimit
	}
	if flags.Changed("cost-limit") {
		s.CostLimit = from.CostLimit
	}
	if flags.Changed("color") {
		s.Color = from.Color
	}
}

func (s settings) strategy() (seqdiff.StrategyKind, error) {
	switch s.Strategy {
	case "myers":
		return seqdiff.StrategyMyers, nil
	case "patience":
		return seqdiff.StrategyPatience, nil
	default:
		return 0, errors.Errorf("unknown strategy %q, want myers or patience", s.Strategy)
	}
}

// alignOptions returns the options for comparing two inputs.
func (s settings) alignOptions() ([]seqdiff.Option, error) {
	strategy, err := s.strategy()
	if err != nil {
		return nil, err
	}
	return []seqdiff.Option{
		seqdiff.Strategy(strategy),
		seqdiff.RecursionLimit(s.RecursionLimit),
		seqdiff.CostLimit(s.CostLimit),
	}, nil
}

// terminalColors returns the textdiff option for colored output.
func (s settings) terminalColors() seqdiff.Option {
	opts := color.Default
	c := s.Colors
	for _, entry := range []struct {
		params []int
		opt    func(...int) color.Option
	}{
		{c.Header, color.Headers},
		{c.HunkHeader, color.HunkHeaders},
		{c.Match, color.Matches},
		{c.Delete, color.Deletes},
		{c.Insert, color.Inserts},
	} {
		if entry.params != nil {
			opts = append(opts[:len(opts):len(opts)], entry.opt(entry.params...))
		}
	}
	return textdiff.TerminalColors(opts...)
}
