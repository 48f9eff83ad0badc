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


// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// seqdiff.Option and textdiff options.
package config

// Strategy selects the alignment algorithm.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Strategy -trimprefix=Strategy
type Strategy int

const (
	// Find a shortest edit script using Myers' linear space algorithm.
	StrategyMyers Strategy = iota

	// Anchor the alignment on elements that are unique in both inputs.
	StrategyPatience
)

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Context is the number of matches to include as a prefix and postfix for hunks.
	Context int

	// Alignment algorithm.
	Strategy Strategy

	// RecursionLimit bounds the recursion depth of the patience aligner.
	RecursionLimit int

	// CostLimit bounds the number of search iterations of the Myers aligner. Zero means no
	// limit.
	CostLimit int

	// Labels for the "---" and "+++" lines of a unified diff. The lines are only emitted if
	// HasLabels is set.
	FromLabel, ToLabel string
	HasLabels          bool

	// ANSI escape sequences used by textdiff, empty strings disable coloring.
	Colors ColorConfig
}

// ColorConfig holds the SGR escape sequences for the parts of a unified diff.
type ColorConfig struct {
	Header     string
	HunkHeader string
	Match      string
	Delete     string
	Insert     string
}

// Enabled reports whether any color is configured.
func (cc ColorConfig) Enabled() bool {
	return cc != ColorConfig{}
}

// DefaultRecursionLimit is the default bound for the patience recursion depth. It guards against
// inputs that defeat the unique anchor heuristic at every level.
const DefaultRecursionLimit = 10

// Default is the default configuration.
var Default = Config{
	Context:        3,
	Strategy:       StrategyMyers,
	RecursionLimit: DefaultRecursionLimit,
	CostLimit:      0,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by the function they are passed to.
type Flag int

const (
	Context Flag = 1 << iota
	Strategies
	RecursionLimit
	CostLimit
	Labels
	Colors
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Context:
		return "seqdiff.Context"
	case Strategies:
		return "seqdiff.Strategy"
	case RecursionLimit:
		return "seqdiff.RecursionLimit"
	case CostLimit:
		return "seqdiff.CostLimit"
	case Labels:
		return "textdiff.Labels"
	case Colors:
		return "textdiff.TerminalColors"
	default:
		panic("never reached")
	}
}
