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


package seqdiff

import "znkr.io/seqdiff/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// StrategyKind selects the alignment algorithm used by [Align].
type StrategyKind = config.Strategy

const (
	StrategyMyers    = config.StrategyMyers    // Shortest edit script (default)
	StrategyPatience = config.StrategyPatience // Anchored on unique elements
)

// Context sets the number of matches to include as a prefix and postfix for hunks returned by
// [GroupedOpcodes]. The default is 3.
func Context(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Context = max(0, n)
		return config.Context
	}
}

// Strategy selects the alignment algorithm. The default is [StrategyMyers].
func Strategy(s StrategyKind) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Strategy = s
		return config.Strategies
	}
}

// RecursionLimit sets the maximum recursion depth of the patience strategy. The default is 10.
func RecursionLimit(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.RecursionLimit = max(0, n)
		return config.RecursionLimit
	}
}

// CostLimit bounds the number of search iterations of Myers' algorithm. Each iteration extends
// the search by one edit, a diff with D edits needs about D/2 iterations per recursion level. The
// default of 0 means no limit.
func CostLimit(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.CostLimit = max(0, n)
		return config.CostLimit
	}
}
