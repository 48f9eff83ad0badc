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


package textdiff

import (
	"znkr.io/seqdiff"
	"znkr.io/seqdiff/internal/config"
	"znkr.io/seqdiff/textdiff/color"
)

// Labels adds "--- from" and "+++ to" lines in front of the first hunk.
func Labels(from, to string) seqdiff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.FromLabel, cfg.ToLabel = from, to
		cfg.HasLabels = true
		return config.Labels
	}
}

// TerminalColors colors the output using ANSI escape sequences. Without options, the colors of
// [color.Default] are used.
func TerminalColors(opts ...color.Option) seqdiff.Option {
	if len(opts) == 0 {
		opts = color.Default
	}
	var cc config.ColorConfig
	for _, opt := range opts {
		opt(&cc)
	}
	return func(cfg *config.Config) config.Flag {
		cfg.Colors = cc
		return config.Colors
	}
}
