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


// Package impl dispatches comparisons to the configured alignment strategy.
package impl

import (
	"context"
	"fmt"

	"znkr.io/seqdiff/internal/config"
	"znkr.io/seqdiff/internal/edits"
	"znkr.io/seqdiff/internal/myers"
	"znkr.io/seqdiff/internal/patience"
	"znkr.io/seqdiff/internal/rvecs"
)

// Script returns a shortest edit script that transforms x into y.
func Script[T comparable](ctx context.Context, x, y []T, cfg config.Config) ([]edits.Edit, error) {
	return myers.Diff(ctx, x, y, cfg)
}

// Blocks compares x and y with the strategy selected by cfg and returns the matching blocks,
// terminated by a sentinel.
func Blocks[T comparable](ctx context.Context, x, y []T, cfg config.Config) ([]edits.Block, error) {
	switch cfg.Strategy {
	case config.StrategyMyers:
		script, err := myers.Diff(ctx, x, y, cfg)
		if err != nil {
			return nil, err
		}
		return rvecs.Blocks(rvecs.FromScript(script, len(x), len(y))), nil

	case config.StrategyPatience:
		return patience.Blocks(x, y, cfg.RecursionLimit)

	default:
		panic(fmt.Sprintf("unknown strategy: %v", cfg.Strategy))
	}
}
