// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package commands provides the concrete Command implementations composed
// into pipelines. This file defines the recency filter, the final hard
// filter of the recommendation pipeline.
//
// The window is always anchored to the most recent release year of the
// FULL catalog, never of the already-filtered subset, so it is identical
// regardless of where the filter sits in the pipeline. Rows whose year
// failed to parse carry the missing marker and fall outside every window.
package commands

import (
	"strings"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/engine"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/rules"
)

// RecencyFilter keeps candidates inside the requested release-year window.
type RecencyFilter struct {
	cor.BaseCommand
}

// NewRecencyFilter is the constructor for the RecencyFilter command.
func NewRecencyFilter(name string) *RecencyFilter {
	out := &RecencyFilter{BaseCommand: *cor.NewBaseCommand(name)}
	out.InputParamName = GetCandidatesParamName()
	out.OutputParamName = GetCandidatesParamName()
	return out
}

// IsExecutable requires the request and the candidate set to be present.
func (f *RecencyFilter) IsExecutable(context cor.Context) bool {
	return context != nil &&
		context.Get(GetRequestParamName()) != nil &&
		context.Get(GetIndexParamName()) != nil &&
		context.Get(f.GetInputParam()) != nil
}

// Execute narrows the candidate set to the requested recency window.
//
// Inputs:
//   - context: The shared cor.Context for this pipeline execution.
func (f *RecencyFilter) Execute(context cor.Context) {
	request := context.Get(GetRequestParamName()).(*model.RecommendationRequest)
	index := context.Get(GetIndexParamName()).(*engine.CatalogIndex)
	candidates := context.Get(f.GetInputParam()).([]int)

	// Labels are matched case-insensitively; any value other than the two
	// window labels (including empty) keeps all movies.
	var window int
	switch strings.ToLower(strings.TrimSpace(request.Recency)) {
	case rules.RecencyLatest:
		window = rules.LatestWindowYears
	case rules.RecencyModern:
		window = rules.ModernWindowYears
	default:
		f.GetSuccessCounter().Add(context.GetContext(), 1)
		context.Add(f.GetOutputParam(), candidates)
		return
	}

	maxYear, ok := index.Catalog().MaxYear()
	if !ok {
		// No row in the whole catalog carries a parsed year, so a year
		// window cannot keep anything.
		f.GetSuccessCounter().Add(context.GetContext(), 1)
		context.Add(f.GetOutputParam(), []int{})
		return
	}
	cutoff := maxYear - window

	out := make([]int, 0, len(candidates))
	for _, pos := range candidates {
		m := index.Catalog().Movie(pos)
		if m.Year != model.NoYear && m.Year >= cutoff {
			out = append(out, pos)
		}
	}

	f.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(f.GetOutputParam(), out)
}
