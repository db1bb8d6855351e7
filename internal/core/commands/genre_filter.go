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
// into pipelines. This file defines the genre filter, the inclusion step
// of the recommendation pipeline.
//
// Each selected genre label expands to one or more tag synonyms, and a
// movie is kept when its tags contain at least one substring from any
// selected genre's expansion: OR semantics across genres and their
// synonyms. Selecting no genres disables the filter entirely.
package commands

import (
	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/engine"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/rules"
)

// GenreFilter keeps candidates whose tags match any selected genre's
// expansion.
type GenreFilter struct {
	cor.BaseCommand
	rules *rules.RuleSet
}

// NewGenreFilter is the constructor for the GenreFilter command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - ruleSet: The active rule tables.
//
// Outputs:
//   - *GenreFilter: A pointer to the newly instantiated command.
func NewGenreFilter(name string, ruleSet *rules.RuleSet) *GenreFilter {
	out := &GenreFilter{BaseCommand: *cor.NewBaseCommand(name), rules: ruleSet}
	out.InputParamName = GetCandidatesParamName()
	out.OutputParamName = GetCandidatesParamName()
	return out
}

// IsExecutable requires the request and the candidate set to be present.
func (f *GenreFilter) IsExecutable(context cor.Context) bool {
	return context != nil &&
		context.Get(GetRequestParamName()) != nil &&
		context.Get(GetIndexParamName()) != nil &&
		context.Get(f.GetInputParam()) != nil
}

// Execute narrows the candidate set to movies matching at least one
// selected genre expansion.
//
// Inputs:
//   - context: The shared cor.Context for this pipeline execution.
func (f *GenreFilter) Execute(context cor.Context) {
	request := context.Get(GetRequestParamName()).(*model.RecommendationRequest)
	index := context.Get(GetIndexParamName()).(*engine.CatalogIndex)
	candidates := context.Get(f.GetInputParam()).([]int)

	if len(request.Genres) == 0 {
		// No genres selected means no genre filtering.
		f.GetSuccessCounter().Add(context.GetContext(), 1)
		context.Add(f.GetOutputParam(), candidates)
		return
	}

	// Union of tag synonyms across every selected genre. Unknown genre
	// labels expand to nothing; if the whole selection is unknown the
	// expansion is empty and nothing can match.
	included := f.rules.ExpandGenres(request.Genres)

	out := make([]int, 0, len(candidates))
	for _, pos := range candidates {
		if rules.TagsContainAny(index.Catalog().Movie(pos).Tags, included) {
			out = append(out, pos)
		}
	}

	f.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(f.GetOutputParam(), out)
}
