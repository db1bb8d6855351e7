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
// into pipelines. This file defines the occasion filter, the first of the
// three hard filters in the recommendation pipeline.
//
// The occasion filter is a pure blocklist: the occasion label maps to a
// set of excluded tag substrings, and a movie is removed when its tags
// contain any of them. An occasion with no exclusions, or an unknown
// occasion label, passes every candidate through unchanged. Absence of a
// matching exclusion always keeps the movie.
package commands

import (
	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/engine"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/rules"
)

// OccasionFilter removes candidates whose tags hit the occasion's
// exclusion list.
type OccasionFilter struct {
	cor.BaseCommand
	rules *rules.RuleSet
}

// NewOccasionFilter is the constructor for the OccasionFilter command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - ruleSet: The active rule tables.
//
// Outputs:
//   - *OccasionFilter: A pointer to the newly instantiated command.
func NewOccasionFilter(name string, ruleSet *rules.RuleSet) *OccasionFilter {
	out := &OccasionFilter{BaseCommand: *cor.NewBaseCommand(name), rules: ruleSet}
	out.InputParamName = GetCandidatesParamName()
	out.OutputParamName = GetCandidatesParamName()
	return out
}

// IsExecutable requires the request and the candidate set to be present.
func (f *OccasionFilter) IsExecutable(context cor.Context) bool {
	return context != nil &&
		context.Get(GetRequestParamName()) != nil &&
		context.Get(GetIndexParamName()) != nil &&
		context.Get(f.GetInputParam()) != nil
}

// Execute narrows the candidate set by the occasion's exclusion rules.
//
// Inputs:
//   - context: The shared cor.Context for this pipeline execution.
func (f *OccasionFilter) Execute(context cor.Context) {
	request := context.Get(GetRequestParamName()).(*model.RecommendationRequest)
	index := context.Get(GetIndexParamName()).(*engine.CatalogIndex)
	candidates := context.Get(f.GetInputParam()).([]int)

	excluded := f.rules.ExcludedTags(request.Occasion)
	if len(excluded) == 0 {
		// Unknown occasion or an occasion with no exclusions: no filtering.
		f.GetSuccessCounter().Add(context.GetContext(), 1)
		context.Add(f.GetOutputParam(), candidates)
		return
	}

	out := make([]int, 0, len(candidates))
	for _, pos := range candidates {
		if !rules.TagsContainAny(index.Catalog().Movie(pos).Tags, excluded) {
			out = append(out, pos)
		}
	}

	f.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(f.GetOutputParam(), out)
}
