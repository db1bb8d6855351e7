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
// into pipelines. This file defines the query builder, which deterministically
// converts the user's structured selections into the single text query the
// ranker scores against.
//
// The query is a space-joined concatenation in fixed order: every selected
// genre label, then every interest label, then the terms the mood label
// expands to. The mood expands through the same kind of label table the
// genre filter uses, but it only contributes query text and never filters.
// Absent inputs contribute nothing, so the result may legitimately be the
// empty string; that degenerates to the zero vector downstream and is not
// an error.
package commands

import (
	"strings"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/rules"
)

// QueryBuilder synthesizes the ranking query from the request's genre,
// interest, and mood selections.
type QueryBuilder struct {
	cor.BaseCommand
	rules *rules.RuleSet
}

// NewQueryBuilder is the constructor for the QueryBuilder command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - ruleSet: The active rule tables (for the mood expansion).
//
// Outputs:
//   - *QueryBuilder: A pointer to the newly instantiated command.
func NewQueryBuilder(name string, ruleSet *rules.RuleSet) *QueryBuilder {
	out := &QueryBuilder{BaseCommand: *cor.NewBaseCommand(name), rules: ruleSet}
	out.InputParamName = GetRequestParamName()
	out.OutputParamName = GetQueryParamName()
	return out
}

// Execute builds the query string and stores it under the query parameter.
//
// Inputs:
//   - context: The shared cor.Context for this pipeline execution.
func (q *QueryBuilder) Execute(context cor.Context) {
	request := context.Get(q.GetInputParam()).(*model.RecommendationRequest)

	var terms []string
	terms = append(terms, request.Genres...)
	terms = append(terms, request.Interests...)
	terms = append(terms, q.rules.ExpandMood(request.Mood)...)

	q.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(q.GetOutputParam(), strings.Join(terms, " "))
}
