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
// into pipelines. This file defines the similarity ranker, the scoring and
// ordering step at the end of the recommendation pipeline.
//
// Logic flow:
//
//  1. If the filter pipeline emptied the candidate set, short-circuit with
//     an empty result before any vector work happens.
//  2. Project the synthesized query into the vector space. An empty or
//     fully out-of-vocabulary query becomes the zero vector; cosine
//     against a zero vector is 0 for every candidate, so all scores tie.
//  3. Gather each candidate's precomputed document vector by catalog row
//     position (this is why row order stability is an invariant) and
//     attach its cosine similarity.
//  4. Stable-sort descending by score, so ties keep original catalog
//     order, truncate to the requested limit, and emit only the
//     display-relevant fields.
package commands

import (
	"sort"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/engine"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/tfidf"
)

// SimilarityRanker scores the surviving candidates against the synthesized
// query and emits the ordered top-N recommendations.
type SimilarityRanker struct {
	cor.BaseCommand
	defaultLimit int
}

// NewSimilarityRanker is the constructor for the SimilarityRanker command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - defaultLimit: The result count used when the request does not carry
//     a positive limit.
//
// Outputs:
//   - *SimilarityRanker: A pointer to the newly instantiated command.
func NewSimilarityRanker(name string, defaultLimit int) *SimilarityRanker {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	out := &SimilarityRanker{BaseCommand: *cor.NewBaseCommand(name), defaultLimit: defaultLimit}
	out.InputParamName = GetCandidatesParamName()
	out.OutputParamName = GetRecommendationsParamName()
	return out
}

// IsExecutable requires the candidate set, the query, and the index.
func (r *SimilarityRanker) IsExecutable(context cor.Context) bool {
	return context != nil &&
		context.Get(r.GetInputParam()) != nil &&
		context.Get(GetQueryParamName()) != nil &&
		context.Get(GetIndexParamName()) != nil &&
		context.Get(GetRequestParamName()) != nil
}

// Execute scores, orders, and truncates the candidate set.
//
// Inputs:
//   - context: The shared cor.Context for this pipeline execution.
func (r *SimilarityRanker) Execute(context cor.Context) {
	request := context.Get(GetRequestParamName()).(*model.RecommendationRequest)
	index := context.Get(GetIndexParamName()).(*engine.CatalogIndex)
	candidates := context.Get(r.GetInputParam()).([]int)
	query := context.Get(GetQueryParamName()).(string)

	// Zero-candidate short circuit: no similarity computation at all.
	if len(candidates) == 0 {
		r.GetSuccessCounter().Add(context.GetContext(), 1)
		context.Add(r.GetOutputParam(), []*model.Recommendation{})
		return
	}

	queryVector := index.Transform(query)

	type scored struct {
		position int
		score    float64
	}
	rows := make([]scored, len(candidates))
	for i, pos := range candidates {
		rows[i] = scored{position: pos, score: tfidf.Cosine(queryVector, index.DocVector(pos))}
	}

	// Stable sort: equal scores keep original catalog order, which is the
	// defined tiebreak and what makes a zero-vector query return the
	// leading survivors in catalog order.
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].score > rows[b].score
	})

	limit := request.Limit
	if limit <= 0 {
		limit = r.defaultLimit
	}
	if limit > len(rows) {
		limit = len(rows)
	}

	out := make([]*model.Recommendation, 0, limit)
	for _, row := range rows[:limit] {
		m := index.Catalog().Movie(row.position)
		out = append(out, &model.Recommendation{
			Name:     m.Name,
			Year:     m.Year,
			Tags:     m.Tags,
			Overview: m.Overview,
			Score:    row.score,
		})
	}

	r.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(r.GetOutputParam(), out)
}
