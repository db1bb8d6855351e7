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

// Package workflow defines the high-level orchestrations, combining
// commands into coherent pipelines. This file implements the per-request
// recommendation pipeline.
package workflow

import (
	"github.com/jaycherian/gcp-go-movie-match/internal/core/commands"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/rules"
)

// RecommendationWorkflow is the chain behind every recommendation call:
// three hard filters narrowing the candidate set, query synthesis, and the
// similarity ranker. The workflow itself is stateless with respect to the
// catalog; each execution reads the index snapshot the caller placed in
// the chain context, which is what makes catalog hot-swaps safe for
// in-flight requests.
type RecommendationWorkflow struct {
	cor.BaseCommand
	rules        *rules.RuleSet
	defaultLimit int
	chain        cor.Chain
}

// NewRecommendationWorkflow is the constructor for the recommendation
// pipeline.
//
// Inputs:
//   - ruleSet: The active occasion/genre/mood rule tables.
//   - defaultLimit: Result count applied when a request carries none.
//
// Outputs:
//   - *RecommendationWorkflow: The assembled, reusable workflow. It is
//     safe for concurrent executions because every execution gets its own
//     chain context.
func NewRecommendationWorkflow(ruleSet *rules.RuleSet, defaultLimit int) *RecommendationWorkflow {
	out := &RecommendationWorkflow{
		BaseCommand:  *cor.NewBaseCommand("recommendation-workflow"),
		rules:        ruleSet,
		defaultLimit: defaultLimit,
	}
	out.initializeChain()
	return out
}

// Execute runs the recommendation pipeline by invoking the underlying chain.
//
// Inputs:
//   - context: The chain context, pre-populated by the caller with the
//     request, the index snapshot, and the full starting candidate set.
func (w *RecommendationWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

// initializeChain builds the command sequence. The filter order is
// occasion, genre, recency; composition is by sequential narrowing of one
// shared candidate set, so each filter only ever shrinks what the previous
// one kept.
func (w *RecommendationWorkflow) initializeChain() {
	out := cor.NewBaseChain(w.GetName())

	// Step 1: occasion exclusion. Blocklist semantics; unknown occasions
	// pass everything through.
	out.AddCommand(commands.NewOccasionFilter("filter-occasion", w.rules))

	// Step 2: genre inclusion. OR across the selected genres' tag
	// expansions; no selection disables the step.
	out.AddCommand(commands.NewGenreFilter("filter-genre", w.rules))

	// Step 3: recency window, anchored to the full catalog's max year.
	out.AddCommand(commands.NewRecencyFilter("filter-recency"))

	// Step 4: synthesize the query text from genres, interests, and the
	// mood expansion.
	out.AddCommand(commands.NewQueryBuilder("build-query", w.rules))

	// Step 5: score the survivors by cosine similarity, order, truncate.
	out.AddCommand(commands.NewSimilarityRanker("rank-by-similarity", w.defaultLimit))

	w.chain = out
}
