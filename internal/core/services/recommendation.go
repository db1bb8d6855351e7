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

// Package services contains the business logic sitting between the HTTP
// layer and the recommendation pipeline. This file defines the
// RecommendationService, which snapshots the active catalog index, seeds a
// chain context, and runs the filter-and-rank workflow for a single request.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/commands"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/engine"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/rules"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/workflow"
)

// RecommendationService runs the recommendation pipeline against whatever
// catalog index is current at call time. The index holder is read exactly
// once per request, so a concurrent catalog reload never changes the data
// a request is already working with.
type RecommendationService struct {
	Holder   *engine.IndexHolder
	Workflow *workflow.RecommendationWorkflow
}

// NewRecommendationService is the constructor for the RecommendationService.
//
// Inputs:
//   - holder: The atomic holder of the current catalog index.
//   - ruleSet: The active occasion/genre/mood rule tables.
//   - defaultLimit: Result count applied when a request carries none.
//
// Outputs:
//   - *RecommendationService: A service safe for concurrent use.
func NewRecommendationService(holder *engine.IndexHolder, ruleSet *rules.RuleSet, defaultLimit int) *RecommendationService {
	return &RecommendationService{
		Holder:   holder,
		Workflow: workflow.NewRecommendationWorkflow(ruleSet, defaultLimit),
	}
}

// Recommend executes the full pipeline for one request: snapshot the index,
// seed the chain context with the request and the complete candidate set,
// run the workflow, and read the ranked results back out.
//
// Inputs:
//   - ctx: The request context, used for tracing.
//   - request: The caller's occasion, genres, interests, mood, recency,
//     and limit.
//
// Outputs:
//   - []*model.Recommendation: The ranked, truncated results. Never nil;
//     an empty slice means no candidate survived the filters.
//   - error: Joined errors from any failed pipeline step.
func (s *RecommendationService) Recommend(ctx context.Context, request *model.RecommendationRequest) ([]*model.Recommendation, error) {
	index := s.Holder.Current()
	if index == nil {
		return nil, errors.New("no catalog index is loaded")
	}

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	chainCtx.Add(commands.GetRequestParamName(), request)
	chainCtx.Add(commands.GetIndexParamName(), index)
	// The starting candidate set is every position in the catalog; the
	// filters narrow it in place.
	chainCtx.Add(commands.GetCandidatesParamName(), index.Catalog().Positions())

	s.Workflow.Execute(chainCtx)

	if chainCtx.HasErrors() {
		errs := make([]error, 0, len(chainCtx.GetErrors()))
		for name, err := range chainCtx.GetErrors() {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return nil, errors.Join(errs...)
	}

	out, ok := chainCtx.Get(commands.GetRecommendationsParamName()).([]*model.Recommendation)
	if !ok {
		return nil, fmt.Errorf("pipeline produced no recommendation output")
	}
	return out, nil
}
