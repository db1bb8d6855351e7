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

// Package commands_test contains unit tests for the recommendation
// pipeline commands, executed individually against a three-movie fixture
// catalog whose filter outcomes are easy to verify by hand.
package commands_test

import (
	"context"
	"testing"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/catalog"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/commands"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/engine"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/rules"
	test "github.com/jaycherian/gcp-go-movie-match/internal/testutil"
	"github.com/stretchr/testify/assert"
)

// newPipelineContext seeds a chain context the way the recommendation
// service does: request, index snapshot, and the full candidate set.
func newPipelineContext(index *engine.CatalogIndex, request *model.RecommendationRequest) cor.Context {
	out := cor.NewBaseContext()
	out.SetContext(context.Background())
	out.Add(commands.GetRequestParamName(), request)
	out.Add(commands.GetIndexParamName(), index)
	out.Add(commands.GetCandidatesParamName(), index.Catalog().Positions())
	return out
}

func candidates(ctx cor.Context) []int {
	return ctx.Get(commands.GetCandidatesParamName()).([]int)
}

// TestOccasionFilterBlocklist verifies that "Movie date" removes the
// horror title and that the survivors keep catalog order.
func TestOccasionFilterBlocklist(t *testing.T) {
	index := test.GetTestIndex(t)
	ctx := newPipelineContext(index, &model.RecommendationRequest{Occasion: "Movie date"})

	commands.NewOccasionFilter("filter-occasion", rules.Default()).Execute(ctx)

	assert.Equal(t, []int{1, 2}, candidates(ctx))
	assert.False(t, ctx.HasErrors())
}

// TestOccasionFilterUnknownOccasionPassesThrough verifies the permissive
// default: an unrecognized occasion filters nothing.
func TestOccasionFilterUnknownOccasionPassesThrough(t *testing.T) {
	index := test.GetTestIndex(t)
	ctx := newPipelineContext(index, &model.RecommendationRequest{Occasion: "Rainy Tuesday"})

	commands.NewOccasionFilter("filter-occasion", rules.Default()).Execute(ctx)

	assert.Equal(t, []int{0, 1, 2}, candidates(ctx))
}

// TestGenreFilterKeepsMatches verifies OR-inclusion over the selected
// genres' tag expansions.
func TestGenreFilterKeepsMatches(t *testing.T) {
	index := test.GetTestIndex(t)
	ctx := newPipelineContext(index, &model.RecommendationRequest{Genres: []string{"Romance"}})

	commands.NewGenreFilter("filter-genre", rules.Default()).Execute(ctx)
	assert.Equal(t, []int{1}, candidates(ctx))

	// Two genres OR together: Romance or Crime keeps B and C.
	ctx = newPipelineContext(index, &model.RecommendationRequest{Genres: []string{"Romance", "Crime"}})
	commands.NewGenreFilter("filter-genre", rules.Default()).Execute(ctx)
	assert.Equal(t, []int{1, 2}, candidates(ctx))
}

// TestGenreFilterNoSelectionIsNoOp verifies that an empty genre selection
// disables the filter entirely.
func TestGenreFilterNoSelectionIsNoOp(t *testing.T) {
	index := test.GetTestIndex(t)
	ctx := newPipelineContext(index, &model.RecommendationRequest{})

	commands.NewGenreFilter("filter-genre", rules.Default()).Execute(ctx)

	assert.Equal(t, []int{0, 1, 2}, candidates(ctx))
}

// TestGenreFilterUnknownSelectionMatchesNothing verifies that a selection
// made only of unknown labels expands to nothing and keeps nothing.
func TestGenreFilterUnknownSelectionMatchesNothing(t *testing.T) {
	index := test.GetTestIndex(t)
	ctx := newPipelineContext(index, &model.RecommendationRequest{Genres: []string{"Kaiju"}})

	commands.NewGenreFilter("filter-genre", rules.Default()).Execute(ctx)

	assert.Empty(t, candidates(ctx))
}

// TestRecencyFilterWindows verifies both window labels against the fixture
// catalog, whose max year is 2024. The labels must match
// case-insensitively and anything else keeps all candidates.
func TestRecencyFilterWindows(t *testing.T) {
	index := test.GetTestIndex(t)

	// latest: cutoff 2019 keeps the 2024 and 2023 titles.
	ctx := newPipelineContext(index, &model.RecommendationRequest{Recency: "latest"})
	commands.NewRecencyFilter("filter-recency").Execute(ctx)
	assert.Equal(t, []int{0, 2}, candidates(ctx))

	// Labels are case-insensitive.
	ctx = newPipelineContext(index, &model.RecommendationRequest{Recency: " Modern "})
	commands.NewRecencyFilter("filter-recency").Execute(ctx)
	assert.Equal(t, []int{0, 2}, candidates(ctx))

	// "all" and garbage both keep everything.
	for _, label := range []string{"all", "", "whenever"} {
		ctx = newPipelineContext(index, &model.RecommendationRequest{Recency: label})
		commands.NewRecencyFilter("filter-recency").Execute(ctx)
		assert.Equal(t, []int{0, 1, 2}, candidates(ctx), "label %q", label)
	}
}

// TestRecencyFilterAnchorsToFullCatalog verifies the anchoring invariant:
// the window is measured from the full catalog's max year even when the
// newest movie was already filtered out of the candidate set.
func TestRecencyFilterAnchorsToFullCatalog(t *testing.T) {
	index := test.GetTestIndex(t)

	ctx := newPipelineContext(index, &model.RecommendationRequest{Recency: "latest"})
	// Simulate an earlier filter having removed the 2024 title.
	ctx.Add(commands.GetCandidatesParamName(), []int{1, 2})

	commands.NewRecencyFilter("filter-recency").Execute(ctx)

	// Cutoff stays 2024-5=2019, so the 2010 title is still out.
	assert.Equal(t, []int{2}, candidates(ctx))
}

// TestRecencyFilterExcludesUnknownYears verifies that rows without a
// parsed year never enter a recency window.
func TestRecencyFilterExcludesUnknownYears(t *testing.T) {
	cat, err := catalog.New([]*model.Movie{
		{ID: "a", Name: "Dated", Year: 2024, Overview: "x"},
		{ID: "b", Name: "Undated", Year: model.NoYear, Overview: "y"},
	})
	assert.NoError(t, err)
	index := engine.BuildIndex(cat, 0)

	ctx := newPipelineContext(index, &model.RecommendationRequest{Recency: "modern"})
	commands.NewRecencyFilter("filter-recency").Execute(ctx)

	assert.Equal(t, []int{0}, candidates(ctx))
}

// TestQueryBuilderJoinsSelections verifies that the query text is the
// space-joined genres, interests, and mood expansion, in that order.
func TestQueryBuilderJoinsSelections(t *testing.T) {
	index := test.GetTestIndex(t)
	ctx := newPipelineContext(index, &model.RecommendationRequest{
		Genres:    []string{"Romance", "Comedy"},
		Interests: []string{"weddings"},
		Mood:      "Light & fun",
	})

	commands.NewQueryBuilder("build-query", rules.Default()).Execute(ctx)

	query := ctx.Get(commands.GetQueryParamName()).(string)
	assert.Equal(t, "Romance Comedy weddings Comedy Romance", query)
}

// TestQueryBuilderEmptyRequest verifies that a request with no selections
// produces the empty query rather than an error.
func TestQueryBuilderEmptyRequest(t *testing.T) {
	index := test.GetTestIndex(t)
	ctx := newPipelineContext(index, &model.RecommendationRequest{})

	commands.NewQueryBuilder("build-query", rules.Default()).Execute(ctx)

	assert.Equal(t, "", ctx.Get(commands.GetQueryParamName()).(string))
}

// TestSimilarityRankerOrdersByScore verifies that the ranker puts the
// best-matching title first and carries the display fields through.
func TestSimilarityRankerOrdersByScore(t *testing.T) {
	index := test.GetTestIndex(t)
	ctx := newPipelineContext(index, &model.RecommendationRequest{})
	ctx.Add(commands.GetQueryParamName(), "Romance love weddings")

	commands.NewSimilarityRanker("rank-by-similarity", 10).Execute(ctx)

	out := ctx.Get(commands.GetRecommendationsParamName()).([]*model.Recommendation)
	assert.Equal(t, 3, len(out))
	assert.Equal(t, "Monsoon Wedding Crashers", out[0].Name)
	assert.Equal(t, 2010, out[0].Year)
	assert.Greater(t, out[0].Score, out[1].Score)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Score, out[i].Score)
	}
}

// TestSimilarityRankerLimit verifies both the request limit and the
// configured default limit bound the result count.
func TestSimilarityRankerLimit(t *testing.T) {
	index := test.GetTestIndex(t)

	ctx := newPipelineContext(index, &model.RecommendationRequest{Limit: 1})
	ctx.Add(commands.GetQueryParamName(), "drama")
	commands.NewSimilarityRanker("rank-by-similarity", 10).Execute(ctx)
	out := ctx.Get(commands.GetRecommendationsParamName()).([]*model.Recommendation)
	assert.Equal(t, 1, len(out))

	// Non-positive request limit falls back to the configured default.
	ctx = newPipelineContext(index, &model.RecommendationRequest{Limit: 0})
	ctx.Add(commands.GetQueryParamName(), "drama")
	commands.NewSimilarityRanker("rank-by-similarity", 2).Execute(ctx)
	out = ctx.Get(commands.GetRecommendationsParamName()).([]*model.Recommendation)
	assert.Equal(t, 2, len(out))
}

// TestSimilarityRankerEmptyQueryKeepsCatalogOrder verifies the zero-vector
// contract end to end: every score is 0 and the stable sort preserves
// catalog order.
func TestSimilarityRankerEmptyQueryKeepsCatalogOrder(t *testing.T) {
	index := test.GetTestIndex(t)
	ctx := newPipelineContext(index, &model.RecommendationRequest{})
	ctx.Add(commands.GetQueryParamName(), "")

	commands.NewSimilarityRanker("rank-by-similarity", 10).Execute(ctx)

	out := ctx.Get(commands.GetRecommendationsParamName()).([]*model.Recommendation)
	assert.Equal(t, 3, len(out))
	assert.Equal(t, "Blood Harvest", out[0].Name)
	assert.Equal(t, "Monsoon Wedding Crashers", out[1].Name)
	assert.Equal(t, "The Long Verdict", out[2].Name)
	for _, r := range out {
		assert.Equal(t, 0.0, r.Score)
	}
}

// TestSimilarityRankerZeroCandidates verifies the empty-set short circuit:
// an empty candidate list yields an empty, non-nil result.
func TestSimilarityRankerZeroCandidates(t *testing.T) {
	index := test.GetTestIndex(t)
	ctx := newPipelineContext(index, &model.RecommendationRequest{})
	ctx.Add(commands.GetCandidatesParamName(), []int{})
	ctx.Add(commands.GetQueryParamName(), "anything at all")

	commands.NewSimilarityRanker("rank-by-similarity", 10).Execute(ctx)

	out := ctx.Get(commands.GetRecommendationsParamName()).([]*model.Recommendation)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
