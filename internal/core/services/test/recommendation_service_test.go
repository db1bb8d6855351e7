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

// Package services_test contains the test suite for the services package.
// This file runs the full recommendation pipeline end to end against the
// fixture catalog and checks the behavioral contracts a caller relies on.
package services_test

import (
	"context"
	"testing"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/engine"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/rules"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/services"
	test "github.com/jaycherian/gcp-go-movie-match/internal/testutil"
	"github.com/zeebo/assert"
)

// newService builds a recommendation service over the fixture catalog.
func newService(t *testing.T) *services.RecommendationService {
	holder := engine.NewIndexHolder(test.GetTestIndex(t))
	return services.NewRecommendationService(holder, rules.Default(), 10)
}

// TestRecommendDateNight runs the canonical scenario: a "Movie date"
// occasion with a Romance genre selection must return exactly the
// romantic comedy. The horror title falls to the occasion blocklist and
// the drama falls to the genre filter.
func TestRecommendDateNight(t *testing.T) {
	svc := newService(t)

	out, err := svc.Recommend(context.Background(), &model.RecommendationRequest{
		Occasion: "Movie date",
		Genres:   []string{"Romance"},
		Recency:  "all",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out))
	assert.Equal(t, "Monsoon Wedding Crashers", out[0].Name)
	assert.True(t, out[0].Score > 0)
}

// TestRecommendBlocklistPurity verifies that no result ever carries an
// excluded tag, regardless of how well it would have scored.
func TestRecommendBlocklistPurity(t *testing.T) {
	svc := newService(t)

	// A query that would rank the horror title first if it were allowed.
	out, err := svc.Recommend(context.Background(), &model.RecommendationRequest{
		Occasion:  "Family movie time",
		Interests: []string{"masked", "killer", "village"},
	})
	assert.NoError(t, err)
	for _, r := range out {
		assert.False(t, rules.TagsContainAny(r.Tags, []string{"Violence", "Adult", "Dark", "Crime"}))
	}
}

// TestRecommendFamilyTimeBlocklistIsExact verifies the blocklist matches
// only its own descriptors: "Family movie time" excludes Violence, Adult,
// Dark, and Crime, so a title tagged only "Horror, Gore" survives the
// occasion filter and is removed by the genre selection instead.
func TestRecommendFamilyTimeBlocklistIsExact(t *testing.T) {
	movies := test.GetTestMovies()
	movies[0].Tags = "Horror, Gore"
	holder := engine.NewIndexHolder(buildIndex(t, movies))
	svc := services.NewRecommendationService(holder, rules.Default(), 10)

	// Occasion alone removes only titles carrying an excluded descriptor:
	// the pure horror title survives, while the courtroom drama falls to
	// its "Crime" tag.
	out, err := svc.Recommend(context.Background(), &model.RecommendationRequest{
		Occasion: "Family movie time",
		Recency:  "all",
	})
	assert.NoError(t, err)
	names := make([]string, 0, len(out))
	for _, r := range out {
		names = append(names, r.Name)
	}
	assert.DeepEqual(t, []string{"Blood Harvest", "Monsoon Wedding Crashers"}, names)

	// The full scenario: the genre selection, not the occasion, is what
	// finally drops the horror title.
	out, err = svc.Recommend(context.Background(), &model.RecommendationRequest{
		Occasion: "Family movie time",
		Genres:   []string{"Romance"},
		Recency:  "all",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out))
	assert.Equal(t, "Monsoon Wedding Crashers", out[0].Name)
}

// TestRecommendIsIdempotent verifies that the same request against the
// same catalog returns identical results, order included.
func TestRecommendIsIdempotent(t *testing.T) {
	svc := newService(t)
	request := &model.RecommendationRequest{
		Occasion: "Just watching a movie",
		Genres:   []string{"Drama", "Comedy"},
		Mood:     "Emotional",
	}

	first, err := svc.Recommend(context.Background(), request)
	assert.NoError(t, err)
	second, err := svc.Recommend(context.Background(), request)
	assert.NoError(t, err)

	assert.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

// TestRecommendEmptyRequestReturnsCatalogOrder verifies the degenerate
// request: no filters and an empty query yield the leading catalog rows
// with zero scores.
func TestRecommendEmptyRequestReturnsCatalogOrder(t *testing.T) {
	svc := newService(t)

	out, err := svc.Recommend(context.Background(), &model.RecommendationRequest{})
	assert.NoError(t, err)
	assert.Equal(t, 3, len(out))
	assert.Equal(t, "Blood Harvest", out[0].Name)
	assert.Equal(t, 0.0, out[0].Score)
}

// TestRecommendNoSurvivors verifies that a filter combination keeping
// nothing returns an empty result, not an error.
func TestRecommendNoSurvivors(t *testing.T) {
	svc := newService(t)

	out, err := svc.Recommend(context.Background(), &model.RecommendationRequest{
		Occasion: "Movie date",
		Genres:   []string{"Horror"},
	})
	assert.NoError(t, err)
	assert.NotNil(t, out)
	assert.Equal(t, 0, len(out))
}

// TestRecommendNoIndexLoaded verifies the error path when no catalog has
// been published yet.
func TestRecommendNoIndexLoaded(t *testing.T) {
	svc := services.NewRecommendationService(engine.NewIndexHolder(nil), rules.Default(), 10)

	_, err := svc.Recommend(context.Background(), &model.RecommendationRequest{})
	assert.Error(t, err)
}

// TestRecommendSeesSwappedCatalog verifies the hot-reload contract: after
// the holder swaps in a new index, the next request runs against it.
func TestRecommendSeesSwappedCatalog(t *testing.T) {
	holder := engine.NewIndexHolder(test.GetTestIndex(t))
	svc := services.NewRecommendationService(holder, rules.Default(), 10)

	out, err := svc.Recommend(context.Background(), &model.RecommendationRequest{})
	assert.NoError(t, err)
	assert.Equal(t, 3, len(out))

	// Swap in a one-movie catalog and ask again.
	small := test.GetTestMovies()[:1]
	holder.Swap(buildIndex(t, small))

	out, err = svc.Recommend(context.Background(), &model.RecommendationRequest{})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out))
	assert.Equal(t, "Blood Harvest", out[0].Name)
}
