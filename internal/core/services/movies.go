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

// This file, `movies.go`, defines the MovieService, which serves catalog
// lookups and the selectable option lists the UI builds its form from.
package services

import (
	"fmt"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/engine"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/rules"
)

// MovieService answers direct catalog questions: lookups by id and the
// meta lists (occasions, genres, moods, recency windows) that drive the
// request form. Like the recommendation service it reads the index holder
// per call, so lookups always hit the catalog generation that is live.
type MovieService struct {
	Holder  *engine.IndexHolder
	RuleSet *rules.RuleSet
}

// NewMovieService is the constructor for the MovieService.
func NewMovieService(holder *engine.IndexHolder, ruleSet *rules.RuleSet) *MovieService {
	return &MovieService{Holder: holder, RuleSet: ruleSet}
}

// Get returns the catalog movie with the given id.
//
// Inputs:
//   - id: The catalog identifier of the movie.
//
// Outputs:
//   - *model.Movie: The matching movie.
//   - error: Set when no movie with that id exists or no catalog is loaded.
func (s *MovieService) Get(id string) (*model.Movie, error) {
	index := s.Holder.Current()
	if index == nil {
		return nil, fmt.Errorf("no catalog index is loaded")
	}
	cat := index.Catalog()
	position, ok := cat.PositionOf(id)
	if !ok {
		return nil, fmt.Errorf("movie %q not found", id)
	}
	return cat.Movie(position), nil
}

// Meta returns the selectable values for every request dimension. The
// lists are stable (alphabetical for occasions, genres, and moods) so the
// UI renders deterministically.
func (s *MovieService) Meta() *model.Meta {
	return &model.Meta{
		Occasions: s.RuleSet.Occasions(),
		Genres:    s.RuleSet.Genres(),
		Moods:     s.RuleSet.Moods(),
		Recencies: []string{rules.RecencyLatest, rules.RecencyModern, rules.RecencyAll},
	}
}
