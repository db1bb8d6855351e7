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

// Package catalog loads and normalizes the movie catalog. This file defines
// the in-memory Catalog: an immutable, positionally indexed table of movie
// records.
//
// Row order is a hard invariant. The TF-IDF document vectors built over the
// catalog are looked up by row position, not by movie id, so the catalog's
// row order must stay stable for the lifetime of the vector space. All
// id-based lookups go through the PositionOf mapping computed once at
// construction; nothing may reorder or mutate the rows after New returns.
package catalog

import (
	"fmt"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
)

// Catalog is the immutable in-memory movie table. Build it once at process
// start (or during an atomic hot-reload) and share it read-only; it takes
// no locks because no writer ever mutates it post-build.
type Catalog struct {
	movies  []*model.Movie // Rows in stable positional order 0..N-1.
	byID    map[string]int // movie_id -> row position, computed once.
	maxYear int            // Most recent parsed release year across the full catalog.
}

// New builds a Catalog from normalized movie records. The slice order
// becomes the canonical row order.
//
// Inputs:
//   - movies: The normalized movie rows, already cleaned by the loader.
//
// Outputs:
//   - *Catalog: The immutable catalog.
//   - error: An error when the record set is empty, since a catalog with no
//     rows can never produce a recommendation.
func New(movies []*model.Movie) (*Catalog, error) {
	if len(movies) == 0 {
		return nil, fmt.Errorf("catalog has no rows")
	}
	byID := make(map[string]int, len(movies))
	maxYear := model.NoYear
	for i, m := range movies {
		// First occurrence wins; movie_id is unique by contract, so a
		// duplicate would indicate a corrupt scrape rather than valid data.
		if _, exists := byID[m.ID]; !exists {
			byID[m.ID] = i
		}
		if m.HasYear() && m.Year > maxYear {
			maxYear = m.Year
		}
	}
	return &Catalog{movies: movies, byID: byID, maxYear: maxYear}, nil
}

// Len returns the number of rows in the catalog.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Movie returns the row at the given position. Positions come from the
// filter pipeline and are trusted to be in range.
func (c *Catalog) Movie(position int) *model.Movie {
	return c.movies[position]
}

// PositionOf returns the stable row position for a movie id.
func (c *Catalog) PositionOf(id string) (int, bool) {
	pos, ok := c.byID[id]
	return pos, ok
}

// MaxYear returns the most recent parsed release year in the full catalog.
// Recency windows are always anchored here, never to a filtered subset, so
// the window stays identical regardless of filter order. The second return
// is false when no row carried a parsable year.
func (c *Catalog) MaxYear() (int, bool) {
	return c.maxYear, c.maxYear != model.NoYear
}

// Positions returns a fresh slice of every row position, the starting
// candidate set for the filter pipeline.
func (c *Catalog) Positions() []int {
	out := make([]int, len(c.movies))
	for i := range c.movies {
		out[i] = i
	}
	return out
}

// CompositeCorpus returns each row's composite text in row order. This is
// the only input the vector space indexer consumes.
func (c *Catalog) CompositeCorpus() []string {
	out := make([]string, len(c.movies))
	for i, m := range c.movies {
		out[i] = m.CompositeText()
	}
	return out
}
