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

// Package catalog loads and normalizes the movie catalog. This file is the
// CSV loader for the flat file produced by the offline scraper.
//
// Normalization policy (applied per row, never surfaced as row errors):
//   - missing or empty tags/overview become the empty string, never null,
//     so downstream text operations cannot fail on absent fields;
//   - the year column is parsed to an integer, with unparsable values
//     mapped to the model.NoYear marker (not zero) so recency windows
//     exclude them instead of wrongly including them;
//   - the rating column is parsed to a float with an ok flag.
//
// Only two conditions are fatal: the file is absent, or it contains zero
// data rows. No catalog means no possible recommendation.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
)

// Columns is the exact header contract of the catalog file, shared with
// the scraper that produces it.
var Columns = []string{"movie_id", "movie_name", "year", "tags", "overview", "rating", "director", "cast"}

// Load reads the catalog CSV at the given path, normalizes every row, and
// returns the immutable in-memory catalog.
//
// Inputs:
//   - path: Filesystem path of the catalog CSV.
//
// Outputs:
//   - *Catalog: The loaded catalog, row order matching file order.
//   - error: A fatal startup condition: missing file, malformed header, or
//     zero data rows.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	// Some scraped overviews contain stray quotes; be lenient about them
	// the way the original acquisition job's output requires.
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header from %s: %w", path, err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}

	var movies []*model.Movie
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row from %s: %w", path, err)
		}
		movies = append(movies, normalize(record, cols))
	}

	out, err := New(movies)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return out, nil
}

// columnIndex maps the expected column names to their positions in the
// header, so a reordered (but complete) header still loads.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, want := range Columns {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("missing required column %q", want)
		}
	}
	return idx, nil
}

// normalize converts one raw CSV record into a clean movie row, applying
// the safe-default policy for missing or unparsable fields.
func normalize(record []string, cols map[string]int) *model.Movie {
	field := func(name string) string {
		i := cols[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	m := &model.Movie{
		ID:       field("movie_id"),
		Name:     field("movie_name"),
		Year:     parseYear(field("year")),
		Tags:     field("tags"),
		Overview: field("overview"),
		Director: field("director"),
		Cast:     field("cast"),
	}
	if r, err := strconv.ParseFloat(field("rating"), 64); err == nil {
		m.Rating = r
		m.HasRating = true
	}
	return m
}

// parseYear coerces the raw year column to an integer, returning the
// missing marker for anything that does not parse cleanly.
func parseYear(raw string) int {
	y, err := strconv.Atoi(raw)
	if err != nil {
		return model.NoYear
	}
	return y
}
