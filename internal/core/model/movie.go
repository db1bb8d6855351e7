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

// Package model defines the core data structures for the application.
// This file contains the movie catalog record and the request/response
// structures of the recommendation engine.
package model

// NoYear is the missing-year marker assigned when the catalog's year column
// cannot be parsed. A sentinel below any plausible release year keeps such
// rows out of every recency window; zero is deliberately not used because a
// zero year would compare like a real (very old) year.
const NoYear = -1

// Movie is a single catalog entry, one row of the scraped catalog CSV.
// The field order mirrors the catalog file contract:
// movie_id, movie_name, year, tags, overview, rating, director, cast.
type Movie struct {
	ID        string  `json:"movie_id"`   // Opaque stable identifier assigned at scrape time, never reused.
	Name      string  `json:"movie_name"` // Display title, required but not unique.
	Year      int     `json:"year"`       // Release year, or NoYear when the source value was unparsable.
	Tags      string  `json:"tags"`       // Comma-joined descriptor labels; semantically a set, matched case-insensitively.
	Overview  string  `json:"overview"`   // Freeform synopsis text, possibly empty.
	Rating    float64 `json:"rating"`     // Aggregate rating captured at scrape time; meaningful only when HasRating is true.
	HasRating bool    `json:"has_rating"` // Whether the rating column parsed to a number.
	Director  string  `json:"director"`   // Informational only, never used by filters or ranking.
	Cast      string  `json:"cast"`       // Informational only, never used by filters or ranking.
}

// HasYear reports whether the movie carries a parsed release year.
func (m *Movie) HasYear() bool {
	return m.Year != NoYear
}

// CompositeText returns the text the vector space is built from: the
// overview concatenated with the tags. It is always derived on demand from
// the two source fields and never stored or edited independently.
func (m *Movie) CompositeText() string {
	return m.Overview + " " + m.Tags
}

// RecommendationRequest is the ephemeral, per-call input to the engine.
// All label fields are user-facing strings from the presentation form;
// unknown labels degrade to permissive behavior rather than erroring.
type RecommendationRequest struct {
	Occasion  string   `json:"occasion"`  // Single coarse context label (e.g. "Family movie time") driving tag exclusion.
	Genres    []string `json:"genres"`    // Selected genre labels; OR semantics across their expansions. Empty means no genre filtering.
	Interests []string `json:"interests"` // Labels contributing to the query text only; never used for filtering.
	Mood      string   `json:"mood"`      // Mood label expanded to query text only; not a filter.
	Recency   string   `json:"recency"`   // "latest" (last 5 years), "modern" (last 10 years); anything else keeps all movies.
	Limit     int      `json:"limit"`     // Maximum number of results; non-positive values fall back to the configured default.
}

// Recommendation is a single scored result row. Only the display-relevant
// catalog fields are exposed; derived fields such as the composite text and
// the document vectors never leave the engine.
type Recommendation struct {
	Name     string  `json:"movie_name"` // Display title.
	Year     int     `json:"year"`       // Release year, NoYear when unknown.
	Tags     string  `json:"tags"`       // Comma-joined descriptor labels.
	Overview string  `json:"overview"`   // Synopsis text.
	Score    float64 `json:"score"`      // Cosine similarity of the movie against the synthesized query, in [0,1].
}

// Meta lists the selectable labels the presentation form offers. It is
// derived from the active rule tables so the form and the engine can never
// disagree about the available choices.
type Meta struct {
	Occasions []string `json:"occasions"` // Occasion labels in stable sorted order.
	Genres    []string `json:"genres"`    // Genre labels in stable sorted order.
	Moods     []string `json:"moods"`     // Mood labels in stable sorted order.
	Recencies []string `json:"recencies"` // Supported recency window labels.
}
