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

// Package rules holds the label tables that drive the filter pipeline and
// the query synthesizer: occasion exclusion rules, genre expansions, and
// mood expansions. The tables ship with built-in defaults and can be
// overridden per-label from configuration.
//
// Matching semantics: all tag comparisons are case-insensitive substring
// containment over the movie's comma-joined tags field. Substring matching
// will also hit partial words ("Political" matches "Political Thriller",
// but "Art" would match "Martial Arts"). That is the documented contract of
// this catalog's descriptor labels; the predicate is isolated behind
// TagsContainAny so the matching rule can be swapped without touching
// filter composition.
package rules

import (
	"sort"
	"strings"

	"github.com/jaycherian/gcp-go-movie-match/internal/config"
)

// RecencyLatest and RecencyModern are the recognized recency window labels.
// They are matched case-insensitively; every other value keeps all movies.
const (
	RecencyLatest = "latest" // Keep movies released within 5 years of the catalog's max year.
	RecencyModern = "modern" // Keep movies released within 10 years of the catalog's max year.
	RecencyAll    = "all"    // Explicit no-op label offered to the form; any unknown value behaves the same.
)

// LatestWindowYears and ModernWindowYears are the window widths, in years,
// measured back from the most recent release year in the full catalog.
const (
	LatestWindowYears = 5
	ModernWindowYears = 10
)

// defaultOccasionRules maps an occasion label to the tag substrings it
// excludes. An occasion with an empty list (or an unknown occasion) passes
// every movie through: this is a blocklist, not an allowlist.
var defaultOccasionRules = map[string][]string{
	"Just watching a movie": {},
	"Movie date":            {"Horror", "Extreme", "Violence"},
	"Family movie time":     {"Violence", "Adult", "Dark", "Crime"},
	"Friends movie time":    {},
	"Binge watch":           {},
	"Solo watch":            {},
}

// defaultGenreMap maps each selectable genre label to the underlying tag
// substrings it expands to. A genre may expand to several tag synonyms.
var defaultGenreMap = map[string][]string{
	"Action":                 {"Action", "Action Epic"},
	"Thriller":               {"Thriller", "Political Thriller", "Spy"},
	"Drama":                  {"Drama", "Political Drama"},
	"Crime":                  {"Crime", "Gangster"},
	"Romance":                {"Romance"},
	"Comedy":                 {"Comedy", "Satire"},
	"Adventure":              {"Adventure"},
	"Horror":                 {"Horror"},
	"Mystery":                {"Mystery"},
	"Biography / True Story": {"Based on true events"},
	"Political":              {"Political"},
	"Social / Realistic":     {"Social issues"},
	"Experimental / Indie":   {"Experimental"},
	"Feel-good":              {"Inspirational", "Feel-Good"},
}

// defaultMoodMap maps a mood label to the terms it contributes to the
// synthesized query text. Moods never filter; they only steer the ranking.
var defaultMoodMap = map[string][]string{
	"Feel-good":         {"Comedy", "Inspirational", "Feel-Good"},
	"Light & fun":       {"Comedy", "Romance"},
	"Emotional":         {"Drama", "Romantic Drama"},
	"Intense":           {"Thriller", "Action", "Crime"},
	"Dark":              {"Crime", "Psychological", "Thriller"},
	"Thought-provoking": {"Political", "Social issues"},
	"Inspiring":         {"Inspirational", "Based on true events"},
}

// RuleSet is an immutable bundle of the three label tables. It is built
// once at startup and shared read-only by every request.
type RuleSet struct {
	occasions map[string][]string
	genres    map[string][]string
	moods     map[string][]string
}

// Default returns a RuleSet carrying the built-in tables.
func Default() *RuleSet {
	return &RuleSet{
		occasions: defaultOccasionRules,
		genres:    defaultGenreMap,
		moods:     defaultMoodMap,
	}
}

// FromConfig returns a RuleSet where any label present in the configuration
// overrides (or extends) the built-in tables. Labels absent from the config
// keep their defaults, so a deployment only declares what it changes.
//
// Inputs:
//   - cfg: The rules section of the application configuration.
//
// Outputs:
//   - *RuleSet: The merged, immutable rule set.
func FromConfig(cfg config.Rules) *RuleSet {
	return &RuleSet{
		occasions: merge(defaultOccasionRules, cfg.Occasions),
		genres:    merge(defaultGenreMap, cfg.Genres),
		moods:     merge(defaultMoodMap, cfg.Moods),
	}
}

// merge copies the base table and lays the overrides on top of it.
func merge(base map[string][]string, overrides map[string][]string) map[string][]string {
	out := make(map[string][]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// ExcludedTags returns the tag substrings excluded by the given occasion.
// Unknown occasions return an empty slice, which the occasion filter treats
// as "pass everything through".
func (r *RuleSet) ExcludedTags(occasion string) []string {
	return r.occasions[occasion]
}

// ExpandGenres returns the union of tag substrings for all selected genre
// labels, preserving selection order. Unknown genre labels contribute
// nothing rather than erroring.
func (r *RuleSet) ExpandGenres(genres []string) []string {
	var out []string
	for _, g := range genres {
		out = append(out, r.genres[g]...)
	}
	return out
}

// ExpandMood returns the query terms the given mood label contributes.
// An empty or unknown mood contributes nothing.
func (r *RuleSet) ExpandMood(mood string) []string {
	if mood == "" {
		return nil
	}
	return r.moods[mood]
}

// Occasions returns the known occasion labels in sorted order.
func (r *RuleSet) Occasions() []string { return sortedKeys(r.occasions) }

// Genres returns the known genre labels in sorted order.
func (r *RuleSet) Genres() []string { return sortedKeys(r.genres) }

// Moods returns the known mood labels in sorted order.
func (r *RuleSet) Moods() []string { return sortedKeys(r.moods) }

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// TagsContainAny is the single tag-matching predicate used by the filter
// pipeline. It reports whether the movie's comma-joined tags field contains
// any of the given substrings, ignoring case. An empty needle list never
// matches.
//
// Inputs:
//   - tags: The movie's raw tags field (e.g. "Drama, Political Thriller").
//   - needles: Candidate substrings from an occasion or genre expansion.
//
// Outputs:
//   - bool: True if at least one needle occurs within the tags field.
func TagsContainAny(tags string, needles []string) bool {
	if len(needles) == 0 {
		return false
	}
	haystack := strings.ToLower(tags)
	for _, n := range needles {
		if n == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
