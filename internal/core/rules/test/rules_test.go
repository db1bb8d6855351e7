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

// Package rules_test contains the test suite for the label rule tables and
// the shared tag-matching predicate.
package rules_test

import (
	"testing"

	"github.com/jaycherian/gcp-go-movie-match/internal/config"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/rules"
	"github.com/stretchr/testify/assert"
)

// TestTagsContainAny exercises the single matching predicate: substring
// containment, ignoring case, with an empty needle list never matching.
func TestTagsContainAny(t *testing.T) {
	tags := "Drama, Political Thriller, Based on true events"

	assert.True(t, rules.TagsContainAny(tags, []string{"Thriller"}))
	assert.True(t, rules.TagsContainAny(tags, []string{"political"}), "matching is case-insensitive")
	assert.True(t, rules.TagsContainAny(tags, []string{"Horror", "Drama"}), "any needle suffices")
	assert.True(t, rules.TagsContainAny(tags, []string{"Politic"}), "partial-word containment is the contract")

	assert.False(t, rules.TagsContainAny(tags, []string{"Horror"}))
	assert.False(t, rules.TagsContainAny(tags, nil), "empty needle list never matches")
	assert.False(t, rules.TagsContainAny(tags, []string{""}), "empty needles are skipped")
	assert.False(t, rules.TagsContainAny("", []string{"Drama"}))
}

// TestDefaultOccasionRules verifies the built-in blocklists, including the
// permissive occasions that exclude nothing.
func TestDefaultOccasionRules(t *testing.T) {
	r := rules.Default()

	assert.Equal(t, []string{"Horror", "Extreme", "Violence"}, r.ExcludedTags("Movie date"))
	assert.Equal(t, []string{"Violence", "Adult", "Dark", "Crime"}, r.ExcludedTags("Family movie time"))
	assert.Empty(t, r.ExcludedTags("Binge watch"))
	assert.Empty(t, r.ExcludedTags("never heard of it"), "unknown occasions exclude nothing")
}

// TestExpandGenres verifies that genre selections expand to the union of
// their tag synonyms in selection order, with unknown labels contributing
// nothing.
func TestExpandGenres(t *testing.T) {
	r := rules.Default()

	expanded := r.ExpandGenres([]string{"Thriller", "Feel-good", "Underwater Basket Weaving"})
	assert.Equal(t, []string{"Thriller", "Political Thriller", "Spy", "Inspirational", "Feel-Good"}, expanded)

	assert.Empty(t, r.ExpandGenres(nil))
}

// TestExpandMood verifies the mood table lookup and its empty/unknown
// behavior.
func TestExpandMood(t *testing.T) {
	r := rules.Default()

	assert.Equal(t, []string{"Thriller", "Action", "Crime"}, r.ExpandMood("Intense"))
	assert.Empty(t, r.ExpandMood(""))
	assert.Empty(t, r.ExpandMood("Bored"))
}

// TestFromConfigMergesOverrides verifies that configured labels replace
// the built-in entry for the same label, new labels extend the table, and
// untouched labels keep their defaults.
func TestFromConfigMergesOverrides(t *testing.T) {
	cfg := config.Rules{
		Occasions: map[string][]string{
			"Movie date": {"Horror"},
			"Work night": {"Slow Burn"},
		},
		Genres: map[string][]string{},
		Moods:  map[string][]string{},
	}
	r := rules.FromConfig(cfg)

	assert.Equal(t, []string{"Horror"}, r.ExcludedTags("Movie date"), "override replaces the default list")
	assert.Equal(t, []string{"Slow Burn"}, r.ExcludedTags("Work night"), "new labels extend the table")
	assert.Equal(t, []string{"Violence", "Adult", "Dark", "Crime"}, r.ExcludedTags("Family movie time"), "untouched labels keep defaults")
	assert.Equal(t, []string{"Romance"}, r.ExpandGenres([]string{"Romance"}), "other tables keep defaults")
}

// TestMetaListsAreSorted verifies the stable ordering contract the form
// endpoints rely on.
func TestMetaListsAreSorted(t *testing.T) {
	r := rules.Default()

	occasions := r.Occasions()
	assert.Equal(t, 6, len(occasions))
	assert.IsIncreasing(t, occasions)

	genres := r.Genres()
	assert.Equal(t, 14, len(genres))
	assert.IsIncreasing(t, genres)

	moods := r.Moods()
	assert.Equal(t, 7, len(moods))
	assert.IsIncreasing(t, moods)
}
