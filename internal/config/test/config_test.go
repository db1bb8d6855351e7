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

// Package config_test verifies the layered configuration loading and the
// test runtime's catalog fixture: the base file supplies shared values,
// the .env.test.toml overlay redirects the catalog and neuters the
// scraper, and the fixture the overlay points at loads cleanly.
package config_test

import (
	"testing"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/catalog"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
	test "github.com/jaycherian/gcp-go-movie-match/internal/testutil"
	"github.com/stretchr/testify/assert"
)

// TestLoadConfigLayersTestOverrides verifies the two-file overlay: values
// the test runtime file does not mention keep their base values, values it
// does mention replace them.
func TestLoadConfigLayersTestOverrides(t *testing.T) {
	cfg := test.GetConfig()

	// From the base file, untouched by the overlay.
	assert.Equal(t, "movie-match", cfg.Application.Name)
	assert.Equal(t, 8080, cfg.Server.Port)

	// From the test overlay.
	assert.Equal(t, "testdata/catalog.csv", cfg.Catalog.Path)
	assert.Equal(t, 10, cfg.Catalog.DefaultLimit)
	assert.Equal(t, "", cfg.Scraper.SearchURL)
	assert.Equal(t, 1, cfg.Scraper.Workers)
	assert.Equal(t, 10, cfg.Scraper.MaxTitles)
}

// TestConfiguredCatalogFixtureLoads loads the catalog the test runtime
// configuration points at, the same way the server's reload path would.
func TestConfiguredCatalogFixtureLoads(t *testing.T) {
	cfg := test.GetConfig()

	cat, err := catalog.Load(test.ResolvePath(cfg.Catalog.Path))
	test.HandleErr(err, t)
	assert.Equal(t, 4, cat.Len())

	// The yearless festival entry is in the catalog but never anchors the
	// recency windows.
	maxYear, ok := cat.MaxYear()
	assert.True(t, ok)
	assert.Equal(t, 2024, maxYear)

	pos, ok := cat.PositionOf("tt0000004")
	assert.True(t, ok)
	assert.Equal(t, model.NoYear, cat.Movie(pos).Year)
	assert.False(t, cat.Movie(pos).HasRating)
}
