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

// This file tests the catalog service's load-and-publish behavior,
// including the all-or-nothing guarantee on a failed reload.
package services_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/catalog"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/engine"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/services"
	"github.com/zeebo/assert"
)

// buildIndex fits an index over the given movies.
func buildIndex(t *testing.T, movies []*model.Movie) *engine.CatalogIndex {
	t.Helper()
	cat, err := catalog.New(movies)
	assert.NoError(t, err)
	return engine.BuildIndex(cat, 0)
}

// writeCatalogFile writes a two-movie catalog CSV and returns its path.
func writeCatalogFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "catalog.csv")
	content := "movie_id,movie_name,year,tags,overview,rating,director,cast\n" +
		"tt1,One,2020,Drama,A story.,7.0,D1,C1\n" +
		"tt2,Two,2021,Comedy,A funny story.,6.5,D2,C2\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestCatalogServiceReloadPublishes verifies that a reload builds and
// publishes a queryable index.
func TestCatalogServiceReloadPublishes(t *testing.T) {
	path := writeCatalogFile(t, t.TempDir())
	holder := engine.NewIndexHolder(nil)
	svc := services.NewCatalogService(holder, path, 0)

	count, err := svc.Reload()
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	index := holder.Current()
	assert.NotNil(t, index)
	assert.Equal(t, 2, index.Catalog().Len())
	assert.True(t, index.VocabularySize() > 0)
}

// TestCatalogServiceFailedReloadKeepsServing verifies the all-or-nothing
// contract: when the file disappears, the previously published index is
// untouched.
func TestCatalogServiceFailedReloadKeepsServing(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalogFile(t, dir)
	holder := engine.NewIndexHolder(nil)
	svc := services.NewCatalogService(holder, path, 0)

	_, err := svc.Reload()
	assert.NoError(t, err)
	previous := holder.Current()

	assert.NoError(t, os.Remove(path))
	_, err = svc.Reload()
	assert.Error(t, err)

	// Same pointer: the failed rebuild never touched the holder.
	assert.True(t, holder.Current() == previous)
}
