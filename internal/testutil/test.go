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

// Package test provides utility functions and fixture data to support the
// application's test suite. It sets up a consistent test environment,
// loads test-specific configuration, and provides a small in-memory
// catalog whose filter and ranking behavior is easy to predict by hand.
package test

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jaycherian/gcp-go-movie-match/internal/config"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/catalog"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/engine"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
)

// StateManager acts as a simple in-memory cache for the application
// configuration during test runs, so the TOML files are read once per
// test binary.
type StateManager struct {
	config *config.Config
}

var state = &StateManager{}

// HandleErr fails the test when err is non-nil. A convenience to reduce
// boilerplate error-checking in tests.
//
// Inputs:
//   - err: The error to check.
//   - t: The *testing.T object from the current test.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// RepoRoot returns the module's root directory, resolved from this file's
// compiled-in location. Tests run with their own package directory as the
// working directory, so fixture and config paths must be anchored here.
func RepoRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filepath.Dir(file)))
}

// ResolvePath anchors a repo-relative path (the form configuration values
// use) at the module root.
func ResolvePath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(RepoRoot(), rel)
}

// SetupOS configures the environment variables the configuration loader
// depends on, directing it at the test override file
// (configs/.env.test.toml) regardless of which package the test binary
// runs from.
func SetupOS() (err error) {
	err = os.Setenv(config.EnvConfigFilePrefix, ResolvePath("configs"))
	if err != nil {
		return err
	}
	err = os.Setenv(config.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration.
func GetConfig() *config.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		cfg := config.NewConfig()
		config.LoadConfig(cfg)
		state.config = cfg
	}
	return state.config
}

// GetTestMovies returns the hand-checkable three-movie catalog used across
// the engine and service tests:
//
//   - A: a 2024 horror with gore and violence descriptors,
//   - B: a 2010 romantic comedy,
//   - C: a 2023 crime drama.
//
// With a "Movie date" occasion, a Romance genre selection, and no recency
// window, only B survives filtering.
func GetTestMovies() []*model.Movie {
	return []*model.Movie{
		{
			ID:       "tt0000001",
			Name:     "Blood Harvest",
			Year:     2024,
			Tags:     "Horror, Gore, Violence, Slasher",
			Overview: "A masked killer stalks a remote farming village during harvest season.",
		},
		{
			ID:       "tt0000002",
			Name:     "Monsoon Wedding Crashers",
			Year:     2010,
			Tags:     "Romance, Comedy, Romantic Comedy",
			Overview: "Two strangers fall in love while crashing weddings across the city.",
		},
		{
			ID:       "tt0000003",
			Name:     "The Long Verdict",
			Year:     2023,
			Tags:     "Drama, Crime, Courtroom Drama",
			Overview: "A retiring judge revisits the one case that still haunts her.",
		},
	}
}

// GetTestCatalog builds a catalog over the fixture movies.
func GetTestCatalog(t *testing.T) *catalog.Catalog {
	cat, err := catalog.New(GetTestMovies())
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return cat
}

// GetTestIndex builds a fully fitted index over the fixture movies.
func GetTestIndex(t *testing.T) *engine.CatalogIndex {
	return engine.BuildIndex(GetTestCatalog(t), 0)
}
