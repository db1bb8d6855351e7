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

package main

import (
	"log"
	"os"

	"github.com/jaycherian/gcp-go-movie-match/internal/config"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/engine"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/rules"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/services"
)

// StateManager holds the shared components for the server binary: the
// loaded configuration, the atomic index holder, and the services the
// HTTP handlers delegate to.
type StateManager struct {
	config                *config.Config
	holder                *engine.IndexHolder
	catalogService        *services.CatalogService
	movieService          *services.MovieService
	recommendationService *services.RecommendationService
}

var state = &StateManager{}

// SetupOS points the config loader at the local configs directory when the
// environment doesn't already say where to look.
func SetupOS() (err error) {
	if os.Getenv(config.EnvConfigFilePrefix) == "" {
		if err = os.Setenv(config.EnvConfigFilePrefix, "configs"); err != nil {
			return err
		}
	}
	if os.Getenv(config.EnvConfigRuntime) == "" {
		err = os.Setenv(config.EnvConfigRuntime, "local")
	}
	return err
}

// GetConfig loads the application configuration once and caches it on the
// state manager.
func GetConfig() *config.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup config environment: %v\n", err)
		}
		cfg := config.NewConfig()
		config.LoadConfig(cfg)
		state.config = cfg
	}
	return state.config
}

// InitState builds the services and performs the initial catalog load. A
// catalog that is missing or empty at startup is fatal: the server has
// nothing to recommend from and should not come up.
func InitState() {
	cfg := GetConfig()

	ruleSet := rules.FromConfig(cfg.Rules)
	state.holder = engine.NewIndexHolder(nil)
	state.catalogService = services.NewCatalogService(state.holder, cfg.Catalog.Path, cfg.Catalog.MaxFeatures)
	state.movieService = services.NewMovieService(state.holder, ruleSet)
	state.recommendationService = services.NewRecommendationService(state.holder, ruleSet, cfg.Catalog.DefaultLimit)

	count, err := state.catalogService.Reload()
	if err != nil {
		log.Fatalf("failed to load catalog at startup: %v\n", err)
	}
	log.Printf("catalog loaded with %d movies\n", count)
}
