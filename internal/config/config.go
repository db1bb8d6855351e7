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

// Package config defines the data structures for application configuration,
// loaded from TOML files. It provides a structured way to manage settings for
// the HTTP server, the movie catalog and its vector space, the the offline
// catalog scraper, and the label rule tables that drive filtering and query
// synthesis.
//
// This file centralizes all configuration-related structs, making it easy
// to understand and manage the application's configurable parameters.
//
// Structs:
//   - Server: Listen address and HTTP timeouts for the API server.
//   - Catalog: Location of the catalog CSV and vector space tuning knobs.
//   - Scraper: Source listing URL, output file, and politeness settings for
//     the offline catalog scraper.
//   - Rules: Optional overrides for the occasion/genre/mood label tables.
//   - Config: The top-level struct that aggregates all other configuration structs.
//
// Functions:
//   - NewConfig: A constructor that initializes a new Config object with empty maps.
package config

// Server holds the HTTP server settings for the recommendation API.
type Server struct {
	Port                  int `toml:"port"`                     // The TCP port the Gin server listens on.
	ReadTimeoutInSeconds  int `toml:"read_timeout_in_seconds"`  // Read timeout applied to the http.Server.
	WriteTimeoutInSeconds int `toml:"write_timeout_in_seconds"` // Write timeout applied to the http.Server.
}

// Catalog holds the settings for loading the movie catalog and building
// the TF-IDF vector space over it.
type Catalog struct {
	Path         string `toml:"path"`          // Path to the catalog CSV produced by the scraper.
	MaxFeatures  int    `toml:"max_features"`  // Vocabulary cap for the TF-IDF vectorizer (default 5000).
	DefaultLimit int    `toml:"default_limit"` // Default number of recommendations returned (default 10).
}

// Scraper holds the settings for the offline catalog acquisition job.
// The scraper is a separate batch binary (cmd/scraper) and none of these
// values are read by the serving path.
type Scraper struct {
	SearchURL             string  `toml:"search_url"`               // The listing search URL to harvest titles from.
	OutputPath            string  `toml:"output_path"`              // Path of the catalog CSV the scraper writes.
	MaxTitles             int     `toml:"max_titles"`               // Safety cap on the number of titles loaded from the listing.
	CastLimit             int     `toml:"cast_limit"`               // Number of top cast members captured per title.
	FlushEvery            int     `toml:"flush_every"`              // Number of newly scraped rows between incremental CSV flushes.
	RequestsPerSecond     float64 `toml:"requests_per_second"`      // Politeness rate limit for title page fetches.
	Workers               int     `toml:"workers"`                  // Size of the worker pool enriching title pages.
	PageTimeoutInSeconds  int     `toml:"page_timeout_in_seconds"`  // Per-page navigation timeout.
	RemoteBrowserURL      string  `toml:"remote_browser_url"`       // Optional websocket URL of an external Chrome; empty launches a local one.
	DisableStealth        bool    `toml:"disable_stealth"`          // Disables the stealth page scripts (useful against local fixtures).
	ListingSettleInMillis int     `toml:"listing_settle_in_millis"` // Wait after each "see more" click before recounting rows.
}

// Rules allows the built-in label tables to be overridden or extended from
// configuration. Keys are user-facing labels; values are the descriptor
// substrings the label expands to. Empty maps fall back to the defaults
// compiled into the rules package.
type Rules struct {
	Occasions map[string][]string `toml:"occasions"` // Occasion label -> excluded tag substrings.
	Genres    map[string][]string `toml:"genres"`    // Genre label -> included tag substrings.
	Moods     map[string][]string `toml:"moods"`     // Mood label -> query text contributions.
}

// Config represents the overall configuration for the application, loaded
// from TOML files. It acts as the root container for all other
// configuration structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name            string `toml:"name"`              // The name of the application, used as the telemetry service name.
		GoogleProjectId string `toml:"google_project_id"` // The Google Cloud project ID telemetry is exported to.
		GoogleLocation  string `toml:"location"`          // The Google Cloud location.
	} `toml:"application"`
	Server  Server  `toml:"server"`  // HTTP server configuration.
	Catalog Catalog `toml:"catalog"` // Catalog and vector space configuration.
	Scraper Scraper `toml:"scraper"` // Offline scraper configuration.
	Rules   Rules   `toml:"rules"`   // Optional label rule overrides.
}

// NewConfig is a constructor function that creates a new, initialized Config
// instance. The rule maps must be non-nil before the TOML decoder tries to
// populate them.
//
// Outputs:
//   - *Config: A pointer to a new Config struct with its map fields initialized.
func NewConfig() *Config {
	cfg := &Config{}
	cfg.Rules.Occasions = make(map[string][]string)
	cfg.Rules.Genres = make(map[string][]string)
	cfg.Rules.Moods = make(map[string][]string)
	return cfg
}
