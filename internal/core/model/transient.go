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
// This file, `transient.go`, contains struct definitions for data that only
// exists in memory while a workflow is executing. These objects are
// intermediate containers passed between commands in a chain; they are
// never written to the catalog file in this form.
package model

// ScrapedTitle carries one listing row through the scrape pipeline: the
// partially populated movie from the listing page plus the detail page
// address the enrichment step needs to fill in the rest.
type ScrapedTitle struct {
	Movie     *Movie // Listing fields first (id, name, year, rating, overview), detail fields after enrichment.
	DetailURL string // Canonical title page address, query string stripped.
}
