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

// This file defines the named context parameter keys shared across the
// scrape pipeline commands, mirroring the keys the recommendation pipeline
// uses. The scraped-id set stays readable by every step while the title
// list threads through harvesting, enrichment, and the writer.
package commands

// Context parameter keys for the scrape pipeline.
const (
	scrapedIDsParamName  = "__scraped_ids__"  // map[string]bool ids already present in the output file.
	listingPageParamName = "__listing_page__" // *rod.Page fully expanded listing page.
	titlesParamName      = "__titles__"       // []*model.ScrapedTitle rows pending enrichment and writing.
)

// GetScrapedIDsParamName returns the context key holding the ids already
// present in the output catalog.
func GetScrapedIDsParamName() string { return scrapedIDsParamName }

// GetListingPageParamName returns the context key holding the expanded
// listing page.
func GetListingPageParamName() string { return listingPageParamName }

// GetTitlesParamName returns the context key holding the in-flight scraped
// titles.
func GetTitlesParamName() string { return titlesParamName }
