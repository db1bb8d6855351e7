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

// This file defines the harvester step of the scrape pipeline. It pulls
// every row out of the expanded listing page in a single DOM evaluation,
// normalizes the fields, and drops ids that are already in the output
// file. The listing page is closed here; everything downstream works from
// the extracted rows.
package commands

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-rod/rod"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
)

// ListingHarvester extracts the listing rows into ScrapedTitle values.
type ListingHarvester struct {
	cor.BaseCommand
	maxTitles int
}

// NewListingHarvester is the constructor for the ListingHarvester command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - maxTitles: Safety cap on harvested rows; non-positive disables it.
func NewListingHarvester(name string, maxTitles int) *ListingHarvester {
	out := &ListingHarvester{BaseCommand: *cor.NewBaseCommand(name), maxTitles: maxTitles}
	out.InputParamName = GetListingPageParamName()
	out.OutputParamName = GetTitlesParamName()
	return out
}

// IsExecutable requires the listing page and the scraped-id set.
func (c *ListingHarvester) IsExecutable(context cor.Context) bool {
	return context != nil &&
		context.Get(c.GetInputParam()) != nil &&
		context.Get(GetScrapedIDsParamName()) != nil
}

// Execute reads all listing rows, skips known ids, and publishes the new
// titles with their listing-level fields populated.
func (c *ListingHarvester) Execute(context cor.Context) {
	page := context.Get(c.GetInputParam()).(*rod.Page)
	scraped := context.Get(GetScrapedIDsParamName()).(map[string]bool)

	res, err := page.Eval(fmt.Sprintf(`() =>
		Array.from(document.querySelectorAll(%q)).map((item) => {
			const title = item.querySelector("h3.ipc-title__text");
			const link = item.querySelector("a.ipc-title-link-wrapper");
			const year = item.querySelector("span.dli-title-metadata-item");
			const rating = item.querySelector("span.ipc-rating-star--rating");
			const plot = item.querySelector(".title-description-plot-container");
			return {
				name: title ? title.innerText.trim() : "",
				href: link ? link.href : "",
				year: year ? year.innerText.trim() : "",
				rating: rating ? rating.innerText.trim() : "",
				overview: plot ? plot.innerText.trim() : "",
			};
		})`, listingRowSelector))
	_ = page.Close()
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to harvest listing rows: %w", err))
		return
	}

	titles := make([]*model.ScrapedTitle, 0)
	for _, row := range res.Value.Arr() {
		if c.maxTitles > 0 && len(titles) >= c.maxTitles {
			break
		}

		id, detailURL := parseTitleHref(row.Get("href").Str())
		if id == "" || scraped[id] {
			continue
		}

		year := model.NoYear
		if y, err := strconv.Atoi(row.Get("year").Str()); err == nil {
			year = y
		}
		movie := &model.Movie{
			ID:       id,
			Name:     stripListingRank(row.Get("name").Str()),
			Year:     year,
			Overview: row.Get("overview").Str(),
		}
		if r, err := strconv.ParseFloat(row.Get("rating").Str(), 64); err == nil {
			movie.Rating = r
			movie.HasRating = true
		}

		titles = append(titles, &model.ScrapedTitle{Movie: movie, DetailURL: detailURL})
	}

	slog.Info("harvested listing", "new_titles", len(titles), "skipped", len(scraped))
	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(c.GetOutputParam(), titles)
}

// parseTitleHref pulls the stable title id out of a listing link and
// strips the tracking query string to form the detail page address.
// Links look like https://host/title/tt1234567/?ref_=sr_t_1.
func parseTitleHref(href string) (id string, detailURL string) {
	if href == "" {
		return "", ""
	}
	detailURL = href
	if i := strings.Index(detailURL, "?"); i >= 0 {
		detailURL = detailURL[:i]
	}
	parts := strings.Split(detailURL, "/")
	for i, part := range parts {
		if part == "title" && i+1 < len(parts) {
			return parts[i+1], detailURL
		}
	}
	return "", detailURL
}

// stripListingRank removes the "12. " rank prefix listing titles carry.
func stripListingRank(name string) string {
	if _, rest, found := strings.Cut(name, ". "); found {
		return rest
	}
	return name
}
