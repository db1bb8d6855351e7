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

// This file defines the listing loader step of the scrape pipeline. The
// source listing paginates behind a "see more" button, so the loader keeps
// clicking it until the row count stops growing or reaches the configured
// cap, then hands the fully expanded page to the harvester.
package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jaycherian/gcp-go-movie-match/internal/config"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-match/internal/scrape"
)

const (
	listingRowSelector     = "li.ipc-metadata-list-summary-item"
	defaultListingSettleMs = 3000
)

// ListingLoader opens the configured search listing and expands it in
// place until no more rows load.
type ListingLoader struct {
	cor.BaseCommand
	browser *scrape.Browser
	cfg     config.Scraper
}

// NewListingLoader is the constructor for the ListingLoader command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - browser: The started browser client pages are opened from.
//   - cfg: The scraper configuration (listing URL, title cap, settle time).
func NewListingLoader(name string, browser *scrape.Browser, cfg config.Scraper) *ListingLoader {
	out := &ListingLoader{BaseCommand: *cor.NewBaseCommand(name), browser: browser, cfg: cfg}
	out.InputParamName = GetScrapedIDsParamName()
	out.OutputParamName = GetListingPageParamName()
	return out
}

// Execute navigates to the listing and clicks "see more" until the row
// count is stable or the cap is reached. The open page is published for
// the harvester, which takes over ownership.
func (c *ListingLoader) Execute(context cor.Context) {
	page, err := c.browser.OpenPage(context.GetContext(), c.cfg.SearchURL)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to open listing: %w", err))
		return
	}

	settle := time.Duration(c.cfg.ListingSettleInMillis) * time.Millisecond
	if settle <= 0 {
		settle = defaultListingSettleMs * time.Millisecond
	}

	lastCount := -1
	for {
		res, err := page.Eval(fmt.Sprintf(
			`() => document.querySelectorAll(%q).length`, listingRowSelector))
		if err != nil {
			_ = page.Close()
			c.GetErrorCounter().Add(context.GetContext(), 1)
			context.AddError(c.GetName(), fmt.Errorf("failed to count listing rows: %w", err))
			return
		}
		count := res.Value.Int()
		slog.Info("listing rows loaded", "count", count)

		if (c.cfg.MaxTitles > 0 && count >= c.cfg.MaxTitles) || count == lastCount {
			break
		}
		lastCount = count

		clicked, err := page.Eval(fmt.Sprintf(`() => {
			const button = document.querySelector(%q);
			if (!button) { return false; }
			button.scrollIntoView();
			button.click();
			return true;
		}`, "button.ipc-see-more__button"))
		if err != nil || !clicked.Value.Bool() {
			// No more pages to load.
			break
		}
		time.Sleep(settle)
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(c.GetOutputParam(), page)
}
