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

// This file implements the offline catalog acquisition pipeline run by the
// scraper binary.
package workflow

import (
	"github.com/jaycherian/gcp-go-movie-match/internal/config"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/commands"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-match/internal/scrape"
)

// ScrapeWorkflow is the batch pipeline behind the scraper binary: resume
// bookkeeping, listing expansion, row harvesting, detail enrichment, and
// the incremental CSV append. One execution is one complete scrape run.
type ScrapeWorkflow struct {
	cor.BaseCommand
	browser *scrape.Browser
	cfg     config.Scraper
	chain   cor.Chain
}

// NewScrapeWorkflow is the constructor for the scrape pipeline.
//
// Inputs:
//   - browser: A started browser client; the workflow does not own its
//     lifecycle.
//   - cfg: The scraper configuration.
//
// Outputs:
//   - *ScrapeWorkflow: The assembled workflow.
func NewScrapeWorkflow(browser *scrape.Browser, cfg config.Scraper) *ScrapeWorkflow {
	out := &ScrapeWorkflow{
		BaseCommand: *cor.NewBaseCommand("scrape-workflow"),
		browser:     browser,
		cfg:         cfg,
	}
	out.initializeChain()
	return out
}

// Execute runs the scrape pipeline by invoking the underlying chain.
func (w *ScrapeWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

// initializeChain builds the command sequence for one scrape run.
func (w *ScrapeWorkflow) initializeChain() {
	out := cor.NewBaseChain(w.GetName())

	// Step 1: read the ids already in the output file so a re-run never
	// duplicates rows.
	out.AddCommand(commands.NewCatalogSeedReader("read-catalog-seed", w.cfg.OutputPath))

	// Step 2: open the listing and keep clicking "see more" until the row
	// count is stable or capped.
	out.AddCommand(commands.NewListingLoader("load-listing", w.browser, w.cfg))

	// Step 3: pull every listing row into memory and drop known ids.
	out.AddCommand(commands.NewListingHarvester("harvest-listing", w.cfg.MaxTitles))

	// Step 4: visit each title's detail page for tags, director, and cast.
	out.AddCommand(commands.NewTitleEnricher("enrich-titles", w.browser, w.cfg))

	// Step 5: append the rows to the catalog CSV with periodic flushes.
	out.AddCommand(commands.NewCatalogWriter("write-catalog", w.cfg.OutputPath, w.cfg.FlushEvery))

	w.chain = out
}
