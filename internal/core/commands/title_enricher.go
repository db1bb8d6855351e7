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

// This file defines the enrichment step of the scrape pipeline. The
// listing page only carries title, year, rating, and overview; tags,
// director, and cast live on each title's detail page. A small worker
// pool visits those pages behind a shared rate limiter so the source site
// never sees a burst. A failed detail fetch keeps the listing fields and
// moves on, matching the writer's tolerance for partially filled rows.
package commands

import (
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/jaycherian/gcp-go-movie-match/internal/config"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-match/internal/scrape"
)

const (
	defaultScrapeWorkers    = 2
	defaultRequestsPerSec   = 0.5
	defaultCastMemberLimit  = 5
	detailExtractionScript  = `() => {
		const tags = Array.from(
			document.querySelectorAll("div.ipc-chip-list__scroller span.ipc-chip__text"),
		).map((chip) => chip.innerText.trim());
		const director = document.querySelector('a[href^="/name/"]');
		const cast = Array.from(
			document.querySelectorAll('a[data-testid="title-cast-item__actor"]'),
		).map((actor) => actor.innerText.trim());
		return {
			tags: tags,
			director: director ? director.innerText.trim() : "",
			cast: cast,
		};
	}`
)

// TitleEnricher fills in tags, director, and cast from each title's
// detail page.
type TitleEnricher struct {
	cor.BaseCommand
	browser *scrape.Browser
	cfg     config.Scraper
	limiter *rate.Limiter
}

// NewTitleEnricher is the constructor for the TitleEnricher command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - browser: The started browser client detail pages are opened from.
//   - cfg: The scraper configuration (worker count, rate limit, cast cap).
func NewTitleEnricher(name string, browser *scrape.Browser, cfg config.Scraper) *TitleEnricher {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSec
	}
	out := &TitleEnricher{
		BaseCommand: *cor.NewBaseCommand(name),
		browser:     browser,
		cfg:         cfg,
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
	}
	out.InputParamName = GetTitlesParamName()
	out.OutputParamName = GetTitlesParamName()
	return out
}

// Execute enriches every title in place with a bounded worker pool. The
// shared limiter paces page opens across all workers.
func (c *TitleEnricher) Execute(context cor.Context) {
	titles := context.Get(c.GetInputParam()).([]*model.ScrapedTitle)

	workers := c.cfg.Workers
	if workers <= 0 {
		workers = defaultScrapeWorkers
	}

	work := make(chan *model.ScrapedTitle)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for title := range work {
				c.enrich(context, title)
			}
		}()
	}
	for _, title := range titles {
		work <- title
	}
	close(work)
	wg.Wait()

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(c.GetOutputParam(), titles)
}

// enrich visits one detail page and copies tags, director, and the top
// cast members onto the movie. Errors are logged and swallowed so one bad
// page never aborts the run.
func (c *TitleEnricher) enrich(context cor.Context, title *model.ScrapedTitle) {
	if title.DetailURL == "" {
		return
	}
	if err := c.limiter.Wait(context.GetContext()); err != nil {
		return
	}

	page, err := c.browser.OpenPage(context.GetContext(), title.DetailURL)
	if err != nil {
		slog.Warn("failed to open detail page", "id", title.Movie.ID, "error", err)
		return
	}
	defer func() {
		_ = page.Close()
	}()

	res, err := page.Eval(detailExtractionScript)
	if err != nil {
		slog.Warn("failed to extract detail fields", "id", title.Movie.ID, "error", err)
		return
	}

	tags := make([]string, 0)
	for _, tag := range res.Value.Get("tags").Arr() {
		if tag.Str() != "" {
			tags = append(tags, tag.Str())
		}
	}
	title.Movie.Tags = strings.Join(tags, ", ")
	title.Movie.Director = res.Value.Get("director").Str()

	castLimit := c.cfg.CastLimit
	if castLimit <= 0 {
		castLimit = defaultCastMemberLimit
	}
	cast := make([]string, 0, castLimit)
	for _, member := range res.Value.Get("cast").Arr() {
		if len(cast) >= castLimit {
			break
		}
		if member.Str() != "" {
			cast = append(cast, member.Str())
		}
	}
	title.Movie.Cast = strings.Join(cast, ", ")
}
