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

// The scraper binary performs one offline catalog acquisition run: it
// expands the configured source listing, enriches each new title from its
// detail page, and appends the rows to the catalog CSV the server loads.
// Re-running it resumes where the previous run stopped.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/jaycherian/gcp-go-movie-match/internal/config"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/workflow"
	"github.com/jaycherian/gcp-go-movie-match/internal/scrape"
	"github.com/jaycherian/gcp-go-movie-match/internal/telemetry"
)

func main() {
	telemetry.SetupLogging("scraper")

	if os.Getenv(config.EnvConfigFilePrefix) == "" {
		if err := os.Setenv(config.EnvConfigFilePrefix, "configs"); err != nil {
			log.Fatalf("failed to setup config environment: %v\n", err)
		}
	}
	if os.Getenv(config.EnvConfigRuntime) == "" {
		if err := os.Setenv(config.EnvConfigRuntime, "local"); err != nil {
			log.Fatalf("failed to setup config environment: %v\n", err)
		}
	}
	cfg := config.NewConfig()
	config.LoadConfig(cfg)

	if cfg.Scraper.SearchURL == "" || cfg.Scraper.OutputPath == "" {
		log.Fatal("scraper requires search_url and output_path to be configured")
	}

	// A SIGINT mid-run cancels navigation and rate-limit waits; rows
	// already flushed stay in the output file.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	slog.Info("starting scrape run",
		"run_id", runID,
		"search_url", cfg.Scraper.SearchURL,
		"output_path", cfg.Scraper.OutputPath)

	browser := scrape.NewBrowser(cfg.Scraper)
	if err := browser.Start(); err != nil {
		log.Fatalf("failed to start browser: %v\n", err)
	}
	defer browser.Close()

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	workflow.NewScrapeWorkflow(browser, cfg.Scraper).Execute(chainCtx)

	if chainCtx.HasErrors() {
		errs := make([]error, 0, len(chainCtx.GetErrors()))
		for name, err := range chainCtx.GetErrors() {
			slog.Error("scrape step failed", "step", name, "error", err)
			errs = append(errs, err)
		}
		log.Fatalf("scrape run %s failed: %v\n", runID, errors.Join(errs...))
	}

	slog.Info("scrape run complete", "run_id", runID)
}
