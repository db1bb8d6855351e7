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

// This file defines the scrape pipeline's resume step. Re-running the
// scraper against an existing output file must never duplicate rows, so
// the first step reads the ids already written and later steps skip them.
package commands

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
)

// CatalogSeedReader loads the set of movie ids already present in the
// scraper's output file. A missing or empty file starts a fresh scrape
// with an empty set.
type CatalogSeedReader struct {
	cor.BaseCommand
	outputPath string
}

// NewCatalogSeedReader is the constructor for the CatalogSeedReader
// command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - outputPath: Path of the catalog CSV the scraper appends to.
func NewCatalogSeedReader(name string, outputPath string) *CatalogSeedReader {
	out := &CatalogSeedReader{BaseCommand: *cor.NewBaseCommand(name), outputPath: outputPath}
	out.OutputParamName = GetScrapedIDsParamName()
	return out
}

// IsExecutable only requires a valid context; this is the first step of
// the chain and consumes nothing from it.
func (c *CatalogSeedReader) IsExecutable(context cor.Context) bool {
	return context != nil && context.GetContext() != nil
}

// Execute reads the existing output file, collects the movie_id column
// into a set, and publishes it for the harvester.
func (c *CatalogSeedReader) Execute(context cor.Context) {
	ids := make(map[string]bool)

	file, err := os.Open(c.outputPath)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("starting fresh scrape", "path", c.outputPath)
			c.GetSuccessCounter().Add(context.GetContext(), 1)
			context.Add(c.GetOutputParam(), ids)
			return
		}
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to open output file: %w", err))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			slog.Info("output file empty, starting fresh scrape", "path", c.outputPath)
			c.GetSuccessCounter().Add(context.GetContext(), 1)
			context.Add(c.GetOutputParam(), ids)
			return
		}
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to read output header: %w", err))
		return
	}

	idColumn := -1
	for i, col := range header {
		if col == "movie_id" {
			idColumn = i
			break
		}
	}
	if idColumn < 0 {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("output file %s has no movie_id column", c.outputPath))
		return
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			c.GetErrorCounter().Add(context.GetContext(), 1)
			context.AddError(c.GetName(), fmt.Errorf("failed to read output row: %w", err))
			return
		}
		if idColumn < len(record) && record[idColumn] != "" {
			ids[record[idColumn]] = true
		}
	}

	slog.Info("resuming scrape", "path", c.outputPath, "already_scraped", len(ids))
	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(c.GetOutputParam(), ids)
}
