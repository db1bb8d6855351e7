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

// This file defines the final step of the scrape pipeline: appending the
// enriched rows to the catalog CSV. The writer flushes to disk every few
// rows so an interrupted run keeps most of its work; the seed reader picks
// the surviving ids up on the next run.
package commands

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/catalog"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
)

const defaultFlushEvery = 25

// CatalogWriter appends scraped rows to the output CSV, writing the
// header first when the file is new.
type CatalogWriter struct {
	cor.BaseCommand
	outputPath string
	flushEvery int
}

// NewCatalogWriter is the constructor for the CatalogWriter command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - outputPath: Path of the catalog CSV to append to.
//   - flushEvery: Rows between incremental flushes; non-positive uses 25.
func NewCatalogWriter(name string, outputPath string, flushEvery int) *CatalogWriter {
	if flushEvery <= 0 {
		flushEvery = defaultFlushEvery
	}
	out := &CatalogWriter{BaseCommand: *cor.NewBaseCommand(name), outputPath: outputPath, flushEvery: flushEvery}
	out.InputParamName = GetTitlesParamName()
	return out
}

// Execute appends every harvested row to the output file. Rows with a
// failed enrichment still get written with their listing fields; the
// catalog loader tolerates the empty columns.
func (c *CatalogWriter) Execute(context cor.Context) {
	titles := context.Get(c.GetInputParam()).([]*model.ScrapedTitle)

	file, err := os.OpenFile(c.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to open output file: %w", err))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to stat output file: %w", err))
		return
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(catalog.Columns); err != nil {
			c.GetErrorCounter().Add(context.GetContext(), 1)
			context.AddError(c.GetName(), fmt.Errorf("failed to write header: %w", err))
			return
		}
	}

	written := 0
	for _, title := range titles {
		if err := writer.Write(catalogRecord(title.Movie)); err != nil {
			c.GetErrorCounter().Add(context.GetContext(), 1)
			context.AddError(c.GetName(), fmt.Errorf("failed to write row %s: %w", title.Movie.ID, err))
			return
		}
		written++
		if written%c.flushEvery == 0 {
			writer.Flush()
			slog.Info("flushed catalog rows", "written", written, "total", len(titles))
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to flush output file: %w", err))
		return
	}

	slog.Info("catalog write complete", "written", written, "path", c.outputPath)
	c.GetSuccessCounter().Add(context.GetContext(), 1)
}

// catalogRecord renders one movie in the catalog column order. Unknown
// years and absent ratings become empty cells, which is how the loader
// expects missing values.
func catalogRecord(m *model.Movie) []string {
	year := ""
	if m.HasYear() {
		year = strconv.Itoa(m.Year)
	}
	rating := ""
	if m.HasRating {
		rating = strconv.FormatFloat(m.Rating, 'f', 1, 64)
	}
	return []string{m.ID, m.Name, year, m.Tags, m.Overview, rating, m.Director, m.Cast}
}
