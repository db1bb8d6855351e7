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

// This file, `catalog.go`, defines the CatalogService, which owns reading
// the catalog file, building the vector index over it, and atomically
// publishing the new index to the rest of the application.
package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/catalog"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/engine"
)

// CatalogService rebuilds the catalog index from disk and swaps it into
// the shared holder. A rebuild is all-or-nothing: if the file fails to
// load or vectorize, the previous index stays live and keeps serving.
type CatalogService struct {
	Holder      *engine.IndexHolder
	Path        string
	MaxFeatures int
}

// NewCatalogService is the constructor for the CatalogService.
//
// Inputs:
//   - holder: The atomic holder the built index gets published to.
//   - path: Filesystem path of the catalog CSV.
//   - maxFeatures: Vocabulary cap for the vectorizer.
func NewCatalogService(holder *engine.IndexHolder, path string, maxFeatures int) *CatalogService {
	return &CatalogService{Holder: holder, Path: path, MaxFeatures: maxFeatures}
}

// Reload re-reads the catalog file, fits a fresh index over it, and swaps
// it into the holder. In-flight requests keep the snapshot they started
// with; new requests see the new index.
//
// Outputs:
//   - int: The number of movies in the newly published catalog.
//   - error: Set when the file cannot be read or holds no movies. The
//     previously published index is untouched on error.
func (s *CatalogService) Reload() (int, error) {
	start := time.Now()

	cat, err := catalog.Load(s.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to load catalog from %s: %w", s.Path, err)
	}

	index := engine.BuildIndex(cat, s.MaxFeatures)
	s.Holder.Swap(index)

	slog.Info("catalog index published",
		"path", s.Path,
		"movies", cat.Len(),
		"vocabulary", index.VocabularySize(),
		"elapsed", time.Since(start).String())
	return cat.Len(), nil
}
