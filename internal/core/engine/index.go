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

// Package engine assembles the catalog and its vector space into the
// immutable CatalogIndex the recommendation pipeline runs against. The
// index is built once by an explicit factory and injected into the
// pipeline; there is no ambient global state, which keeps the engine
// trivially testable against a small synthetic catalog.
package engine

import (
	"github.com/jaycherian/gcp-go-movie-match/internal/core/catalog"
	"github.com/jaycherian/gcp-go-movie-match/internal/core/tfidf"
)

// CatalogIndex bundles a loaded catalog with the TF-IDF vector space built
// over it. The two are constructed together and share row order: document
// vector i belongs to catalog row i, and the catalog's PositionOf mapping
// is the only sanctioned way to go from a movie id to its vector. The
// index is immutable; a catalog change means building a whole new index.
type CatalogIndex struct {
	cat        *catalog.Catalog
	vectorizer *tfidf.Vectorizer
	docs       []tfidf.Vector
}

// BuildIndex is the factory for CatalogIndex. It fits the vectorizer over
// the catalog's composite corpus and keeps the resulting document matrix.
//
// Inputs:
//   - cat: The loaded, normalized catalog.
//   - maxFeatures: Vocabulary cap for the vectorizer; non-positive falls
//     back to the tfidf default of 5000.
//
// Outputs:
//   - *CatalogIndex: The immutable index, ready for concurrent read-only use.
func BuildIndex(cat *catalog.Catalog, maxFeatures int) *CatalogIndex {
	vectorizer := tfidf.NewVectorizer(maxFeatures)
	docs := vectorizer.Fit(cat.CompositeCorpus())
	return &CatalogIndex{
		cat:        cat,
		vectorizer: vectorizer,
		docs:       docs,
	}
}

// Catalog returns the underlying movie catalog.
func (ci *CatalogIndex) Catalog() *catalog.Catalog {
	return ci.cat
}

// DocVector returns the precomputed document vector for a catalog row
// position.
func (ci *CatalogIndex) DocVector(position int) tfidf.Vector {
	return ci.docs[position]
}

// Transform projects an ad-hoc query string into the fitted vector space.
// Empty or out-of-vocabulary text yields the zero vector.
func (ci *CatalogIndex) Transform(query string) tfidf.Vector {
	return ci.vectorizer.Transform(query)
}

// VocabularySize returns the size of the fitted vocabulary, mostly useful
// for startup logging.
func (ci *CatalogIndex) VocabularySize() int {
	return ci.vectorizer.VocabularySize()
}
