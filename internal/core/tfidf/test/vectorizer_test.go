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

// Package tfidf_test contains the test suite for the vector space
// indexer: vocabulary selection, weighting, normalization, and the cosine
// similarity edge cases.
package tfidf_test

import (
	"math"
	"testing"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/tfidf"
	"github.com/stretchr/testify/assert"
)

// TestFitBuildsNormalizedVectors verifies that every fitted document
// vector has unit length, which is what lets cosine similarity reduce to
// a plain dot product.
func TestFitBuildsNormalizedVectors(t *testing.T) {
	v := tfidf.NewVectorizer(0)
	matrix := v.Fit([]string{
		"a masked killer stalks a remote village",
		"two strangers fall in love while crashing weddings",
		"a retiring judge revisits her hardest case",
	})

	assert.Equal(t, 3, len(matrix))
	for i, doc := range matrix {
		assert.False(t, doc.IsZero(), "document %d should have weight", i)
		var sumSquares float64
		for _, w := range doc {
			sumSquares += w * w
		}
		assert.InDelta(t, 1.0, sumSquares, 1e-9, "document %d should be L2-normalized", i)
	}
}

// TestStopWordsAndShortTokensDropped verifies the tokenizer contract:
// single-character tokens and English stop words never enter the
// vocabulary.
func TestStopWordsAndShortTokensDropped(t *testing.T) {
	v := tfidf.NewVectorizer(0)
	// "a", "i" are too short; "the", "of", "and" are stop words.
	v.Fit([]string{"a i the of and midnight heist"})

	assert.Equal(t, 2, v.VocabularySize())

	query := v.Transform("the heist")
	assert.False(t, query.IsZero())
	assert.Equal(t, 1, len(query))
}

// TestMaxFeaturesCapsVocabulary verifies that the vocabulary keeps the
// highest-document-frequency terms when capped, with ties broken
// lexicographically so rebuilds are deterministic.
func TestMaxFeaturesCapsVocabulary(t *testing.T) {
	corpus := []string{
		"alpha beta gamma",
		"alpha beta delta",
		"alpha epsilon zeta",
	}

	v := tfidf.NewVectorizer(2)
	v.Fit(corpus)
	assert.Equal(t, 2, v.VocabularySize())

	// alpha (df=3) and beta (df=2) beat the df=1 terms. A query made of
	// only dropped terms projects to the zero vector.
	assert.False(t, v.Transform("alpha beta").IsZero())
	assert.True(t, v.Transform("gamma delta epsilon zeta").IsZero())
}

// TestTransformIgnoresUnseenTerms verifies that the fitted space is
// closed: transforming text with unseen words only weighs the vocabulary
// terms.
func TestTransformIgnoresUnseenTerms(t *testing.T) {
	v := tfidf.NewVectorizer(0)
	v.Fit([]string{"romance comedy wedding", "horror slasher village"})

	mixed := v.Transform("romance spaceship wedding")
	assert.Equal(t, 2, len(mixed))

	unseen := v.Transform("spaceship asteroid")
	assert.True(t, unseen.IsZero())
}

// TestCosineZeroVectorNeverNaN verifies the zero-vector contract: any
// similarity involving an empty vector is exactly 0, never NaN.
func TestCosineZeroVectorNeverNaN(t *testing.T) {
	v := tfidf.NewVectorizer(0)
	matrix := v.Fit([]string{"wedding comedy", "slasher horror"})

	zero := v.Transform("")
	assert.True(t, zero.IsZero())

	score := tfidf.Cosine(zero, matrix[0])
	assert.Equal(t, 0.0, score)
	assert.False(t, math.IsNaN(score))
	assert.Equal(t, 0.0, tfidf.Cosine(zero, zero))
}

// TestCosineOrdersByRelevance verifies that a query sharing more terms
// with a document scores that document higher, and that a document is
// most similar to itself.
func TestCosineOrdersByRelevance(t *testing.T) {
	v := tfidf.NewVectorizer(0)
	matrix := v.Fit([]string{
		"romance comedy wedding love",
		"horror slasher village blood",
		"courtroom drama judge verdict",
	})

	query := v.Transform("romance wedding")
	romance := tfidf.Cosine(query, matrix[0])
	horror := tfidf.Cosine(query, matrix[1])
	drama := tfidf.Cosine(query, matrix[2])

	assert.Greater(t, romance, horror)
	assert.Greater(t, romance, drama)

	self := tfidf.Cosine(matrix[0], matrix[0])
	assert.InDelta(t, 1.0, self, 1e-9)
}

// TestFitIsDeterministic verifies that refitting the same corpus yields
// identical vectors, the property the catalog hot-reload relies on.
func TestFitIsDeterministic(t *testing.T) {
	corpus := []string{
		"alpha beta gamma delta",
		"beta gamma epsilon",
		"gamma zeta alpha",
	}

	first := tfidf.NewVectorizer(4)
	second := tfidf.NewVectorizer(4)
	matrixA := first.Fit(corpus)
	matrixB := second.Fit(corpus)

	assert.Equal(t, first.VocabularySize(), second.VocabularySize())
	assert.Equal(t, matrixA, matrixB)
}
