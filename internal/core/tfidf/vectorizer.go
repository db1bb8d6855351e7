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

// Package tfidf implements the vector space indexer: a term-frequency /
// inverse-document-frequency vectorizer with a bounded vocabulary, plus the
// cosine similarity used to compare documents in that space.
//
// Logic flow:
//
//  1. **Fit** tokenizes every composite text (lowercase, word tokens of two
//     or more characters, English stop words removed), counts document
//     frequencies, and selects the top max-features terms by document
//     frequency (ties broken lexicographically so a rebuild of the same
//     corpus always yields the same vocabulary).
//  2. Each document becomes a sparse weight vector: log-scaled term
//     frequency (1 + ln(count)) times smoothed inverse document frequency
//     (ln((1+N)/(1+df)) + 1), L2-normalized so cosine similarity reduces
//     to a sparse dot product.
//  3. **Transform** projects arbitrary text into the fitted space. Terms
//     never seen during Fit are ignored; the vocabulary never grows after
//     fitting. Empty or entirely out-of-vocabulary text yields the zero
//     vector, and similarity against a zero vector is defined to be zero,
//     never an error or NaN.
//
// The fitted vectorizer and the document matrix are immutable after Fit;
// catalog changes require a full rebuild.
package tfidf

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxFeatures is the vocabulary cap applied when the caller does not
// configure one.
const DefaultMaxFeatures = 5000

// tokenPattern matches word tokens of at least two characters, compiled
// once at package initialization.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Vector is a sparse document vector in the fitted space: vocabulary index
// to weight. A nil or empty map is the zero vector.
type Vector map[int]float64

// IsZero reports whether the vector carries no weight at all.
func (v Vector) IsZero() bool {
	return len(v) == 0
}

// Vectorizer is the reusable transformer fitted over the catalog corpus.
// It is safe for concurrent use after Fit because nothing mutates it.
type Vectorizer struct {
	maxFeatures int
	vocabulary  map[string]int // Term -> column index in the fitted space.
	idf         []float64      // Smoothed inverse document frequency per column.
}

// NewVectorizer creates an unfitted vectorizer with the given vocabulary
// cap. A non-positive cap falls back to DefaultMaxFeatures.
func NewVectorizer(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Vectorizer{maxFeatures: maxFeatures}
}

// VocabularySize returns the number of terms selected during Fit.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}

// Fit builds the vocabulary and IDF weights from the corpus and returns the
// corpus's document matrix, one L2-normalized sparse vector per input text,
// aligned positionally with the input slice.
//
// Inputs:
//   - corpus: One composite text per catalog row, in row order.
//
// Outputs:
//   - []Vector: The document matrix; index i is the vector for corpus[i].
func (v *Vectorizer) Fit(corpus []string) []Vector {
	// Tokenize once and keep the token lists; they are needed again for
	// the weighting pass after the vocabulary is chosen.
	tokenLists := make([][]string, len(corpus))
	docFreq := make(map[string]int)
	for i, text := range corpus {
		tokens := tokenize(text)
		tokenLists[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			if _, dup := seen[t]; !dup {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	// Select the vocabulary: highest document frequency first, ties in
	// lexicographic order so the fitted space is deterministic.
	terms := make([]string, 0, len(docFreq))
	for t := range docFreq {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(a, b int) bool {
		if docFreq[terms[a]] != docFreq[terms[b]] {
			return docFreq[terms[a]] > docFreq[terms[b]]
		}
		return terms[a] < terms[b]
	})
	if len(terms) > v.maxFeatures {
		terms = terms[:v.maxFeatures]
	}
	// Column order is lexicographic over the selected terms; any stable
	// order works, this one survives rebuilds of identical corpora.
	sort.Strings(terms)

	v.vocabulary = make(map[string]int, len(terms))
	for i, t := range terms {
		v.vocabulary[t] = i
	}

	// Smoothed IDF: ln((1+N)/(1+df)) + 1.
	n := float64(len(corpus))
	v.idf = make([]float64, len(terms))
	for i, t := range terms {
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	// Weighting pass: build one normalized vector per document.
	matrix := make([]Vector, len(corpus))
	for i, tokens := range tokenLists {
		matrix[i] = v.vectorize(tokens)
	}
	return matrix
}

// Transform projects an arbitrary text into the fitted vector space. Terms
// unseen during Fit are ignored; there is no vocabulary growth after
// fitting. Empty or fully out-of-vocabulary text returns the zero vector.
func (v *Vectorizer) Transform(text string) Vector {
	return v.vectorize(tokenize(text))
}

// vectorize turns a token list into an L2-normalized sparse TF-IDF vector
// over the fitted vocabulary.
func (v *Vectorizer) vectorize(tokens []string) Vector {
	counts := make(map[int]int)
	for _, t := range tokens {
		if col, ok := v.vocabulary[t]; ok {
			counts[col]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}

	out := make(Vector, len(counts))
	var sumSquares float64
	for col, c := range counts {
		// Log-scaled term frequency times inverse document frequency.
		w := (1 + math.Log(float64(c))) * v.idf[col]
		out[col] = w
		sumSquares += w * w
	}
	norm := math.Sqrt(sumSquares)
	for col := range out {
		out[col] /= norm
	}
	return out
}

// Cosine returns the cosine similarity of two vectors in the fitted space.
// Both inputs are L2-normalized by construction, so the similarity is the
// sparse dot product. Either side being the zero vector yields 0, never an
// error or NaN.
func Cosine(a, b Vector) float64 {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	// Iterate the smaller map.
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for col, w := range a {
		if bw, ok := b[col]; ok {
			dot += w * bw
		}
	}
	return dot
}

// tokenize lowercases the text, splits it into word tokens of at least two
// characters, and drops English stop words.
func tokenize(text string) []string {
	if text == "" {
		return nil
	}
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, stop := englishStopWords[t]; !stop {
			out = append(out, t)
		}
	}
	return out
}
