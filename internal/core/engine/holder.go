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

// Package engine assembles the catalog index. This file provides the
// atomic holder used for catalog hot-reloads: a replacement index is built
// fully off to the side and then swapped in as a whole, so in-flight
// requests keep the snapshot they started with and never observe a
// half-built vector space.
package engine

import "sync/atomic"

// IndexHolder holds the current CatalogIndex behind an atomic pointer.
// Readers snapshot once per request; the only writer is the reload path.
type IndexHolder struct {
	current atomic.Pointer[CatalogIndex]
}

// NewIndexHolder constructs a holder seeded with the given index.
func NewIndexHolder(index *CatalogIndex) *IndexHolder {
	h := &IndexHolder{}
	h.current.Store(index)
	return h
}

// Current returns the active index snapshot. Callers keep using the
// returned pointer for the whole request, even across a concurrent swap.
func (h *IndexHolder) Current() *CatalogIndex {
	return h.current.Load()
}

// Swap atomically replaces the active index with a fully built one.
func (h *IndexHolder) Swap(index *CatalogIndex) {
	h.current.Store(index)
}
