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

// Package main contains the API route definitions for the server. This
// file defines the statistics endpoint that reports the shape of the
// currently served catalog index.
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Dashboard configures the statistics routes. It creates a "/stats" route
// group nested under the main API router group.
//
// Inputs:
//   - r: A *gin.RouterGroup to which the new "/stats" route group will be added.
//
// The GET endpoint at the group root reports the current index snapshot:
// movie count, fitted vocabulary size, and the newest release year the
// recency windows anchor to. A 503 means no catalog has been loaded yet.
func Dashboard(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("", func(c *gin.Context) {
			index := state.holder.Current()
			if index == nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no catalog index is loaded"})
				return
			}
			out := gin.H{
				"movies":     index.Catalog().Len(),
				"vocabulary": index.VocabularySize(),
			}
			if maxYear, ok := index.Catalog().MaxYear(); ok {
				out["max_year"] = maxYear
			}
			c.JSON(http.StatusOK, out)
		})
	}
}
