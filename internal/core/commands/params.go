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

// Package commands provides the concrete Command implementations composed
// into pipelines by the workflow package. This file defines the named
// context parameter keys shared across commands.
//
// The recommendation pipeline deliberately uses named keys instead of the
// chain's CtxIn/CtxOut piping: the candidate set threads through all three
// filters under one key while the request and index snapshot stay readable
// by every step.
package commands

// Context parameter keys for the recommendation pipeline.
const (
	requestParamName         = "__request__"         // *model.RecommendationRequest for the call.
	indexParamName           = "__index__"           // *engine.CatalogIndex snapshot the call runs against.
	candidatesParamName      = "__candidates__"      // []int catalog row positions surviving filtering so far.
	queryParamName           = "__query__"           // string synthesized query text.
	recommendationsParamName = "__recommendations__" // []*model.Recommendation final ordered results.
)

// GetRequestParamName returns the context key holding the recommendation
// request.
func GetRequestParamName() string { return requestParamName }

// GetIndexParamName returns the context key holding the catalog index
// snapshot.
func GetIndexParamName() string { return indexParamName }

// GetCandidatesParamName returns the context key holding the surviving
// candidate row positions.
func GetCandidatesParamName() string { return candidatesParamName }

// GetQueryParamName returns the context key holding the synthesized query
// text.
func GetQueryParamName() string { return queryParamName }

// GetRecommendationsParamName returns the context key holding the final
// ordered recommendations.
func GetRecommendationsParamName() string { return recommendationsParamName }
