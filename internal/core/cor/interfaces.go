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

// Package cor (Chain of Responsibility) provides the fundamental building
// blocks for composing pipelines out of small commands. This file defines
// the core interfaces that govern the behavior of all components within the
// pattern. Both the per-request recommendation pipeline and the offline
// scraper are assembled from these pieces.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the default keys used to manage the primary data
// flow within a BaseChain: the chain moves each command's CtxOut value into
// CtxIn before running the next command, creating a pipeline. Commands that
// participate in multi-input steps use named parameter keys instead.
const (
	CtxIn  = "__IN__"
	CtxOut = "__OUT__"
)

// Context is the shared state object passed through a chain of commands: a
// property bag for a single pipeline execution, carrying data and errors
// between commands along with the standard Go context for cancellation and
// trace propagation.
type Context interface {
	// SetContext sets the standard Go context.Context; the chain uses this
	// to keep OpenTelemetry spans nested correctly.
	SetContext(context context.Context)

	// GetContext retrieves the standard Go context.Context.
	GetContext() context.Context

	// Add stores a key-value pair, returning the Context for chaining.
	Add(key string, value interface{}) Context

	// Get retrieves a value by key; nil when absent.
	Get(key string) interface{}

	// Remove deletes a key-value pair.
	Remove(key string)

	// AddError records an error under the name of the command that
	// produced it.
	AddError(key string, err error)

	// GetErrors returns all errors collected during the execution.
	GetErrors() map[string]error

	// HasErrors reports whether any command has failed.
	HasErrors() bool
}

// Executable is anything with a core execution step.
type Executable interface {
	// Execute runs the business logic, reading inputs from and writing
	// outputs to the shared Context.
	Execute(context Context)
}

// Command is an atomic, testable unit of work: the building block of a
// pipeline.
type Command interface {
	Executable

	// GetName returns the command's unique name, used for logging,
	// tracing, and the error map.
	GetName() string

	// GetInputParam returns the context key the command reads its primary
	// input from.
	GetInputParam() string

	// GetOutputParam returns the context key the command writes its
	// primary output to.
	GetOutputParam() string

	// IsExecutable is the precondition check run before Execute.
	IsExecutable(context Context) bool

	// GetTracer returns the command's OpenTelemetry tracer.
	GetTracer() trace.Tracer

	// GetMeter returns the command's OpenTelemetry meter.
	GetMeter() metric.Meter

	// GetSuccessCounter returns the counter incremented on success.
	GetSuccessCounter() metric.Int64Counter

	// GetErrorCounter returns the counter incremented on failure.
	GetErrorCounter() metric.Int64Counter
}

// Chain is a sequence of commands. A Chain is itself a Command, so chains
// nest (composite pattern).
type Chain interface {
	Command

	// ContinueOnFailure configures whether the chain keeps executing after
	// a command records an error. The default is to stop.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain
}
