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
// blocks for composing pipelines. This file defines BaseContext, the
// default implementation of the Context interface: a property bag passed
// through the whole chain, from which each command reads its inputs and to
// which it writes its results for subsequent commands.
package cor

import (
	"context"
)

// BaseContext is the default implementation of the Context interface. It
// holds the shared state for one pipeline execution, so a fresh instance is
// created per execution and never shared across requests.
type BaseContext struct {
	data    map[string]interface{} // Arbitrary key-value data shared between commands.
	errors  map[string]error       // Errors keyed by the command name that produced them.
	context context.Context        // Standard Go context for cancellation and trace propagation.
}

// NewBaseContext constructs an empty context ready for use.
func NewBaseContext() Context {
	return &BaseContext{
		data:   make(map[string]interface{}),
		errors: make(map[string]error),
	}
}

// SetContext sets the underlying standard Go context. The BaseChain uses
// this to manage span parentage during execution.
func (c *BaseContext) SetContext(context context.Context) {
	c.context = context
}

// GetContext retrieves the underlying standard Go context.
func (c *BaseContext) GetContext() context.Context {
	return c.context
}

// Add stores a key-value pair in the context's data map, returning the
// Context for fluent chaining.
func (c *BaseContext) Add(key string, value interface{}) Context {
	c.data[key] = value
	return c
}

// Get retrieves a value from the context's data map by its key, nil when
// the key does not exist.
func (c *BaseContext) Get(key string) interface{} {
	return c.data[key]
}

// Remove deletes a key-value pair from the context's data map.
func (c *BaseContext) Remove(key string) {
	delete(c.data, key)
}

// AddError adds an error to the context's error map, keyed by the command
// name that produced it.
func (c *BaseContext) AddError(key string, err error) {
	c.errors[key] = err
}

// GetErrors returns the map of all errors collected during the execution.
func (c *BaseContext) GetErrors() map[string]error {
	return c.errors
}

// HasErrors reports whether any errors have been added to the context.
func (c *BaseContext) HasErrors() bool {
	return len(c.errors) > 0
}
