// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package webmachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObservabilityProvider_BuildsUsableProviders(t *testing.T) {
	t.Parallel()

	o, err := NewObservabilityProvider("webmachine_test")
	require.NoError(t, err)
	require.NotNil(t, o)
	require.NotNil(t, o.Registry)

	assert.NotPanics(t, func() {
		o.recordRequest(context.Background(), "/widgets", 200)
	})

	families, err := o.Registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "webmachine_requests_total_otel" {
			found = true
		}
	}
	assert.True(t, found, "expected the otel counter to surface through the prometheus registry")

	assert.NoError(t, o.Shutdown(context.Background()))
}

func TestObservabilityProvider_RecordRequestIsNilSafe(t *testing.T) {
	t.Parallel()

	var o *ObservabilityProvider
	assert.NotPanics(t, func() {
		o.recordRequest(context.Background(), "/widgets", 200)
	})
	assert.NoError(t, o.Shutdown(context.Background()))
}

func TestObservabilityProvider_WiredThroughDispatcher(t *testing.T) {
	t.Parallel()

	o, err := NewObservabilityProvider("dispatch_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = o.Shutdown(context.Background()) })

	d := NewDispatcher()
	d.Observability = o
	d.Mount("/", NewResource())

	ctx := NewContext(NewRequest())
	d.DispatchToResource(context.Background(), ctx)

	families, err := o.Registry.Gather()
	require.NoError(t, err)

	var total float64
	for _, f := range families {
		if f.GetName() != "webmachine_requests_total_otel" {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(1), total)
}
