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

const routesYAML = `
routes:
  - path: /widgets
    resource:
      allowedMethods: ["GET", "HEAD", "POST"]
      produces: ["application/json", "application/xml"]
`

func TestParseDispatcherConfig_DecodesRoutes(t *testing.T) {
	t.Parallel()

	cfg, err := ParseDispatcherConfig([]byte(routesYAML))
	require.NoError(t, err)
	require.Len(t, cfg.Routes, 1)
	assert.Equal(t, "/widgets", cfg.Routes[0].Path)
	assert.Equal(t, []string{"GET", "HEAD", "POST"}, cfg.Routes[0].Resource.AllowedMethods)
}

func TestResourceConfig_ApplyToOnlyOverridesNonEmptyFields(t *testing.T) {
	t.Parallel()

	resource := NewResource()
	cfg := ResourceConfig{AllowedMethods: []string{"GET", "POST"}}
	cfg.ApplyTo(resource)

	assert.Equal(t, []string{"GET", "POST"}, resource.AllowedMethods)
	assert.Equal(t, []string{"application/json"}, resource.Produces)
}

func TestLoadDispatcher_MountsConfiguredResource(t *testing.T) {
	t.Parallel()

	d, err := LoadDispatcher([]byte(routesYAML))
	require.NoError(t, err)

	req := NewRequest()
	req.RequestPath = "/widgets"
	req.Method = "DELETE"
	ctx := NewContext(req)
	d.DispatchToResource(context.Background(), ctx)

	assert.Equal(t, 405, ctx.Response.Status)
	allow := ctx.Response.Headers["Allow"]
	require.Len(t, allow, 3)
}
