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
	"fmt"

	"github.com/goccy/go-yaml"
)

// ResourceConfig is the declarative subset of Resource: the static
// capability lists that a config file can reasonably express, as opposed
// to the behavioral callbacks that only application code can supply.
// ApplyTo copies these onto a Resource built by NewResource, leaving every
// callback at its default.
type ResourceConfig struct {
	AllowedMethods         []string `yaml:"allowedMethods"`
	AcceptableContentTypes []string `yaml:"acceptableContentTypes"`
	Produces               []string `yaml:"produces"`
	LanguagesProvided      []string `yaml:"languagesProvided"`
	CharsetsProvided       []string `yaml:"charsetsProvided"`
	EncodingsProvided      []string `yaml:"encodingsProvided"`
	Variances              []string `yaml:"variances"`
}

// RouteConfig pairs a mount path with its declarative resource shape, the
// unit a whole dispatcher's static topology is described in.
type RouteConfig struct {
	Path     string         `yaml:"path"`
	Resource ResourceConfig `yaml:"resource"`
}

// DispatcherConfig is the top-level shape of a routes file: a flat list of
// mount points.
type DispatcherConfig struct {
	Routes []RouteConfig `yaml:"routes"`
}

// ParseDispatcherConfig decodes a routes file. It does not build any
// Resources or Dispatcher — see LoadDispatcher for that.
func ParseDispatcherConfig(data []byte) (*DispatcherConfig, error) {
	var cfg DispatcherConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("webmachine: parsing dispatcher config: %w", err)
	}
	return &cfg, nil
}

// ApplyTo overlays rc's non-empty lists onto resource, leaving fields the
// config omitted at whatever resource already has (normally NewResource's
// defaults).
func (rc ResourceConfig) ApplyTo(resource *Resource) {
	if len(rc.AllowedMethods) > 0 {
		resource.AllowedMethods = rc.AllowedMethods
	}
	if len(rc.AcceptableContentTypes) > 0 {
		resource.AcceptableContentTypes = rc.AcceptableContentTypes
	}
	if len(rc.Produces) > 0 {
		resource.Produces = rc.Produces
	}
	if len(rc.LanguagesProvided) > 0 {
		resource.LanguagesProvided = rc.LanguagesProvided
	}
	if len(rc.CharsetsProvided) > 0 {
		resource.CharsetsProvided = rc.CharsetsProvided
	}
	if len(rc.EncodingsProvided) > 0 {
		resource.EncodingsProvided = rc.EncodingsProvided
	}
	if len(rc.Variances) > 0 {
		resource.Variances = rc.Variances
	}
}

// LoadDispatcher parses a routes file and mounts a freshly defaulted
// Resource for each entry, with ResourceConfig's lists applied over it.
// Every mounted Resource keeps NewResource's default callbacks — config
// alone can't express request-handling behavior.
func LoadDispatcher(data []byte) (*Dispatcher, error) {
	cfg, err := ParseDispatcherConfig(data)
	if err != nil {
		return nil, err
	}
	d := NewDispatcher()
	for _, route := range cfg.Routes {
		resource := NewResource()
		route.Resource.ApplyTo(resource)
		d.Mount(route.Path, resource)
	}
	return d, nil
}
