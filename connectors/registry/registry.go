// Copyright 2025 ProcStream
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

package registry

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"procstream/platform/connectors/base"
)

// Registry maps connection URL schemes to dialects.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	dialects map[string]base.Dialect
}

// NewRegistry creates an empty dialect registry
func NewRegistry() *Registry {
	return &Registry{
		dialects: make(map[string]base.Dialect),
	}
}

// Default is the process-wide registry that dialect packages register
// into from their init functions, mirroring database/sql driver
// registration.
var Default = NewRegistry()

// Register associates a URL scheme with a dialect. Registering the same
// scheme twice replaces the earlier dialect; last registration wins.
func (r *Registry) Register(scheme string, d base.Dialect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dialects[strings.ToLower(scheme)] = d
}

// Resolve returns the dialect for a connection URL based on its scheme.
func (r *Registry) Resolve(rawURL string) (base.Dialect, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid connection URL: %w", err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("connection URL %q has no scheme", rawURL)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dialects[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, fmt.Errorf("no dialect registered for scheme %q (registered: %s)",
			u.Scheme, strings.Join(r.schemesLocked(), ", "))
	}
	return d, nil
}

// Schemes returns the registered schemes in sorted order.
func (r *Registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.schemesLocked()
}

func (r *Registry) schemesLocked() []string {
	schemes := make([]string, 0, len(r.dialects))
	for s := range r.dialects {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	return schemes
}

// Register adds a dialect to the default registry.
func Register(scheme string, d base.Dialect) {
	Default.Register(scheme, d)
}

// Resolve looks up a dialect in the default registry.
func Resolve(rawURL string) (base.Dialect, error) {
	return Default.Resolve(rawURL)
}
