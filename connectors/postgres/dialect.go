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

package postgres

import (
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq" // PostgreSQL driver

	"procstream/platform/connectors/base"
	"procstream/platform/connectors/registry"
)

// Dialect implements base.Dialect for PostgreSQL
type Dialect struct{}

func init() {
	registry.Register("postgres", Dialect{})
	registry.Register("postgresql", Dialect{})
}

// DriverName returns the database/sql driver name
func (Dialect) DriverName() string {
	return "postgres"
}

// BuildDSN normalizes a postgres:// URL into a DSN for lib/pq.
// Explicit user/password override any credentials embedded in the URL.
func (Dialect) BuildDSN(rawURL, user, password string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid PostgreSQL URL: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("PostgreSQL URL %q has no host", rawURL)
	}

	// lib/pq accepts both scheme spellings; keep the canonical one
	u.Scheme = "postgres"
	if user != "" {
		u.User = url.UserPassword(user, password)
	}

	return u.String(), nil
}

// BuildCall renders a set-returning function call using positional
// parameters: SELECT * FROM proc($1, $2)
func (Dialect) BuildCall(procedure string, argCount int) string {
	placeholders := make([]string, argCount)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("SELECT * FROM %s(%s)", procedure, strings.Join(placeholders, ", "))
}

var _ base.Dialect = Dialect{}
