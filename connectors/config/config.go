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

package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"procstream/platform/connectors/base"
)

// File represents the root structure of a procedure profile file
type File struct {
	Version    string                      `yaml:"version"`
	Connection ConnectionConfig            `yaml:"connection"`
	Procedures map[string]*ProcedureConfig `yaml:"procedures"`
}

// ConnectionConfig holds the database connection settings shared by all
// profiles in the file
type ConnectionConfig struct {
	URL      string `yaml:"url"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// ProcedureConfig is one named invocation profile. Columns is the ordered
// output column list; its order must match the procedure's output column
// order exactly and is trusted as-is.
type ProcedureConfig struct {
	Call       string   `yaml:"call,omitempty"`      // literal call text, used verbatim when set
	Procedure  string   `yaml:"procedure,omitempty"` // procedure name for dialect call construction
	Args       int      `yaml:"args,omitempty"`      // positional parameter count for construction
	Columns    []string `yaml:"columns"`
	TimeoutMs  int      `yaml:"timeout_ms,omitempty"`
	CacheTTLMs int      `yaml:"cache_ttl_ms,omitempty"`
}

// Timeout returns the per-invocation timeout, defaulting to 30s.
func (p *ProcedureConfig) Timeout() time.Duration {
	if p.TimeoutMs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(p.TimeoutMs) * time.Millisecond
}

// CacheTTL returns the result cache TTL; zero disables caching for the
// profile.
func (p *ProcedureConfig) CacheTTL() time.Duration {
	if p.CacheTTLMs <= 0 {
		return 0
	}
	return time.Duration(p.CacheTTLMs) * time.Millisecond
}

// ResolveCall returns the call text for the profile, rendering it through
// the dialect when no literal call text was configured.
func (p *ProcedureConfig) ResolveCall(d base.Dialect) (string, error) {
	if p.Call != "" {
		return p.Call, nil
	}
	if p.Procedure == "" {
		return "", fmt.Errorf("profile has neither call text nor a procedure name")
	}
	return d.BuildCall(p.Procedure, p.Args), nil
}

// Load reads and parses a procedure profile file. Environment variable
// references (${VAR} or ${VAR:-default}) are expanded before parsing so
// credentials never have to live in the file itself.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var f File
	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return nil, fmt.Errorf("failed to parse profile file %s: %w", path, err)
	}

	if f.Connection.URL == "" {
		return nil, fmt.Errorf("profile file %s has no connection.url", path)
	}
	for name, p := range f.Procedures {
		if p == nil {
			return nil, fmt.Errorf("profile %q is empty", name)
		}
		if p.Call == "" && p.Procedure == "" {
			return nil, fmt.Errorf("profile %q has neither call text nor a procedure name", name)
		}
		if len(p.Columns) == 0 {
			return nil, fmt.Errorf("profile %q has no columns", name)
		}
	}

	return &f, nil
}

// Procedure returns the named profile.
func (f *File) Procedure(name string) (*ProcedureConfig, error) {
	p, ok := f.Procedures[name]
	if !ok {
		return nil, fmt.Errorf("unknown procedure profile %q", name)
	}
	return p, nil
}

// envVarRegex matches ${VAR_NAME} references
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]

		// Handle default values: ${VAR_NAME:-default}
		defaultVal := ""
		if idx := strings.Index(varName, ":-"); idx != -1 {
			defaultVal = varName[idx+2:]
			varName = varName[:idx]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultVal
	})
}
