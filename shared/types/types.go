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

// Package types holds the request and response shapes of the ProcStream
// HTTP surface.
package types

import "time"

// InvokeRequest asks for one stored procedure invocation. Either Profile
// names a configured procedure profile, or Call plus Columns describe the
// invocation inline.
type InvokeRequest struct {
	Profile string   `json:"profile,omitempty"`
	Call    string   `json:"call,omitempty"`
	Columns []string `json:"columns,omitempty"`
}

// ErrorResponse is the JSON body returned on any failed invocation
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// PoolStats reports the state of the shared connection pool
type PoolStats struct {
	OpenConnections int `json:"open_connections"`
	InUse           int `json:"in_use"`
	Idle            int `json:"idle"`
}

// HealthResponse is the body of the /health endpoint
type HealthResponse struct {
	Status    string     `json:"status"`
	Service   string     `json:"service"`
	Version   string     `json:"version"`
	Timestamp time.Time  `json:"timestamp"`
	Pool      *PoolStats `json:"pool,omitempty"`
}
