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

// Package main is the entry point for the ProcStream service.
//
// ProcStream exposes stored procedure invocation over HTTP:
// - Executes configured procedure profiles against PostgreSQL or MySQL
// - Streams result sets as JSON arrays with positional column mapping
// - Shares one lazily-built connection pool across all invocations
// - Optionally caches results in Redis per profile
//
// Usage:
//
//	./server
//
// Environment Variables:
//
//	PORT - HTTP server port (default: 8080)
//	PROCSTREAM_PROFILES - procedure profile file (default: procedures.yaml)
//	JWT_SECRET - HMAC secret for bearer auth (optional)
//	REDIS_URL - Redis address for the result cache (optional)
//	LOG_LEVEL - DEBUG, INFO, WARN, ERROR (default: INFO)
package main

import (
	"procstream/platform/server"
)

func main() {
	server.Run()
}
