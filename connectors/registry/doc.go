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

// Package registry maps connection URL schemes to database dialects.
//
// Dialect packages (connectors/postgres, connectors/mysql) register
// themselves with the Default registry from init, so importing a dialect
// package is all that is needed to make its scheme resolvable:
//
//	import (
//	    _ "procstream/platform/connectors/postgres"
//	)
//
//	d, err := registry.Resolve("postgres://db:5432/app")
package registry
