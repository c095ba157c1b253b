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

/*
Package config loads procedure invocation profiles from a YAML file.

A profile names a stored procedure call plus the ordered list of output
column names the streamer will emit. The column order is configuration,
not introspection: it must match the procedure's output column order and
is trusted as supplied.

Example file:

	version: "1"
	connection:
	  url: postgres://db.internal:5432/reports?sslmode=require
	  user: ${PROCSTREAM_DB_USER}
	  password: ${PROCSTREAM_DB_PASSWORD}
	procedures:
	  revenue:
	    call: "SELECT * FROM reporting.revenue($1)"
	    columns: [ID, REGION, TOTAL]
	    timeout_ms: 5000
	  customers:
	    procedure: reporting.customers
	    args: 2
	    columns: [ID, NAME]

Environment references of the form ${VAR} or ${VAR:-default} are expanded
before parsing, so credentials stay out of the file.
*/
package config
