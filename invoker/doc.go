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
Package invoker executes stored procedures and streams their result sets
straight to JSON.

# Overview

The package is built for deployments where thousands of short-lived,
highly concurrent invocations must avoid both repeated connection
establishment and intermediate in-memory representations of the result
set. Two pieces carry that load:

  - PoolManager: a process-wide connection pool, constructed exactly once
    on first use and then read lock-free. Credentials are bound
    first-caller-wins for the process lifetime.
  - StreamRows: a single-pass transformer from a forward-only cursor to a
    JSON array of objects, keyed by a configured column-name list using
    positional access, so the result metadata is never consulted.

# Invoking

	payload, err := invoker.CallProcedureAsJSON(ctx,
	    "SELECT * FROM reporting.revenue($1)",
	    "postgres://db.internal:5432/reports?sslmode=require",
	    "svc_reports", "s3cret",
	    []string{"ID", "REGION", "TOTAL"})

Every failure surfaces as a single *base.InvocationError wrapping the
underlying cause; no partial document is ever returned. Cancellation and
timeouts are not a first-class concept here: the context is handed down
to the pool and driver, whose own policies apply.

# Positional contract

The configured column names are trusted: the i-th name labels the i-th
column of each row. Extra result columns beyond the configured names are
silently dropped column-wise; this is load-bearing behavior for callers
that configure a prefix of a wide procedure's output.
*/
package invoker
