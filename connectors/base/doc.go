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
Package base provides the core types shared by ProcStream database
dialects.

# Overview

A Dialect knows everything driver-specific about invoking a stored
procedure: the database/sql driver name, DSN construction, and the call
syntax. Dialects register themselves with the connectors/registry package
and are resolved from the connection URL scheme at invocation time.

# Errors

InvocationError is the single error type crossing the invocation
boundary. It wraps the underlying cause and names the step that failed:

	if err != nil {
	    return base.NewInvocationError("execute", "procedure call failed", err)
	}

Callers can unwrap it with errors.As / errors.Unwrap to reach the
driver-level cause.
*/
package base
