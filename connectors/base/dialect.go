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

package base

// Dialect captures the driver-specific pieces of a stored procedure
// invocation: which database/sql driver to open, how connection settings
// become a DSN, and how a procedure call is phrased.
type Dialect interface {
	// DriverName returns the database/sql driver name this dialect opens.
	DriverName() string

	// BuildDSN converts a connection URL plus credentials into a DSN
	// accepted by the driver. Credentials embedded in the URL are
	// overridden when user is non-empty.
	BuildDSN(rawURL, user, password string) (string, error)

	// BuildCall renders the call text for a stored procedure with the
	// given number of positional parameters, e.g.
	// "SELECT * FROM report($1, $2)" or "CALL report(?, ?)".
	BuildCall(procedure string, argCount int) string
}
