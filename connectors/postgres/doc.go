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
Package postgres provides the PostgreSQL dialect for ProcStream.

It registers the "postgres" and "postgresql" URL schemes with the dialect
registry and opens connections through the lib/pq driver.

Stored procedures in PostgreSQL return their result set through
set-returning functions, so BuildCall renders

	SELECT * FROM reporting.revenue($1, $2)

rather than the SQL-standard CALL syntax, whose OUT-parameter model does
not surface a forward-only cursor through database/sql.
*/
package postgres
