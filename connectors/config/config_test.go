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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfileFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "procedures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validProfiles = `
version: "1"
connection:
  url: postgres://db.internal:5432/reports?sslmode=require
  user: ${PROCSTREAM_DB_USER}
  password: ${PROCSTREAM_DB_PASSWORD:-fallback-pw}
procedures:
  revenue:
    call: "SELECT * FROM reporting.revenue($1)"
    columns: [ID, REGION, TOTAL]
    timeout_ms: 5000
    cache_ttl_ms: 60000
  customers:
    procedure: reporting.customers
    args: 2
    columns: [ID, NAME]
`

func TestLoad(t *testing.T) {
	t.Setenv("PROCSTREAM_DB_USER", "svc_reports")

	f, err := Load(writeProfileFile(t, validProfiles))
	require.NoError(t, err)

	assert.Equal(t, "postgres://db.internal:5432/reports?sslmode=require", f.Connection.URL)
	assert.Equal(t, "svc_reports", f.Connection.User, "env var should be expanded")
	assert.Equal(t, "fallback-pw", f.Connection.Password, "unset env var should fall back to default")

	revenue, err := f.Procedure("revenue")
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "REGION", "TOTAL"}, revenue.Columns)
	assert.Equal(t, 5*time.Second, revenue.Timeout())
	assert.Equal(t, time.Minute, revenue.CacheTTL())
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "missing connection URL",
			content: "procedures:\n  p:\n    call: \"CALL p()\"\n    columns: [A]\n",
			errMsg:  "no connection.url",
		},
		{
			name:    "profile without call or procedure",
			content: "connection:\n  url: postgres://db/x\nprocedures:\n  p:\n    columns: [A]\n",
			errMsg:  "neither call text nor a procedure name",
		},
		{
			name:    "profile without columns",
			content: "connection:\n  url: postgres://db/x\nprocedures:\n  p:\n    call: \"CALL p()\"\n",
			errMsg:  "no columns",
		},
		{
			name:    "malformed yaml",
			content: "connection: [unclosed",
			errMsg:  "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeProfileFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestFile_Procedure_Unknown(t *testing.T) {
	f, err := Load(writeProfileFile(t, validProfiles))
	require.NoError(t, err)

	_, err = f.Procedure("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown procedure profile "nope"`)
}

func TestProcedureConfig_Defaults(t *testing.T) {
	p := &ProcedureConfig{Columns: []string{"A"}}

	assert.Equal(t, 30*time.Second, p.Timeout())
	assert.Equal(t, time.Duration(0), p.CacheTTL())
}

type callDialect struct{}

func (callDialect) DriverName() string { return "fake" }

func (callDialect) BuildDSN(rawURL, user, password string) (string, error) {
	return rawURL, nil
}

func (callDialect) BuildCall(procedure string, argCount int) string {
	return "CALL " + procedure + "/" + string(rune('0'+argCount))
}

func TestProcedureConfig_ResolveCall(t *testing.T) {
	literal := &ProcedureConfig{Call: "SELECT * FROM f($1)"}
	got, err := literal.ResolveCall(callDialect{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM f($1)", got, "literal call text is used verbatim")

	constructed := &ProcedureConfig{Procedure: "f", Args: 2}
	got, err = constructed.ResolveCall(callDialect{})
	require.NoError(t, err)
	assert.Equal(t, "CALL f/2", got)

	empty := &ProcedureConfig{}
	_, err = empty.ResolveCall(callDialect{})
	assert.Error(t, err)
}
