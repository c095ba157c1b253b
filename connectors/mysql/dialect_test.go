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

package mysql

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procstream/platform/connectors/registry"
)

func TestDialect_BuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		user     string
		password string
		wantUser string
		wantAddr string
		wantDB   string
		wantErr  bool
	}{
		{
			name:     "explicit credentials",
			rawURL:   "mysql://db.internal:3306/reports",
			user:     "svc_reports",
			password: "s3cret",
			wantUser: "svc_reports",
			wantAddr: "db.internal:3306",
			wantDB:   "reports",
		},
		{
			name:     "credentials from URL",
			rawURL:   "mysql://embedded:pw@db.internal:3307/reports",
			wantUser: "embedded",
			wantAddr: "db.internal:3307",
			wantDB:   "reports",
		},
		{
			name:     "default port",
			rawURL:   "mysql://db.internal/reports",
			user:     "svc",
			wantUser: "svc",
			wantAddr: "db.internal:3306",
			wantDB:   "reports",
		},
		{
			name:    "missing database",
			rawURL:  "mysql://db.internal:3306/",
			wantErr: true,
		},
		{
			name:    "missing host",
			rawURL:  "mysql:///reports",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := Dialect{}.BuildDSN(tt.rawURL, tt.user, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			cfg, err := mysql.ParseDSN(dsn)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, cfg.User)
			assert.Equal(t, tt.wantAddr, cfg.Addr)
			assert.Equal(t, tt.wantDB, cfg.DBName)
			assert.True(t, cfg.ParseTime, "ParseTime should be enabled")
		})
	}
}

func TestDialect_BuildDSN_QueryParams(t *testing.T) {
	dsn, err := Dialect{}.BuildDSN("mysql://db.internal:3306/reports?charset=utf8mb4", "svc", "pw")
	require.NoError(t, err)

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "utf8mb4", cfg.Params["charset"])
}

func TestDialect_BuildCall(t *testing.T) {
	d := Dialect{}

	assert.Equal(t, "CALL revenue_report()", d.BuildCall("revenue_report", 0))
	assert.Equal(t, "CALL revenue_report(?)", d.BuildCall("revenue_report", 1))
	assert.Equal(t, "CALL revenue_report(?, ?, ?)", d.BuildCall("revenue_report", 3))
}

func TestDialect_RegisteredScheme(t *testing.T) {
	d, err := registry.Resolve("mysql://db:3306/app")
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.DriverName())
}
