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

package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test-client",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func invokeWithAuth(t *testing.T, s *Server, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest("POST", "/api/v1/invoke", bytes.NewBufferString(`{"profile":"revenue"}`))
	if authorization != "" {
		r.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, r)
	return w
}

func TestRequireAuth_NoSecretPassesThrough(t *testing.T) {
	caller := &fakeCaller{payload: []byte(`[]`)}
	s := newTestServer(t, caller)

	w := invokeWithAuth(t, s, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, caller.calls)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	secret := []byte("test-secret")
	caller := &fakeCaller{payload: []byte(`[]`)}
	s := newTestServer(t, caller, WithJWTSecret(secret))

	w := invokeWithAuth(t, s, "Bearer "+signToken(t, secret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, caller.calls)
}

func TestRequireAuth_Rejections(t *testing.T) {
	secret := []byte("test-secret")

	tests := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + signToken(t, []byte("other-secret"))},
		{"expired token", "Bearer " + signExpired(t, secret)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := &fakeCaller{}
			s := newTestServer(t, caller, WithJWTSecret(secret))

			w := invokeWithAuth(t, s, tt.authorization)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, 0, caller.calls)
		})
	}
}

func signExpired(t *testing.T, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "test-client",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}
