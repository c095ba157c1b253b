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
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"procstream/platform/connectors/base"
	"procstream/platform/connectors/registry"
	"procstream/platform/shared/types"
)

const defaultInvokeTimeout = 30 * time.Second

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	resp := types.HealthResponse{
		Status:    "healthy",
		Service:   "procstream",
		Version:   serviceVersion,
		Timestamp: time.Now().UTC(),
	}
	if stats := s.pool.Stats(); stats != nil {
		resp.Pool = &types.PoolStats{
			OpenConnections: stats.OpenConnections,
			InUse:           stats.InUse,
			Idle:            stats.Idle,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// invokeHandler executes a stored procedure and streams its result set
// back as a JSON array. The request either names a configured profile or
// supplies the call text and column list inline.
func (s *Server) invokeHandler(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	w.Header().Set("X-Request-ID", requestID)

	var req types.InvokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, requestID, "invalid request body")
		return
	}

	call, columns, timeout, cacheTTL, status, msg := s.resolveRequest(&req)
	if msg != "" {
		s.writeError(w, status, requestID, msg)
		return
	}

	if s.cache != nil && cacheTTL > 0 {
		if payload, ok := s.cache.Get(r.Context(), call, columns); ok {
			s.log.Debug(requestID, "result cache hit", map[string]interface{}{"call": call})
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Write(payload)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	start := time.Now()
	conn := s.profiles.Connection
	payload, err := s.caller.CallProcedureAsJSON(ctx, call, conn.URL, conn.User, conn.Password, columns)
	if err != nil {
		s.log.Error(requestID, "invocation failed", err, map[string]interface{}{"call": call})
		s.writeError(w, http.StatusInternalServerError, requestID, err.Error())
		return
	}

	s.log.InfoWithDuration(requestID, "invocation complete", time.Since(start), map[string]interface{}{
		"call": call,
	})

	if s.cache != nil && cacheTTL > 0 {
		s.cache.Put(r.Context(), call, columns, payload, cacheTTL)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// resolveRequest turns an invoke request into call text, a column list,
// a timeout, and a cache TTL. A non-empty message signals a client error
// reported with the paired status code.
func (s *Server) resolveRequest(req *types.InvokeRequest) (call string, columns []string, timeout, cacheTTL time.Duration, status int, msg string) {
	if req.Profile != "" {
		p, err := s.profiles.Procedure(req.Profile)
		if err != nil {
			return "", nil, 0, 0, http.StatusNotFound, err.Error()
		}

		var d base.Dialect
		if p.Call == "" {
			d, err = registry.Resolve(s.profiles.Connection.URL)
			if err != nil {
				return "", nil, 0, 0, http.StatusInternalServerError, err.Error()
			}
		}
		call, err = p.ResolveCall(d)
		if err != nil {
			return "", nil, 0, 0, http.StatusInternalServerError, err.Error()
		}
		return call, p.Columns, p.Timeout(), p.CacheTTL(), 0, ""
	}

	if req.Call == "" {
		return "", nil, 0, 0, http.StatusBadRequest, "request must name a profile or supply call text"
	}
	if len(req.Columns) == 0 {
		return "", nil, 0, 0, http.StatusBadRequest, "inline invocation requires a column list"
	}
	return req.Call, req.Columns, defaultInvokeTimeout, 0, 0, ""
}

func (s *Server) writeError(w http.ResponseWriter, status int, requestID, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, RequestID: requestID})
}
