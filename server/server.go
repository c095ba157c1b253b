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
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"procstream/platform/connectors/config"
	"procstream/platform/invoker"
	"procstream/platform/shared/logger"

	// Register the built-in dialects.
	_ "procstream/platform/connectors/mysql"
	_ "procstream/platform/connectors/postgres"
)

const serviceVersion = "1.0.0"

// procedureCaller is the invocation contract consumed from the core.
type procedureCaller interface {
	CallProcedureAsJSON(ctx context.Context, call, rawURL, user, password string, columns []string) ([]byte, error)
}

// Server hosts the invocation API over HTTP
type Server struct {
	profiles  *config.File
	caller    procedureCaller
	pool      *invoker.PoolManager
	cache     *invoker.ResultCache
	jwtSecret []byte
	log       *logger.Logger
}

// Option configures a Server
type Option func(*Server)

// WithCache enables the Redis result cache for profiles with a TTL
func WithCache(c *invoker.ResultCache) Option {
	return func(s *Server) { s.cache = c }
}

// WithJWTSecret enables bearer-token auth on /api/v1 routes. An empty
// secret leaves the API open (development mode).
func WithJWTSecret(secret []byte) Option {
	return func(s *Server) { s.jwtSecret = secret }
}

// WithPool sets the pool manager used for health reporting
func WithPool(pm *invoker.PoolManager) Option {
	return func(s *Server) { s.pool = pm }
}

// New creates a Server around loaded procedure profiles and an invoker
func New(profiles *config.File, caller procedureCaller, opts ...Option) *Server {
	s := &Server{
		profiles: profiles,
		caller:   caller,
		pool:     invoker.SharedPool,
		log:      logger.New("server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the HTTP routes
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.healthHandler).Methods("GET")
	r.Handle("/prometheus", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/api/v1/invoke", s.requireAuth(s.invokeHandler)).Methods("POST")

	return r
}

// Run is the exported entry point for the ProcStream service. It loads
// the procedure profiles, wires the invoker and optional cache, and
// blocks serving HTTP.
//
// Environment variables:
//
//	PORT                - HTTP server port (default: 8080)
//	PROCSTREAM_PROFILES - procedure profile file (default: procedures.yaml)
//	JWT_SECRET          - HMAC secret for bearer auth (empty disables auth)
//	REDIS_URL           - result cache address (empty disables caching)
//	LOG_LEVEL           - DEBUG, INFO, WARN, ERROR (default: INFO)
func Run() {
	log.Println("Starting ProcStream...")

	profilesPath := getEnv("PROCSTREAM_PROFILES", "procedures.yaml")
	profiles, err := config.Load(profilesPath)
	if err != nil {
		log.Fatalf("Failed to load procedure profiles: %v", err)
	}

	opts := []Option{WithPool(invoker.SharedPool)}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		opts = append(opts, WithJWTSecret([]byte(secret)))
	} else {
		log.Println("Warning: JWT_SECRET not set, API is unauthenticated")
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err := invoker.NewResultCache(redisURL, time.Minute)
		if err != nil {
			// An unreachable cache should not keep the service down.
			log.Printf("Warning: result cache disabled: %v", err)
		} else {
			opts = append(opts, WithCache(cache))
			log.Printf("Result cache enabled: %s", redisURL)
		}
	}

	s := New(profiles, invoker.New(), opts...)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure for production
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	port := getEnv("PORT", "8080")
	log.Printf("ProcStream listening on port %s (%d profiles)", port, len(profiles.Procedures))
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(s.Router())))
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
