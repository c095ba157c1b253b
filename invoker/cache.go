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

package invoker

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/go-redis/redis/v8"
)

// ResultCache memoizes serialized invocation results in Redis. It sits
// outside the invocation core: hosts consult it before invoking and
// store afterwards, per profile. All Redis failures fail open (treated
// as a miss), so a cache outage degrades latency, never correctness.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache connects to Redis and verifies the connection.
// defaultTTL applies to entries stored without an explicit TTL.
func NewResultCache(redisURL string, defaultTTL time.Duration) (*ResultCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if defaultTTL <= 0 {
		defaultTTL = time.Minute
	}
	return &ResultCache{client: client, ttl: defaultTTL}, nil
}

// Get returns the cached document for a call, or a miss.
func (c *ResultCache) Get(ctx context.Context, call string, columns []string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, cacheKey(call, columns)).Bytes()
	if err != nil {
		return nil, false
	}
	promCacheHits.Inc()
	return payload, true
}

// Put stores a document under the call's key. ttl <= 0 selects the cache
// default. Storage errors are dropped.
func (c *ResultCache) Put(ctx context.Context, call string, columns []string, payload []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	_ = c.client.Set(ctx, cacheKey(call, columns), payload, ttl).Err()
}

// Close releases the Redis client.
func (c *ResultCache) Close() error {
	return c.client.Close()
}

// cacheKey derives a stable key from the call text and the configured
// column list; the column list participates because it shapes the output
// document.
func cacheKey(call string, columns []string) string {
	h := sha256.New()
	_, _ = io.WriteString(h, call)
	for _, col := range columns {
		h.Write([]byte{0})
		_, _ = io.WriteString(h, col)
	}
	return "procstream:result:" + hex.EncodeToString(h.Sum(nil))
}
