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
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// Pool sizing for low-latency invocation workloads: many short-lived
// concurrent calls against a single database.
const (
	maxOpenConns    = 20
	maxIdleConns    = 10
	connMaxLifetime = 30 * time.Minute
)

// PoolManager owns a create-once, read-many connection pool. The pool is
// constructed on first use and reused for the life of the process; after
// construction it is only ever read, so steady-state access is a single
// atomic load.
type PoolManager struct {
	mu sync.Mutex
	db atomic.Pointer[sql.DB]
}

// NewPoolManager creates an empty pool manager
func NewPoolManager() *PoolManager {
	return &PoolManager{}
}

// SharedPool is the manager used by the package-level invocation helpers.
// One per process.
var SharedPool = NewPoolManager()

// Ensure returns the pool, constructing it exactly once under concurrent
// first calls.
//
// First-caller-wins: the driver and DSN of the first successful call are
// bound for the process lifetime, and later calls with different values
// silently reuse the original pool. Do not serve more than one target
// database from one process.
//
// A failed construction is not cached: the slot stays empty and the next
// call retries. Note that sql.Open does not dial; an unreachable host
// surfaces at acquisition time, exactly like an exhausted pool.
func (m *PoolManager) Ensure(driverName, dsn string) (*sql.DB, error) {
	if db := m.db.Load(); db != nil {
		return db, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if db := m.db.Load(); db != nil {
		return db, nil
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	m.db.Store(db)
	promPoolInits.Inc()
	return db, nil
}

// Acquire borrows a single connection from the pool, blocking until one
// is free or ctx expires. Return it with Conn.Close, which never closes
// the physical socket unless the pool evicts it.
func (m *PoolManager) Acquire(ctx context.Context) (*sql.Conn, error) {
	db := m.db.Load()
	if db == nil {
		return nil, errors.New("connection pool not initialized")
	}
	return db.Conn(ctx)
}

// Stats reports pool counters for health reporting. Returns nil before
// the pool has been constructed.
func (m *PoolManager) Stats() *sql.DBStats {
	db := m.db.Load()
	if db == nil {
		return nil
	}
	s := db.Stats()
	return &s
}
