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
	"time"

	"procstream/platform/connectors/base"
	"procstream/platform/connectors/registry"
	"procstream/platform/shared/logger"
)

// Invoker executes stored procedures against the shared connection pool
// and serializes each result set straight to JSON. Safe for concurrent
// use from any number of goroutines.
type Invoker struct {
	pool *PoolManager
	reg  *registry.Registry
	log  *logger.Logger
}

// New creates an Invoker bound to the process-wide shared pool and the
// default dialect registry.
func New() *Invoker {
	return NewWithPool(SharedPool, registry.Default)
}

// NewWithPool creates an Invoker with an explicit pool manager and
// dialect registry. Tests use this to isolate pool state.
func NewWithPool(pool *PoolManager, reg *registry.Registry) *Invoker {
	return &Invoker{
		pool: pool,
		reg:  reg,
		log:  logger.New("invoker"),
	}
}

// CallProcedureAsJSON invokes a stored procedure and returns its result
// set as a JSON array of objects.
//
// call is executed verbatim; rawURL selects the dialect by scheme; the
// explicit user/password override credentials embedded in the URL; and
// columns supplies the ordered output column names the document's keys
// are taken from (see StreamRows for the positional contract).
//
// Either a complete JSON document is returned, or no document and a
// single *base.InvocationError wrapping the underlying cause. The
// borrowed connection and the cursor are released on every exit path.
func (inv *Invoker) CallProcedureAsJSON(ctx context.Context, call, rawURL, user, password string, columns []string) ([]byte, error) {
	start := time.Now()

	d, err := inv.reg.Resolve(rawURL)
	if err != nil {
		promInvocationsTotal.WithLabelValues("unknown", "error").Inc()
		return nil, base.NewInvocationError("dialect", "no dialect for connection URL", err)
	}
	driver := d.DriverName()

	payload, err := inv.invoke(ctx, d, call, rawURL, user, password, columns)

	elapsed := time.Since(start)
	promInvocationDuration.WithLabelValues(driver).Observe(elapsed.Seconds())
	if err != nil {
		promInvocationsTotal.WithLabelValues(driver, "error").Inc()
		inv.log.Error("", "invocation failed", err, map[string]any{"driver": driver})
		return nil, err
	}

	promInvocationsTotal.WithLabelValues(driver, "success").Inc()
	inv.log.InfoWithDuration("", "invocation complete", elapsed, map[string]any{
		"driver": driver,
		"bytes":  len(payload),
	})
	return payload, nil
}

// invoke runs the acquire-execute-stream sequence. Resources are released
// in reverse acquisition order by the deferred closes, success or failure.
func (inv *Invoker) invoke(ctx context.Context, d base.Dialect, call, rawURL, user, password string, columns []string) ([]byte, error) {
	dsn, err := d.BuildDSN(rawURL, user, password)
	if err != nil {
		return nil, base.NewInvocationError("dialect", "failed to build DSN", err)
	}

	db, err := inv.pool.Ensure(d.DriverName(), dsn)
	if err != nil {
		return nil, base.NewInvocationError("pool", "failed to construct connection pool", err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, base.NewInvocationError("acquire", "failed to borrow connection from pool", err)
	}
	defer func() { _ = conn.Close() }()

	rows, err := conn.QueryContext(ctx, call)
	if err != nil {
		return nil, base.NewInvocationError("execute", "procedure call failed", err)
	}
	defer func() { _ = rows.Close() }()

	payload, err := StreamRows(rows, columns)
	if err != nil {
		return nil, base.NewInvocationError("stream", "result serialization failed", err)
	}
	return payload, nil
}

// std is the invoker behind the package-level helper, sharing the
// process-wide pool.
var std = New()

// CallProcedureAsJSON invokes a stored procedure through the process-wide
// shared pool. See Invoker.CallProcedureAsJSON.
func CallProcedureAsJSON(ctx context.Context, call, rawURL, user, password string, columns []string) ([]byte, error) {
	return std.CallProcedureAsJSON(ctx, call, rawURL, user, password, columns)
}
