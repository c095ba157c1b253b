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

// InvocationError is the single failure type surfaced by a procedure
// invocation. Internal failures (pool construction, acquisition,
// execution, row reads, encoding) are converted to this type at the
// invocation boundary.
type InvocationError struct {
	Operation string // which step failed: pool, acquire, execute, stream
	Message   string
	Cause     error
}

func (e *InvocationError) Error() string {
	if e.Cause != nil {
		return "invocation." + e.Operation + ": " + e.Message + " (cause: " + e.Cause.Error() + ")"
	}
	return "invocation." + e.Operation + ": " + e.Message
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// NewInvocationError creates a new InvocationError
func NewInvocationError(operation, message string, cause error) *InvocationError {
	return &InvocationError{
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}
