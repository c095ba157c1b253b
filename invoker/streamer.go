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
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
)

// StreamRows serializes a forward-only cursor into a JSON array of
// objects in a single pass, without materializing the rows.
//
// Column access is positional: the i-th configured name becomes the key
// for the i-th column of each row, so no metadata lookup against the
// result set is ever needed. When the cursor exposes more columns than
// names are configured, the extra columns are scanned into raw sinks and
// never decoded or emitted; fewer actual columns than names is an error.
//
// On any read or encode failure no partial document is returned.
func StreamRows(rows *sql.Rows, columns []string) ([]byte, error) {
	actual, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result shape: %w", err)
	}
	n := len(columns)
	if n > len(actual) {
		return nil, fmt.Errorf("%d column names configured but result has only %d columns", n, len(actual))
	}

	// Values for the configured prefix, raw sinks for the remainder.
	vals := make([]any, n)
	dests := make([]any, len(actual))
	for i := range dests {
		if i < n {
			dests[i] = &vals[i]
		} else {
			dests[i] = new(sql.RawBytes)
		}
	}

	// Sized for the small payloads this service usually returns.
	buf := bytes.NewBuffer(make([]byte, 0, 1024))
	buf.WriteByte('[')

	rowCount := 0
	for rows.Next() {
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", rowCount+1, err)
		}

		if rowCount > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for i, name := range columns {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, name); err != nil {
				return nil, fmt.Errorf("failed to encode column name %q: %w", name, err)
			}
			buf.WriteByte(':')
			if err := writeValue(buf, vals[i]); err != nil {
				return nil, fmt.Errorf("failed to encode column %q on row %d: %w", name, rowCount+1, err)
			}
		}
		buf.WriteByte('}')
		rowCount++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	buf.WriteByte(']')
	promRowsStreamed.Add(float64(rowCount))
	return buf.Bytes(), nil
}

// writeValue encodes one column value with native JSON typing: numbers as
// numbers, text as strings, booleans as booleans, NULL as null. Whatever
// representation the driver surfaced is handed to the encoder unchanged,
// except []byte, which drivers use for text columns.
func writeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case []byte:
		return writeJSON(buf, string(t))
	default:
		return writeJSON(buf, t)
	}
}

func writeJSON(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
