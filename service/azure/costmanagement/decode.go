package azurecostmanagement

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

type rawQueryResult struct {
	Columns    []json.RawMessage `json:"columns"`
	Rows       [][]any           `json:"rows"`
	Properties *struct {
		Columns []json.RawMessage `json:"columns"`
		Rows    [][]any           `json:"rows"`
	} `json:"properties"`
}

type rawColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// DecodeQueryResult parses a saved query result. Both the bare {columns, rows} shape
// and the full API response with a properties envelope are accepted, and each column
// may be a bare string or a {name, type} object.
func DecodeQueryResult(data []byte) (*QueryResult, error) {
	var raw rawQueryResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode query result: %w", err)
	}

	rawColumns, rows := raw.Columns, raw.Rows
	if raw.Properties != nil {
		rawColumns, rows = raw.Properties.Columns, raw.Properties.Rows
	}

	columns, err := DecodeColumns(rawColumns)
	if err != nil {
		return nil, err
	}

	return &QueryResult{Columns: columns, Rows: rows}, nil
}

// DecodeColumns converts raw column entries into descriptors
func DecodeColumns(rawColumns []json.RawMessage) ([]ColumnDescriptor, error) {
	columns := make([]ColumnDescriptor, 0, len(rawColumns))
	for i, rc := range rawColumns {
		trimmed := bytes.TrimSpace(rc)
		if len(trimmed) > 0 && trimmed[0] == '"' {
			var name string
			if err := json.Unmarshal(trimmed, &name); err != nil {
				return nil, fmt.Errorf("failed to decode column %d: %w", i, err)
			}
			columns = append(columns, PlainName(name))
			continue
		}

		var col rawColumn
		if err := json.Unmarshal(trimmed, &col); err != nil {
			return nil, fmt.Errorf("failed to decode column %d: %w", i, err)
		}
		if col.Type == "" {
			columns = append(columns, PlainName(col.Name))
			continue
		}
		columns = append(columns, TypedColumn{Name: col.Name, Type: ParseColumnType(col.Type)})
	}
	return columns, nil
}
