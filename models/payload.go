package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Payload is an opaque bag of domain fields attached to a synchronized record.
// The sync layer never inspects its contents; it is replaced wholesale when a
// remote copy of the record wins a merge.
//
// Payload implements [driver.Valuer] and [sql.Scanner] so it can be stored
// directly in a jsonb column.
type Payload map[string]any

// Value implements [driver.Valuer]. A nil Payload is stored as SQL NULL.
func (p Payload) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return data, nil
}

// Scan implements [sql.Scanner]. It accepts []byte, string or NULL.
func (p *Payload) Scan(src any) error {
	if src == nil {
		*p = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported source type for payload")
	}

	if len(data) == 0 {
		*p = nil
		return nil
	}

	var out Payload
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	*p = out

	return nil
}
