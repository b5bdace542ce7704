package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// JSONValue holds an opaque JSON column. The enrichment payload is stored
// verbatim and never inspected, so raw bytes are all we need.
type JSONValue []byte

func (j JSONValue) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

func (j *JSONValue) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSONValue(v)
	default:
		return fmt.Errorf("unsupported type for JSONValue: %T", value)
	}
	return nil
}

func (j JSONValue) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSONValue) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("JSONValue: UnmarshalJSON on nil pointer")
	}
	if string(data) == "null" {
		*j = nil
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// GormDataType tells gorm which column type to migrate to.
func (JSONValue) GormDataType() string {
	return "jsonb"
}
