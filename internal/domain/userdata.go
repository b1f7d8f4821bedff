package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// UserData is the flat key/value map of a person's data, keyed by
// UserDataField.Key. Stored as JSONB.
type UserData map[string]string

// Value implements driver.Valuer.
func (d UserData) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *UserData) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = UserData{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported type for UserData: %T", src)
	}
}
