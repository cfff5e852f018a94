package jsonpath

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// ErrScan is the sentinel every error Scan returns wraps.
var ErrScan = errors.New("jsonpath: scan")

// Scan implements sql.Scanner, letting a *Path be populated directly from
// a query stored as a text column.
func (p *Path) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("%w: cannot scan %T into Path", ErrScan, src)
	}
	parsed, err := Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScan, err)
	}
	*p = *parsed
	return nil
}

// Value implements driver.Valuer, storing a Path as its canonical
// JSONPath string.
func (p *Path) Value() (driver.Value, error) {
	if p == nil || p.query == nil {
		return nil, nil
	}
	return p.String(), nil
}

// MarshalText implements encoding.TextMarshaler.
func (p *Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler in terms of
// MarshalText, since a JSONPath query's only serialized form this module
// defines is its canonical text.
func (p *Path) MarshalBinary() ([]byte, error) { return p.MarshalText() }

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *Path) UnmarshalBinary(data []byte) error { return p.UnmarshalText(data) }
