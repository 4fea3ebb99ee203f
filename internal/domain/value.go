package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ValueKind discriminates the tri-state sample value.
type ValueKind uint8

const (
	ValueMissing ValueKind = iota
	ValueNumber
	ValueCode
)

// Value is a sample value: Missing, a Number, or a coded weather string.
// The zero Value is Missing.
type Value struct {
	kind ValueKind
	num  float64
	code string
}

// Missing returns the missing value.
func Missing() Value { return Value{} }

// Number wraps a numeric sample value.
func Number(f float64) Value { return Value{kind: ValueNumber, num: f} }

// Code wraps a coded weather string.
func Code(s string) Value { return Value{kind: ValueCode, code: s} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsMissing() bool { return v.kind == ValueMissing }

// Float returns the numeric value and whether v holds one.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == ValueNumber
}

// Text returns the coded string and whether v holds one.
func (v Value) Text() (string, bool) {
	return v.code, v.kind == ValueCode
}

func (v Value) String() string {
	switch v.kind {
	case ValueNumber:
		return fmt.Sprintf("%g", v.num)
	case ValueCode:
		return v.code
	default:
		return "missing"
	}
}

// MarshalJSON encodes Missing as null, numbers as JSON numbers and codes as
// JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueNumber:
		return json.Marshal(v.num)
	case ValueCode:
		return json.Marshal(v.code)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = Missing()
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode coded value: %w", err)
		}
		*v = Code(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("decode numeric value: %w", err)
	}
	*v = Number(f)
	return nil
}
