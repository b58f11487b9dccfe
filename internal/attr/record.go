// Package attr models the attribute record attached to each boundary feature:
// an ordered mapping of DBF field names to typed values.
package attr

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Kind identifies the decoded type of a field value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
)

// Value is a tagged field value. The zero value is null.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Date returns a date value in YYYY-MM-DD form.
func Date(s string) Value { return Value{Kind: KindDate, Str: s} }

// MarshalJSON renders the value as its natural JSON type; dates are strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString, KindDate:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

// Field is one named attribute.
type Field struct {
	Name  string
	Value Value
}

// Record is an ordered attribute record. One Record is shared by pointer
// across every polygon split from the same multi-polygon shape.
type Record struct {
	fields []Field
}

// NewRecord builds a record preserving field order.
func NewRecord(fields []Field) *Record {
	return &Record{fields: fields}
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.fields) }

// Get returns the value for a field name and whether it exists.
func (r *Record) Get(name string) (Value, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Fields returns the fields in declaration order.
func (r *Record) Fields() []Field { return r.fields }

// MarshalJSON renders the record as a JSON object in field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeValue converts one raw DBF attribute into a typed value using the
// field's dBase type code. Unsupported or unparsable values decode to null
// rather than failing the record.
func DecodeValue(fieldType byte, raw string) Value {
	raw = strings.TrimSpace(strings.TrimRight(raw, "\x00"))
	if raw == "" {
		return Null()
	}

	switch fieldType {
	case 'C':
		return String(DecodeText(raw))
	case 'N', 'F':
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Null()
		}
		return Number(f)
	case 'L':
		switch raw {
		case "T", "t", "Y", "y":
			return Bool(true)
		case "F", "f", "N", "n":
			return Bool(false)
		}
		return Null()
	case 'D':
		// dBase dates are YYYYMMDD.
		if len(raw) != 8 {
			return Null()
		}
		if _, err := strconv.Atoi(raw); err != nil {
			return Null()
		}
		return Date(raw[0:4] + "-" + raw[4:6] + "-" + raw[6:8])
	default:
		return Null()
	}
}

// DecodeText normalizes DBF text to UTF-8. dBase files predate Unicode; bytes
// that are not valid UTF-8 are read as Windows-1252.
func DecodeText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, err := charmap.Windows1252.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return decoded
}
