package frontmatter

import (
	"strconv"
	"strings"
	"time"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindScalar Kind = iota
	KindNumber
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// Value is a single coerced metadata value.
type Value struct {
	kind Kind
	str  string
	num  float64
	seq  []string
}

// Scalar returns a string value.
func Scalar(s string) Value { return Value{kind: KindScalar, str: s} }

// Number returns a numeric value; raw is kept for display.
func Number(f float64, raw string) Value { return Value{kind: KindNumber, num: f, str: raw} }

// Sequence returns an ordered list value.
func Sequence(items ...string) Value {
	return Value{kind: KindSequence, seq: append([]string(nil), items...)}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// String renders the value as text. Sequences are joined with ", ".
func (v Value) String() string {
	if v.kind == KindSequence {
		return strings.Join(v.seq, ", ")
	}
	return v.str
}

// Strings returns the value as a list. A non-empty scalar or number yields a
// single element list.
func (v Value) Strings() []string {
	if v.kind == KindSequence {
		return append([]string(nil), v.seq...)
	}
	if v.str == "" {
		return nil
	}
	return []string{v.str}
}

// Float returns the numeric value, parsing scalars when possible.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindScalar:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Metadata maps keys to coerced values. Keys keep their original case.
type Metadata map[string]Value

// Has reports whether key is present.
func (m Metadata) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// String returns the first non-empty rendering among keys.
func (m Metadata) String(keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

// Strings returns the first non-empty list among keys.
func (m Metadata) Strings(keys ...string) []string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if items := v.Strings(); len(items) > 0 {
				return items
			}
		}
	}
	return nil
}

// Float returns the numeric value of key.
func (m Metadata) Float(key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	return v.Float()
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
}

// Time parses the first key holding a recognizable date.
func (m Metadata) Time(keys ...string) (time.Time, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		s := strings.TrimSpace(v.String())
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
