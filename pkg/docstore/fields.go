package docstore

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Fields is the loosely typed key/value form of a record. Accessors never fail;
// they coerce what they can and return the zero value otherwise.
type Fields map[string]any

// Put sets key unless value is a nil pointer, so absent optional values stay
// absent in the stored document.
func (f Fields) Put(key string, value any) Fields {
	switch v := value.(type) {
	case nil:
		return f
	case *time.Time:
		if v == nil {
			return f
		}
		value = *v
	case *float64:
		if v == nil {
			return f
		}
		value = *v
	case *int:
		if v == nil {
			return f
		}
		value = *v
	}
	f[key] = value
	return f
}

func (f Fields) Has(key string) bool {
	if f == nil {
		return false
	}
	v, ok := f[key]
	return ok && v != nil
}

func (f Fields) String(key string) string {
	if !f.Has(key) {
		return ""
	}
	s, err := cast.ToStringE(f[key])
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// Float returns the numeric value of key, 0 for missing or non-numeric values.
func (f Fields) Float(key string) float64 {
	if !f.Has(key) {
		return 0
	}
	n, err := cast.ToFloat64E(f[key])
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// OptionalFloat is like Float but keeps absence distinguishable from zero.
func (f Fields) OptionalFloat(key string) *float64 {
	if !f.Has(key) {
		return nil
	}
	n := f.Float(key)
	return &n
}

func (f Fields) Int(key string) int {
	if !f.Has(key) {
		return 0
	}
	n, err := cast.ToIntE(f[key])
	if err != nil {
		return 0
	}
	return n
}

// OptionalInt returns nil when key is absent and InvalidInt when the stored
// value is present but not an integer.
func (f Fields) OptionalInt(key string) *int {
	if !f.Has(key) {
		return nil
	}
	n, err := cast.ToIntE(f[key])
	if err != nil {
		invalid := InvalidInt
		return &invalid
	}
	return &n
}

// InvalidInt marks a stored integer that could not be parsed.
const InvalidInt = math.MinInt32

// Time returns the timestamp stored under key, nil when missing or unparsable.
func (f Fields) Time(key string) *time.Time {
	if !f.Has(key) {
		return nil
	}
	var (
		t   time.Time
		err error
	)
	switch v := f[key].(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return nil
		}
		t = *v
	case string:
		t, err = parseTime(v)
	default:
		t, err = cast.ToTimeE(v)
	}
	if err != nil || t.IsZero() {
		return nil
	}
	return &t
}

func (f Fields) Strings(key string) []string {
	if !f.Has(key) {
		return nil
	}
	switch v := f[key].(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{strings.TrimSpace(v)}
	default:
		out, err := cast.ToStringSliceE(v)
		if err != nil {
			return nil
		}
		return out
	}
}

func (f Fields) Map(key string) map[string]any {
	if !f.Has(key) {
		return nil
	}
	m, err := cast.ToStringMapE(f[key])
	if err != nil {
		return nil
	}
	return m
}

const dateOnlyLayout = "2006-01-02"

func parseTime(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(dateOnlyLayout, trimmed); err == nil {
		return parsed, nil
	}
	return cast.ToTimeE(trimmed)
}
