package store

import (
	"time"

	"github.com/spf13/cast"
)

// Field accessors tolerate the loose typing of documents written by the mobile
// client: numbers may arrive as strings, lists as []any, timestamps as ISO text.

// String returns the field as text and whether it held a non-empty value.
func (d Document) String(key string) (string, bool) {
	v, ok := d.Fields[key]
	if !ok || v == nil {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

// StringOr returns the first non-empty field among keys.
func (d Document) StringOr(keys ...string) string {
	for _, k := range keys {
		if s, ok := d.String(k); ok {
			return s
		}
	}
	return ""
}

// Strings returns the field as a list; absent or unreadable values yield an empty, non-nil slice.
func (d Document) Strings(key string) []string {
	v, ok := d.Fields[key]
	if !ok || v == nil {
		return []string{}
	}
	out, err := cast.ToStringSliceE(v)
	if err != nil || out == nil {
		return []string{}
	}
	return out
}

// StringMap returns the field as a key/value mapping; never nil.
func (d Document) StringMap(key string) map[string]string {
	v, ok := d.Fields[key]
	if !ok || v == nil {
		return map[string]string{}
	}
	out, err := cast.ToStringMapStringE(v)
	if err != nil || out == nil {
		return map[string]string{}
	}
	return out
}

// Float returns the field as a number, or nil when absent or not numeric.
func (d Document) Float(key string) *float64 {
	v, ok := d.Fields[key]
	if !ok || v == nil {
		return nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil
	}
	return &f
}

// Int returns the field as an integer, or 0.
func (d Document) Int(key string) int {
	v, ok := d.Fields[key]
	if !ok || v == nil {
		return 0
	}
	return cast.ToInt(v)
}

// Bool returns the field as a boolean, or false.
func (d Document) Bool(key string) bool {
	return cast.ToBool(d.Fields[key])
}

// Time returns the field as a timestamp. ISO strings and native timestamps are both accepted.
func (d Document) Time(key string) time.Time {
	v, ok := d.Fields[key]
	if !ok || v == nil {
		return time.Time{}
	}
	if s, ok := v.(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t
		}
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}
	}
	return t
}
