package naming

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// ConvertStructure applies fn to every key of every mapping found in v, at any
// depth and inside sequences. Sequence order and scalar values are kept; the
// scalars listed in NormalizeScalar are rendered to their textual form.
//
// Maps must have string keys to be renamed; other maps are returned as is.
// json.RawMessage values are opaque user JSON and are never renamed.
// Cyclic structures are not supported.
func ConvertStructure(v any, fn func(string) string) any {
	switch v := v.(type) {
	case nil:
		return nil
	case json.RawMessage:
		return v
	case map[string]any:
		if v == nil {
			return nil
		}
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[fn(k)] = ConvertStructure(e, fn)
		}
		return out
	case []any:
		if v == nil {
			return nil
		}
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = ConvertStructure(e, fn)
		}
		return out
	}
	if s, ok := Normalize(v); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		for it := rv.MapRange(); it.Next(); {
			out[fn(it.Key().String())] = ConvertStructure(it.Value().Interface(), fn)
		}
		return out
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		if rv.IsNil() {
			return nil
		}
		return convertSeq(rv, fn)
	case reflect.Array:
		return convertSeq(rv, fn)
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return ConvertStructure(rv.Elem().Interface(), fn)
	}
	return v
}

func convertSeq(rv reflect.Value, fn func(string) string) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = ConvertStructure(rv.Index(i).Interface(), fn)
	}
	return out
}

// ToExternalStructure renames every key in v to the external convention.
func (c Convention) ToExternalStructure(v any) any {
	return ConvertStructure(v, c.ToExternal)
}

// ToInternalStructure renames every key in v to the internal convention.
func (c Convention) ToInternalStructure(v any) any {
	return ConvertStructure(v, c.ToInternal)
}

// NormalizeScalar renders temporal values and unique identifiers to their
// canonical text. Every other value is returned unchanged.
//
//	time.Time  -> RFC 3339 with nanoseconds, trailing zeros trimmed
//	Date       -> YYYY-MM-DD
//	uuid.UUID  -> xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func NormalizeScalar(v any) any {
	if s, ok := Normalize(v); ok {
		return s
	}
	return v
}

// Normalize is like NormalizeScalar but reports whether v was rendered.
func Normalize(v any) (any, bool) {
	switch v := v.(type) {
	case time.Time:
		return FormatTime(v), true
	case *time.Time:
		if v == nil {
			return nil, true
		}
		return FormatTime(*v), true
	case Date:
		return v.String(), true
	case *Date:
		if v == nil {
			return nil, true
		}
		return v.String(), true
	case uuid.UUID:
		return v.String(), true
	case *uuid.UUID:
		if v == nil {
			return nil, true
		}
		return v.String(), true
	case uuid.NullUUID:
		if !v.Valid {
			return nil, true
		}
		return v.UUID.String(), true
	}
	return nil, false
}

// FormatTime returns the canonical textual timestamp of t.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
