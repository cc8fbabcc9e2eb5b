package document

import (
	"database/sql/driver"
	"fmt"
	"reflect"

	"github.com/turner-townsend/genyrator/naming"
)

// ToDocument converts record to a document with external keys.
//
// Every scalar and to-one attribute is copied; to-one relationships that are
// not expanded are embedded with their scalars only. To-many attributes and
// storage primary keys are left out. paths is a relationship chain: the head
// is expanded on record with the tail applied to the related records.
//
// A nil record yields a nil document. A path element that does not name a
// relationship returns a *PathError.
func ToDocument(conv naming.Convention, record any, paths ...string) (map[string]any, error) {
	v, ok, err := recordValue(record)
	if err != nil || !ok {
		return nil, err
	}
	return toDocument(conv, v, paths)
}

// MustToDocument is like ToDocument but panics on error.
func MustToDocument(conv naming.Convention, record any, paths ...string) map[string]any {
	doc, err := ToDocument(conv, record, paths...)
	if err != nil {
		panic(err)
	}
	return doc
}

// ToDocuments converts a slice or array of records, keeping their order.
// A nil slice yields an empty sequence.
func ToDocuments(conv naming.Convention, records any, paths ...string) ([]any, error) {
	v, ok := indirect(reflect.ValueOf(records))
	if !ok {
		return []any{}, nil
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, fmt.Errorf("document: %T is not a sequence of records", records)
	}
	return toDocuments(conv, v, paths)
}

// ToList converts records to a list response: {"data": [...]}.
func ToList(conv naming.Convention, records any, paths ...string) (map[string]any, error) {
	docs, err := ToDocuments(conv, records, paths...)
	if err != nil {
		return nil, err
	}
	return map[string]any{"data": docs}, nil
}

func toDocuments(conv naming.Convention, v reflect.Value, paths []string) ([]any, error) {
	out := make([]any, v.Len())
	for i := range out {
		e, ok := indirect(v.Index(i))
		if !ok {
			continue
		}
		doc, err := toDocument(conv, e, paths)
		if err != nil {
			return nil, err
		}
		out[i] = doc
	}
	return out, nil
}

// toDocument converts the record struct v. The keys of the returned level
// are converted here; nested documents arrive converted.
func toDocument(conv naming.Convention, v reflect.Value, paths []string) (map[string]any, error) {
	info := recordOf(conv, v.Type())
	internal := make(map[string]any, len(info.attrs))
	for _, a := range info.attrs {
		if a.pk {
			continue
		}
		fv := v.FieldByIndex(a.index)
		switch a.kind {
		case scalar:
			internal[a.name] = scalarValue(conv, fv)
		case toOne:
			internal[a.name] = shallow(conv, fv)
		}
	}
	if len(paths) > 0 {
		head, tail := paths[0], paths[1:]
		a, ok := info.lookup(conv, head)
		if !ok || a.kind == scalar {
			return nil, &PathError{Type: v.Type().String(), Path: head}
		}
		fv := v.FieldByIndex(a.index)
		switch a.kind {
		case toMany:
			if fv.Kind() == reflect.Slice && fv.IsNil() {
				internal[a.name] = []any{}
				break
			}
			docs, err := toDocuments(conv, fv, tail)
			if err != nil {
				return nil, err
			}
			internal[a.name] = docs
		case toOne:
			rv, ok := indirect(fv)
			if !ok {
				internal[a.name] = nil
				break
			}
			doc, err := toDocument(conv, rv, tail)
			if err != nil {
				return nil, err
			}
			internal[a.name] = doc
		}
	}
	out := make(map[string]any, len(internal))
	for k, e := range internal {
		out[conv.ToExternal(k)] = e
	}
	return out, nil
}

// shallow converts an unexpanded to-one relationship: scalars only.
func shallow(conv naming.Convention, fv reflect.Value) any {
	rv, ok := indirect(fv)
	if !ok {
		return nil
	}
	info := recordOf(conv, rv.Type())
	out := make(map[string]any, len(info.attrs))
	for _, a := range info.attrs {
		if a.pk || a.kind != scalar {
			continue
		}
		out[conv.ToExternal(a.name)] = scalarValue(conv, rv.FieldByIndex(a.index))
	}
	return out
}

// scalarValue normalizes a scalar attribute. Nested maps have their keys
// converted; json.RawMessage values are kept as is.
func scalarValue(conv naming.Convention, fv reflect.Value) any {
	if (fv.Kind() == reflect.Pointer || fv.Kind() == reflect.Interface) && fv.IsNil() {
		return nil
	}
	v := fv.Interface()
	if n, ok := naming.Normalize(v); ok {
		return n
	}
	if vr, ok := v.(driver.Valuer); ok {
		if dv, err := vr.Value(); err == nil {
			return naming.NormalizeScalar(dv)
		}
	}
	return conv.ToExternalStructure(v)
}
