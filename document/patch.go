package document

import (
	"maps"
	"reflect"
	"slices"

	"github.com/turner-townsend/genyrator/naming"
)

// FromDocument converts an inbound document to internal keys, at any depth.
func FromDocument(conv naming.Convention, doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	return conv.ToInternalStructure(doc).(map[string]any)
}

// Patch overlays an inbound (external keys) patch on the current
// (internal keys) document of a record and returns the merged document
// with internal keys. Keys absent from the patch keep their current value;
// null patch values clear the attribute.
//
// The values of the attributes named in opaque (internal names) are user
// JSON and are copied without renaming their keys.
func Patch(conv naming.Convention, current, patch map[string]any, opaque ...string) map[string]any {
	out := make(map[string]any, len(current)+len(patch))
	maps.Copy(out, current)
	for k, v := range patch {
		name := conv.ToInternal(k)
		if slices.Contains(opaque, name) {
			out[name] = v
			continue
		}
		out[name] = conv.ToInternalStructure(v)
	}
	return out
}

// Columns returns the scalar attributes of record keyed by internal name.
// Values are returned as stored in the record, ready to be used as
// statement arguments. A storage primary key is only included when it is
// set; a zero key is left for the store to assign.
func Columns(conv naming.Convention, record any) (map[string]any, error) {
	v, ok, err := recordValue(record)
	if err != nil || !ok {
		return nil, err
	}
	info := recordOf(conv, v.Type())
	out := make(map[string]any, len(info.attrs))
	for _, a := range info.attrs {
		if a.kind != scalar {
			continue
		}
		fv := v.FieldByIndex(a.index)
		if a.pk && fv.IsZero() {
			continue
		}
		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			out[a.name] = nil
			continue
		}
		out[a.name] = fv.Interface()
	}
	return out, nil
}
