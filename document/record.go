package document

import (
	"database/sql/driver"
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/turner-townsend/genyrator/naming"
)

// TagName is the struct tag holding attribute options.
const TagName = "genyrator"

type kind uint8

const (
	scalar kind = iota
	toOne
	toMany
)

// attr is an attribute of a record type.
type attr struct {
	name  string // internal name
	index []int
	kind  kind
	pk    bool
}

// recordInfo holds the attributes of a record type.
type recordInfo struct {
	typ   reflect.Type
	attrs []*attr
}

// infoKey identifies cached metadata. Untagged field names depend on the
// naming convention.
type infoKey struct {
	typ  reflect.Type
	conv naming.Convention
}

var infos sync.Map // infoKey -> *recordInfo

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	valuerType        = reflect.TypeFor[driver.Valuer]()
)

// isRecord reports if t is a record struct. Structs that know how to encode
// themselves (time.Time, naming.Date, sql.NullString) are scalars.
func isRecord(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for _, it := range []reflect.Type{jsonMarshalerType, textMarshalerType, valuerType} {
		if t.Implements(it) || reflect.PointerTo(t).Implements(it) {
			return false
		}
	}
	return true
}

// classify returns the kind of an attribute of type t.
func classify(t reflect.Type) kind {
	switch {
	case isRecord(t):
		return toOne
	case t.Kind() == reflect.Pointer && isRecord(t.Elem()):
		return toOne
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		e := t.Elem()
		if isRecord(e) || (e.Kind() == reflect.Pointer && isRecord(e.Elem())) {
			return toMany
		}
	}
	return scalar
}

// recordOf returns the metadata of record type t.
func recordOf(conv naming.Convention, t reflect.Type) *recordInfo {
	key := infoKey{typ: t, conv: conv}
	if v, ok := infos.Load(key); ok {
		return v.(*recordInfo)
	}
	info := &recordInfo{typ: t}
	collect(conv, t, nil, info)
	v, _ := infos.LoadOrStore(key, info)
	return v.(*recordInfo)
}

// collect appends the attributes of t to info. Untagged embedded structs
// are flattened.
func collect(conv naming.Convention, t reflect.Type, prefix []int, info *recordInfo) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, hasTag := f.Tag.Lookup(TagName)
		if tag == "-" {
			continue
		}
		index := append(append([]int(nil), prefix...), i)
		if f.Anonymous && !hasTag && isRecord(f.Type) {
			collect(conv, f.Type, index, info)
			continue
		}
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = conv.FromGoName(f.Name)
		}
		info.attrs = append(info.attrs, &attr{
			name:  name,
			index: index,
			kind:  classify(f.Type),
			pk:    hasOption(opts, "pk"),
		})
	}
}

func hasOption(opts, name string) bool {
	for opts != "" {
		var o string
		o, opts, _ = strings.Cut(opts, ",")
		if o == name {
			return true
		}
	}
	return false
}

// lookup returns the attribute addressed by an expand path element, given
// in either naming convention.
func (r *recordInfo) lookup(conv naming.Convention, path string) (*attr, bool) {
	internal := conv.ToInternal(path)
	for _, a := range r.attrs {
		if a.name == path || a.name == internal {
			return a, true
		}
	}
	return nil, false
}

// indirect dereferences v down to a record struct. It reports false for nil
// pointers and nil interfaces.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

// recordValue returns the struct value of record.
func recordValue(record any) (reflect.Value, bool, error) {
	v, ok := indirect(reflect.ValueOf(record))
	if !ok {
		return reflect.Value{}, false, nil
	}
	if !isRecord(v.Type()) {
		return reflect.Value{}, false, fmt.Errorf("document: %T is not a record", record)
	}
	return v, true, nil
}
