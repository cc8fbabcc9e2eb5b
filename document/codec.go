package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Format is a wire encoding of documents.
type Format uint8

// Wire formats.
const (
	FormatJSON Format = iota
	FormatMsgpack
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	}
	return fmt.Sprintf("Format(%d)", f)
}

// ContentType returns the media type of the format.
func (f Format) ContentType() string {
	if f == FormatMsgpack {
		return "application/msgpack"
	}
	return "application/json"
}

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "msgpack":
		return FormatMsgpack, nil
	}
	return 0, fmt.Errorf("document: unknown format %q", s)
}

// Marshal encodes a document.
func Marshal(doc any, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.Marshal(doc)
	case FormatMsgpack:
		v, err := expandRaw(doc)
		if err != nil {
			return nil, err
		}
		return msgpack.Marshal(v)
	}
	return nil, fmt.Errorf("document: unknown format %d", f)
}

// Unmarshal decodes a document. Msgpack integers decode as int64 or uint64
// and floats as float64; JSON numbers decode as float64.
func Unmarshal(data []byte, f Format) (map[string]any, error) {
	var doc map[string]any
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("document: decode json: %w", err)
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.UseLooseInterfaceDecoding(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("document: decode msgpack: %w", err)
		}
	default:
		return nil, fmt.Errorf("document: unknown format %d", f)
	}
	return doc, nil
}

// expandRaw decodes the json.RawMessage values of a document, so they are
// encoded as structures rather than bytes.
func expandRaw(v any) (any, error) {
	switch v := v.(type) {
	case json.RawMessage:
		if v == nil {
			return nil, nil
		}
		var out any
		if err := json.Unmarshal(v, &out); err != nil {
			return nil, fmt.Errorf("document: user json: %w", err)
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			x, err := expandRaw(e)
			if err != nil {
				return nil, err
			}
			out[k] = x
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			x, err := expandRaw(e)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	}
	return v, nil
}
