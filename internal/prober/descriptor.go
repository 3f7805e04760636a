package prober

import (
	"bytes"
	"encoding/json"

	"github.com/mrab54/sleeper-db/internal/models"
)

// Descriptor kinds for the five JSON value cases plus the markers the
// prober emits for sampled-away data.
const (
	KindNull    = "null"
	KindObject  = "object"
	KindArray   = "array"
	KindString  = "string"
	KindNumber  = "number"
	KindBoolean = "boolean"
	KindUnknown = "unknown"
)

// Descriptor is the bounded structural summary of one JSON value node.
// Which fields are populated depends on Kind; a descriptor with an empty
// Kind and a Note is the synthetic "..." entry standing in for omitted
// object properties.
type Descriptor struct {
	Kind       string
	Truncated  bool         // recursion stopped at the depth limit
	Example    models.Value // strings, numbers and booleans only
	Count      int          // array length
	Items      *Descriptor  // representative first-element shape for arrays
	Properties []Property   // member shapes for objects, in document order
	Note       string
}

// Property is one named member shape inside an object descriptor.
type Property struct {
	Key   string
	Shape *Descriptor
}

// MarshalJSON renders the descriptor in the report's wire layout: a "type"
// tag plus the case-specific fields, with object properties emitted in
// document order. Empty arrays put "items" before "count", non-empty
// arrays the other way around.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true

	field := func(key string, value interface{}) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(v)
		return nil
	}

	if d.Kind != "" {
		if err := field("type", d.Kind); err != nil {
			return nil, err
		}
	}

	if d.Truncated {
		if err := field("truncated", true); err != nil {
			return nil, err
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}

	switch d.Kind {
	case KindObject:
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(`"properties":{`)
		for i, p := range d.Properties {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(p.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			shape, err := json.Marshal(p.Shape)
			if err != nil {
				return nil, err
			}
			buf.Write(shape)
		}
		buf.WriteByte('}')
	case KindArray:
		if d.Count == 0 {
			if err := field("items", d.Items); err != nil {
				return nil, err
			}
			if err := field("count", d.Count); err != nil {
				return nil, err
			}
		} else {
			if err := field("count", d.Count); err != nil {
				return nil, err
			}
			if err := field("items", d.Items); err != nil {
				return nil, err
			}
		}
	case KindString, KindNumber, KindBoolean:
		if err := field("example", d.Example); err != nil {
			return nil, err
		}
	}

	if d.Note != "" {
		if err := field("note", d.Note); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
