package models

import (
	"bytes"
	"encoding/json"
)

// Value is a generic type to represent any decoded JSON value.
// This can be a string, json.Number, boolean, nil, Object, or Array.
type Value interface{}

// Member is a single key/value entry in an Object.
type Member struct {
	Key   string
	Value Value
}

// Object represents a JSON object as an ordered sequence of members.
// Member order matches the order keys appeared in the source document,
// which the prober's first-N-keys sampling depends on.
type Object []Member

// Array represents a JSON array.
type Array []Value

// Get returns the value for key and whether the key is present.
func (o Object) Get(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys returns the object's keys in document order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Len returns the number of members.
func (o Object) Len() int {
	return len(o)
}

// StringField returns the string value for key, or fallback when the key
// is absent or not a string.
func (o Object) StringField(key, fallback string) string {
	v, ok := o.Get(key)
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return s
}

// MarshalJSON emits the object's members in document order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
