package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_Get(t *testing.T) {
	obj := Object{
		{Key: "league_id", Value: "123"},
		{Key: "week", Value: json.Number("5")},
	}

	v, ok := obj.Get("league_id")
	require.True(t, ok)
	assert.Equal(t, "123", v)

	_, ok = obj.Get("missing")
	assert.False(t, ok)
}

func TestObject_Keys(t *testing.T) {
	obj := Object{
		{Key: "c", Value: nil},
		{Key: "a", Value: nil},
		{Key: "b", Value: nil},
	}
	assert.Equal(t, []string{"c", "a", "b"}, obj.Keys())
	assert.Equal(t, 3, obj.Len())
}

func TestObject_StringField(t *testing.T) {
	obj := Object{
		{Key: "sport", Value: "nfl"},
		{Key: "week", Value: json.Number("5")},
	}

	assert.Equal(t, "nfl", obj.StringField("sport", "fallback"))
	assert.Equal(t, "fallback", obj.StringField("missing", "fallback"))
	// non-string values fall back too
	assert.Equal(t, "fallback", obj.StringField("week", "fallback"))
}

func TestObject_MarshalJSONKeepsOrder(t *testing.T) {
	obj := Object{
		{Key: "b", Value: json.Number("2")},
		{Key: "a", Value: json.Number("1")},
	}
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"a":1}`, string(data))
}

func TestObject_MarshalJSONNested(t *testing.T) {
	obj := Object{
		{Key: "outer", Value: Object{
			{Key: "z", Value: "last"},
			{Key: "a", Value: "first"},
		}},
		{Key: "list", Value: Array{json.Number("1"), nil, true}},
	}
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"outer":{"z":"last","a":"first"},"list":[1,null,true]}`, string(data))
}

func TestObject_MarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(Object{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
