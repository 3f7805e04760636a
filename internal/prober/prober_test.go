package prober

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrab54/sleeper-db/internal/models"
)

func TestProbe_TruncatesAtMaxDepth(t *testing.T) {
	tests := []struct {
		name     string
		value    models.Value
		wantKind string
	}{
		{name: "object", value: models.Object{{Key: "a", Value: json.Number("1")}}, wantKind: KindObject},
		{name: "array", value: models.Array{json.Number("1")}, wantKind: KindArray},
		{name: "string", value: "hello", wantKind: KindString},
		{name: "number", value: json.Number("3.14"), wantKind: KindNumber},
		{name: "boolean", value: true, wantKind: KindBoolean},
		{name: "null", value: nil, wantKind: KindNull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, depth := range []int{0, 1, 5} {
				d := Probe(tt.value, depth, depth)
				assert.True(t, d.Truncated)
				assert.Equal(t, tt.wantKind, d.Kind)
				assert.Empty(t, d.Properties)
				assert.Nil(t, d.Items)
			}
		})
	}
}

func TestProbe_Null(t *testing.T) {
	d := Probe(nil, 3, 0)
	assert.Equal(t, &Descriptor{Kind: KindNull}, d)
}

func TestProbe_ObjectUnderKeyCap(t *testing.T) {
	obj := models.Object{}
	for i := 0; i < 20; i++ {
		obj = append(obj, models.Member{Key: fmt.Sprintf("key_%02d", i), Value: json.Number("1")})
	}

	d := Probe(obj, 3, 0)
	require.Equal(t, KindObject, d.Kind)
	require.Len(t, d.Properties, 20)
	for i, p := range d.Properties {
		assert.Equal(t, fmt.Sprintf("key_%02d", i), p.Key)
		assert.Equal(t, KindNumber, p.Shape.Kind)
	}
}

func TestProbe_ObjectOverKeyCap(t *testing.T) {
	obj := models.Object{}
	for i := 0; i < 25; i++ {
		obj = append(obj, models.Member{Key: fmt.Sprintf("key_%02d", i), Value: json.Number("1")})
	}

	d := Probe(obj, 3, 0)
	require.Len(t, d.Properties, 21)
	for i := 0; i < 20; i++ {
		assert.Equal(t, fmt.Sprintf("key_%02d", i), d.Properties[i].Key)
	}
	last := d.Properties[20]
	assert.Equal(t, "...", last.Key)
	assert.Equal(t, "and 5 more properties", last.Shape.Note)
	assert.Empty(t, last.Shape.Kind)
}

func TestProbe_EmptyArray(t *testing.T) {
	d := Probe(models.Array{}, 3, 0)
	require.Equal(t, KindArray, d.Kind)
	assert.Equal(t, 0, d.Count)
	require.NotNil(t, d.Items)
	assert.Equal(t, KindUnknown, d.Items.Kind)
}

func TestProbe_ArraySamplesFirstElement(t *testing.T) {
	arr := models.Array{
		models.Object{{Key: "id", Value: json.Number("1")}},
		"not an object",
		true,
	}

	d := Probe(arr, 3, 0)
	assert.Equal(t, 3, d.Count)
	require.NotNil(t, d.Items)
	// only the first element is sampled, the mixed tail is invisible
	assert.Equal(t, KindObject, d.Items.Kind)
}

func TestProbe_StringTruncatedAtHundredChars(t *testing.T) {
	long := strings.Repeat("ab", 75) // 150 characters

	d := Probe(long, 3, 0)
	require.Equal(t, KindString, d.Kind)
	example, ok := d.Example.(string)
	require.True(t, ok)
	assert.Len(t, []rune(example), 100)
	assert.Equal(t, long[:100], example)
}

func TestProbe_ShortStringKeptWhole(t *testing.T) {
	d := Probe("short", 3, 0)
	assert.Equal(t, "short", d.Example)
}

func TestProbe_BooleanIsNotANumber(t *testing.T) {
	d := Probe(true, 3, 0)
	assert.Equal(t, KindBoolean, d.Kind)
	assert.Equal(t, true, d.Example)

	d = Probe(false, 3, 0)
	assert.Equal(t, KindBoolean, d.Kind)
	assert.Equal(t, false, d.Example)
}

func TestProbe_Number(t *testing.T) {
	d := Probe(json.Number("42.5"), 3, 0)
	assert.Equal(t, KindNumber, d.Kind)
	assert.Equal(t, json.Number("42.5"), d.Example)
}

func TestProbe_UnknownRuntimeType(t *testing.T) {
	d := Probe(time.Time{}, 3, 0)
	assert.Equal(t, "time.Time", d.Kind)
	assert.Nil(t, d.Example)
}

func TestProbe_NestedDepthLimit(t *testing.T) {
	// four levels deep, probed with maxDepth 3
	value := models.Object{{Key: "a", Value: models.Object{{Key: "b", Value: models.Object{{Key: "c", Value: "deep"}}}}}}

	d := Probe(value, 3, 0)
	level1 := d.Properties[0].Shape
	level2 := level1.Properties[0].Shape
	level3 := level2.Properties[0].Shape
	assert.True(t, level3.Truncated)
	assert.Equal(t, KindString, level3.Kind)
}

func TestProbe_Idempotent(t *testing.T) {
	value := models.Object{
		{Key: "league_id", Value: "1199102384316362752"},
		{Key: "settings", Value: models.Object{{Key: "playoff_teams", Value: json.Number("6")}}},
		{Key: "rosters", Value: models.Array{models.Object{{Key: "roster_id", Value: json.Number("1")}}}},
		{Key: "archived", Value: false},
		{Key: "previous_league_id", Value: nil},
	}

	first := Probe(value, 3, 0)
	second := Probe(value, 3, 0)
	assert.Empty(t, cmp.Diff(first, second))
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		value models.Value
		want  string
	}{
		{nil, KindNull},
		{models.Object{}, KindObject},
		{models.Array{}, KindArray},
		{"s", KindString},
		{true, KindBoolean},
		{json.Number("1"), KindNumber},
		{float64(1.5), KindNumber},
		{time.Time{}, "time.Time"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeName(tt.value))
	}
}
