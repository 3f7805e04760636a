// Package prober produces bounded-depth structural summaries of decoded
// JSON values. It is the analysis core behind the survey report: every
// endpoint response is probed once and the resulting descriptors are
// embedded in the Markdown output.
package prober

import (
	"encoding/json"
	"fmt"

	"github.com/mrab54/sleeper-db/internal/models"
)

// DefaultMaxDepth is the probe depth used by the survey.
const DefaultMaxDepth = 3

const (
	// maxObjectKeys caps object fan-out; anything beyond it is folded
	// into a single synthetic "..." entry.
	maxObjectKeys = 20
	// maxExampleLen caps string examples at 100 characters. Truncated
	// strings carry no marker, unlike depth truncation.
	maxExampleLen = 100
)

// Probe returns a structural summary of v, recursing at most maxDepth
// levels below the caller's depth. It is pure and total: any value a JSON
// decoder can produce maps to a descriptor, and unrecognized runtime types
// degrade to a bare type tag rather than failing.
func Probe(v models.Value, maxDepth, depth int) *Descriptor {
	if depth >= maxDepth {
		return &Descriptor{Kind: TypeName(v), Truncated: true}
	}

	switch value := v.(type) {
	case nil:
		return &Descriptor{Kind: KindNull}
	case models.Object:
		d := &Descriptor{Kind: KindObject}
		for i, m := range value {
			if i == maxObjectKeys {
				break
			}
			d.Properties = append(d.Properties, Property{
				Key:   m.Key,
				Shape: Probe(m.Value, maxDepth, depth+1),
			})
		}
		if omitted := len(value) - maxObjectKeys; omitted > 0 {
			d.Properties = append(d.Properties, Property{
				Key:   "...",
				Shape: &Descriptor{Note: fmt.Sprintf("and %d more properties", omitted)},
			})
		}
		return d
	case models.Array:
		if len(value) == 0 {
			return &Descriptor{Kind: KindArray, Items: &Descriptor{Kind: KindUnknown}}
		}
		// The first element stands in for the whole array; heterogeneous
		// arrays are not detected.
		return &Descriptor{
			Kind:  KindArray,
			Count: len(value),
			Items: Probe(value[0], maxDepth, depth+1),
		}
	case string:
		if runes := []rune(value); len(runes) > maxExampleLen {
			value = string(runes[:maxExampleLen])
		}
		return &Descriptor{Kind: KindString, Example: value}
	case bool:
		// bool has its own case so it never falls through to number.
		return &Descriptor{Kind: KindBoolean, Example: value}
	case json.Number, float64, int, int64:
		return &Descriptor{Kind: KindNumber, Example: value}
	default:
		return &Descriptor{Kind: fmt.Sprintf("%T", v)}
	}
}

// TypeName reports the prober's name for v's runtime type.
func TypeName(v models.Value) string {
	switch v.(type) {
	case nil:
		return KindNull
	case models.Object:
		return KindObject
	case models.Array:
		return KindArray
	case string:
		return KindString
	case bool:
		return KindBoolean
	case json.Number, float64, int, int64:
		return KindNumber
	default:
		return fmt.Sprintf("%T", v)
	}
}
