// Package occupancy classifies spectrum readings as vacant or occupied and
// groups them into fixed-width broadcast channels
//
// Every function in this package is a pure transform over its arguments and
// is safe for concurrent use
package occupancy

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Reading is a single power measurement at one frequency
type Reading struct {
	Frequency float64 `json:"frequency" doc:"Frequency in MHz"`
	Power     float64 `json:"power" doc:"Measured power in dBm"`
}

// Field names accepted by Normalize. The capitalized form is what the scan
// collector writes; the lowercase form comes from manual entry
const (
	frequencyKey         = "Frequency"
	frequencyFallbackKey = "frequency"
	powerKey             = "Power"
	powerFallbackKey     = "power"
)

// Normalize converts a raw reading document into a Reading. It returns false
// when either value is missing or is not a finite number
func Normalize(raw map[string]any) (Reading, bool) {
	freq, ok := lookupNumber(raw, frequencyKey, frequencyFallbackKey)
	if !ok {
		return Reading{}, false
	}
	power, ok := lookupNumber(raw, powerKey, powerFallbackKey)
	if !ok {
		return Reading{}, false
	}
	return Reading{Frequency: freq, Power: power}, true
}

// NormalizeAll normalizes every raw reading, dropping the malformed ones
func NormalizeAll(raws []map[string]any) []Reading {
	readings := make([]Reading, 0, len(raws))
	for _, raw := range raws {
		if r, ok := Normalize(raw); ok {
			readings = append(readings, r)
		}
	}
	return readings
}

// Objects keeps the elements of a decoded JSON array that are objects, so a
// stray string or nested array in a readings list is dropped instead of
// failing the whole document
func Objects(values []any) []map[string]any {
	objects := make([]map[string]any, 0, len(values))
	for _, v := range values {
		if obj, ok := v.(map[string]any); ok {
			objects = append(objects, obj)
		}
	}
	return objects
}

// ParseNumber accepts the numeric shapes found in scan documents: JSON
// numbers, numeric strings and Go numeric types. It reports false for
// anything else and for NaN or infinite values
func ParseNumber(v any) (float64, bool) {
	return toFinite(v)
}

// lookupNumber resolves the canonical key first and only consults the
// fallback key when the canonical one is absent or null
func lookupNumber(raw map[string]any, key, fallback string) (float64, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		v, ok = raw[fallback]
		if !ok || v == nil {
			return 0, false
		}
	}
	return toFinite(v)
}

func toFinite(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
