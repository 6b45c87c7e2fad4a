package model

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	errNotInteger = errors.New("must be an integer")
	errOverflow   = errors.New("integer does not fit in 64 bits")
	errNotNumber  = errors.New("must be a number")
	errNotFinite  = errors.New("must be a finite number")
	errNotBool    = errors.New("must be a boolean")
	errNotString  = errors.New("must be a string")
)

// Bounds of the int64 range as float64; 2^63 itself is excluded.
const (
	minInt64Float = -9223372036854775808.0
	maxInt64Float = 9223372036854775808.0
)

// asInt accepts integers in any Go representation produced by the JSON, YAML
// and CUE decoders, integral floats, and decimal strings. Booleans are
// rejected even though some decoders treat them as numbers.
func asInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return uintToInt(uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return uintToInt(n)
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		return parseInt(string(n))
	case string:
		return parseInt(strings.TrimSpace(n))
	default:
		return 0, errNotInteger
	}
}

func uintToInt(n uint64) (int64, error) {
	if n > math.MaxInt64 {
		return 0, errOverflow
	}
	return int64(n), nil
}

func floatToInt(f float64) (int64, error) {
	if math.IsNaN(f) || f != math.Trunc(f) {
		return 0, errNotInteger
	}
	if f < minInt64Float || f >= maxInt64Float {
		return 0, errOverflow
	}
	return int64(f), nil
}

func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, errNotInteger
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return n, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, errOverflow
	}
	// "4.0" and "1e3" are integral numbers written as floats.
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		if errors.Is(ferr, strconv.ErrRange) && !math.IsNaN(f) && math.Abs(f) > 1 {
			return 0, errOverflow
		}
		return 0, errNotInteger
	}
	return floatToInt(f)
}

// asFloat accepts any finite number or numeric string.
func asFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		i, err := asInt(n)
		if err != nil {
			return 0, errNotNumber
		}
		f = float64(i)
	case float32:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := strconv.ParseFloat(string(n), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, errNotNumber
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, errNotNumber
		}
		f = parsed
	default:
		return 0, errNotNumber
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}

// asBool accepts booleans, the integers 0 and 1, and the usual textual
// spellings of true and false.
func asBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "1", "on", "t", "true", "y", "yes":
			return true, nil
		case "0", "off", "f", "false", "n", "no":
			return false, nil
		}
		return false, errNotBool
	case nil:
		return false, errNotBool
	default:
		n, err := asInt(b)
		if err != nil || (n != 0 && n != 1) {
			return false, errNotBool
		}
		return n == 1, nil
	}
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errNotString
	}
	return s, nil
}

// asObject accepts the map shapes produced by the supported decoders.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case []any:
		return "array"
	default:
		if _, ok := asObject(v); ok {
			return "object"
		}
		return "value"
	}
}
