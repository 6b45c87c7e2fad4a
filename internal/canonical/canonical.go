// Package canonical produces byte-stable JSON.
//
// Output follows RFC 8785 so the same value always encodes to the same bytes:
//   - object keys sorted by UTF-16 code units (not UTF-8 bytes)
//   - no HTML escaping (< > & stay literal)
//   - numbers in ECMAScript shortest form; NaN and ±Inf are rejected
//
// Marshal keeps strings exactly as given, so stored records read back
// unchanged. Fingerprints additionally NFC-normalize every string, so
// canonically equivalent text hashes the same.
package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// Marshal encodes v as canonical JSON.
//
// Supported values: nil, bool, string, all Go integer kinds, float32,
// float64, json.Number, []any, []string, map[string]any and
// map[string]string.
func Marshal(v any) ([]byte, error) {
	return encoder{}.marshal(v)
}

// MarshalNFC is Marshal with keys and string values NFC normalized.
func MarshalNFC(v any) ([]byte, error) {
	return encoder{nfc: true}.marshal(v)
}

// MarshalIndent encodes v as canonical JSON, indents it with two spaces and
// appends a trailing newline.
func MarshalIndent(v any) ([]byte, error) {
	compact, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("indent canonical json: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

type encoder struct {
	nfc bool
}

func (e encoder) marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e encoder) encode(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		return e.encodeString(buf, val)
	case int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int8:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int16:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int32:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case uint:
		buf.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint8:
		buf.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint16:
		buf.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint32:
		buf.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint64:
		buf.WriteString(strconv.FormatUint(val, 10))
	case float32:
		return encodeFloat(buf, float64(val))
	case float64:
		return encodeFloat(buf, val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", val.String(), err)
		}
		return encodeFloat(buf, f)
	case []any:
		return e.encodeArray(buf, len(val), func(i int) any { return val[i] })
	case []string:
		return e.encodeArray(buf, len(val), func(i int) any { return val[i] })
	case map[string]any:
		return e.encodeObject(buf, val)
	case map[string]string:
		obj := make(map[string]any, len(val))
		for k, s := range val {
			obj[k] = s
		}
		return e.encodeObject(buf, obj)
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

// FormatNumber renders f the way ECMAScript Number.prototype.toString does.
func FormatNumber(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("non-finite number %v is not valid JSON", f)
	}
	if f == 0 {
		return "0", nil
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits, nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func encodeFloat(buf *bytes.Buffer, f float64) error {
	s, err := FormatNumber(f)
	if err != nil {
		return err
	}
	buf.WriteString(s)
	return nil
}

// encodeString writes s without HTML escaping.
func (e encoder) encodeString(buf *bytes.Buffer, s string) error {
	if e.nfc {
		s = norm.NFC.String(s)
	}
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	out := bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'})
	buf.Write(unescapeLineSeparators(out))
	return nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes emitted by
// encoding/json back into literal characters. An escape preceded by an odd
// number of backslashes is literal text and stays as is.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == '\\' && i+5 < len(data) && string(data[i+1:i+5]) == "u202" &&
			(data[i+5] == '8' || data[i+5] == '9') && trailingBackslashes(out)%2 == 0 {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, data[i])
	}
	return out
}

func trailingBackslashes(b []byte) int {
	n := 0
	for j := len(b) - 1; j >= 0 && b[j] == '\\'; j-- {
		n++
	}
	return n
}

func (e encoder) encodeArray(buf *bytes.Buffer, n int, at func(int) any) error {
	buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := e.encode(buf, at(i)); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

func (e encoder) encodeObject(buf *bytes.Buffer, obj map[string]any) error {
	if e.nfc {
		normalized := make(map[string]any, len(obj))
		for k, v := range obj {
			nk := norm.NFC.String(k)
			if _, dup := normalized[nk]; dup {
				return fmt.Errorf("keys collide after NFC normalization: %q", nk)
			}
			normalized[nk] = v
		}
		obj = normalized
	}

	buf.WriteByte('{')
	for i, k := range SortedKeys(obj) {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := e.encodeString(buf, k); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		buf.WriteByte(':')
		if err := e.encode(buf, obj[k]); err != nil {
			return fmt.Errorf("value for key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// SortedKeys returns the keys of obj in RFC 8785 order.
func SortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, CompareKeys)
	return keys
}

// CompareKeys orders strings by UTF-16 code units.
// Go's native string comparison works on UTF-8 bytes and disagrees for
// characters outside the Basic Multilingual Plane.
func CompareKeys(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}
