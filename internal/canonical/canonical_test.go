package canonical

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"null", nil, "null"},
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"negative int32", int32(-100), "-100"},
		{"max int64", int64(math.MaxInt64), "9223372036854775807"},
		{"max uint64", uint64(math.MaxUint64), "18446744073709551615"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"float", 1.5, "1.5"},
		{"integral float", 4.0, "4"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"json number", json.Number("2.50"), "2.5"},
		{"empty array", []any{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"string slice", []string{"b", "a"}, `["b","a"]`},
		{"string map", map[string]string{"b": "1", "a": "2"}, `{"a":"2","b":"1"}`},
		{"array of mixed", []any{1, "x", nil, false}, `[1,"x",null,false]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalSortedKeys(t *testing.T) {
	obj := map[string]any{
		"zebra": 1,
		"alpha": map[string]any{"b": 1, "a": 2},
		"N":     3,
	}

	result, err := Marshal(obj)
	require.NoError(t, err)
	// Uppercase sorts before lowercase by code unit.
	assert.Equal(t, `{"N":3,"alpha":{"a":2,"b":1},"zebra":1}`, string(result))
}

func TestMarshalUTF16Ordering(t *testing.T) {
	// U+10000 encodes as the surrogate pair D800 DC00 and so sorts before
	// U+E000, the reverse of UTF-8 byte order.
	obj := map[string]any{
		"\uE000":     1,
		"\U00010000": 2,
	}

	result, err := Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, "{\"\U00010000\":2,\"\uE000\":1}", string(result))
}

func TestCompareKeys(t *testing.T) {
	assert.Negative(t, CompareKeys("a", "b"))
	assert.Positive(t, CompareKeys("b", "a"))
	assert.Zero(t, CompareKeys("same", "same"))
	assert.Negative(t, CompareKeys("ab", "abc"))
	assert.Negative(t, CompareKeys("\U00010000", "\uE000"))
}

func TestMarshalNoHTMLEscaping(t *testing.T) {
	result, err := Marshal("<a href=\"x\">&</a>")
	require.NoError(t, err)
	assert.Equal(t, `"<a href=\"x\">&</a>"`, string(result))
}

func TestMarshalLineSeparators(t *testing.T) {
	result, err := Marshal("a\u2028b\u2029c")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(result))

	// An escaped backslash followed by u2028 text is not a separator.
	result, err = Marshal(`x\u2028`)
	require.NoError(t, err)
	assert.Equal(t, `"x\\u2028"`, string(result))
}

func TestMarshalKeepsStringsAsGiven(t *testing.T) {
	// e followed by a combining acute accent stays decomposed.
	result, err := Marshal(map[string]any{"extra": "cafe\u0301"})
	require.NoError(t, err)
	assert.Equal(t, "{\"extra\":\"cafe\u0301\"}", string(result))
}

func TestMarshalNFCNormalizesKeysAndValues(t *testing.T) {
	result, err := MarshalNFC(map[string]any{"e\u0301": []any{"cafe\u0301"}})
	require.NoError(t, err)
	assert.Equal(t, "{\"\u00e9\":[\"caf\u00e9\"]}", string(result))

	composed, err := MarshalNFC("caf\u00e9")
	require.NoError(t, err)
	decomposed, err := MarshalNFC("cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestMarshalNFCRejectsCollidingKeys(t *testing.T) {
	_, err := MarshalNFC(map[string]any{"\u00e9": 1, "e\u0301": 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collide")

	_, err = Marshal(map[string]any{"\u00e9": 1, "e\u0301": 2})
	assert.NoError(t, err)
}

func TestMarshalControlCharacters(t *testing.T) {
	result, err := Marshal("tab\there\nnl")
	require.NoError(t, err)
	assert.Equal(t, `"tab\there\nnl"`, string(result))
}

func TestMarshalRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Marshal(map[string]any{"time": f})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `key "time"`)
	}
}

func TestMarshalRejectsUnsupportedTypes(t *testing.T) {
	_, err := Marshal(struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")

	_, err = Marshal([]any{1, complex(1, 2)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array[1]")
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "-1"},
		{0.1, "0.1"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e300, "1.5e+300"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{-2.5e-10, "-2.5e-10"},
		{123.456, "123.456"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := FormatNumber(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarshalIndent(t *testing.T) {
	result, err := MarshalIndent(map[string]any{"b": []any{1, 2}, "a": "x"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": \"x\",\n  \"b\": [\n    1,\n    2\n  ]\n}\n", string(result))
}

func TestMarshalDeterminism(t *testing.T) {
	obj := map[string]any{}
	for _, k := range []string{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"} {
		obj[k] = map[string]any{"nested": k, "n": len(k)}
	}

	first, err := Marshal(obj)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := Marshal(obj)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
