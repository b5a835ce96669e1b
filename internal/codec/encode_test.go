package codec

import (
	"testing"
	"time"

	"github.com/mcncl/canonjson/internal/errors"
	"github.com/mcncl/canonjson/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		value value.Value
		want  string
	}{
		{
			name:  "scalars",
			value: value.Array{nil, true, false, int64(-12), "spam"},
			want:  `[null,true,false,-12,"spam"]`,
		},
		{
			name:  "sorted keys",
			value: object("b", int64(1), "a", int64(2), "C", int64(3)),
			want:  `{"C":3,"a":2,"b":1}`,
		},
		{
			name:  "decimal as string",
			value: object("amount", decimal(t, "10.00000001")),
			want:  `{"amount":"10.00000001"}`,
		},
		{
			name:  "date and datetime leaves",
			value: value.Array{testDate, testDateTime},
			want:  `["2024-03-05","2024-03-05T10:00:00"]`,
		},
		{
			name:  "typed keys",
			value: object(testDateTime, object(testDate, value.Array{testDateTime})),
			want:  `{"2024-03-05T10:00:00":{"2024-03-05":["2024-03-05T10:00:00"]}}`,
		},
		{
			name:  "scalar keys",
			value: object(decimal(t, "1.5"), "d", int64(2), "i", true, "b", nil, "n"),
			want:  `{"1.5":"d","2":"i","null":"n","true":"b"}`,
		},
		{
			name:  "typed and string keys sort together",
			value: object("2024-03-06", "s", testDate, "d"),
			want:  `{"2024-03-05":"d","2024-03-06":"s"}`,
		},
		{
			name:  "empty containers",
			value: object("a", value.Array{}, "o", object(), "nil", value.Array(nil)),
			want:  `{"a":[],"nil":[],"o":{}}`,
		},
		{
			name:  "escaping",
			value: "quote \" backslash \\ newline \n tab \t bell \a <html> & caf\u00e9 \u2028\u2029",
			want:  "\"quote \\\" backslash \\\\ newline \\n tab \\t bell \\u0007 <html> & caf\u00e9 \\u2028\\u2029\"",
		},
		{
			name:  "invalid utf8",
			value: "a\xffb",
			want:  `"a\ufffdb"`,
		},
		{
			name:  "control characters",
			value: "cr \r ff \f bs \b nul \x00 us \x1f",
			want:  `"cr \r ff \f bs \b nul \u0000 us \u001f"`,
		},
		{
			name:  "escaped key",
			value: object("a\"<b>\n", int64(1)),
			want:  `{"a\"<b>\n":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.value, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_InsertionOrderWithoutSorting(t *testing.T) {
	got, err := Encode(object("b", int64(1), "a", int64(2)), false)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":2}`, got)
}

func TestEncodeIndent(t *testing.T) {
	got, err := EncodeIndent(object("b", value.Array{int64(1), int64(2)}, "a", object(), "c", object("d", nil)), true, "  ")
	require.NoError(t, err)

	want := "{\n" +
		"  \"a\": {},\n" +
		"  \"b\": [\n" +
		"    1,\n" +
		"    2\n" +
		"  ],\n" +
		"  \"c\": {\n" +
		"    \"d\": null\n" +
		"  }\n" +
		"}"
	assert.Equal(t, want, got)
}

func TestEncode_UnsupportedTypes(t *testing.T) {
	for name, v := range map[string]value.Value{
		"plain int":       3,
		"plain float":     1.5,
		"plain map":       map[string]any{"a": 1},
		"nested":          value.Array{"ok", struct{}{}},
		"nil object":      (*value.Object)(nil),
		"in object value": object("a", []string{"x"}),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Encode(v, true)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrUnsupportedType)
			assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeEncoding})
		})
	}
}

func TestRoundTrip_SimpleValues(t *testing.T) {
	inputs := []value.Value{
		object("spam", "eggs"),
		value.Array{"spam", "eggs"},
		object("a", value.Array{int64(1), nil, true, "x"}, "b", object("c", object())),
		value.Array{value.Array{}, object("k", false)},
		"plain",
		int64(42),
		nil,
	}

	for _, in := range inputs {
		text, err := Encode(in, true)
		require.NoError(t, err)

		out, err := DecodeString(text, Options{})
		require.NoError(t, err)
		assert.True(t, value.Equal(in, out), "round trip of %s", text)
	}
}

func TestRoundTrip_Date(t *testing.T) {
	v, err := DecodeString(`{"date": "2024-03-05"}`, Options{ParseDates: true})
	require.NoError(t, err)

	date, _ := v.(*value.Object).Get("date")
	assert.Equal(t, value.NewDate(2024, time.March, 5), date)

	text, err := Encode(v, true)
	require.NoError(t, err)
	assert.Equal(t, `{"date":"2024-03-05"}`, text)
}

func TestRoundTrip_DateTimeKey(t *testing.T) {
	const original = `{"2024-03-05T10:00:00":["x"]}`

	v, err := DecodeString(original, Options{ParseDates: true})
	require.NoError(t, err)

	obj := v.(*value.Object)
	require.Equal(t, []value.Value{testDateTime}, obj.Keys())
	val, _ := obj.Get(testDateTime)
	assert.True(t, value.Equal(value.Array{"x"}, val))

	text, err := Encode(v, true)
	require.NoError(t, err)
	assert.Equal(t, original, text)
}

func TestRoundTrip_DecimalPrecision(t *testing.T) {
	v, err := DecodeString(`10.00000001`, Options{})
	require.NoError(t, err)

	text, err := Encode(v, true)
	require.NoError(t, err)
	assert.Equal(t, `"10.00000001"`, text)
}

func TestEncode_EqualTreesRenderIdentically(t *testing.T) {
	a, err := DecodeString(`{"b": [1, {"y": 2, "x": 1}], "a": "2024-03-05"}`, Options{ParseDates: true})
	require.NoError(t, err)
	b, err := DecodeString(`{"a": "2024-03-05", "b": [1, {"x": 1, "y": 2}]}`, Options{ParseDates: true})
	require.NoError(t, err)

	ta, err := Encode(a, true)
	require.NoError(t, err)
	tb, err := Encode(b, true)
	require.NoError(t, err)
	assert.Equal(t, ta, tb)
}
