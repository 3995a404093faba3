package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/statecraft/go-statestore/codec"
)

func TestResultZeroValueIsNil(t *testing.T) {
	t.Parallel()

	var result codec.Result

	assert.Equal(t, codec.KindNil, result.Kind())
	assert.Equal(t, codec.Null{}, result.Value())

	_, ok := result.Parsed()
	assert.False(t, ok)

	_, ok = result.Raw()
	assert.False(t, ok)
}

func TestResultParsed(t *testing.T) {
	t.Parallel()

	result := codec.ParsedResult(codec.Number(7))

	assert.Equal(t, codec.KindParsed, result.Kind())

	parsed, ok := result.Parsed()
	assert.True(t, ok)
	assert.Equal(t, codec.Number(7), parsed)

	_, ok = result.Raw()
	assert.False(t, ok)

	assert.Equal(t, codec.Number(7), result.Value())
}

func TestResultRaw(t *testing.T) {
	t.Parallel()

	result := codec.RawResult("not json")

	assert.Equal(t, codec.KindRaw, result.Kind())

	raw, ok := result.Raw()
	assert.True(t, ok)
	assert.Equal(t, "not json", raw)

	_, ok = result.Parsed()
	assert.False(t, ok)

	assert.Equal(t, codec.String("not json"), result.Value())
}

func TestResultMarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   codec.Result
		expected string
	}{
		{
			name:     "nil outcome is null",
			result:   codec.NilResult(),
			expected: "null",
		},
		{
			name:     "parsed outcome is its json form",
			result:   codec.ParsedResult(codec.Map{"n": codec.Number(1)}),
			expected: `{"n":1}`,
		},
		{
			name:     "raw outcome is a quoted string",
			result:   codec.RawResult("not json"),
			expected: `"not json"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := tt.result.MarshalJSON()
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestResultKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nil", codec.KindNil.String())
	assert.Equal(t, "parsed", codec.KindParsed.String())
	assert.Equal(t, "raw", codec.KindRaw.String())
	assert.Equal(t, "unknown", codec.ResultKind(99).String())
}
