package codec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/statecraft/go-statestore/codec"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	when := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		value    codec.Value
		expected codec.Value
	}{
		{
			name:     "time becomes epoch milliseconds",
			value:    codec.Time(when),
			expected: codec.Number(1609459200000),
		},
		{
			name:     "string unchanged",
			value:    codec.String("audit"),
			expected: codec.String("audit"),
		},
		{
			name:     "number unchanged",
			value:    codec.Number(42.5),
			expected: codec.Number(42.5),
		},
		{
			name:     "bool unchanged",
			value:    codec.Bool(true),
			expected: codec.Bool(true),
		},
		{
			name:     "null unchanged",
			value:    codec.Null{},
			expected: codec.Null{},
		},
		{
			name:     "bytes unchanged",
			value:    codec.Bytes("raw"),
			expected: codec.Bytes("raw"),
		},
		{
			name:     "list normalized recursively",
			value:    codec.List{codec.Time(when), codec.String("x")},
			expected: codec.List{codec.Number(1609459200000), codec.String("x")},
		},
		{
			name: "map normalized recursively",
			value: codec.Map{
				"at":   codec.Time(when),
				"tags": codec.List{codec.Time(when)},
			},
			expected: codec.Map{
				"at":   codec.Number(1609459200000),
				"tags": codec.List{codec.Number(1609459200000)},
			},
		},
		{
			name:     "empty list unchanged",
			value:    codec.List{},
			expected: codec.List{},
		},
		{
			name:     "empty map unchanged",
			value:    codec.Map{},
			expected: codec.Map{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, codec.Normalize(tt.value))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	value := codec.Map{
		"at":   codec.Time(time.UnixMilli(1700000000000)),
		"list": codec.List{codec.Bool(false), codec.Null{}},
	}

	once := codec.Normalize(value)
	twice := codec.Normalize(once)

	assert.Equal(t, once, twice)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	when := time.UnixMilli(1700000000000)
	value := codec.Map{"inner": codec.List{codec.Time(when)}}

	normalized := codec.Normalize(value)

	assert.Equal(t, codec.Map{"inner": codec.List{codec.Number(1700000000000)}}, normalized)
	assert.Equal(t, codec.Map{"inner": codec.List{codec.Time(when)}}, value)
}
