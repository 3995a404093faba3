package codec

import (
	"math"
	"time"
)

// Value is the closed set of shapes a ledger value can take in memory.
// A Value is built with ordinary conversions and composite literals:
//
//	codec.String("audit"), codec.Number(42), codec.Bool(true),
//	codec.Time(time.Now()), codec.Bytes(raw),
//	codec.List{codec.Number(1)}, codec.Map{"id": codec.String("a")},
//	codec.Null{}
//
// The set is sealed so every consumer can match exhaustively instead of
// probing with reflection.
type Value interface {
	isValue()
}

// Null is the JSON null value and the in-memory stand-in for "no value".
type Null struct{}

// Bool is a boolean value.
type Bool bool

// Number is a numeric value. There is a single numeric shape, stored as
// float64; integral values survive exactly up to 2^53.
type Number float64

// String is a text value.
type String string

// Bytes is an opaque binary value. It passes through Marshal unchanged.
type Bytes []byte

// Time is a point-in-time value. It serializes as its epoch time in
// milliseconds.
type Time time.Time

// List is an ordered sequence of values.
type List []Value

// Map is a keyed mapping of values.
type Map map[string]Value

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Bytes) isValue()  {}
func (Time) isValue()   {}
func (List) isValue()   {}
func (Map) isValue()    {}

// toJSON projects a Value onto the shapes the JSON engine understands.
// Non-finite numbers project to nil, matching how the source encoder
// emitted them.
func toJSON(v Value) any {
	switch v := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(v)
	case Number:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	case String:
		return string(v)
	case Bytes:
		return []byte(v)
	case Time:
		return float64(time.Time(v).UnixMilli())
	case List:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = toJSON(item)
		}
		return out
	case Map:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = toJSON(item)
		}
		return out
	default:
		return nil
	}
}

// fromJSON lifts a decoded engine value into the union. The engine is
// pinned to standard-library compatibility, so only the six shapes below
// ever appear.
func fromJSON(raw any) Value {
	switch raw := raw.(type) {
	case nil:
		return Null{}
	case bool:
		return Bool(raw)
	case float64:
		return Number(raw)
	case string:
		return String(raw)
	case []any:
		out := make(List, len(raw))
		for i, item := range raw {
			out[i] = fromJSON(item)
		}
		return out
	case map[string]any:
		out := make(Map, len(raw))
		for key, item := range raw {
			out[key] = fromJSON(item)
		}
		return out
	default:
		return Null{}
	}
}
