package codec

import "time"

// Normalize rewrites a value into the shape the store persists: every
// Time collapses to its epoch time in milliseconds as a Number, and
// lists and maps are rebuilt with each element normalized. Scalars pass
// through unchanged, so normalizing twice is the same as normalizing
// once. The input is never mutated; containers come back as fresh
// copies.
func Normalize(v Value) Value {
	switch v := v.(type) {
	case Time:
		return Number(time.Time(v).UnixMilli())
	case List:
		out := make(List, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	case Map:
		out := make(Map, len(v))
		for key, item := range v {
			out[key] = Normalize(item)
		}
		return out
	default:
		return v
	}
}
