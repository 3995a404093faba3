package codec

import (
	"github.com/statecraft/go-statestore/internal/json"
)

// ResultKind says which of the three decode outcomes a Result holds.
type ResultKind int

const (
	// KindNil is the outcome for nil or empty input.
	KindNil ResultKind = iota
	// KindParsed is the outcome for input that decoded as JSON.
	KindParsed
	// KindRaw is the outcome for input that did not decode as JSON and
	// was kept as its literal text.
	KindRaw
)

// String implements fmt.Stringer.
func (k ResultKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindParsed:
		return "parsed"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Result is the outcome of decoding stored bytes. It distinguishes a
// parsed value from text that merely failed to parse, so callers that
// care can tell the string `"a"` apart from the string `a`. The zero
// Result is the nil outcome.
type Result struct {
	kind   ResultKind
	parsed Value
	raw    string
}

// NilResult returns the Result for absent input.
func NilResult() Result {
	return Result{kind: KindNil}
}

// ParsedResult returns a Result carrying a decoded value.
func ParsedResult(v Value) Result {
	return Result{kind: KindParsed, parsed: v}
}

// RawResult returns a Result carrying undecodable input as literal text.
func RawResult(text string) Result {
	return Result{kind: KindRaw, raw: text}
}

// Kind reports which outcome the Result holds.
func (r Result) Kind() ResultKind {
	return r.kind
}

// Parsed returns the decoded value. The boolean is false unless the
// Result is a parsed outcome.
func (r Result) Parsed() (Value, bool) {
	if r.kind != KindParsed {
		return nil, false
	}
	return r.parsed, true
}

// Raw returns the literal text of undecodable input. The boolean is
// false unless the Result is a raw outcome.
func (r Result) Raw() (string, bool) {
	if r.kind != KindRaw {
		return "", false
	}
	return r.raw, true
}

// MarshalJSON implements json.Marshaler. The nil outcome encodes as
// null, the parsed outcome as its JSON form, and the raw outcome as a
// JSON string of its literal text.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(r.Value()))
}

// Value collapses the Result into a single value: Null for the nil
// outcome, the decoded value for the parsed outcome, and the literal
// text as a String for the raw outcome.
func (r Result) Value() Value {
	switch r.kind {
	case KindParsed:
		return r.parsed
	case KindRaw:
		return String(r.raw)
	default:
		return Null{}
	}
}
