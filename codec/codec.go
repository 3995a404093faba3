// Package codec converts ledger values between their in-memory form and
// the byte form a ledger-backed key/value store persists.
//
// Values are modeled as the sealed Value union. Outbound, Normalize
// reshapes a value into its JSON-safe form and Codec.Marshal encodes it:
// raw bytes pass through untouched, times and strings become their bare
// text, everything else becomes JSON. Inbound, Codec.Unmarshal never
// fails: absent input yields a nil Result, valid JSON yields a parsed
// Result, and anything else is kept as raw text with the parse error
// recorded on the codec's logger.
package codec

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/statecraft/go-statestore/internal/json"
)

// Codec encodes values for storage and decodes stored bytes back.
//
// A Codec is immutable and safe for concurrent use. The zero Codec is
// not usable; construct one with New.
type Codec struct {
	logger *zap.Logger
}

// New creates a Codec. The logger records JSON-parse fallbacks during
// Unmarshal and is never consulted on any other path; passing nil
// disables logging.
func New(logger *zap.Logger) *Codec {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Codec{logger: logger.Named("codec")}
}

// Marshal encodes a value into its stored byte form.
//
// Bytes come back unchanged, sharing the input's backing array, so
// marshalling is idempotent on already-encoded values. A Time encodes
// as the decimal digits of its epoch time in milliseconds and a String
// as its own bytes, both unquoted. Every other value is normalized and
// encoded as JSON text. The error is non-nil only for value graphs the
// JSON engine cannot encode, such as self-referential containers.
func (c *Codec) Marshal(v Value) ([]byte, error) {
	switch v := v.(type) {
	case Bytes:
		return v, nil
	case Time:
		ms := time.Time(v).UnixMilli()

		return strconv.AppendInt(nil, ms, 10), nil
	case String:
		return []byte(v), nil
	default:
		return json.Marshal(toJSON(Normalize(v)))
	}
}

// Unmarshal decodes stored bytes into a Result. It never fails: nil or
// empty input yields the nil Result, valid JSON yields a parsed Result,
// and any other content yields a raw Result carrying the input's text,
// with the parse error recorded on the codec's logger.
func (c *Codec) Unmarshal(data []byte) Result {
	if len(data) == 0 {
		return NilResult()
	}

	var decoded any

	if err := json.Unmarshal(data, &decoded); err != nil {
		c.logger.Error("cannot decode value as json, keeping raw text",
			zap.Error(err),
			zap.Int("bytes", len(data)))

		return RawResult(string(data))
	}

	return ParsedResult(fromJSON(decoded))
}

// UnmarshalText decodes a string payload with the same semantics as
// Unmarshal. An empty string yields the nil Result.
func (c *Codec) UnmarshalText(text string) Result {
	return c.Unmarshal([]byte(text))
}
