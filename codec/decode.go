package codec

import (
	"strconv"
	"time"

	"github.com/tarantool/go-option"
)

// DecodeTime reads stored bytes as a point in time. The bytes are
// decoded as text and the first run of ASCII digits is taken as an
// epoch time in milliseconds; the returned time is in UTC. None is
// returned for nil or empty input, for text without digits, and for a
// digit run that overflows an int64.
func DecodeTime(data []byte) option.Generic[time.Time] {
	start, end := digitRun(data)
	if start == end {
		return option.None[time.Time]()
	}

	ms, err := strconv.ParseInt(string(data[start:end]), 10, 64)
	if err != nil {
		return option.None[time.Time]()
	}

	return option.Some(time.UnixMilli(ms).UTC())
}

// DecodeString reads stored bytes as text. Nil input is None; any
// other input, including an empty slice, is Some of its decoded text.
func DecodeString(data []byte) option.Generic[string] {
	if data == nil {
		return option.None[string]()
	}

	return option.Some(string(data))
}

// digitRun locates the first maximal run of ASCII digits in data,
// returning start == end when there is none.
func digitRun(data []byte) (int, int) {
	for i, b := range data {
		if b < '0' || b > '9' {
			continue
		}

		end := i + 1
		for end < len(data) && data[end] >= '0' && data[end] <= '9' {
			end++
		}

		return i, end
	}

	return 0, 0
}
