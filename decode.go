package main

import "unicode/utf8"

// decoder assembles UTF-8 characters from bytes arriving one at a time. A
// partial multi-byte sequence is retained across Feed calls until it either
// completes or turns out to be malformed. Malformed input passes through as
// one rune per raw byte, so no byte is ever dropped and decoding never fails.
type decoder struct {
	pending []byte
}

type decodeState int

const (
	decodeIncomplete decodeState = iota
	decodeComplete
)

// seqLen returns the expected length of a UTF-8 sequence starting with b, or
// 0 if b cannot start one.
func seqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b >= 0xC2 && b <= 0xDF:
		return 2
	case b >= 0xE0 && b <= 0xEF:
		return 3
	case b >= 0xF0 && b <= 0xF4:
		return 4
	default:
		return 0
	}
}

// Feed consumes one byte, appending any completed characters to out. It
// reports decodeIncomplete while a multi-byte sequence is still open.
func (d *decoder) Feed(b byte, out *[]rune) decodeState {
	if len(d.pending) == 0 {
		switch seqLen(b) {
		case 0, 1:
			*out = append(*out, rune(b))
			return decodeComplete
		}
		d.pending = append(d.pending, b)
		return decodeIncomplete
	}

	if b&0xC0 != 0x80 {
		// The open sequence can no longer complete. Pass its bytes through
		// and restart on the current byte.
		d.flush(out)
		return d.Feed(b, out)
	}

	d.pending = append(d.pending, b)
	if len(d.pending) < seqLen(d.pending[0]) {
		return decodeIncomplete
	}

	r, size := utf8.DecodeRune(d.pending)
	if r == utf8.RuneError && size <= 1 {
		// Overlong or otherwise invalid encoding.
		d.flush(out)
		return decodeComplete
	}
	*out = append(*out, r)
	d.pending = d.pending[:0]
	return decodeComplete
}

// flush passes any retained bytes through as individual runes.
func (d *decoder) flush(out *[]rune) {
	for _, b := range d.pending {
		*out = append(*out, rune(b))
	}
	d.pending = d.pending[:0]
}

// decodeString decodes a whole buffer under the same passthrough policy as
// Feed, so chunked and byte-at-a-time acquisition agree on every input.
func decodeString(raw []byte) string {
	out := make([]rune, 0, len(raw))
	var d decoder
	for _, b := range raw {
		d.Feed(b, &out)
	}
	d.flush(&out)
	return string(out)
}
