package main

import (
	"strings"
	"unicode/utf8"
)

// token is one shell word. offset is the byte offset of its first character
// in the source line, so a caller can slice out the raw remainder.
type token struct {
	offset int
	text   string
}

// tokenizer splits a line into shell words, honoring single quotes, double
// quotes, and backslash escapes. Unterminated quotes are accepted and run to
// the end of the line.
type tokenizer struct {
	src string
	pos int
}

func newTokenizer(s string) *tokenizer {
	return &tokenizer{src: s}
}

func isShellSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

func (t *tokenizer) next() (token, bool) {
	s := t.src
	for t.pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[t.pos:])
		if !isShellSpace(r) {
			break
		}
		t.pos += size
	}
	if t.pos >= len(s) {
		return token{}, false
	}

	start := t.pos
	var quote rune
	for t.pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[t.pos:])
		switch {
		case quote == '\'':
			if r == '\'' {
				quote = 0
			}
		case quote == '"':
			if r == '\\' && t.pos+size < len(s) {
				_, esc := utf8.DecodeRuneInString(s[t.pos+size:])
				size += esc
			} else if r == '"' {
				quote = 0
			}
		case r == '\\':
			if t.pos+size < len(s) {
				_, esc := utf8.DecodeRuneInString(s[t.pos+size:])
				size += esc
			}
		case r == '\'' || r == '"':
			quote = r
		case isShellSpace(r):
			return token{offset: start, text: s[start:t.pos]}, true
		}
		t.pos += size
	}
	return token{offset: start, text: s[start:]}, true
}

// unescapeToken strips quoting from a raw shell word. Backslash sequences
// outside quotes interpret \n, \t and \r; anything else escapes to itself.
// Inside double quotes, a backslash only escapes characters that are special
// there.
func unescapeToken(s string) string {
	var b strings.Builder
	var quote rune
	escaped := false

	for _, r := range s {
		switch {
		case escaped:
			escaped = false
			if quote == '"' {
				switch r {
				case '"', '\\', '$', '`':
					b.WriteRune(r)
				default:
					b.WriteRune('\\')
					b.WriteRune(r)
				}
				continue
			}
			switch r {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			default:
				b.WriteRune(r)
			}
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				b.WriteRune(r)
			}
		case quote == '"':
			if r == '\\' {
				escaped = true
			} else if r == '"' {
				quote = 0
			} else {
				b.WriteRune(r)
			}
		case r == '\\':
			escaped = true
		case r == '\'' || r == '"':
			quote = r
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteRune('\\')
	}
	return b.String()
}
