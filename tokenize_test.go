package main

import (
	"reflect"
	"testing"
)

func allTokens(s string) []token {
	tok := newTokenizer(s)
	var out []token
	for {
		t, ok := tok.next()
		if !ok {
			return out
		}
		out = append(out, t)
	}
}

func TestTokenizer(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []token
	}{
		{"plainWords", "a bc d", []token{{0, "a"}, {2, "bc"}, {5, "d"}}},
		{"leadingSpace", "  a b", []token{{2, "a"}, {4, "b"}}},
		{"singleQuotes", "'a b' c", []token{{0, "'a b'"}, {6, "c"}}},
		{"doubleQuotes", `"a b" c`, []token{{0, `"a b"`}, {6, "c"}}},
		{"escapedSpace", `a\ b c`, []token{{0, `a\ b`}, {5, "c"}}},
		{"unterminatedQuote", `a "bc d`, []token{{0, "a"}, {2, `"bc d`}}},
		{"quoteInsideWord", `a'b c'd e`, []token{{0, `a'b c'd`}, {8, "e"}}},
		{"empty", "", nil},
		{"onlySpaces", "   ", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := allTokens(c.in)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("tokens(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestTokenizerOffsetsSliceRemainder(t *testing.T) {
	// The offset of a token must allow slicing the raw remainder out of the
	// source, which is how the last variable gets its value in tokenize
	// mode.
	src := `one two 'three four' five`
	tok := newTokenizer(src)
	tok.next() // one
	tok.next() // two
	rest, ok := tok.next()
	if !ok {
		t.Fatal("expected a third token")
	}
	if got := src[rest.offset:]; got != `'three four' five` {
		t.Errorf("remainder = %q", got)
	}
}

func TestUnescapeToken(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"'a b'", "a b"},
		{`"a b"`, "a b"},
		{`a\ b`, "a b"},
		{`\n`, "\n"},
		{`\t`, "\t"},
		{`\x`, "x"},
		{`"a\"b"`, `a"b`},
		{`"a\nb"`, `a\nb`},
		{`'a\nb'`, `a\nb`},
		{`a'b c'd`, "ab cd"},
		{`trailing\`, `trailing\`},
		{"", ""},
	}
	for _, c := range cases {
		if got := unescapeToken(c.in); got != c.want {
			t.Errorf("unescapeToken(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
