package main

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitAbout(t *testing.T) {
	cases := []struct {
		name      string
		s, sep    string
		maxSplits int
		want      []string
	}{
		{"unlimited", "a,b,c", ",", -1, []string{"a", "b", "c"}},
		{"remainderToLast", "a,b,c", ",", 1, []string{"a", "b,c"}},
		{"noSeparator", "abc", ",", -1, []string{"abc"}},
		{"trailingSeparator", "a,", ",", -1, []string{"a", ""}},
		{"leadingSeparator", ",a", ",", -1, []string{"", "a"}},
		{"empty", "", ",", -1, []string{""}},
		{"multiCharSep", "a::b::c", "::", -1, []string{"a", "b", "c"}},
		{"zeroSplits", "a,b", ",", 0, []string{"a,b"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := splitAbout(c.s, c.sep, c.maxSplits, false)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("splitAbout(%q, %q, %d) = %v, want %v", c.s, c.sep, c.maxSplits, got, c.want)
			}
		})
	}
}

func TestSplitAboutRoundTrip(t *testing.T) {
	// Splitting the joined output again with enough room reproduces the
	// original fields.
	fields := []string{"one", "two", "three"}
	joined := strings.Join(fields, ",")
	if got := splitAbout(joined, ",", len(fields)-1, false); !reflect.DeepEqual(got, fields) {
		t.Errorf("round trip: got %v, want %v", got, fields)
	}
}

func TestSplitTok(t *testing.T) {
	cases := []struct {
		name      string
		s, seps   string
		maxTokens int
		want      []string
	}{
		{"whitespace", "foo bar baz", " \t\n", 0, []string{"foo", "bar", "baz"}},
		{"collapsesRuns", "  foo\t\tbar  ", " \t\n", 0, []string{"foo", "bar"}},
		{"eachSepIndependent", "a:b;c", ":;", 0, []string{"a", "b", "c"}},
		{"remainderKeepsSeps", "a b c d", " ", 3, []string{"a", "b", "c d"}},
		{"remainderSkipsLeadingSeps", "a   b   c", " ", 2, []string{"a", "b   c"}},
		{"onlySeps", "   ", " ", 0, nil},
		{"empty", "", " ", 0, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := splitTok(c.s, c.seps, c.maxTokens)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("splitTok(%q, %q, %d) = %v, want %v", c.s, c.seps, c.maxTokens, got, c.want)
			}
		})
	}
}

func TestSplitChars(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		array    bool
		varsLeft int
		want     []string
	}{
		{"exactFit", "ab", false, 2, []string{"a", "b"}},
		{"remainderToLast", "abc", false, 2, []string{"a", "bc"}},
		{"moreVarsThanChars", "a", false, 3, []string{"a"}},
		{"arrayAllSingles", "abc", true, 1, []string{"a", "b", "c"}},
		{"multiByte", "éß", false, 2, []string{"é", "ß"}},
		{"empty", "", false, 2, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := splitChars(c.text, c.array, c.varsLeft)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("splitChars(%q, %v, %d) = %v, want %v", c.text, c.array, c.varsLeft, got, c.want)
			}
		})
	}
}
