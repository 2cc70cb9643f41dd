package main

import (
	"bytes"
	"reflect"
	"testing"
)

func TestStoreSetAndGet(t *testing.T) {
	s := newStore()
	s.Set("a", 0, []string{"x"})
	s.Set("b", 0, []string{"y", "z"})

	if v, ok := s.Get("a"); !ok || !reflect.DeepEqual(v, []string{"x"}) {
		t.Errorf("a = %v/%v", v, ok)
	}
	if v, ok := s.Get("b"); !ok || !reflect.DeepEqual(v, []string{"y", "z"}) {
		t.Errorf("b = %v/%v", v, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("missing variable reported present")
	}
}

func TestStoreFiresChangeNotification(t *testing.T) {
	s := newStore()
	var fired []string
	s.onChange = func(name string) { fired = append(fired, name) }

	s.Set("a", 0, []string{"1"})
	s.SetEmpty("b", 0)
	s.Set("a", 0, []string{"2"})

	want := []string{"a", "b", "a"}
	if !reflect.DeepEqual(fired, want) {
		t.Errorf("notifications = %v, want %v", fired, want)
	}
}

func TestStoreSetEmptyIsExplicit(t *testing.T) {
	s := newStore()
	s.SetEmpty("a", 0)
	v, ok := s.Get("a")
	if !ok {
		t.Fatal("cleared variable must still be present")
	}
	if len(v) != 0 {
		t.Fatalf("cleared variable has values: %v", v)
	}
}

func TestStoreIFS(t *testing.T) {
	s := newStore()
	t.Setenv("IFS", ":")
	if got := s.IFS(); got != ":" {
		t.Errorf("IFS from environment = %q", got)
	}

	s.Set("IFS", 0, []string{";"})
	if got := s.IFS(); got != ";" {
		t.Errorf("IFS from store = %q", got)
	}

	// An explicitly empty IFS selects per-character splitting and must not
	// fall back to the default.
	s.Set("IFS", 0, []string{""})
	if got := s.IFS(); got != "" {
		t.Errorf("empty IFS = %q", got)
	}
}

func TestStoreRender(t *testing.T) {
	s := newStore()
	s.Set("plain", 0, []string{"value"})
	s.Set("quoted", 0, []string{"two words"})
	s.Set("arr", 0, []string{"a", "b c"})
	s.Set("exp", scopeExport, []string{"e"})
	s.SetEmpty("cleared", 0)

	var b bytes.Buffer
	s.Render(&b)
	want := "plain=value\n" +
		"quoted='two words'\n" +
		"arr=(a 'b c')\n" +
		"export exp=e\n" +
		"cleared=''\n"
	if b.String() != want {
		t.Errorf("Render:\n%s\nwant:\n%s", b.String(), want)
	}
}

func TestShellQuote(t *testing.T) {
	cases := []struct{ in, want string }{
		{"simple", "simple"},
		{"has space", "'has space'"},
		{"", "''"},
		{"it's", `'it'\''s'`},
		{"a/b.c-d_e", "a/b.c-d_e"},
		{"semi;colon", "'semi;colon'"},
	}
	for _, c := range cases {
		if got := shellQuote(c.in); got != c.want {
			t.Errorf("shellQuote(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
