package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type scope uint8

const (
	scopeGlobal scope = 1 << iota
	scopeLocal
	scopeExport
	scopeUnexport
)

// Default field separators when the environment does not provide IFS.
const defaultIFS = " \t\n"

// Store is the variable sink that receives field assignments. Variables keep
// the order of first assignment so the rendered output is deterministic, and
// every assignment fires the change callback.
type Store struct {
	vals     map[string][]string
	exported map[string]bool
	order    []string
	onChange func(name string)
}

func newStore() *Store {
	s := &Store{
		vals:     make(map[string][]string),
		exported: make(map[string]bool),
	}
	return s
}

// Set binds vals to name under the given scope and fires the change
// notification.
func (s *Store) Set(name string, place scope, vals []string) {
	if _, ok := s.vals[name]; !ok {
		s.order = append(s.order, name)
	}
	s.vals[name] = vals
	if place&scopeExport != 0 {
		s.exported[name] = true
	}
	if place&scopeUnexport != 0 {
		s.exported[name] = false
	}
	if s.onChange != nil {
		s.onChange(name)
	}
}

// SetEmpty explicitly clears name so callers observe a defined post-state
// rather than a leftover value.
func (s *Store) SetEmpty(name string, place scope) {
	s.Set(name, place, []string{})
}

func (s *Store) Get(name string) ([]string, bool) {
	v, ok := s.vals[name]
	return v, ok
}

// IFS returns the active separator set: an explicit store value wins, then
// the process environment, then the historical space/tab/newline default. An
// empty value is deliberately respected: it selects per-character splitting.
func (s *Store) IFS() string {
	if v, ok := s.vals["IFS"]; ok {
		return strings.Join(v, "")
	}
	if v, ok := os.LookupEnv("IFS"); ok {
		return v
	}
	return defaultIFS
}

// Render writes all bindings in shell-evalable form, in assignment order.
// Multi-valued bindings render as arrays.
func (s *Store) Render(w io.Writer) {
	for _, name := range s.order {
		vals := s.vals[name]
		var rhs string
		switch len(vals) {
		case 0:
			rhs = "''"
		case 1:
			rhs = shellQuote(vals[0])
		default:
			quoted := make([]string, len(vals))
			for i, v := range vals {
				quoted[i] = shellQuote(v)
			}
			rhs = "(" + strings.Join(quoted, " ") + ")"
		}
		if s.exported[name] {
			fmt.Fprintf(w, "export %s=%s\n", name, rhs)
		} else {
			fmt.Fprintf(w, "%s=%s\n", name, rhs)
		}
	}
}

// shellQuote single-quotes s unless it is obviously safe bare.
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r == '_' || r == '-' || r == '.' || r == '/' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
