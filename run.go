package main

import "io"

// options is the validated per-invocation configuration. Exactly one
// splitting mode (IFS, explicit delimiter, per-character, tokenize) ends up
// active per run.
type options struct {
	place     scope
	prompt    string
	seed      string
	delimiter string
	hasDelim  bool // distinguishes a given empty delimiter from none given
	tokenize  bool
	shell     bool
	array     bool
	silent    bool
	splitNull bool
	toStdout  bool
	nchars    int
	oneLine   bool
	vars      []string
}

const (
	exitOK          = 0
	exitCmdFailure  = 1
	exitInvalidArgs = 2
	exitReadTooMuch = 122
)

func exitFor(res acqStatus) int {
	switch res {
	case acqCmdFailure:
		return exitCmdFailure
	case acqTooMuch:
		return exitReadTooMuch
	}
	return exitOK
}

// runner drives the acquire/split/assign cycle. Normally one acquisition
// covers every variable; in one-record mode it loops, consuming one record
// per variable until all are filled or input runs out.
type runner struct {
	opts  options
	store *Store
	acq   *acquirer
	out   io.Writer
}

func (r *runner) run() int {
	vars := r.opts.vars
	varPtr := 0
	varsLeft := func() int { return len(vars) - varPtr }
	clearRemaining := func() {
		for varsLeft() != 0 {
			r.store.SetEmpty(vars[varPtr], r.opts.place)
			varPtr++
		}
	}

	for {
		text, res := r.acq.acquire(&r.opts)
		if res != acqOK {
			clearRemaining()
			return exitFor(res)
		}

		if r.opts.toStdout {
			io.WriteString(r.out, text)
			return exitOK
		}

		if r.opts.tokenize {
			tok := newTokenizer(text)
			if r.opts.array {
				var toks []string
				for {
					t, ok := tok.next()
					if !ok {
						break
					}
					toks = append(toks, unescapeToken(t.text))
				}
				r.store.Set(vars[varPtr], r.opts.place, toks)
				varPtr++
			} else {
				for varsLeft()-1 > 0 {
					t, ok := tok.next()
					if !ok {
						break
					}
					r.store.Set(vars[varPtr], r.opts.place, []string{unescapeToken(t.text)})
					varPtr++
				}
				// Whatever follows the last full token goes to the final
				// variable raw, untokenized.
				if t, ok := tok.next(); ok {
					r.store.Set(vars[varPtr], r.opts.place, []string{text[t.offset:]})
					varPtr++
				}
			}
			if !r.opts.oneLine || varsLeft() == 0 {
				break
			}
			continue
		}

		delim := r.opts.delimiter
		if !r.opts.hasDelim {
			delim = r.store.IFS()
		}

		if delim == "" {
			chars := splitChars(text, r.opts.array, varsLeft())
			if r.opts.array {
				r.store.Set(vars[varPtr], r.opts.place, chars)
				varPtr++
			} else {
				for _, c := range chars {
					r.store.Set(vars[varPtr], r.opts.place, []string{c})
					varPtr++
				}
			}
		} else if r.opts.array {
			var fields []string
			if r.opts.hasDelim {
				fields = splitAbout(text, delim, -1, false)
			} else {
				// IFS chars tokenize independently, for compatibility with
				// historical read semantics.
				fields = splitTok(text, delim, 0)
			}
			r.store.Set(vars[varPtr], r.opts.place, fields)
			varPtr++
		} else if r.opts.hasDelim {
			// At most len(vars)-1 splits, so the last variable takes the
			// remaining string.
			fields := splitAbout(text, delim, len(vars)-1, false)
			assertf(len(fields) <= varsLeft(), "split produced %d fields for %d vars", len(fields), varsLeft())
			for _, f := range fields {
				r.store.Set(vars[varPtr], r.opts.place, []string{f})
				varPtr++
			}
		} else {
			fields := splitTok(text, delim, varsLeft())
			i := 0
			for varsLeft() != 0 {
				val := ""
				if i < len(fields) {
					val = fields[i]
					i++
				}
				r.store.Set(vars[varPtr], r.opts.place, []string{val})
				varPtr++
			}
		}

		if !r.opts.oneLine || varsLeft() == 0 {
			break
		}
	}

	if !r.opts.array {
		// In case there were more vars than fields.
		clearRemaining()
	}
	return exitOK
}
