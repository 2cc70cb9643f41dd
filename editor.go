package main

import (
	"io"
	"log"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/manishrjain/keys"
)

const (
	ctrlC        = rune(0x03)
	ctrlD        = rune(0x04)
	ctrlH        = rune(0x08)
	ctrlU        = rune(0x15)
	ctrlW        = rune(0x17)
	keyEnter     = rune('\r')
	keyNewline   = rune('\n')
	keyEscape    = rune(0x1b)
	keyBackspace = rune(0x7f)
)

func singleCharMode() {
	// disable input buffering
	exec.Command("stty", "-F", "/dev/tty", "cbreak", "min", "1").Run()
	// do not display entered characters on the screen
	exec.Command("stty", "-F", "/dev/tty", "-echo").Run()
}

func saneMode() {
	exec.Command("stty", "-F", "/dev/tty", "sane").Run()
}

// editor is a minimal line editor for terminal input: prompt, basic editing
// keys, history recall, optional silent (masked) mode. Bytes are decoded
// incrementally so multi-byte characters survive byte-wise arrival.
type editor struct {
	fd      int
	out     io.Writer
	tty     bool // drive the terminal (stty, echo); off in tests
	hist    *history
	limit   int
	keymap  keys.Shortcuts
	promptC *color.Color
}

func newEditor(fd int, out io.Writer, tty bool, hist *history, limit int) *editor {
	e := &editor{
		fd:      fd,
		out:     out,
		tty:     tty,
		hist:    hist,
		limit:   limit,
		promptC: color.New(color.FgCyan, color.Bold),
	}
	e.keymap.BestEffortAssign(keyEnter, ".accept", "editor")
	e.keymap.BestEffortAssign(keyNewline, ".accept", "editor")
	e.keymap.BestEffortAssign(ctrlC, ".cancel", "editor")
	e.keymap.BestEffortAssign(ctrlD, ".eof", "editor")
	e.keymap.BestEffortAssign(keyBackspace, ".backspace", "editor")
	e.keymap.BestEffortAssign(ctrlH, ".backspace", "editor")
	e.keymap.BestEffortAssign(ctrlU, ".kill-line", "editor")
	e.keymap.BestEffortAssign(ctrlW, ".kill-word", "editor")
	return e
}

// readLine runs one editing session. It returns the accepted line, or false
// when the session was cancelled or hit end-of-input with nothing typed.
func (e *editor) readLine(opts *options) (string, bool) {
	if e.tty {
		singleCharMode()
		defer saneMode()
	}
	e.promptC.Fprint(e.out, opts.prompt)

	buf := []rune(opts.seed)
	e.echo(string(buf), opts.silent)

	var entries []string
	if e.hist != nil {
		entries = e.hist.Recent(historyRecallMax)
	}
	histIdx := -1
	var saved []rune

	accept := func() (string, bool) {
		io.WriteString(e.out, "\n")
		line := string(buf)
		if e.hist != nil && line != "" && !opts.silent {
			if err := e.hist.Append(line); err != nil {
				log.Printf("history: %v", err)
			}
		}
		return line, true
	}

	var dec decoder
	var scratch []rune
	var nbytes int
	esc := 0 // 0 plain, 1 after ESC, 2 after ESC-[

	for {
		var b [1]byte
		n, err := readBlocked(e.fd, b[:])
		if n == 0 || err != nil {
			if len(buf) == 0 {
				return "", false
			}
			return accept()
		}
		nbytes++
		if budgetExceeded(nbytes, e.limit) {
			return accept()
		}
		if dec.Feed(b[0], &scratch) != decodeComplete {
			continue
		}

		for _, r := range scratch {
			switch esc {
			case 1:
				if r == '[' {
					esc = 2
				} else {
					esc = 0
				}
				continue
			case 2:
				esc = 0
				switch r {
				case 'A': // up
					if histIdx+1 < len(entries) {
						if histIdx == -1 {
							saved = buf
						}
						histIdx++
						buf = []rune(entries[histIdx])
						e.redraw(opts, buf)
					}
				case 'B': // down
					if histIdx >= 0 {
						histIdx--
						if histIdx == -1 {
							buf = saved
						} else {
							buf = []rune(entries[histIdx])
						}
						e.redraw(opts, buf)
					}
				}
				continue
			}
			if r == keyEscape {
				esc = 1
				continue
			}

			if action, ok := e.keymap.MapsTo(r, "editor"); ok {
				switch action {
				case ".accept":
					return accept()
				case ".cancel":
					io.WriteString(e.out, "\n")
					return "", false
				case ".eof":
					if len(buf) == 0 {
						io.WriteString(e.out, "\n")
						return "", false
					}
				case ".backspace":
					if len(buf) > 0 {
						buf = buf[:len(buf)-1]
						io.WriteString(e.out, "\b \b")
					}
				case ".kill-line":
					buf = buf[:0]
					e.redraw(opts, buf)
				case ".kill-word":
					for len(buf) > 0 && buf[len(buf)-1] == ' ' {
						buf = buf[:len(buf)-1]
					}
					for len(buf) > 0 && buf[len(buf)-1] != ' ' {
						buf = buf[:len(buf)-1]
					}
					e.redraw(opts, buf)
				}
				continue
			}
			if r < 0x20 {
				// Unbound control characters are swallowed.
				continue
			}

			buf = append(buf, r)
			e.echo(string(r), opts.silent)
			if opts.nchars > 0 && len(buf) >= opts.nchars {
				return accept()
			}
		}
		scratch = scratch[:0]
	}
}

func (e *editor) echo(s string, silent bool) {
	if s == "" {
		return
	}
	if silent {
		s = strings.Repeat("*", len([]rune(s)))
	}
	io.WriteString(e.out, s)
}

func (e *editor) redraw(opts *options, buf []rune) {
	io.WriteString(e.out, "\r\x1b[K")
	e.promptC.Fprint(e.out, opts.prompt)
	e.echo(string(buf), opts.silent)
}
