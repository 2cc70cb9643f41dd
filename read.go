package main

import (
	"bytes"
	"log"

	isatty "github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

type acqStatus int

const (
	acqOK acqStatus = iota
	acqCmdFailure
	acqTooMuch
)

// Bash uses 128 bytes for its chunk size, and has presumably tested it more
// extensively than we ever will.
const readChunkSize = 128

// Abort a runaway record after 100 MiB of raw input unless configured
// otherwise.
const defaultReadLimit = 100 << 20

// budgetExceeded reports whether nbytes of raw input is over the configured
// ceiling. A limit of 0 disables the check.
func budgetExceeded(nbytes, limit int) bool {
	return limit > 0 && nbytes > limit
}

// readBlocked reads from fd, retrying transparently when the call is
// interrupted by a signal. No other error is retried.
func readBlocked(fd int, p []byte) (int, error) {
	for {
		n, err := unix.Read(fd, p)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}

func seekable(fd int) bool {
	_, err := unix.Seek(fd, 0, unix.SEEK_CUR)
	return err == nil
}

// acquirer produces one decoded record per acquire call, choosing between
// the interactive, chunked, and byte-at-a-time strategies based on the
// descriptor and the requested options.
type acquirer struct {
	fd     int
	ownsFd bool // nobody else reads this descriptor, so we may overshoot it
	isTTY  bool
	limit  int
	editor *editor // nil unless the descriptor is a terminal
}

func newAcquirer(fd int, ownsFd bool, limit int, ed *editor) *acquirer {
	return &acquirer{
		fd:     fd,
		ownsFd: ownsFd,
		isTTY:  isatty.IsTerminal(uintptr(fd)),
		limit:  limit,
		editor: ed,
	}
}

func (a *acquirer) acquire(opts *options) (string, acqStatus) {
	if a.isTTY && !opts.splitNull && a.editor != nil {
		return a.readInteractive(opts)
	}
	// Chunked reads are only safe when we can put surplus bytes back (the
	// descriptor is seekable) or nobody else will ever see them. One-record
	// mode stays byte-at-a-time: a chunk could swallow several records.
	if opts.nchars == 0 && !a.isTTY && !opts.oneLine && (a.ownsFd || seekable(a.fd)) {
		return a.readInChunks(opts.splitNull, !a.ownsFd)
	}
	return a.readOneCharAtATime(opts.nchars, opts.splitNull)
}

// readInteractive delegates to the line editor. The editor enforces its own
// input budget; cancellation comes back as "no line".
func (a *acquirer) readInteractive(opts *options) (string, acqStatus) {
	line, ok := a.editor.readLine(opts)
	if !ok {
		return "", acqCmdFailure
	}
	if opts.nchars > 0 {
		runes := []rune(line)
		if opts.nchars < len(runes) {
			// An editing command may inject more text than was asked for.
			// The excess was not typed, so it is discarded, not unread.
			line = string(runes[:opts.nchars])
		}
	}
	return line, acqOK
}

// readInChunks reads fixed-size chunks until the record terminator shows up.
// With doSeek set, the descriptor is repositioned just past the terminator
// so later readers see the rest; otherwise surplus bytes are simply kept
// unread in our last chunk and dropped.
func (a *acquirer) readInChunks(splitNull, doSeek bool) (string, acqStatus) {
	res := acqOK
	var raw []byte
	eof := false

	delim := byte('\n')
	if splitNull {
		delim = 0
	}

	for {
		var inbuf [readChunkSize]byte
		n, err := readBlocked(a.fd, inbuf[:])
		if n == 0 || err != nil {
			eof = true
			break
		}
		consumed := bytes.IndexByte(inbuf[:n], delim)
		if consumed >= 0 {
			raw = append(raw, inbuf[:consumed]...)
			if doSeek {
				// The terminator itself counts as consumed but is not kept.
				if _, err := unix.Seek(a.fd, int64(consumed-n+1), unix.SEEK_CUR); err != nil {
					log.Printf("%+v", errors.Wrap(err, "lseek"))
					return "", acqCmdFailure
				}
			}
			break
		}
		raw = append(raw, inbuf[:n]...)
		if budgetExceeded(len(raw), a.limit) {
			// Everything gathered so far is still returned.
			res = acqTooMuch
			break
		}
	}

	text := decodeString(raw)
	if text == "" && eof {
		res = acqCmdFailure
	}
	return text, res
}

// readOneCharAtATime reads single bytes and decodes them incrementally. Used
// when the descriptor cannot be rewound and overshooting would steal bytes
// from whoever reads it next.
func (a *acquirer) readOneCharAtATime(nchars int, splitNull bool) (string, acqStatus) {
	res := acqOK
	var out []rune
	var nbytes int

	delim := '\n'
	if splitNull {
		delim = 0
	}

	for {
		var dec decoder
		charsRead := len(out)
		eof := false

		for {
			var b [1]byte
			n, err := readBlocked(a.fd, b[:])
			if n == 0 || err != nil {
				eof = true
				break
			}
			nbytes++
			if dec.Feed(b[0], &out) == decodeComplete {
				break
			}
		}

		if budgetExceeded(nbytes, a.limit) {
			// Historical behavior: the character that pushed us over the
			// limit is not kept.
			out = out[:charsRead]
			res = acqTooMuch
			break
		}
		if eof {
			if len(out) == 0 {
				res = acqCmdFailure
			}
			break
		}
		if out[len(out)-1] == delim {
			out = out[:len(out)-1]
			break
		}
		if nchars > 0 && nchars <= len(out) {
			break
		}
	}

	return string(out), res
}
