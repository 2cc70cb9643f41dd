package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"regexp"

	isatty "github.com/mattn/go-isatty"
	yaml "gopkg.in/yaml.v2"
)

var (
	array     = flag.Bool("a", false, "Bind all fields as one list to a single variable.")
	delimiter = flag.String("d", "", "Split fields on this string instead of IFS. An empty value splits per character.")
	nchars    = flag.Int("n", 0, "Stop reading after N characters (0 = unlimited).")
	splitNull = flag.Bool("z", false, "Records end at NUL instead of newline. Disables interactive editing.")
	oneLine   = flag.Bool("L", false, "Read one record per variable.")
	tokenize  = flag.Bool("t", false, "Split the record using shell word rules.")
	silent    = flag.Bool("s", false, "Mask typed characters in interactive mode.")
	shellEd   = flag.Bool("S", false, "Shell-syntax aware interactive editing.")
	prompt    = flag.String("p", "read> ", "Prompt shown in interactive mode.")
	seed      = flag.String("c", "", "Seed the interactive buffer with this text.")
	global    = flag.Bool("g", false, "Bind variables in global scope.")
	local     = flag.Bool("l", false, "Bind variables in local scope.")
	export    = flag.Bool("x", false, "Mark variables for export.")
	unexport  = flag.Bool("u", false, "Mark variables as not exported.")
	ownFd     = flag.Bool("own", false, "Assume exclusive ownership of stdin; skip the seek-back after a chunked read.")
	readLimit = flag.Int("limit", defaultReadLimit, "Abort a record after this many raw bytes (0 = unlimited).")
	noHistory = flag.Bool("no-history", false, "Do not record interactive lines in the history db.")
	configDir = flag.String("conf", os.Getenv("HOME")+"/.into-vars",
		"Config directory to store into-vars configs in.")

	rvarname = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

type configs struct {
	// Flag name to value, applied unless the flag was given explicitly.
	Defaults map[string]string `yaml:"defaults"`
}

func applyConfig(fpath string) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return
	}
	var c configs
	checkf(yaml.Unmarshal(data, &c), "Unable to unmarshal yaml config at %v", fpath)

	given := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { given[f.Name] = true })
	for k, v := range c.Defaults {
		if given[k] {
			continue
		}
		if err := flag.Set(k, v); err != nil {
			log.Printf("Ignoring config default %v=%v: %v", k, v, err)
		}
	}
}

func flagWasSet(name string) bool {
	var set bool
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// buildOptions validates the flag combination before any byte is read.
func buildOptions(vars []string) (options, bool) {
	opts := options{
		prompt:    *prompt,
		seed:      *seed,
		delimiter: *delimiter,
		hasDelim:  flagWasSet("d"),
		tokenize:  *tokenize,
		shell:     *shellEd,
		array:     *array,
		silent:    *silent,
		splitNull: *splitNull,
		nchars:    *nchars,
		oneLine:   *oneLine,
		vars:      vars,
	}
	if *global {
		opts.place |= scopeGlobal
	}
	if *local {
		opts.place |= scopeLocal
	}
	if *export {
		opts.place |= scopeExport
	}
	if *unexport {
		opts.place |= scopeUnexport
	}
	if len(vars) == 0 && !opts.array {
		opts.toStdout = true
	}

	switch {
	case *nchars < 0:
		oerr("-n must not be negative")
	case opts.hasDelim && opts.oneLine:
		oerr("-d and -L cannot be used together")
	case opts.oneLine && opts.splitNull:
		oerr("-L and -z cannot be used together")
	case opts.tokenize && opts.hasDelim:
		oerr("-t and -d cannot be used together")
	case opts.tokenize && opts.oneLine:
		oerr("-t and -L cannot be used together")
	case *export && *unexport:
		oerr("-x and -u cannot be used together")
	case *global && *local:
		oerr("-g and -l cannot be used together")
	case opts.array && len(vars) != 1:
		oerr(fmt.Sprintf("-a expects exactly 1 variable, got %v", len(vars)))
	default:
		for _, v := range vars {
			if !rvarname.MatchString(v) {
				oerr(fmt.Sprintf("Invalid variable name: %v", v))
				return opts, false
			}
		}
		if opts.oneLine {
			// One-record mode is newline-delimited splitting repeated once
			// per variable.
			opts.delimiter = "\n"
			opts.hasDelim = true
			opts.splitNull = false
			opts.shell = false
		}
		return opts, true
	}
	return opts, false
}

func runMain(vars []string) int {
	opts, ok := buildOptions(vars)
	if !ok {
		return exitInvalidArgs
	}

	fd := int(os.Stdin.Fd())
	var ed *editor
	if isatty.IsTerminal(os.Stdin.Fd()) && !opts.splitNull {
		var hist *history
		if !*noHistory {
			checkf(os.MkdirAll(*configDir, 0o755), "Unable to create directory: %v", *configDir)
			h, err := openHistory(path.Join(*configDir, "history.db"))
			if err != nil {
				log.Printf("%v", err)
			} else {
				hist = h
				defer h.Close()
			}
		}
		// Prompt and echo go to stderr so `eval "$(into-vars ...)"` captures
		// only the bindings.
		ed = newEditor(fd, os.Stderr, true, hist, *readLimit)
	}

	store := newStore()
	r := &runner{
		opts:  opts,
		store: store,
		acq:   newAcquirer(fd, *ownFd, *readLimit, ed),
		out:   os.Stdout,
	}
	code := r.run()
	if !opts.toStdout {
		store.Render(os.Stdout)
	}
	return code
}

func main() {
	flag.Parse()
	applyConfig(path.Join(*configDir, "config.yaml"))
	os.Exit(runMain(flag.Args()))
}
