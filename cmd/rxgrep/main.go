// Command rxgrep prints lines that match a pattern.
//
//	rxgrep [flags] PATTERN [FILE...]
//
// With no files it reads standard input. The exit status is 0 when some
// line matched, 1 when none did and 2 on error.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/coregx/rxvm"
)

const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	config   rxvm.Config
	describe bool
	filename bool
	timeout  time.Duration
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	fs := flag.NewFlagSet("rxgrep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: rxgrep [flags] PATTERN [FILE...]")
		fs.PrintDefaults()
	}

	var (
		opts      options
		strategy  string
		whole     bool
		anchored  bool
		trace     bool
		stepLimit int
	)
	fs.StringVar(&strategy, "strategy", "auto", "evaluator: auto, backtrack (depth), pikevm (parallel) or literal")
	fs.BoolVar(&whole, "x", false, "match whole lines only")
	fs.BoolVar(&anchored, "anchored", false, "match at the start of the line only")
	fs.BoolVar(&opts.describe, "describe", false, "print the syntax tree and program, then exit")
	fs.BoolVar(&trace, "trace", false, "enable trace logging")
	fs.IntVar(&stepLimit, "step-limit", 0, "instruction budget per line (0 = unlimited)")
	fs.BoolVar(&opts.filename, "H", false, "prefix each line with its file name")
	fs.DurationVar(&opts.timeout, "timeout", 0, "specify a time limit")
	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}

	s, err := rxvm.ParseStrategy(strategy)
	if err != nil {
		return opts, nil, err
	}
	opts.config = rxvm.DefaultConfig()
	opts.config.Strategy = s
	opts.config.Anchored = anchored || whole
	opts.config.FullMatch = whole
	opts.config.StepLimit = stepLimit
	if trace {
		opts.config.Logf = log.Printf
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return opts, nil, errors.New("missing pattern")
	}
	return opts, fs.Args(), nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, rest, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitMatch
		}
		fmt.Fprintf(stderr, "rxgrep: %v\n", err)
		return exitError
	}
	pattern, files := rest[0], rest[1:]

	if opts.describe {
		if err := rxvm.Describe(stdout, pattern); err != nil {
			fmt.Fprintf(stderr, "rxgrep: %v\n", err)
			return exitError
		}
		return exitMatch
	}

	re, err := rxvm.CompileWithConfig(pattern, opts.config)
	if err != nil {
		fmt.Fprintf(stderr, "rxgrep: %v\n", err)
		return exitError
	}

	if opts.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	if len(files) == 0 {
		found, err := grep(ctx, re, "(standard input)", stdin, out, opts.filename)
		return status(found, err, stderr)
	}

	found := false
	for _, name := range files {
		ok, err := grepFile(ctx, re, name, out, opts.filename || len(files) > 1)
		if err != nil {
			out.Flush()
			return status(false, err, stderr)
		}
		found = found || ok
	}
	return status(found, nil, stderr)
}

func status(found bool, err error, stderr io.Writer) int {
	switch {
	case err != nil:
		fmt.Fprintf(stderr, "rxgrep: %v\n", err)
		return exitError
	case found:
		return exitMatch
	default:
		return exitNoMatch
	}
}

func grepFile(ctx context.Context, re *rxvm.Regex, name string, w io.Writer, prefix bool) (bool, error) {
	f, err := os.Open(name)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return grep(ctx, re, name, f, w, prefix)
}

// grep writes every matching line of r to w and reports whether any line
// matched.
func grep(ctx context.Context, re *rxvm.Regex, name string, r io.Reader, w io.Writer, prefix bool) (bool, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}

	matched, err := re.MatchLines(ctx, lines)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}

	found := false
	for i, ok := range matched {
		if !ok {
			continue
		}
		found = true
		if prefix {
			fmt.Fprintf(w, "%s:%s\n", name, lines[i])
		} else {
			fmt.Fprintln(w, lines[i])
		}
	}
	return found, nil
}
