// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program jvcheck reports whether each of its input files contains a single
// valid JSON document. Files are checked concurrently. The exit status is 0
// if all files are valid, 1 if any file is invalid or unreadable, and 2 for
// usage errors.
//
// Usage:
//
//	jvcheck [flags] <file>...
//
// A file named "-" is read from standard input.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jvalue"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
)

type config struct {
	workers   int
	maxDepth  int
	logLevel  string
	logFormat string
	quiet     bool
	files     []string
}

func newApp(cfg *config) *kingpin.Application {
	app := kingpin.New("jvcheck", "Check that files contain valid JSON documents.")
	app.Flag("workers", "Number of files to check concurrently").
		Default(strconv.Itoa(runtime.NumCPU())).IntVar(&cfg.workers)
	app.Flag("max-depth", "Maximum nesting depth of arrays and objects (0 means unlimited)").
		Default("0").IntVar(&cfg.maxDepth)
	app.Flag("log.level", "Only log messages with the given severity or above").
		Default("info").EnumVar(&cfg.logLevel, "debug", "info", "warn", "error")
	app.Flag("log.format", "Output format of log messages").
		Default("logfmt").EnumVar(&cfg.logFormat, "logfmt", "json")
	app.Flag("quiet", "Do not log valid files").Short('q').BoolVar(&cfg.quiet)
	app.Arg("files", `Files to check ("-" for stdin)`).Required().StringsVar(&cfg.files)
	return app
}

func newLogger(w io.Writer, format, lvl string) (log.Logger, error) {
	var logger log.Logger
	switch format {
	case "json":
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	case "logfmt":
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	default:
		return nil, errors.Errorf("unknown log format %q", format)
	}
	allow, err := level.Parse(lvl)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	logger = level.NewFilter(logger, level.Allow(allow))
	return log.With(logger, "ts", log.DefaultTimestampUTC), nil
}

func main() {
	var cfg config
	app := newApp(&cfg)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := newLogger(os.Stderr, cfg.logFormat, cfg.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jvcheck: %v\n", err)
		os.Exit(2)
	}
	failed, err := run(&cfg, os.Stdin, logger)
	if err != nil {
		level.Error(logger).Log("msg", "check failed", "err", err)
		os.Exit(2)
	} else if failed > 0 {
		os.Exit(1)
	}
}

// A result records the outcome of checking one file.
type result struct {
	name string
	size int
	typ  jvalue.Type
	err  error
}

// run checks the files named by cfg and logs the result for each, in the
// order given. It returns the number of files that failed.
func run(cfg *config, stdin io.Reader, logger log.Logger) (int, error) {
	pool, err := ants.NewPool(cfg.workers)
	if err != nil {
		return 0, errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	opts := &jvalue.Options{MaxDepth: cfg.maxDepth}
	results := make([]result, len(cfg.files))
	var wg sync.WaitGroup
	for i, name := range cfg.files {
		if name == "" {
			name = "-" // kingpin reports a bare "-" argument as empty
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i] = check(name, stdin, opts)
		}); err != nil {
			wg.Done()
			results[i] = result{name: name, err: errors.Wrapf(err, "submit %s", name)}
		}
	}
	wg.Wait()

	var failed int
	for _, r := range results {
		if r.err == nil {
			if !cfg.quiet {
				level.Info(logger).Log("msg", "valid", "file", r.name, "type", r.typ, "size", r.size)
			}
			continue
		}
		failed++
		var serr *jvalue.SyntaxError
		if errors.As(r.err, &serr) {
			level.Error(logger).Log("msg", "invalid", "file", r.name, "kind", serr.Kind,
				"line", serr.Location.Line, "col", serr.Location.Column, "offset", serr.Offset)
		} else {
			level.Error(logger).Log("msg", "unreadable", "file", r.name, "err", r.err)
		}
	}
	level.Debug(logger).Log("msg", "done", "files", len(results), "failed", failed)
	return failed, nil
}

// check reads and parses a single file.
func check(name string, stdin io.Reader, opts *jvalue.Options) result {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return result{name: name, err: errors.Wrapf(err, "read %s", name)}
	}
	v, err := opts.Parse(data)
	if err != nil {
		return result{name: name, size: len(data), err: err}
	}
	defer v.Free()
	return result{name: name, size: len(data), typ: v.Type()}
}
