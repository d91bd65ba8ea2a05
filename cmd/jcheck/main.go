// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jcheck validates JSON documents and reports where they are
// malformed. Optionally it prints the tokens of each document, or the value
// found at a path within it.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jindex"
	"github.com/creachadair/jindex/node"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go4.org/mem"
)

type config struct {
	opts     jindex.Options
	tokens   bool
	path     string
	logLevel string
	files    []string
}

func main() {
	var cfg config
	app := kingpin.New("jcheck", "Validate JSON documents.")
	app.Flag("strict", "Fully validate input as RFC 8259 JSON.").BoolVar(&cfg.opts.Strict)
	app.Flag("keys-encoded", "Object keys may contain escape sequences.").BoolVar(&cfg.opts.KeysEncoded)
	app.Flag("unquoted-keys", "Allow bare identifier object keys (ignored with --strict).").BoolVar(&cfg.opts.UnquotedKeys)
	app.Flag("comments", "Allow comments and trailing commas (ignored with --strict).").BoolVar(&cfg.opts.AllowComments)
	app.Flag("tokens", "Print the tokens of each document.").BoolVar(&cfg.tokens)
	app.Flag("path", "Print the value at this dot-separated path (numbers index arrays or name object keys).").StringVar(&cfg.path)
	app.Flag("log.level", "Only log messages with the given severity or above.").
		Default("info").EnumVar(&cfg.logLevel, "debug", "info", "warn", "error")
	app.Arg("file", "Files to check (- for stdin).").Default("-").StringsVar(&cfg.files)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := newLogger(cfg.logLevel)
	if failed := run(cfg, logger, os.Stdout); failed > 0 {
		level.Error(logger).Log("msg", "validation failed", "files", failed)
		os.Exit(1)
	}
}

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = level.NewFilter(logger, level.Allow(level.ParseDefault(lvl, level.InfoValue())))
	return log.With(logger, "ts", log.DefaultTimestampUTC)
}

// run checks each of the files named by cfg and returns the number that
// failed.
func run(cfg config, logger log.Logger, w io.Writer) int {
	p := jindex.NewParser(&cfg.opts)
	opts := p.Options()
	level.Debug(logger).Log("msg", "parser configured",
		"strict", opts.Strict, "keys_encoded", opts.KeysEncoded,
		"unquoted_keys", opts.UnquotedKeys, "comments", opts.AllowComments)

	var failed int
	for _, name := range cfg.files {
		if err := checkFile(p, cfg, name, log.With(logger, "file", name), w); err != nil {
			failed++
		}
	}
	return failed
}

func checkFile(p *jindex.Parser, cfg config, name string, logger log.Logger, w io.Writer) error {
	data, err := readInput(name)
	if err != nil {
		level.Error(logger).Log("msg", "read failed", "err", err)
		return err
	}
	root, err := node.Parse(p, data)
	if err != nil {
		var serr *jindex.SyntaxError
		if errors.As(err, &serr) {
			level.Error(logger).Log("msg", "invalid JSON", "offset", serr.Offset,
				"pos", serr.Location, "err", serr.Message, "near", serr.Context)
		} else {
			level.Error(logger).Log("msg", "invalid JSON", "err", err)
		}
		return err
	}
	level.Info(logger).Log("msg", "valid", "kind", root.Kind(), "tokens", len(root.Tokens()), "bytes", len(data))

	if cfg.tokens {
		printTokens(w, data, root.Tokens())
	}
	if cfg.path != "" {
		v, err := root.Path(parsePath(cfg.path)...)
		if err != nil {
			level.Error(logger).Log("msg", "path lookup failed", "path", cfg.path, "err", err)
			return err
		}
		fmt.Fprintf(w, "%s\t%v\n", name, v.Value())
	}
	return nil
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

// printTokens writes one line per token, indented by depth.
func printTokens(w io.Writer, data []byte, toks []jindex.Token) {
	var stk []int // end offsets of enclosing containers
	for _, tok := range toks {
		for len(stk) > 0 && tok.Start >= stk[len(stk)-1] {
			stk = stk[:len(stk)-1]
		}
		indent := strings.Repeat("  ", len(stk))
		switch tok.Kind {
		case jindex.ObjectKey:
			fmt.Fprintf(w, "%s%v %q\n", indent, tok, jindex.KeyText(mem.B(data[tok.Start:tok.End])))
		case jindex.String, jindex.Number, jindex.Boolean, jindex.Null:
			fmt.Fprintf(w, "%s%v %s\n", indent, tok, data[tok.Start:tok.End])
		default:
			fmt.Fprintf(w, "%s%v\n", indent, tok)
		}
		if tok.Kind.IsContainer() {
			stk = append(stk, tok.End)
		}
	}
}

// parsePath splits a dot-separated path into steps for node.Path. A numeric
// segment selects an object key if the value it applies to is an object, and
// an array offset otherwise.
func parsePath(s string) []any {
	var out []any
	for _, elt := range strings.Split(s, ".") {
		n, err := strconv.Atoi(elt)
		if err != nil {
			out = append(out, elt)
			continue
		}
		out = append(out, func(v node.Node) (node.Node, error) {
			if _, ok := v.(node.Object); ok {
				return node.Path(v, elt)
			}
			return node.Path(v, n)
		})
	}
	return out
}
