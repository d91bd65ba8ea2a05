// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jindex implements an index-overlay JSON parser.
//
// Rather than building a tree of values, a Parser scans its input once and
// records a flat sequence of tokens. Each token gives the kind of a JSON
// element and the offsets of its text in the input:
//
//	p := jindex.NewParser(&jindex.Options{Strict: true})
//	toks, err := p.Scan(input)
//	if err != nil {
//	   log.Fatalf("Scan failed: %v", err)
//	}
//
// # Tokens
//
// The tokens of a document are in pre-order. The first token is always a Root
// token spanning the document's value, and the tokens for each object or
// array follow it immediately after the token for the container itself. Each
// object member is represented by an ObjectEntry token spanning the member,
// followed by an ObjectKey token for its key and then the tokens of its value:
//
//	{"a": [1, true]}
//
//	Root        [0:16]
//	Object      [0:16]
//	ObjectEntry [1:15]  "a": [1, true]
//	ObjectKey   [1:4]   "a"
//	Array       [6:15]
//	Number      [7:8]
//	Boolean     [10:14]
//
// The contents of a token are the tokens following it that start before it
// ends, so the structure is recovered without any pointers. Package node
// provides typed views over a scanned document that decode values only when
// they are requested.
//
// # Fast and strict parsing
//
// By default a Parser checks the structure of its input, the spelling of
// constants, and the grammar of numbers, but does not validate the contents
// of strings. With Options.Strict set, the parser fully validates its input
// as RFC 8259 JSON, including escape sequences, control characters, and
// UTF-8 encoding. In either mode, the input must contain exactly one value.
//
// # Errors
//
// The first error encountered stops the scan. Errors have concrete type
// *SyntaxError, giving the offset of the offending input, and wrap one of the
// Err* values in this package:
//
//	if errors.Is(err, jindex.ErrTrailingGarbage) {
//	   log.Print("Extra data after the value")
//	}
package jindex
