// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jindex

import (
	"errors"
	"fmt"

	"go4.org/mem"
)

// Errors reported by the parser. Each *SyntaxError wraps exactly one of
// these, so callers can classify a failure with errors.Is.
var (
	ErrEmptyDocument       = errors.New("empty document")
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrMalformedString     = errors.New("malformed string")
	ErrMalformedNumber     = errors.New("malformed number")
	ErrTrailingGarbage     = errors.New("trailing garbage")
	ErrEndOfInput          = errors.New("unexpected end of input")
)

// contextBytes is the number of bytes of input on either side of an error
// offset captured in SyntaxError.Context.
const contextBytes = 12

// SyntaxError is the concrete type of errors reported by the parser and by
// the CharSource scanning methods.
type SyntaxError struct {
	Offset   int     // byte offset of the offending character
	Location LineCol // line and column of Offset
	Message  string
	Context  string // input text surrounding Offset

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	msg := fmt.Sprintf("at %s (offset %d): %s", s.Location, s.Offset, s.Message)
	if s.Context != "" {
		msg += fmt.Sprintf(" near %q", s.Context)
	}
	return msg
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

func newSyntaxError(src mem.RO, pos int, kind error, msg string, args ...any) *SyntaxError {
	lo := max(pos-contextBytes, 0)
	hi := min(pos+contextBytes, src.Len())
	var ctx string
	if lo < hi {
		ctx = src.Slice(lo, hi).StringCopy()
	}
	text := kind.Error()
	if msg != "" {
		text += ": " + fmt.Sprintf(msg, args...)
	}
	return &SyntaxError{
		Offset:   pos,
		Location: lineColAt(src, pos),
		Message:  text,
		Context:  ctx,
		err:      kind,
	}
}
