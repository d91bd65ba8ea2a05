// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jindex

import (
	"github.com/shopspring/decimal"
	"go4.org/mem"
)

// EOF is the value returned by Peek and PeekAt past the end of the input.
const EOF = -1

// A CharSource is a cursor over an immutable in-memory buffer.
//
// A CharSource is not safe for concurrent use: its cursor is mutated by
// every scanning method. Construct a fresh source for each scan. The
// offset-addressed decoding methods (String, Int64, and so on) do not use
// or modify the cursor.
type CharSource struct {
	src mem.RO
	pos int
}

// NewSource constructs a CharSource over data. The caller must not modify
// data while the source or any tokens derived from it are in use.
func NewSource(data []byte) *CharSource { return &CharSource{src: mem.B(data)} }

// NewStringSource constructs a CharSource over s.
func NewStringSource(s string) *CharSource { return &CharSource{src: mem.S(s)} }

// Data returns a read-only view of the complete input buffer.
func (c *CharSource) Data() mem.RO { return c.src }

// Pos reports the current cursor offset.
func (c *CharSource) Pos() int { return c.pos }

// Len reports the length of the input in bytes.
func (c *CharSource) Len() int { return c.src.Len() }

// Next returns the byte at the cursor and advances past it.  At the end of
// the input it reports an error wrapping ErrEndOfInput.
func (c *CharSource) Next() (byte, error) {
	if c.pos >= c.src.Len() {
		return 0, c.errorf(c.pos, ErrEndOfInput, "")
	}
	ch := c.src.At(c.pos)
	c.pos++
	return ch, nil
}

// Peek returns the byte at the cursor without consuming it, or EOF.
func (c *CharSource) Peek() int { return c.PeekAt(0) }

// PeekAt returns the byte at offset off relative to the cursor without
// consuming it, or EOF if that position is outside the input.
func (c *CharSource) PeekAt(off int) int {
	if p := c.pos + off; p >= 0 && p < c.src.Len() {
		return int(c.src.At(p))
	}
	return EOF
}

// SkipWhitespace advances the cursor past any JSON whitespace.
func (c *CharSource) SkipWhitespace() {
	for c.pos < c.src.Len() && isSpace(c.src.At(c.pos)) {
		c.pos++
	}
}

// Slice returns a view of the input in the range [start, end). It panics if
// the range is out of bounds, as slicing does.
func (c *CharSource) Slice(start, end int) mem.RO { return c.src.Slice(start, end) }

// String returns a copy of the input in the range [start, end) as a string.
func (c *CharSource) String(start, end int) string { return c.src.Slice(start, end).StringCopy() }

// Int32 decodes the integer literal in the range [start, end).
func (c *CharSource) Int32(start, end int) (int32, error) { return ParseInt32(c.Slice(start, end)) }

// Int64 decodes the integer literal in the range [start, end).
func (c *CharSource) Int64(start, end int) (int64, error) { return ParseInt64(c.Slice(start, end)) }

// Float32 decodes the number literal in the range [start, end).
func (c *CharSource) Float32(start, end int) (float32, error) {
	return ParseFloat32(c.Slice(start, end))
}

// Float64 decodes the number literal in the range [start, end).
func (c *CharSource) Float64(start, end int) (float64, error) {
	return ParseFloat64(c.Slice(start, end))
}

// Decimal decodes the number literal in the range [start, end) as an
// arbitrary-precision decimal.
func (c *CharSource) Decimal(start, end int) (decimal.Decimal, error) {
	return ParseDecimal(c.Slice(start, end))
}

// FindEndOfNumber scans the remainder of a number whose first character (a
// sign or digit) was the last one consumed by Next, and returns the offset
// just past the end of the number. It reports whether the number has a
// fraction or an exponent.
//
// The number must satisfy the JSON grammar:
//
//	number := '-'? int ('.' digit+)? ([eE] [+-]? digit+)?
//	int    := '0' | [1-9] digit*
//
// Where the grammar requires a particular character and does not find one,
// FindEndOfNumber reports an error wrapping ErrMalformedNumber at the offset
// of the offending character, or at the end of the input if there is none.
// A character that cannot extend the number at a point where the number may
// end is not consumed; it is up to the caller whether it is valid there.
//
// On success, the cursor is left at the returned offset.
func (c *CharSource) FindEndOfNumber() (end int, float bool, err error) {
	pos := c.pos - 1
	if pos < 0 {
		return 0, false, c.errorf(0, ErrMalformedNumber, "no number start")
	}
	ch := c.at(pos)
	if ch == '-' {
		pos++
		ch = c.at(pos)
	}
	switch {
	case ch == '0':
		pos++
		if isDigit(c.at(pos)) {
			return 0, false, c.errorf(pos, ErrMalformedNumber, "extra leading zeroes")
		}
	case '1' <= ch && ch <= '9':
		pos = c.digits(pos + 1)
	default:
		return 0, false, c.errorf(pos, ErrMalformedNumber, "want digit, got %s", describe(ch))
	}

	if c.at(pos) == '.' {
		float = true
		next := c.digits(pos + 1)
		if next == pos+1 {
			return 0, false, c.errorf(next, ErrMalformedNumber, "no digits after decimal point")
		}
		pos = next
	}
	if ch := c.at(pos); ch == 'e' || ch == 'E' {
		float = true
		pos++
		if ch := c.at(pos); ch == '+' || ch == '-' {
			pos++
		}
		next := c.digits(pos)
		if next == pos {
			return 0, false, c.errorf(next, ErrMalformedNumber, "missing exponent digits")
		}
		pos = next
	}
	c.pos = pos
	return pos, float, nil
}

// at returns the byte at offset pos, or EOF.
func (c *CharSource) at(pos int) int {
	if pos < c.src.Len() {
		return int(c.src.At(pos))
	}
	return EOF
}

// digits returns the offset of the first non-digit at or after pos.
func (c *CharSource) digits(pos int) int {
	for pos < c.src.Len() && isDigit(int(c.src.At(pos))) {
		pos++
	}
	return pos
}

func (c *CharSource) errorf(pos int, kind error, msg string, args ...any) *SyntaxError {
	return newSyntaxError(c.src, pos, kind, msg, args...)
}

func describe(ch int) string {
	if ch == EOF {
		return "end of input"
	}
	return fmtByte(byte(ch))
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch int) bool { return '0' <= ch && ch <= '9' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
