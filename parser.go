// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jindex

import (
	"bytes"
	"unicode/utf8"

	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// Options control the behaviour of a Parser. A nil *Options is ready for use
// and selects the fast parser with no relaxations.
type Options struct {
	// Strict enables full validation of the JSON grammar (RFC 8259). When it
	// is false, the parser skips some checks that cost time on the hot path:
	// escape sequences and the contents of strings are not validated.
	// Structure, literals, and numbers are checked in either mode.
	Strict bool

	// KeysEncoded reports that object keys may contain escape sequences. When
	// it is false, the fast parser ends a key at the first quotation mark, so
	// a well-formed key such as "a\"b" is rejected. The strict parser always
	// handles escapes in keys.
	//
	// A fast parser with KeysEncoded set accepts every document the strict
	// parser accepts, and produces the same tokens for it. Without
	// KeysEncoded this holds only for documents whose keys have no escapes.
	KeysEncoded bool

	// UnquotedKeys allows object keys that are bare identifiers, for example
	// {name: "value"}. Ignored by the strict parser.
	UnquotedKeys bool

	// AllowComments allows line (//) and block (/* */) comments and trailing
	// commas, by standardizing the input before it is scanned. Byte offsets
	// are preserved. Ignored by the strict parser.
	AllowComments bool
}

// A Parser scans JSON documents into index-overlay tokens.
//
// A Parser is not modified by scanning, and is safe for concurrent use by
// multiple goroutines.
type Parser struct {
	strict       bool
	keysEncoded  bool
	unquotedKeys bool
	comments     bool
}

// NewParser constructs a Parser with the given options. If opts == nil,
// default options are used.
func NewParser(opts *Options) *Parser {
	if opts == nil {
		return &Parser{}
	}
	p := &Parser{strict: opts.Strict, keysEncoded: opts.KeysEncoded}
	if !p.strict {
		p.unquotedKeys = opts.UnquotedKeys
		p.comments = opts.AllowComments
	}
	return p
}

// Options returns the effective options of p. Relaxations that do not apply
// to a strict parser are reported as false.
func (p *Parser) Options() Options {
	return Options{
		Strict:        p.strict,
		KeysEncoded:   p.keysEncoded,
		UnquotedKeys:  p.unquotedKeys,
		AllowComments: p.comments,
	}
}

// Scan scans data, which must contain exactly one JSON value, and returns its
// tokens. The first token is always a Root token spanning the value without
// surrounding whitespace. In case of error, the concrete type of the error is
// *SyntaxError.
//
// The offsets in the tokens refer to data, which the caller must not modify
// while the tokens are in use.
func (p *Parser) Scan(data []byte) ([]Token, error) {
	if p.comments {
		// If the input is not valid JWCC, scan it as given and let the scanner
		// report the error at its precise location.
		if std, err := hujson.Standardize(bytes.Clone(data)); err == nil {
			data = std
		}
	}
	return p.ScanSource(NewSource(data))
}

// ScanString scans s as Scan does.
func (p *Parser) ScanString(s string) ([]Token, error) {
	if p.comments {
		return p.Scan([]byte(s))
	}
	return p.ScanSource(NewStringSource(s))
}

// ScanSource scans a JSON value from src starting at its cursor.  The scan
// takes exclusive ownership of src until it returns; src must not be shared
// with another scan.
//
// ScanSource does not apply the AllowComments option.
func (p *Parser) ScanSource(src *CharSource) (_ []Token, err error) {
	s := &scanner{Parser: p, src: src, data: src.src}
	defer s.recoverParseError(&err)

	s.toks = make([]Token, 1, 1+src.Len()/8)
	src.SkipWhitespace()
	if src.Peek() == EOF {
		s.fail(src.pos, ErrEmptyDocument, "")
	}
	start := src.pos
	s.parseValue()
	s.toks[0] = Token{Kind: Root, Start: start, End: src.pos}

	src.SkipWhitespace()
	if ch := src.Peek(); ch != EOF {
		s.fail(src.pos, ErrTrailingGarbage, "%s after value", describe(ch))
	}
	return s.toks, nil
}

// A scanner holds the state of a single call to ScanSource.
type scanner struct {
	*Parser
	src  *CharSource
	data mem.RO
	toks []Token
}

func (s *scanner) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		err, ok := serr.(*SyntaxError)
		if !ok {
			panic(serr)
		}
		*errp = err
	}
}

func (s *scanner) fail(pos int, kind error, msg string, args ...any) {
	panic(s.src.errorf(pos, kind, msg, args...))
}

func (s *scanner) check(err error) {
	if err != nil {
		panic(err)
	}
}

// push adds a token with the given kind and start offset and returns its
// index. The end offset is set by the caller once it is known.
func (s *scanner) push(kind Kind, start int) int {
	s.toks = append(s.toks, Token{Kind: kind, Start: start})
	return len(s.toks) - 1
}

func (s *scanner) emit(kind Kind, start, end int) {
	s.toks = append(s.toks, Token{Kind: kind, Start: start, End: end})
}

// A frame records a container that is open during a scan.
type frame struct {
	tok int // index of the Object or Array token
	ent int // index of the current ObjectEntry token (objects only)
}

// parseValue consumes a single value of any type, including the complete
// contents of a container. Open containers are tracked on an explicit stack,
// so the depth of nesting is limited only by memory.
// Precondition: the cursor is at the first byte of the value.
func (s *scanner) parseValue() {
	src := s.src
	var stk []frame
scan:
	for {
		// The cursor is at the start of a value.
		switch ch := src.Peek(); ch {
		case '{', '[':
			if f, ok := s.openContainer(ch); ok {
				stk = append(stk, f)
				continue scan
			}
		case '"':
			s.parseString(String, true)
		case 't':
			s.parseLiteral("true", Boolean)
		case 'f':
			s.parseLiteral("false", Boolean)
		case 'n':
			s.parseLiteral("null", Null)
		case '-', '+', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			s.parseNumber()
		case EOF:
			s.fail(src.pos, ErrEndOfInput, "want value")
		default:
			s.fail(src.pos, ErrUnexpectedCharacter, "want value, got %s", describe(ch))
		}

		// A value is complete. Close containers until one of them continues
		// with another member (",") or the stack is empty.
		for len(stk) != 0 {
			f := &stk[len(stk)-1]
			isObj := s.toks[f.tok].Kind == Object
			if isObj {
				s.toks[f.ent].End = src.pos
			}
			src.SkipWhitespace()
			switch ch := src.Peek(); {
			case ch == ',':
				// A comma must be followed by another member, so trailing
				// commas are rejected as a missing key or value.
				src.pos++
				src.SkipWhitespace()
				if isObj {
					f.ent = s.beginMember()
				}
				continue scan
			case isObj && ch == '}', !isObj && ch == ']':
				src.pos++
				s.toks[f.tok].End = src.pos
				stk = stk[:len(stk)-1]
			case isObj:
				s.unexpected(ch, `"," or "}"`)
			default:
				s.unexpected(ch, `"," or "]"`)
			}
		}
		return
	}
}

// openContainer consumes the opening delimiter of an object or array. If the
// container is empty, it is consumed completely and ok == false. Otherwise
// it returns a frame for the container, with the cursor positioned at its
// first value.
// Precondition: the cursor is at "{" or "[".
func (s *scanner) openContainer(open int) (_ frame, ok bool) {
	src := s.src
	kind, closer := Object, int('}')
	if open == '[' {
		kind, closer = Array, ']'
	}
	f := frame{tok: s.push(kind, src.pos)}
	src.pos++

	src.SkipWhitespace()
	if src.Peek() == closer {
		src.pos++
		s.toks[f.tok].End = src.pos
		return f, false
	}
	if kind == Object {
		f.ent = s.beginMember()
	}
	return f, true
}

// beginMember consumes the key of an object member and the following colon,
// and returns the index of the member's ObjectEntry token.
// Postcondition: the cursor is at the first byte of the member value.
func (s *scanner) beginMember() int {
	src := s.src
	ent := s.push(ObjectEntry, src.pos)
	s.parseKey()
	src.SkipWhitespace()
	if ch := src.Peek(); ch != ':' {
		s.unexpected(ch, `":"`)
	}
	src.pos++
	src.SkipWhitespace()
	return ent
}

func (s *scanner) unexpected(ch int, want string) {
	if ch == EOF {
		s.fail(s.src.pos, ErrEndOfInput, "want %s", want)
	}
	s.fail(s.src.pos, ErrUnexpectedCharacter, "want %s, got %s", want, describe(ch))
}

// parseKey consumes an object key.
func (s *scanner) parseKey() {
	src := s.src
	switch ch := src.Peek(); {
	case ch == '"':
		s.parseString(ObjectKey, s.strict || s.keysEncoded)
	case s.unquotedKeys && isIdentStart(ch):
		start := src.pos
		src.pos++
		for isIdentRune(src.Peek()) {
			src.pos++
		}
		s.emit(ObjectKey, start, src.pos)
	default:
		s.unexpected(ch, "object key")
	}
}

// parseString consumes a quoted string and emits a token of the given kind.
// If escapes is false, backslashes are not treated specially.
// Precondition: the cursor is at the opening quotation mark.
func (s *scanner) parseString(kind Kind, escapes bool) {
	start := s.src.pos
	n := s.data.Len()
	i := start + 1
	for i < n {
		b := s.data.At(i)
		switch {
		case b == '"':
			s.src.pos = i + 1
			s.emit(kind, start, i+1)
			return
		case b == '\\' && escapes:
			if s.strict {
				i = s.checkEscape(i)
			} else {
				i += 2
			}
			continue
		case !s.strict:
			// The fast parser does not inspect other string content.
		case b < ' ':
			s.fail(i, ErrMalformedString, "unescaped control %s", fmtByte(b))
		case b >= utf8.RuneSelf:
			r, size := mem.DecodeRune(s.data.SliceFrom(i))
			if r == utf8.RuneError && size <= 1 {
				s.fail(i, ErrMalformedString, "invalid UTF-8 %s", fmtByte(b))
			}
			i += size
			continue
		}
		i++
	}
	s.fail(n, ErrMalformedString, "unterminated string")
}

// checkEscape validates the escape sequence starting with the backslash at
// offset i, and returns the offset following it.
func (s *scanner) checkEscape(i int) int {
	n := s.data.Len()
	if i+1 >= n {
		s.fail(n, ErrMalformedString, "unterminated string")
	}
	switch b := s.data.At(i + 1); b {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return i + 2
	case 'u':
		for j := i + 2; j < i+6; j++ {
			if j >= n {
				s.fail(n, ErrMalformedString, "unterminated string")
			} else if !isHexDigit(s.data.At(j)) {
				s.fail(j, ErrMalformedString, "invalid Unicode escape: not a hex digit: %s", fmtByte(s.data.At(j)))
			}
		}
		return i + 6
	default:
		s.fail(i+1, ErrMalformedString, "invalid %s after escape", fmtByte(b))
		panic("unreachable")
	}
}

// parseNumber consumes a number.
// Precondition: the cursor is at the sign or first digit.
func (s *scanner) parseNumber() {
	start := s.src.pos
	s.src.pos++
	end, _, err := s.src.FindEndOfNumber()
	s.check(err)
	s.emit(Number, start, end)
}

// parseLiteral consumes the constant word and emits a token of the given kind.
func (s *scanner) parseLiteral(word string, kind Kind) {
	start := s.src.pos
	for i := 0; i < len(word); i++ {
		if ch := s.src.PeekAt(i); ch != int(word[i]) {
			s.fail(start+i, ErrUnexpectedCharacter, "invalid constant, want %q", word)
		}
	}
	s.src.pos += len(word)
	s.emit(kind, start, s.src.pos)
}

func isIdentStart(ch int) bool {
	return ch == '_' || ch == '$' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentRune(ch int) bool { return isIdentStart(ch) || isDigit(ch) }
