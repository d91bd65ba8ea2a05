// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles unquoting of JSON strings.
package escape

import (
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A \u escape
// for a high surrogate followed by a \u escape for a low surrogate is decoded
// as a single rune. Invalid or incomplete escapes, and unpaired surrogates,
// are replaced by the Unicode replacement rune.
func Unquote(src mem.RO) []byte {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(make([]byte, 0, src.Len()), src)
	}

	dec := make([]byte, 0, src.Len())
	putByte := func(bs ...byte) { dec = append(dec, bs...) }
	putRune := func(r rune) { dec = utf8.AppendRune(dec, r) }
	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			putRune(utf8.RuneError)
			break
		}
		b := src.At(0)
		if b >= utf8.RuneSelf {
			// Skip the whole of a multi-byte rune after the backslash.
			_, n := mem.DecodeRune(src)
			src = src.SliceFrom(max(n, 1))
			putRune(utf8.RuneError)
		} else {
			src = src.SliceFrom(1)
		}
		switch b {
		case '"', '\\', '/':
			putByte(b)
		case 'b':
			putByte('\b')
		case 'f':
			putByte('\f')
		case 'n':
			putByte('\n')
		case 'r':
			putByte('\r')
		case 't':
			putByte('\t')
		case 'u':
			r, ok := parseHex4(src)
			if !ok {
				putRune(utf8.RuneError)
				break
			}
			src = src.SliceFrom(4)
			if utf16.IsSurrogate(r) {
				// Look for the second half of a surrogate pair.
				if src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
					if lo, ok := parseHex4(src.SliceFrom(2)); ok {
						if d := utf16.DecodeRune(r, lo); d != utf8.RuneError {
							putRune(d)
							src = src.SliceFrom(6)
							break
						}
					}
				}
				r = utf8.RuneError
			}
			putRune(r)
		default:
			if b < utf8.RuneSelf {
				putRune(utf8.RuneError)
			}
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec
}

// parseHex4 decodes the first four bytes of data as hexadecimal digits.
func parseHex4(data mem.RO) (rune, bool) {
	if data.Len() < 4 {
		return 0, false
	}
	var v rune
	for i := 0; i < 4; i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += rune(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += rune(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += rune(b - 'A' + 10)
		} else {
			return 0, false
		}
	}
	return v, true
}
