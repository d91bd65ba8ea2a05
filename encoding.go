// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jindex

import (
	"errors"

	"github.com/creachadair/jindex/internal/escape"
	"go4.org/mem"
)

// Unquote decodes the text of a JSON string token, such as the text spanned
// by a String or quoted ObjectKey token.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error if src is not enclosed in quotation marks.
func Unquote(src mem.RO) (string, error) {
	n := src.Len()
	if n < 2 || src.At(0) != '"' || src.At(n-1) != '"' {
		return "", errors.New("missing quotations")
	}
	return string(escape.Unquote(src.Slice(1, n-1))), nil
}

// KeyText decodes the text of an ObjectKey token. Quoted keys are unquoted;
// bare identifier keys are returned as-is.
func KeyText(src mem.RO) string {
	if s, err := Unquote(src); err == nil {
		return s
	}
	return src.StringCopy()
}
